package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"movie-catalog/catalog"
	"movie-catalog/input"
)

// prompter reads one answer per line from the user.
type prompter struct {
	sc  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{sc: bufio.NewScanner(in), out: out}
}

// ask prints label and returns the trimmed answer. ok is false at EOF.
func (p *prompter) ask(label string) (string, bool) {
	fmt.Fprint(p.out, label)
	if !p.sc.Scan() {
		return "", false
	}
	return strings.TrimSpace(p.sc.Text()), true
}

// askDefault is ask with a value kept when the answer is empty.
func (p *prompter) askDefault(label, current string) (string, bool) {
	answer, ok := p.ask(fmt.Sprintf("%s [%s]: ", label, current))
	if !ok {
		return "", false
	}
	if answer == "" {
		return current, true
	}
	return answer, true
}

// form walks every movie field. Existing values in f are offered as defaults;
// answering "-" clears one.
func (p *prompter) form(f input.Form) (input.Form, bool) {
	fields := []struct {
		label string
		dst   *string
	}{
		{"Title", &f.Title},
		{"Director", &f.Director},
		{"Release Year", &f.ReleaseYear},
		{"Language", &f.Language},
		{"Rating (0-10)", &f.Rating},
		{"Genre", &f.Genre},
		{"Runtime (minutes)", &f.Runtime},
		{"Box Office (million $, optional)", &f.BoxOffice},
	}
	for _, field := range fields {
		var (
			v  string
			ok bool
		)
		if *field.dst == "" {
			v, ok = p.ask(field.label + ": ")
		} else {
			v, ok = p.askDefault(field.label, *field.dst)
		}
		if !ok {
			return f, false
		}
		if v == "-" {
			v = ""
		}
		*field.dst = v
	}
	return f, true
}

// shell is the interactive loop: one command per line, one catalog call per command.
type shell struct {
	a *app
	p *prompter
}

const shellHelp = `Available commands:
  Movies: list, add, update, delete
  Search: filter, count language, top rated, decade
  Analytics: charts
  System: help, exit`

func (s *shell) run(ctx context.Context) {
	out := s.a.out
	fmt.Fprintln(out, "Welcome to the Movie Catalog!")
	fmt.Fprintln(out, shellHelp)

	for {
		cmd, ok := s.p.ask("\n> ")
		if !ok {
			return
		}
		switch cmd {
		case "list":
			s.handleList(ctx)
		case "add":
			s.handleAdd(ctx)
		case "update":
			s.handleUpdate(ctx)
		case "delete":
			s.handleDelete(ctx)
		case "filter":
			s.handleFilter(ctx)
		case "count language":
			s.handleCountLanguage(ctx)
		case "top rated":
			s.handleTopRated(ctx)
		case "decade":
			s.handleDecade(ctx)
		case "charts":
			s.handleCharts(ctx)
		case "help":
			fmt.Fprintln(out, shellHelp)
		case "exit", "quit":
			fmt.Fprintln(out, "Goodbye!")
			return
		case "":
		default:
			fmt.Fprintln(out, "Unknown command. Type 'help' to see the available commands.")
		}
	}
}

func (s *shell) handleList(ctx context.Context) {
	movies, err := s.a.mgr.GetAllMovies(ctx)
	if err != nil {
		s.fail(err)
		return
	}
	printMovies(s.a.out, movies, "No movies in the catalog.")
}

func (s *shell) handleAdd(ctx context.Context) {
	form, ok := s.p.form(input.Form{})
	if !ok {
		return
	}
	in, err := form.MovieInput()
	if err != nil {
		s.fail(err)
		return
	}
	id, err := s.a.mgr.AddMovie(ctx, in)
	if err != nil {
		s.fail(err)
		return
	}
	fmt.Fprintf(s.a.out, "Movie added successfully! (ID %d)\n", id)
}

func (s *shell) handleUpdate(ctx context.Context) {
	movie, ok := s.askMovie(ctx)
	if !ok {
		return
	}
	form, ok := s.p.form(input.FormFromMovie(*movie))
	if !ok {
		return
	}
	in, err := form.MovieInput()
	if err != nil {
		s.fail(err)
		return
	}
	found, err := s.a.mgr.UpdateMovie(ctx, movie.ID, in)
	if err != nil {
		s.fail(err)
		return
	}
	if !found {
		fmt.Fprintf(s.a.out, "Movie %d no longer exists; nothing updated.\n", movie.ID)
		return
	}
	fmt.Fprintln(s.a.out, "Movie updated successfully!")
}

func (s *shell) handleDelete(ctx context.Context) {
	movie, ok := s.askMovie(ctx)
	if !ok {
		return
	}
	found, err := s.a.mgr.DeleteMovie(ctx, movie.ID)
	if err != nil {
		s.fail(err)
		return
	}
	if !found {
		fmt.Fprintf(s.a.out, "Movie %d no longer exists; nothing deleted.\n", movie.ID)
		return
	}
	fmt.Fprintf(s.a.out, "Movie '%s' deleted successfully!\n", movie.Title)
}

func (s *shell) handleFilter(ctx context.Context) {
	fieldName, ok := s.p.ask(fmt.Sprintf("Filter by (%s): ", strings.Join(catalog.FieldNames(), ", ")))
	if !ok {
		return
	}
	raw, ok := s.p.ask("Value: ")
	if !ok {
		return
	}
	field, value, err := input.Filter(fieldName, raw)
	if err != nil {
		s.fail(err)
		return
	}
	movies, err := s.a.mgr.FilterMovies(ctx, field, value)
	if err != nil {
		s.fail(err)
		return
	}
	printMovies(s.a.out, movies, fmt.Sprintf("No movies found with %s matching '%s'.", field, raw))
}

func (s *shell) handleCountLanguage(ctx context.Context) {
	langs, err := s.a.mgr.Languages(ctx)
	if err != nil {
		s.fail(err)
		return
	}
	if len(langs) > 0 {
		fmt.Fprintf(s.a.out, "Languages in catalog: %s\n", strings.Join(langs, ", "))
	}
	lang, ok := s.p.ask("Language: ")
	if !ok {
		return
	}
	n, err := s.a.mgr.CountByLanguage(ctx, lang)
	if err != nil {
		s.fail(err)
		return
	}
	fmt.Fprintf(s.a.out, "Number of movies in %s: %d\n", lang, n)
}

func (s *shell) handleTopRated(ctx context.Context) {
	movies, err := s.a.mgr.TopRated(ctx, s.a.cfg.TopLimit)
	if err != nil {
		s.fail(err)
		return
	}
	printMovies(s.a.out, movies, "No movies in the catalog.")
}

func (s *shell) handleDecade(ctx context.Context) {
	raw, ok := s.p.ask("Decade (e.g. 1990): ")
	if !ok {
		return
	}
	decade, err := input.DecadeIndex(raw)
	if err != nil {
		s.fail(err)
		return
	}
	movies, err := s.a.mgr.ByDecade(ctx, decade)
	if err != nil {
		s.fail(err)
		return
	}
	printMovies(s.a.out, movies, fmt.Sprintf("No movies from the %ds.", decade*10))
}

func (s *shell) handleCharts(ctx context.Context) {
	charts, err := s.a.mgr.Charts(ctx)
	if err != nil {
		s.fail(err)
		return
	}
	printCharts(s.a.out, charts, termWidth(s.a.out))
}

// askMovie reads an id and loads the movie so the user sees what they picked.
func (s *shell) askMovie(ctx context.Context) (*catalog.Movie, bool) {
	raw, ok := s.p.ask("Movie ID: ")
	if !ok {
		return nil, false
	}
	id, err := input.ID(raw)
	if err != nil {
		s.fail(err)
		return nil, false
	}
	movie, err := s.a.mgr.GetMovie(ctx, id)
	if err != nil {
		s.fail(err)
		return nil, false
	}
	fmt.Fprintf(s.a.out, "Selected: %s (%d) by %s\n", movie.Title, movie.ReleaseYear, movie.Director)
	return movie, true
}

// fail reports err and keeps the loop going.
func (s *shell) fail(err error) {
	var verr *catalog.ValidationError
	switch {
	case errors.As(err, &verr):
		printValidation(s.a.out, verr)
	case errors.Is(err, catalog.ErrMovieNotFound):
		fmt.Fprintln(s.a.out, "No movie with that ID.")
	default:
		fmt.Fprintf(s.a.out, "Error: %v\n", err)
	}
}
