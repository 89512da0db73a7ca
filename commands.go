package main

import (
	"errors"
	"fmt"
	"strings"

	"movie-catalog/catalog"
	"movie-catalog/input"

	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every movie",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			movies, err := a.mgr.GetAllMovies(cmd.Context())
			if err != nil {
				return err
			}
			printMovies(a.out, movies, "No movies in the catalog.")
			return nil
		},
	}
}

var formFlagNames = []string{"title", "director", "year", "language", "rating", "genre", "runtime", "box-office"}

func anyChanged(cmd *cobra.Command, names []string) bool {
	for _, name := range names {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// bindFormFlags registers one string flag per movie field.
func bindFormFlags(cmd *cobra.Command, f *input.Form) {
	fl := cmd.Flags()
	fl.StringVar(&f.Title, "title", "", "movie title")
	fl.StringVar(&f.Director, "director", "", "director")
	fl.StringVar(&f.ReleaseYear, "year", "", "release year")
	fl.StringVar(&f.Language, "language", "", "language")
	fl.StringVar(&f.Rating, "rating", "", "rating, 0 to 10")
	fl.StringVar(&f.Genre, "genre", "", "genre")
	fl.StringVar(&f.Runtime, "runtime", "", "runtime in minutes")
	fl.StringVar(&f.BoxOffice, "box-office", "", "box office in million $ (optional)")
}

func newAddCmd(a *app) *cobra.Command {
	var form input.Form
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a movie (prompts for fields when no flags are given)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !anyChanged(cmd, formFlagNames) {
				var ok bool
				if form, ok = newPrompter(a.in, a.out).form(form); !ok {
					return errors.New("input ended before all fields were given")
				}
			}
			in, err := form.MovieInput()
			if err != nil {
				return err
			}
			id, err := a.mgr.AddMovie(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Movie added successfully! (ID %d)\n", id)
			return nil
		},
	}
	bindFormFlags(cmd, &form)
	return cmd
}

func newUpdateCmd(a *app) *cobra.Command {
	var changes input.Form
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace fields of a movie; unset flags keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := input.ID(args[0])
			if err != nil {
				return err
			}
			movie, err := a.mgr.GetMovie(cmd.Context(), id)
			if err != nil {
				return err
			}
			form := input.FormFromMovie(*movie)
			fl := cmd.Flags()
			for name, dst := range map[string]*string{
				"title":      &form.Title,
				"director":   &form.Director,
				"year":       &form.ReleaseYear,
				"language":   &form.Language,
				"rating":     &form.Rating,
				"genre":      &form.Genre,
				"runtime":    &form.Runtime,
				"box-office": &form.BoxOffice,
			} {
				if fl.Changed(name) {
					*dst, _ = fl.GetString(name)
				}
			}
			in, err := form.MovieInput()
			if err != nil {
				return err
			}
			found, err := a.mgr.UpdateMovie(cmd.Context(), id, in)
			if err != nil {
				return err
			}
			if !found {
				fmt.Fprintf(a.out, "Movie %d no longer exists; nothing updated.\n", id)
				return nil
			}
			fmt.Fprintln(a.out, "Movie updated successfully!")
			return nil
		},
	}
	bindFormFlags(cmd, &changes)
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a movie",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := input.ID(args[0])
			if err != nil {
				return err
			}
			found, err := a.mgr.DeleteMovie(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !found {
				fmt.Fprintf(a.out, "No movie with ID %d; nothing deleted.\n", id)
				return nil
			}
			fmt.Fprintln(a.out, "Movie deleted successfully!")
			return nil
		},
	}
}

func newFilterCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "filter <field> <value>",
		Short: "Find movies by one field",
		Long: "Numeric fields (release_year, rating, runtime, box_office) match exactly;\n" +
			"text fields match a case-sensitive substring.\n" +
			"Fields: " + strings.Join(catalog.FieldNames(), ", "),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			field, value, err := input.Filter(args[0], args[1])
			if err != nil {
				return err
			}
			movies, err := a.mgr.FilterMovies(cmd.Context(), field, value)
			if err != nil {
				return err
			}
			printMovies(a.out, movies, fmt.Sprintf("No movies found with %s matching '%s'.", field, args[1]))
			return nil
		},
	}
}

func newCountLanguageCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "count-language <language>",
		Short: "Count movies in one language",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := a.mgr.CountByLanguage(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Number of movies in %s: %d\n", args[0], n)
			return nil
		},
	}
}

func newTopCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "top",
		Short: "Show the best rated movies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("limit") {
				limit = a.cfg.TopLimit
			}
			if limit <= 0 {
				return catalog.NewValidationError("limit", "must be positive")
			}
			movies, err := a.mgr.TopRated(cmd.Context(), limit)
			if err != nil {
				return err
			}
			printMovies(a.out, movies, "No movies in the catalog.")
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", catalog.DefaultTopLimit, "how many movies to show")
	return cmd
}

func newDecadeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "decade <year>",
		Short: "List movies released in a decade, e.g. 1990 or 1990s",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			decade, err := input.DecadeIndex(args[0])
			if err != nil {
				return err
			}
			movies, err := a.mgr.ByDecade(cmd.Context(), decade)
			if err != nil {
				return err
			}
			printMovies(a.out, movies, fmt.Sprintf("No movies from the %ds.", decade*10))
			return nil
		},
	}
}

func newChartsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "charts",
		Short: "Rating histogram, top box office and language share",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			charts, err := a.mgr.Charts(cmd.Context())
			if err != nil {
				return err
			}
			printCharts(a.out, charts, termWidth(a.out))
			return nil
		},
	}
}

func newShellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := &shell{a: a, p: newPrompter(a.in, a.out)}
			s.run(cmd.Context())
			return nil
		},
	}
}
