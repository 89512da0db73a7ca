package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Manager is a thin façade over the Database that logs every operation,
// keeping CLI code simple.
type Manager struct {
	log *slog.Logger
	db  *Database
}

// NewManager opens (or creates) the SQLite database at dbPath.
func NewManager(log *slog.Logger, dbPath string, opts ...Option) (*Manager, error) {
	db, err := NewDatabase(dbPath, opts...)
	if err != nil {
		return nil, err
	}
	log.Debug("database opened", "path", dbPath)
	return &Manager{log: log, db: db}, nil
}

// Close closes the underlying database.
func (m *Manager) Close() error { return m.db.Close() }

// Seed loads the default catalog into an empty database.
func (m *Manager) Seed(ctx context.Context) (int, error) {
	const op = "catalog.Manager.Seed"
	log := m.log.With("op", op)
	n, err := m.db.EnsureSeeded(ctx)
	if err != nil {
		log.Error(err.Error(), "inserted", n)
		return n, err
	}
	if n > 0 {
		log.Info("seeded default catalog", "inserted", n)
	}
	return n, nil
}

// Import inserts movies in order and stops at the first failure.
func (m *Manager) Import(ctx context.Context, movies []MovieInput) (int, error) {
	const op = "catalog.Manager.Import"
	log := m.log.With("op", op, "total", len(movies))
	n, err := m.db.InsertAll(ctx, movies)
	if err != nil {
		log.Error(err.Error(), "inserted", n)
		return n, fmt.Errorf("import movie #%d: %w", n+1, err)
	}
	log.Info("movies imported", "inserted", n)
	return n, nil
}

// ------------------ Movie CRUD ------------------

func (m *Manager) AddMovie(ctx context.Context, in MovieInput) (int64, error) {
	const op = "catalog.Manager.AddMovie"
	log := m.log.With("op", op, "title", in.Title)
	id, err := m.db.Insert(ctx, in)
	if err != nil {
		m.logErr(log, err)
		return 0, err
	}
	log.Info("movie added", "id", id)
	return id, nil
}

func (m *Manager) GetMovie(ctx context.Context, id int64) (*Movie, error) {
	const op = "catalog.Manager.GetMovie"
	log := m.log.With("op", op, "id", id)
	movie, err := m.db.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrMovieNotFound) {
			log.Info("movie not found")
			return nil, err
		}
		log.Error(err.Error())
		return nil, err
	}
	return movie, nil
}

func (m *Manager) GetAllMovies(ctx context.Context) ([]Movie, error) {
	const op = "catalog.Manager.GetAllMovies"
	movies, err := m.db.GetAll(ctx)
	if err != nil {
		m.log.Error(err.Error(), "op", op)
		return nil, err
	}
	return movies, nil
}

// UpdateMovie replaces the movie's fields. It reports false when id is unknown.
func (m *Manager) UpdateMovie(ctx context.Context, id int64, in MovieInput) (bool, error) {
	const op = "catalog.Manager.UpdateMovie"
	log := m.log.With("op", op, "id", id)
	found, err := m.db.Update(ctx, id, in)
	if err != nil {
		m.logErr(log, err)
		return false, err
	}
	if !found {
		log.Info("no movie with that id, nothing updated")
		return false, nil
	}
	log.Info("movie updated")
	return true, nil
}

// DeleteMovie removes the movie. It reports false when id is unknown.
func (m *Manager) DeleteMovie(ctx context.Context, id int64) (bool, error) {
	const op = "catalog.Manager.DeleteMovie"
	log := m.log.With("op", op, "id", id)
	found, err := m.db.Delete(ctx, id)
	if err != nil {
		log.Error(err.Error())
		return false, err
	}
	if !found {
		log.Info("no movie with that id, nothing deleted")
		return false, nil
	}
	log.Info("movie deleted")
	return true, nil
}

// ------------------ Queries ------------------

func (m *Manager) FilterMovies(ctx context.Context, field Field, value any) ([]Movie, error) {
	const op = "catalog.Manager.FilterMovies"
	log := m.log.With("op", op, "field", field, "value", value)
	movies, err := m.db.Filter(ctx, field, value)
	if err != nil {
		m.logErr(log, err)
		return nil, err
	}
	log.Debug("filter done", "matches", len(movies))
	return movies, nil
}

func (m *Manager) CountByLanguage(ctx context.Context, language string) (int, error) {
	const op = "catalog.Manager.CountByLanguage"
	n, err := m.db.CountByLanguage(ctx, language)
	if err != nil {
		m.log.Error(err.Error(), "op", op, "language", language)
		return 0, err
	}
	return n, nil
}

func (m *Manager) TopRated(ctx context.Context, limit int) ([]Movie, error) {
	const op = "catalog.Manager.TopRated"
	movies, err := m.db.TopRated(ctx, limit)
	if err != nil {
		m.log.Error(err.Error(), "op", op, "limit", limit)
		return nil, err
	}
	return movies, nil
}

func (m *Manager) ByDecade(ctx context.Context, decade int) ([]Movie, error) {
	const op = "catalog.Manager.ByDecade"
	movies, err := m.db.ByDecade(ctx, decade)
	if err != nil {
		m.log.Error(err.Error(), "op", op, "decade", decade)
		return nil, err
	}
	return movies, nil
}

func (m *Manager) Count(ctx context.Context) (int, error) { return m.db.Count(ctx) }

// Languages lists the distinct languages of the catalog, most common first.
func (m *Manager) Languages(ctx context.Context) ([]string, error) {
	movies, err := m.GetAllMovies(ctx)
	if err != nil {
		return nil, err
	}
	shares := LanguageShare(movies)
	out := make([]string, 0, len(shares))
	for _, s := range shares {
		out = append(out, s.Language)
	}
	return out, nil
}

// Charts aggregates a fresh snapshot for the analytics view.
func (m *Manager) Charts(ctx context.Context) (Charts, error) {
	movies, err := m.GetAllMovies(ctx)
	if err != nil {
		return Charts{}, err
	}
	return BuildCharts(movies), nil
}

// logErr logs caller mistakes at info and storage failures at error.
func (m *Manager) logErr(log *slog.Logger, err error) {
	var (
		verr *ValidationError
		ferr *InvalidFieldError
	)
	if errors.As(err, &verr) || errors.As(err, &ferr) {
		log.Info("rejected", "reason", err.Error())
		return
	}
	log.Error(err.Error())
}

// ------------------ Utilities ------------------

// PrettyMovie formats a movie for lists.
func PrettyMovie(mv Movie) string {
	boxOffice := "-"
	if mv.BoxOffice != nil {
		boxOffice = fmt.Sprintf("%.2f", *mv.BoxOffice)
	}
	return fmt.Sprintf("%-5d %-40s %-22s %-6d %-11s %-6.1f %-10s %-7d %-9s %s",
		mv.ID, truncate(mv.Title, 40), truncate(mv.Director, 22), mv.ReleaseYear,
		truncate(mv.Language, 11), mv.Rating, truncate(mv.Genre, 10), mv.Runtime,
		boxOffice, mv.AddedDate.Format(TimestampLayout))
}

// PrettyHeader is the column header matching PrettyMovie.
func PrettyHeader() string {
	return fmt.Sprintf("%-5s %-40s %-22s %-6s %-11s %-6s %-10s %-7s %-9s %s",
		"ID", "Title", "Director", "Year", "Language", "Rating", "Genre", "Runtime", "BoxOffice", "Added")
}

func truncate(s string, maxLength int) string {
	r := []rune(s)
	if len(r) <= maxLength {
		return s
	}
	return string(r[:maxLength-3]) + "..."
}

// Separator returns a rule as wide as the header.
func Separator() string { return strings.Repeat("-", len(PrettyHeader())) }
