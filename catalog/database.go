package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DefaultTopLimit is used by TopRated when no positive limit is given.
const DefaultTopLimit = 10

const movieColumns = `id,title,director,release_year,language,rating,genre,runtime,box_office,added_date`

// Database provides high-level helpers around a SQLite connection.
type Database struct {
	db  *sql.DB
	now func() time.Time

	busyTimeout time.Duration
	insertStmt  *sql.Stmt
}

// Option tweaks a Database before it is opened.
type Option func(*Database)

// WithBusyTimeout sets how long SQLite waits on a locked file.
func WithBusyTimeout(d time.Duration) Option {
	return func(db *Database) { db.busyTimeout = d }
}

// WithClock replaces time.Now for added_date stamping.
func WithClock(now func() time.Time) Option {
	return func(db *Database) { db.now = now }
}

// NewDatabase opens (or creates) the SQLite database at dbPath, ensures the
// movies table exists, and prepares common statements. It never seeds; see
// EnsureSeeded.
func NewDatabase(dbPath string, opts ...Option) (*Database, error) {
	database := &Database{now: time.Now, busyTimeout: 5 * time.Second}
	for _, opt := range opts {
		opt(database)
	}

	// Ensure directory exists so first-run succeeds.
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, storageErr("create db dir", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=%d", dbPath, database.busyTimeout.Milliseconds())
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, storageErr("open sqlite", err)
	}
	// One process-wide connection.
	db.SetMaxOpenConns(1)

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, storageErr("apply schema", err)
	}

	database.db = db
	if err := database.prepareStatements(); err != nil {
		db.Close()
		return nil, storageErr("prepare statements", err)
	}
	return database, nil
}

// Close releases prepared statements and closes the DB.
func (d *Database) Close() error {
	if d.insertStmt != nil {
		d.insertStmt.Close()
	}
	return d.db.Close()
}

// ---------------------------------------------------------------------------
// Schema
// ---------------------------------------------------------------------------

func applySchema(db *sql.DB) error {
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return fmt.Errorf("enable WAL: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS movies (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            title TEXT NOT NULL,
            director TEXT NOT NULL,
            release_year INTEGER NOT NULL,
            language TEXT NOT NULL,
            rating REAL NOT NULL,
            genre TEXT NOT NULL,
            runtime INTEGER NOT NULL,
            box_office REAL,
            added_date TEXT NOT NULL
        );`,
		`CREATE INDEX IF NOT EXISTS idx_movies_rating ON movies(rating DESC, id);`,
		`CREATE INDEX IF NOT EXISTS idx_movies_release_year ON movies(release_year);`,
	}
	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return tx.Commit()
}

func (d *Database) prepareStatements() error {
	var err error
	d.insertStmt, err = d.db.Prepare(`INSERT INTO movies(title,director,release_year,language,rating,genre,runtime,box_office,added_date)
        VALUES(?,?,?,?,?,?,?,?,?)`)
	return err
}

// ---------------------------------------------------------------------------
// CRUD helpers
// ---------------------------------------------------------------------------

// Insert validates in, stamps the current time and returns the new id.
func (d *Database) Insert(ctx context.Context, in MovieInput) (int64, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}
	added := d.now().Format(TimestampLayout)
	res, err := d.insertStmt.ExecContext(ctx,
		in.Title, in.Director, in.ReleaseYear, in.Language, in.Rating,
		in.Genre, in.Runtime, nullFloat(in.BoxOffice), added)
	if err != nil {
		return 0, storageErr("insert", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, storageErr("insert", err)
	}
	return id, nil
}

// Get fetches a single movie.
func (d *Database) Get(ctx context.Context, id int64) (*Movie, error) {
	row := d.db.QueryRowContext(ctx, `SELECT `+movieColumns+` FROM movies WHERE id=?`, id)
	m, err := scanMovie(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMovieNotFound
	}
	if err != nil {
		return nil, storageErr("get", err)
	}
	return m, nil
}

// GetAll returns every movie in id order.
func (d *Database) GetAll(ctx context.Context) ([]Movie, error) {
	return d.query(ctx, "get all", `SELECT `+movieColumns+` FROM movies ORDER BY id`)
}

// Update replaces every mutable field of the movie with the given id.
// It reports false, without error, when no such movie exists.
func (d *Database) Update(ctx context.Context, id int64, in MovieInput) (bool, error) {
	if err := in.Validate(); err != nil {
		return false, err
	}
	res, err := d.db.ExecContext(ctx,
		`UPDATE movies SET title=?, director=?, release_year=?, language=?, rating=?, genre=?, runtime=?, box_office=? WHERE id=?`,
		in.Title, in.Director, in.ReleaseYear, in.Language, in.Rating,
		in.Genre, in.Runtime, nullFloat(in.BoxOffice), id)
	if err != nil {
		return false, storageErr("update", err)
	}
	return affected(res, "update")
}

// Delete removes the movie with the given id. Deleting an unknown id reports
// false without error.
func (d *Database) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := d.db.ExecContext(ctx, `DELETE FROM movies WHERE id=?`, id)
	if err != nil {
		return false, storageErr("delete", err)
	}
	return affected(res, "delete")
}

// Count returns the total number of movies.
func (d *Database) Count(ctx context.Context) (int, error) {
	var n int
	if err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM movies`).Scan(&n); err != nil {
		return 0, storageErr("count", err)
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Queries
// ---------------------------------------------------------------------------

// Filter returns movies whose field matches value. Numeric fields match by
// exact equality and need a Go number; text fields match a case-sensitive
// substring and need a string.
func (d *Database) Filter(ctx context.Context, field Field, value any) ([]Movie, error) {
	column, ok := field.column()
	if !ok {
		return nil, &InvalidFieldError{Field: string(field)}
	}
	arg, err := filterArg(field, value)
	if err != nil {
		return nil, err
	}
	var where string
	if field.Numeric() {
		where = column + ` = ?`
	} else {
		// instr is case-sensitive; LIKE is not for ASCII.
		where = `instr(` + column + `, ?) > 0`
	}
	return d.query(ctx, "filter", `SELECT `+movieColumns+` FROM movies WHERE `+where+` ORDER BY id`, arg)
}

// CountByLanguage counts movies whose language equals language exactly.
func (d *Database) CountByLanguage(ctx context.Context, language string) (int, error) {
	var n int
	if err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM movies WHERE language=?`, language).Scan(&n); err != nil {
		return 0, storageErr("count by language", err)
	}
	return n, nil
}

// TopRated returns up to limit movies by rating, highest first. Equal
// ratings keep insertion order.
func (d *Database) TopRated(ctx context.Context, limit int) ([]Movie, error) {
	if limit <= 0 {
		limit = DefaultTopLimit
	}
	return d.query(ctx, "top rated", `SELECT `+movieColumns+` FROM movies ORDER BY rating DESC, id ASC LIMIT ?`, limit)
}

// ByDecade returns movies released in [decade*10, decade*10+9], so decade
// 199 selects the 1990s.
func (d *Database) ByDecade(ctx context.Context, decade int) ([]Movie, error) {
	start := decade * 10
	return d.query(ctx, "by decade", `SELECT `+movieColumns+` FROM movies WHERE release_year BETWEEN ? AND ? ORDER BY id`, start, start+9)
}

// ---------------------------------------------------------------------------
// Scanning
// ---------------------------------------------------------------------------

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMovie(row rowScanner) (*Movie, error) {
	var (
		m         Movie
		boxOffice sql.NullFloat64
		added     string
	)
	err := row.Scan(&m.ID, &m.Title, &m.Director, &m.ReleaseYear, &m.Language,
		&m.Rating, &m.Genre, &m.Runtime, &boxOffice, &added)
	if err != nil {
		return nil, err
	}
	if boxOffice.Valid {
		v := boxOffice.Float64
		m.BoxOffice = &v
	}
	m.AddedDate, err = time.ParseInLocation(TimestampLayout, added, time.Local)
	if err != nil {
		return nil, fmt.Errorf("movie %d: bad added_date %q: %w", m.ID, added, err)
	}
	return &m, nil
}

func (d *Database) query(ctx context.Context, op, query string, args ...any) ([]Movie, error) {
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageErr(op, err)
	}
	defer rows.Close()

	movies := []Movie{}
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, storageErr(op, err)
		}
		movies = append(movies, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(op, err)
	}
	return movies, nil
}

func affected(res sql.Result, op string) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, storageErr(op, err)
	}
	return n > 0, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func filterArg(field Field, value any) (any, error) {
	switch field.Kind() {
	case KindInt:
		switch v := value.(type) {
		case int:
			return int64(v), nil
		case int32:
			return int64(v), nil
		case int64:
			return v, nil
		}
		return nil, NewValidationError(string(field), fmt.Sprintf("expected an integer, got %T", value))
	case KindFloat:
		switch v := value.(type) {
		case float64:
			return v, nil
		case float32:
			return float64(v), nil
		case int:
			return float64(v), nil
		case int64:
			return float64(v), nil
		}
		return nil, NewValidationError(string(field), fmt.Sprintf("expected a number, got %T", value))
	default:
		s, ok := value.(string)
		if !ok {
			return nil, NewValidationError(string(field), fmt.Sprintf("expected text, got %T", value))
		}
		return s, nil
	}
}
