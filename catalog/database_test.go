package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempDB(t *testing.T, opts ...Option) *Database {
	t.Helper()
	dir := t.TempDir()
	db, err := NewDatabase(filepath.Join(dir, "test.db"), opts...)
	require.NoError(t, err, "new db")
	t.Cleanup(func() { db.Close() })
	return db
}

func seededDB(t *testing.T) *Database {
	t.Helper()
	db := tempDB(t)
	n, err := db.EnsureSeeded(context.Background())
	require.NoError(t, err, "seed")
	require.Equal(t, len(DefaultMovies), n)
	return db
}

func sample() MovieInput {
	return MovieInput{
		Title:       "Paprika",
		Director:    "Satoshi Kon",
		ReleaseYear: 2006,
		Language:    "Japanese",
		Rating:      7.7,
		Genre:       "Animation",
		Runtime:     90,
		BoxOffice:   money(0.9),
	}
}

func titles(movies []Movie) []string {
	out := make([]string, 0, len(movies))
	for _, m := range movies {
		out = append(out, m.Title)
	}
	return out
}

func TestInsertRoundTrip(t *testing.T) {
	added := time.Date(2024, 5, 1, 12, 30, 45, 0, time.Local)
	db := tempDB(t, WithClock(func() time.Time { return added }))
	ctx := context.Background()

	in := sample()
	id, err := db.Insert(ctx, in)
	require.NoError(t, err)
	assert.Positive(t, id)

	all, err := db.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	got := all[0]
	assert.Equal(t, id, got.ID)
	assert.Equal(t, in, got.Input())
	assert.True(t, added.Equal(got.AddedDate), "added_date %v, want %v", got.AddedDate, added)
}

func TestInsertWithoutBoxOffice(t *testing.T) {
	db := tempDB(t)
	ctx := context.Background()

	in := sample()
	in.BoxOffice = nil
	id, err := db.Insert(ctx, in)
	require.NoError(t, err)

	m, err := db.Get(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, m.BoxOffice)
	assert.Equal(t, 0.0, m.BoxOfficeValue())
}

func TestInsertValidation(t *testing.T) {
	db := tempDB(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*MovieInput)
		field  string
	}{
		{"empty title", func(in *MovieInput) { in.Title = "" }, "title"},
		{"empty director", func(in *MovieInput) { in.Director = "" }, "director"},
		{"empty language", func(in *MovieInput) { in.Language = "" }, "language"},
		{"empty genre", func(in *MovieInput) { in.Genre = "" }, "genre"},
		{"year too old", func(in *MovieInput) { in.ReleaseYear = 1799 }, "release_year"},
		{"year in future", func(in *MovieInput) { in.ReleaseYear = time.Now().Year() + 1 }, "release_year"},
		{"rating negative", func(in *MovieInput) { in.Rating = -0.1 }, "rating"},
		{"rating above ten", func(in *MovieInput) { in.Rating = 10.1 }, "rating"},
		{"zero runtime", func(in *MovieInput) { in.Runtime = 0 }, "runtime"},
		{"negative box office", func(in *MovieInput) { in.BoxOffice = money(-1) }, "box_office"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := sample()
			tt.mutate(&in)
			_, err := db.Insert(ctx, in)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}

	n, err := db.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "rejected inserts must not write")
}

func TestInsertAcceptsBounds(t *testing.T) {
	db := tempDB(t)
	ctx := context.Background()

	in := sample()
	in.ReleaseYear = 1800
	in.Rating = 0
	in.Runtime = 1
	in.BoxOffice = money(0)
	_, err := db.Insert(ctx, in)
	require.NoError(t, err)

	in.ReleaseYear = time.Now().Year()
	in.Rating = 10
	_, err = db.Insert(ctx, in)
	require.NoError(t, err)
}

func TestGetAllEmpty(t *testing.T) {
	db := tempDB(t)
	all, err := db.GetAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestGetMissing(t *testing.T) {
	db := tempDB(t)
	_, err := db.Get(context.Background(), 42)
	assert.ErrorIs(t, err, ErrMovieNotFound)
}

func TestUpdateKeepsAddedDate(t *testing.T) {
	clock := time.Date(2023, 1, 2, 3, 4, 5, 0, time.Local)
	db := tempDB(t, WithClock(func() time.Time { return clock }))
	ctx := context.Background()

	id, err := db.Insert(ctx, sample())
	require.NoError(t, err)
	before, err := db.Get(ctx, id)
	require.NoError(t, err)

	clock = clock.Add(48 * time.Hour)
	changed := MovieInput{
		Title:       "Perfect Blue",
		Director:    "Satoshi Kon",
		ReleaseYear: 1997,
		Language:    "Japanese",
		Rating:      8.0,
		Genre:       "Thriller",
		Runtime:     81,
	}
	found, err := db.Update(ctx, id, changed)
	require.NoError(t, err)
	assert.True(t, found)

	after, err := db.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, changed, after.Input())
	assert.Nil(t, after.BoxOffice)
	assert.True(t, before.AddedDate.Equal(after.AddedDate))
}

func TestUpdateMissingIsNoop(t *testing.T) {
	db := seededDB(t)
	ctx := context.Background()

	before, err := db.GetAll(ctx)
	require.NoError(t, err)

	found, err := db.Update(ctx, 9999, sample())
	require.NoError(t, err)
	assert.False(t, found)

	after, err := db.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestUpdateValidates(t *testing.T) {
	db := tempDB(t)
	ctx := context.Background()
	id, err := db.Insert(ctx, sample())
	require.NoError(t, err)

	bad := sample()
	bad.Title = ""
	_, err = db.Update(ctx, id, bad)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	m, err := db.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Paprika", m.Title)
}

func TestDelete(t *testing.T) {
	db := seededDB(t)
	ctx := context.Background()

	found, err := db.Delete(ctx, 1)
	require.NoError(t, err)
	assert.True(t, found)

	n, err := db.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(DefaultMovies)-1, n)

	found, err = db.Delete(ctx, 1)
	require.NoError(t, err)
	assert.False(t, found, "second delete is a no-op")

	n, err = db.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(DefaultMovies)-1, n)
}

func TestIDsAreNotReused(t *testing.T) {
	db := tempDB(t)
	ctx := context.Background()

	first, err := db.Insert(ctx, sample())
	require.NoError(t, err)
	_, err = db.Delete(ctx, first)
	require.NoError(t, err)

	second, err := db.Insert(ctx, sample())
	require.NoError(t, err)
	assert.Greater(t, second, first)
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "movies.db")
	ctx := context.Background()

	db, err := NewDatabase(path)
	require.NoError(t, err)
	_, err = db.Insert(ctx, sample())
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = NewDatabase(path)
	require.NoError(t, err)
	defer db.Close()
	n, err := db.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestClosedDatabaseIsStorageError(t *testing.T) {
	db, err := NewDatabase(filepath.Join(t.TempDir(), "closed.db"))
	require.NoError(t, err)
	require.NoError(t, db.Close())
	ctx := context.Background()

	checks := map[string]func() error{
		"insert":   func() error { _, err := db.Insert(ctx, sample()); return err },
		"get all":  func() error { _, err := db.GetAll(ctx); return err },
		"update":   func() error { _, err := db.Update(ctx, 1, sample()); return err },
		"delete":   func() error { _, err := db.Delete(ctx, 1); return err },
		"filter":   func() error { _, err := db.Filter(ctx, FieldTitle, "x"); return err },
		"language": func() error { _, err := db.CountByLanguage(ctx, "English"); return err },
		"top":      func() error { _, err := db.TopRated(ctx, 3); return err },
		"decade":   func() error { _, err := db.ByDecade(ctx, 199); return err },
		"seed":     func() error { _, err := db.EnsureSeeded(ctx); return err },
	}
	for name, check := range checks {
		t.Run(name, func(t *testing.T) {
			err := check()
			var serr *StorageError
			require.ErrorAs(t, err, &serr)
			assert.NotEmpty(t, serr.Op)
			assert.NotNil(t, errors.Unwrap(err))
		})
	}
}

func TestFilterNumericExact(t *testing.T) {
	db := seededDB(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		field Field
		value any
		want  []string
	}{
		{
			name:  "rating 9.0",
			field: FieldRating,
			value: 9.0,
			want:  []string{"The Dark Knight", "12 Angry Men", "Schindler's List", "The Lord of the Rings: The Return of the King"},
		},
		{
			name:  "runtime",
			field: FieldRuntime,
			value: 142,
			want:  []string{"The Shawshank Redemption", "Forrest Gump"},
		},
		{
			name:  "release year",
			field: FieldReleaseYear,
			value: int64(1994),
			want:  []string{"The Shawshank Redemption", "Pulp Fiction", "Forrest Gump", "Léon: The Professional", "The Lion King"},
		},
		{
			name:  "box office",
			field: FieldBoxOffice,
			value: 0.3,
			want:  []string{"Seven Samurai", "The Great Dictator"},
		},
		{
			name:  "integer rating",
			field: FieldRating,
			value: 9,
			want:  []string{"The Dark Knight", "12 Angry Men", "Schindler's List", "The Lord of the Rings: The Return of the King"},
		},
		{
			name:  "no match",
			field: FieldRating,
			value: 1.5,
			want:  []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			movies, err := db.Filter(ctx, tt.field, tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(movies))
		})
	}
}

func TestFilterTextIsCaseSensitiveSubstring(t *testing.T) {
	db := seededDB(t)
	ctx := context.Background()

	upper, err := db.Filter(ctx, FieldTitle, "The")
	require.NoError(t, err)
	assert.Len(t, upper, 9)
	assert.Contains(t, titles(upper), "Léon: The Professional")
	assert.NotContains(t, titles(upper), "Back to the Future")

	lower, err := db.Filter(ctx, FieldTitle, "the")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"The Godfather",
		"The Lord of the Rings: The Return of the King",
		"Back to the Future",
		"Raiders of the Lost Ark",
	}, titles(lower))

	nolan, err := db.Filter(ctx, FieldDirector, "Nolan")
	require.NoError(t, err)
	assert.Equal(t, []string{"The Dark Knight", "Inception"}, titles(nolan))

	none, err := db.Filter(ctx, FieldDirector, "nolan")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestFilterRejectsUnknownField(t *testing.T) {
	db := seededDB(t)
	_, err := db.Filter(context.Background(), Field("nonexistent_field"), "x")

	var ferr *InvalidFieldError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, "nonexistent_field", ferr.Field)
}

func TestFilterRejectsInjection(t *testing.T) {
	db := seededDB(t)
	ctx := context.Background()

	_, err := db.Filter(ctx, Field("title = title OR 1"), "x")
	var ferr *InvalidFieldError
	require.ErrorAs(t, err, &ferr)

	movies, err := db.Filter(ctx, FieldTitle, "' OR '1'='1")
	require.NoError(t, err)
	assert.Empty(t, movies)

	n, err := db.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(DefaultMovies), n)
}

func TestFilterValueTypeMismatch(t *testing.T) {
	db := seededDB(t)
	ctx := context.Background()

	var verr *ValidationError
	_, err := db.Filter(ctx, FieldRating, "9.0")
	require.ErrorAs(t, err, &verr)
	_, err = db.Filter(ctx, FieldRuntime, 142.0)
	require.ErrorAs(t, err, &verr)
	_, err = db.Filter(ctx, FieldTitle, 3)
	require.ErrorAs(t, err, &verr)
}

func TestCountByLanguage(t *testing.T) {
	db := seededDB(t)
	ctx := context.Background()

	tests := map[string]int{
		"English":    25,
		"Japanese":   2,
		"Italian":    2,
		"Portuguese": 1,
		"english":    0,
		"Klingon":    0,
	}
	for lang, want := range tests {
		n, err := db.CountByLanguage(ctx, lang)
		require.NoError(t, err)
		assert.Equal(t, want, n, lang)
	}
}

func TestTopRated(t *testing.T) {
	db := seededDB(t)
	ctx := context.Background()

	top, err := db.TopRated(ctx, 3)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, "The Shawshank Redemption", top[0].Title)
	assert.Equal(t, 9.3, top[0].Rating)
	assert.Equal(t, "The Godfather", top[1].Title)
	assert.Equal(t, 9.2, top[1].Rating)
	// First of the 9.0 ties by insertion order.
	assert.Equal(t, "The Dark Knight", top[2].Title)

	top, err = db.TopRated(ctx, 0)
	require.NoError(t, err)
	require.Len(t, top, DefaultTopLimit)
	for i := 1; i < len(top); i++ {
		assert.GreaterOrEqual(t, top[i-1].Rating, top[i].Rating)
		if top[i-1].Rating == top[i].Rating {
			assert.Less(t, top[i-1].ID, top[i].ID)
		}
	}

	all, err := db.TopRated(ctx, 1000)
	require.NoError(t, err)
	assert.Len(t, all, len(DefaultMovies))
}

func TestByDecade(t *testing.T) {
	db := seededDB(t)
	ctx := context.Background()

	nineties, err := db.ByDecade(ctx, 199)
	require.NoError(t, err)
	assert.Len(t, nineties, 13)
	for _, m := range nineties {
		assert.GreaterOrEqual(t, m.ReleaseYear, 1990)
		assert.LessOrEqual(t, m.ReleaseYear, 1999)
	}

	seventies, err := db.ByDecade(ctx, 197)
	require.NoError(t, err)
	assert.Equal(t, []string{"The Godfather", "Apocalypse Now", "Alien"}, titles(seventies))

	empty, err := db.ByDecade(ctx, 192)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
