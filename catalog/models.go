package catalog

import "time"

// TimestampLayout is the on-disk format of the added_date column.
const TimestampLayout = "2006-01-02 15:04:05"

// Movie is one row of the movies table.
// AddedDate is assigned on insert and never changed afterwards.
type Movie struct {
	ID          int64     `json:"id" yaml:"-"`
	Title       string    `json:"title" yaml:"title"`
	Director    string    `json:"director" yaml:"director"`
	ReleaseYear int       `json:"release_year" yaml:"release_year"`
	Language    string    `json:"language" yaml:"language"`
	Rating      float64   `json:"rating" yaml:"rating"`
	Genre       string    `json:"genre" yaml:"genre"`
	Runtime     int       `json:"runtime" yaml:"runtime"`
	BoxOffice   *float64  `json:"box_office,omitempty" yaml:"box_office,omitempty"` // millions USD
	AddedDate   time.Time `json:"added_date" yaml:"-"`
}

// MovieInput holds the fields a caller may set on insert or update.
type MovieInput struct {
	Title       string   `json:"title" yaml:"title" validate:"required"`
	Director    string   `json:"director" yaml:"director" validate:"required"`
	ReleaseYear int      `json:"release_year" yaml:"release_year" validate:"gte=1800,notfuture"`
	Language    string   `json:"language" yaml:"language" validate:"required"`
	Rating      float64  `json:"rating" yaml:"rating" validate:"gte=0,lte=10"`
	Genre       string   `json:"genre" yaml:"genre" validate:"required"`
	Runtime     int      `json:"runtime" yaml:"runtime" validate:"gte=1"`
	BoxOffice   *float64 `json:"box_office" yaml:"box_office" validate:"omitempty,gte=0"`
}

// Input returns the mutable part of m, e.g. to prefill an update.
func (m Movie) Input() MovieInput {
	return MovieInput{
		Title:       m.Title,
		Director:    m.Director,
		ReleaseYear: m.ReleaseYear,
		Language:    m.Language,
		Rating:      m.Rating,
		Genre:       m.Genre,
		Runtime:     m.Runtime,
		BoxOffice:   m.BoxOffice,
	}
}

// BoxOfficeValue returns the box office figure, or 0 when unknown.
func (m Movie) BoxOfficeValue() float64 {
	if m.BoxOffice == nil {
		return 0
	}
	return *m.BoxOffice
}
