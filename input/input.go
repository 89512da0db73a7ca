// Package input converts raw text typed by a user into the typed values the
// catalog accepts. All type coercion happens here, never in the storage layer.
package input

import (
	"strconv"
	"strings"

	"movie-catalog/catalog"
)

// Form is a movie as typed at a prompt or passed on the command line.
type Form struct {
	Title       string
	Director    string
	ReleaseYear string
	Language    string
	Rating      string
	Genre       string
	Runtime     string
	BoxOffice   string // empty means unknown
}

// FormFromMovie renders an existing movie so it can be edited field by field.
func FormFromMovie(m catalog.Movie) Form {
	f := Form{
		Title:       m.Title,
		Director:    m.Director,
		ReleaseYear: strconv.Itoa(m.ReleaseYear),
		Language:    m.Language,
		Rating:      strconv.FormatFloat(m.Rating, 'f', -1, 64),
		Genre:       m.Genre,
		Runtime:     strconv.Itoa(m.Runtime),
	}
	if m.BoxOffice != nil {
		f.BoxOffice = strconv.FormatFloat(*m.BoxOffice, 'f', -1, 64)
	}
	return f
}

// MovieInput coerces every field and validates the result. Problems with
// several fields are reported together in one *catalog.ValidationError.
func (f Form) MovieInput() (catalog.MovieInput, error) {
	errs := map[string]string{}
	in := catalog.MovieInput{
		Title:    strings.TrimSpace(f.Title),
		Director: strings.TrimSpace(f.Director),
		Language: strings.TrimSpace(f.Language),
		Genre:    strings.TrimSpace(f.Genre),
	}

	var err error
	if in.ReleaseYear, err = parseInt(f.ReleaseYear); err != nil {
		errs["release_year"] = err.Error()
	}
	if in.Rating, err = parseFloat(f.Rating); err != nil {
		errs["rating"] = err.Error()
	}
	if in.Runtime, err = parseInt(f.Runtime); err != nil {
		errs["runtime"] = err.Error()
	}
	if s := strings.TrimSpace(f.BoxOffice); s != "" {
		v, err := parseFloat(s)
		if err != nil {
			errs["box_office"] = err.Error()
		} else {
			in.BoxOffice = &v
		}
	}

	if verr := in.Validate(); verr != nil {
		ve, ok := verr.(*catalog.ValidationError)
		if !ok {
			return catalog.MovieInput{}, verr
		}
		for k, v := range ve.Fields {
			// A parse failure explains more than the zero value's bound check.
			if _, seen := errs[k]; !seen {
				errs[k] = v
			}
		}
	}
	if len(errs) > 0 {
		return catalog.MovieInput{}, &catalog.ValidationError{Fields: errs}
	}
	return in, nil
}

// FilterValue parses raw into the Go type Filter expects for field.
func FilterValue(field catalog.Field, raw string) (any, error) {
	switch field.Kind() {
	case catalog.KindInt:
		v, err := parseInt(raw)
		if err != nil {
			return nil, catalog.NewValidationError(string(field), err.Error())
		}
		return v, nil
	case catalog.KindFloat:
		v, err := parseFloat(raw)
		if err != nil {
			return nil, catalog.NewValidationError(string(field), err.Error())
		}
		return v, nil
	default:
		return raw, nil
	}
}

// Filter resolves a field name and its raw value in one step.
func Filter(fieldName, raw string) (catalog.Field, any, error) {
	field, err := catalog.ParseField(strings.TrimSpace(fieldName))
	if err != nil {
		return "", nil, err
	}
	v, err := FilterValue(field, raw)
	if err != nil {
		return "", nil, err
	}
	return field, v, nil
}

// DecadeIndex turns "1990", "1990s" or "199" into the decade index 199.
// Four-digit values are read as a year.
func DecadeIndex(raw string) (int, error) {
	s := strings.TrimSuffix(strings.TrimSpace(raw), "s")
	n, err := parseInt(s)
	if err != nil {
		return 0, catalog.NewValidationError("decade", err.Error())
	}
	if n < 0 {
		return 0, catalog.NewValidationError("decade", "must not be negative")
	}
	if n >= 1000 {
		return n / 10, nil
	}
	return n, nil
}

// ID parses a movie id.
func ID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, catalog.NewValidationError("id", "must be a positive whole number")
	}
	return id, nil
}

type parseError string

func (e parseError) Error() string { return string(e) }

func parseInt(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, parseError("This field is required")
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, parseError("Value must be a whole number")
	}
	return v, nil
}

func parseFloat(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, parseError("This field is required")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, parseError("Value must be a number")
	}
	return v, nil
}
