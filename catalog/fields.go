package catalog

// Field is a filterable column of the movies table.
type Field string

const (
	FieldTitle       Field = "title"
	FieldDirector    Field = "director"
	FieldReleaseYear Field = "release_year"
	FieldLanguage    Field = "language"
	FieldRating      Field = "rating"
	FieldGenre       Field = "genre"
	FieldRuntime     Field = "runtime"
	FieldBoxOffice   Field = "box_office"
)

// FieldKind tells how a filter value is compared against a column.
type FieldKind int

const (
	KindText FieldKind = iota
	KindInt
	KindFloat
)

// filterSafelist is the only source of column names that reach SQL text.
var filterSafelist = []struct {
	field  Field
	column string
	kind   FieldKind
}{
	{FieldTitle, "title", KindText},
	{FieldDirector, "director", KindText},
	{FieldReleaseYear, "release_year", KindInt},
	{FieldLanguage, "language", KindText},
	{FieldRating, "rating", KindFloat},
	{FieldGenre, "genre", KindText},
	{FieldRuntime, "runtime", KindInt},
	{FieldBoxOffice, "box_office", KindFloat},
}

// ParseField resolves name against the allow-list.
func ParseField(name string) (Field, error) {
	for _, f := range filterSafelist {
		if string(f.field) == name {
			return f.field, nil
		}
	}
	return "", &InvalidFieldError{Field: name}
}

// Kind reports how values for f are compared. Unknown fields report KindText.
func (f Field) Kind() FieldKind {
	for _, s := range filterSafelist {
		if s.field == f {
			return s.kind
		}
	}
	return KindText
}

// Numeric reports whether f is matched by exact equality.
func (f Field) Numeric() bool { return f.Kind() != KindText }

func (f Field) column() (string, bool) {
	for _, s := range filterSafelist {
		if s.field == f {
			return s.column, true
		}
	}
	return "", false
}

// FieldNames lists the allow-list in column order.
func FieldNames() []string {
	names := make([]string, 0, len(filterSafelist))
	for _, f := range filterSafelist {
		names = append(names, string(f.field))
	}
	return names
}
