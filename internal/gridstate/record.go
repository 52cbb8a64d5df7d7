package gridstate

import (
	"strconv"
	"strings"
)

// Record is one editable row of the grid.
type Record struct {
	ID   int64
	Name string
	Age  int
}

// Field names a record attribute.
type Field string

const (
	FieldID   Field = "id"
	FieldName Field = "name"
	FieldAge  Field = "age"
)

// Fields lists every record field in display order.
var Fields = []Field{FieldID, FieldName, FieldAge}

// Valid reports whether f names a record field.
func (f Field) Valid() bool {
	switch f {
	case FieldID, FieldName, FieldAge:
		return true
	}
	return false
}

// CellEditable reports whether f can be edited on its own.
// The id is only changed through a whole-row edit.
func (f Field) CellEditable() bool {
	return f == FieldName || f == FieldAge
}

// RowEditable reports whether f is staged by a row edit.
func (f Field) RowEditable() bool {
	return f.Valid()
}

// Numeric reports whether committed text for f is coerced to an integer.
func (f Field) Numeric() bool {
	return f == FieldID || f == FieldAge
}

// Text returns the staged (plain text) form of a field value.
func (r Record) Text(f Field) string {
	switch f {
	case FieldID:
		return strconv.FormatInt(r.ID, 10)
	case FieldName:
		return r.Name
	case FieldAge:
		return strconv.Itoa(r.Age)
	}
	return ""
}

// with returns a copy of r with f set from text, coercing numeric fields.
func (r Record) with(f Field, text string) (Record, error) {
	switch f {
	case FieldID:
		id, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
		if err != nil {
			return r, &FieldError{Field: f, Value: text}
		}
		r.ID = id
	case FieldName:
		r.Name = text
	case FieldAge:
		age, err := parseAge(text)
		if err != nil {
			return r, &FieldError{Field: f, Value: text}
		}
		r.Age = age
	default:
		return r, &FieldError{Field: f, Value: text, Err: ErrNotEditable}
	}
	return r, nil
}

func parseAge(text string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(text))
}
