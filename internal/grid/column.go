package grid

import (
	"strconv"

	"gridedit/internal/gridstate"
)

// EditKind selects the inline editor used for a column.
type EditKind int

const (
	EditNone EditKind = iota
	EditText
	EditNumber
)

// Text is a rendered cell value.
type Text struct {
	Value    string
	Emphasis bool
}

// Column describes how one record field is labelled, displayed and edited.
type Column struct {
	Field  gridstate.Field
	Label  string
	Width  int
	Render func(gridstate.Record) Text
	Edit   EditKind
}

// DefaultColumns returns the id, name and age columns. ageUnit is appended
// to rendered ages.
func DefaultColumns(ageUnit string) []Column {
	return []Column{
		{
			Field: gridstate.FieldID,
			Label: "ID",
			Width: 6,
			Render: func(r gridstate.Record) Text {
				return Text{Value: strconv.FormatInt(r.ID, 10)}
			},
			Edit: EditNumber,
		},
		{
			Field: gridstate.FieldName,
			Label: "Name",
			Width: 20,
			Render: func(r gridstate.Record) Text {
				return Text{Value: r.Name, Emphasis: true}
			},
			Edit: EditText,
		},
		{
			Field: gridstate.FieldAge,
			Label: "Age",
			Width: 10,
			Render: func(r gridstate.Record) Text {
				return Text{Value: strconv.Itoa(r.Age) + ageUnit}
			},
			Edit: EditNumber,
		},
	}
}

// ColumnIndex returns the position of the column showing field, or -1.
func ColumnIndex(cols []Column, field gridstate.Field) int {
	for i, c := range cols {
		if c.Field == field {
			return i
		}
	}
	return -1
}
