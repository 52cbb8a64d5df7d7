package grid

import (
	"gridedit/internal/gridstate"
)

// Header is a rendered column header.
type Header struct {
	Field gridstate.Field
	Label string
	Width int
}

// Cell is one rendered cell. When Mode is not Viewing, Text holds the staged
// edit value rather than the formatted field.
type Cell struct {
	Text     Text
	Mode     gridstate.Mode
	Editable bool
}

// Row is one rendered record.
type Row struct {
	ID       int64
	Selected bool
	Cells    []Cell
}

// View is the row/column model of a state for a set of columns.
type View struct {
	Headers []Header
	Rows    []Row
}

// Project renders s through cols. Rows follow the order of s.Records.
func Project(s gridstate.State, cols []Column) View {
	v := View{
		Headers: make([]Header, len(cols)),
		Rows:    make([]Row, len(s.Records)),
	}
	for i, c := range cols {
		v.Headers[i] = Header{Field: c.Field, Label: c.Label, Width: c.Width}
	}

	selected, hasSelected := s.Selected()
	for i, r := range s.Records {
		row := Row{
			ID:       r.ID,
			Selected: hasSelected && selected == r.ID,
			Cells:    make([]Cell, len(cols)),
		}
		for j, c := range cols {
			mode := s.ModeOf(r.ID, c.Field)
			cell := Cell{
				Mode:     mode,
				Editable: c.Edit != EditNone && (mode == gridstate.RowEditing || c.Field.CellEditable()),
			}
			if staged, ok := s.Staged(r.ID, c.Field); ok {
				cell.Text = Text{Value: staged}
			} else if c.Render != nil {
				cell.Text = c.Render(r)
			} else {
				cell.Text = Text{Value: r.Text(c.Field)}
			}
			row.Cells[j] = cell
		}
		v.Rows[i] = row
	}
	return v
}

// RowIndex returns the position of the row for id, or -1.
func (v View) RowIndex(id int64) int {
	for i, r := range v.Rows {
		if r.ID == id {
			return i
		}
	}
	return -1
}
