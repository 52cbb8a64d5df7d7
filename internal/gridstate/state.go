package gridstate

import (
	"fmt"
	"maps"
	"math"
	"slices"
)

// Mode is the rendering mode of a cell, or of the grid as a whole.
type Mode int

const (
	Viewing Mode = iota
	CellEditing
	RowEditing
)

func (m Mode) String() string {
	switch m {
	case Viewing:
		return "viewing"
	case CellEditing:
		return "cell-editing"
	case RowEditing:
		return "row-editing"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// CellEdit is a single field of a single row in inline-edit mode.
type CellEdit struct {
	RowID int64
	Field Field
	Value string
}

// RowEdit is a whole row in edit mode with one staged value per field.
type RowEdit struct {
	RowID  int64
	Values map[Field]string
}

// State is the record collection together with selection and staged edits.
// It is a value: Apply never mutates the State it is given.
type State struct {
	Records []Record

	selected    int64
	hasSelected bool

	CellEdit *CellEdit
	RowEdit  *RowEdit
}

// New returns a viewing state over records. Ids must be unique.
func New(records ...Record) (State, error) {
	seen := make(map[int64]struct{}, len(records))
	for _, r := range records {
		if _, ok := seen[r.ID]; ok {
			return State{}, fmt.Errorf("record %d: %w", r.ID, ErrDuplicateID)
		}
		seen[r.ID] = struct{}{}
	}
	return State{Records: slices.Clone(records)}, nil
}

// Selected returns the selected record id, if any.
func (s State) Selected() (int64, bool) {
	return s.selected, s.hasSelected
}

// SelectedRecord returns the selected record, if any.
func (s State) SelectedRecord() (Record, bool) {
	if !s.hasSelected {
		return Record{}, false
	}
	r, _, ok := s.Find(s.selected)
	return r, ok
}

// Find returns the record with the given id and its position.
func (s State) Find(id int64) (Record, int, bool) {
	for i, r := range s.Records {
		if r.ID == id {
			return r, i, true
		}
	}
	return Record{}, -1, false
}

// Mode returns the editing mode of the grid as a whole.
func (s State) Mode() Mode {
	switch {
	case s.RowEdit != nil:
		return RowEditing
	case s.CellEdit != nil:
		return CellEditing
	}
	return Viewing
}

// ModeOf returns the mode in which the cell (id, field) renders.
func (s State) ModeOf(id int64, field Field) Mode {
	if s.RowEdit != nil && s.RowEdit.RowID == id && field.RowEditable() {
		return RowEditing
	}
	if s.CellEdit != nil && s.CellEdit.RowID == id && s.CellEdit.Field == field {
		return CellEditing
	}
	return Viewing
}

// Staged returns the staged text for the cell (id, field) when it is being edited.
func (s State) Staged(id int64, field Field) (string, bool) {
	switch s.ModeOf(id, field) {
	case RowEditing:
		return s.RowEdit.Values[field], true
	case CellEditing:
		return s.CellEdit.Value, true
	}
	return "", false
}

func (s State) clone() State {
	next := s
	next.Records = slices.Clone(s.Records)
	if s.CellEdit != nil {
		ce := *s.CellEdit
		next.CellEdit = &ce
	}
	if s.RowEdit != nil {
		next.RowEdit = &RowEdit{RowID: s.RowEdit.RowID, Values: maps.Clone(s.RowEdit.Values)}
	}
	return next
}

// nextID is max id + 1, or the smallest unused positive id once the
// largest id is math.MaxInt64.
func (s State) nextID() int64 {
	var top int64
	for _, r := range s.Records {
		top = max(top, r.ID)
	}
	if top < math.MaxInt64 {
		return top + 1
	}
	used := make(map[int64]bool, len(s.Records))
	for _, r := range s.Records {
		used[r.ID] = true
	}
	id := int64(1)
	for used[id] {
		id++
	}
	return id
}
