package gridstate

import (
	"fmt"
	"strings"
)

// Apply handles one command and returns the next state and the effects the
// UI has to act on. On error the returned state is s.
func Apply(s State, cmd Command) (State, []Effect, error) {
	switch c := cmd.(type) {
	case Select:
		return s.selectRow(c.ID)
	case RequestAdd:
		return s, []Effect{addRequest()}, nil
	case AddRecord:
		return s.addRecord(c.NameText, c.AgeText)
	case BeginRowEdit:
		return s.beginRowEdit()
	case ChangeField:
		return s.changeField(c.Field, c.Text)
	case Save:
		return s.saveRow()
	case Cancel:
		if s.RowEdit == nil {
			return s, nil, fmt.Errorf("cancel: %w", ErrNotEditing)
		}
		next := s.clone()
		next.RowEdit = nil
		return next, nil, nil
	case RequestDelete:
		id, ok := s.Selected()
		if !ok {
			return s, nil, fmt.Errorf("delete: %w", ErrNoSelection)
		}
		return s, []Effect{ConfirmRequest{Kind: ConfirmDeleteRecord, RowID: id, Prompt: "Delete this row?"}}, nil
	case DeleteSelected:
		return s.deleteSelected(c.RowID, c.Confirmed)
	case BeginCellEdit:
		return s.beginCellEdit(c.RowID, c.Field)
	case ChangeValue:
		if s.CellEdit == nil {
			return s, nil, fmt.Errorf("change value: %w", ErrNotEditing)
		}
		next := s.clone()
		next.CellEdit.Value = c.Text
		return next, nil, nil
	case CommitCell:
		return s.commitCell()
	case CancelCell:
		if s.CellEdit == nil {
			return s, nil, fmt.Errorf("cancel cell: %w", ErrNotEditing)
		}
		next := s.clone()
		next.CellEdit = nil
		return next, nil, nil
	}
	return s, nil, fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)
}

func addRequest() InputRequest {
	return InputRequest{
		Kind:  InputAddRecord,
		Title: "Add record",
		Fields: []InputField{
			{Field: FieldName, Label: "Name"},
			{Field: FieldAge, Label: "Age", Numeric: true},
		},
	}
}

func (s State) selectRow(id int64) (State, []Effect, error) {
	if _, _, ok := s.Find(id); !ok {
		return s, nil, fmt.Errorf("select %d: %w", id, ErrNotFound)
	}
	if s.RowEdit != nil && s.RowEdit.RowID != id {
		return s, nil, fmt.Errorf("select %d: row %d: %w", id, s.RowEdit.RowID, ErrEditInProgress)
	}
	next, effects := s, []Effect(nil)
	if s.CellEdit != nil {
		var err error
		if next, effects, err = s.commitCell(); err != nil {
			return s, nil, err
		}
	}
	next.selected, next.hasSelected = id, true
	return next, effects, nil
}

// addRecord skips the add without error when name is empty or age is not an integer.
func (s State) addRecord(name, ageText string) (State, []Effect, error) {
	age, err := parseAge(ageText)
	if strings.TrimSpace(name) == "" || err != nil {
		return s, nil, nil
	}
	next := s.clone()
	r := Record{ID: s.nextID(), Name: name, Age: age}
	next.Records = append(next.Records, r)
	return next, []Effect{Changed{Kind: RecordAdded, RowID: r.ID}}, nil
}

func (s State) beginRowEdit() (State, []Effect, error) {
	r, ok := s.SelectedRecord()
	if !ok {
		return s, nil, fmt.Errorf("edit: %w", ErrNoSelection)
	}
	if s.RowEdit != nil {
		return s, nil, fmt.Errorf("edit %d: row %d: %w", r.ID, s.RowEdit.RowID, ErrEditInProgress)
	}
	next := s.clone()
	next.CellEdit = nil
	values := make(map[Field]string, len(Fields))
	for _, f := range Fields {
		if f.RowEditable() {
			values[f] = r.Text(f)
		}
	}
	next.RowEdit = &RowEdit{RowID: r.ID, Values: values}
	return next, nil, nil
}

func (s State) changeField(f Field, text string) (State, []Effect, error) {
	if s.RowEdit == nil {
		return s, nil, fmt.Errorf("change %s: %w", f, ErrNotEditing)
	}
	if !f.RowEditable() {
		return s, nil, fmt.Errorf("change %s: %w", f, ErrNotEditable)
	}
	next := s.clone()
	next.RowEdit.Values[f] = text
	return next, nil, nil
}

func (s State) saveRow() (State, []Effect, error) {
	if s.RowEdit == nil {
		return s, nil, fmt.Errorf("save: %w", ErrNotEditing)
	}
	rowID := s.RowEdit.RowID
	orig, idx, ok := s.Find(rowID)
	if !ok {
		return s, nil, fmt.Errorf("save %d: %w", rowID, ErrNotFound)
	}
	updated := orig
	for _, f := range Fields {
		text, staged := s.RowEdit.Values[f]
		if !staged {
			continue
		}
		var err error
		if updated, err = updated.with(f, text); err != nil {
			return s, nil, fmt.Errorf("save %d: %w", rowID, err)
		}
	}
	if updated.ID != rowID {
		if _, _, taken := s.Find(updated.ID); taken {
			return s, nil, fmt.Errorf("save %d: id %d: %w", rowID, updated.ID, ErrDuplicateID)
		}
	}

	next := s.clone()
	next.Records[idx] = updated
	next.RowEdit = nil
	if next.hasSelected && next.selected == rowID {
		next.selected = updated.ID
	}
	var effects []Effect
	if updated != orig {
		effects = append(effects, Changed{Kind: RecordUpdated, RowID: updated.ID})
	}
	return next, effects, nil
}

// deleteSelected is a no-op when the user did not confirm.
func (s State) deleteSelected(rowID int64, confirmed bool) (State, []Effect, error) {
	id, ok := s.Selected()
	if !ok {
		return s, nil, fmt.Errorf("delete: %w", ErrNoSelection)
	}
	if !confirmed {
		return s, nil, nil
	}
	if id != rowID {
		return s, nil, fmt.Errorf("delete %d: selected %d: %w", rowID, id, ErrSelectionChanged)
	}
	_, idx, found := s.Find(id)
	if !found {
		return s, nil, fmt.Errorf("delete %d: %w", id, ErrNotFound)
	}
	next := s.clone()
	next.Records = append(next.Records[:idx], next.Records[idx+1:]...)
	next.selected, next.hasSelected = 0, false
	if next.RowEdit != nil && next.RowEdit.RowID == id {
		next.RowEdit = nil
	}
	if next.CellEdit != nil && next.CellEdit.RowID == id {
		next.CellEdit = nil
	}
	return next, []Effect{Changed{Kind: RecordDeleted, RowID: id}}, nil
}

func (s State) beginCellEdit(rowID int64, f Field) (State, []Effect, error) {
	r, _, ok := s.Find(rowID)
	if !ok {
		return s, nil, fmt.Errorf("edit cell %d.%s: %w", rowID, f, ErrNotFound)
	}
	if !f.CellEditable() {
		return s, nil, fmt.Errorf("edit cell %d.%s: %w", rowID, f, ErrNotEditable)
	}
	if s.RowEdit != nil {
		return s, nil, fmt.Errorf("edit cell %d.%s: row %d: %w", rowID, f, s.RowEdit.RowID, ErrEditInProgress)
	}
	if s.CellEdit != nil && s.CellEdit.RowID == rowID && s.CellEdit.Field == f {
		return s, nil, nil
	}

	next, effects := s, []Effect(nil)
	if s.CellEdit != nil {
		var err error
		if next, effects, err = s.commitCell(); err != nil {
			return s, nil, err
		}
		// committing a sibling field of the same row changes r
		r, _, _ = next.Find(rowID)
	}
	next = next.clone()
	next.CellEdit = &CellEdit{RowID: rowID, Field: f, Value: r.Text(f)}
	return next, effects, nil
}

func (s State) commitCell() (State, []Effect, error) {
	if s.CellEdit == nil {
		return s, nil, fmt.Errorf("commit: %w", ErrNotEditing)
	}
	ce := *s.CellEdit
	orig, idx, ok := s.Find(ce.RowID)
	if !ok {
		return s, nil, fmt.Errorf("commit %d.%s: %w", ce.RowID, ce.Field, ErrNotFound)
	}
	updated, err := orig.with(ce.Field, ce.Value)
	if err != nil {
		return s, nil, fmt.Errorf("commit %d: %w", ce.RowID, err)
	}
	next := s.clone()
	next.Records[idx] = updated
	next.CellEdit = nil
	if updated == orig {
		return next, nil, nil
	}
	return next, []Effect{Changed{Kind: RecordUpdated, RowID: updated.ID}}, nil
}
