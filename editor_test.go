package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"gridedit/internal/grid"
	"gridedit/internal/gridstate"
)

func noFocus(tview.Primitive) {}

func newTestEditor(t *testing.T) *Editor {
	t.Helper()
	state, err := gridstate.New(defaultRecords...)
	if err != nil {
		t.Fatal(err)
	}
	return NewEditor(state, grid.DefaultColumns(" yrs"), EditorOptions{Title: "people"})
}

func pressKey(e *Editor, key tcell.Key) {
	e.grid.InputHandler()(tcell.NewEventKey(key, 0, tcell.ModNone), noFocus)
}

func pressRune(e *Editor, r rune) {
	e.grid.InputHandler()(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone), noFocus)
}

func pressOn(input *tview.InputField, key tcell.Key) {
	input.InputHandler()(tcell.NewEventKey(key, 0, tcell.ModNone), noFocus)
}

// replaceText clears input and types text one key at a time.
func replaceText(input *tview.InputField, text string) {
	handler := input.InputHandler()
	for range []rune(input.GetText()) {
		handler(tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), noFocus)
	}
	for _, r := range text {
		handler(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone), noFocus)
	}
}

func status(e *Editor) string {
	return e.statusBar.GetText(true)
}

func selectedID(t *testing.T, e *Editor) int64 {
	t.Helper()
	id, ok := e.State().Selected()
	if !ok {
		t.Fatal("expected a selection")
	}
	return id
}

func TestEditorArrowKeysSelectRows(t *testing.T) {
	e := newTestEditor(t)
	if _, ok := e.State().Selected(); ok {
		t.Fatal("new editor should start without a selection")
	}

	pressKey(e, tcell.KeyDown)
	if got := selectedID(t, e); got != 2 {
		t.Errorf("after Down selected %d, want 2", got)
	}
	pressKey(e, tcell.KeyUp)
	if got := selectedID(t, e); got != 1 {
		t.Errorf("after Up selected %d, want 1", got)
	}
	if got := status(e); !strings.Contains(got, "#1 Nguyễn Văn A · 30 yrs") {
		t.Errorf("status = %q", got)
	}
}

func TestEditorVimKeys(t *testing.T) {
	e := newTestEditor(t)
	pressRune(e, 'j')
	if _, ok := e.State().Selected(); ok {
		t.Fatal("j should not navigate without vim mode")
	}

	e.vimMode = true
	pressRune(e, 'j')
	if got := selectedID(t, e); got != 2 {
		t.Errorf("after j selected %d, want 2", got)
	}
	pressRune(e, 'l')
	if _, col := e.grid.Cursor(); col != 1 {
		t.Errorf("after l cursor column = %d, want 1", col)
	}
}

func TestEditorCellEdit(t *testing.T) {
	e := newTestEditor(t)
	pressKey(e, tcell.KeyDown)
	pressKey(e, tcell.KeyUp)
	pressKey(e, tcell.KeyRight)
	pressKey(e, tcell.KeyEnter)

	input := e.cellInput
	if input == nil {
		t.Fatal("Enter on the name cell should open the cell editor")
	}
	if got := input.GetText(); got != "Nguyễn Văn A" {
		t.Errorf("editor text = %q", got)
	}
	if !strings.Contains(status(e), "Editing Name") {
		t.Errorf("status = %q", status(e))
	}

	replaceText(input, "Lê Văn C")
	if got := e.State().CellEdit.Value; got != "Lê Văn C" {
		t.Errorf("staged value = %q", got)
	}
	if got := e.State().Records[0].Name; got != "Nguyễn Văn A" {
		t.Errorf("record changed before commit: %q", got)
	}

	pressOn(input, tcell.KeyEnter)
	if e.cellInput != nil || e.State().CellEdit != nil {
		t.Fatal("cell editor should close after commit")
	}
	if got := e.State().Records[0].Name; got != "Lê Văn C" {
		t.Errorf("committed name = %q", got)
	}
	if got := status(e); got != "Saved record 1" {
		t.Errorf("status = %q", got)
	}
}

func TestEditorCellEditInvalidNumber(t *testing.T) {
	e := newTestEditor(t)
	pressKey(e, tcell.KeyDown)
	pressKey(e, tcell.KeyEnd)
	pressKey(e, tcell.KeyEnter)

	input := e.cellInput
	if input == nil {
		t.Fatal("Enter on the age cell should open the cell editor")
	}
	replaceText(input, "")
	pressOn(input, tcell.KeyEnter)

	if e.State().CellEdit == nil {
		t.Fatal("invalid number should keep the edit open")
	}
	if got := status(e); !strings.Contains(got, "age must be a whole number") {
		t.Errorf("status = %q", got)
	}

	pressOn(input, tcell.KeyEscape)
	if e.State().CellEdit != nil {
		t.Fatal("Esc should cancel the cell edit")
	}
	if got := e.State().Records[1].Age; got != 25 {
		t.Errorf("age = %d, want 25", got)
	}
}

func TestEditorIDIsNotCellEditable(t *testing.T) {
	e := newTestEditor(t)
	pressKey(e, tcell.KeyDown)
	pressKey(e, tcell.KeyHome)
	pressKey(e, tcell.KeyEnter)

	if e.cellInput != nil {
		t.Fatal("id cell should not open a cell editor")
	}
	if got := status(e); !strings.Contains(got, "editing the whole row") {
		t.Errorf("status = %q", got)
	}
}

func TestEditorRowEdit(t *testing.T) {
	e := newTestEditor(t)
	pressKey(e, tcell.KeyDown)
	pressKey(e, tcell.KeyUp)
	pressKey(e, tcell.KeyHome)
	pressRune(e, 'e')

	if len(e.rowInputs) != 3 {
		t.Fatalf("row editor has %d inputs, want 3", len(e.rowInputs))
	}
	idInput := e.rowInputFor(gridstate.FieldID)

	// selecting another row is refused while the row is being edited
	pressKey(e, tcell.KeyDown)
	if got := selectedID(t, e); got != 1 {
		t.Errorf("selection moved to %d during row edit", got)
	}
	if !strings.Contains(status(e), "Finish the current edit first") {
		t.Errorf("status = %q", status(e))
	}

	replaceText(idInput, "2")
	pressOn(idInput, tcell.KeyCtrlS)
	if e.State().RowEdit == nil {
		t.Fatal("duplicate id should keep the row edit open")
	}
	if !strings.Contains(status(e), "already used") {
		t.Errorf("status = %q", status(e))
	}

	replaceText(idInput, "5")
	replaceText(e.rowInputFor(gridstate.FieldAge), "31")
	pressOn(idInput, tcell.KeyCtrlS)
	if e.State().RowEdit != nil || e.rowEditing {
		t.Fatal("row editor should close after save")
	}
	want := gridstate.Record{ID: 5, Name: "Nguyễn Văn A", Age: 31}
	if got := e.State().Records[0]; got != want {
		t.Errorf("saved record = %+v, want %+v", got, want)
	}
	if got := selectedID(t, e); got != 5 {
		t.Errorf("selection = %d, want 5", got)
	}
}

func TestEditorRowEditCancel(t *testing.T) {
	e := newTestEditor(t)
	pressKey(e, tcell.KeyDown)
	pressRune(e, 'e')
	replaceText(e.rowInputFor(gridstate.FieldName), "changed")

	pressKey(e, tcell.KeyEscape)
	if e.State().RowEdit != nil {
		t.Fatal("Esc on the grid should cancel the row edit")
	}
	if got := e.State().Records[1].Name; got != "Trần Thị B" {
		t.Errorf("name = %q after cancel", got)
	}
}

func TestEditorAdd(t *testing.T) {
	e := newTestEditor(t)
	pressRune(e, 'a')
	if e.inputForm == nil {
		t.Fatal("a should open the add form")
	}
	e.inputForm.GetFormItem(0).(*tview.InputField).SetText("Lê Văn C")
	e.inputForm.GetFormItem(1).(*tview.InputField).SetText("41")
	e.submitInputForm()

	if e.inputForm != nil || e.pages.HasPage(pageInput) {
		t.Error("form should close after submit")
	}
	records := e.State().Records
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	if want := (gridstate.Record{ID: 3, Name: "Lê Văn C", Age: 41}); records[2] != want {
		t.Errorf("added %+v, want %+v", records[2], want)
	}
	if got := status(e); got != "Added record 3" {
		t.Errorf("status = %q", got)
	}

	pressRune(e, 'a')
	e.inputForm.GetFormItem(1).(*tview.InputField).SetText("20")
	e.submitInputForm()
	if len(e.State().Records) != 3 {
		t.Error("add without a name should not add a record")
	}
	if got := status(e); !strings.Contains(got, "Record not added") {
		t.Errorf("status = %q", got)
	}
}

func TestEditorDelete(t *testing.T) {
	e := newTestEditor(t)
	pressRune(e, 'd')
	if e.confirm != nil {
		t.Fatal("delete without selection should not ask for confirmation")
	}
	if got := status(e); !strings.Contains(got, "Select a row first") {
		t.Errorf("status = %q", got)
	}

	pressKey(e, tcell.KeyDown)
	pressRune(e, 'd')
	if e.confirm == nil || e.confirm.RowID != 2 {
		t.Fatalf("confirm = %+v", e.confirm)
	}
	e.finishConfirm(false)
	if len(e.State().Records) != 2 {
		t.Error("cancelled delete removed a record")
	}
	if got := status(e); got != "Delete cancelled" {
		t.Errorf("status = %q", got)
	}

	pressKey(e, tcell.KeyDelete)
	e.finishConfirm(true)
	records := e.State().Records
	if len(records) != 1 || records[0].ID != 1 {
		t.Errorf("records after delete = %+v", records)
	}
	if _, ok := e.State().Selected(); ok {
		t.Error("delete should clear the selection")
	}
}

// clickRow sends a left click on the id cell of view row.
func clickRow(e *Editor, row int) {
	e.grid.SetRect(0, 0, 80, 20)
	startX, _ := e.grid.ColumnPosition(0)
	event := tcell.NewEventMouse(startX+1, gridHeaderRows+row, tcell.Button1, tcell.ModNone)
	e.grid.MouseHandler()(tview.MouseLeftClick, event, noFocus)
}

func TestEditorClickSelectsRow(t *testing.T) {
	e := newTestEditor(t)
	clickRow(e, 1)
	if got := selectedID(t, e); got != 2 {
		t.Errorf("selected %d, want 2", got)
	}
}

func TestEditorDeleteIgnoresGridWhileConfirming(t *testing.T) {
	e := newTestEditor(t)
	pressKey(e, tcell.KeyDown)
	pressRune(e, 'd')
	if e.confirm == nil || e.confirm.RowID != 2 {
		t.Fatalf("confirm = %+v", e.confirm)
	}

	clickRow(e, 0)
	pressKey(e, tcell.KeyUp)
	if got := selectedID(t, e); got != 2 {
		t.Errorf("input behind the dialog selected %d", got)
	}
	if row, _ := e.grid.Cursor(); row != 1 {
		t.Errorf("cursor row = %d, want 1", row)
	}

	e.finishConfirm(true)
	records := e.State().Records
	if len(records) != 1 || records[0].ID != 1 {
		t.Errorf("records after delete = %+v", records)
	}
}

func TestEditorDeleteRefusesChangedSelection(t *testing.T) {
	e := newTestEditor(t)
	pressKey(e, tcell.KeyDown)
	pressRune(e, 'd')

	// the selection moves without going through the grid
	e.state, _, _ = gridstate.Apply(e.state, gridstate.Select{ID: 1})
	e.finishConfirm(true)

	if got := len(e.State().Records); got != 2 {
		t.Errorf("%d records left, want 2", got)
	}
	if got := status(e); !strings.Contains(got, "Selection changed, nothing was deleted") {
		t.Errorf("status = %q", got)
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
		user bool
	}{
		{"field error", &gridstate.FieldError{Field: gridstate.FieldAge, Value: "x"}, `age must be a whole number, got "x"`, true},
		{"wrapped sentinel", errors.Join(errors.New("save 1"), gridstate.ErrDuplicateID), "That id is already used by another record", true},
		{"unexpected", errors.New("boom"), "boom", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errorMessage(tt.err); got != tt.want {
				t.Errorf("errorMessage() = %q, want %q", got, tt.want)
			}
			if got := isUserError(tt.err); got != tt.user {
				t.Errorf("isUserError() = %v, want %v", got, tt.user)
			}
		})
	}
}
