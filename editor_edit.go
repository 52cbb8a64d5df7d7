package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"gridedit/internal/grid"
	"gridedit/internal/gridstate"
)

type rowInput struct {
	field gridstate.Field
	input *tview.InputField
}

// newInlineInput creates an input prefilled with text. The changed handler is
// attached after the text so the initial value is not reported as an edit.
func newInlineInput(column grid.Column, text string, changed func(string)) *tview.InputField {
	input := tview.NewInputField().
		SetText(text).
		SetFieldBackgroundColor(tcell.ColorRoyalBlue).
		SetFieldTextColor(tcell.ColorWhite)
	if column.Edit == grid.EditNumber {
		input.SetAcceptanceFunc(acceptInteger)
	}
	input.SetChangedFunc(changed)
	return input
}

// acceptInteger allows integer keystrokes and an empty field, so a value can
// be cleared before retyping it.
func acceptInteger(text string, ch rune) bool {
	return text == "" || tview.InputFieldInteger(text, ch)
}

func isCtrl(event *tcell.EventKey, letter rune) bool {
	ctrlKey := tcell.KeyCtrlA + tcell.Key(letter-'a')
	if event.Key() == ctrlKey {
		return true
	}
	return event.Key() == tcell.KeyRune && event.Modifiers()&tcell.ModCtrl != 0 && event.Rune() == letter
}

func (e *Editor) openCellEditor(ce gridstate.CellEdit) {
	col := grid.ColumnIndex(e.columns, ce.Field)
	row := e.view.RowIndex(ce.RowID)
	if col < 0 || row < 0 {
		return
	}

	input := newInlineInput(e.columns[col], ce.Value, func(text string) {
		e.dispatch(gridstate.ChangeValue{Text: text})
	})
	input.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyTab, tcell.KeyBacktab:
			e.dispatch(gridstate.CommitCell{})
			return nil
		case tcell.KeyEscape:
			e.dispatch(gridstate.CancelCell{})
			return nil
		}
		return event
	})

	x, y, width := e.grid.CellRect(row, col)
	e.cellInput = input
	e.cellTarget = &gridstate.CellEdit{RowID: ce.RowID, Field: ce.Field}
	e.pages.AddPage(pageCellEditor, overlayAt(input, x, y, width, 1), true, true)
	e.app.SetFocus(input)
}

func (e *Editor) closeCellEditor() {
	if e.cellInput == nil {
		return
	}
	e.pages.RemovePage(pageCellEditor)
	e.cellInput = nil
	e.cellTarget = nil
	e.focusGrid()
}

func (e *Editor) openRowEditor(re gridstate.RowEdit) {
	row := e.view.RowIndex(re.RowID)
	if row < 0 {
		return
	}

	layer := tview.NewFlex()
	pos := 0
	inputs := make([]rowInput, 0, len(e.columns))
	for col, column := range e.columns {
		value, ok := re.Values[column.Field]
		if !ok || column.Edit == grid.EditNone {
			continue
		}
		field := column.Field
		input := newInlineInput(column, value, func(text string) {
			e.dispatch(gridstate.ChangeField{Field: field, Text: text})
		})
		x, _, width := e.grid.CellRect(row, col)
		layer.AddItem(nil, max(x-pos, 0), 0, false)
		layer.AddItem(input, width, 0, len(inputs) == 0)
		pos = max(x, pos) + width
		inputs = append(inputs, rowInput{field: field, input: input})
	}
	if len(inputs) == 0 {
		return
	}
	layer.AddItem(nil, 0, 1, false)

	for i, ri := range inputs {
		ri.input.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
			switch {
			case event.Key() == tcell.KeyTab:
				e.app.SetFocus(inputs[(i+1)%len(inputs)].input)
				return nil
			case event.Key() == tcell.KeyBacktab:
				e.app.SetFocus(inputs[(i-1+len(inputs))%len(inputs)].input)
				return nil
			case event.Key() == tcell.KeyEnter || isCtrl(event, 's'):
				e.dispatch(gridstate.Save{})
				return nil
			case event.Key() == tcell.KeyEscape:
				e.dispatch(gridstate.Cancel{})
				return nil
			}
			return event
		})
	}

	_, y, _ := e.grid.CellRect(row, 0)
	e.rowInputs = inputs
	e.rowTarget = re.RowID
	e.rowEditing = true
	e.pages.AddPage(pageRowEditor, overlayAt(layer, 0, y, e.grid.tableWidth()+1, 1), true, true)
	e.app.SetFocus(e.rowInputFor(e.cursorField()))
}

// rowInputFor returns the row editor input for field, or the first one.
func (e *Editor) rowInputFor(field gridstate.Field) *tview.InputField {
	for _, ri := range e.rowInputs {
		if ri.field == field {
			return ri.input
		}
	}
	return e.rowInputs[0].input
}

func (e *Editor) cursorField() gridstate.Field {
	_, col := e.grid.Cursor()
	if col < 0 || col >= len(e.columns) {
		return ""
	}
	return e.columns[col].Field
}

func (e *Editor) closeRowEditor() {
	if !e.rowEditing {
		return
	}
	e.pages.RemovePage(pageRowEditor)
	e.rowInputs = nil
	e.rowTarget = 0
	e.rowEditing = false
	e.focusGrid()
}

// editHint describes what an inline editor accepts.
func editHint(kind grid.EditKind) string {
	switch kind {
	case grid.EditNumber:
		return " (whole number)"
	case grid.EditNone:
		return " (read-only)"
	}
	return ""
}

func (e *Editor) cellEditStatus(ce *gridstate.CellEdit) string {
	label, hint := string(ce.Field), ""
	if col := grid.ColumnIndex(e.columns, ce.Field); col >= 0 {
		label, hint = e.columns[col].Label, editHint(e.columns[col].Edit)
	}
	return fmt.Sprintf("Editing %s%s · Enter to save · Esc to cancel", label, hint)
}
