package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"gridedit/internal/gridstate"
)

func (e *Editor) setupStatusBar() {
	e.statusBar = tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)
	e.statusBar.SetBackgroundColor(tcell.ColorLightGray)
	e.statusBar.SetTextColor(tcell.ColorBlack)

	e.helpBar = tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)
	e.helpBar.SetBackgroundColor(tcell.ColorBlack)
}

// Status bar API methods
func (e *Editor) SetStatusMessage(message string) {
	e.statusBar.SetText(message)
}

func (e *Editor) SetStatusError(message string) {
	e.statusBar.SetText("[red]ERROR: " + tview.Escape(message) + "[black]")
}

// SetStatusErrorWithSentry sets an error status and sends it to Sentry
func (e *Editor) SetStatusErrorWithSentry(err error) {
	e.SetStatusError(err.Error())
	CaptureError(err)
}

// userErrors are rejections caused by what the user did, as opposed to bugs.
var userErrors = []error{
	gridstate.ErrInvalidNumber,
	gridstate.ErrDuplicateID,
	gridstate.ErrEditInProgress,
	gridstate.ErrNotEditable,
	gridstate.ErrNoSelection,
	gridstate.ErrNotFound,
	gridstate.ErrNotEditing,
	gridstate.ErrSelectionChanged,
}

func isUserError(err error) bool {
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func errorMessage(err error) string {
	var fe *gridstate.FieldError
	switch {
	case errors.As(err, &fe):
		return fmt.Sprintf("%s must be a whole number, got %q", fe.Field, fe.Value)
	case errors.Is(err, gridstate.ErrDuplicateID):
		return "That id is already used by another record"
	case errors.Is(err, gridstate.ErrEditInProgress):
		return "Finish the current edit first (Ctrl+S to save, Esc to cancel)"
	case errors.Is(err, gridstate.ErrNotEditable):
		return "This field can only be changed by editing the whole row (e)"
	case errors.Is(err, gridstate.ErrNoSelection):
		return "Select a row first"
	case errors.Is(err, gridstate.ErrNotFound):
		return "That record no longer exists"
	case errors.Is(err, gridstate.ErrNotEditing):
		return "Nothing is being edited"
	case errors.Is(err, gridstate.ErrSelectionChanged):
		return "Selection changed, nothing was deleted"
	}
	return err.Error()
}

func (e *Editor) showError(err error) {
	if isUserError(err) {
		e.SetStatusError(errorMessage(err))
		return
	}
	e.SetStatusErrorWithSentry(err)
}

func changeMessage(c gridstate.Changed) string {
	switch c.Kind {
	case gridstate.RecordAdded:
		return fmt.Sprintf("[darkgreen]Added record %d", c.RowID)
	case gridstate.RecordUpdated:
		return fmt.Sprintf("[darkgreen]Saved record %d", c.RowID)
	case gridstate.RecordDeleted:
		return fmt.Sprintf("[darkgreen]Deleted record %d", c.RowID)
	}
	return c.Kind.String()
}

// updateStatus shows the selected record, or edit hints while editing.
func (e *Editor) updateStatus() {
	switch e.state.Mode() {
	case gridstate.CellEditing:
		e.SetStatusMessage(e.cellEditStatus(e.state.CellEdit))
	case gridstate.RowEditing:
		e.SetStatusMessage(fmt.Sprintf("Editing record %d · Tab next field · Ctrl+S to save · Esc to cancel", e.state.RowEdit.RowID))
	default:
		r, ok := e.state.SelectedRecord()
		if !ok {
			e.SetStatusMessage("Click a row or use the arrow keys to select it")
			return
		}
		parts := make([]string, 0, len(e.columns))
		for _, c := range e.columns {
			if c.Field == gridstate.FieldID || c.Render == nil {
				continue
			}
			parts = append(parts, tview.Escape(c.Render(r).Value))
		}
		e.SetStatusMessage(fmt.Sprintf("[darkgreen]#%d[black] %s", r.ID, strings.Join(parts, " · ")))
	}
}

// updateHelp lists the keys that apply in the current mode. Keys that need a
// selection are dimmed when nothing is selected.
func (e *Editor) updateHelp() {
	item := func(key, label string, enabled bool) string {
		if !enabled {
			return fmt.Sprintf("[gray]%s %s[-]", key, label)
		}
		return fmt.Sprintf("[yellow]%s[-] %s", key, label)
	}

	var parts []string
	switch e.state.Mode() {
	case gridstate.CellEditing:
		parts = []string{item("Enter", "Save", true), item("Esc", "Cancel", true)}
	case gridstate.RowEditing:
		parts = []string{item("Tab", "Next field", true), item("Ctrl+S", "Save", true), item("Esc", "Cancel", true)}
	default:
		_, selected := e.state.Selected()
		cellEditable := false
		if row, col := e.grid.Cursor(); row < len(e.view.Rows) && col < len(e.view.Headers) {
			cellEditable = e.view.Rows[row].Cells[col].Editable
		}
		parts = []string{
			item("a", "Add", true),
			item("e", "Edit", selected),
			item("d", "Delete", selected),
			item("Enter", "Edit cell", cellEditable),
			item("q", "Quit", true),
		}
	}
	e.helpBar.SetText(strings.Join(parts, " · "))
}
