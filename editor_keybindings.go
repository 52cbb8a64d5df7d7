package main

import (
	"github.com/gdamore/tcell/v2"

	"gridedit/internal/gridstate"
)

var vimArrows = map[rune]tcell.Key{
	'h': tcell.KeyLeft,
	'j': tcell.KeyDown,
	'k': tcell.KeyUp,
	'l': tcell.KeyRight,
}

func (e *Editor) setupKeyBindings() {
	e.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		// Typed text is not recorded; only keys pressed while viewing.
		if breadcrumbs != nil && e.state.Mode() == gridstate.Viewing && e.inputForm == nil {
			breadcrumbs.RecordKeyboard(keyName(event), modifierNames(event.Modifiers()))
		}
		if isCtrl(event, 'q') {
			e.app.Stop()
			return nil
		}
		return event
	})

	e.grid.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		// A click behind a dialog can focus the grid; hand keys back to the dialog.
		if e.dialogOpen() {
			e.focusDialog()
			return nil
		}
		key := event.Key()

		switch {
		case isCtrl(event, 's'):
			if e.state.RowEdit != nil {
				e.dispatch(gridstate.Save{})
			}
			return nil
		case key == tcell.KeyEscape:
			switch {
			case e.state.RowEdit != nil:
				e.dispatch(gridstate.Cancel{})
			case e.state.CellEdit != nil:
				e.dispatch(gridstate.CancelCell{})
			}
			return nil
		case key == tcell.KeyEnter:
			row, col := e.grid.Cursor()
			e.editCellAt(row, col)
			return nil
		case key == tcell.KeyDelete:
			e.dispatch(gridstate.RequestDelete{})
			return nil
		case key != tcell.KeyRune:
			return event
		}

		r := event.Rune()
		if e.vimMode {
			if arrow, ok := vimArrows[r]; ok {
				return tcell.NewEventKey(arrow, 0, tcell.ModNone)
			}
		}
		switch r {
		case 'a':
			e.dispatch(gridstate.RequestAdd{})
		case 'e':
			e.dispatch(gridstate.BeginRowEdit{})
		case 'd':
			e.dispatch(gridstate.RequestDelete{})
		case 'q':
			e.app.Stop()
		default:
			return event
		}
		return nil
	})
}

func keyName(event *tcell.EventKey) string {
	if event.Key() == tcell.KeyRune {
		return string(event.Rune())
	}
	return event.Name()
}

func modifierNames(mod tcell.ModMask) string {
	s := ""
	if mod&tcell.ModCtrl != 0 {
		s += "Ctrl+"
	}
	if mod&tcell.ModShift != 0 {
		s += "Shift+"
	}
	if mod&tcell.ModAlt != 0 {
		s += "Alt+"
	}
	return s
}
