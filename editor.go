package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"gridedit/internal/grid"
	"gridedit/internal/gridstate"
)

const (
	pageGrid       = "grid"
	pageCellEditor = "cell-editor"
	pageRowEditor  = "row-editor"
	pageInput      = "input"
	pageConfirm    = "confirm"
)

// EditorOptions configures NewEditor.
type EditorOptions struct {
	Title   string
	VimMode bool
}

// Editor is the interactive grid. All record changes go through dispatch,
// which runs the gridstate reducer and redraws from the resulting state.
type Editor struct {
	app       *tview.Application
	pages     *tview.Pages
	grid      *GridView
	statusBar *tview.TextView
	helpBar   *tview.TextView
	layout    *tview.Flex

	state   gridstate.State
	columns []grid.Column
	view    grid.View
	vimMode bool
	// lastMode is the mode seen by the previous render
	lastMode gridstate.Mode

	cellInput  *tview.InputField
	cellTarget *gridstate.CellEdit

	rowInputs  []rowInput
	rowTarget  int64
	rowEditing bool

	inputForm    *tview.Form
	inputRequest *gridstate.InputRequest
	confirm      *gridstate.ConfirmRequest
}

// NewEditor builds the widgets for state. The application is not started
// until Run.
func NewEditor(state gridstate.State, columns []grid.Column, opts EditorOptions) *Editor {
	tview.Styles.ContrastBackgroundColor = tcell.ColorBlack

	e := &Editor{
		app:     tview.NewApplication(),
		pages:   tview.NewPages(),
		grid:    NewGridView(opts.Title),
		state:   state,
		columns: columns,
		vimMode: opts.VimMode,
	}
	e.grid.SetVimMode(opts.VimMode).
		SetCursorFunc(e.selectAt).
		SetClickFunc(e.selectAt).
		SetDoubleClickFunc(e.editCellAt)

	e.setupStatusBar()
	e.setupKeyBindings()

	e.layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(e.grid, 0, 1, true).
		AddItem(e.statusBar, 1, 0, false).
		AddItem(e.helpBar, 1, 0, false)
	e.pages.AddPage(pageGrid, e.layout, true, true)

	e.render()
	e.updateStatus()
	return e
}

// Run starts the terminal application and blocks until it exits.
func (e *Editor) Run() error {
	if err := e.app.SetRoot(e.pages, true).EnableMouse(true).SetFocus(e.grid).Run(); err != nil {
		CaptureError(err)
		return err
	}
	return nil
}

// State returns the current editor state.
func (e *Editor) State() gridstate.State {
	return e.state
}

// dispatch applies cmd to the current state. Rejected commands leave the
// state untouched and are reported in the status bar.
func (e *Editor) dispatch(cmd gridstate.Command) error {
	next, effects, err := gridstate.Apply(e.state, cmd)
	if breadcrumbs != nil {
		breadcrumbs.RecordCommand(cmd.Name(), err)
	}
	if err != nil {
		logger.Warn("command rejected", "cmd", cmd.Name(), "err", err)
		e.render()
		e.showError(err)
		return err
	}

	logger.Debug("command applied", "cmd", cmd.Name(), "mode", next.Mode())
	e.state = next
	e.render()
	e.updateStatus()
	for _, effect := range effects {
		e.handleEffect(effect)
	}
	return nil
}

func (e *Editor) handleEffect(effect gridstate.Effect) {
	switch ef := effect.(type) {
	case gridstate.InputRequest:
		e.showInputForm(ef)
	case gridstate.ConfirmRequest:
		e.showConfirm(ef)
	case gridstate.Changed:
		logger.Info("record changed", "kind", ef.Kind, "id", ef.RowID)
		e.SetStatusMessage(changeMessage(ef))
	}
}

// render projects the state onto the grid and brings the inline editors in
// line with the edit state.
func (e *Editor) render() {
	e.view = grid.Project(e.state, e.columns)
	e.grid.SetView(e.view)

	_, col := e.grid.Cursor()
	if id, ok := e.state.Selected(); ok {
		e.grid.SetCursor(e.view.RowIndex(id), col)
	}
	if ce := e.state.CellEdit; ce != nil {
		e.grid.SetCursor(e.view.RowIndex(ce.RowID), grid.ColumnIndex(e.columns, ce.Field))
	}

	e.syncEditors()
	e.updateHelp()
}

func (e *Editor) syncEditors() {
	mode := e.state.Mode()
	if mode != e.lastMode && breadcrumbs != nil {
		breadcrumbs.RecordNavigation(mode.String(), "edit mode changed")
	}
	e.lastMode = mode

	ce := e.state.CellEdit
	if ce == nil || e.cellTarget == nil || e.cellTarget.RowID != ce.RowID || e.cellTarget.Field != ce.Field {
		e.closeCellEditor()
		if ce != nil {
			e.openCellEditor(*ce)
		}
	}

	re := e.state.RowEdit
	if re == nil || !e.rowEditing || e.rowTarget != re.RowID {
		e.closeRowEditor()
		if re != nil {
			e.openRowEditor(*re)
		}
	}
}

// focusGrid returns focus to the grid unless a dialog is open.
func (e *Editor) focusGrid() {
	if e.dialogOpen() {
		return
	}
	e.app.SetFocus(e.grid)
}

func (e *Editor) focusDialog() {
	if e.inputForm != nil {
		e.app.SetFocus(e.inputForm)
		return
	}
	if _, front := e.pages.GetFrontPage(); front != nil {
		e.app.SetFocus(front)
	}
}

// dialogOpen reports whether the add form or the delete confirmation is shown.
func (e *Editor) dialogOpen() bool {
	return e.pages.HasPage(pageInput) || e.pages.HasPage(pageConfirm)
}

func (e *Editor) selectAt(row, _ int) {
	if e.dialogOpen() {
		e.render()
		return
	}
	if id, ok := e.grid.RowID(row); ok {
		e.dispatch(gridstate.Select{ID: id})
	}
}

func (e *Editor) editCellAt(row, col int) {
	if e.dialogOpen() {
		return
	}
	id, ok := e.grid.RowID(row)
	if !ok || col < 0 || col >= len(e.columns) {
		return
	}
	e.dispatch(gridstate.BeginCellEdit{RowID: id, Field: e.columns[col].Field})
}

// overlayAt positions p at a screen rectangle on an otherwise transparent layer.
func overlayAt(p tview.Primitive, x, y, width, height int) tview.Primitive {
	return tview.NewFlex().
		AddItem(nil, max(x, 0), 0, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, max(y, 0), 0, false).
			AddItem(p, height, 0, true).
			AddItem(nil, 0, 1, false), width, 0, true).
		AddItem(nil, 0, 1, false)
}

// centered places p in the middle of the screen.
func centered(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(p, height, 0, true).
			AddItem(nil, 0, 1, false), width, 0, true).
		AddItem(nil, 0, 1, false)
}
