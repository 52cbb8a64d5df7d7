package main

import (
	"github.com/rivo/tview"

	"gridedit/internal/gridstate"
)

const (
	inputFormWidth = 44
	buttonDelete   = "Delete"
	buttonCancel   = "Cancel"
)

// showInputForm opens a form collecting the fields of req.
func (e *Editor) showInputForm(req gridstate.InputRequest) {
	form := tview.NewForm()
	for _, f := range req.Fields {
		var accept func(string, rune) bool
		if f.Numeric {
			accept = acceptInteger
		}
		form.AddInputField(f.Label, "", 30, accept, nil)
	}
	form.AddButton("Add", e.submitInputForm).
		AddButton(buttonCancel, e.closeInputForm).
		SetCancelFunc(e.closeInputForm)
	form.SetBorder(true).SetTitle(" " + req.Title + " ")

	e.inputForm = form
	e.inputRequest = &req
	if breadcrumbs != nil {
		breadcrumbs.RecordNavigation("input", req.Title)
	}
	e.pages.AddPage(pageInput, centered(form, inputFormWidth, 2*len(req.Fields)+5), true, true)
	e.app.SetFocus(form)
}

func (e *Editor) closeInputForm() {
	e.pages.RemovePage(pageInput)
	e.inputForm = nil
	e.inputRequest = nil
	e.focusGrid()
}

// submitInputForm answers the open input request with the form values.
func (e *Editor) submitInputForm() {
	if e.inputForm == nil || e.inputRequest == nil {
		return
	}
	req := *e.inputRequest
	values := make(map[gridstate.Field]string, len(req.Fields))
	for i, f := range req.Fields {
		if input, ok := e.inputForm.GetFormItem(i).(*tview.InputField); ok {
			values[f.Field] = input.GetText()
		}
	}
	e.closeInputForm()

	switch req.Kind {
	case gridstate.InputAddRecord:
		before := len(e.state.Records)
		if err := e.dispatch(gridstate.AddRecord{NameText: values[gridstate.FieldName], AgeText: values[gridstate.FieldAge]}); err != nil {
			return
		}
		if len(e.state.Records) == before {
			e.SetStatusError("Record not added: a name and a whole-number age are required")
		}
	}
}

// showConfirm asks req.Prompt with Delete and Cancel buttons.
func (e *Editor) showConfirm(req gridstate.ConfirmRequest) {
	modal := tview.NewModal().
		SetText(req.Prompt).
		AddButtons([]string{buttonDelete, buttonCancel}).
		SetDoneFunc(func(_ int, label string) {
			e.finishConfirm(label == buttonDelete)
		})

	e.confirm = &req
	if breadcrumbs != nil {
		breadcrumbs.RecordNavigation("confirm", req.Prompt)
	}
	e.pages.AddPage(pageConfirm, modal, true, true)
	e.app.SetFocus(modal)
}

// finishConfirm closes the confirmation and sends the answer to the reducer.
func (e *Editor) finishConfirm(confirmed bool) {
	if e.confirm == nil {
		return
	}
	req := *e.confirm
	e.confirm = nil
	e.pages.RemovePage(pageConfirm)
	e.focusGrid()

	switch req.Kind {
	case gridstate.ConfirmDeleteRecord:
		if err := e.dispatch(gridstate.DeleteSelected{RowID: req.RowID, Confirmed: confirmed}); err != nil {
			return
		}
		if !confirmed {
			e.SetStatusMessage("Delete cancelled")
		}
	}
}
