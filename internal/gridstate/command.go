package gridstate

// Command is a user intent handled by Apply.
type Command interface {
	Name() string
}

type (
	// Select makes ID the selected record.
	Select struct{ ID int64 }

	// RequestAdd asks the UI for the fields of a new record.
	RequestAdd struct{}

	// AddRecord appends a record built from prompted text.
	AddRecord struct{ NameText, AgeText string }

	// BeginRowEdit stages every field of the selected record.
	BeginRowEdit struct{}

	// ChangeField updates one staged value of the row edit.
	ChangeField struct {
		Field Field
		Text  string
	}

	// Save commits the row edit.
	Save struct{}

	// Cancel discards the row edit.
	Cancel struct{}

	// RequestDelete asks the UI to confirm deletion of the selected record.
	RequestDelete struct{}

	// DeleteSelected removes the selected record when Confirmed. RowID is the
	// record the confirmation was asked for and must still be selected.
	DeleteSelected struct {
		RowID     int64
		Confirmed bool
	}

	// BeginCellEdit stages a single field of a single row.
	BeginCellEdit struct {
		RowID int64
		Field Field
	}

	// ChangeValue updates the staged cell text.
	ChangeValue struct{ Text string }

	// CommitCell writes the staged cell text into its field (blur).
	CommitCell struct{}

	// CancelCell discards the staged cell text.
	CancelCell struct{}
)

func (Select) Name() string         { return "select" }
func (RequestAdd) Name() string     { return "request-add" }
func (AddRecord) Name() string      { return "add" }
func (BeginRowEdit) Name() string   { return "begin-row-edit" }
func (ChangeField) Name() string    { return "change-field" }
func (Save) Name() string           { return "save" }
func (Cancel) Name() string         { return "cancel" }
func (RequestDelete) Name() string  { return "request-delete" }
func (DeleteSelected) Name() string { return "delete" }
func (BeginCellEdit) Name() string  { return "begin-cell-edit" }
func (ChangeValue) Name() string    { return "change-value" }
func (CommitCell) Name() string     { return "commit-cell" }
func (CancelCell) Name() string     { return "cancel-cell" }
