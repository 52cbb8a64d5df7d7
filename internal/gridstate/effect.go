package gridstate

// Effect is something the surrounding UI has to act on after a command.
type Effect interface {
	isEffect()
}

// InputKind identifies what an InputRequest collects.
type InputKind int

const (
	InputAddRecord InputKind = iota
)

// InputField describes one value the UI must collect.
type InputField struct {
	Field   Field
	Label   string
	Numeric bool
}

// InputRequest asks the UI for typed input. The UI answers with a follow-up
// command (AddRecord for InputAddRecord) or drops the request on cancel.
type InputRequest struct {
	Kind   InputKind
	Title  string
	Fields []InputField
}

// ConfirmKind identifies what a ConfirmRequest guards.
type ConfirmKind int

const (
	ConfirmDeleteRecord ConfirmKind = iota
)

// ConfirmRequest asks the user a yes/no question before a destructive command.
type ConfirmRequest struct {
	Kind   ConfirmKind
	RowID  int64
	Prompt string
}

// ChangeKind describes a mutation of the record collection.
type ChangeKind int

const (
	RecordAdded ChangeKind = iota
	RecordUpdated
	RecordDeleted
)

func (k ChangeKind) String() string {
	switch k {
	case RecordAdded:
		return "added"
	case RecordUpdated:
		return "updated"
	case RecordDeleted:
		return "deleted"
	}
	return "changed"
}

// Changed reports that the record collection was mutated.
type Changed struct {
	Kind  ChangeKind
	RowID int64
}

func (InputRequest) isEffect()   {}
func (ConfirmRequest) isEffect() {}
func (Changed) isEffect()        {}
