package gridstate

import (
	"errors"
	"fmt"
)

var (
	ErrNoSelection    = errors.New("no record selected")
	ErrNotFound       = errors.New("record not found")
	ErrNotEditing     = errors.New("no edit in progress")
	ErrEditInProgress = errors.New("another edit is in progress")
	ErrNotEditable    = errors.New("field is not editable")
	ErrDuplicateID    = errors.New("id already in use")
	ErrInvalidNumber  = errors.New("not a number")
	ErrUnknownCommand = errors.New("unknown command")

	ErrSelectionChanged = errors.New("selection changed since the request")
)

// FieldError reports staged text that could not be committed into a field.
type FieldError struct {
	Field Field
	Value string
	// Err defaults to ErrInvalidNumber when nil.
	Err error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %q: %v", e.Field, e.Value, e.Unwrap())
}

func (e *FieldError) Unwrap() error {
	if e.Err == nil {
		return ErrInvalidNumber
	}
	return e.Err
}
