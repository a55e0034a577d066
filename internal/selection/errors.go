package selection

import "errors"

// ErrEmptySelection matches any EmptySelectionError via errors.Is.
var ErrEmptySelection = errors.New("empty selection")

// EmptySelectionError carries the caller-supplied "nothing selected" text.
// It is a display hint, never a failure of the engine.
type EmptySelectionError struct {
	Message string
}

func (e *EmptySelectionError) Error() string {
	if e.Message == "" {
		return ErrEmptySelection.Error()
	}
	return e.Message
}

func (e *EmptySelectionError) Is(target error) bool {
	return target == ErrEmptySelection
}
