package editor

import (
	"errors"
	"fmt"
)

// ErrStateDesync is wrapped by every StateDesyncError.
var ErrStateDesync = errors.New("history out of sync with scene")

// StateDesyncError reports a history snapshot that could not be applied or
// captured. The transition that hit it left both stacks untouched.
type StateDesyncError struct {
	Op  string // "undo", "redo" or "load"
	Err error
}

func (e *StateDesyncError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Op, ErrStateDesync, e.Err)
}

func (e *StateDesyncError) Unwrap() []error {
	return []error{ErrStateDesync, e.Err}
}
