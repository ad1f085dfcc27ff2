package store

import (
	"errors"
	"fmt"
)

// MalformedStateError is returned when a run folder holds a file whose name is
// not an iteration index.
type MalformedStateError struct {
	Folder string
	Name   string
	Err    error
}

func (e *MalformedStateError) Error() string {
	return fmt.Sprintf("malformed run folder %s: file %q is not named NNN.jpeg: %v", e.Folder, e.Name, e.Err)
}

func (e *MalformedStateError) Unwrap() error {
	return e.Err
}

// IsMalformedStateError checks if an error is a MalformedStateError.
func IsMalformedStateError(err error) bool {
	var msErr *MalformedStateError
	return errors.As(err, &msErr)
}

// ErrNegativeIndex is wrapped by MalformedStateError when a file name parses
// as a negative number.
var ErrNegativeIndex = errors.New("negative iteration index")
