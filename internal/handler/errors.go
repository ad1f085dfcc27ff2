package handler

import (
	"errors"
	"fmt"
)

// Stage names the step of an iteration that failed.
type Stage string

const (
	StageOpen     Stage = "open"
	StageSeed     Stage = "seed"
	StageLoad     Stage = "load"
	StageDescribe Stage = "describe"
	StageGenerate Stage = "generate"
	StageSave     Stage = "save"
)

// StageError identifies the iteration and step a run aborted at.
type StageError struct {
	Index int
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	if e.Stage == StageOpen {
		return fmt.Sprintf("open run: %v", e.Err)
	}
	return fmt.Sprintf("iteration %03d: %s: %v", e.Index, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// MissingPredecessorError is returned when the image an iteration describes is
// not on disk.
type MissingPredecessorError struct {
	Index int
	Path  string
	Err   error
}

func (e *MissingPredecessorError) Error() string {
	return fmt.Sprintf("predecessor %03d missing at %s", e.Index, e.Path)
}

func (e *MissingPredecessorError) Unwrap() error {
	return e.Err
}

// IsMissingPredecessorError checks if an error is a MissingPredecessorError.
func IsMissingPredecessorError(err error) bool {
	var mpErr *MissingPredecessorError
	return errors.As(err, &mpErr)
}
