package etl

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by Run matches exactly one of them via
// errors.Is. A source or parser that cannot be built from config reports
// ErrFileNotFound or ErrParse; a bad transform config reports ErrTransform.
var (
	// ErrFileNotFound: the input file is missing or cannot be opened.
	ErrFileNotFound = errors.New("input file not found")
	// ErrParse: the input is not a well-formed table.
	ErrParse = errors.New("parse error")
	// ErrTransform: a configured transformation could not be applied.
	ErrTransform = errors.New("transform error")
	// ErrStorageWrite: the destination could not be opened or written.
	ErrStorageWrite = errors.New("storage write error")
)

// StageError records the stage a run aborted in, the error kind and the
// underlying cause. errors.Is matches both Kind and anything in Err's chain.
type StageError struct {
	Stage State
	Kind  error
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Stage, e.Kind, e.Err)
}

func (e *StageError) Unwrap() []error { return []error{e.Kind, e.Err} }

func stageErr(s State, kind, err error) error {
	return &StageError{Stage: s, Kind: kind, Err: err}
}
