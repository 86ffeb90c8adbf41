package task

import (
	"errors"
	"fmt"
)

// ErrNotAnObject is returned when a payload that must be a single JSON object
// is anything else.
var ErrNotAnObject = errors.New("task: expected a JSON object")

// ErrNotAnArray is returned when a payload that must be a JSON array of
// objects is anything else.
var ErrNotAnArray = errors.New("task: expected a JSON array")

// MissingFieldError reports that one of the required fields (status, uuid,
// entry, description) was absent after the whole object was scanned.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("task: required field %q is missing", e.Field)
}

// FieldError reports that a known field was present but its value did not
// parse in the shape that field requires. It aborts the whole-task decode;
// malformed known fields are never dropped or defaulted.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("task: field %q: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// UDAValueError reports a non-scalar value under an unrecognized key. Unknown
// keys themselves are always accepted, but their values must be strings or
// numbers.
type UDAValueError struct {
	Key string
}

func (e *UDAValueError) Error() string {
	return fmt.Sprintf("task: uda %q: unsupported value shape, must be a string or a number", e.Key)
}
