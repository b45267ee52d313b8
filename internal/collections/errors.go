package collections

import "strings"

// ErrNotFound is returned when no record with the requested id exists.
var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "record not found" }

// ErrCorruptData is returned when a stored collection object does not parse
// as a JSON array of records.
var ErrCorruptData = errCorruptData{}

type errCorruptData struct{}

func (errCorruptData) Error() string { return "corrupt collection data" }

// ValidationError reports required fields missing from a draft record.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	if len(e.Missing) == 1 {
		return e.Missing[0] + " is required"
	}
	return strings.Join(e.Missing, ", ") + " are required"
}
