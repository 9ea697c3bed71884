package pgn

import (
	"errors"
	"fmt"
)

// ErrMalformedRecord marks a document missing a required field.
var ErrMalformedRecord = errors.New("pgn: malformed record")

// MalformedRecordError describes why a record was rejected.
type MalformedRecordError struct {
	Source string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("pgn: malformed record: %s", e.Reason)
	}
	return fmt.Sprintf("pgn: malformed record %s: %s", e.Source, e.Reason)
}

func (e *MalformedRecordError) Unwrap() error { return ErrMalformedRecord }

func malformed(format string, args ...any) error {
	return &MalformedRecordError{Reason: fmt.Sprintf(format, args...)}
}
