package session

import (
	"errors"
	"fmt"
)

// ErrSequencing marks a batch-level inconsistency that aborts the session.
var ErrSequencing = errors.New("session: sequencing error")

// SequencingError explains why a session could not be assembled.
type SequencingError struct {
	Reason string
}

func (e *SequencingError) Error() string {
	return fmt.Sprintf("session: sequencing error: %s", e.Reason)
}

func (e *SequencingError) Unwrap() error { return ErrSequencing }

func sequencingError(format string, args ...any) error {
	return &SequencingError{Reason: fmt.Sprintf(format, args...)}
}
