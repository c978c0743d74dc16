package session

import (
	"errors"
	"fmt"
)

var (
	ErrSessionClosed   = errors.New("assessment session closed")
	ErrSubmitInFlight  = errors.New("a submission is already in flight")
	ErrNotEditable     = errors.New("session is not in an editable state")
	ErrUnknownQuestion = errors.New("question not part of the presented set")
)

// ValidationError reports the required questions still missing an answer.
// It is recovered locally and never reaches the form store.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%d required question(s) unanswered", len(e.Missing))
}
