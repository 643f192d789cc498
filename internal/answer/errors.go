package answer

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a question could not be graded.
type ErrorKind string

const (
	// KindMalformedInput means the question or answer shape does not match
	// the declared type.
	KindMalformedInput ErrorKind = "malformed-input"

	// KindUnsupportedQuestionType means the type is outside the known set.
	KindUnsupportedQuestionType ErrorKind = "unsupported-question-type"
)

// Error is returned by Engine.Check when a question cannot be graded at all.
// It is distinct from an Incorrect result: the learner is not wrong, the
// question is.
type Error struct {
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func malformed(format string, args ...any) *Error {
	return &Error{Kind: KindMalformedInput, Msg: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
