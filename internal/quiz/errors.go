package quiz

import (
	"errors"
	"fmt"
)

// Fault kinds reserved for genuine errors. Expected control flow
// (expiry, completion) travels as TestState values, never as errors.
var (
	// ErrEmptyPool: no questions to draw from.
	ErrEmptyPool = errors.New("no questions available")

	// ErrInvalidCount: requested count outside [1, pool size].
	ErrInvalidCount = errors.New("invalid question count")

	// ErrEmptyTest: a session cannot be created with zero questions.
	ErrEmptyTest = errors.New("test has no questions")

	// ErrOutOfRange: cursor past the end of the test.
	ErrOutOfRange = errors.New("question position out of range")

	// ErrSessionInvalid: the stored session is missing or malformed.
	// The correct response is to discard it and restart, not repair it.
	ErrSessionInvalid = errors.New("invalid test session")

	// ErrBadQuestionData: a stored correct-answer index is out of
	// bounds for its option list. This is a server-side data fault,
	// not user misuse.
	ErrBadQuestionData = errors.New("invalid question configuration")
)

// ValidationError is a structured rejection of user input. It is
// always recoverable by re-submitting corrected input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
