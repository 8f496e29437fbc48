package analysis

import "fmt"

// Error represents a failure while generating or parsing resume feedback
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("analysis error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("analysis error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
