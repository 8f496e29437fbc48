// Package suggest converts raw AI feedback into concrete before/after text
// pairs against a resume document.
package suggest

import "fmt"

// ApplyError represents an error while generating applied suggestions
// (structurally invalid input, never a failed heuristic match).
type ApplyError struct {
	Message string
	Cause   error
}

func (e *ApplyError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("suggestion apply error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("suggestion apply error: %s", e.Message)
}

func (e *ApplyError) Unwrap() error {
	return e.Cause
}
