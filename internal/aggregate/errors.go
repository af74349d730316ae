package aggregate

import "fmt"

// UnparseableError indicates the provider payload had no usable structure at
// all. Callers must surface this as a provider failure; it is never turned
// into a fabricated all-zero result.
type UnparseableError struct {
	Message string
	Cause   error
}

func (e *UnparseableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("unparseable provider response: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("unparseable provider response: %s", e.Message)
}

func (e *UnparseableError) Unwrap() error {
	return e.Cause
}
