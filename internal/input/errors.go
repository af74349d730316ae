package input

import "fmt"

// EmptyResumeError indicates the resume text was empty after trimming
type EmptyResumeError struct{}

func (e *EmptyResumeError) Error() string {
	return "resume text is empty"
}

// TooLongError indicates the resume text exceeds the maximum allowed length
type TooLongError struct {
	Length int
	Max    int
}

func (e *TooLongError) Error() string {
	return fmt.Sprintf("resume text too long: %d characters (max %d)", e.Length, e.Max)
}

// ValidationError indicates a metadata field failed validation
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
}
