package extract

import "fmt"

// UnsupportedTypeError indicates the uploaded document type is not handled
type UnsupportedTypeError struct {
	MIME string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported document type: %s", e.MIME)
}

// TooLargeError indicates the uploaded document exceeds the size cap
type TooLargeError struct {
	Size int64
	Max  int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("document too large: %d bytes (max %d)", e.Size, e.Max)
}

// ParseError indicates the document could not be decoded
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("document parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("document parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
