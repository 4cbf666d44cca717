package marker

import (
	"errors"
)

// ErrorKind classifies pipeline failures. Each kind maps to one fixed message
// shown to the user.
type ErrorKind int

const (
	// ReadError means the file could not be read.
	ReadError ErrorKind = iota + 1
	// ProcessingError covers decoding, tokenizing, filtering, sorting and joining.
	ProcessingError
)

const (
	readMessage       = "Error reading file"
	processingMessage = "Error processing file. Please ensure it's a valid text file with tab-separated words."
)

// Message returns the user-visible text for the kind.
func (k ErrorKind) Message() string {
	switch k {
	case ReadError:
		return readMessage
	default:
		return processingMessage
	}
}

func (k ErrorKind) String() string {
	switch k {
	case ReadError:
		return "read"
	case ProcessingError:
		return "processing"
	default:
		return "unknown"
	}
}

// Error is a classified pipeline failure. Err holds the cause for logging;
// it is never part of the user-visible message.
type Error struct {
	Kind ErrorKind
	Err  error
}

// Sentinels for errors.Is.
var (
	ErrRead       = &Error{Kind: ReadError}
	ErrProcessing = &Error{Kind: ProcessingError}
)

// NewReadError wraps err as a ReadError.
func NewReadError(err error) *Error {
	return &Error{Kind: ReadError, Err: err}
}

// NewProcessingError wraps err as a ProcessingError.
func NewProcessingError(err error) *Error {
	return &Error{Kind: ProcessingError, Err: err}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String() + " error"
	}
	return e.Kind.String() + " error: " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches sentinels of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Err == nil && t.Kind == e.Kind
}

// Message returns the fixed user-visible message.
func (e *Error) Message() string {
	return e.Kind.Message()
}

// KindOf returns the kind of err. Unclassified errors count as processing
// errors.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ProcessingError
}

// UserMessage returns the message to display for err, or "" for nil.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return KindOf(err).Message()
}
