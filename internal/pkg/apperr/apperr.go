package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies pipeline failures so the route layer can map them to HTTP
// statuses without inspecting storage- or provider-specific error types.
type Kind string

const (
	KindUnsupportedFileType Kind = "UNSUPPORTED_FILE_TYPE"
	KindLoad                Kind = "LOAD_ERROR"
	KindInvalidFilter       Kind = "INVALID_FILTER"
	KindIngestion           Kind = "INGESTION_ERROR"
	KindQnA                 Kind = "QNA_ERROR"
	KindConfig              Kind = "CONFIG_ERROR"
	KindBadRequest          Kind = "BAD_REQUEST"
)

// Error is the single error type crossing pipeline boundaries. The wrapped
// cause stays available for logs via errors.Unwrap but is never serialized
// to clients.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches on Kind so sentinel-style checks work:
// errors.Is(err, &Error{Kind: KindIngestion})
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// KindOf extracts the Kind of err, or "" when err is not an apperr.Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func UnsupportedFileType(fileType string) *Error {
	return New(KindUnsupportedFileType, fmt.Sprintf("unsupported file type %q", fileType))
}

func InvalidFilter(message string) *Error {
	return New(KindInvalidFilter, message)
}
