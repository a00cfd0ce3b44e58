package fetch

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType categorizes a fetch failure
type ErrorType string

const (
	// ErrTypeNetwork indicates the data source could not be reached
	ErrTypeNetwork ErrorType = "network"

	// ErrTypeStatus indicates a non-success HTTP status
	ErrTypeStatus ErrorType = "status"

	// ErrTypeRemote indicates the producer answered with an error field
	ErrTypeRemote ErrorType = "remote"

	// ErrTypeDecode indicates the document could not be decoded
	ErrTypeDecode ErrorType = "decode"

	// ErrTypeValidation indicates the document violates payload invariants
	ErrTypeValidation ErrorType = "validation"

	// ErrTypeIO indicates a local export could not be read
	ErrTypeIO ErrorType = "io"
)

// Error is the single failure kind of the fetch lifecycle. It is never fatal:
// the viewer shows Message and offers a retry.
type Error struct {
	// Type categorizes the error
	Type ErrorType `json:"type"`

	// Message is the human-readable text shown to the viewer
	Message string `json:"message"`

	// Source names the data source (endpoint or file)
	Source string `json:"source,omitempty"`

	// StatusCode for HTTP-related errors
	StatusCode int `json:"status_code,omitempty"`

	// Cause is the underlying error
	Cause error `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	parts := []string{fmt.Sprintf("type=%s", e.Type)}
	if e.Source != "" {
		parts = append(parts, fmt.Sprintf("source=%s", e.Source))
	}
	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}
	parts = append(parts, e.Message)
	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause=%s", e.Cause.Error()))
	}
	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

func newError(errType ErrorType, source, message string, cause error) *Error {
	return &Error{Type: errType, Source: source, Message: message, Cause: cause}
}

// Message extracts the text to display for any error returned by a Source
func Message(err error) string {
	if err == nil {
		return ""
	}
	var fe *Error
	if errors.As(err, &fe) && fe.Message != "" {
		return fe.Message
	}
	return err.Error()
}

// TypeOf returns the category of a fetch error, or "" for foreign errors
func TypeOf(err error) ErrorType {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Type
	}
	return ""
}
