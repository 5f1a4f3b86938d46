// Package apperr defines the error kinds returned by the API services and their HTTP status mapping.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies a failure.
type Kind int

const (
	Unexpected Kind = iota
	InvalidInput
	InvalidFormat
	MissingImage
	NotFound
	UploadError
	PersistenceError
	StoreError
)

var kindNames = map[Kind]string{
	Unexpected:       "UnexpectedError",
	InvalidInput:     "InvalidInput",
	InvalidFormat:    "InvalidFormat",
	MissingImage:     "MissingImage",
	NotFound:         "NotFound",
	UploadError:      "UploadError",
	PersistenceError: "PersistenceError",
	StoreError:       "StoreError",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "UnexpectedError"
}

// Error is a classified failure. Message is safe to show to clients; Detail carries the diagnostic.
type Error struct {
	Kind    Kind
	Message string
	Detail  string
	Err     error
}

// New returns an Error without an underlying cause.
func New(kind Kind, message, detail string) *Error {
	return &Error{Kind: kind, Message: message, Detail: detail}
}

// Wrap classifies err. Detail defaults to err.Error().
func Wrap(kind Kind, message string, err error) *Error {
	e := &Error{Kind: kind, Message: message, Err: err}
	if err != nil {
		e.Detail = err.Error()
	}
	return e
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Message
	}
	return e.Message + ": " + e.Detail
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of err, or Unexpected if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unexpected
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// StatusCode maps a kind to its HTTP status.
func StatusCode(kind Kind) int {
	switch kind {
	case InvalidInput, InvalidFormat, MissingImage:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
