// Package apperr classifies every failure the service can produce into a
// closed set of kinds and maps each kind to an HTTP status and a generic
// client message. Raw error detail never reaches a response body.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind enumerates the failure categories. Adding a kind requires extending
// the mapping in HTTP, which the compiler's exhaustiveness of the switch
// default makes an explicit, reviewable change.
type Kind int

const (
	// KindDatabase covers any failure returned by the database layer.
	KindDatabase Kind = iota
	// KindJSON covers malformed request JSON and missing/mistyped required fields.
	KindJSON
	// KindBody covers transport-level failures while reading a request body.
	KindBody
	// KindNotFound covers requests outside the route table.
	KindNotFound
	// KindInternal covers broken invariants that should not occur.
	KindInternal
)

// Error is the classified failure carried from handlers and the store to the
// top-level response boundary.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.message()
	}
	return fmt.Sprintf("%s: %v", e.message(), e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) message() string {
	_, msg := statusMessage(e.Kind)
	return msg
}

// Database wraps a database failure.
func Database(err error) error { return &Error{Kind: KindDatabase, Err: err} }

// JSON wraps a malformed-JSON or missing-required-field failure.
func JSON(err error) error { return &Error{Kind: KindJSON, Err: err} }

// Body wraps a request-body read failure.
func Body(err error) error { return &Error{Kind: KindBody, Err: err} }

// NotFound reports a request outside the route table.
func NotFound() error { return &Error{Kind: KindNotFound} }

// Internal reports a broken internal invariant.
func Internal(msg string) error {
	return &Error{Kind: KindInternal, Err: errors.New(msg)}
}

func statusMessage(k Kind) (int, string) {
	switch k {
	case KindDatabase:
		return http.StatusInternalServerError, "Database error"
	case KindJSON:
		return http.StatusBadRequest, "Invalid JSON format"
	case KindBody:
		return http.StatusBadRequest, "Request body error"
	case KindNotFound:
		return http.StatusNotFound, "Not Found"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// HTTP resolves any error to its response status and client message. Errors
// that were never classified map to the internal kind so nothing leaks.
func HTTP(err error) (int, string) {
	var ae *Error
	if errors.As(err, &ae) {
		return statusMessage(ae.Kind)
	}
	return statusMessage(KindInternal)
}
