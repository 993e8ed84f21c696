// Package apperr classifies domain errors into kinds that map to HTTP
// status codes at the handler boundary. Handlers never inspect error
// message strings; they match on the kind.
package apperr

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

type Kind int

const (
	Internal Kind = iota
	Validation
	NotFound
	Conflict
	Unauthorized
	Forbidden
)

// messageInternal is the only body ever sent for Internal errors; the
// underlying cause stays server-side.
const messageInternal = "Error en el servidor"

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap attaches a cause to a classified error. The cause is available via
// errors.Unwrap but never reaches the client body.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf returns the kind of err, or Internal when err carries no kind.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Status maps an error kind to its HTTP status code. Conflict maps to 400
// rather than 409 to preserve the external contract (duplicate email is a
// plain client error).
func Status(err error) int {
	switch KindOf(err) {
	case Validation, Conflict:
		return fiber.StatusBadRequest
	case NotFound:
		return fiber.StatusNotFound
	case Unauthorized:
		return fiber.StatusUnauthorized
	case Forbidden:
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

// Message returns the client-facing message for err. Unclassified errors
// collapse to a generic body so internal detail does not leak.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != Internal {
		return e.Msg
	}
	return messageInternal
}

// Respond writes the JSON error body for err with the mapped status code.
func Respond(c *fiber.Ctx, err error) error {
	return c.Status(Status(err)).JSON(fiber.Map{"error": Message(err)})
}
