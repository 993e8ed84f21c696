package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		kind Kind
		want int
	}{
		{Validation, fiber.StatusBadRequest},
		{Conflict, fiber.StatusBadRequest},
		{NotFound, fiber.StatusNotFound},
		{Unauthorized, fiber.StatusUnauthorized},
		{Forbidden, fiber.StatusForbidden},
		{Internal, fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Status(New(tc.kind, "x")))
	}
}

func TestStatus_PlainErrorIsInternal(t *testing.T) {
	assert.Equal(t, fiber.StatusInternalServerError, Status(errors.New("boom")))
}

func TestMessage_InternalNeverLeaks(t *testing.T) {
	err := Wrap(Internal, "query failed", errors.New("pq: relation does not exist"))
	assert.Equal(t, "Error en el servidor", Message(err))
	assert.Equal(t, "Error en el servidor", Message(errors.New("raw driver error")))
}

func TestMessage_ClassifiedPassesThrough(t *testing.T) {
	err := New(NotFound, "Pedido no encontrado")
	assert.Equal(t, "Pedido no encontrado", Message(err))
}

func TestWrap_PreservesCauseAndKind(t *testing.T) {
	cause := errors.New("no rows")
	err := Wrap(NotFound, "Usuario no encontrado", cause)

	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, NotFound, KindOf(err))
	assert.Equal(t, NotFound, KindOf(fmt.Errorf("looking up user: %w", err)))
}
