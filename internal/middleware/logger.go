package middleware

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequestLogger tags every request with a uuid and logs method, path, status
// and duration once the handler chain returns. The id is stored in locals so
// error logs deeper in the stack can reference it.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		id := uuid.NewString()
		c.Locals("request_id", id)

		err := c.Next()

		log.Printf("[%s] %s %s -> %d (%s)", id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
		return err
	}
}
