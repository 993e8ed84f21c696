// Package auth issues and verifies the bearer tokens used by protected
// endpoints. Tokens carry the user id as their only domain claim.
package auth

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/mercado-api/mercado-backend/internal/apperr"
)

var ErrNoToken = apperr.New(apperr.Unauthorized, "Acceso denegado. Token no proporcionado.")

// NewToken signs an HS256 token for the given user id, expiring after ttl.
func NewToken(secret string, userID int, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"id":  userID,
		"exp": time.Now().Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Middleware verifies the Authorization bearer token. A missing token yields
// 401, an invalid or expired one 403.
func Middleware(secret string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: []byte(secret),
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if err.Error() == "Missing or malformed JWT" {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Acceso denegado. Token no proporcionado."})
			}
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Token inválido o expirado"})
		},
	})
}

// UserID extracts the user id claim from the verified token the middleware
// stored in c.Locals("user"). The claim arrives as float64 after JSON
// decoding but other encodings show up when tokens are crafted in tests.
func UserID(c *fiber.Ctx) (int, error) {
	u := c.Locals("user")
	if u == nil {
		return 0, ErrNoToken
	}
	tok, ok := u.(*jwt.Token)
	if !ok {
		return 0, ErrNoToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrNoToken
	}
	switch v := claims["id"].(type) {
	case float64:
		return int(v), nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case string:
		id, err := strconv.Atoi(v)
		if err != nil {
			return 0, ErrNoToken
		}
		return id, nil
	default:
		return 0, ErrNoToken
	}
}
