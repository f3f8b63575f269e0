package auth

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

// HeaderName is the request header carrying the api key.
const HeaderName = "X-Api-Key"

// AdminHeaderName is the request header carrying the admin key.
const AdminHeaderName = "X-Admin-Key"

// Config holds the auth middleware configuration.
type Config struct {
	// ApiKey is the expected key. An empty key disables the check, which is
	// the development default.
	ApiKey string
}

// New returns a middleware that rejects requests without the configured key.
func New(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.ApiKey == "" {
			return c.Next()
		}
		provided := c.Get(HeaderName)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(cfg.ApiKey)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or missing api key",
			})
		}
		return c.Next()
	}
}

// IsAdmin reports whether the request carries the admin key. An empty
// configured key grants admin to everyone, matching the disabled api key.
func IsAdmin(c *fiber.Ctx, adminKey string) bool {
	if adminKey == "" {
		return true
	}
	provided := c.Get(AdminHeaderName)
	return subtle.ConstantTimeCompare([]byte(provided), []byte(adminKey)) == 1
}
