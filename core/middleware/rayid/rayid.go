package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderName is the response header carrying the request trace id.
const HeaderName = "X-Ray-Id"

// New returns a middleware that assigns every request a ray id, stores it in
// Locals for the logger and echoes it in the response header. An incoming
// X-Ray-Id header is honored so upstream proxies can propagate their own ids.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(HeaderName)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals("ray_id", rid)
		c.Set(HeaderName, rid)
		return c.Next()
	}
}
