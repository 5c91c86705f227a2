package middleware

import (
	"github.com/apex/log"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// EnsureClientID identifies the caller for subscriber bookkeeping. The id
// comes from the X-Client-ID header or the clientId query parameter; anonymous
// callers get a fresh one, echoed back in the response header.
func EnsureClientID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals("clientID") != nil {
			return c.Next()
		}

		clientID := c.Get("X-Client-ID")
		if clientID == "" {
			clientID = c.Query("clientId")
		}
		if clientID == "" {
			clientID = uuid.New().String()
			log.WithField("client", clientID).Debug("assigned anonymous client id")
		}

		c.Locals("clientID", clientID)
		c.Set("X-Client-ID", clientID)
		return c.Next()
	}
}
