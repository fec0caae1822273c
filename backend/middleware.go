package backend

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/hashicorp/go-hclog"
)

// RequestLogger logs every request with method, path, status and duration.
func RequestLogger(logger log.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		reqID, _ := c.Locals("requestid").(string)
		logger.Info("http",
			"method", c.Method(),
			"path", c.OriginalURL(),
			"status", c.Response().StatusCode(),
			"duration_ms", float64(time.Since(start).Microseconds())/1000.0,
			"request_id", reqID,
		)
		return err
	}
}

// AdminKeyGate guards the admin routes with a shared secret compared against
// the X-Admin-Key header.
func AdminKeyGate(adminKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if adminKey == "" {
			return c.Status(http.StatusInternalServerError).
				JSON(errorResponse("internal", "admin key is not configured on the server"))
		}
		if c.Get("X-Admin-Key") != adminKey {
			return c.Status(http.StatusUnauthorized).
				JSON(errorResponse("unauthorized", "unauthorized"))
		}
		return c.Next()
	}
}
