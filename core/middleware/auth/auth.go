// Package auth implements API key validation for protected routes.
package auth

import "github.com/gofiber/fiber/v2"

// HeaderName is the request header carrying the API key.
const HeaderName = "X-Api-Key"

// Config holds configuration for the auth middleware.
type Config struct {
	// ApiKey is the expected key. An empty key disables the check.
	ApiKey string
}

// New creates the auth middleware. The key is read from the X-Api-Key
// header, with an apikey query parameter accepted as a fallback for
// clients that cannot set headers.
func New(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.ApiKey == "" {
			return c.Next()
		}

		key := c.Get(HeaderName)
		if key == "" {
			key = c.Query("apikey")
		}
		if key != cfg.ApiKey {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or missing API key")
		}

		return c.Next()
	}
}
