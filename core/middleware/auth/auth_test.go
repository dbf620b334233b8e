package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(cfg Config) *fiber.App {
	app := fiber.New()
	app.Use(New(cfg))
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		header     string
		query      string
		wantStatus int
	}{
		{"No key configured", "", "", "", fiber.StatusOK},
		{"Valid header", "secret", "secret", "", fiber.StatusOK},
		{"Valid query fallback", "secret", "", "secret", fiber.StatusOK},
		{"Wrong key", "secret", "nope", "", fiber.StatusUnauthorized},
		{"Missing key", "secret", "", "", fiber.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newApp(Config{ApiKey: tt.configured})

			target := "/"
			if tt.query != "" {
				target = "/?apikey=" + tt.query
			}
			req := httptest.NewRequest("GET", target, nil)
			if tt.header != "" {
				req.Header.Set(HeaderName, tt.header)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}
