package rayid

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_GeneratesRayID(t *testing.T) {
	app := fiber.New()
	app.Use(New())

	var seen string
	app.Get("/", func(c *fiber.Ctx) error {
		seen, _ = c.Locals("ray_id").(string)
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)

	header := resp.Header.Get(HeaderName)
	assert.Equal(t, header, seen)

	_, err = uuid.Parse(header)
	assert.NoError(t, err)
}

func TestNew_HonorsIncomingRayID(t *testing.T) {
	app := fiber.New()
	app.Use(New())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(HeaderName, "upstream-trace-1")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "upstream-trace-1", resp.Header.Get(HeaderName))
}
