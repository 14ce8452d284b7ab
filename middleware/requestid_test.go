package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func ridApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Get("/", RequestID(), func(c *fiber.Ctx) error {
		if rid, _ := c.Locals("request_id").(string); rid == "" {
			t.Error("expected request_id in locals")
		}
		return c.SendString("ok")
	})
	return app
}

func TestRequestID_GeneratesNew(t *testing.T) {
	app := ridApp(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.Header.Get(RequestIDHeader) == "" {
		t.Error("expected X-Request-ID response header")
	}
}

func TestRequestID_PreservesExisting(t *testing.T) {
	app := ridApp(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "my-custom-id")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if got := resp.Header.Get(RequestIDHeader); got != "my-custom-id" {
		t.Errorf("response header = %q, want my-custom-id", got)
	}
}
