package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "healthy",
		"service":   "gdm-assessment-api",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
