package api

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const contextFlashKey = "flash"

func redirectOrJSON(c *fiber.Ctx, path string) error {
	if acceptsJSON(c) {
		return c.JSON(fiber.Map{"ok": true})
	}
	return c.Redirect(path, fiber.StatusSeeOther)
}

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func acceptsJSON(c *fiber.Ctx) bool {
	return strings.Contains(strings.ToLower(c.Get("Accept")), "application/json")
}

func csrfToken(c *fiber.Ctx) string {
	token, _ := c.Locals("csrf").(string)
	return token
}

// parseRecordID accepts positive decimal ids only.
func parseRecordID(c *fiber.Ctx) (uint, bool) {
	value, err := strconv.ParseUint(strings.TrimSpace(c.Params("id")), 10, 32)
	if err != nil || value == 0 {
		return 0, false
	}
	return uint(value), true
}

func formValues(c *fiber.Ctx, fields []string) map[string]string {
	values := make(map[string]string, len(fields))
	for _, field := range fields {
		values[field] = strings.TrimSpace(c.FormValue(field))
	}
	return values
}
