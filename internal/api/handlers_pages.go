package api

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Index is the dashboard for signed-in users and the login page otherwise.
func (handler *Handler) Index(c *fiber.Ctx) error {
	user := handler.optionalUser(c)
	if user == nil {
		return handler.render(c, "login", fiber.Map{"Title": "Healthsome | Log In"})
	}
	return handler.render(c, "index", fiber.Map{"Title": "Healthsome"})
}

func (handler *Handler) About(c *fiber.Ctx) error {
	handler.optionalUser(c)
	return handler.render(c, "about", fiber.Map{"Title": "Healthsome | About"})
}

func (handler *Handler) NotFound(c *fiber.Ctx) error {
	if acceptsJSON(c) {
		return apiError(c, fiber.StatusNotFound, "not found")
	}
	handler.optionalUser(c)
	c.Status(fiber.StatusNotFound)
	return handler.render(c, "error", fiber.Map{
		"Title":        "Healthsome | Page Not Found",
		"ErrorCode":    fiber.StatusNotFound,
		"ErrorMessage": "Page not found.",
	})
}

// ErrorHandler replaces fiber's plain-text fault responses with the error page.
func (handler *Handler) ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "Internal server error."

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status = fiberErr.Code
		if status != fiber.StatusInternalServerError {
			message = fiberErr.Message
		}
	}
	if status >= fiber.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Method(), c.Path(), err)
	}

	if acceptsJSON(c) {
		return apiError(c, status, message)
	}
	c.Status(status)
	return handler.render(c, "error", fiber.Map{
		"Title":        "Healthsome | Error",
		"ErrorCode":    status,
		"ErrorMessage": message,
	})
}
