package api

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/healthsome/internal/services"
)

const loginRequiredMessage = "Please log in to view your records."

// AuthRequired guards page routes: anonymous visitors are sent to the login page.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	user, err := handler.authenticateRequest(c)
	if err != nil {
		logAuthFailure(c, err)
		if acceptsJSON(c) {
			return unauthorized(c)
		}
		handler.clearSessionCookie(c)
		handler.flash(c, flashCategoryInfo, loginRequiredMessage)
		return c.Redirect("/auth/login", fiber.StatusSeeOther)
	}

	c.Locals(contextUserKey, user)
	return c.Next()
}

// DataAuthRequired guards JSON endpoints, which never redirect.
func (handler *Handler) DataAuthRequired(c *fiber.Ctx) error {
	user, err := handler.authenticateRequest(c)
	if err != nil {
		logAuthFailure(c, err)
		return unauthorized(c)
	}

	c.Locals(contextUserKey, user)
	return c.Next()
}

func unauthorized(c *fiber.Ctx) error {
	return apiError(c, fiber.StatusUnauthorized, "Unauthorized")
}

func logAuthFailure(c *fiber.Ctx, err error) {
	if errors.Is(err, errNoSession) || errors.Is(err, services.ErrUserNotFound) {
		return
	}
	log.Printf("resolve session for %s %s: %v", c.Method(), c.Path(), err)
}
