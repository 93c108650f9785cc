package api

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/healthsome/internal/services"
)

const (
	invalidCredentialsMessage  = "Invalid username or password."
	credentialsRequiredMessage = "Username and password are required."
	passwordMismatchMessage    = "Passwords do not match."
	usernameTakenMessage       = "Username already taken."
	authUnavailableMessage     = "Something went wrong. Please try again."
)

func (handler *Handler) ShowLoginPage(c *fiber.Ctx) error {
	if handler.optionalUser(c) != nil {
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	return handler.render(c, "login", fiber.Map{"Title": "Healthsome | Log In"})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	username := services.NormalizeUsername(c.FormValue("username"))
	user, err := handler.scope(c).authService().Login(username, c.FormValue("password"))
	if err != nil {
		status, message := authErrorResponse(err)
		if status == fiber.StatusInternalServerError {
			log.Printf("login %q: %v", username, err)
		}
		return handler.respondAuthError(c, "login", status, message)
	}

	if err := handler.setSessionCookie(c, &user); err != nil {
		log.Printf("login %q: %v", username, err)
		return handler.respondAuthError(c, "login", fiber.StatusInternalServerError, authUnavailableMessage)
	}
	handler.flash(c, flashCategorySuccess, "Login successful!")
	return redirectOrJSON(c, "/")
}

func (handler *Handler) ShowRegisterPage(c *fiber.Ctx) error {
	if handler.optionalUser(c) != nil {
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	return handler.render(c, "register", fiber.Map{"Title": "Healthsome | Register"})
}

// Register creates the account but does not start a session.
func (handler *Handler) Register(c *fiber.Ctx) error {
	username := services.NormalizeUsername(c.FormValue("username"))
	_, err := handler.scope(c).authService().Register(username, c.FormValue("password"), c.FormValue("confirmation"))
	if err != nil {
		status, message := authErrorResponse(err)
		if status == fiber.StatusInternalServerError {
			log.Printf("register %q: %v", username, err)
		}
		return handler.respondAuthError(c, "register", status, message)
	}

	handler.flash(c, flashCategorySuccess, "Registration successful! You can now log in.")
	return redirectOrJSON(c, "/auth/login")
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearSessionCookie(c)
	handler.clearFlashCookie(c)
	handler.flash(c, flashCategorySuccess, "You have been logged out.")
	return redirectOrJSON(c, "/auth/login")
}

func (handler *Handler) respondAuthError(c *fiber.Ctx, page string, status int, message string) error {
	if acceptsJSON(c) {
		return apiError(c, status, message)
	}
	c.Status(status)
	return handler.render(c, page, fiber.Map{
		"Title": "Healthsome",
		"Error": message,
	})
}

func authErrorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, invalidCredentialsMessage
	case errors.Is(err, services.ErrCredentialsRequired):
		return fiber.StatusBadRequest, credentialsRequiredMessage
	case errors.Is(err, services.ErrPasswordMismatch):
		return fiber.StatusBadRequest, passwordMismatchMessage
	case errors.Is(err, services.ErrUsernameTaken):
		return fiber.StatusConflict, usernameTakenMessage
	default:
		return fiber.StatusInternalServerError, authUnavailableMessage
	}
}
