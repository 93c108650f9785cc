package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	registerPageRoutes(app, handler)
	registerMetricRoutes(app, handler)
}

func registerPageRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)
	app.Get("/", handler.Index)
	app.Get("/about", handler.About)

	auth := app.Group("/auth")
	auth.Get("/login", handler.ShowLoginPage)
	auth.Post("/login", handler.Login)
	auth.Get("/register", handler.ShowRegisterPage)
	auth.Post("/register", handler.Register)
	auth.Get("/logout", handler.Logout)
}

func registerMetricRoutes(app *fiber.App, handler *Handler) {
	handler.bloodPressure.register(app)
	handler.weight.register(app)
	handler.medications.register(app)

	app.Post("/medications/toggle/:id", handler.AuthRequired, handler.ToggleMedicationTaken)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
