package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/healthsome/internal/db"
	"github.com/terraincognita07/healthsome/internal/models"
	"github.com/terraincognita07/healthsome/internal/services"
)

const (
	contextUserKey  = "user"
	contextScopeKey = "request_scope"
)

// requestScope binds repositories to the request context so statements are
// cancelled together with the request.
type requestScope struct {
	handler *Handler
	repos   *db.Repositories
}

func (handler *Handler) scope(c *fiber.Ctx) *requestScope {
	if scope, ok := c.Locals(contextScopeKey).(*requestScope); ok {
		return scope
	}
	scope := &requestScope{
		handler: handler,
		repos:   db.NewRepositories(handler.store.WithContext(c.UserContext())),
	}
	c.Locals(contextScopeKey, scope)
	return scope
}

func (scope *requestScope) authService() *services.AuthService {
	return services.NewAuthService(scope.repos.Users).WithHashCost(scope.handler.passwordCost)
}

func (scope *requestScope) medicationService() *services.MedicationService {
	return services.NewMedicationService(scope.repos.Medications, scope.handler.localNow)
}

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok && user != nil
}
