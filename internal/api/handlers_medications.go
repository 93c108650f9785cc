package api

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/healthsome/internal/services"
)

const medicationToggledMessage = "Medication status updated successfully."

// ToggleMedicationTaken flips the taken flag of one of the user's medication records.
func (handler *Handler) ToggleMedicationTaken(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	resource := handler.medications
	recordID, ok := parseRecordID(c)
	if !ok {
		return resource.redirectNotFound(c)
	}

	if err := handler.scope(c).medicationService().ToggleTaken(user.ID, recordID); err != nil {
		if errors.Is(err, services.ErrRecordNotFound) {
			return resource.redirectNotFound(c)
		}
		log.Printf("toggle medication %d for user %d: %v", recordID, user.ID, err)
		if acceptsJSON(c) {
			return apiError(c, fiber.StatusInternalServerError, recordSaveFailedMessage)
		}
		handler.flash(c, flashCategoryError, recordSaveFailedMessage)
		return c.Redirect(resource.listPath(), fiber.StatusSeeOther)
	}

	handler.flash(c, flashCategorySuccess, medicationToggledMessage)
	return redirectOrJSON(c, resource.listPath())
}
