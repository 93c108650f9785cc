package api

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/healthsome/internal/models"
	"github.com/terraincognita07/healthsome/internal/services"
)

const (
	recordNotFoundMessage     = "Record not found."
	recordAddedMessage        = "Record added successfully."
	recordUpdatedMessage      = "Record updated successfully."
	recordDeletedMessage      = "Record deleted successfully."
	recordLoadFailedMessage   = "An error occurred while loading your records."
	recordSaveFailedMessage   = "An error occurred while saving the record."
	recordDeleteFailedMessage = "An error occurred while deleting the record."
)

// metricResource serves list, create, edit, delete and chart data for one
// metric table. Every operation is scoped to the signed-in user.
type metricResource[T models.MetricRecord] struct {
	handler  *Handler
	name     string
	title    string
	basePath string
	fields   []string
	parse    func(form map[string]string) (T, error)
	values   func(record T) map[string]string
	service  func(scope *requestScope) *services.MetricService[T]
}

func (resource *metricResource[T]) listPath() string {
	return resource.basePath + "/"
}

func (resource *metricResource[T]) register(router fiber.Router) {
	group := router.Group(resource.basePath)
	group.Get("/data", resource.handler.DataAuthRequired, resource.Data)
	group.Get("/", resource.handler.AuthRequired, resource.List)
	group.Get("/create", resource.handler.AuthRequired, resource.ShowCreate)
	group.Post("/create", resource.handler.AuthRequired, resource.Create)
	group.Get("/edit/:id", resource.handler.AuthRequired, resource.ShowEdit)
	group.Post("/edit/:id", resource.handler.AuthRequired, resource.Edit)
	group.Post("/delete/:id", resource.handler.AuthRequired, resource.Delete)
}

func (resource *metricResource[T]) List(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	rangeToken := services.NormalizeRangeToken(c.Query("range"))

	data := fiber.Map{
		"Title":    "Healthsome | " + resource.title,
		"Heading":  resource.title,
		"BasePath": resource.basePath,
		"Range":    rangeToken,
	}
	records, err := resource.service(resource.handler.scope(c)).List(user.ID, rangeToken)
	if err != nil {
		log.Printf("list %s records for user %d: %v", resource.name, user.ID, err)
		records = []T{}
		data["Error"] = recordLoadFailedMessage
	}
	data["Records"] = records
	return resource.handler.render(c, resource.name+"_list", data)
}

func (resource *metricResource[T]) Data(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	rangeToken := services.NormalizeRangeToken(c.Query("range"))

	points, err := resource.service(resource.handler.scope(c)).ChartData(user.ID, rangeToken)
	if err != nil {
		log.Printf("load %s chart data for user %d: %v", resource.name, user.ID, err)
		return apiError(c, fiber.StatusInternalServerError, "failed to load records")
	}
	return c.JSON(points)
}

func (resource *metricResource[T]) ShowCreate(c *fiber.Ctx) error {
	form := map[string]string{
		"date_time": services.CurrentFormTimestamp(resource.handler.localNow()),
	}
	return resource.renderForm(c, fiber.StatusOK, form, resource.basePath+"/create", false, "")
}

func (resource *metricResource[T]) Create(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	form := formValues(c, resource.fields)
	action := resource.basePath + "/create"

	record, err := resource.parse(form)
	if err != nil {
		return resource.respondInvalidForm(c, form, action, false, err)
	}
	if _, err := resource.service(resource.handler.scope(c)).Create(user.ID, record); err != nil {
		log.Printf("create %s record for user %d: %v", resource.name, user.ID, err)
		return resource.respondFormError(c, fiber.StatusOK, form, action, false, recordSaveFailedMessage)
	}

	resource.handler.flash(c, flashCategorySuccess, recordAddedMessage)
	return redirectOrJSON(c, resource.listPath())
}

func (resource *metricResource[T]) ShowEdit(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	recordID, ok := parseRecordID(c)
	if !ok {
		return resource.redirectNotFound(c)
	}

	record, err := resource.service(resource.handler.scope(c)).Find(user.ID, recordID)
	if err != nil {
		if errors.Is(err, services.ErrRecordNotFound) {
			return resource.redirectNotFound(c)
		}
		log.Printf("load %s record %d for user %d: %v", resource.name, recordID, user.ID, err)
		resource.handler.flash(c, flashCategoryError, recordLoadFailedMessage)
		return c.Redirect(resource.listPath(), fiber.StatusSeeOther)
	}

	return resource.renderForm(c, fiber.StatusOK, resource.values(record), resource.editPath(recordID), true, "")
}

// Edit reports "not found" when the update matches no row owned by the user,
// the same answer ShowEdit gives for that id.
func (resource *metricResource[T]) Edit(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	recordID, ok := parseRecordID(c)
	if !ok {
		return resource.redirectNotFound(c)
	}
	form := formValues(c, resource.fields)
	action := resource.editPath(recordID)

	record, err := resource.parse(form)
	if err != nil {
		return resource.respondInvalidForm(c, form, action, true, err)
	}
	if err := resource.service(resource.handler.scope(c)).Update(user.ID, recordID, record); err != nil {
		if errors.Is(err, services.ErrRecordNotFound) {
			return resource.redirectNotFound(c)
		}
		log.Printf("update %s record %d for user %d: %v", resource.name, recordID, user.ID, err)
		return resource.respondFormError(c, fiber.StatusOK, form, action, true, recordSaveFailedMessage)
	}

	resource.handler.flash(c, flashCategorySuccess, recordUpdatedMessage)
	return redirectOrJSON(c, resource.listPath())
}

// Delete answers the same way whether or not the id matched a row.
func (resource *metricResource[T]) Delete(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	recordID, ok := parseRecordID(c)
	if ok {
		if err := resource.service(resource.handler.scope(c)).Delete(user.ID, recordID); err != nil {
			log.Printf("delete %s record %d for user %d: %v", resource.name, recordID, user.ID, err)
			if acceptsJSON(c) {
				return apiError(c, fiber.StatusInternalServerError, recordDeleteFailedMessage)
			}
			resource.handler.flash(c, flashCategoryError, recordDeleteFailedMessage)
			return c.Redirect(resource.listPath(), fiber.StatusSeeOther)
		}
	}

	resource.handler.flash(c, flashCategorySuccess, recordDeletedMessage)
	return redirectOrJSON(c, resource.listPath())
}

func (resource *metricResource[T]) editPath(recordID uint) string {
	return resource.basePath + "/edit/" + strconv.FormatUint(uint64(recordID), 10)
}

func (resource *metricResource[T]) redirectNotFound(c *fiber.Ctx) error {
	if acceptsJSON(c) {
		return apiError(c, fiber.StatusNotFound, recordNotFoundMessage)
	}
	resource.handler.flash(c, flashCategoryError, recordNotFoundMessage)
	return c.Redirect(resource.listPath(), fiber.StatusSeeOther)
}

func (resource *metricResource[T]) respondInvalidForm(c *fiber.Ctx, form map[string]string, action string, editing bool, err error) error {
	message := "Please check the values you entered."
	var validationErr *formValidationError
	if errors.As(err, &validationErr) {
		message = validationErr.Message()
	}
	return resource.respondFormError(c, fiber.StatusBadRequest, form, action, editing, message)
}

func (resource *metricResource[T]) respondFormError(c *fiber.Ctx, status int, form map[string]string, action string, editing bool, message string) error {
	if acceptsJSON(c) {
		if status == fiber.StatusOK {
			status = fiber.StatusInternalServerError
		}
		return apiError(c, status, message)
	}
	return resource.renderForm(c, status, form, action, editing, message)
}

func (resource *metricResource[T]) renderForm(c *fiber.Ctx, status int, form map[string]string, action string, editing bool, message string) error {
	heading := "Add " + resource.title + " Record"
	if editing {
		heading = "Edit " + resource.title + " Record"
	}

	data := fiber.Map{
		"Title":    "Healthsome | " + heading,
		"Heading":  heading,
		"BasePath": resource.basePath,
		"Action":   action,
		"Editing":  editing,
		"Form":     form,
	}
	if message != "" {
		data["Error"] = message
	}
	c.Status(status)
	return resource.handler.render(c, resource.name+"_form", data)
}
