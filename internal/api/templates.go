package api

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

//go:embed templates/*.html
var templateFiles embed.FS

var pageTemplates = []string{
	"index",
	"about",
	"login",
	"register",
	"error",
	"blood_pressure_list",
	"blood_pressure_form",
	"weight_list",
	"weight_form",
	"medications_list",
	"medications_form",
}

func parsePageTemplates(funcMap template.FuncMap, pages []string) (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		parsed, err := template.New("base").Funcs(funcMap).ParseFS(
			templateFiles,
			"templates/base.html",
			"templates/"+page+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse page template %s: %w", page, err)
		}
		templates[page] = parsed
	}
	return templates, nil
}

func newTemplateFuncMap() template.FuncMap {
	return template.FuncMap{
		"formatFloat": func(value float64) string {
			return strconv.FormatFloat(value, 'f', -1, 64)
		},
		"formatPulse": func(value *int) string {
			if value == nil {
				return "-"
			}
			return strconv.Itoa(*value)
		},
		"isActiveRange": func(current string, option string) bool {
			return current == option
		},
	}
}

func (handler *Handler) render(c *fiber.Ctx, name string, data fiber.Map) error {
	tmpl, ok := handler.templates[name]
	if !ok {
		return c.Status(fiber.StatusInternalServerError).SendString("template not found")
	}

	payload := handler.withTemplateDefaults(c, data)
	var output bytes.Buffer
	if err := tmpl.ExecuteTemplate(&output, "base", payload); err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("failed to render template")
	}
	c.Type("html", "utf-8")
	return c.Send(output.Bytes())
}

func (handler *Handler) withTemplateDefaults(c *fiber.Ctx, data fiber.Map) fiber.Map {
	payload := fiber.Map{}
	for key, value := range data {
		payload[key] = value
	}
	if _, ok := payload["Title"]; !ok {
		payload["Title"] = "Healthsome"
	}
	if user, ok := currentUser(c); ok {
		payload["CurrentUser"] = user
	}
	payload["CSRFToken"] = csrfToken(c)
	payload["Flashes"] = handler.popFlashes(c)
	return payload
}
