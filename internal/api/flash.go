package api

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	flashCookieName    = "healthsome_flash"
	flashCookiePurpose = "flash"
	flashCookieTTL     = 5 * time.Minute
)

const (
	flashCategorySuccess = "success"
	flashCategoryError   = "error"
	flashCategoryInfo    = "info"
)

// FlashMessage is a one-shot notice shown on the next rendered page.
type FlashMessage struct {
	Category string `json:"category"`
	Text     string `json:"text"`
}

func (handler *Handler) flash(c *fiber.Ctx, category string, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	messages := append(pendingFlashes(c), FlashMessage{Category: category, Text: text})
	c.Locals(contextFlashKey, messages)

	serialized, err := json.Marshal(messages)
	if err != nil {
		return
	}
	sealed, err := handler.cookieCodec.seal(flashCookiePurpose, serialized)
	if err != nil {
		return
	}

	c.Cookie(&fiber.Cookie{
		Name:     flashCookieName,
		Value:    sealed,
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().Add(flashCookieTTL),
	})
}

// popFlashes returns the messages carried over from the previous response and
// expires the cookie. Tampered or stale cookies are dropped silently.
func (handler *Handler) popFlashes(c *fiber.Ctx) []FlashMessage {
	raw := strings.TrimSpace(c.Cookies(flashCookieName))
	if raw == "" {
		return nil
	}
	handler.clearFlashCookie(c)

	plaintext, err := handler.cookieCodec.open(flashCookiePurpose, raw)
	if err != nil {
		return nil
	}
	messages := []FlashMessage{}
	if err := json.Unmarshal(plaintext, &messages); err != nil {
		return nil
	}
	return messages
}

func (handler *Handler) clearFlashCookie(c *fiber.Ctx) {
	c.Locals(contextFlashKey, nil)
	c.Cookie(&fiber.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}

func pendingFlashes(c *fiber.Ctx) []FlashMessage {
	messages, _ := c.Locals(contextFlashKey).([]FlashMessage)
	return messages
}
