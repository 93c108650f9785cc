package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/healthsome/internal/db"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testSecretKey = "test-secret-key-with-at-least-32-characters"

var testNow = time.Date(2024, time.December, 20, 12, 0, 0, 0, time.UTC)

type testClock struct {
	now time.Time
}

func (clock *testClock) Now() time.Time {
	return clock.now
}

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	app, database, _ := newTestAppWithClock(t)
	return app, database
}

func newTestAppWithClock(t *testing.T) (*fiber.App, *gorm.DB, *testClock) {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "healthsome-api-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	clock := &testClock{now: testNow}
	handler, err := NewHandler(database, testSecretKey, Options{
		Location:     time.UTC,
		PasswordCost: bcrypt.MinCost,
		Now:          clock.Now,
	})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New(fiber.Config{ErrorHandler: handler.ErrorHandler})
	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app, database, clock
}

func doRequest(t *testing.T, app *fiber.App, request *http.Request) (*http.Response, string) {
	t.Helper()

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", request.Method, request.URL.Path, err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("%s %s read body failed: %v", request.Method, request.URL.Path, err)
	}
	return response, string(body)
}

func getPage(t *testing.T, app *fiber.App, path string, cookies string) (*http.Response, string) {
	t.Helper()

	request := httptest.NewRequest(http.MethodGet, path, nil)
	if cookies != "" {
		request.Header.Set("Cookie", cookies)
	}
	return doRequest(t, app, request)
}

func postForm(t *testing.T, app *fiber.App, path string, form url.Values, cookies string) (*http.Response, string) {
	t.Helper()

	request := newFormRequest(http.MethodPost, path, form)
	if cookies != "" {
		request.Header.Set("Cookie", cookies)
	}
	return doRequest(t, app, request)
}

func responseCookie(response *http.Response, name string) *http.Cookie {
	for _, cookie := range response.Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

// flashCookieHeader carries the flash set by a redirect into the follow-up request.
func flashCookieHeader(t *testing.T, response *http.Response) string {
	t.Helper()

	cookie := responseCookie(response, flashCookieName)
	if cookie == nil || cookie.Value == "" {
		t.Fatalf("expected %s cookie in response", flashCookieName)
	}
	return flashCookieName + "=" + cookie.Value
}

func joinCookies(cookies ...string) string {
	parts := make([]string, 0, len(cookies))
	for _, cookie := range cookies {
		if cookie != "" {
			parts = append(parts, cookie)
		}
	}
	return strings.Join(parts, "; ")
}

func registerTestUser(t *testing.T, app *fiber.App, username string, password string) {
	t.Helper()

	response, _ := postForm(t, app, "/auth/register", url.Values{
		"username":     {username},
		"password":     {password},
		"confirmation": {password},
	}, "")
	if response.StatusCode != http.StatusSeeOther {
		t.Fatalf("register %q: expected status 303, got %d", username, response.StatusCode)
	}
}

// loginAndExtractSessionCookie returns a Cookie header value for the new session.
func loginAndExtractSessionCookie(t *testing.T, app *fiber.App, username string, password string) string {
	t.Helper()

	response, _ := postForm(t, app, "/auth/login", url.Values{
		"username": {username},
		"password": {password},
	}, "")
	if response.StatusCode != http.StatusSeeOther {
		t.Fatalf("login %q: expected status 303, got %d", username, response.StatusCode)
	}
	cookie := responseCookie(response, sessionCookieName)
	if cookie == nil || cookie.Value == "" {
		t.Fatalf("login %q: expected session cookie", username)
	}
	return sessionCookieName + "=" + cookie.Value
}

func registerAndLogin(t *testing.T, app *fiber.App, username string) string {
	t.Helper()
	registerTestUser(t, app, username, "StrongPass1")
	return loginAndExtractSessionCookie(t, app, username, "StrongPass1")
}

func getJSON(t *testing.T, app *fiber.App, path string, cookies string) (*http.Response, string) {
	t.Helper()

	request := httptest.NewRequest(http.MethodGet, path, nil)
	request.Header.Set("Accept", "application/json")
	if cookies != "" {
		request.Header.Set("Cookie", cookies)
	}
	return doRequest(t, app, request)
}

func newFormRequest(method string, path string, form url.Values) *http.Request {
	request := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return request
}
