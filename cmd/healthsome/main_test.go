package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/healthsome/internal/api"
	"github.com/terraincognita07/healthsome/internal/db"
)

var csrfFieldPattern = regexp.MustCompile(`name="csrf_token" value="([^"]+)"`)

func TestCSRFMiddlewareConfigUsesCookieSecureFlag(t *testing.T) {
	secureConfig := csrfMiddlewareConfig(true)
	if !secureConfig.CookieSecure {
		t.Fatal("expected csrf cookie secure flag to be enabled")
	}
	if !secureConfig.CookieHTTPOnly {
		t.Fatal("expected csrf cookie to be httpOnly")
	}
	if secureConfig.CookieName != "healthsome_csrf" {
		t.Fatalf("expected csrf cookie name healthsome_csrf, got %q", secureConfig.CookieName)
	}
	if secureConfig.KeyLookup != "form:csrf_token" {
		t.Fatalf("expected csrf key lookup form:csrf_token, got %q", secureConfig.KeyLookup)
	}

	insecureConfig := csrfMiddlewareConfig(false)
	if insecureConfig.CookieSecure {
		t.Fatal("expected csrf cookie secure flag to be disabled")
	}
}

func TestRunRejectsUnknownCommandAndBadArguments(t *testing.T) {
	if err := run([]string{"frobnicate"}); err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Fatalf("expected unknown command error, got %v", err)
	}
	if err := run([]string{"reset-password"}); err == nil || !strings.Contains(err.Error(), "exactly one username") {
		t.Fatalf("expected usage error, got %v", err)
	}
	if err := run([]string{"create-user", "a", "b"}); err == nil || !strings.Contains(err.Error(), "exactly one username") {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func newTestServerApp(t *testing.T) *fiber.App {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "healthsome-main-test.db"))
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

	handler, err := api.NewHandler(database, "0123456789abcdef0123456789abcdef", api.Options{})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}
	return newApp(handler, false)
}

func TestFormPostWithoutCSRFTokenIsForbidden(t *testing.T) {
	app := newTestServerApp(t)

	form := url.Values{"username": {"alice"}, "password": {"secret"}}
	request := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", response.StatusCode)
	}
}

func TestFormPostWithCSRFTokenReachesHandler(t *testing.T) {
	app := newTestServerApp(t)

	pageResponse, err := app.Test(httptest.NewRequest(http.MethodGet, "/auth/login", nil), -1)
	if err != nil {
		t.Fatalf("login page request failed: %v", err)
	}
	defer pageResponse.Body.Close()

	body, err := io.ReadAll(pageResponse.Body)
	if err != nil {
		t.Fatalf("read login page: %v", err)
	}
	match := csrfFieldPattern.FindStringSubmatch(string(body))
	if match == nil {
		t.Fatal("expected csrf token field in login form")
	}

	var csrfCookie *http.Cookie
	for _, cookie := range pageResponse.Cookies() {
		if cookie.Name == "healthsome_csrf" {
			csrfCookie = cookie
		}
	}
	if csrfCookie == nil {
		t.Fatal("expected csrf cookie on login page")
	}

	form := url.Values{"username": {"nobody"}, "password": {"secret"}, "csrf_token": {match[1]}}
	request := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	request.Header.Set("Cookie", "healthsome_csrf="+csrfCookie.Value)

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected invalid credentials status 401, got %d", response.StatusCode)
	}
}

func TestHealthzThroughMiddlewareStack(t *testing.T) {
	app := newTestServerApp(t)

	response, err := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil), -1)
	if err != nil {
		t.Fatalf("healthz request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
}
