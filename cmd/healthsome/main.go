package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/terraincognita07/healthsome/internal/api"
	"github.com/terraincognita07/healthsome/internal/cli"
	"github.com/terraincognita07/healthsome/internal/config"
	"github.com/terraincognita07/healthsome/internal/db"
)

const usage = `usage:
  healthsome                           start the web server
  healthsome reset-password <username> set a temporary password
  healthsome create-user <username>    create an account
  healthsome generate-secret           print a random SECRET_KEY`

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	if len(args) == 0 || args[0] == "serve" {
		return serve()
	}

	switch command := args[0]; command {
	case "generate-secret":
		return cli.RunGenerateSecretCommand(os.Stdout)
	case "reset-password", "create-user":
		if len(args) != 2 {
			return fmt.Errorf("%s expects exactly one username\n%s", command, usage)
		}
		cfg, err := config.Parse()
		if err != nil {
			return err
		}
		if command == "reset-password" {
			return cli.RunResetPasswordCommand(cfg.DBPath, args[1], os.Stdout)
		}
		return cli.RunCreateUserCommand(cfg.DBPath, args[1], cli.TerminalPasswordReader(os.Stdin, os.Stderr), os.Stdout)
	case "-h", "--help", "help":
		fmt.Println(usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q\n%s", command, usage)
	}
}

func serve() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	location, err := cfg.Location()
	if err != nil {
		log.Printf("%v, falling back to UTC", err)
	}
	time.Local = location

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}

	handler, err := api.NewHandler(database, cfg.SecretKey, api.Options{
		Location:     location,
		CookieSecure: cfg.CookieSecure,
		SessionTTL:   cfg.SessionTTL,
	})
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}
	app := newApp(handler, cfg.CookieSecure)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Healthsome listening on http://0.0.0.0%s (db: %s, tz: %s)", cfg.ListenAddress(), cfg.DBPath, location.String())
	if err := app.Listen(cfg.ListenAddress()); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

func newApp(handler *api.Handler, cookieSecure bool) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Healthsome",
		DisableStartupMessage: true,
		ErrorHandler:          handler.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(csrf.New(csrfMiddlewareConfig(cookieSecure)))

	api.RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app
}

func csrfMiddlewareConfig(cookieSecure bool) csrf.Config {
	return csrf.Config{
		KeyLookup:      "form:csrf_token",
		CookieName:     "healthsome_csrf",
		CookieSameSite: "Lax",
		CookieHTTPOnly: true,
		CookieSecure:   cookieSecure,
		ContextKey:     "csrf",
	}
}
