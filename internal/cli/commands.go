package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/terraincognita07/healthsome/internal/db"
	"github.com/terraincognita07/healthsome/internal/services"
	"gorm.io/gorm"
)

const temporaryPasswordLength = 12

// RunResetPasswordCommand replaces the user's password with a generated one
// and prints it once.
func RunResetPasswordCommand(dbPath string, username string, out io.Writer) error {
	username = services.NormalizeUsername(username)
	if username == "" {
		return errors.New("username is required")
	}

	return withDatabase(dbPath, func(database *gorm.DB) error {
		temporaryPassword, err := generateTemporaryPassword(temporaryPasswordLength)
		if err != nil {
			return fmt.Errorf("generate temporary password: %w", err)
		}

		auth := services.NewAuthService(db.NewUserRepository(db.NewStore(database)))
		if err := auth.SetPassword(username, temporaryPassword); err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				return fmt.Errorf("user %s not found", username)
			}
			return err
		}

		fmt.Fprintln(out, "Password reset successful")
		fmt.Fprintf(out, "Temporary password: %s\n", temporaryPassword)
		return nil
	})
}

// RunCreateUserCommand registers an account with a password read from the prompt.
func RunCreateUserCommand(dbPath string, username string, readPassword PasswordReader, out io.Writer) error {
	username = services.NormalizeUsername(username)
	if username == "" {
		return errors.New("username is required")
	}

	password, err := readPassword("Password: ")
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	confirmation, err := readPassword("Confirm password: ")
	if err != nil {
		return fmt.Errorf("read password confirmation: %w", err)
	}

	return withDatabase(dbPath, func(database *gorm.DB) error {
		auth := services.NewAuthService(db.NewUserRepository(db.NewStore(database)))
		user, err := auth.Register(username, password, confirmation)
		switch {
		case errors.Is(err, services.ErrPasswordMismatch):
			return errors.New("passwords do not match")
		case errors.Is(err, services.ErrUsernameTaken):
			return fmt.Errorf("user %s already exists", username)
		case errors.Is(err, services.ErrCredentialsRequired):
			return errors.New("password is required")
		case err != nil:
			return err
		}

		fmt.Fprintf(out, "User %s created (id %d)\n", user.Username, user.ID)
		return nil
	})
}

// RunGenerateSecretCommand prints a value suitable for SECRET_KEY.
func RunGenerateSecretCommand(out io.Writer) error {
	secret, err := generateSecretKey()
	if err != nil {
		return fmt.Errorf("generate secret key: %w", err)
	}
	fmt.Fprintln(out, secret)
	return nil
}

func withDatabase(dbPath string, run func(database *gorm.DB) error) error {
	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	defer sqlDB.Close()

	return run(database)
}
