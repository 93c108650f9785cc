package cli

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/terraincognita07/healthsome/internal/db"
	"github.com/terraincognita07/healthsome/internal/services"
)

func scriptedPasswords(values ...string) PasswordReader {
	return func(string) (string, error) {
		if len(values) == 0 {
			return "", errors.New("no more input")
		}
		value := values[0]
		values = values[1:]
		return value, nil
	}
}

func loginWith(t *testing.T, dbPath string, username string, password string) error {
	t.Helper()

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	defer sqlDB.Close()

	_, err = services.NewAuthService(db.NewUserRepository(db.NewStore(database))).Login(username, password)
	return err
}

func TestCreateUserThenResetPassword(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "healthsome-cli.db")

	var out bytes.Buffer
	if err := RunCreateUserCommand(dbPath, " alice ", scriptedPasswords("StrongPass1", "StrongPass1"), &out); err != nil {
		t.Fatalf("create-user failed: %v", err)
	}
	if !strings.Contains(out.String(), "User alice created") {
		t.Fatalf("unexpected create-user output %q", out.String())
	}
	if err := loginWith(t, dbPath, "alice", "StrongPass1"); err != nil {
		t.Fatalf("expected created user to log in: %v", err)
	}

	out.Reset()
	if err := RunResetPasswordCommand(dbPath, "alice", &out); err != nil {
		t.Fatalf("reset-password failed: %v", err)
	}
	_, temporaryPassword, found := strings.Cut(out.String(), "Temporary password: ")
	if !found {
		t.Fatalf("expected temporary password in output %q", out.String())
	}
	temporaryPassword = strings.TrimSpace(temporaryPassword)
	if len(temporaryPassword) != temporaryPasswordLength {
		t.Fatalf("expected %d-character password, got %q", temporaryPasswordLength, temporaryPassword)
	}

	if err := loginWith(t, dbPath, "alice", temporaryPassword); err != nil {
		t.Fatalf("expected temporary password to work: %v", err)
	}
	if err := loginWith(t, dbPath, "alice", "StrongPass1"); !errors.Is(err, services.ErrInvalidCredentials) {
		t.Fatalf("expected old password to stop working, got %v", err)
	}
}

func TestCreateUserErrors(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "healthsome-cli.db")
	var out bytes.Buffer

	if err := RunCreateUserCommand(dbPath, "", scriptedPasswords(), &out); err == nil {
		t.Fatal("expected missing username to fail")
	}
	if err := RunCreateUserCommand(dbPath, "bob", scriptedPasswords("one", "two"), &out); err == nil || !strings.Contains(err.Error(), "do not match") {
		t.Fatalf("expected mismatch error, got %v", err)
	}
	if err := RunCreateUserCommand(dbPath, "bob", scriptedPasswords("StrongPass1", "StrongPass1"), &out); err != nil {
		t.Fatalf("create-user failed: %v", err)
	}
	if err := RunCreateUserCommand(dbPath, "bob", scriptedPasswords("OtherPass1", "OtherPass1"), &out); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected duplicate user error, got %v", err)
	}
}

func TestResetPasswordUnknownUser(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "healthsome-cli.db")
	var out bytes.Buffer

	err := RunResetPasswordCommand(dbPath, "ghost", &out)
	if err == nil || !strings.Contains(err.Error(), "user ghost not found") {
		t.Fatalf("expected not found error, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output on failure, got %q", out.String())
	}
}

func TestGenerateTemporaryPasswordMinimumLength(t *testing.T) {
	t.Parallel()

	password, err := generateTemporaryPassword(4)
	if err != nil {
		t.Fatalf("generateTemporaryPassword returned error: %v", err)
	}
	if len(password) != 8 {
		t.Fatalf("generateTemporaryPassword minimum len = %d, want 8", len(password))
	}
	for _, char := range password {
		if !strings.ContainsRune(temporaryPasswordAlphabet, char) {
			t.Fatalf("password %q contains char %q outside alphabet", password, char)
		}
	}
}

func TestGenerateSecretCommandSatisfiesConfigLength(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	if err := RunGenerateSecretCommand(&out); err != nil {
		t.Fatalf("generate-secret failed: %v", err)
	}
	secret := strings.TrimSpace(out.String())
	if len(secret) != secretKeyLength || secretKeyLength < 32 {
		t.Fatalf("expected %d-character secret, got %q", secretKeyLength, secret)
	}
}
