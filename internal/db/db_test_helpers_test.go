package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/healthsome/internal/models"
	"gorm.io/gorm"
)

func openTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := OpenSQLite(filepath.Join(t.TempDir(), "healthsome-test.db"))
	require.NoError(t, err)

	sqlDB, err := database.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return database
}

func createTestUser(t *testing.T, store *Store, username string) models.User {
	t.Helper()

	user := models.User{Username: username, PasswordHash: "test-hash"}
	require.NoError(t, NewUserRepository(store).Create(&user))
	require.NotZero(t, user.ID)
	return user
}
