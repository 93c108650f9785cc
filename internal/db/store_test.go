package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryOneReportsMissingRowWithoutError(t *testing.T) {
	store := NewStore(openTestDatabase(t))

	row, found, err := QueryOne[uint](store, `SELECT id FROM users WHERE username = ?`, "nobody")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Zero(t, row)
}

func TestQueryManyReturnsEmptySliceForNoRows(t *testing.T) {
	store := NewStore(openTestDatabase(t))

	rows, err := QueryMany[string](store, `SELECT username FROM users`)
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestQueryParametersAreBoundNotInterpolated(t *testing.T) {
	store := NewStore(openTestDatabase(t))
	createTestUser(t, store, "alice")

	hostile := "alice' OR '1'='1"
	_, found, err := QueryOne[uint](store, `SELECT id FROM users WHERE username = ?`, hostile)
	require.NoError(t, err)
	assert.False(t, found)

	affected, err := store.Execute(`DELETE FROM users WHERE username = ?`, hostile)
	require.NoError(t, err)
	assert.Zero(t, affected)

	exists, err := NewUserRepository(store).ExistsByUsername("alice")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestExecuteReportsAffectedRows(t *testing.T) {
	store := NewStore(openTestDatabase(t))
	user := createTestUser(t, store, "bob")

	affected, err := store.Execute(`UPDATE users SET password_hash = ? WHERE id = ?`, "new-hash", user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	affected, err = store.Execute(`UPDATE users SET password_hash = ? WHERE id = ?`, "new-hash", user.ID+100)
	require.NoError(t, err)
	assert.Zero(t, affected)
}

func TestWithContextHonorsCancelledContext(t *testing.T) {
	store := NewStore(openTestDatabase(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := QueryMany[string](store.WithContext(ctx), `SELECT username FROM users`)
	assert.Error(t, err)
}
