package db

import (
	"context"

	"gorm.io/gorm"
)

// Store runs hand-written SQL with bound parameters. Values never reach the
// statement text; only callers' constant identifiers do.
type Store struct {
	database *gorm.DB
}

func NewStore(database *gorm.DB) *Store {
	return &Store{database: database}
}

// WithContext returns a handle scoped to one request. Connections are taken
// from the pool per statement and returned when the statement finishes,
// whether it failed or not.
func (store *Store) WithContext(ctx context.Context) *Store {
	return &Store{database: store.database.WithContext(ctx)}
}

// QueryMany scans every returned row into T. The result is never nil on success.
func QueryMany[T any](store *Store, query string, args ...any) ([]T, error) {
	rows := make([]T, 0)
	if err := store.database.Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if rows == nil {
		rows = make([]T, 0)
	}
	return rows, nil
}

// QueryOne returns the first row. Zero rows is reported as found=false, not an error.
func QueryOne[T any](store *Store, query string, args ...any) (T, bool, error) {
	var row T
	result := store.database.Raw(query, args...).Scan(&row)
	if result.Error != nil {
		var zero T
		return zero, false, result.Error
	}
	if result.RowsAffected == 0 {
		var zero T
		return zero, false, nil
	}
	return row, true, nil
}

// Execute runs a single autocommitted statement and reports affected rows.
func (store *Store) Execute(query string, args ...any) (int64, error) {
	result := store.database.Exec(query, args...)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
