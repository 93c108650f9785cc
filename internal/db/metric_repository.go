package db

import (
	"fmt"
	"strings"

	"github.com/terraincognita07/healthsome/internal/models"
)

type SortOrder int

const (
	NewestFirst SortOrder = iota
	OldestFirst
)

// MetricRepository is the owned-row CRUD shared by every metric table. Each
// statement filters by user_id so rows of other users are unreachable.
type MetricRepository[T models.MetricRecord] struct {
	store   *Store
	table   string
	columns []string
}

func NewMetricRepository[T models.MetricRecord](store *Store) *MetricRepository[T] {
	var zero T
	return &MetricRepository[T]{
		store:   store,
		table:   zero.TableName(),
		columns: zero.MutableColumns(),
	}
}

// ListByUserRange returns the user's rows with from <= date_time <= to; a nil bound is open.
func (repo *MetricRepository[T]) ListByUserRange(userID uint, from *string, to *string, order SortOrder) ([]T, error) {
	query := strings.Builder{}
	fmt.Fprintf(&query, "SELECT * FROM %s WHERE user_id = ?", repo.table)
	args := []any{userID}
	if from != nil {
		query.WriteString(" AND date_time >= ?")
		args = append(args, *from)
	}
	if to != nil {
		query.WriteString(" AND date_time <= ?")
		args = append(args, *to)
	}
	if order == OldestFirst {
		query.WriteString(" ORDER BY date_time ASC, id ASC")
	} else {
		query.WriteString(" ORDER BY date_time DESC, id DESC")
	}

	return QueryMany[T](repo.store, query.String(), args...)
}

func (repo *MetricRepository[T]) FindOwned(recordID uint, userID uint) (T, bool, error) {
	query := fmt.Sprintf("SELECT * FROM %s WHERE id = ? AND user_id = ? LIMIT 1", repo.table)
	return QueryOne[T](repo.store, query, recordID, userID)
}

func (repo *MetricRepository[T]) Create(userID uint, record T) (uint, error) {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(repo.columns)+1), ", ")
	query := fmt.Sprintf(
		"INSERT INTO %s (user_id, %s) VALUES (%s) RETURNING id",
		repo.table,
		strings.Join(repo.columns, ", "),
		placeholders,
	)

	args := append([]any{userID}, record.MutableValues()...)
	id, _, err := QueryOne[uint](repo.store, query, args...)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// UpdateOwned reports false when no row matched both ids.
func (repo *MetricRepository[T]) UpdateOwned(recordID uint, userID uint, record T) (bool, error) {
	assignments := make([]string, 0, len(repo.columns))
	for _, column := range repo.columns {
		assignments = append(assignments, column+" = ?")
	}
	query := fmt.Sprintf(
		"UPDATE %s SET %s WHERE id = ? AND user_id = ?",
		repo.table,
		strings.Join(assignments, ", "),
	)

	args := append(record.MutableValues(), recordID, userID)
	affected, err := repo.store.Execute(query, args...)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (repo *MetricRepository[T]) DeleteOwned(recordID uint, userID uint) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = ? AND user_id = ?", repo.table)
	_, err := repo.store.Execute(query, recordID, userID)
	return err
}

type MedicationRepository struct {
	*MetricRepository[models.MedicationRecord]
}

func NewMedicationRepository(store *Store) *MedicationRepository {
	return &MedicationRepository{MetricRepository: NewMetricRepository[models.MedicationRecord](store)}
}

// ToggleTaken flips the flag in one statement; false means no owned row matched.
func (repo *MedicationRepository) ToggleTaken(recordID uint, userID uint) (bool, error) {
	affected, err := repo.store.Execute(
		`UPDATE medications SET taken = CASE WHEN taken THEN 0 ELSE 1 END WHERE id = ? AND user_id = ?`,
		recordID, userID,
	)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
