package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/terraincognita07/healthsome/internal/db"
	"github.com/terraincognita07/healthsome/internal/models"
)

var (
	ErrRecordNotFound     = errors.New("record not found")
	ErrRecordLoadFailed   = errors.New("load records failed")
	ErrRecordSaveFailed   = errors.New("save record failed")
	ErrRecordDeleteFailed = errors.New("delete record failed")
)

type MetricRecordRepository[T models.MetricRecord] interface {
	ListByUserRange(userID uint, from *string, to *string, order db.SortOrder) ([]T, error)
	FindOwned(recordID uint, userID uint) (T, bool, error)
	Create(userID uint, record T) (uint, error)
	UpdateOwned(recordID uint, userID uint, record T) (bool, error)
	DeleteOwned(recordID uint, userID uint) error
}

// MetricService is the owned-resource workflow shared by all metric types.
// A record owned by someone else is reported exactly like a missing one.
type MetricService[T models.MetricRecord] struct {
	records MetricRecordRepository[T]
	now     func() time.Time
}

func NewMetricService[T models.MetricRecord](records MetricRecordRepository[T], now func() time.Time) *MetricService[T] {
	if now == nil {
		now = time.Now
	}
	return &MetricService[T]{records: records, now: now}
}

// List returns the user's records in range, newest first.
func (service *MetricService[T]) List(userID uint, rangeToken string) ([]T, error) {
	return service.listInRange(userID, rangeToken, db.NewestFirst)
}

// ChartData returns the user's records in range as oldest-first chart points.
func (service *MetricService[T]) ChartData(userID uint, rangeToken string) ([]any, error) {
	records, err := service.listInRange(userID, rangeToken, db.OldestFirst)
	if err != nil {
		return nil, err
	}

	points := make([]any, 0, len(records))
	for _, record := range records {
		points = append(points, record.ChartPoint())
	}
	return points, nil
}

func (service *MetricService[T]) listInRange(userID uint, rangeToken string, order db.SortOrder) ([]T, error) {
	dateRange := CalculateDateRange(rangeToken, service.now())
	records, err := service.records.ListByUserRange(userID, dateRange.Start, dateRange.End, order)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRecordLoadFailed, err)
	}
	return records, nil
}

func (service *MetricService[T]) Find(userID uint, recordID uint) (T, error) {
	record, found, err := service.records.FindOwned(recordID, userID)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %v", ErrRecordLoadFailed, err)
	}
	if !found {
		var zero T
		return zero, ErrRecordNotFound
	}
	return record, nil
}

func (service *MetricService[T]) Create(userID uint, record T) (uint, error) {
	recordID, err := service.records.Create(userID, record)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRecordSaveFailed, err)
	}
	return recordID, nil
}

// Update rewrites a record the user owns; a missing or foreign id yields ErrRecordNotFound.
func (service *MetricService[T]) Update(userID uint, recordID uint, record T) error {
	updated, err := service.records.UpdateOwned(recordID, userID, record)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRecordSaveFailed, err)
	}
	if !updated {
		return ErrRecordNotFound
	}
	return nil
}

// Delete succeeds whether or not a matching record existed.
func (service *MetricService[T]) Delete(userID uint, recordID uint) error {
	if err := service.records.DeleteOwned(recordID, userID); err != nil {
		return fmt.Errorf("%w: %v", ErrRecordDeleteFailed, err)
	}
	return nil
}

type MedicationRecordRepository interface {
	MetricRecordRepository[models.MedicationRecord]
	ToggleTaken(recordID uint, userID uint) (bool, error)
}

type MedicationService struct {
	*MetricService[models.MedicationRecord]
	medications MedicationRecordRepository
}

func NewMedicationService(medications MedicationRecordRepository, now func() time.Time) *MedicationService {
	return &MedicationService{
		MetricService: NewMetricService[models.MedicationRecord](medications, now),
		medications:   medications,
	}
}

func (service *MedicationService) ToggleTaken(userID uint, recordID uint) error {
	toggled, err := service.medications.ToggleTaken(recordID, userID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRecordSaveFailed, err)
	}
	if !toggled {
		return ErrRecordNotFound
	}
	return nil
}
