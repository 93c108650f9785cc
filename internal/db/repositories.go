package db

import "github.com/terraincognita07/healthsome/internal/models"

type Repositories struct {
	Users         *UserRepository
	BloodPressure *MetricRepository[models.BloodPressureRecord]
	Weight        *MetricRepository[models.WeightRecord]
	Medications   *MedicationRepository
}

func NewRepositories(store *Store) *Repositories {
	return &Repositories{
		Users:         NewUserRepository(store),
		BloodPressure: NewMetricRepository[models.BloodPressureRecord](store),
		Weight:        NewMetricRepository[models.WeightRecord](store),
		Medications:   NewMedicationRepository(store),
	}
}
