package models

const (
	MedicationStatusTaken  = "Taken"
	MedicationStatusMissed = "Missed"
)

type MedicationRecord struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	UserID         uint   `gorm:"not null" json:"user_id"`
	DateTime       string `gorm:"column:date_time;not null" json:"date_time"`
	MedicationName string `gorm:"column:medication_name;not null" json:"medication_name"`
	Dosage         string `gorm:"not null" json:"dosage"`
	Taken          bool   `gorm:"not null;default:false" json:"taken"`
}

type MedicationPoint struct {
	Date       string `json:"date"`
	Medication string `json:"medication"`
	Status     string `json:"status"`
}

func (MedicationRecord) TableName() string {
	return "medications"
}

func (MedicationRecord) MutableColumns() []string {
	return []string{"date_time", "medication_name", "dosage", "taken"}
}

func (record MedicationRecord) MutableValues() []any {
	return []any{record.DateTime, record.MedicationName, record.Dosage, record.Taken}
}

func (record MedicationRecord) ChartPoint() any {
	status := MedicationStatusMissed
	if record.Taken {
		status = MedicationStatusTaken
	}
	return MedicationPoint{
		Date:       record.DateTime,
		Medication: record.MedicationName,
		Status:     status,
	}
}
