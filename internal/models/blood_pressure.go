package models

type BloodPressureRecord struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	UserID    uint   `gorm:"not null" json:"user_id"`
	DateTime  string `gorm:"column:date_time;not null" json:"date_time"`
	Systolic  int    `gorm:"not null" json:"systolic"`
	Diastolic int    `gorm:"not null" json:"diastolic"`
	Pulse     *int   `json:"pulse"`
}

type BloodPressurePoint struct {
	Date      string `json:"date"`
	Systolic  int    `json:"systolic"`
	Diastolic int    `json:"diastolic"`
	Pulse     *int   `json:"pulse"`
}

func (BloodPressureRecord) TableName() string {
	return "blood_pressure"
}

func (BloodPressureRecord) MutableColumns() []string {
	return []string{"date_time", "systolic", "diastolic", "pulse"}
}

func (record BloodPressureRecord) MutableValues() []any {
	return []any{record.DateTime, record.Systolic, record.Diastolic, record.Pulse}
}

func (record BloodPressureRecord) ChartPoint() any {
	return BloodPressurePoint{
		Date:      record.DateTime,
		Systolic:  record.Systolic,
		Diastolic: record.Diastolic,
		Pulse:     record.Pulse,
	}
}
