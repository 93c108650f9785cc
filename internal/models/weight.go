package models

type WeightRecord struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	UserID      uint    `gorm:"not null" json:"user_id"`
	DateTime    string  `gorm:"column:date_time;not null" json:"date_time"`
	WeightValue float64 `gorm:"column:weight_value;not null" json:"weight_value"`
}

type WeightPoint struct {
	Date   string  `json:"date"`
	Weight float64 `json:"weight"`
}

func (WeightRecord) TableName() string {
	return "weight"
}

func (WeightRecord) MutableColumns() []string {
	return []string{"date_time", "weight_value"}
}

func (record WeightRecord) MutableValues() []any {
	return []any{record.DateTime, record.WeightValue}
}

func (record WeightRecord) ChartPoint() any {
	return WeightPoint{Date: record.DateTime, Weight: record.WeightValue}
}
