package models

// MetricRecord is a per-user health measurement row.
//
// TableName and MutableColumns must be constant per type: they are spliced
// into SQL as identifiers, everything else is bound as a parameter.
type MetricRecord interface {
	TableName() string
	MutableColumns() []string
	MutableValues() []any
	ChartPoint() any
}

// TimestampLayout is the storage form of every metric date_time column.
const TimestampLayout = "2006-01-02 15:04"
