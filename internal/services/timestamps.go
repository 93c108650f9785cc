package services

import (
	"strings"
	"time"
)

const (
	formTimestampLayout = "2006-01-02T15:04"
	timestampDateLayout = "2006-01-02"
)

// ToStorageTimestamp turns a datetime-local form value (2024-12-18T07:00,
// optionally with seconds) into the stored form with a space separator.
// Values without a leading date are returned unchanged.
func ToStorageTimestamp(raw string) string {
	return replaceDateSeparator(strings.TrimSpace(raw), 'T', ' ')
}

// ToFormTimestamp is the inverse of ToStorageTimestamp, used to pre-fill edit forms.
func ToFormTimestamp(stored string) string {
	return replaceDateSeparator(strings.TrimSpace(stored), ' ', 'T')
}

// CurrentFormTimestamp is the default value of a new record's datetime input.
func CurrentFormTimestamp(now time.Time) string {
	return now.Format(formTimestampLayout)
}

func replaceDateSeparator(value string, from byte, to byte) string {
	dateLength := len(timestampDateLayout)
	if len(value) <= dateLength || value[dateLength] != from {
		return value
	}
	if _, err := time.Parse(timestampDateLayout, value[:dateLength]); err != nil {
		return value
	}
	return value[:dateLength] + string(to) + value[dateLength+1:]
}
