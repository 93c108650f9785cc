package api

import (
	"errors"
	"testing"
)

func TestParseBloodPressureForm(t *testing.T) {
	t.Parallel()

	record, err := parseBloodPressureForm(map[string]string{
		"date_time": "2024-12-18T07:00",
		"systolic":  "120",
		"diastolic": "80",
		"pulse":     "",
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if record.DateTime != "2024-12-18 07:00" || record.Systolic != 120 || record.Diastolic != 80 {
		t.Fatalf("unexpected record %+v", record)
	}
	if record.Pulse != nil {
		t.Fatalf("expected empty pulse to stay unset, got %d", *record.Pulse)
	}

	_, err = parseBloodPressureForm(map[string]string{
		"date_time": "2024-12-18T07:00",
		"systolic":  "120",
		"diastolic": "80",
		"pulse":     "fast",
	})
	var validationErr *formValidationError
	if !errors.As(err, &validationErr) || validationErr.Field != "pulse" {
		t.Fatalf("expected pulse validation error, got %v", err)
	}
}

func TestParseWeightFormRejectsNonFiniteValues(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "heavy", "NaN", "Inf"} {
		if _, err := parseWeightForm(map[string]string{"date_time": "2024-12-18T07:00", "weight_value": raw}); err == nil {
			t.Fatalf("expected %q to be rejected", raw)
		}
	}

	record, err := parseWeightForm(map[string]string{"date_time": "2024-12-18 07:00", "weight_value": "82.5"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if record.DateTime != "2024-12-18 07:00" || record.WeightValue != 82.5 {
		t.Fatalf("unexpected record %+v", record)
	}
}

func TestParseMedicationFormTakenValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw      string
		expected bool
	}{
		{raw: "", expected: false},
		{raw: "0", expected: false},
		{raw: "1", expected: true},
		{raw: "on", expected: true},
	}

	for _, testCase := range tests {
		record, err := parseMedicationForm(map[string]string{
			"date_time":       "2024-12-18T07:00",
			"medication_name": "Aspirin",
			"dosage":          "81mg",
			"taken":           testCase.raw,
		})
		if err != nil {
			t.Fatalf("taken=%q: %v", testCase.raw, err)
		}
		if record.Taken != testCase.expected {
			t.Fatalf("taken=%q: expected %t, got %t", testCase.raw, testCase.expected, record.Taken)
		}
	}

	if _, err := parseMedicationForm(map[string]string{"date_time": "2024-12-18T07:00", "medication_name": "Aspirin", "taken": "2"}); err == nil {
		t.Fatal("expected unknown taken value to be rejected")
	}
	if _, err := parseMedicationForm(map[string]string{"date_time": "2024-12-18T07:00", "medication_name": " "}); err == nil {
		t.Fatal("expected blank medication name to be rejected")
	}
}
