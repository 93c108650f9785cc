package api

import (
	"math"
	"strconv"
	"strings"

	"github.com/terraincognita07/healthsome/internal/models"
	"github.com/terraincognita07/healthsome/internal/services"
)

// formValidationError marks a form value that cannot be bound to its column type.
type formValidationError struct {
	Field string
}

func (err *formValidationError) Error() string {
	return "invalid form value: " + err.Field
}

func (err *formValidationError) Message() string {
	return "Please enter a valid " + err.Field + "."
}

func invalidField(field string) error {
	return &formValidationError{Field: field}
}

func parseDateTimeField(form map[string]string) (string, error) {
	value := services.ToStorageTimestamp(form["date_time"])
	if value == "" {
		return "", invalidField("date and time")
	}
	return value, nil
}

func parseIntField(raw string, field string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, invalidField(field)
	}
	return value, nil
}

func parseOptionalIntField(raw string, field string) (*int, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	value, err := parseIntField(raw, field)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func parseFloatField(raw string, field string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, invalidField(field)
	}
	return value, nil
}

// parseTakenField accepts the checkbox encodings browsers and scripts send.
// An absent value means not taken.
func parseTakenField(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "0", "false", "off":
		return false, nil
	case "1", "true", "on":
		return true, nil
	default:
		return false, invalidField("taken value")
	}
}

func newBloodPressureResource(handler *Handler) *metricResource[models.BloodPressureRecord] {
	return &metricResource[models.BloodPressureRecord]{
		handler:  handler,
		name:     "blood_pressure",
		title:    "Blood Pressure",
		basePath: "/blood_pressure",
		fields:   []string{"date_time", "systolic", "diastolic", "pulse"},
		parse:    parseBloodPressureForm,
		values: func(record models.BloodPressureRecord) map[string]string {
			values := map[string]string{
				"date_time": services.ToFormTimestamp(record.DateTime),
				"systolic":  strconv.Itoa(record.Systolic),
				"diastolic": strconv.Itoa(record.Diastolic),
				"pulse":     "",
			}
			if record.Pulse != nil {
				values["pulse"] = strconv.Itoa(*record.Pulse)
			}
			return values
		},
		service: func(scope *requestScope) *services.MetricService[models.BloodPressureRecord] {
			return services.NewMetricService[models.BloodPressureRecord](scope.repos.BloodPressure, handler.localNow)
		},
	}
}

func parseBloodPressureForm(form map[string]string) (models.BloodPressureRecord, error) {
	dateTime, err := parseDateTimeField(form)
	if err != nil {
		return models.BloodPressureRecord{}, err
	}
	systolic, err := parseIntField(form["systolic"], "systolic value")
	if err != nil {
		return models.BloodPressureRecord{}, err
	}
	diastolic, err := parseIntField(form["diastolic"], "diastolic value")
	if err != nil {
		return models.BloodPressureRecord{}, err
	}
	pulse, err := parseOptionalIntField(form["pulse"], "pulse")
	if err != nil {
		return models.BloodPressureRecord{}, err
	}

	return models.BloodPressureRecord{
		DateTime:  dateTime,
		Systolic:  systolic,
		Diastolic: diastolic,
		Pulse:     pulse,
	}, nil
}

func newWeightResource(handler *Handler) *metricResource[models.WeightRecord] {
	return &metricResource[models.WeightRecord]{
		handler:  handler,
		name:     "weight",
		title:    "Weight",
		basePath: "/weight",
		fields:   []string{"date_time", "weight_value"},
		parse:    parseWeightForm,
		values: func(record models.WeightRecord) map[string]string {
			return map[string]string{
				"date_time":    services.ToFormTimestamp(record.DateTime),
				"weight_value": strconv.FormatFloat(record.WeightValue, 'f', -1, 64),
			}
		},
		service: func(scope *requestScope) *services.MetricService[models.WeightRecord] {
			return services.NewMetricService[models.WeightRecord](scope.repos.Weight, handler.localNow)
		},
	}
}

func parseWeightForm(form map[string]string) (models.WeightRecord, error) {
	dateTime, err := parseDateTimeField(form)
	if err != nil {
		return models.WeightRecord{}, err
	}
	weight, err := parseFloatField(form["weight_value"], "weight")
	if err != nil {
		return models.WeightRecord{}, err
	}
	return models.WeightRecord{DateTime: dateTime, WeightValue: weight}, nil
}

func newMedicationsResource(handler *Handler) *metricResource[models.MedicationRecord] {
	return &metricResource[models.MedicationRecord]{
		handler:  handler,
		name:     "medications",
		title:    "Medications",
		basePath: "/medications",
		fields:   []string{"date_time", "medication_name", "dosage", "taken"},
		parse:    parseMedicationForm,
		values: func(record models.MedicationRecord) map[string]string {
			taken := "0"
			if record.Taken {
				taken = "1"
			}
			return map[string]string{
				"date_time":       services.ToFormTimestamp(record.DateTime),
				"medication_name": record.MedicationName,
				"dosage":          record.Dosage,
				"taken":           taken,
			}
		},
		service: func(scope *requestScope) *services.MetricService[models.MedicationRecord] {
			return scope.medicationService().MetricService
		},
	}
}

func parseMedicationForm(form map[string]string) (models.MedicationRecord, error) {
	dateTime, err := parseDateTimeField(form)
	if err != nil {
		return models.MedicationRecord{}, err
	}
	name := strings.TrimSpace(form["medication_name"])
	if name == "" {
		return models.MedicationRecord{}, invalidField("medication name")
	}
	taken, err := parseTakenField(form["taken"])
	if err != nil {
		return models.MedicationRecord{}, err
	}

	return models.MedicationRecord{
		DateTime:       dateTime,
		MedicationName: name,
		Dosage:         strings.TrimSpace(form["dosage"]),
		Taken:          taken,
	}, nil
}
