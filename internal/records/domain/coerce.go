package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ValidationError aggregates every violation found in one payload.
// Validation is batch, not fail-fast: either the whole payload is
// accepted or the caller gets the complete violation set.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Violations, "; ")
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006/01/02",
	"02.01.2006",
}

var datetimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ValidateRecordData validates a raw payload against the field schema
// and returns the coerced copy. Per field: required check first,
// default substitution for absent optional fields, then type coercion
// and the CHOICE enumeration check. Keys not declared in the schema
// pass through unchanged; the record format is extensible beyond its
// declared fields.
func ValidateRecordData(data map[string]any, fields []FieldDefinition) (map[string]any, error) {
	result := make(map[string]any, len(data))
	declared := make(map[string]struct{}, len(fields))
	var violations []string

	for _, field := range fields {
		declared[field.Name] = struct{}{}

		value, present := data[field.Name]
		absent := !present || value == nil

		if field.Required && (absent || value == "") {
			violations = append(violations, fmt.Sprintf("field %q is required", field.Name))
			continue
		}

		if absent {
			if field.DefaultValue == nil {
				continue
			}
			coerced, err := coerceValue(*field.DefaultValue, field)
			if err != nil {
				violations = append(violations, fmt.Sprintf("field %q default: %s", field.Name, err))
				continue
			}
			result[field.Name] = coerced
			continue
		}

		coerced, err := coerceValue(value, field)
		if err != nil {
			violations = append(violations, fmt.Sprintf("field %q %s", field.Name, err))
			continue
		}

		result[field.Name] = coerced
	}

	for key, value := range data {
		if _, ok := declared[key]; !ok {
			result[key] = value
		}
	}

	if len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	return result, nil
}

func coerceValue(value any, field FieldDefinition) (any, error) {
	switch field.Type {
	case FieldTypeString, FieldTypeText, FieldTypeReference:
		return stringify(value), nil
	case FieldTypeChoice:
		coerced := stringify(value)
		if len(field.ChoiceOptions) > 0 && !contains(field.ChoiceOptions, coerced) {
			return nil, fmt.Errorf("must be one of [%s]", strings.Join(field.ChoiceOptions, ", "))
		}
		return coerced, nil
	case FieldTypeInteger:
		return coerceInteger(value)
	case FieldTypeDecimal:
		return coerceDecimal(value)
	case FieldTypeBoolean:
		return coerceBoolean(value)
	case FieldTypeDate:
		return coerceDate(value)
	case FieldTypeDatetime:
		return coerceDatetime(value)
	default:
		return nil, fmt.Errorf("has unsupported type %q", field.Type)
	}
}

// stringify renders scalars through their literal string form and
// structured values through JSON.
func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		if v == math.Trunc(v) && math.Abs(v) < 1e15 {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}

func coerceInteger(value any) (any, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		if v != math.Trunc(v) {
			return nil, fmt.Errorf("must be an integer")
		}
		return int64(v), nil
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("must be an integer")
		}
		return parsed, nil
	default:
		return nil, fmt.Errorf("must be an integer")
	}
}

func coerceDecimal(value any) (any, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, fmt.Errorf("must be a number")
		}
		return parsed, nil
	default:
		return nil, fmt.Errorf("must be a number")
	}
}

func coerceBoolean(value any) (any, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "1":
			return true, nil
		case "false", "0":
			return false, nil
		}
	}
	return nil, fmt.Errorf("must be a boolean")
}

func coerceDate(value any) (any, error) {
	raw, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("must be a date")
	}

	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, strings.TrimSpace(raw)); err == nil {
			return parsed.Format("2006-01-02"), nil
		}
	}

	return nil, fmt.Errorf("must be a date")
}

func coerceDatetime(value any) (any, error) {
	raw, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("must be a timestamp")
	}

	for _, layout := range datetimeLayouts {
		if parsed, err := time.Parse(layout, strings.TrimSpace(raw)); err == nil {
			return parsed.Format(time.RFC3339), nil
		}
	}

	return nil, fmt.Errorf("must be a timestamp")
}

func contains(options []string, value string) bool {
	for _, option := range options {
		if option == value {
			return true
		}
	}
	return false
}
