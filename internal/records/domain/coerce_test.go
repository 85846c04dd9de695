package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func TestValidateRecordDataRequiredFieldMissing(t *testing.T) {
	fields := []FieldDefinition{
		{Name: "age", Type: FieldTypeInteger, Required: true},
	}

	_, err := ValidateRecordData(map[string]any{}, fields)

	require.Error(t, err)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Len(t, validationErr.Violations, 1)
	assert.Contains(t, validationErr.Violations[0], "age")
}

func TestValidateRecordDataRequiredFieldEmptyString(t *testing.T) {
	fields := []FieldDefinition{
		{Name: "title", Type: FieldTypeString, Required: true},
	}

	_, err := ValidateRecordData(map[string]any{"title": ""}, fields)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Len(t, validationErr.Violations, 1)
}

func TestValidateRecordDataBatchReportsAllViolations(t *testing.T) {
	fields := []FieldDefinition{
		{Name: "age", Type: FieldTypeInteger, Required: true},
		{Name: "title", Type: FieldTypeString, Required: true},
	}

	_, err := ValidateRecordData(map[string]any{}, fields)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Len(t, validationErr.Violations, 2)
	assert.Contains(t, validationErr.Violations[0], "age")
	assert.Contains(t, validationErr.Violations[1], "title")
}

func TestValidateRecordDataCoercion(t *testing.T) {
	tests := []struct {
		name     string
		field    FieldDefinition
		input    any
		expected any
	}{
		{
			name:     "integer from string",
			field:    FieldDefinition{Name: "age", Type: FieldTypeInteger},
			input:    "30",
			expected: int64(30),
		},
		{
			name:     "integer from json number",
			field:    FieldDefinition{Name: "age", Type: FieldTypeInteger},
			input:    float64(42),
			expected: int64(42),
		},
		{
			name:     "decimal from string",
			field:    FieldDefinition{Name: "score", Type: FieldTypeDecimal},
			input:    "3.14",
			expected: 3.14,
		},
		{
			name:     "decimal from integer",
			field:    FieldDefinition{Name: "score", Type: FieldTypeDecimal},
			input:    float64(7),
			expected: float64(7),
		},
		{
			name:     "boolean native",
			field:    FieldDefinition{Name: "active", Type: FieldTypeBoolean},
			input:    true,
			expected: true,
		},
		{
			name:     "boolean from string true",
			field:    FieldDefinition{Name: "active", Type: FieldTypeBoolean},
			input:    "true",
			expected: true,
		},
		{
			name:     "boolean from string 0",
			field:    FieldDefinition{Name: "active", Type: FieldTypeBoolean},
			input:    "0",
			expected: false,
		},
		{
			name:     "string from number",
			field:    FieldDefinition{Name: "code", Type: FieldTypeString},
			input:    float64(7),
			expected: "7",
		},
		{
			name:     "string from boolean",
			field:    FieldDefinition{Name: "code", Type: FieldTypeString},
			input:    true,
			expected: "true",
		},
		{
			name:     "string from object",
			field:    FieldDefinition{Name: "meta", Type: FieldTypeText},
			input:    map[string]any{"a": float64(1)},
			expected: `{"a":1}`,
		},
		{
			name:     "date canonical form",
			field:    FieldDefinition{Name: "due", Type: FieldTypeDate},
			input:    "2026-03-15",
			expected: "2026-03-15",
		},
		{
			name:     "date from rfc3339",
			field:    FieldDefinition{Name: "due", Type: FieldTypeDate},
			input:    "2026-03-15T10:30:00Z",
			expected: "2026-03-15",
		},
		{
			name:     "datetime canonical form",
			field:    FieldDefinition{Name: "occurred_at", Type: FieldTypeDatetime},
			input:    "2026-03-15T10:30:00Z",
			expected: "2026-03-15T10:30:00Z",
		},
		{
			name:     "datetime from date only",
			field:    FieldDefinition{Name: "occurred_at", Type: FieldTypeDatetime},
			input:    "2026-03-15",
			expected: "2026-03-15T00:00:00Z",
		},
		{
			name:     "reference stored verbatim",
			field:    FieldDefinition{Name: "owner", Type: FieldTypeReference},
			input:    "user-123",
			expected: "user-123",
		},
		{
			name:     "choice valid option",
			field:    FieldDefinition{Name: "status", Type: FieldTypeChoice, ChoiceOptions: []string{"open", "closed"}},
			input:    "open",
			expected: "open",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ValidateRecordData(map[string]any{tt.field.Name: tt.input}, []FieldDefinition{tt.field})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result[tt.field.Name])
		})
	}
}

func TestValidateRecordDataTypeErrors(t *testing.T) {
	tests := []struct {
		name  string
		field FieldDefinition
		input any
	}{
		{"integer from word", FieldDefinition{Name: "age", Type: FieldTypeInteger}, "thirty"},
		{"integer from fraction", FieldDefinition{Name: "age", Type: FieldTypeInteger}, 3.5},
		{"decimal from word", FieldDefinition{Name: "score", Type: FieldTypeDecimal}, "high"},
		{"boolean from word", FieldDefinition{Name: "active", Type: FieldTypeBoolean}, "yes"},
		{"date from garbage", FieldDefinition{Name: "due", Type: FieldTypeDate}, "not-a-date"},
		{"datetime from garbage", FieldDefinition{Name: "occurred_at", Type: FieldTypeDatetime}, "whenever"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateRecordData(map[string]any{tt.field.Name: tt.input}, []FieldDefinition{tt.field})

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			require.Len(t, validationErr.Violations, 1)
			assert.Contains(t, validationErr.Violations[0], tt.field.Name)
		})
	}
}

func TestValidateRecordDataChoiceOutsideOptions(t *testing.T) {
	fields := []FieldDefinition{
		{Name: "status", Type: FieldTypeChoice, ChoiceOptions: []string{"open", "closed"}},
	}

	_, err := ValidateRecordData(map[string]any{"status": "pending"}, fields)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Len(t, validationErr.Violations, 1)
	assert.Contains(t, validationErr.Violations[0], "open")
	assert.Contains(t, validationErr.Violations[0], "closed")
}

func TestValidateRecordDataDefaults(t *testing.T) {
	t.Run("default substituted and coerced", func(t *testing.T) {
		fields := []FieldDefinition{
			{Name: "priority", Type: FieldTypeInteger, DefaultValue: strPtr("3")},
		}

		result, err := ValidateRecordData(map[string]any{}, fields)

		require.NoError(t, err)
		assert.Equal(t, int64(3), result["priority"])
	})

	t.Run("no default omits the key", func(t *testing.T) {
		fields := []FieldDefinition{
			{Name: "priority", Type: FieldTypeInteger},
		}

		result, err := ValidateRecordData(map[string]any{}, fields)

		require.NoError(t, err)
		_, present := result["priority"]
		assert.False(t, present)
	})

	t.Run("explicit null substituted by default", func(t *testing.T) {
		fields := []FieldDefinition{
			{Name: "status", Type: FieldTypeString, DefaultValue: strPtr("draft")},
		}

		result, err := ValidateRecordData(map[string]any{"status": nil}, fields)

		require.NoError(t, err)
		assert.Equal(t, "draft", result["status"])
	})
}

func TestValidateRecordDataUndeclaredKeysPassThrough(t *testing.T) {
	fields := []FieldDefinition{
		{Name: "age", Type: FieldTypeInteger},
	}

	result, err := ValidateRecordData(map[string]any{"age": "30", "unlisted": "x"}, fields)

	require.NoError(t, err)
	assert.Equal(t, int64(30), result["age"])
	assert.Equal(t, "x", result["unlisted"])
}
