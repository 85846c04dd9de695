package querydsl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeOperatorAliases(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected Operator
	}{
		{"eq alias", "eq", OperatorEquals},
		{"equals sign", "=", OperatorEquals},
		{"equals word", "equals", OperatorEquals},
		{"canonical verbatim", "EQUALS", OperatorEquals},
		{"mixed case", "Equals", OperatorEquals},
		{"surrounding whitespace", "  gte ", OperatorGreaterThanOrEqual},
		{"neq symbol", "!=", OperatorNotEquals},
		{"angle brackets", "<>", OperatorNotEquals},
		{"like maps to contains", "like", OperatorContains},
		{"starts_with", "starts_with", OperatorStartsWith},
		{"ends_with", "ENDS_WITH", OperatorEndsWith},
		{"in", "in", OperatorIn},
		{"nin", "nin", OperatorNotIn},
		{"between", "between", OperatorBetween},
		{"gt symbol", ">", OperatorGreaterThan},
		{"lte symbol", "<=", OperatorLessThanOrEqual},
		{"is_null", "is_null", OperatorIsNull},
		{"is_not_null", "IS_NOT_NULL", OperatorIsNotNull},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, err := NormalizeOperator(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, op)
		})
	}
}

func TestNormalizeOperatorIsIdempotent(t *testing.T) {
	for alias := range operatorAliases {
		first, err := NormalizeOperator(alias)
		require.NoError(t, err)

		second, err := NormalizeOperator(first.String())
		require.NoError(t, err)
		assert.Equal(t, first, second, "normalizing %q twice diverged", alias)
	}
}

func TestNormalizeOperatorUnknown(t *testing.T) {
	for _, raw := range []string{"", "~", "almost_equals", "EQUALS_ISH"} {
		_, err := NormalizeOperator(raw)
		require.ErrorIs(t, err, ErrUnknownOperator)
		if raw != "" {
			assert.Contains(t, err.Error(), raw)
		}
	}
}
