package querydsl

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownOperator = errors.New("unknown operator")

// Operator is the canonical comparison operator used by filter conditions.
type Operator string

const (
	OperatorEquals             Operator = "EQUALS"
	OperatorNotEquals          Operator = "NOT_EQUALS"
	OperatorContains           Operator = "CONTAINS"
	OperatorStartsWith         Operator = "STARTS_WITH"
	OperatorEndsWith           Operator = "ENDS_WITH"
	OperatorIn                 Operator = "IN"
	OperatorNotIn              Operator = "NOT_IN"
	OperatorBetween            Operator = "BETWEEN"
	OperatorGreaterThan        Operator = "GREATER_THAN"
	OperatorGreaterThanOrEqual Operator = "GREATER_THAN_OR_EQUAL"
	OperatorLessThan           Operator = "LESS_THAN"
	OperatorLessThanOrEqual    Operator = "LESS_THAN_OR_EQUAL"
	OperatorIsNull             Operator = "IS_NULL"
	OperatorIsNotNull          Operator = "IS_NOT_NULL"
)

func (o Operator) String() string {
	return string(o)
}

var operatorAliases = map[string]Operator{
	"eq":          OperatorEquals,
	"=":           OperatorEquals,
	"==":          OperatorEquals,
	"equals":      OperatorEquals,
	"neq":         OperatorNotEquals,
	"ne":          OperatorNotEquals,
	"!=":          OperatorNotEquals,
	"<>":          OperatorNotEquals,
	"not_equals":  OperatorNotEquals,
	"contains":    OperatorContains,
	"like":        OperatorContains,
	"starts_with": OperatorStartsWith,
	"startswith":  OperatorStartsWith,
	"ends_with":   OperatorEndsWith,
	"endswith":    OperatorEndsWith,
	"in":          OperatorIn,
	"not_in":      OperatorNotIn,
	"nin":         OperatorNotIn,
	"between":     OperatorBetween,
	"gt":          OperatorGreaterThan,
	">":           OperatorGreaterThan,
	"gte":         OperatorGreaterThanOrEqual,
	">=":          OperatorGreaterThanOrEqual,
	"lt":          OperatorLessThan,
	"<":           OperatorLessThan,
	"lte":         OperatorLessThanOrEqual,
	"<=":          OperatorLessThanOrEqual,
	"is_null":     OperatorIsNull,
	"null":        OperatorIsNull,
	"is_not_null": OperatorIsNotNull,
	"not_null":    OperatorIsNotNull,
}

var canonicalOperators = map[Operator]struct{}{
	OperatorEquals:             {},
	OperatorNotEquals:          {},
	OperatorContains:           {},
	OperatorStartsWith:         {},
	OperatorEndsWith:           {},
	OperatorIn:                 {},
	OperatorNotIn:              {},
	OperatorBetween:            {},
	OperatorGreaterThan:        {},
	OperatorGreaterThanOrEqual: {},
	OperatorLessThan:           {},
	OperatorLessThanOrEqual:    {},
	OperatorIsNull:             {},
	OperatorIsNotNull:          {},
}

// NormalizeOperator resolves a raw operator token to its canonical form.
// Matching is case-insensitive and ignores surrounding whitespace, so
// normalizing an already canonical operator is a no-op.
func NormalizeOperator(raw string) (Operator, error) {
	token := strings.TrimSpace(raw)

	if op, ok := operatorAliases[strings.ToLower(token)]; ok {
		return op, nil
	}

	candidate := Operator(strings.ToUpper(token))
	if _, ok := canonicalOperators[candidate]; ok {
		return candidate, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownOperator, raw)
}
