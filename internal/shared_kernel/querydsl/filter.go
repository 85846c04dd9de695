package querydsl

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidFilter = errors.New("invalid filter")

type Logical string

const (
	LogicalAnd Logical = "AND"
	LogicalOr  Logical = "OR"
)

// Condition is a single field comparison. Value carries the operand for
// scalar operators, Values the operand list for IN/NOT_IN.
type Condition struct {
	Field  string `json:"field"`
	Op     string `json:"op"`
	Value  any    `json:"value,omitempty"`
	Values []any  `json:"values,omitempty"`
}

// Group combines conditions with one logical combinator. Groups nest to
// arbitrary depth and every group carries its own combinator,
// independent of its parent's.
type Group struct {
	Conditions []Condition `json:"conditions"`
	Logical    Logical     `json:"logical"`
	Groups     []Group     `json:"groups,omitempty"`
}

func (g Group) IsEmpty() bool {
	return len(g.Conditions) == 0 && len(g.Groups) == 0
}

func (g Group) combinator() Logical {
	if g.Logical == LogicalOr {
		return LogicalOr
	}
	return LogicalAnd
}

// ParseFilter decodes the `filter` query parameter. It accepts either a
// JSON-serialized Group or the simple comma-separated `field:op:value`
// form, which becomes an all-AND group. An empty parameter yields an
// empty group.
func ParseFilter(raw string) (Group, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Group{Logical: LogicalAnd}, nil
	}

	if strings.HasPrefix(trimmed, "{") {
		var group Group
		if err := json.Unmarshal([]byte(trimmed), &group); err != nil {
			return Group{}, fmt.Errorf("%w: %s", ErrInvalidFilter, err.Error())
		}
		if group.Logical == "" {
			group.Logical = LogicalAnd
		}
		return group, nil
	}

	return parseSimpleFilter(trimmed)
}

func parseSimpleFilter(raw string) (Group, error) {
	group := Group{Logical: LogicalAnd}

	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		segments := strings.SplitN(part, ":", 3)
		if len(segments) < 2 {
			return Group{}, fmt.Errorf("%w: expected field:op:value, got %q", ErrInvalidFilter, part)
		}

		condition := Condition{
			Field: strings.TrimSpace(segments[0]),
			Op:    strings.TrimSpace(segments[1]),
		}
		if condition.Field == "" {
			return Group{}, fmt.Errorf("%w: empty field in %q", ErrInvalidFilter, part)
		}
		if len(segments) == 3 {
			condition.Value = strings.TrimSpace(segments[2])
		}

		group.Conditions = append(group.Conditions, condition)
	}

	return group, nil
}
