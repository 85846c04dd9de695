package querydsl

import (
	"errors"
	"fmt"
	"strings"

	"veridor-server/internal/infra/sql"
)

var ErrInvalidOperatorArguments = errors.New("invalid operator arguments")

// Fragment is a compiled predicate: a SQL fragment using GORM named
// parameters (@name) plus the values bound to them.
type Fragment struct {
	SQL  string
	Args map[string]any
}

func (f Fragment) IsZero() bool {
	return f.SQL == ""
}

// Apply compiles the filter tree against the given table alias and
// appends the resulting predicates to the query accumulator. An empty
// tree leaves the accumulator untouched. A top-level AND group appends
// one conjunct per condition; a top-level OR group is applied as a
// single bracketed disjunction so that predicates already present on
// the accumulator (tenant scoping above all) are never weakened.
//
// The compiler holds no state beyond the per-invocation parameter
// counter, so concurrent calls with independent accumulators are safe.
func Apply(q sql.ORM, group Group, alias string) (sql.ORM, error) {
	if group.IsEmpty() {
		return q, nil
	}

	c := &compiler{alias: alias}

	if group.combinator() == LogicalOr {
		fragment, err := c.group(group)
		if err != nil {
			return nil, err
		}
		return whereFragment(q, fragment), nil
	}

	for _, condition := range group.Conditions {
		expr, args, err := c.condition(condition)
		if err != nil {
			return nil, err
		}
		q = whereExpr(q, expr, args)
	}

	for _, sub := range group.Groups {
		if sub.IsEmpty() {
			continue
		}
		fragment, err := c.group(sub)
		if err != nil {
			return nil, err
		}
		q = whereFragment(q, fragment)
	}

	return q, nil
}

// Compile renders the whole tree as one bracketed fragment. Callers
// that need finer-grained accumulator control use Apply instead.
func Compile(group Group, alias string) (Fragment, error) {
	if group.IsEmpty() {
		return Fragment{}, nil
	}

	c := &compiler{alias: alias}
	return c.group(group)
}

func whereFragment(q sql.ORM, fragment Fragment) sql.ORM {
	if fragment.IsZero() {
		return q
	}
	return whereExpr(q, fragment.SQL, fragment.Args)
}

func whereExpr(q sql.ORM, expr string, args map[string]any) sql.ORM {
	if len(args) == 0 {
		return q.Where(expr)
	}
	return q.Where(expr, args)
}

type compiler struct {
	alias string
	seq   int
}

func (c *compiler) group(g Group) (Fragment, error) {
	separator := fmt.Sprintf(" %s ", g.combinator())
	parts := make([]string, 0, len(g.Conditions)+len(g.Groups))
	args := make(map[string]any)

	for _, condition := range g.Conditions {
		expr, conditionArgs, err := c.condition(condition)
		if err != nil {
			return Fragment{}, err
		}
		parts = append(parts, expr)
		for name, value := range conditionArgs {
			args[name] = value
		}
	}

	for _, sub := range g.Groups {
		if sub.IsEmpty() {
			continue
		}
		fragment, err := c.group(sub)
		if err != nil {
			return Fragment{}, err
		}
		parts = append(parts, fragment.SQL)
		for name, value := range fragment.Args {
			args[name] = value
		}
	}

	if len(parts) == 0 {
		return Fragment{}, nil
	}

	return Fragment{
		SQL:  "(" + strings.Join(parts, separator) + ")",
		Args: args,
	}, nil
}

func (c *compiler) condition(condition Condition) (string, map[string]any, error) {
	op, err := NormalizeOperator(condition.Op)
	if err != nil {
		return "", nil, err
	}

	column := c.column(condition.Field)

	switch op {
	case OperatorEquals:
		name := c.param(condition.Field)
		return fmt.Sprintf("%s = @%s", column, name), map[string]any{name: condition.Value}, nil
	case OperatorNotEquals:
		name := c.param(condition.Field)
		return fmt.Sprintf("%s <> @%s", column, name), map[string]any{name: condition.Value}, nil
	case OperatorContains:
		name := c.param(condition.Field)
		return fmt.Sprintf("LOWER(%s) LIKE @%s", column, name), map[string]any{name: likePattern(condition.Value, true, true)}, nil
	case OperatorStartsWith:
		name := c.param(condition.Field)
		return fmt.Sprintf("LOWER(%s) LIKE @%s", column, name), map[string]any{name: likePattern(condition.Value, false, true)}, nil
	case OperatorEndsWith:
		name := c.param(condition.Field)
		return fmt.Sprintf("LOWER(%s) LIKE @%s", column, name), map[string]any{name: likePattern(condition.Value, true, false)}, nil
	case OperatorIn, OperatorNotIn:
		values := condition.Values
		if len(values) == 0 && condition.Value != nil {
			values = []any{condition.Value}
		}
		if len(values) == 0 {
			return "", nil, fmt.Errorf("%w: %s requires a value list", ErrInvalidOperatorArguments, op)
		}
		name := c.param(condition.Field)
		keyword := "IN"
		if op == OperatorNotIn {
			keyword = "NOT IN"
		}
		return fmt.Sprintf("%s %s @%s", column, keyword, name), map[string]any{name: values}, nil
	case OperatorBetween:
		bounds, ok := condition.Value.([]any)
		if !ok || len(bounds) != 2 {
			return "", nil, fmt.Errorf("%w: BETWEEN requires a two-element array", ErrInvalidOperatorArguments)
		}
		lower := c.param(condition.Field)
		upper := c.param(condition.Field)
		return fmt.Sprintf("%s BETWEEN @%s AND @%s", column, lower, upper),
			map[string]any{lower: bounds[0], upper: bounds[1]}, nil
	case OperatorGreaterThan:
		name := c.param(condition.Field)
		return fmt.Sprintf("%s > @%s", column, name), map[string]any{name: condition.Value}, nil
	case OperatorGreaterThanOrEqual:
		name := c.param(condition.Field)
		return fmt.Sprintf("%s >= @%s", column, name), map[string]any{name: condition.Value}, nil
	case OperatorLessThan:
		name := c.param(condition.Field)
		return fmt.Sprintf("%s < @%s", column, name), map[string]any{name: condition.Value}, nil
	case OperatorLessThanOrEqual:
		name := c.param(condition.Field)
		return fmt.Sprintf("%s <= @%s", column, name), map[string]any{name: condition.Value}, nil
	case OperatorIsNull:
		return fmt.Sprintf("%s IS NULL", column), nil, nil
	case OperatorIsNotNull:
		return fmt.Sprintf("%s IS NOT NULL", column), nil, nil
	default:
		return "", nil, fmt.Errorf("%w: %q", ErrUnknownOperator, condition.Op)
	}
}

func (c *compiler) column(field string) string {
	if c.alias == "" {
		return field
	}
	return c.alias + "." + field
}

// param derives a parameter name unique within one compile invocation:
// the sanitized field name plus a monotonic counter, so the same field
// can appear in any number of conditions without collisions.
func (c *compiler) param(field string) string {
	var sanitized strings.Builder
	for _, r := range field {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			sanitized.WriteRune(r)
		}
	}

	base := sanitized.String()
	if base == "" {
		base = "p"
	}

	name := fmt.Sprintf("%s_%d", base, c.seq)
	c.seq++
	return name
}

func likePattern(value any, prefix, suffix bool) string {
	pattern := strings.ToLower(fmt.Sprintf("%v", value))
	if prefix {
		pattern = "%" + pattern
	}
	if suffix {
		pattern = pattern + "%"
	}
	return pattern
}
