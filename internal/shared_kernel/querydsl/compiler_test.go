package querydsl

import (
	"testing"

	"veridor-server/internal/infra/sql"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixtureRow struct {
	ID       string `gorm:"primaryKey"`
	TenantID string
	Title    string
	Status   string
	Severity string
	Score    int
	Owner    *string
}

func (fixtureRow) TableName() string {
	return "fixture_rows"
}

func strPtr(s string) *string {
	return &s
}

func fixtureORM(t *testing.T) sql.ORM {
	t.Helper()

	orm, err := sql.NewMemoryORM()
	require.NoError(t, err)
	require.NoError(t, orm.AutoMigrate(&fixtureRow{}))

	rows := []fixtureRow{
		{ID: "1", TenantID: "acme", Title: "Access Control Policy", Status: "active", Severity: "high", Score: 80, Owner: strPtr("alice")},
		{ID: "2", TenantID: "acme", Title: "Data Retention Policy", Status: "draft", Severity: "low", Score: 20, Owner: nil},
		{ID: "3", TenantID: "acme", Title: "Incident Response Plan", Status: "active", Severity: "critical", Score: 95, Owner: strPtr("bob")},
		{ID: "4", TenantID: "acme", Title: "Change Freeze Notice", Status: "archived", Severity: "low", Score: 10, Owner: nil},
		{ID: "5", TenantID: "globex", Title: "Access Control Policy", Status: "active", Severity: "high", Score: 70, Owner: strPtr("carol")},
	}
	require.NoError(t, orm.Create(&rows).Error())

	return orm
}

func applyAndFetch(t *testing.T, orm sql.ORM, group Group) []fixtureRow {
	t.Helper()

	q, err := Apply(orm.Model(&fixtureRow{}), group, "fixture_rows")
	require.NoError(t, err)

	var rows []fixtureRow
	require.NoError(t, q.Order("id").Find(&rows).Error())
	return rows
}

func rowIDs(rows []fixtureRow) []string {
	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	return ids
}

func TestApplyEmptyTreeIsIdentity(t *testing.T) {
	orm := fixtureORM(t)

	rows := applyAndFetch(t, orm, Group{Logical: LogicalAnd})
	assert.Len(t, rows, 5)
}

func TestApplyTopLevelAndIsOrderIndependent(t *testing.T) {
	orm := fixtureORM(t)

	first := Group{
		Logical: LogicalAnd,
		Conditions: []Condition{
			{Field: "status", Op: "eq", Value: "active"},
			{Field: "severity", Op: "eq", Value: "high"},
		},
	}
	second := Group{
		Logical: LogicalAnd,
		Conditions: []Condition{
			{Field: "severity", Op: "eq", Value: "high"},
			{Field: "status", Op: "eq", Value: "active"},
		},
	}

	assert.Equal(t, []string{"1", "5"}, rowIDs(applyAndFetch(t, orm, first)))
	assert.Equal(t, rowIDs(applyAndFetch(t, orm, first)), rowIDs(applyAndFetch(t, orm, second)))
}

func TestApplyTopLevelOrIsBracketed(t *testing.T) {
	orm := fixtureORM(t)

	// The OR disjunction must stay inside its own bracket: predicates
	// already on the accumulator may not be weakened by it.
	base := orm.Model(&fixtureRow{}).Where("tenant_id = ?", "acme")

	group := Group{
		Logical: LogicalOr,
		Conditions: []Condition{
			{Field: "severity", Op: "eq", Value: "critical"},
			{Field: "status", Op: "eq", Value: "archived"},
		},
	}

	q, err := Apply(base, group, "fixture_rows")
	require.NoError(t, err)

	var rows []fixtureRow
	require.NoError(t, q.Order("id").Find(&rows).Error())
	assert.Equal(t, []string{"3", "4"}, rowIDs(rows))
}

func TestApplyNestedGroups(t *testing.T) {
	orm := fixtureORM(t)

	// status = active AND (severity = critical OR score < 90)
	group := Group{
		Logical:    LogicalAnd,
		Conditions: []Condition{{Field: "status", Op: "eq", Value: "active"}},
		Groups: []Group{
			{
				Logical: LogicalOr,
				Conditions: []Condition{
					{Field: "severity", Op: "eq", Value: "critical"},
					{Field: "score", Op: "lt", Value: 90},
				},
			},
		},
	}

	assert.Equal(t, []string{"1", "3", "5"}, rowIDs(applyAndFetch(t, orm, group)))
}

func TestApplyOperatorSemantics(t *testing.T) {
	orm := fixtureORM(t)

	tests := []struct {
		name      string
		condition Condition
		expected  []string
	}{
		{"contains is case-insensitive", Condition{Field: "title", Op: "contains", Value: "POLICY"}, []string{"1", "2", "5"}},
		{"starts_with", Condition{Field: "title", Op: "starts_with", Value: "access"}, []string{"1", "5"}},
		{"ends_with", Condition{Field: "title", Op: "ends_with", Value: "plan"}, []string{"3"}},
		{"not_equals", Condition{Field: "tenant_id", Op: "neq", Value: "acme"}, []string{"5"}},
		{"in list", Condition{Field: "severity", Op: "in", Values: []any{"high", "critical"}}, []string{"1", "3", "5"}},
		{"in scalar fallback", Condition{Field: "severity", Op: "in", Value: "critical"}, []string{"3"}},
		{"not_in", Condition{Field: "status", Op: "not_in", Values: []any{"draft", "archived"}}, []string{"1", "3", "5"}},
		{"between is inclusive", Condition{Field: "score", Op: "between", Value: []any{20, 80}}, []string{"1", "2", "5"}},
		{"greater_than", Condition{Field: "score", Op: "gt", Value: 80}, []string{"3"}},
		{"greater_than_or_equal", Condition{Field: "score", Op: "gte", Value: 80}, []string{"1", "3"}},
		{"less_than", Condition{Field: "score", Op: "lt", Value: 20}, []string{"4"}},
		{"less_than_or_equal", Condition{Field: "score", Op: "lte", Value: 20}, []string{"2", "4"}},
		{"is_null", Condition{Field: "owner", Op: "is_null"}, []string{"2", "4"}},
		{"is_not_null", Condition{Field: "owner", Op: "is_not_null"}, []string{"1", "3", "5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			group := Group{Logical: LogicalAnd, Conditions: []Condition{tt.condition}}
			assert.Equal(t, tt.expected, rowIDs(applyAndFetch(t, orm, group)))
		})
	}
}

func TestApplySameFieldTwice(t *testing.T) {
	orm := fixtureORM(t)

	group := Group{
		Logical: LogicalAnd,
		Conditions: []Condition{
			{Field: "score", Op: "gte", Value: 20},
			{Field: "score", Op: "lte", Value: 80},
		},
	}

	assert.Equal(t, []string{"1", "2", "5"}, rowIDs(applyAndFetch(t, orm, group)))
}

func TestCompileParameterNamesAreUnique(t *testing.T) {
	group := Group{
		Logical: LogicalAnd,
		Conditions: []Condition{
			{Field: "status", Op: "eq", Value: "a"},
			{Field: "status", Op: "eq", Value: "b"},
			{Field: "score", Op: "between", Value: []any{1, 2}},
		},
	}

	fragment, err := Compile(group, "t")
	require.NoError(t, err)
	assert.Len(t, fragment.Args, 4)
	assert.Contains(t, fragment.Args, "status_0")
	assert.Contains(t, fragment.Args, "status_1")
	assert.Contains(t, fragment.Args, "score_2")
	assert.Contains(t, fragment.Args, "score_3")
}

func TestCompileAliasPrefixesEveryColumn(t *testing.T) {
	group := Group{
		Logical:    LogicalAnd,
		Conditions: []Condition{{Field: "status", Op: "eq", Value: "active"}},
	}

	fragment, err := Compile(group, "policies")
	require.NoError(t, err)
	assert.Equal(t, "(policies.status = @status_0)", fragment.SQL)
}

func TestCompileBetweenArity(t *testing.T) {
	for _, value := range []any{nil, "10,20", []any{1}, []any{1, 2, 3}} {
		group := Group{
			Logical:    LogicalAnd,
			Conditions: []Condition{{Field: "score", Op: "between", Value: value}},
		}

		_, err := Compile(group, "t")
		require.ErrorIs(t, err, ErrInvalidOperatorArguments)
	}
}

func TestCompileUnknownOperator(t *testing.T) {
	group := Group{
		Logical:    LogicalAnd,
		Conditions: []Condition{{Field: "status", Op: "resembles", Value: "x"}},
	}

	_, err := Compile(group, "t")
	require.ErrorIs(t, err, ErrUnknownOperator)
}

func TestCompileAliasedOperatorsProduceIdenticalPredicates(t *testing.T) {
	for _, op := range []string{"eq", "=", "equals", "EQUALS"} {
		group := Group{
			Logical:    LogicalAnd,
			Conditions: []Condition{{Field: "status", Op: op, Value: "active"}},
		}

		fragment, err := Compile(group, "t")
		require.NoError(t, err)
		assert.Equal(t, "(t.status = @status_0)", fragment.SQL)
		assert.Equal(t, map[string]any{"status_0": "active"}, fragment.Args)
	}
}
