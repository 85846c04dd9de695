package usecases_test

import (
	"context"
	"testing"

	"veridor-server/internal/records/domain"
	"veridor-server/internal/records/usecases"
	shareddomain "veridor-server/internal/shared_kernel/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTableServiceFixture() (*fakeTableRepository, *fakeFieldRepository, *fakeSchemaRegistry, *fakeAuditRecorder, usecases.TableService) {
	tables := newFakeTableRepository()
	fields := newFakeFieldRepository()
	registry := newFakeSchemaRegistry()
	recorder := &fakeAuditRecorder{}
	service := usecases.NewTableService(tables, fields, registry, recorder)
	return tables, fields, registry, recorder, service
}

func buildTable(t *testing.T, tenantID shareddomain.ID, name string) domain.DynamicTable {
	t.Helper()
	table, err := domain.NewDynamicTableBuilder().
		WithTenant(tenantID).
		WithName(name).
		WithDisplayName("Employees").
		Build()
	require.NoError(t, err)
	return table
}

func buildField(t *testing.T, tenantID shareddomain.ID, tableName, name string) domain.FieldDefinition {
	t.Helper()
	field, err := domain.NewFieldDefinitionBuilder().
		WithTenant(tenantID).
		WithTable(tableName).
		WithName(name).
		WithType(domain.FieldTypeString).
		Build()
	require.NoError(t, err)
	return field
}

func TestCreateTable(t *testing.T) {
	tenantID := shareddomain.ID("tenant-1")
	tables, _, _, recorder, service := newTableServiceFixture()

	err := service.CreateTable(context.Background(), buildTable(t, tenantID, "employees"), "user-1")
	require.NoError(t, err)
	assert.Len(t, tables.tables, 1)

	require.Len(t, recorder.events, 1)
	assert.Equal(t, "table.created", recorder.events[0].Action)
	assert.Equal(t, "table_schema", recorder.events[0].EntityKind)
}

func TestCreateTableDuplicate(t *testing.T) {
	tenantID := shareddomain.ID("tenant-1")
	_, _, _, _, service := newTableServiceFixture()

	require.NoError(t, service.CreateTable(context.Background(), buildTable(t, tenantID, "employees"), "user-1"))

	err := service.CreateTable(context.Background(), buildTable(t, tenantID, "employees"), "user-1")
	assert.ErrorIs(t, err, usecases.ErrTableDuplicated)
}

func TestCreateTableIsolatedPerTenant(t *testing.T) {
	_, _, _, _, service := newTableServiceFixture()

	require.NoError(t, service.CreateTable(context.Background(), buildTable(t, "tenant-1", "employees"), "user-1"))
	assert.NoError(t, service.CreateTable(context.Background(), buildTable(t, "tenant-2", "employees"), "user-1"))
}

func TestCreateFieldInvalidatesSchema(t *testing.T) {
	tenantID := shareddomain.ID("tenant-1")
	_, fields, registry, recorder, service := newTableServiceFixture()

	require.NoError(t, service.CreateTable(context.Background(), buildTable(t, tenantID, "employees"), "user-1"))

	err := service.CreateField(context.Background(), buildField(t, tenantID, "employees", "name"), "user-1")
	require.NoError(t, err)
	assert.Len(t, fields.fields[tenantID.String()+"/employees"], 1)

	require.Len(t, registry.invalidateCalls, 1)
	assert.Equal(t, "tenant-1/employees", registry.invalidateCalls[0])

	require.Len(t, recorder.events, 2)
	assert.Equal(t, "field.created", recorder.events[1].Action)
}

func TestCreateFieldOnMissingTable(t *testing.T) {
	tenantID := shareddomain.ID("tenant-1")
	_, _, _, _, service := newTableServiceFixture()

	err := service.CreateField(context.Background(), buildField(t, tenantID, "missing", "name"), "user-1")
	assert.ErrorIs(t, err, usecases.ErrTableNotFound)
}

func TestCreateFieldDuplicate(t *testing.T) {
	tenantID := shareddomain.ID("tenant-1")
	_, _, _, _, service := newTableServiceFixture()

	require.NoError(t, service.CreateTable(context.Background(), buildTable(t, tenantID, "employees"), "user-1"))
	require.NoError(t, service.CreateField(context.Background(), buildField(t, tenantID, "employees", "name"), "user-1"))

	err := service.CreateField(context.Background(), buildField(t, tenantID, "employees", "name"), "user-1")
	assert.ErrorIs(t, err, usecases.ErrFieldDuplicated)
}

func TestListFieldsOnMissingTable(t *testing.T) {
	_, _, _, _, service := newTableServiceFixture()

	_, err := service.ListFields(context.Background(), shareddomain.ID("tenant-1"), "missing")
	assert.ErrorIs(t, err, usecases.ErrTableNotFound)
}
