package usecases_test

import (
	"context"
	"reflect"
	"time"

	"veridor-server/internal/infra/cache"
	"veridor-server/internal/records/domain"
	"veridor-server/internal/records/usecases"
	"veridor-server/internal/shared_kernel/audit"
	shareddomain "veridor-server/internal/shared_kernel/domain"
	"veridor-server/internal/shared_kernel/querydsl"
)

type fakeTableRepository struct {
	tables      map[string]domain.DynamicTable
	createError error
	findError   error
	getCalls    int
}

func newFakeTableRepository() *fakeTableRepository {
	return &fakeTableRepository{tables: make(map[string]domain.DynamicTable)}
}

func (f *fakeTableRepository) Create(_ context.Context, table domain.DynamicTable) error {
	if f.createError != nil {
		return f.createError
	}
	f.tables[table.TenantID.String()+"/"+table.Name] = table
	return nil
}

func (f *fakeTableRepository) GetByName(_ context.Context, tenantID shareddomain.ID, name string) (domain.DynamicTable, error) {
	f.getCalls++
	if f.findError != nil {
		return domain.DynamicTable{}, f.findError
	}
	table, ok := f.tables[tenantID.String()+"/"+name]
	if !ok {
		return domain.DynamicTable{}, usecases.ErrTableNotFound
	}
	return table, nil
}

func (f *fakeTableRepository) FindAll(_ context.Context, tenantID shareddomain.ID, _ usecases.Pagination) ([]domain.DynamicTable, int, error) {
	if f.findError != nil {
		return nil, 0, f.findError
	}
	var result []domain.DynamicTable
	for _, table := range f.tables {
		if table.TenantID == tenantID {
			result = append(result, table)
		}
	}
	return result, len(result), nil
}

type fakeFieldRepository struct {
	fields      map[string][]domain.FieldDefinition
	createError error
}

func newFakeFieldRepository() *fakeFieldRepository {
	return &fakeFieldRepository{fields: make(map[string][]domain.FieldDefinition)}
}

func (f *fakeFieldRepository) key(tenantID shareddomain.ID, tableName string) string {
	return tenantID.String() + "/" + tableName
}

func (f *fakeFieldRepository) Create(_ context.Context, field domain.FieldDefinition) error {
	if f.createError != nil {
		return f.createError
	}
	key := f.key(field.TenantID, field.TableName)
	f.fields[key] = append(f.fields[key], field)
	return nil
}

func (f *fakeFieldRepository) GetByName(_ context.Context, tenantID shareddomain.ID, tableName, fieldName string) (domain.FieldDefinition, error) {
	for _, field := range f.fields[f.key(tenantID, tableName)] {
		if field.Name == fieldName {
			return field, nil
		}
	}
	return domain.FieldDefinition{}, usecases.ErrFieldNotFound
}

func (f *fakeFieldRepository) FindActive(_ context.Context, tenantID shareddomain.ID, tableName string) ([]domain.FieldDefinition, error) {
	var result []domain.FieldDefinition
	for _, field := range f.fields[f.key(tenantID, tableName)] {
		if field.Active {
			result = append(result, field)
		}
	}
	return result, nil
}

func (f *fakeFieldRepository) FindAll(_ context.Context, tenantID shareddomain.ID, tableName string) ([]domain.FieldDefinition, error) {
	return f.fields[f.key(tenantID, tableName)], nil
}

type fakeRecordRepository struct {
	records        map[string]domain.Record
	lastConditions []querydsl.Condition
	createError    error
	updateError    error
}

func newFakeRecordRepository() *fakeRecordRepository {
	return &fakeRecordRepository{records: make(map[string]domain.Record)}
}

func (f *fakeRecordRepository) Create(_ context.Context, record domain.Record) error {
	if f.createError != nil {
		return f.createError
	}
	f.records[record.ID.String()] = record
	return nil
}

func (f *fakeRecordRepository) GetByID(_ context.Context, tenantID shareddomain.ID, tableName string, id shareddomain.ID) (domain.Record, error) {
	record, ok := f.records[id.String()]
	if !ok || record.TenantID != tenantID || record.TableName != tableName || record.IsDeleted {
		return domain.Record{}, usecases.ErrRecordNotFound
	}
	return record, nil
}

func (f *fakeRecordRepository) FindAll(_ context.Context, tenantID shareddomain.ID, tableName string, conditions []querydsl.Condition, _ usecases.Pagination) ([]domain.Record, int, error) {
	f.lastConditions = conditions
	var result []domain.Record
	for _, record := range f.records {
		if record.TenantID == tenantID && record.TableName == tableName && !record.IsDeleted {
			result = append(result, record)
		}
	}
	return result, len(result), nil
}

func (f *fakeRecordRepository) Update(_ context.Context, record domain.Record) error {
	if f.updateError != nil {
		return f.updateError
	}
	f.records[record.ID.String()] = record
	return nil
}

type fakeSchemaRegistry struct {
	fields          map[string][]domain.FieldDefinition
	tableError      error
	invalidateCalls []string
}

func newFakeSchemaRegistry() *fakeSchemaRegistry {
	return &fakeSchemaRegistry{fields: make(map[string][]domain.FieldDefinition)}
}

func (f *fakeSchemaRegistry) GetActiveFields(_ context.Context, tenantID shareddomain.ID, tableName string) ([]domain.FieldDefinition, error) {
	return f.fields[tenantID.String()+"/"+tableName], nil
}

func (f *fakeSchemaRegistry) ValidateTableExists(_ context.Context, _ shareddomain.ID, _ string) error {
	return f.tableError
}

func (f *fakeSchemaRegistry) Invalidate(_ context.Context, tenantID shareddomain.ID, tableName string) {
	f.invalidateCalls = append(f.invalidateCalls, tenantID.String()+"/"+tableName)
}

type fakeAuditRecorder struct {
	events      []audit.Event
	recordError error
}

func (f *fakeAuditRecorder) Record(_ context.Context, event audit.Event) error {
	if f.recordError != nil {
		return f.recordError
	}
	f.events = append(f.events, event)
	return nil
}

// fakeCache is a deterministic Cache for registry tests; the production
// ristretto implementation admits writes asynchronously.
type fakeCache struct {
	entries map[string]any
}

var _ cache.Cache = (*fakeCache)(nil)

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]any)}
}

func (f *fakeCache) Get(_ context.Context, key string, dest any) bool {
	value, ok := f.entries[key]
	if !ok {
		return false
	}
	assignCached(dest, value)
	return true
}

func (f *fakeCache) Set(_ context.Context, key string, value any, _ time.Duration) bool {
	f.entries[key] = value
	return true
}

func (f *fakeCache) Delete(_ context.Context, key string) {
	delete(f.entries, key)
}

func (f *fakeCache) GetOrSet(ctx context.Context, key string, dest any, ttl time.Duration, loader func() (any, error)) error {
	if found := f.Get(ctx, key, dest); found {
		return nil
	}
	value, err := loader()
	if err != nil {
		return err
	}
	f.Set(ctx, key, value, ttl)
	assignCached(dest, value)
	return nil
}

func assignCached(dest, value any) {
	if value == nil {
		return
	}
	reflect.ValueOf(dest).Elem().Set(reflect.ValueOf(value))
}
