package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"veridor-server/internal/infra/cache"
	"veridor-server/internal/records/domain"
	shareddomain "veridor-server/internal/shared_kernel/domain"
)

const schemaCacheTTL = 30 * time.Second

// SchemaRegistry is the read path for dynamic table schemas. Ordering
// of the returned fields carries no meaning to callers.
type SchemaRegistry interface {
	GetActiveFields(ctx context.Context, tenantID shareddomain.ID, tableName string) ([]domain.FieldDefinition, error)
	ValidateTableExists(ctx context.Context, tenantID shareddomain.ID, tableName string) error
	Invalidate(ctx context.Context, tenantID shareddomain.ID, tableName string)
}

func NewSchemaRegistry(
	tables TableRepository,
	fields FieldDefinitionRepository,
	cache cache.Cache,
) *CachedSchemaRegistry {
	return &CachedSchemaRegistry{
		tables: tables,
		fields: fields,
		cache:  cache,
	}
}

var _ SchemaRegistry = (*CachedSchemaRegistry)(nil)

// CachedSchemaRegistry reads through a short-TTL cache. Hot tables are
// validated and coerced on every record write, so their schemas would
// otherwise be fetched once per request.
type CachedSchemaRegistry struct {
	tables TableRepository
	fields FieldDefinitionRepository
	cache  cache.Cache
}

func (r *CachedSchemaRegistry) GetActiveFields(ctx context.Context, tenantID shareddomain.ID, tableName string) ([]domain.FieldDefinition, error) {
	key := schemaCacheKey(tenantID, tableName)

	var fields []domain.FieldDefinition
	err := r.cache.GetOrSet(ctx, key, &fields, schemaCacheTTL, func() (any, error) {
		fields, err := r.fields.FindActive(ctx, tenantID, tableName)
		if err != nil {
			return nil, fmt.Errorf("loading field definitions: %w", err)
		}
		return fields, nil
	})
	if err != nil {
		return nil, err
	}

	return fields, nil
}

func (r *CachedSchemaRegistry) ValidateTableExists(ctx context.Context, tenantID shareddomain.ID, tableName string) error {
	key := tableCacheKey(tenantID, tableName)

	var exists bool
	err := r.cache.GetOrSet(ctx, key, &exists, schemaCacheTTL, func() (any, error) {
		_, err := r.tables.GetByName(ctx, tenantID, tableName)
		if errors.Is(err, ErrTableNotFound) {
			return nil, ErrTableNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("loading table: %w", err)
		}
		return true, nil
	})

	return err
}

// Invalidate drops the cached schema after a field definition change.
func (r *CachedSchemaRegistry) Invalidate(ctx context.Context, tenantID shareddomain.ID, tableName string) {
	r.cache.Delete(ctx, schemaCacheKey(tenantID, tableName))
	r.cache.Delete(ctx, tableCacheKey(tenantID, tableName))
}

func schemaCacheKey(tenantID shareddomain.ID, tableName string) string {
	return fmt.Sprintf("schema:%s:%s", tenantID, tableName)
}

func tableCacheKey(tenantID shareddomain.ID, tableName string) string {
	return fmt.Sprintf("table:%s:%s", tenantID, tableName)
}
