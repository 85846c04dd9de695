package usecases

import (
	"context"

	"veridor-server/internal/records/domain"
	shareddomain "veridor-server/internal/shared_kernel/domain"
	"veridor-server/internal/shared_kernel/querydsl"
)

type Pagination struct {
	Limit  int
	Offset int
}

type TableRepository interface {
	Create(ctx context.Context, table domain.DynamicTable) error
	GetByName(ctx context.Context, tenantID shareddomain.ID, name string) (domain.DynamicTable, error)
	FindAll(ctx context.Context, tenantID shareddomain.ID, pagination Pagination) ([]domain.DynamicTable, int, error)
}

type FieldDefinitionRepository interface {
	Create(ctx context.Context, field domain.FieldDefinition) error
	GetByName(ctx context.Context, tenantID shareddomain.ID, tableName, fieldName string) (domain.FieldDefinition, error)
	FindActive(ctx context.Context, tenantID shareddomain.ID, tableName string) ([]domain.FieldDefinition, error)
	FindAll(ctx context.Context, tenantID shareddomain.ID, tableName string) ([]domain.FieldDefinition, error)
}

type RecordRepository interface {
	Create(ctx context.Context, record domain.Record) error
	GetByID(ctx context.Context, tenantID shareddomain.ID, tableName string, id shareddomain.ID) (domain.Record, error)
	FindAll(ctx context.Context, tenantID shareddomain.ID, tableName string, conditions []querydsl.Condition, pagination Pagination) ([]domain.Record, int, error)
	Update(ctx context.Context, record domain.Record) error
}
