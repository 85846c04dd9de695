package persistence

import (
	"context"
	"errors"
	"fmt"

	"veridor-server/internal/infra/sql"
	"veridor-server/internal/records/domain"
	"veridor-server/internal/records/persistence/internal"
	"veridor-server/internal/records/usecases"
	shareddomain "veridor-server/internal/shared_kernel/domain"
)

func NewFieldDefinitionRepository(orm sql.ORM) (*SimpleFieldDefinitionRepository, error) {
	err := orm.AutoMigrate(&internal.FieldDefinition{})
	if err != nil {
		return nil, fmt.Errorf("auto migrating: %w", err)
	}

	return &SimpleFieldDefinitionRepository{orm: orm}, nil
}

var _ usecases.FieldDefinitionRepository = (*SimpleFieldDefinitionRepository)(nil)

type SimpleFieldDefinitionRepository struct {
	orm sql.ORM
}

func (r *SimpleFieldDefinitionRepository) Create(ctx context.Context, field domain.FieldDefinition) error {
	data := internal.FromFieldDefinition(field)
	err := r.orm.WithContext(ctx).Create(&data).Error()
	if err != nil {
		return fmt.Errorf("creating field definition: %w", err)
	}

	return nil
}

func (r *SimpleFieldDefinitionRepository) GetByName(ctx context.Context, tenantID shareddomain.ID, tableName, fieldName string) (domain.FieldDefinition, error) {
	var entity internal.FieldDefinition
	err := r.orm.
		WithContext(ctx).
		Where("tenant_id = ?", tenantID.String()).
		Where("table_name = ?", tableName).
		Where("name = ?", fieldName).
		First(&entity).
		Error()

	if errors.Is(err, sql.ErrRecordNotFound) {
		return domain.FieldDefinition{}, usecases.ErrFieldNotFound
	}

	if err != nil {
		return domain.FieldDefinition{}, fmt.Errorf("database query: %w", err)
	}

	return entity.ToDomain(), nil
}

func (r *SimpleFieldDefinitionRepository) FindActive(ctx context.Context, tenantID shareddomain.ID, tableName string) ([]domain.FieldDefinition, error) {
	return r.find(ctx, tenantID, tableName, true)
}

func (r *SimpleFieldDefinitionRepository) FindAll(ctx context.Context, tenantID shareddomain.ID, tableName string) ([]domain.FieldDefinition, error) {
	return r.find(ctx, tenantID, tableName, false)
}

func (r *SimpleFieldDefinitionRepository) find(ctx context.Context, tenantID shareddomain.ID, tableName string, activeOnly bool) ([]domain.FieldDefinition, error) {
	query := r.orm.
		WithContext(ctx).
		Where("tenant_id = ?", tenantID.String()).
		Where("table_name = ?", tableName)

	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var entities []internal.FieldDefinition
	err := query.Order("created_at ASC").Find(&entities).Error()
	if err != nil {
		return nil, fmt.Errorf("database query: %w", err)
	}

	result := make([]domain.FieldDefinition, len(entities))
	for i, entity := range entities {
		result[i] = entity.ToDomain()
	}

	return result, nil
}
