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

func NewTableRepository(orm sql.ORM) (*SimpleTableRepository, error) {
	err := orm.AutoMigrate(&internal.DynamicTable{})
	if err != nil {
		return nil, fmt.Errorf("auto migrating: %w", err)
	}

	return &SimpleTableRepository{orm: orm}, nil
}

var _ usecases.TableRepository = (*SimpleTableRepository)(nil)

type SimpleTableRepository struct {
	orm sql.ORM
}

func (r *SimpleTableRepository) Create(ctx context.Context, table domain.DynamicTable) error {
	data := internal.FromDynamicTable(table)
	err := r.orm.WithContext(ctx).Create(&data).Error()
	if err != nil {
		return fmt.Errorf("creating table: %w", err)
	}

	return nil
}

func (r *SimpleTableRepository) GetByName(ctx context.Context, tenantID shareddomain.ID, name string) (domain.DynamicTable, error) {
	var entity internal.DynamicTable
	err := r.orm.
		WithContext(ctx).
		Where("tenant_id = ?", tenantID.String()).
		Where("name = ?", name).
		Where("deleted_at IS NULL").
		First(&entity).
		Error()

	if errors.Is(err, sql.ErrRecordNotFound) {
		return domain.DynamicTable{}, usecases.ErrTableNotFound
	}

	if err != nil {
		return domain.DynamicTable{}, fmt.Errorf("database query: %w", err)
	}

	return entity.ToDomain(), nil
}

func (r *SimpleTableRepository) FindAll(ctx context.Context, tenantID shareddomain.ID, pagination usecases.Pagination) ([]domain.DynamicTable, int, error) {
	base := func() sql.ORM {
		return r.orm.
			WithContext(ctx).
			Where("tenant_id = ?", tenantID.String()).
			Where("deleted_at IS NULL")
	}

	var total int64
	err := base().Model(&internal.DynamicTable{}).Count(&total).Error()
	if err != nil {
		return nil, 0, fmt.Errorf("counting tables: %w", err)
	}

	var entities []internal.DynamicTable
	err = base().
		Order("created_at ASC").
		Limit(pagination.Limit).
		Offset(pagination.Offset).
		Find(&entities).
		Error()
	if err != nil {
		return nil, 0, fmt.Errorf("database query: %w", err)
	}

	result := make([]domain.DynamicTable, len(entities))
	for i, entity := range entities {
		result[i] = entity.ToDomain()
	}

	return result, int(total), nil
}
