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
	"veridor-server/internal/shared_kernel/querydsl"
)

func NewRecordRepository(orm sql.ORM) (*SimpleRecordRepository, error) {
	err := orm.AutoMigrate(&internal.DynamicRecord{})
	if err != nil {
		return nil, fmt.Errorf("auto migrating: %w", err)
	}

	return &SimpleRecordRepository{orm: orm}, nil
}

var _ usecases.RecordRepository = (*SimpleRecordRepository)(nil)

type SimpleRecordRepository struct {
	orm sql.ORM
}

func (r *SimpleRecordRepository) Create(ctx context.Context, record domain.Record) error {
	data, err := internal.FromRecord(record)
	if err != nil {
		return fmt.Errorf("encoding record data: %w", err)
	}

	err = r.orm.WithContext(ctx).Create(&data).Error()
	if err != nil {
		return fmt.Errorf("creating record: %w", err)
	}

	return nil
}

func (r *SimpleRecordRepository) GetByID(ctx context.Context, tenantID shareddomain.ID, tableName string, id shareddomain.ID) (domain.Record, error) {
	var entity internal.DynamicRecord
	err := r.orm.
		WithContext(ctx).
		Where("tenant_id = ?", tenantID.String()).
		Where("table_name = ?", tableName).
		Where("is_deleted = ?", false).
		First(&entity, "id = ?", id.String()).
		Error()

	if errors.Is(err, sql.ErrRecordNotFound) {
		return domain.Record{}, usecases.ErrRecordNotFound
	}

	if err != nil {
		return domain.Record{}, fmt.Errorf("database query: %w", err)
	}

	return entity.ToDomain(), nil
}

func (r *SimpleRecordRepository) Update(ctx context.Context, record domain.Record) error {
	data, err := internal.FromRecord(record)
	if err != nil {
		return fmt.Errorf("encoding record data: %w", err)
	}

	err = r.orm.WithContext(ctx).Save(&data).Error()
	if err != nil {
		return fmt.Errorf("updating record: %w", err)
	}

	return nil
}

func (r *SimpleRecordRepository) FindAll(ctx context.Context, tenantID shareddomain.ID, tableName string, conditions []querydsl.Condition, pagination usecases.Pagination) ([]domain.Record, int, error) {
	base := func() (sql.ORM, error) {
		query := r.orm.
			WithContext(ctx).
			Where("tenant_id = ?", tenantID.String()).
			Where("table_name = ?", tableName).
			Where("is_deleted = ?", false)

		return querydsl.Apply(query, r.dataFilter(conditions), "")
	}

	query, err := base()
	if err != nil {
		return nil, 0, err
	}

	var total int64
	err = query.Model(&internal.DynamicRecord{}).Count(&total).Error()
	if err != nil {
		return nil, 0, fmt.Errorf("counting records: %w", err)
	}

	query, err = base()
	if err != nil {
		return nil, 0, err
	}

	var entities []internal.DynamicRecord
	err = query.
		Order("created_at ASC").
		Limit(pagination.Limit).
		Offset(pagination.Offset).
		Find(&entities).
		Error()
	if err != nil {
		return nil, 0, fmt.Errorf("database query: %w", err)
	}

	result := make([]domain.Record, len(entities))
	for i, entity := range entities {
		result[i] = entity.ToDomain()
	}

	return result, int(total), nil
}

// dataFilter rewrites filter fields into JSON extraction expressions on
// the data column. Field names were allow-listed upstream; the JSON
// path syntax differs per dialect.
func (r *SimpleRecordRepository) dataFilter(conditions []querydsl.Condition) querydsl.Group {
	group := querydsl.Group{Logical: querydsl.LogicalAnd}
	for _, condition := range conditions {
		condition.Field = r.dataExpression(condition.Field)
		group.Conditions = append(group.Conditions, condition)
	}

	return group
}

func (r *SimpleRecordRepository) dataExpression(field string) string {
	if r.orm.DialectName() == "postgres" {
		return fmt.Sprintf("data ->> '%s'", field)
	}

	return fmt.Sprintf("json_extract(data, '$.%s')", field)
}
