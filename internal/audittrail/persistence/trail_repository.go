package persistence

import (
	"context"
	"fmt"

	"veridor-server/internal/audittrail/persistence/internal"
	"veridor-server/internal/audittrail/usecases"
	"veridor-server/internal/infra/sql"
	"veridor-server/internal/shared_kernel/audit"
	shareddomain "veridor-server/internal/shared_kernel/domain"
)

func NewTrailRepository(orm sql.ORM) (*SimpleTrailRepository, error) {
	err := orm.AutoMigrate(&internal.TrailEntry{})
	if err != nil {
		return nil, fmt.Errorf("auto migrating: %w", err)
	}

	return &SimpleTrailRepository{orm: orm}, nil
}

var _ usecases.TrailRepository = (*SimpleTrailRepository)(nil)

type SimpleTrailRepository struct {
	orm sql.ORM
}

func (r *SimpleTrailRepository) Save(ctx context.Context, event audit.Event) error {
	entry := internal.FromEvent(event)
	err := r.orm.WithContext(ctx).Create(&entry).Error()
	if err != nil {
		return fmt.Errorf("saving audit event: %w", err)
	}

	return nil
}

func (r *SimpleTrailRepository) FindByTenant(ctx context.Context, tenantID shareddomain.ID, pagination usecases.Pagination) ([]audit.Event, int, error) {
	base := func() sql.ORM {
		return r.orm.
			WithContext(ctx).
			Where("tenant_id = ?", tenantID.String())
	}

	var total int64
	err := base().Model(&internal.TrailEntry{}).Count(&total).Error()
	if err != nil {
		return nil, 0, fmt.Errorf("counting audit events: %w", err)
	}

	var entries []internal.TrailEntry
	err = base().
		Order("occurred_at DESC").
		Limit(pagination.Limit).
		Offset(pagination.Offset).
		Find(&entries).
		Error()
	if err != nil {
		return nil, 0, fmt.Errorf("database query: %w", err)
	}

	result := make([]audit.Event, len(entries))
	for i, entry := range entries {
		result[i] = entry.ToEvent()
	}

	return result, int(total), nil
}
