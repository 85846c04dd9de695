package persistence

import (
	"context"
	"errors"
	"fmt"

	"veridor-server/internal/governance/domain"
	"veridor-server/internal/governance/persistence/internal"
	"veridor-server/internal/governance/usecases"
	"veridor-server/internal/infra/sql"
	shareddomain "veridor-server/internal/shared_kernel/domain"
)

func NewPolicyRepository(orm sql.ORM) (*SimplePolicyRepository, error) {
	err := orm.AutoMigrate(
		&internal.Policy{},
		&internal.Risk{},
		&internal.Incident{},
		&internal.Change{},
	)
	if err != nil {
		return nil, fmt.Errorf("auto migrating: %w", err)
	}

	return &SimplePolicyRepository{orm: orm}, nil
}

var _ usecases.PolicyRepository = (*SimplePolicyRepository)(nil)

type SimplePolicyRepository struct {
	orm sql.ORM
}

func (r *SimplePolicyRepository) Create(ctx context.Context, policy domain.Policy) error {
	data := internal.FromPolicy(policy)
	err := r.orm.WithContext(ctx).Create(&data).Error()
	if err != nil {
		return fmt.Errorf("creating policy: %w", err)
	}

	return nil
}

func (r *SimplePolicyRepository) GetByID(ctx context.Context, tenantID, id shareddomain.ID) (domain.Policy, error) {
	var entity internal.Policy
	err := r.orm.
		WithContext(ctx).
		Where("tenant_id = ?", tenantID.String()).
		Where("is_deleted = ?", false).
		First(&entity, "id = ?", id.String()).
		Error()

	if errors.Is(err, sql.ErrRecordNotFound) {
		return domain.Policy{}, usecases.ErrPolicyNotFound
	}

	if err != nil {
		return domain.Policy{}, fmt.Errorf("database query: %w", err)
	}

	return entity.ToDomain(), nil
}

func (r *SimplePolicyRepository) Update(ctx context.Context, policy domain.Policy) error {
	data := internal.FromPolicy(policy)
	err := r.orm.WithContext(ctx).Save(&data).Error()
	if err != nil {
		return fmt.Errorf("updating policy: %w", err)
	}

	return nil
}
