package usecases

import (
	"context"
	"fmt"

	"veridor-server/internal/shared_kernel/audit"
	shareddomain "veridor-server/internal/shared_kernel/domain"
)

type Pagination struct {
	Limit  int
	Offset int
}

type TrailRepository interface {
	Save(ctx context.Context, event audit.Event) error
	FindByTenant(ctx context.Context, tenantID shareddomain.ID, pagination Pagination) ([]audit.Event, int, error)
}

type TrailService interface {
	ListEvents(ctx context.Context, tenantID shareddomain.ID, pagination Pagination) ([]audit.Event, int, error)
}

func NewTrailService(repository TrailRepository) *SimpleTrailService {
	return &SimpleTrailService{
		repository: repository,
	}
}

var _ TrailService = (*SimpleTrailService)(nil)

type SimpleTrailService struct {
	repository TrailRepository
}

func (s *SimpleTrailService) ListEvents(ctx context.Context, tenantID shareddomain.ID, pagination Pagination) ([]audit.Event, int, error) {
	events, total, err := s.repository.FindByTenant(ctx, tenantID, pagination)
	if err != nil {
		return nil, 0, fmt.Errorf("listing audit events: %w", err)
	}

	return events, total, nil
}
