package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"veridor-server/internal/governance/domain"
	"veridor-server/internal/shared_kernel/audit"
	shareddomain "veridor-server/internal/shared_kernel/domain"
)

var ErrPolicyNotFound = errors.New("policy not found")

type PolicyRepository interface {
	Create(ctx context.Context, policy domain.Policy) error
	GetByID(ctx context.Context, tenantID, id shareddomain.ID) (domain.Policy, error)
	Update(ctx context.Context, policy domain.Policy) error
}

type PolicyService interface {
	CreatePolicy(ctx context.Context, policy domain.Policy, createdBy string) error
	GetPolicy(ctx context.Context, tenantID, id shareddomain.ID) (domain.Policy, error)
	UpdatePolicy(ctx context.Context, policy domain.Policy, updatedBy string) (domain.Policy, error)
	SoftDeletePolicy(ctx context.Context, tenantID, id shareddomain.ID, deletedBy string) error
}

func NewPolicyService(repository PolicyRepository, auditRecorder audit.Recorder) *SimplePolicyService {
	return &SimplePolicyService{
		repository: repository,
		audit:      auditRecorder,
	}
}

var _ PolicyService = (*SimplePolicyService)(nil)

type SimplePolicyService struct {
	repository PolicyRepository
	audit      audit.Recorder
}

func (s *SimplePolicyService) CreatePolicy(ctx context.Context, policy domain.Policy, createdBy string) error {
	err := s.repository.Create(ctx, policy)
	if err != nil {
		slog.Error("creating policy", slog.String("error", err.Error()))
		return fmt.Errorf("creating policy: %w", err)
	}

	s.recordAudit(ctx, policy, createdBy, "policy.created")

	slog.Info("policy created successfully",
		slog.String("id", policy.ID.String()),
		slog.String("title", policy.Title))

	return nil
}

func (s *SimplePolicyService) GetPolicy(ctx context.Context, tenantID, id shareddomain.ID) (domain.Policy, error) {
	policy, err := s.repository.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, ErrPolicyNotFound) {
			return domain.Policy{}, ErrPolicyNotFound
		}
		slog.Error("getting policy", slog.String("error", err.Error()))
		return domain.Policy{}, fmt.Errorf("getting policy: %w", err)
	}

	return policy, nil
}

func (s *SimplePolicyService) UpdatePolicy(ctx context.Context, policy domain.Policy, updatedBy string) (domain.Policy, error) {
	existing, err := s.repository.GetByID(ctx, policy.TenantID, policy.ID)
	if err != nil {
		if errors.Is(err, ErrPolicyNotFound) {
			return domain.Policy{}, ErrPolicyNotFound
		}
		return domain.Policy{}, fmt.Errorf("getting policy: %w", err)
	}

	existing.UpdateInfo(policy.Title, policy.Description, policy.Category, policy.Status)

	err = s.repository.Update(ctx, existing)
	if err != nil {
		slog.Error("updating policy", slog.String("error", err.Error()))
		return domain.Policy{}, fmt.Errorf("updating policy: %w", err)
	}

	s.recordAudit(ctx, existing, updatedBy, "policy.updated")

	slog.Info("policy updated successfully",
		slog.String("id", existing.ID.String()),
		slog.Int("version", existing.Version))

	return existing, nil
}

func (s *SimplePolicyService) SoftDeletePolicy(ctx context.Context, tenantID, id shareddomain.ID, deletedBy string) error {
	policy, err := s.repository.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, ErrPolicyNotFound) {
			return ErrPolicyNotFound
		}
		return fmt.Errorf("getting policy: %w", err)
	}

	policy.SoftDelete()

	err = s.repository.Update(ctx, policy)
	if err != nil {
		slog.Error("soft deleting policy", slog.String("error", err.Error()))
		return fmt.Errorf("soft deleting policy: %w", err)
	}

	s.recordAudit(ctx, policy, deletedBy, "policy.deleted")

	slog.Info("policy soft deleted successfully", slog.String("id", id.String()))
	return nil
}

func (s *SimplePolicyService) recordAudit(ctx context.Context, policy domain.Policy, userID, action string) {
	event := audit.Event{
		TenantID:   policy.TenantID.String(),
		UserID:     userID,
		Action:     action,
		EntityKind: "policy",
		EntityID:   policy.ID.String(),
	}

	if err := s.audit.Record(ctx, event); err != nil {
		slog.Warn("recording audit event",
			slog.String("action", action),
			slog.String("error", err.Error()))
	}
}
