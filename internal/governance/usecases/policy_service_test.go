package usecases_test

import (
	"context"
	"testing"

	"veridor-server/internal/governance/domain"
	"veridor-server/internal/governance/usecases"
	"veridor-server/internal/shared_kernel/audit"
	shareddomain "veridor-server/internal/shared_kernel/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePolicyRepository struct {
	policies map[string]domain.Policy
}

func newFakePolicyRepository() *fakePolicyRepository {
	return &fakePolicyRepository{policies: make(map[string]domain.Policy)}
}

func (f *fakePolicyRepository) Create(_ context.Context, policy domain.Policy) error {
	f.policies[policy.ID.String()] = policy
	return nil
}

func (f *fakePolicyRepository) GetByID(_ context.Context, tenantID, id shareddomain.ID) (domain.Policy, error) {
	policy, ok := f.policies[id.String()]
	if !ok || policy.TenantID != tenantID || policy.IsDeleted {
		return domain.Policy{}, usecases.ErrPolicyNotFound
	}
	return policy, nil
}

func (f *fakePolicyRepository) Update(_ context.Context, policy domain.Policy) error {
	f.policies[policy.ID.String()] = policy
	return nil
}

type capturingAuditRecorder struct {
	events []audit.Event
}

func (c *capturingAuditRecorder) Record(_ context.Context, event audit.Event) error {
	c.events = append(c.events, event)
	return nil
}

func buildPolicy(t *testing.T, tenantID shareddomain.ID) domain.Policy {
	t.Helper()
	policy, err := domain.NewPolicyBuilder().
		WithTenant(tenantID).
		WithTitle("Access Control Policy").
		WithDescription("Who gets in and why").
		WithCategory("security").
		WithOwner("user-1").
		Build()
	require.NoError(t, err)
	return policy
}

func TestCreatePolicy(t *testing.T) {
	repository := newFakePolicyRepository()
	recorder := &capturingAuditRecorder{}
	service := usecases.NewPolicyService(repository, recorder)

	policy := buildPolicy(t, "tenant-1")
	require.NoError(t, service.CreatePolicy(context.Background(), policy, "user-1"))

	assert.Len(t, repository.policies, 1)
	require.Len(t, recorder.events, 1)
	assert.Equal(t, "policy.created", recorder.events[0].Action)
	assert.Equal(t, "policy", recorder.events[0].EntityKind)
}

func TestUpdatePolicyBumpsVersion(t *testing.T) {
	repository := newFakePolicyRepository()
	service := usecases.NewPolicyService(repository, &capturingAuditRecorder{})

	policy := buildPolicy(t, "tenant-1")
	require.NoError(t, service.CreatePolicy(context.Background(), policy, "user-1"))

	updated, err := service.UpdatePolicy(context.Background(), domain.Policy{
		ID:       policy.ID,
		TenantID: policy.TenantID,
		Title:    "Access Control Policy v2",
		Status:   domain.PolicyStatusActive,
	}, "user-2")
	require.NoError(t, err)

	assert.Equal(t, "Access Control Policy v2", updated.Title)
	assert.Equal(t, domain.PolicyStatusActive, updated.Status)
	assert.Equal(t, 2, updated.Version)
	// Blank fields in the update leave the stored values alone.
	assert.Equal(t, "Who gets in and why", updated.Description)
	assert.Equal(t, "security", updated.Category)
}

func TestUpdatePolicyNotFound(t *testing.T) {
	service := usecases.NewPolicyService(newFakePolicyRepository(), &capturingAuditRecorder{})

	_, err := service.UpdatePolicy(context.Background(), domain.Policy{
		ID:       "missing",
		TenantID: "tenant-1",
		Title:    "anything",
	}, "user-1")
	assert.ErrorIs(t, err, usecases.ErrPolicyNotFound)
}

func TestSoftDeletePolicy(t *testing.T) {
	repository := newFakePolicyRepository()
	recorder := &capturingAuditRecorder{}
	service := usecases.NewPolicyService(repository, recorder)

	policy := buildPolicy(t, "tenant-1")
	require.NoError(t, service.CreatePolicy(context.Background(), policy, "user-1"))
	require.NoError(t, service.SoftDeletePolicy(context.Background(), "tenant-1", policy.ID, "user-2"))

	assert.True(t, repository.policies[policy.ID.String()].IsDeleted)

	_, err := service.GetPolicy(context.Background(), "tenant-1", policy.ID)
	assert.ErrorIs(t, err, usecases.ErrPolicyNotFound)

	require.Len(t, recorder.events, 2)
	assert.Equal(t, "policy.deleted", recorder.events[1].Action)
}

func TestGetPolicyCrossTenant(t *testing.T) {
	repository := newFakePolicyRepository()
	service := usecases.NewPolicyService(repository, &capturingAuditRecorder{})

	policy := buildPolicy(t, "tenant-1")
	require.NoError(t, service.CreatePolicy(context.Background(), policy, "user-1"))

	_, err := service.GetPolicy(context.Background(), "tenant-2", policy.ID)
	assert.ErrorIs(t, err, usecases.ErrPolicyNotFound)
}
