package domain

import (
	"fmt"
	"time"

	"veridor-server/internal/infra/utils"
	shareddomain "veridor-server/internal/shared_kernel/domain"
)

type PolicyStatus string

const (
	PolicyStatusDraft       PolicyStatus = "draft"
	PolicyStatusActive      PolicyStatus = "active"
	PolicyStatusRetired     PolicyStatus = "retired"
	PolicyStatusUnderReview PolicyStatus = "under_review"
)

// Policy is a governance document owned by one tenant. It is the
// representative typed entity for the write path; risks, incidents and
// changes follow the same shape.
type Policy struct {
	ID          shareddomain.ID
	TenantID    shareddomain.ID
	Title       string
	Description string
	Status      PolicyStatus
	Category    string
	OwnerID     string
	Version     int
	IsDeleted   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p *Policy) SoftDelete() {
	p.IsDeleted = true
	p.UpdatedAt = time.Now()
}

func (p *Policy) UpdateInfo(title, description, category string, status PolicyStatus) {
	if title != "" {
		p.Title = title
	}
	if description != "" {
		p.Description = description
	}
	if category != "" {
		p.Category = category
	}
	if status != "" {
		p.Status = status
	}
	p.Version++
	p.UpdatedAt = time.Now()
}

func NewPolicyBuilder() *policyBuilder {
	return &policyBuilder{}
}

type policyBuilder struct {
	actions []policyHandler
}

type policyHandler func(p *Policy) error

func (b *policyBuilder) WithTenant(tenantID shareddomain.ID) *policyBuilder {
	b.actions = append(b.actions, func(p *Policy) error {
		p.TenantID = tenantID
		return nil
	})
	return b
}

func (b *policyBuilder) WithTitle(title string) *policyBuilder {
	b.actions = append(b.actions, func(p *Policy) error {
		p.Title = title
		return nil
	})
	return b
}

func (b *policyBuilder) WithDescription(description string) *policyBuilder {
	b.actions = append(b.actions, func(p *Policy) error {
		p.Description = description
		return nil
	})
	return b
}

func (b *policyBuilder) WithCategory(category string) *policyBuilder {
	b.actions = append(b.actions, func(p *Policy) error {
		p.Category = category
		return nil
	})
	return b
}

func (b *policyBuilder) WithOwner(ownerID string) *policyBuilder {
	b.actions = append(b.actions, func(p *Policy) error {
		p.OwnerID = ownerID
		return nil
	})
	return b
}

func (b *policyBuilder) Build() (Policy, error) {
	now := time.Now()
	result := Policy{
		ID:        shareddomain.ID(utils.GenerateUUID()),
		Status:    PolicyStatusDraft,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	for _, action := range b.actions {
		if err := action(&result); err != nil {
			return Policy{}, err
		}
	}

	if result.Title == "" {
		return Policy{}, fmt.Errorf("policy title is required")
	}

	return result, nil
}
