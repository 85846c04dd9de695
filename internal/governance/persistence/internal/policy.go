package internal

import (
	"time"

	"veridor-server/internal/governance/domain"
	shareddomain "veridor-server/internal/shared_kernel/domain"
)

type Policy struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	TenantID    string    `json:"tenant_id" gorm:"index;not null"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Category    string    `json:"category"`
	OwnerID     string    `json:"owner_id"`
	Version     int       `json:"version"`
	IsDeleted   bool      `json:"is_deleted" gorm:"default:false"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Policy) TableName() string {
	return "policies"
}

func (p Policy) ToDomain() domain.Policy {
	return domain.Policy{
		ID:          shareddomain.ID(p.ID),
		TenantID:    shareddomain.ID(p.TenantID),
		Title:       p.Title,
		Description: p.Description,
		Status:      domain.PolicyStatus(p.Status),
		Category:    p.Category,
		OwnerID:     p.OwnerID,
		Version:     p.Version,
		IsDeleted:   p.IsDeleted,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func FromPolicy(value domain.Policy) Policy {
	return Policy{
		ID:          value.ID.String(),
		TenantID:    value.TenantID.String(),
		Title:       value.Title,
		Description: value.Description,
		Status:      string(value.Status),
		Category:    value.Category,
		OwnerID:     value.OwnerID,
		Version:     value.Version,
		IsDeleted:   value.IsDeleted,
		CreatedAt:   value.CreatedAt,
		UpdatedAt:   value.UpdatedAt,
	}
}
