package internal

import (
	"time"

	"veridor-server/internal/governance/domain"
)

// Search-only entity models. Their write paths live outside this
// service for now; the tables are migrated here so the search backend
// has something to query.

type Risk struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	TenantID    string    `json:"tenant_id" gorm:"index;not null"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Severity    string    `json:"severity"`
	Score       float64   `json:"score"`
	OwnerID     string    `json:"owner_id"`
	IsDeleted   bool      `json:"is_deleted" gorm:"default:false"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Risk) TableName() string {
	return "risks"
}

func FromRisk(value domain.Risk) Risk {
	return Risk{
		ID:          value.ID.String(),
		TenantID:    value.TenantID.String(),
		Title:       value.Title,
		Description: value.Description,
		Status:      value.Status,
		Severity:    value.Severity,
		Score:       value.Score,
		OwnerID:     value.OwnerID,
		IsDeleted:   value.IsDeleted,
		CreatedAt:   value.CreatedAt,
		UpdatedAt:   value.UpdatedAt,
	}
}

type Incident struct {
	ID          string     `json:"id" gorm:"primaryKey"`
	TenantID    string     `json:"tenant_id" gorm:"index;not null"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Severity    string     `json:"severity"`
	ReportedBy  string     `json:"reported_by"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
	IsDeleted   bool       `json:"is_deleted" gorm:"default:false"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Incident) TableName() string {
	return "incidents"
}

func FromIncident(value domain.Incident) Incident {
	return Incident{
		ID:          value.ID.String(),
		TenantID:    value.TenantID.String(),
		Title:       value.Title,
		Description: value.Description,
		Status:      value.Status,
		Severity:    value.Severity,
		ReportedBy:  value.ReportedBy,
		ResolvedAt:  value.ResolvedAt,
		IsDeleted:   value.IsDeleted,
		CreatedAt:   value.CreatedAt,
		UpdatedAt:   value.UpdatedAt,
	}
}

type Change struct {
	ID           string     `json:"id" gorm:"primaryKey"`
	TenantID     string     `json:"tenant_id" gorm:"index;not null"`
	Title        string     `json:"title" gorm:"not null"`
	Description  string     `json:"description"`
	Status       string     `json:"status"`
	RequestedBy  string     `json:"requested_by"`
	ScheduledFor *time.Time `json:"scheduled_for,omitempty"`
	IsDeleted    bool       `json:"is_deleted" gorm:"default:false"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (Change) TableName() string {
	return "changes"
}

func FromChange(value domain.Change) Change {
	return Change{
		ID:           value.ID.String(),
		TenantID:     value.TenantID.String(),
		Title:        value.Title,
		Description:  value.Description,
		Status:       value.Status,
		RequestedBy:  value.RequestedBy,
		ScheduledFor: value.ScheduledFor,
		IsDeleted:    value.IsDeleted,
		CreatedAt:    value.CreatedAt,
		UpdatedAt:    value.UpdatedAt,
	}
}
