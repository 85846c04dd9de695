package domain

import (
	"time"

	shareddomain "veridor-server/internal/shared_kernel/domain"
)

// Risk, Incident and Change are searchable governance entities. Their
// write paths mirror Policy's repository pattern.

type Risk struct {
	ID          shareddomain.ID
	TenantID    shareddomain.ID
	Title       string
	Description string
	Status      string
	Severity    string
	Score       float64
	OwnerID     string
	IsDeleted   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Incident struct {
	ID          shareddomain.ID
	TenantID    shareddomain.ID
	Title       string
	Description string
	Status      string
	Severity    string
	ReportedBy  string
	ResolvedAt  *time.Time
	IsDeleted   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Change struct {
	ID           shareddomain.ID
	TenantID     shareddomain.ID
	Title        string
	Description  string
	Status       string
	RequestedBy  string
	ScheduledFor *time.Time
	IsDeleted    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
