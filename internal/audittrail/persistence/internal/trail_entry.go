package internal

import (
	"time"

	"veridor-server/internal/shared_kernel/audit"
)

type TrailEntry struct {
	ID         string `gorm:"primaryKey"`
	TenantID   string `gorm:"index"`
	UserID     string
	Action     string
	EntityKind string
	EntityID   string
	OccurredAt time.Time
}

func (TrailEntry) TableName() string {
	return "audit_trail"
}

func FromEvent(event audit.Event) TrailEntry {
	return TrailEntry{
		ID:         event.ID,
		TenantID:   event.TenantID,
		UserID:     event.UserID,
		Action:     event.Action,
		EntityKind: event.EntityKind,
		EntityID:   event.EntityID,
		OccurredAt: event.OccurredAt,
	}
}

func (e TrailEntry) ToEvent() audit.Event {
	return audit.Event{
		ID:         e.ID,
		TenantID:   e.TenantID,
		UserID:     e.UserID,
		Action:     e.Action,
		EntityKind: e.EntityKind,
		EntityID:   e.EntityID,
		OccurredAt: e.OccurredAt,
	}
}
