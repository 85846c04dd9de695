package domain

import (
	"time"

	"veridor-server/internal/infra/utils"
	shareddomain "veridor-server/internal/shared_kernel/domain"
)

// Record is one row of a dynamic table. Records are never physically
// removed; deletion flips IsDeleted and every read path excludes
// deleted rows.
type Record struct {
	ID        shareddomain.ID
	TenantID  shareddomain.ID
	TableName string
	Data      map[string]any
	CreatedBy string
	UpdatedBy string
	IsDeleted bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r *Record) SoftDelete(deletedBy string) {
	r.IsDeleted = true
	r.UpdatedBy = deletedBy
	r.UpdatedAt = time.Now()
}

// MergedData overlays incoming keys on the existing data. Updates are
// validated against this merged view, never against the incoming
// payload alone.
func (r *Record) MergedData(incoming map[string]any) map[string]any {
	merged := make(map[string]any, len(r.Data)+len(incoming))
	for key, value := range r.Data {
		merged[key] = value
	}
	for key, value := range incoming {
		merged[key] = value
	}
	return merged
}

func NewRecordBuilder() *recordBuilder {
	return &recordBuilder{}
}

type recordBuilder struct {
	actions []recordHandler
}

type recordHandler func(r *Record) error

func (b *recordBuilder) WithTenant(tenantID shareddomain.ID) *recordBuilder {
	b.actions = append(b.actions, func(r *Record) error {
		r.TenantID = tenantID
		return nil
	})
	return b
}

func (b *recordBuilder) WithTable(tableName string) *recordBuilder {
	b.actions = append(b.actions, func(r *Record) error {
		r.TableName = tableName
		return nil
	})
	return b
}

func (b *recordBuilder) WithData(data map[string]any) *recordBuilder {
	b.actions = append(b.actions, func(r *Record) error {
		r.Data = data
		return nil
	})
	return b
}

func (b *recordBuilder) WithCreatedBy(userID string) *recordBuilder {
	b.actions = append(b.actions, func(r *Record) error {
		r.CreatedBy = userID
		r.UpdatedBy = userID
		return nil
	})
	return b
}

func (b *recordBuilder) Build() (Record, error) {
	now := time.Now()
	result := Record{
		ID:        shareddomain.ID(utils.GenerateUUID()),
		Data:      map[string]any{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	for _, action := range b.actions {
		if err := action(&result); err != nil {
			return Record{}, err
		}
	}

	return result, nil
}
