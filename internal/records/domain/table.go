package domain

import (
	"fmt"
	"time"

	"veridor-server/internal/infra/utils"
	shareddomain "veridor-server/internal/shared_kernel/domain"
)

// DynamicTable is an administrator-defined table whose schema lives in
// FieldDefinitions rather than in migrations.
type DynamicTable struct {
	ID          shareddomain.ID
	TenantID    shareddomain.ID
	Name        string
	DisplayName string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

func (t *DynamicTable) IsDeleted() bool {
	return t.DeletedAt != nil
}

func (t *DynamicTable) SoftDelete() {
	now := time.Now()
	t.DeletedAt = utils.TimePtr(now)
	t.UpdatedAt = now
}

func NewDynamicTableBuilder() *dynamicTableBuilder {
	return &dynamicTableBuilder{}
}

type dynamicTableBuilder struct {
	actions []dynamicTableHandler
}

type dynamicTableHandler func(t *DynamicTable) error

func (b *dynamicTableBuilder) WithTenant(tenantID shareddomain.ID) *dynamicTableBuilder {
	b.actions = append(b.actions, func(t *DynamicTable) error {
		t.TenantID = tenantID
		return nil
	})
	return b
}

func (b *dynamicTableBuilder) WithName(name string) *dynamicTableBuilder {
	b.actions = append(b.actions, func(t *DynamicTable) error {
		t.Name = name
		return nil
	})
	return b
}

func (b *dynamicTableBuilder) WithDisplayName(displayName string) *dynamicTableBuilder {
	b.actions = append(b.actions, func(t *DynamicTable) error {
		t.DisplayName = displayName
		return nil
	})
	return b
}

func (b *dynamicTableBuilder) WithDescription(description string) *dynamicTableBuilder {
	b.actions = append(b.actions, func(t *DynamicTable) error {
		t.Description = description
		return nil
	})
	return b
}

func (b *dynamicTableBuilder) Build() (DynamicTable, error) {
	now := time.Now()
	result := DynamicTable{
		ID:        shareddomain.ID(utils.GenerateUUID()),
		CreatedAt: now,
		UpdatedAt: now,
	}

	for _, action := range b.actions {
		if err := action(&result); err != nil {
			return DynamicTable{}, err
		}
	}

	if result.Name == "" {
		return DynamicTable{}, fmt.Errorf("table name is required")
	}

	return result, nil
}
