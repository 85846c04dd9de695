package internal

import (
	"time"

	"veridor-server/internal/records/domain"
	shareddomain "veridor-server/internal/shared_kernel/domain"
)

type DynamicTable struct {
	ID          string     `json:"id" gorm:"primaryKey"`
	TenantID    string     `json:"tenant_id" gorm:"uniqueIndex:idx_dynamic_tables_tenant_name;not null"`
	Name        string     `json:"name" gorm:"uniqueIndex:idx_dynamic_tables_tenant_name;not null"`
	DisplayName string     `json:"display_name"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty" gorm:"index"`
}

func (DynamicTable) TableName() string {
	return "dynamic_tables"
}

func (t DynamicTable) ToDomain() domain.DynamicTable {
	return domain.DynamicTable{
		ID:          shareddomain.ID(t.ID),
		TenantID:    shareddomain.ID(t.TenantID),
		Name:        t.Name,
		DisplayName: t.DisplayName,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		DeletedAt:   t.DeletedAt,
	}
}

func FromDynamicTable(value domain.DynamicTable) DynamicTable {
	return DynamicTable{
		ID:          value.ID.String(),
		TenantID:    value.TenantID.String(),
		Name:        value.Name,
		DisplayName: value.DisplayName,
		Description: value.Description,
		CreatedAt:   value.CreatedAt,
		UpdatedAt:   value.UpdatedAt,
		DeletedAt:   value.DeletedAt,
	}
}
