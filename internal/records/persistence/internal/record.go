package internal

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"veridor-server/internal/records/domain"
	shareddomain "veridor-server/internal/shared_kernel/domain"
)

type DynamicRecord struct {
	ID        string         `json:"id" gorm:"primaryKey"`
	TenantID  string         `json:"tenant_id" gorm:"index:idx_dynamic_records_tenant_table;not null"`
	Table     string         `json:"table_name" gorm:"column:table_name;index:idx_dynamic_records_tenant_table;not null"`
	Data      datatypes.JSON `json:"data"`
	CreatedBy string         `json:"created_by"`
	UpdatedBy string         `json:"updated_by"`
	IsDeleted bool           `json:"is_deleted" gorm:"default:false"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (DynamicRecord) TableName() string {
	return "dynamic_records"
}

func (r DynamicRecord) ToDomain() domain.Record {
	data := map[string]any{}
	if len(r.Data) > 0 {
		_ = json.Unmarshal(r.Data, &data)
	}

	return domain.Record{
		ID:        shareddomain.ID(r.ID),
		TenantID:  shareddomain.ID(r.TenantID),
		TableName: r.Table,
		Data:      data,
		CreatedBy: r.CreatedBy,
		UpdatedBy: r.UpdatedBy,
		IsDeleted: r.IsDeleted,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func FromRecord(value domain.Record) (DynamicRecord, error) {
	data, err := json.Marshal(value.Data)
	if err != nil {
		return DynamicRecord{}, err
	}

	return DynamicRecord{
		ID:        value.ID.String(),
		TenantID:  value.TenantID.String(),
		Table:     value.TableName,
		Data:      datatypes.JSON(data),
		CreatedBy: value.CreatedBy,
		UpdatedBy: value.UpdatedBy,
		IsDeleted: value.IsDeleted,
		CreatedAt: value.CreatedAt,
		UpdatedAt: value.UpdatedAt,
	}, nil
}
