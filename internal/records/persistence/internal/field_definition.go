package internal

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"veridor-server/internal/records/domain"
	shareddomain "veridor-server/internal/shared_kernel/domain"
)

type FieldDefinition struct {
	ID            string         `json:"id" gorm:"primaryKey"`
	TenantID      string         `json:"tenant_id" gorm:"uniqueIndex:idx_field_definitions_tenant_table_name;not null"`
	Table         string         `json:"table_name" gorm:"column:table_name;uniqueIndex:idx_field_definitions_tenant_table_name;not null"`
	Name          string         `json:"name" gorm:"uniqueIndex:idx_field_definitions_tenant_table_name;not null"`
	DisplayName   string         `json:"display_name"`
	Type          string         `json:"type" gorm:"not null"`
	IsRequired    bool           `json:"is_required" gorm:"default:false"`
	IsActive      bool           `json:"is_active" gorm:"default:true"`
	DefaultValue  *string        `json:"default_value,omitempty"`
	ChoiceOptions datatypes.JSON `json:"choice_options,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func (FieldDefinition) TableName() string {
	return "field_definitions"
}

func (f FieldDefinition) ToDomain() domain.FieldDefinition {
	var options []string
	if len(f.ChoiceOptions) > 0 {
		// Options were marshaled by FromFieldDefinition; a decode
		// failure here means corrupted storage, surfaced as no options.
		_ = json.Unmarshal(f.ChoiceOptions, &options)
	}

	return domain.FieldDefinition{
		ID:            shareddomain.ID(f.ID),
		TenantID:      shareddomain.ID(f.TenantID),
		TableName:     f.Table,
		Name:          f.Name,
		DisplayName:   f.DisplayName,
		Type:          domain.FieldType(f.Type),
		Required:      f.IsRequired,
		Active:        f.IsActive,
		DefaultValue:  f.DefaultValue,
		ChoiceOptions: options,
		CreatedAt:     f.CreatedAt,
		UpdatedAt:     f.UpdatedAt,
	}
}

func FromFieldDefinition(value domain.FieldDefinition) FieldDefinition {
	var options datatypes.JSON
	if len(value.ChoiceOptions) > 0 {
		data, err := json.Marshal(value.ChoiceOptions)
		if err == nil {
			options = datatypes.JSON(data)
		}
	}

	return FieldDefinition{
		ID:            value.ID.String(),
		TenantID:      value.TenantID.String(),
		Table:         value.TableName,
		Name:          value.Name,
		DisplayName:   value.DisplayName,
		Type:          string(value.Type),
		IsRequired:    value.Required,
		IsActive:      value.Active,
		DefaultValue:  value.DefaultValue,
		ChoiceOptions: options,
		CreatedAt:     value.CreatedAt,
		UpdatedAt:     value.UpdatedAt,
	}
}
