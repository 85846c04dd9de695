package internal

import (
	"time"

	"veridor-server/internal/records/domain"
)

type TableCreateRequest struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
}

type TableResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"display_name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToTableResponse(table domain.DynamicTable) TableResponse {
	return TableResponse{
		ID:          table.ID.String(),
		Name:        table.Name,
		DisplayName: table.DisplayName,
		Description: table.Description,
		CreatedAt:   table.CreatedAt,
		UpdatedAt:   table.UpdatedAt,
	}
}

type FieldCreateRequest struct {
	Name          string   `json:"name"`
	DisplayName   string   `json:"display_name"`
	Type          string   `json:"type"`
	Required      bool     `json:"required"`
	DefaultValue  *string  `json:"default_value,omitempty"`
	ChoiceOptions []string `json:"choice_options,omitempty"`
}

type FieldResponse struct {
	ID            string    `json:"id"`
	TableName     string    `json:"table_name"`
	Name          string    `json:"name"`
	DisplayName   string    `json:"display_name"`
	Type          string    `json:"type"`
	Required      bool      `json:"required"`
	Active        bool      `json:"active"`
	DefaultValue  *string   `json:"default_value,omitempty"`
	ChoiceOptions []string  `json:"choice_options,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func ToFieldResponse(field domain.FieldDefinition) FieldResponse {
	return FieldResponse{
		ID:            field.ID.String(),
		TableName:     field.TableName,
		Name:          field.Name,
		DisplayName:   field.DisplayName,
		Type:          string(field.Type),
		Required:      field.Required,
		Active:        field.Active,
		DefaultValue:  field.DefaultValue,
		ChoiceOptions: field.ChoiceOptions,
		CreatedAt:     field.CreatedAt,
		UpdatedAt:     field.UpdatedAt,
	}
}

type RecordResponse struct {
	ID        string         `json:"id"`
	TableName string         `json:"table_name"`
	Data      map[string]any `json:"data"`
	CreatedBy string         `json:"created_by"`
	UpdatedBy string         `json:"updated_by"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func ToRecordResponse(record domain.Record) RecordResponse {
	return RecordResponse{
		ID:        record.ID.String(),
		TableName: record.TableName,
		Data:      record.Data,
		CreatedBy: record.CreatedBy,
		UpdatedBy: record.UpdatedBy,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}
}
