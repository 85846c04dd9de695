package domain

import (
	"fmt"
	"time"

	"veridor-server/internal/infra/utils"
	shareddomain "veridor-server/internal/shared_kernel/domain"
)

type FieldType string

const (
	FieldTypeString    FieldType = "STRING"
	FieldTypeText      FieldType = "TEXT"
	FieldTypeInteger   FieldType = "INTEGER"
	FieldTypeDecimal   FieldType = "DECIMAL"
	FieldTypeBoolean   FieldType = "BOOLEAN"
	FieldTypeDate      FieldType = "DATE"
	FieldTypeDatetime  FieldType = "DATETIME"
	FieldTypeChoice    FieldType = "CHOICE"
	FieldTypeReference FieldType = "REFERENCE"
)

var fieldTypes = map[FieldType]struct{}{
	FieldTypeString:    {},
	FieldTypeText:      {},
	FieldTypeInteger:   {},
	FieldTypeDecimal:   {},
	FieldTypeBoolean:   {},
	FieldTypeDate:      {},
	FieldTypeDatetime:  {},
	FieldTypeChoice:    {},
	FieldTypeReference: {},
}

func (t FieldType) IsValid() bool {
	_, ok := fieldTypes[t]
	return ok
}

// FieldDefinition describes one field of a dynamic table's schema.
// Field names are unique within a (tenant, table) schema.
type FieldDefinition struct {
	ID            shareddomain.ID
	TenantID      shareddomain.ID
	TableName     string
	Name          string
	DisplayName   string
	Type          FieldType
	Required      bool
	Active        bool
	DefaultValue  *string
	ChoiceOptions []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func NewFieldDefinitionBuilder() *fieldDefinitionBuilder {
	return &fieldDefinitionBuilder{}
}

type fieldDefinitionBuilder struct {
	actions []fieldDefinitionHandler
}

type fieldDefinitionHandler func(f *FieldDefinition) error

func (b *fieldDefinitionBuilder) WithTenant(tenantID shareddomain.ID) *fieldDefinitionBuilder {
	b.actions = append(b.actions, func(f *FieldDefinition) error {
		f.TenantID = tenantID
		return nil
	})
	return b
}

func (b *fieldDefinitionBuilder) WithTable(tableName string) *fieldDefinitionBuilder {
	b.actions = append(b.actions, func(f *FieldDefinition) error {
		f.TableName = tableName
		return nil
	})
	return b
}

func (b *fieldDefinitionBuilder) WithName(name string) *fieldDefinitionBuilder {
	b.actions = append(b.actions, func(f *FieldDefinition) error {
		if name == "" {
			return fmt.Errorf("field name is required")
		}
		f.Name = name
		return nil
	})
	return b
}

func (b *fieldDefinitionBuilder) WithDisplayName(displayName string) *fieldDefinitionBuilder {
	b.actions = append(b.actions, func(f *FieldDefinition) error {
		f.DisplayName = displayName
		return nil
	})
	return b
}

func (b *fieldDefinitionBuilder) WithType(fieldType FieldType) *fieldDefinitionBuilder {
	b.actions = append(b.actions, func(f *FieldDefinition) error {
		if !fieldType.IsValid() {
			return fmt.Errorf("invalid field type: %q", fieldType)
		}
		f.Type = fieldType
		return nil
	})
	return b
}

func (b *fieldDefinitionBuilder) WithRequired(required bool) *fieldDefinitionBuilder {
	b.actions = append(b.actions, func(f *FieldDefinition) error {
		f.Required = required
		return nil
	})
	return b
}

// WithDefaultValue normalizes an empty default to absent so persistence
// and the coercer see one representation.
func (b *fieldDefinitionBuilder) WithDefaultValue(defaultValue *string) *fieldDefinitionBuilder {
	b.actions = append(b.actions, func(f *FieldDefinition) error {
		if defaultValue != nil {
			f.DefaultValue = utils.StringPtr(*defaultValue)
		}
		return nil
	})
	return b
}

func (b *fieldDefinitionBuilder) WithChoiceOptions(options []string) *fieldDefinitionBuilder {
	b.actions = append(b.actions, func(f *FieldDefinition) error {
		f.ChoiceOptions = options
		return nil
	})
	return b
}

func (b *fieldDefinitionBuilder) Build() (FieldDefinition, error) {
	now := time.Now()
	result := FieldDefinition{
		ID:        shareddomain.ID(utils.GenerateUUID()),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	for _, action := range b.actions {
		if err := action(&result); err != nil {
			return FieldDefinition{}, err
		}
	}

	if result.Name == "" {
		return FieldDefinition{}, fmt.Errorf("field name is required")
	}
	if result.Type == "" {
		return FieldDefinition{}, fmt.Errorf("field type is required")
	}

	return result, nil
}
