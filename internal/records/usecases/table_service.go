package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"veridor-server/internal/records/domain"
	"veridor-server/internal/shared_kernel/audit"
	shareddomain "veridor-server/internal/shared_kernel/domain"
)

var (
	ErrTableNotFound   = errors.New("table not found")
	ErrTableDuplicated = errors.New("table already exists")
	ErrFieldDuplicated = errors.New("field already exists")
	ErrFieldNotFound   = errors.New("field not found")
)

type TableService interface {
	CreateTable(ctx context.Context, table domain.DynamicTable, createdBy string) error
	ListTables(ctx context.Context, tenantID shareddomain.ID, pagination Pagination) ([]domain.DynamicTable, int, error)
	CreateField(ctx context.Context, field domain.FieldDefinition, createdBy string) error
	ListFields(ctx context.Context, tenantID shareddomain.ID, tableName string) ([]domain.FieldDefinition, error)
}

func NewTableService(
	tables TableRepository,
	fields FieldDefinitionRepository,
	registry SchemaRegistry,
	auditRecorder audit.Recorder,
) *SimpleTableService {
	return &SimpleTableService{
		tables:   tables,
		fields:   fields,
		registry: registry,
		audit:    auditRecorder,
	}
}

var _ TableService = (*SimpleTableService)(nil)

type SimpleTableService struct {
	tables   TableRepository
	fields   FieldDefinitionRepository
	registry SchemaRegistry
	audit    audit.Recorder
}

func (s *SimpleTableService) CreateTable(ctx context.Context, table domain.DynamicTable, createdBy string) error {
	existing, err := s.tables.GetByName(ctx, table.TenantID, table.Name)
	if err != nil && !errors.Is(err, ErrTableNotFound) {
		return fmt.Errorf("checking existing table: %w", err)
	}

	if existing.ID != "" {
		slog.Warn("table already exists",
			slog.String("tenant_id", table.TenantID.String()),
			slog.String("name", table.Name))
		return ErrTableDuplicated
	}

	err = s.tables.Create(ctx, table)
	if err != nil {
		slog.Error("creating table", slog.String("error", err.Error()))
		return fmt.Errorf("creating table: %w", err)
	}

	s.recordAudit(ctx, table.TenantID, createdBy, "table.created", table.ID)

	slog.Info("table created successfully",
		slog.String("id", table.ID.String()),
		slog.String("name", table.Name))

	return nil
}

func (s *SimpleTableService) ListTables(ctx context.Context, tenantID shareddomain.ID, pagination Pagination) ([]domain.DynamicTable, int, error) {
	tables, total, err := s.tables.FindAll(ctx, tenantID, pagination)
	if err != nil {
		slog.Error("listing tables", slog.String("error", err.Error()))
		return nil, 0, fmt.Errorf("listing tables: %w", err)
	}

	return tables, total, nil
}

func (s *SimpleTableService) CreateField(ctx context.Context, field domain.FieldDefinition, createdBy string) error {
	_, err := s.tables.GetByName(ctx, field.TenantID, field.TableName)
	if errors.Is(err, ErrTableNotFound) {
		return ErrTableNotFound
	}
	if err != nil {
		return fmt.Errorf("checking table: %w", err)
	}

	existing, err := s.fields.GetByName(ctx, field.TenantID, field.TableName, field.Name)
	if err != nil && !errors.Is(err, ErrFieldNotFound) {
		return fmt.Errorf("checking existing field: %w", err)
	}

	if existing.ID != "" {
		slog.Warn("field already exists",
			slog.String("table", field.TableName),
			slog.String("name", field.Name))
		return ErrFieldDuplicated
	}

	err = s.fields.Create(ctx, field)
	if err != nil {
		slog.Error("creating field", slog.String("error", err.Error()))
		return fmt.Errorf("creating field: %w", err)
	}

	s.registry.Invalidate(ctx, field.TenantID, field.TableName)
	s.recordAudit(ctx, field.TenantID, createdBy, "field.created", field.ID)

	slog.Info("field created successfully",
		slog.String("id", field.ID.String()),
		slog.String("table", field.TableName),
		slog.String("name", field.Name))

	return nil
}

func (s *SimpleTableService) ListFields(ctx context.Context, tenantID shareddomain.ID, tableName string) ([]domain.FieldDefinition, error) {
	_, err := s.tables.GetByName(ctx, tenantID, tableName)
	if errors.Is(err, ErrTableNotFound) {
		return nil, ErrTableNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("checking table: %w", err)
	}

	fields, err := s.fields.FindAll(ctx, tenantID, tableName)
	if err != nil {
		slog.Error("listing fields", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing fields: %w", err)
	}

	return fields, nil
}

// Audit failures never fail the write they describe.
func (s *SimpleTableService) recordAudit(ctx context.Context, tenantID shareddomain.ID, userID, action string, entityID shareddomain.ID) {
	event := audit.Event{
		TenantID:   tenantID.String(),
		UserID:     userID,
		Action:     action,
		EntityKind: "table_schema",
		EntityID:   entityID.String(),
	}

	if err := s.audit.Record(ctx, event); err != nil {
		slog.Warn("recording audit event",
			slog.String("action", action),
			slog.String("error", err.Error()))
	}
}
