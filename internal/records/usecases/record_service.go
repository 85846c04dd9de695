package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"veridor-server/internal/records/domain"
	"veridor-server/internal/shared_kernel/audit"
	shareddomain "veridor-server/internal/shared_kernel/domain"
	"veridor-server/internal/shared_kernel/querydsl"
)

var ErrRecordNotFound = errors.New("record not found")

// Record filters match against the JSON data column, so field names
// reach the query as JSON path segments. The allow-list keeps user
// input down to bare identifiers.
var validFilterField = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

type RecordService interface {
	CreateRecord(ctx context.Context, tenantID shareddomain.ID, tableName string, data map[string]any, userID string) (domain.Record, error)
	GetRecord(ctx context.Context, tenantID shareddomain.ID, tableName string, id shareddomain.ID) (domain.Record, error)
	ListRecords(ctx context.Context, tenantID shareddomain.ID, tableName, rawFilter string, pagination Pagination) ([]domain.Record, int, error)
	UpdateRecord(ctx context.Context, tenantID shareddomain.ID, tableName string, id shareddomain.ID, data map[string]any, userID string) (domain.Record, error)
	SoftDeleteRecord(ctx context.Context, tenantID shareddomain.ID, tableName string, id shareddomain.ID, userID string) error
}

func NewRecordService(
	records RecordRepository,
	registry SchemaRegistry,
	auditRecorder audit.Recorder,
) *SimpleRecordService {
	return &SimpleRecordService{
		records:  records,
		registry: registry,
		audit:    auditRecorder,
	}
}

var _ RecordService = (*SimpleRecordService)(nil)

type SimpleRecordService struct {
	records  RecordRepository
	registry SchemaRegistry
	audit    audit.Recorder
}

func (s *SimpleRecordService) CreateRecord(ctx context.Context, tenantID shareddomain.ID, tableName string, data map[string]any, userID string) (domain.Record, error) {
	if err := s.registry.ValidateTableExists(ctx, tenantID, tableName); err != nil {
		return domain.Record{}, err
	}

	fields, err := s.registry.GetActiveFields(ctx, tenantID, tableName)
	if err != nil {
		return domain.Record{}, fmt.Errorf("loading schema: %w", err)
	}

	coerced, err := domain.ValidateRecordData(data, fields)
	if err != nil {
		return domain.Record{}, err
	}

	record, err := domain.NewRecordBuilder().
		WithTenant(tenantID).
		WithTable(tableName).
		WithData(coerced).
		WithCreatedBy(userID).
		Build()
	if err != nil {
		return domain.Record{}, fmt.Errorf("building record: %w", err)
	}

	err = s.records.Create(ctx, record)
	if err != nil {
		slog.Error("creating record", slog.String("error", err.Error()))
		return domain.Record{}, fmt.Errorf("creating record: %w", err)
	}

	s.recordAudit(ctx, record, userID, "record.created")

	slog.Info("record created successfully",
		slog.String("id", record.ID.String()),
		slog.String("table", tableName))

	return record, nil
}

func (s *SimpleRecordService) GetRecord(ctx context.Context, tenantID shareddomain.ID, tableName string, id shareddomain.ID) (domain.Record, error) {
	record, err := s.records.GetByID(ctx, tenantID, tableName, id)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return domain.Record{}, ErrRecordNotFound
		}
		return domain.Record{}, fmt.Errorf("getting record: %w", err)
	}

	return record, nil
}

func (s *SimpleRecordService) ListRecords(ctx context.Context, tenantID shareddomain.ID, tableName, rawFilter string, pagination Pagination) ([]domain.Record, int, error) {
	if err := s.registry.ValidateTableExists(ctx, tenantID, tableName); err != nil {
		return nil, 0, err
	}

	conditions, err := parseRecordFilter(rawFilter)
	if err != nil {
		return nil, 0, err
	}

	records, total, err := s.records.FindAll(ctx, tenantID, tableName, conditions, pagination)
	if err != nil {
		slog.Error("listing records", slog.String("error", err.Error()))
		return nil, 0, fmt.Errorf("listing records: %w", err)
	}

	return records, total, nil
}

func (s *SimpleRecordService) UpdateRecord(ctx context.Context, tenantID shareddomain.ID, tableName string, id shareddomain.ID, data map[string]any, userID string) (domain.Record, error) {
	record, err := s.records.GetByID(ctx, tenantID, tableName, id)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return domain.Record{}, ErrRecordNotFound
		}
		return domain.Record{}, fmt.Errorf("getting record: %w", err)
	}

	fields, err := s.registry.GetActiveFields(ctx, tenantID, tableName)
	if err != nil {
		return domain.Record{}, fmt.Errorf("loading schema: %w", err)
	}

	// Validate the merged view, never the incoming payload alone:
	// a partial update must not bypass required fields already set.
	coerced, err := domain.ValidateRecordData(record.MergedData(data), fields)
	if err != nil {
		return domain.Record{}, err
	}

	record.Data = coerced
	record.UpdatedBy = userID
	record.UpdatedAt = time.Now()

	err = s.records.Update(ctx, record)
	if err != nil {
		slog.Error("updating record", slog.String("error", err.Error()))
		return domain.Record{}, fmt.Errorf("updating record: %w", err)
	}

	s.recordAudit(ctx, record, userID, "record.updated")

	slog.Info("record updated successfully",
		slog.String("id", record.ID.String()),
		slog.String("table", tableName))

	return record, nil
}

func (s *SimpleRecordService) SoftDeleteRecord(ctx context.Context, tenantID shareddomain.ID, tableName string, id shareddomain.ID, userID string) error {
	record, err := s.records.GetByID(ctx, tenantID, tableName, id)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return ErrRecordNotFound
		}
		return fmt.Errorf("getting record: %w", err)
	}

	record.SoftDelete(userID)

	err = s.records.Update(ctx, record)
	if err != nil {
		slog.Error("soft deleting record", slog.String("error", err.Error()))
		return fmt.Errorf("soft deleting record: %w", err)
	}

	s.recordAudit(ctx, record, userID, "record.deleted")

	slog.Info("record soft deleted successfully", slog.String("id", id.String()))
	return nil
}

// parseRecordFilter accepts the simple comma-separated field:op:value
// form and enforces the field-name allow-list.
func parseRecordFilter(raw string) ([]querydsl.Condition, error) {
	group, err := querydsl.ParseFilter(raw)
	if err != nil {
		return nil, err
	}

	if len(group.Groups) > 0 {
		return nil, fmt.Errorf("%w: nested groups are not supported on record filters", querydsl.ErrInvalidFilter)
	}

	for _, condition := range group.Conditions {
		if !validFilterField.MatchString(condition.Field) {
			return nil, fmt.Errorf("%w: invalid field name %q", querydsl.ErrInvalidFilter, condition.Field)
		}
	}

	return group.Conditions, nil
}

func (s *SimpleRecordService) recordAudit(ctx context.Context, record domain.Record, userID, action string) {
	event := audit.Event{
		TenantID:   record.TenantID.String(),
		UserID:     userID,
		Action:     action,
		EntityKind: record.TableName,
		EntityID:   record.ID.String(),
	}

	if err := s.audit.Record(ctx, event); err != nil {
		slog.Warn("recording audit event",
			slog.String("action", action),
			slog.String("error", err.Error()))
	}
}
