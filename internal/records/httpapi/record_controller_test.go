package httpapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"veridor-server/internal/infra/httpserver"
	"veridor-server/internal/records/domain"
	"veridor-server/internal/records/httpapi"
	"veridor-server/internal/records/usecases"
	shareddomain "veridor-server/internal/shared_kernel/domain"
	"veridor-server/internal/shared_kernel/querydsl"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecordService struct {
	record     domain.Record
	records    []domain.Record
	total      int
	createErr  error
	getErr     error
	listErr    error
	updateErr  error
	deleteErr  error
	lastFilter string
}

func (f *fakeRecordService) CreateRecord(_ context.Context, tenantID shareddomain.ID, tableName string, _ map[string]any, _ string) (domain.Record, error) {
	if f.createErr != nil {
		return domain.Record{}, f.createErr
	}
	return f.record, nil
}

func (f *fakeRecordService) GetRecord(_ context.Context, _ shareddomain.ID, _ string, _ shareddomain.ID) (domain.Record, error) {
	if f.getErr != nil {
		return domain.Record{}, f.getErr
	}
	return f.record, nil
}

func (f *fakeRecordService) ListRecords(_ context.Context, _ shareddomain.ID, _ string, rawFilter string, _ usecases.Pagination) ([]domain.Record, int, error) {
	f.lastFilter = rawFilter
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	return f.records, f.total, nil
}

func (f *fakeRecordService) UpdateRecord(_ context.Context, _ shareddomain.ID, _ string, _ shareddomain.ID, _ map[string]any, _ string) (domain.Record, error) {
	if f.updateErr != nil {
		return domain.Record{}, f.updateErr
	}
	return f.record, nil
}

func (f *fakeRecordService) SoftDeleteRecord(_ context.Context, _ shareddomain.ID, _ string, _ shareddomain.ID, _ string) error {
	return f.deleteErr
}

func newRecordRouter(service usecases.RecordService) *http.ServeMux {
	router := http.NewServeMux()
	httpapi.NewRecordController(service).AddRoutes(router)
	return router
}

func doRequest(t *testing.T, router *http.ServeMux, method, target, body string, tenant bool) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}

	request := httptest.NewRequest(method, target, reader)
	if tenant {
		request.Header.Set(httpserver.TenantIDHeader, "tenant-1")
		request.Header.Set(httpserver.UserIDHeader, "user-1")
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func TestCreateRecordEndpoint(t *testing.T) {
	record, err := domain.NewRecordBuilder().
		WithTenant("tenant-1").
		WithTable("employees").
		WithData(map[string]any{"name": "Ada"}).
		WithCreatedBy("user-1").
		Build()
	require.NoError(t, err)

	router := newRecordRouter(&fakeRecordService{record: record})

	recorder := doRequest(t, router, http.MethodPost, "/v1/tables/employees/records", `{"name":"Ada"}`, true)
	assert.Equal(t, http.StatusCreated, recorder.Code)

	var response map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, record.ID.String(), response["id"])
}

func TestCreateRecordEndpointRequiresTenant(t *testing.T) {
	router := newRecordRouter(&fakeRecordService{})

	recorder := doRequest(t, router, http.MethodPost, "/v1/tables/employees/records", `{"name":"Ada"}`, false)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestCreateRecordEndpointValidationFailure(t *testing.T) {
	service := &fakeRecordService{
		createErr: &domain.ValidationError{Violations: []string{"field \"name\" is required"}},
	}
	router := newRecordRouter(service)

	recorder := doRequest(t, router, http.MethodPost, "/v1/tables/employees/records", `{}`, true)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "name")
}

func TestCreateRecordEndpointUnknownTable(t *testing.T) {
	router := newRecordRouter(&fakeRecordService{createErr: usecases.ErrTableNotFound})

	recorder := doRequest(t, router, http.MethodPost, "/v1/tables/missing/records", `{}`, true)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestListRecordsEndpointEnvelope(t *testing.T) {
	record, err := domain.NewRecordBuilder().
		WithTenant("tenant-1").
		WithTable("employees").
		WithData(map[string]any{"name": "Ada"}).
		Build()
	require.NoError(t, err)

	service := &fakeRecordService{records: []domain.Record{record}, total: 42}
	router := newRecordRouter(service)

	recorder := doRequest(t, router, http.MethodGet,
		"/v1/tables/employees/records?page=2&page_size=10&filter=department:EQUALS:eng", "", true)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "department:EQUALS:eng", service.lastFilter)

	var response struct {
		Items      []map[string]any `json:"items"`
		Total      int              `json:"total"`
		Page       int              `json:"page"`
		PageSize   int              `json:"pageSize"`
		TotalPages int              `json:"totalPages"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Len(t, response.Items, 1)
	assert.Equal(t, 42, response.Total)
	assert.Equal(t, 2, response.Page)
	assert.Equal(t, 10, response.PageSize)
	assert.Equal(t, 5, response.TotalPages)
}

func TestListRecordsEndpointInvalidFilter(t *testing.T) {
	router := newRecordRouter(&fakeRecordService{listErr: querydsl.ErrInvalidFilter})

	recorder := doRequest(t, router, http.MethodGet, "/v1/tables/employees/records?filter=broken", "", true)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestDeleteRecordEndpoint(t *testing.T) {
	router := newRecordRouter(&fakeRecordService{})

	recorder := doRequest(t, router, http.MethodDelete, "/v1/tables/employees/records/record-1", "", true)
	assert.Equal(t, http.StatusNoContent, recorder.Code)
}

func TestDeleteRecordEndpointNotFound(t *testing.T) {
	router := newRecordRouter(&fakeRecordService{deleteErr: usecases.ErrRecordNotFound})

	recorder := doRequest(t, router, http.MethodDelete, "/v1/tables/employees/records/missing", "", true)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
