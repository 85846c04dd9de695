package httpapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"veridor-server/internal/governance/httpapi"
	"veridor-server/internal/governance/usecases"
	"veridor-server/internal/infra/httpserver"
	shareddomain "veridor-server/internal/shared_kernel/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearchService struct {
	lastKind  string
	lastQuery usecases.SearchQuery
	result    usecases.SearchResult
	err       error
}

func (f *fakeSearchService) Search(_ context.Context, _ shareddomain.ID, entityKind string, query usecases.SearchQuery) (usecases.SearchResult, error) {
	f.lastKind = entityKind
	f.lastQuery = query
	if f.err != nil {
		return usecases.SearchResult{}, f.err
	}
	return f.result, nil
}

func newSearchRouter(service usecases.SearchService) *http.ServeMux {
	router := http.NewServeMux()
	httpapi.NewSearchController(service).AddRoutes(router)
	return router
}

func doSearch(t *testing.T, router *http.ServeMux, target string, tenant bool) *httptest.ResponseRecorder {
	t.Helper()

	request := httptest.NewRequest(http.MethodGet, target, nil)
	if tenant {
		request.Header.Set(httpserver.TenantIDHeader, "tenant-1")
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func TestSearchEndpointEnvelope(t *testing.T) {
	service := &fakeSearchService{
		result: usecases.SearchResult{
			Items:      []map[string]any{{"id": "a"}, {"id": "b"}},
			Total:      25,
			Page:       2,
			PageSize:   10,
			TotalPages: 3,
		},
	}
	router := newSearchRouter(service)

	recorder := doSearch(t, router, "/v1/policies?page=2&page_size=10&q=retention&sort_by=createdAt&sort_order=desc", true)
	require.Equal(t, http.StatusOK, recorder.Code)

	assert.Equal(t, "policy", service.lastKind)
	assert.Equal(t, "retention", service.lastQuery.Text)
	assert.Equal(t, "createdAt", service.lastQuery.SortBy)
	assert.Equal(t, "desc", service.lastQuery.SortOrder)
	assert.Equal(t, 2, service.lastQuery.Page)
	assert.Equal(t, 10, service.lastQuery.PageSize)

	var response struct {
		Items      []map[string]any `json:"items"`
		Total      int              `json:"total"`
		Page       int              `json:"page"`
		PageSize   int              `json:"pageSize"`
		TotalPages int              `json:"totalPages"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Len(t, response.Items, 2)
	assert.Equal(t, 25, response.Total)
	assert.Equal(t, 3, response.TotalPages)
}

func TestSearchEndpointRoutesPerEntity(t *testing.T) {
	tests := []struct {
		path string
		kind string
	}{
		{"/v1/policies", "policy"},
		{"/v1/risks", "risk"},
		{"/v1/incidents", "incident"},
		{"/v1/changes", "change"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			service := &fakeSearchService{}
			router := newSearchRouter(service)

			recorder := doSearch(t, router, tt.path, true)
			require.Equal(t, http.StatusOK, recorder.Code)
			assert.Equal(t, tt.kind, service.lastKind)
		})
	}
}

func TestSearchEndpointParsesFilter(t *testing.T) {
	service := &fakeSearchService{}
	router := newSearchRouter(service)

	filter := url.QueryEscape("severity:EQUALS:high,status:EQUALS:open")
	recorder := doSearch(t, router, "/v1/risks?filter="+filter, true)
	require.Equal(t, http.StatusOK, recorder.Code)

	require.Len(t, service.lastQuery.Filter.Conditions, 2)
	assert.Equal(t, "severity", service.lastQuery.Filter.Conditions[0].Field)
	assert.Equal(t, "open", service.lastQuery.Filter.Conditions[1].Value)
}

func TestSearchEndpointMalformedFilter(t *testing.T) {
	router := newSearchRouter(&fakeSearchService{})

	filter := url.QueryEscape(`{"conditions":`)
	recorder := doSearch(t, router, "/v1/policies?filter="+filter, true)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestSearchEndpointRequiresTenant(t *testing.T) {
	router := newSearchRouter(&fakeSearchService{})

	recorder := doSearch(t, router, "/v1/policies", false)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestSearchEndpointUnknownEntityMapsTo400(t *testing.T) {
	router := newSearchRouter(&fakeSearchService{err: usecases.ErrUnknownEntity})

	recorder := doSearch(t, router, "/v1/policies", true)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestSearchEndpointEngineNotImplementedMapsTo501(t *testing.T) {
	router := newSearchRouter(&fakeSearchService{err: usecases.ErrSearchEngineNotImplemented})

	recorder := doSearch(t, router, "/v1/policies", true)
	assert.Equal(t, http.StatusNotImplemented, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "search engine not available")
}
