package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"veridor-server/internal/governance/usecases"
	"veridor-server/internal/infra/httpserver"
	shareddomain "veridor-server/internal/shared_kernel/domain"
	"veridor-server/internal/shared_kernel/querydsl"
)

const (
	tenantRequiredErrMessage = "tenant id is required"
	searchErrMessage         = "failed to execute search"
	engineUnavailableMessage = "search engine not available"
)

func NewSearchController(service usecases.SearchService) *SearchController {
	return &SearchController{
		service: service,
	}
}

var _ httpserver.Controller = &SearchController{}

type SearchController struct {
	service usecases.SearchService
}

func (c *SearchController) AddRoutes(router *http.ServeMux) {
	router.Handle("GET /v1/policies", c.search("policy"))
	router.Handle("GET /v1/risks", c.search("risk"))
	router.Handle("GET /v1/incidents", c.search("incident"))
	router.Handle("GET /v1/changes", c.search("change"))
}

func (c *SearchController) search(entityKind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := httpserver.GetTenantID(r)
		if tenantID == "" {
			http.Error(w, tenantRequiredErrMessage, http.StatusBadRequest)
			return
		}

		query, err := extractSearchQuery(r)
		if err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		result, err := c.service.Search(r.Context(), shareddomain.ID(tenantID), entityKind, query)
		if errors.Is(err, usecases.ErrUnknownEntity) {
			httpserver.ReplyWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errors.Is(err, usecases.ErrSearchEngineNotImplemented) {
			http.Error(w, engineUnavailableMessage, http.StatusNotImplemented)
			return
		}
		if errors.Is(err, querydsl.ErrUnknownOperator) ||
			errors.Is(err, querydsl.ErrInvalidOperatorArguments) ||
			errors.Is(err, querydsl.ErrInvalidFilter) {
			httpserver.ReplyWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err != nil {
			slog.Error("searching",
				slog.String("entity", entityKind),
				slog.String("error", err.Error()))
			http.Error(w, searchErrMessage, http.StatusInternalServerError)
			return
		}

		params := httpserver.PaginationParams{Page: result.Page, PageSize: result.PageSize}
		httpserver.ReplyWithPaginatedData(w, http.StatusOK, result.Items, result.Total, params)
	}
}

func extractSearchQuery(r *http.Request) (usecases.SearchQuery, error) {
	params := httpserver.ExtractPaginationParams(r)

	text := httpserver.GetQueryParam(r, "q")
	if text == "" {
		text = httpserver.GetQueryParam(r, "search")
	}
	if text == "" {
		text = httpserver.GetQueryParam(r, "query")
	}

	filter, err := querydsl.ParseFilter(httpserver.GetQueryParam(r, "filter"))
	if err != nil {
		return usecases.SearchQuery{}, err
	}

	sortBy := httpserver.GetQueryParam(r, "sort_by")
	if sortBy == "" {
		sortBy = httpserver.GetQueryParam(r, "sortBy")
	}
	if sortBy == "" {
		sortBy = httpserver.GetQueryParam(r, "sort")
	}

	sortOrder := httpserver.GetQueryParam(r, "sort_order")
	if sortOrder == "" {
		sortOrder = httpserver.GetQueryParam(r, "sortOrder")
	}

	return usecases.SearchQuery{
		Text:      text,
		Filter:    filter,
		Page:      params.Page,
		PageSize:  params.PageSize,
		SortBy:    sortBy,
		SortOrder: sortOrder,
	}, nil
}
