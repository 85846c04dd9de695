package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"veridor-server/internal/infra/httpserver"
	"veridor-server/internal/records/domain"
	"veridor-server/internal/records/httpapi/internal"
	"veridor-server/internal/records/usecases"
	shareddomain "veridor-server/internal/shared_kernel/domain"
)

const (
	tenantRequiredErrMessage  = "tenant id is required"
	tableNotFoundErrMessage   = "table not found"
	tableDuplicatedErrMessage = "table already exists"
	fieldDuplicatedErrMessage = "field already exists"
	createTableErrMessage     = "failed to create table"
	listTablesErrMessage      = "failed to list tables"
	createFieldErrMessage     = "failed to create field"
	listFieldsErrMessage      = "failed to list fields"
)

func NewTableController(service usecases.TableService) *TableController {
	return &TableController{
		service: service,
	}
}

var _ httpserver.Controller = &TableController{}

type TableController struct {
	service usecases.TableService
}

func (c *TableController) AddRoutes(router *http.ServeMux) {
	router.Handle("GET /v1/tables", c.listTables())
	router.Handle("POST /v1/tables", c.createTable())
	router.Handle("GET /v1/tables/{table}/fields", c.listFields())
	router.Handle("POST /v1/tables/{table}/fields", c.createField())
}

func (c *TableController) createTable() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := httpserver.GetTenantID(r)
		if tenantID == "" {
			http.Error(w, tenantRequiredErrMessage, http.StatusBadRequest)
			return
		}

		var body internal.TableCreateRequest
		err := httpserver.DecodeJSONBody(r, &body)
		if err != nil {
			slog.Error("decoding create table request", slog.String("error", err.Error()))
			http.Error(w, createTableErrMessage, http.StatusBadRequest)
			return
		}

		table, err := domain.NewDynamicTableBuilder().
			WithTenant(shareddomain.ID(tenantID)).
			WithName(body.Name).
			WithDisplayName(body.DisplayName).
			WithDescription(body.Description).
			Build()
		if err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		err = c.service.CreateTable(r.Context(), table, httpserver.GetUserID(r))
		if errors.Is(err, usecases.ErrTableDuplicated) {
			http.Error(w, tableDuplicatedErrMessage, http.StatusConflict)
			return
		}
		if err != nil {
			slog.Error("creating table", slog.String("error", err.Error()))
			http.Error(w, createTableErrMessage, http.StatusInternalServerError)
			return
		}

		response := internal.ToTableResponse(table)
		httpserver.ReplyJSONResponse(w, http.StatusCreated, response)
	}
}

func (c *TableController) listTables() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := httpserver.GetTenantID(r)
		if tenantID == "" {
			http.Error(w, tenantRequiredErrMessage, http.StatusBadRequest)
			return
		}

		params := httpserver.ExtractPaginationParams(r)
		pagination := usecases.Pagination{Limit: params.PageSize, Offset: params.Offset()}

		tables, total, err := c.service.ListTables(r.Context(), shareddomain.ID(tenantID), pagination)
		if err != nil {
			slog.Error("listing tables", slog.String("error", err.Error()))
			http.Error(w, listTablesErrMessage, http.StatusInternalServerError)
			return
		}

		responses := make([]internal.TableResponse, len(tables))
		for i, table := range tables {
			responses[i] = internal.ToTableResponse(table)
		}

		httpserver.ReplyWithPaginatedData(w, http.StatusOK, responses, total, params)
	}
}

func (c *TableController) createField() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := httpserver.GetTenantID(r)
		if tenantID == "" {
			http.Error(w, tenantRequiredErrMessage, http.StatusBadRequest)
			return
		}

		tableName := r.PathValue("table")

		var body internal.FieldCreateRequest
		err := httpserver.DecodeJSONBody(r, &body)
		if err != nil {
			slog.Error("decoding create field request", slog.String("error", err.Error()))
			http.Error(w, createFieldErrMessage, http.StatusBadRequest)
			return
		}

		field, err := domain.NewFieldDefinitionBuilder().
			WithTenant(shareddomain.ID(tenantID)).
			WithTable(tableName).
			WithName(body.Name).
			WithDisplayName(body.DisplayName).
			WithType(domain.FieldType(body.Type)).
			WithRequired(body.Required).
			WithDefaultValue(body.DefaultValue).
			WithChoiceOptions(body.ChoiceOptions).
			Build()
		if err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		err = c.service.CreateField(r.Context(), field, httpserver.GetUserID(r))
		if errors.Is(err, usecases.ErrTableNotFound) {
			http.Error(w, tableNotFoundErrMessage, http.StatusNotFound)
			return
		}
		if errors.Is(err, usecases.ErrFieldDuplicated) {
			http.Error(w, fieldDuplicatedErrMessage, http.StatusConflict)
			return
		}
		if err != nil {
			slog.Error("creating field", slog.String("error", err.Error()))
			http.Error(w, createFieldErrMessage, http.StatusInternalServerError)
			return
		}

		response := internal.ToFieldResponse(field)
		httpserver.ReplyJSONResponse(w, http.StatusCreated, response)
	}
}

func (c *TableController) listFields() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := httpserver.GetTenantID(r)
		if tenantID == "" {
			http.Error(w, tenantRequiredErrMessage, http.StatusBadRequest)
			return
		}

		tableName := r.PathValue("table")

		fields, err := c.service.ListFields(r.Context(), shareddomain.ID(tenantID), tableName)
		if errors.Is(err, usecases.ErrTableNotFound) {
			http.Error(w, tableNotFoundErrMessage, http.StatusNotFound)
			return
		}
		if err != nil {
			slog.Error("listing fields", slog.String("error", err.Error()))
			http.Error(w, listFieldsErrMessage, http.StatusInternalServerError)
			return
		}

		responses := make([]internal.FieldResponse, len(fields))
		for i, field := range fields {
			responses[i] = internal.ToFieldResponse(field)
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, responses)
	}
}
