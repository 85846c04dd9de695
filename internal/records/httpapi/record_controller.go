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
	"veridor-server/internal/shared_kernel/querydsl"
)

const (
	recordNotFoundErrMessage = "record not found"
	createRecordErrMessage   = "failed to create record"
	listRecordsErrMessage    = "failed to list records"
	updateRecordErrMessage   = "failed to update record"
	deleteRecordErrMessage   = "failed to delete record"
)

func NewRecordController(service usecases.RecordService) *RecordController {
	return &RecordController{
		service: service,
	}
}

var _ httpserver.Controller = &RecordController{}

type RecordController struct {
	service usecases.RecordService
}

func (c *RecordController) AddRoutes(router *http.ServeMux) {
	router.Handle("GET /v1/tables/{table}/records", c.listRecords())
	router.Handle("POST /v1/tables/{table}/records", c.createRecord())
	router.Handle("GET /v1/tables/{table}/records/{id}", c.getRecord())
	router.Handle("PUT /v1/tables/{table}/records/{id}", c.updateRecord())
	router.Handle("DELETE /v1/tables/{table}/records/{id}", c.deleteRecord())
}

func (c *RecordController) createRecord() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := httpserver.GetTenantID(r)
		if tenantID == "" {
			http.Error(w, tenantRequiredErrMessage, http.StatusBadRequest)
			return
		}

		tableName := r.PathValue("table")

		var body map[string]any
		err := httpserver.DecodeJSONBody(r, &body)
		if err != nil {
			slog.Error("decoding create record request", slog.String("error", err.Error()))
			http.Error(w, createRecordErrMessage, http.StatusBadRequest)
			return
		}

		record, err := c.service.CreateRecord(r.Context(), shareddomain.ID(tenantID), tableName, body, httpserver.GetUserID(r))
		if errors.Is(err, usecases.ErrTableNotFound) {
			http.Error(w, tableNotFoundErrMessage, http.StatusNotFound)
			return
		}
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			httpserver.ReplyWithError(w, http.StatusBadRequest, validationErr.Error())
			return
		}
		if err != nil {
			slog.Error("creating record", slog.String("error", err.Error()))
			http.Error(w, createRecordErrMessage, http.StatusInternalServerError)
			return
		}

		response := internal.ToRecordResponse(record)
		httpserver.ReplyJSONResponse(w, http.StatusCreated, response)
	}
}

func (c *RecordController) listRecords() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := httpserver.GetTenantID(r)
		if tenantID == "" {
			http.Error(w, tenantRequiredErrMessage, http.StatusBadRequest)
			return
		}

		tableName := r.PathValue("table")
		rawFilter := httpserver.GetQueryParam(r, "filter")

		params := httpserver.ExtractPaginationParams(r)
		pagination := usecases.Pagination{Limit: params.PageSize, Offset: params.Offset()}

		records, total, err := c.service.ListRecords(r.Context(), shareddomain.ID(tenantID), tableName, rawFilter, pagination)
		if errors.Is(err, usecases.ErrTableNotFound) {
			http.Error(w, tableNotFoundErrMessage, http.StatusNotFound)
			return
		}
		if errors.Is(err, querydsl.ErrInvalidFilter) ||
			errors.Is(err, querydsl.ErrUnknownOperator) ||
			errors.Is(err, querydsl.ErrInvalidOperatorArguments) {
			httpserver.ReplyWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err != nil {
			slog.Error("listing records", slog.String("error", err.Error()))
			http.Error(w, listRecordsErrMessage, http.StatusInternalServerError)
			return
		}

		responses := make([]internal.RecordResponse, len(records))
		for i, record := range records {
			responses[i] = internal.ToRecordResponse(record)
		}

		httpserver.ReplyWithPaginatedData(w, http.StatusOK, responses, total, params)
	}
}

func (c *RecordController) getRecord() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := httpserver.GetTenantID(r)
		if tenantID == "" {
			http.Error(w, tenantRequiredErrMessage, http.StatusBadRequest)
			return
		}

		tableName := r.PathValue("table")
		id := r.PathValue("id")

		record, err := c.service.GetRecord(r.Context(), shareddomain.ID(tenantID), tableName, shareddomain.ID(id))
		if errors.Is(err, usecases.ErrRecordNotFound) {
			http.Error(w, recordNotFoundErrMessage, http.StatusNotFound)
			return
		}
		if err != nil {
			slog.Error("getting record", slog.String("error", err.Error()))
			http.Error(w, "failed to get record", http.StatusInternalServerError)
			return
		}

		response := internal.ToRecordResponse(record)
		httpserver.ReplyJSONResponse(w, http.StatusOK, response)
	}
}

func (c *RecordController) updateRecord() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := httpserver.GetTenantID(r)
		if tenantID == "" {
			http.Error(w, tenantRequiredErrMessage, http.StatusBadRequest)
			return
		}

		tableName := r.PathValue("table")
		id := r.PathValue("id")

		var body map[string]any
		err := httpserver.DecodeJSONBody(r, &body)
		if err != nil {
			slog.Error("decoding update record request", slog.String("error", err.Error()))
			http.Error(w, updateRecordErrMessage, http.StatusBadRequest)
			return
		}

		record, err := c.service.UpdateRecord(r.Context(), shareddomain.ID(tenantID), tableName, shareddomain.ID(id), body, httpserver.GetUserID(r))
		if errors.Is(err, usecases.ErrRecordNotFound) {
			http.Error(w, recordNotFoundErrMessage, http.StatusNotFound)
			return
		}
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			httpserver.ReplyWithError(w, http.StatusBadRequest, validationErr.Error())
			return
		}
		if err != nil {
			slog.Error("updating record", slog.String("error", err.Error()))
			http.Error(w, updateRecordErrMessage, http.StatusInternalServerError)
			return
		}

		response := internal.ToRecordResponse(record)
		httpserver.ReplyJSONResponse(w, http.StatusOK, response)
	}
}

func (c *RecordController) deleteRecord() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := httpserver.GetTenantID(r)
		if tenantID == "" {
			http.Error(w, tenantRequiredErrMessage, http.StatusBadRequest)
			return
		}

		tableName := r.PathValue("table")
		id := r.PathValue("id")

		err := c.service.SoftDeleteRecord(r.Context(), shareddomain.ID(tenantID), tableName, shareddomain.ID(id), httpserver.GetUserID(r))
		if errors.Is(err, usecases.ErrRecordNotFound) {
			http.Error(w, recordNotFoundErrMessage, http.StatusNotFound)
			return
		}
		if err != nil {
			slog.Error("soft deleting record", slog.String("error", err.Error()))
			http.Error(w, deleteRecordErrMessage, http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
