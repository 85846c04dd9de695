package httpapi

import (
	"log/slog"
	"net/http"

	"veridor-server/internal/audittrail/httpapi/internal"
	"veridor-server/internal/audittrail/usecases"
	"veridor-server/internal/infra/httpserver"
	shareddomain "veridor-server/internal/shared_kernel/domain"
)

const (
	tenantRequiredErrMessage = "tenant id is required"
	listEventsErrMessage     = "failed to list audit events"
)

func NewTrailController(service usecases.TrailService) *TrailController {
	return &TrailController{
		service: service,
	}
}

var _ httpserver.Controller = &TrailController{}

type TrailController struct {
	service usecases.TrailService
}

func (c *TrailController) AddRoutes(router *http.ServeMux) {
	router.Handle("GET /v1/audit-events", c.listEvents())
}

func (c *TrailController) listEvents() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := httpserver.GetTenantID(r)
		if tenantID == "" {
			http.Error(w, tenantRequiredErrMessage, http.StatusBadRequest)
			return
		}

		params := httpserver.ExtractPaginationParams(r)
		pagination := usecases.Pagination{Limit: params.PageSize, Offset: params.Offset()}

		events, total, err := c.service.ListEvents(r.Context(), shareddomain.ID(tenantID), pagination)
		if err != nil {
			slog.Error("listing audit events", slog.String("error", err.Error()))
			http.Error(w, listEventsErrMessage, http.StatusInternalServerError)
			return
		}

		responses := make([]internal.EventResponse, len(events))
		for i, event := range events {
			responses[i] = internal.ToEventResponse(event)
		}

		httpserver.ReplyWithPaginatedData(w, http.StatusOK, responses, total, params)
	}
}
