package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"veridor-server/internal/governance/domain"
	"veridor-server/internal/governance/httpapi/internal"
	"veridor-server/internal/governance/usecases"
	"veridor-server/internal/infra/httpserver"
	shareddomain "veridor-server/internal/shared_kernel/domain"
)

const (
	policyNotFoundErrMessage = "policy not found"
	createPolicyErrMessage   = "failed to create policy"
	updatePolicyErrMessage   = "failed to update policy"
	deletePolicyErrMessage   = "failed to delete policy"
	getPolicyErrMessage      = "failed to get policy"
)

func NewPolicyController(service usecases.PolicyService) *PolicyController {
	return &PolicyController{
		service: service,
	}
}

var _ httpserver.Controller = &PolicyController{}

type PolicyController struct {
	service usecases.PolicyService
}

func (c *PolicyController) AddRoutes(router *http.ServeMux) {
	router.Handle("POST /v1/policies", c.createPolicy())
	router.Handle("GET /v1/policies/{id}", c.getPolicy())
	router.Handle("PUT /v1/policies/{id}", c.updatePolicy())
	router.Handle("DELETE /v1/policies/{id}", c.softDeletePolicy())
}

func (c *PolicyController) createPolicy() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := httpserver.GetTenantID(r)
		if tenantID == "" {
			http.Error(w, tenantRequiredErrMessage, http.StatusBadRequest)
			return
		}

		var body internal.PolicyCreateRequest
		err := httpserver.DecodeJSONBody(r, &body)
		if err != nil {
			slog.Error("decoding create policy request", slog.String("error", err.Error()))
			http.Error(w, createPolicyErrMessage, http.StatusBadRequest)
			return
		}

		policy, err := domain.NewPolicyBuilder().
			WithTenant(shareddomain.ID(tenantID)).
			WithTitle(body.Title).
			WithDescription(body.Description).
			WithCategory(body.Category).
			WithOwner(body.OwnerID).
			Build()
		if err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		err = c.service.CreatePolicy(r.Context(), policy, httpserver.GetUserID(r))
		if err != nil {
			slog.Error("creating policy", slog.String("error", err.Error()))
			http.Error(w, createPolicyErrMessage, http.StatusInternalServerError)
			return
		}

		response := internal.ToPolicyResponse(policy)
		httpserver.ReplyJSONResponse(w, http.StatusCreated, response)
	}
}

func (c *PolicyController) getPolicy() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := httpserver.GetTenantID(r)
		if tenantID == "" {
			http.Error(w, tenantRequiredErrMessage, http.StatusBadRequest)
			return
		}

		id := r.PathValue("id")

		policy, err := c.service.GetPolicy(r.Context(), shareddomain.ID(tenantID), shareddomain.ID(id))
		if errors.Is(err, usecases.ErrPolicyNotFound) {
			http.Error(w, policyNotFoundErrMessage, http.StatusNotFound)
			return
		}
		if err != nil {
			slog.Error("getting policy", slog.String("error", err.Error()))
			http.Error(w, getPolicyErrMessage, http.StatusInternalServerError)
			return
		}

		response := internal.ToPolicyResponse(policy)
		httpserver.ReplyJSONResponse(w, http.StatusOK, response)
	}
}

func (c *PolicyController) updatePolicy() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := httpserver.GetTenantID(r)
		if tenantID == "" {
			http.Error(w, tenantRequiredErrMessage, http.StatusBadRequest)
			return
		}

		id := r.PathValue("id")

		var body internal.PolicyUpdateRequest
		err := httpserver.DecodeJSONBody(r, &body)
		if err != nil {
			slog.Error("decoding update policy request", slog.String("error", err.Error()))
			http.Error(w, updatePolicyErrMessage, http.StatusBadRequest)
			return
		}

		policy := domain.Policy{
			ID:          shareddomain.ID(id),
			TenantID:    shareddomain.ID(tenantID),
			Title:       body.Title,
			Description: body.Description,
			Category:    body.Category,
			Status:      domain.PolicyStatus(body.Status),
		}

		updated, err := c.service.UpdatePolicy(r.Context(), policy, httpserver.GetUserID(r))
		if errors.Is(err, usecases.ErrPolicyNotFound) {
			http.Error(w, policyNotFoundErrMessage, http.StatusNotFound)
			return
		}
		if err != nil {
			slog.Error("updating policy", slog.String("error", err.Error()))
			http.Error(w, updatePolicyErrMessage, http.StatusInternalServerError)
			return
		}

		response := internal.ToPolicyResponse(updated)
		httpserver.ReplyJSONResponse(w, http.StatusOK, response)
	}
}

func (c *PolicyController) softDeletePolicy() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := httpserver.GetTenantID(r)
		if tenantID == "" {
			http.Error(w, tenantRequiredErrMessage, http.StatusBadRequest)
			return
		}

		id := r.PathValue("id")

		err := c.service.SoftDeletePolicy(r.Context(), shareddomain.ID(tenantID), shareddomain.ID(id), httpserver.GetUserID(r))
		if errors.Is(err, usecases.ErrPolicyNotFound) {
			http.Error(w, policyNotFoundErrMessage, http.StatusNotFound)
			return
		}
		if err != nil {
			slog.Error("soft deleting policy", slog.String("error", err.Error()))
			http.Error(w, deletePolicyErrMessage, http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
