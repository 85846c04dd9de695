package internal

import (
	"time"

	"veridor-server/internal/governance/domain"
)

type PolicyCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	OwnerID     string `json:"owner_id"`
}

type PolicyUpdateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Status      string `json:"status"`
}

type PolicyResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Category    string    `json:"category"`
	OwnerID     string    `json:"owner_id"`
	Version     int       `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToPolicyResponse(policy domain.Policy) PolicyResponse {
	return PolicyResponse{
		ID:          policy.ID.String(),
		Title:       policy.Title,
		Description: policy.Description,
		Status:      string(policy.Status),
		Category:    policy.Category,
		OwnerID:     policy.OwnerID,
		Version:     policy.Version,
		CreatedAt:   policy.CreatedAt,
		UpdatedAt:   policy.UpdatedAt,
	}
}
