package httpserver

import (
	"net/http"
	"strconv"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type PaginationParams struct {
	Page     int
	PageSize int
}

func DefaultPaginationParams() PaginationParams {
	return PaginationParams{Page: DefaultPage, PageSize: DefaultPageSize}
}

// ExtractPaginationParams reads `page` and `page_size` from the query
// string, falling back to defaults on anything missing or out of range.
func ExtractPaginationParams(r *http.Request) PaginationParams {
	params := DefaultPaginationParams()

	if raw := r.URL.Query().Get("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil && page > 0 {
			params.Page = page
		}
	}

	rawSize := r.URL.Query().Get("page_size")
	if rawSize == "" {
		rawSize = r.URL.Query().Get("pageSize")
	}
	if rawSize != "" {
		if size, err := strconv.Atoi(rawSize); err == nil && size > 0 && size <= MaxPageSize {
			params.PageSize = size
		}
	}

	return params
}

func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

type PaginatedResponse struct {
	Items      any `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

func NewPaginatedResponse(items any, total int, params PaginationParams) PaginatedResponse {
	totalPages := 0
	if params.PageSize > 0 {
		totalPages = (total + params.PageSize - 1) / params.PageSize
	}

	return PaginatedResponse{
		Items:      items,
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: totalPages,
	}
}

func ReplyWithPaginatedData(w http.ResponseWriter, statusCode int, items any, total int, params PaginationParams) {
	ReplyJSONResponse(w, statusCode, NewPaginatedResponse(items, total, params))
}
