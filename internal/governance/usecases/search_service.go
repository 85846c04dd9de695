package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"veridor-server/internal/infra/utils"
	shareddomain "veridor-server/internal/shared_kernel/domain"
	"veridor-server/internal/shared_kernel/querydsl"
)

var (
	ErrUnknownEntity              = errors.New("unknown entity kind")
	ErrSearchEngineNotImplemented = errors.New("search engine not implemented")
)

var validSortColumn = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// EntityDescriptor names a searchable entity kind: its table (which
// doubles as the predicate alias) and the fields free-text search
// matches by default.
type EntityDescriptor struct {
	Kind         string
	TableName    string
	SearchFields []string
}

var entityCatalog = map[string]EntityDescriptor{
	"policy": {
		Kind:         "policy",
		TableName:    "policies",
		SearchFields: []string{"title", "description", "category"},
	},
	"risk": {
		Kind:         "risk",
		TableName:    "risks",
		SearchFields: []string{"title", "description", "severity"},
	},
	"incident": {
		Kind:         "incident",
		TableName:    "incidents",
		SearchFields: []string{"title", "description", "severity"},
	},
	"change": {
		Kind:         "change",
		TableName:    "changes",
		SearchFields: []string{"title", "description", "status"},
	},
}

type SearchQuery struct {
	Text         string
	Filter       querydsl.Group
	SearchFields []string
	Page         int
	PageSize     int
	SortBy       string
	SortOrder    string
}

type SearchResult struct {
	Items      []map[string]any
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// SearchBackend executes one scoped search. The database
// implementation is the active engine; alternates that are configured
// but not built fail closed with ErrSearchEngineNotImplemented.
type SearchBackend interface {
	Search(ctx context.Context, tenantID shareddomain.ID, entity EntityDescriptor, query SearchQuery) ([]map[string]any, int, error)
}

type SearchService interface {
	Search(ctx context.Context, tenantID shareddomain.ID, entityKind string, query SearchQuery) (SearchResult, error)
}

func NewSearchService(backend SearchBackend) *SimpleSearchService {
	return &SimpleSearchService{
		backend: backend,
	}
}

var _ SearchService = (*SimpleSearchService)(nil)

type SimpleSearchService struct {
	backend SearchBackend
}

func (s *SimpleSearchService) Search(ctx context.Context, tenantID shareddomain.ID, entityKind string, query SearchQuery) (SearchResult, error) {
	entity, ok := entityCatalog[strings.ToLower(strings.TrimSpace(entityKind))]
	if !ok {
		return SearchResult{}, fmt.Errorf("%w: %q", ErrUnknownEntity, entityKind)
	}

	if query.Page < 1 {
		query.Page = 1
	}
	if query.PageSize < 1 {
		query.PageSize = 20
	}
	if len(query.SearchFields) == 0 {
		query.SearchFields = entity.SearchFields
	}

	sortColumn, err := resolveSortColumn(query.SortBy)
	if err != nil {
		return SearchResult{}, err
	}
	query.SortBy = sortColumn
	if !strings.EqualFold(query.SortOrder, "desc") {
		query.SortOrder = "ASC"
	} else {
		query.SortOrder = "DESC"
	}

	items, total, err := s.backend.Search(ctx, tenantID, entity, query)
	if err != nil {
		if errors.Is(err, ErrSearchEngineNotImplemented) {
			return SearchResult{}, err
		}
		slog.Error("executing search",
			slog.String("entity", entity.Kind),
			slog.String("error", err.Error()))
		return SearchResult{}, fmt.Errorf("executing search: %w", err)
	}

	totalPages := (total + query.PageSize - 1) / query.PageSize

	return SearchResult{
		Items:      items,
		Total:      total,
		Page:       query.Page,
		PageSize:   query.PageSize,
		TotalPages: totalPages,
	}, nil
}

// resolveSortColumn maps the client's camelCase sort key onto a bare
// snake_case identifier. Anything that is not a bare identifier after
// conversion is rejected; sort keys reach the query verbatim.
func resolveSortColumn(sortBy string) (string, error) {
	if sortBy == "" {
		return "created_at", nil
	}

	column := utils.ToSnakeCase(strings.TrimSpace(sortBy))
	if !validSortColumn.MatchString(column) {
		return "", fmt.Errorf("%w: invalid sort key %q", querydsl.ErrInvalidFilter, sortBy)
	}

	return column, nil
}
