package persistence

import (
	"context"

	"veridor-server/internal/governance/usecases"
	shareddomain "veridor-server/internal/shared_kernel/domain"
)

func NewOpenSearchBackend() *OpenSearchBackend {
	return &OpenSearchBackend{}
}

var _ usecases.SearchBackend = (*OpenSearchBackend)(nil)

// OpenSearchBackend is the configured-but-unbuilt alternate engine.
// Every call fails closed rather than silently falling back to the
// database, so a misconfigured deployment is loud.
type OpenSearchBackend struct{}

func (b *OpenSearchBackend) Search(context.Context, shareddomain.ID, usecases.EntityDescriptor, usecases.SearchQuery) ([]map[string]any, int, error) {
	return nil, 0, usecases.ErrSearchEngineNotImplemented
}
