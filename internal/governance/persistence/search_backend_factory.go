package persistence

import (
	"fmt"
	"log/slog"

	"veridor-server/internal/governance/usecases"
	"veridor-server/internal/infra/sql"
)

const (
	SearchEngineDatabase   = "database"
	SearchEngineOpenSearch = "opensearch"
)

// NewSearchBackend selects the engine once at startup from config. An
// unrecognized engine is a configuration error, not a fallback.
func NewSearchBackend(engine string, orm sql.ORM) (usecases.SearchBackend, error) {
	switch engine {
	case SearchEngineOpenSearch:
		slog.Warn("opensearch engine selected but not implemented; searches will fail")
		return NewOpenSearchBackend(), nil
	case SearchEngineDatabase, "":
		return NewDatabaseSearchBackend(orm), nil
	default:
		return nil, fmt.Errorf("unknown search engine %q", engine)
	}
}
