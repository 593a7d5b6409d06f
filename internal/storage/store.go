package storage

import (
	"context"

	"dbgdoc/internal/audit"
)

// Store persists the function catalog produced by an audit.
type Store interface {
	CatalogStore
	Close() error
}

// CatalogStore defines operations for persisting audited functions.
type CatalogStore interface {
	// SaveSnapshot replaces the whole catalog with records and findings.
	SaveSnapshot(ctx context.Context, records []audit.Record, findings []audit.Finding) error

	// GetFunction retrieves a record by its ID.
	GetFunction(ctx context.Context, id string) (*audit.Record, error)

	// FindFunctionsByFile retrieves all records belonging to a specific file.
	FindFunctionsByFile(ctx context.Context, filepath string) ([]*audit.Record, error)

	// ListFindings returns every stored finding, ordered by file and line.
	ListFindings(ctx context.Context) ([]audit.Finding, error)
}
