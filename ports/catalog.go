package ports

import (
	"context"
	"time"

	"attrilens/domain/core"
)

// CatalogEntry records one successful dataset load.
type CatalogEntry struct {
	ID          core.DatasetID `json:"id" db:"id"`
	SourcePath  string         `json:"source_path" db:"source_path"`
	RecordCount int            `json:"record_count" db:"record_count"`
	FieldCount  int            `json:"field_count" db:"field_count"`
	Columns     []string       `json:"columns" db:"-"`
	LoadedAt    time.Time      `json:"loaded_at" db:"loaded_at"`
}

// CatalogRepository persists the history of loaded datasets so the shells
// can show what is being analyzed and when it was last (re)loaded.
type CatalogRepository interface {
	Record(ctx context.Context, entry *CatalogEntry) error
	GetCurrent(ctx context.Context) (*CatalogEntry, error)
	List(ctx context.Context, limit int) ([]*CatalogEntry, error)
}
