package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"attrilens/ports"

	"github.com/jmoiron/sqlx"
)

const schema = `CREATE TABLE IF NOT EXISTS dataset_loads (
	id           TEXT PRIMARY KEY,
	source_path  TEXT NOT NULL,
	record_count INTEGER NOT NULL,
	field_count  INTEGER NOT NULL,
	columns      TEXT NOT NULL,
	loaded_at    TIMESTAMP NOT NULL
)`

// catalogRepository implements the CatalogRepository interface over sqlite
type catalogRepository struct {
	db *sqlx.DB
}

// NewCatalogRepository creates the repository and ensures its schema exists.
func NewCatalogRepository(db *sqlx.DB) (ports.CatalogRepository, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create dataset_loads table: %w", err)
	}
	return &catalogRepository{db: db}, nil
}

// Record inserts one load event.
func (r *catalogRepository) Record(ctx context.Context, entry *ports.CatalogEntry) error {
	columnsJSON, err := json.Marshal(entry.Columns)
	if err != nil {
		return fmt.Errorf("failed to marshal columns: %w", err)
	}

	query := `INSERT INTO dataset_loads (
		id, source_path, record_count, field_count, columns, loaded_at
	) VALUES (?, ?, ?, ?, ?, ?)`

	_, err = r.db.ExecContext(ctx, query,
		entry.ID, entry.SourcePath, entry.RecordCount, entry.FieldCount,
		string(columnsJSON), entry.LoadedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record dataset load: %w", err)
	}
	return nil
}

// GetCurrent returns the most recent load, or nil when nothing was loaded yet.
func (r *catalogRepository) GetCurrent(ctx context.Context) (*ports.CatalogEntry, error) {
	query := `SELECT id, source_path, record_count, field_count, columns, loaded_at
	FROM dataset_loads ORDER BY loaded_at DESC, id DESC LIMIT 1`

	entry, err := r.scanEntry(r.db.QueryRowxContext(ctx, query))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get current dataset: %w", err)
	}
	return entry, nil
}

// List returns the most recent load events, newest first.
func (r *catalogRepository) List(ctx context.Context, limit int) ([]*ports.CatalogEntry, error) {
	query := `SELECT id, source_path, record_count, field_count, columns, loaded_at
	FROM dataset_loads ORDER BY loaded_at DESC, id DESC LIMIT ?`

	rows, err := r.db.QueryxContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list dataset loads: %w", err)
	}
	defer rows.Close()

	var entries []*ports.CatalogEntry
	for rows.Next() {
		entry, err := r.scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan dataset load: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *catalogRepository) scanEntry(row rowScanner) (*ports.CatalogEntry, error) {
	var entry ports.CatalogEntry
	var columnsJSON string

	err := row.Scan(&entry.ID, &entry.SourcePath, &entry.RecordCount,
		&entry.FieldCount, &columnsJSON, &entry.LoadedAt)
	if err != nil {
		return nil, err
	}

	if columnsJSON != "" {
		if err := json.Unmarshal([]byte(columnsJSON), &entry.Columns); err != nil {
			return nil, fmt.Errorf("failed to unmarshal columns: %w", err)
		}
	}
	return &entry, nil
}
