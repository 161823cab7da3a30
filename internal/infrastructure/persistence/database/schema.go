package database

import (
	"database/sql"
	"fmt"
)

// TableCreator handles the creation of the component store schema.
type TableCreator struct{}

// NewTableCreator creates a new TableCreator.
func NewTableCreator() *TableCreator {
	return &TableCreator{}
}

// CreateSchema executes all necessary queries to build the tables and indexes.
// It is idempotent.
func (tc *TableCreator) CreateSchema(db *sql.DB) error {
	for _, tableSQL := range tables {
		if _, err := db.Exec(tableSQL); err != nil {
			return fmt.Errorf("failed to create table for query [%s]: %w", tableSQL, err)
		}
	}

	for _, indexSQL := range indexes {
		if _, err := db.Exec(indexSQL); err != nil {
			return fmt.Errorf("failed to create index for query [%s]: %w", indexSQL, err)
		}
	}
	return nil
}

var tables = []string{
	`CREATE TABLE IF NOT EXISTS components (id TEXT PRIMARY KEY, page_id TEXT NOT NULL DEFAULT '', position INTEGER NOT NULL DEFAULT 0, component_type TEXT NOT NULL, name TEXT NOT NULL, props_payload TEXT NOT NULL DEFAULT '{}', styles_payload TEXT NOT NULL DEFAULT '{}', responsive_payload TEXT NOT NULL DEFAULT '{}', css_classes TEXT NOT NULL DEFAULT '', custom_css TEXT NOT NULL DEFAULT '', html_id TEXT NOT NULL DEFAULT '', custom_attributes TEXT NOT NULL DEFAULT '', created TEXT NOT NULL, changed TEXT)`,
}

var indexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_components_page_id ON components(page_id, position)`,
}
