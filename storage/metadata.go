package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/mediavault/mediavault/tool"
)

// MetadataRecorder is a write-only audit trail of uploads and folder
// creations in Postgres. It is never read back by any operation: recording
// failures are logged and never surfaced to the uploader. A nil recorder
// (no DSN configured) is valid and records nothing.
type MetadataRecorder struct {
	db *sql.DB
}

const createMediaTable = `
CREATE TABLE IF NOT EXISTS media (
	id SERIAL PRIMARY KEY,
	filename VARCHAR(255) NOT NULL,
	original_name VARCHAR(255) NOT NULL,
	file_path TEXT NOT NULL,
	mime_type VARCHAR(100),
	file_size BIGINT,
	folder_path TEXT DEFAULT '',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`

const createFoldersTable = `
CREATE TABLE IF NOT EXISTS folders (
	id SERIAL PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	path TEXT NOT NULL UNIQUE,
	parent_path TEXT DEFAULT '',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`

// NewMetadataRecorder connects to Postgres and ensures the tables exist.
// An empty DSN disables recording entirely.
func NewMetadataRecorder(dsn string) (*MetadataRecorder, error) {
	if dsn == "" {
		return nil, nil
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	for _, stmt := range []string{createMediaTable, createFoldersTable} {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("failed to create tables: %w", err)
		}
	}
	return &MetadataRecorder{db: db}, nil
}

// RecordUpload inserts one uploaded file's metadata. Best effort.
func (r *MetadataRecorder) RecordUpload(storedName, originalName, filePath, mimeType string, size int64, folderPath string) {
	if r == nil {
		return
	}
	_, err := r.db.Exec(
		`INSERT INTO media (filename, original_name, file_path, mime_type, file_size, folder_path)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		storedName, originalName, filePath, mimeType, size, folderPath,
	)
	if err != nil {
		tool.DefaultLogger.Warnf("Failed to record upload metadata for %s: %v", storedName, err)
	}
}

// RecordFolder inserts one created folder. Best effort, idempotent.
func (r *MetadataRecorder) RecordFolder(name, path, parentPath string) {
	if r == nil {
		return
	}
	_, err := r.db.Exec(
		`INSERT INTO folders (name, path, parent_path)
		 VALUES ($1, $2, $3) ON CONFLICT (path) DO NOTHING`,
		name, path, parentPath,
	)
	if err != nil {
		tool.DefaultLogger.Warnf("Failed to record folder metadata for %s: %v", path, err)
	}
}

// Close releases the database connection.
func (r *MetadataRecorder) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}
