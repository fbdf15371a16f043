// Package files implements the blob store: binary payloads plus their
// metadata, kept in a single SQLite table. Bulk listing returns metadata
// only; payloads are materialized exclusively by point reads.
package files

import (
	"context"

	"github.com/dmitrijs2005/studyos/internal/models"
)

type Repository interface {
	// Add persists metadata and payload and returns the assigned id.
	Add(ctx context.Context, f *models.StoredFileData) (int64, error)

	// ListMetadata returns every record's metadata, newest first, without
	// payloads.
	ListMetadata(ctx context.Context) ([]models.StoredFile, error)

	// Get returns metadata plus payload, or nil when the id is absent.
	Get(ctx context.Context, id int64) (*models.StoredFileData, error)

	// UpdateMetadata merges non-nil patch fields into the record.
	// Returns common.ErrNotFound when the id is absent.
	UpdateMetadata(ctx context.Context, id int64, patch models.MetadataPatch) error

	// Delete removes the record. Returns common.ErrNotFound when absent.
	Delete(ctx context.Context, id int64) error
}
