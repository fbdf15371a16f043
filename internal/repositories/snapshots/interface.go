// Package snapshots implements the snapshot store: whole-application-state
// dumps keyed by their creation timestamp. Snapshots are immutable once
// written; same-millisecond saves are last-write-wins.
package snapshots

import (
	"context"

	"github.com/dmitrijs2005/studyos/internal/models"
)

type Repository interface {
	// Save writes a snapshot keyed by ts (epoch ms), replacing any snapshot
	// already stored under the same key.
	Save(ctx context.Context, ts int64, data string) error

	// List returns all snapshot timestamps, most recent first.
	List(ctx context.Context) ([]int64, error)

	// Get returns one snapshot, or nil when the timestamp is absent.
	Get(ctx context.Context, ts int64) (*models.Snapshot, error)

	// Delete removes one snapshot.
	Delete(ctx context.Context, ts int64) error
}
