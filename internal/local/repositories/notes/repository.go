// Package notes is the local note store: the on-device source of truth the
// sync engine reconciles against the cloud.
package notes

import (
	"context"

	"github.com/dmitrijs2005/toonsync/internal/models"
)

// Repository is the local note store. Every write that changes note content
// advances UpdatedAt; Put and ApplyRemote store the given note verbatim.
type Repository interface {
	List(ctx context.Context) ([]models.Note, error)
	Get(ctx context.Context, id string) (*models.Note, error)

	Create(ctx context.Context, n models.Note) (models.Note, error)
	Update(ctx context.Context, id string, patch models.NotePatch) (models.Note, error)
	SoftDelete(ctx context.Context, id string) (models.Note, error)
	Restore(ctx context.Context, id string) (models.Note, error)
	Purge(ctx context.Context, id string) error

	// Put replaces the stored note wholesale, timestamps included.
	Put(ctx context.Context, n models.Note) error

	// ApplyRemote stores incoming only if accept, called with the current
	// local note (nil when absent), returns true. The read and the write
	// happen in one transaction.
	ApplyRemote(ctx context.Context, incoming models.Note, accept func(local *models.Note) bool) (bool, error)
}
