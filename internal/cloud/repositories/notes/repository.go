// Package notes provides the PostgreSQL-backed cloud notes table.
package notes

import (
	"context"

	"github.com/dmitrijs2005/toonsync/internal/cloud"
)

// Repository is the cloud notes table, scoped by owning user.
type Repository interface {
	// Upsert inserts or replaces a row by id. It fails with
	// common.ErrOwnershipConflict when the id belongs to another user.
	Upsert(ctx context.Context, rec cloud.NoteRecord) error

	// SelectByUser returns every row owned by userID, newest first.
	SelectByUser(ctx context.Context, userID string) ([]cloud.NoteRecord, error)

	// GetByID returns one row or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*cloud.NoteRecord, error)

	// DeleteByID physically removes a row. Deleting a missing row is not an error.
	DeleteByID(ctx context.Context, id string) error
}
