// Package labels is the local label store.
package labels

import (
	"context"

	"github.com/dmitrijs2005/toonsync/internal/models"
)

type Repository interface {
	List(ctx context.Context) ([]models.Label, error)
	Get(ctx context.Context, id string) (*models.Label, error)
	Create(ctx context.Context, l models.Label) (models.Label, error)
	// Touch records a use of the label. LastUsedAt is the label's sync timestamp.
	Touch(ctx context.Context, id string) (models.Label, error)
	Rename(ctx context.Context, id, name string) (models.Label, error)
	Put(ctx context.Context, l models.Label) error
	Delete(ctx context.Context, id string) error
}
