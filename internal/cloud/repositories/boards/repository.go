// Package boards provides the PostgreSQL-backed cloud boards table.
package boards

import (
	"context"

	"github.com/dmitrijs2005/toonsync/internal/cloud"
)

type Repository interface {
	Upsert(ctx context.Context, rec cloud.BoardRecord) error
	SelectByUser(ctx context.Context, userID string) ([]cloud.BoardRecord, error)
	DeleteByID(ctx context.Context, id string) error
}
