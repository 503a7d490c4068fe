// Package labels provides the PostgreSQL-backed cloud labels table.
package labels

import (
	"context"

	"github.com/dmitrijs2005/toonsync/internal/cloud"
)

type Repository interface {
	Upsert(ctx context.Context, rec cloud.LabelRecord) error
	SelectByUser(ctx context.Context, userID string) ([]cloud.LabelRecord, error)
	DeleteByID(ctx context.Context, id string) error
}
