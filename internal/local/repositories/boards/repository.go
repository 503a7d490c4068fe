// Package boards is the local board store.
package boards

import (
	"context"

	"github.com/dmitrijs2005/toonsync/internal/models"
)

type Repository interface {
	List(ctx context.Context) ([]models.Board, error)
	Get(ctx context.Context, id string) (*models.Board, error)
	Create(ctx context.Context, b models.Board) (models.Board, error)
	Update(ctx context.Context, id string, patch Patch) (models.Board, error)
	Put(ctx context.Context, b models.Board) error
	Delete(ctx context.Context, id string) error
}

// Patch is a partial board update; nil fields are left untouched.
type Patch struct {
	Hashtag       *string
	CustomStyle   *[]byte
	BoardDesignID *string

	ClearBoardDesignID bool
}

func (p Patch) apply(b models.Board) models.Board {
	if p.Hashtag != nil {
		b.Hashtag = *p.Hashtag
	}
	if p.CustomStyle != nil {
		b.CustomStyle = append([]byte(nil), *p.CustomStyle...)
	}
	if p.BoardDesignID != nil {
		b.BoardDesignID = models.NonEmpty(p.BoardDesignID)
	}
	if p.ClearBoardDesignID {
		b.BoardDesignID = nil
	}
	return b
}
