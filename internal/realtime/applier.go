package realtime

import (
	"context"

	"github.com/dmitrijs2005/toonsync/internal/logging"
	"github.com/dmitrijs2005/toonsync/internal/models"
	"github.com/dmitrijs2005/toonsync/internal/resolver"
)

// LocalNotes is the part of the local note store StoreApplier writes to.
type LocalNotes interface {
	ApplyRemote(ctx context.Context, incoming models.Note, accept func(local *models.Note) bool) (bool, error)
	Purge(ctx context.Context, id string) error
}

// StoreApplier writes bridge events into the local store. An incoming note
// replaces the local one only when latest_wins would download it, so a late
// event never overwrites a newer local edit.
type StoreApplier struct {
	store LocalNotes
	log   logging.Logger
}

func NewStoreApplier(store LocalNotes, log logging.Logger) *StoreApplier {
	if log == nil {
		log = logging.Nop()
	}
	return &StoreApplier{store: store, log: log}
}

func (a *StoreApplier) OnUpdate(ctx context.Context, n models.Note) {
	applied, err := a.store.ApplyRemote(ctx, n, func(local *models.Note) bool {
		return resolver.ResolveNotes(local, &n, models.LatestWins) == resolver.Download
	})
	if err != nil {
		a.log.Warn(ctx, "realtime apply failed", "id", n.ID, "error", err)
		return
	}
	a.log.Debug(ctx, "realtime update", "id", n.ID, "applied", applied)
}

// OnDelete mirrors a cloud hard delete by purging the local note.
func (a *StoreApplier) OnDelete(ctx context.Context, id string) {
	if err := a.store.Purge(ctx, id); err != nil {
		a.log.Warn(ctx, "realtime purge failed", "id", id, "error", err)
		return
	}
	a.log.Debug(ctx, "realtime delete", "id", id)
}
