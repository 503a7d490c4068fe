// Package syncer reconciles the local stores with the cloud tables.
//
// A pass fetches the user's cloud rows once, reads the local records, and
// resolves every id seen on either side. Records are written one at a time;
// a failed write is recorded in the result and the pass moves on. Nothing
// in a pass returns an error to the caller: failures are reported through
// models.SyncResult.
package syncer

import (
	"context"

	"github.com/dmitrijs2005/toonsync/internal/common"
	"github.com/dmitrijs2005/toonsync/internal/cloud/repositories/boards"
	"github.com/dmitrijs2005/toonsync/internal/cloud/repositories/labels"
	"github.com/dmitrijs2005/toonsync/internal/cloud/repositories/notes"
	"github.com/dmitrijs2005/toonsync/internal/logging"
	"github.com/dmitrijs2005/toonsync/internal/models"
)

type Service interface {
	SyncNotes(ctx context.Context, userID string, opts Options) models.SyncResult
	SyncLabels(ctx context.Context, userID string, opts Options) models.SyncResult
	SyncBoards(ctx context.Context, userID string, opts Options) models.SyncResult
	// SyncAll runs notes, labels and boards in that order and merges the results.
	SyncAll(ctx context.Context, userID string, opts Options) models.SyncResult

	UploadNote(ctx context.Context, note models.Note, userID string) bool
	DeleteNoteFromCloud(ctx context.Context, id string) bool
	// FetchNotes returns the user's cloud notes, or the fetch error.
	FetchNotes(ctx context.Context, userID string) ([]models.Note, error)
	// FetchNotesFromCloud is FetchNotes with errors collapsed to an empty slice.
	FetchNotesFromCloud(ctx context.Context, userID string) []models.Note

	UploadLabel(ctx context.Context, label models.Label, userID string) bool
	DeleteLabelFromCloud(ctx context.Context, id string) bool
	UploadBoard(ctx context.Context, board models.Board, userID string) bool
	DeleteBoardFromCloud(ctx context.Context, id string) bool
}

// Options tunes one pass. The zero value uses latest_wins.
type Options struct {
	ConflictStrategy models.ConflictStrategy
}

func (o Options) strategy() models.ConflictStrategy {
	if o.ConflictStrategy == "" {
		return models.LatestWins
	}
	return o.ConflictStrategy
}

// NoteStore is the part of the local note store a pass needs. Downloads go
// through ApplyRemote so a note edited locally during the pass is kept.
type NoteStore interface {
	List(ctx context.Context) ([]models.Note, error)
	ApplyRemote(ctx context.Context, incoming models.Note, accept func(local *models.Note) bool) (bool, error)
}

type LabelStore interface {
	List(ctx context.Context) ([]models.Label, error)
	Put(ctx context.Context, l models.Label) error
}

type BoardStore interface {
	List(ctx context.Context) ([]models.Board, error)
	Put(ctx context.Context, b models.Board) error
}

// Entitlements gates syncing per user. A nil Entitlements allows everyone.
type Entitlements interface {
	CanSync(ctx context.Context, userID string) bool
}

// Deps are the collaborators of the service. Label and board pairs are
// optional; a pass over an entity without stores returns an empty result.
type Deps struct {
	CloudNotes  notes.Repository
	CloudLabels labels.Repository
	CloudBoards boards.Repository

	LocalNotes  NoteStore
	LocalLabels LabelStore
	LocalBoards BoardStore

	Entitlements Entitlements
	Logger       logging.Logger
}

type syncService struct {
	cloudNotes  notes.Repository
	cloudLabels labels.Repository
	cloudBoards boards.Repository

	localNotes  NoteStore
	localLabels LabelStore
	localBoards BoardStore

	entitlements Entitlements
	log          logging.Logger
}

func NewService(d Deps) Service {
	log := d.Logger
	if log == nil {
		log = logging.Nop()
	}
	return &syncService{
		cloudNotes:   d.CloudNotes,
		cloudLabels:  d.CloudLabels,
		cloudBoards:  d.CloudBoards,
		localNotes:   d.LocalNotes,
		localLabels:  d.LocalLabels,
		localBoards:  d.LocalBoards,
		entitlements: d.Entitlements,
		log:          log,
	}
}

func (s *syncService) allowed(ctx context.Context, userID string) bool {
	if s.entitlements == nil || s.entitlements.CanSync(ctx, userID) {
		return true
	}
	s.log.Info(ctx, "sync skipped", "user_id", userID, "error", common.ErrSyncNotAllowed)
	return false
}

func (s *syncService) SyncAll(ctx context.Context, userID string, opts Options) models.SyncResult {
	var result models.SyncResult
	if !s.allowed(ctx, userID) {
		return result
	}

	result.Merge(s.syncNotes(ctx, userID, opts))
	result.Merge(s.syncLabels(ctx, userID, opts))
	result.Merge(s.syncBoards(ctx, userID, opts))
	return result
}
