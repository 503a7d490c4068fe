package syncer

import (
	"context"

	"github.com/dmitrijs2005/toonsync/internal/cloud"
	"github.com/dmitrijs2005/toonsync/internal/models"
	"github.com/dmitrijs2005/toonsync/internal/resolver"
)

func (s *syncService) SyncBoards(ctx context.Context, userID string, opts Options) models.SyncResult {
	if !s.allowed(ctx, userID) {
		return models.SyncResult{}
	}
	return s.syncBoards(ctx, userID, opts)
}

func (s *syncService) syncBoards(ctx context.Context, userID string, opts Options) models.SyncResult {
	if s.cloudBoards == nil || s.localBoards == nil {
		return models.SyncResult{}
	}

	e := engine[models.Board, cloud.BoardRecord]{
		entity: models.EntityBoards,
		log:    s.log.With("entity", models.EntityBoards, "user_id", userID),
		fetch: func(ctx context.Context) ([]cloud.BoardRecord, error) {
			return s.cloudBoards.SelectByUser(ctx, userID)
		},
		list:    s.localBoards.List,
		localID: func(b models.Board) string { return b.ID },
		cloudID: func(r cloud.BoardRecord) string { return r.ID },
		resolve: resolver.ResolveBoard,
		upload: func(ctx context.Context, b models.Board) error {
			return s.cloudBoards.Upsert(ctx, cloud.ToBoardRecord(b, userID))
		},
		download: func(ctx context.Context, _ *models.Board, rec cloud.BoardRecord) (bool, error) {
			if err := s.localBoards.Put(ctx, cloud.FromBoardRecord(rec)); err != nil {
				return false, err
			}
			return true, nil
		},
	}
	return e.run(ctx, opts.strategy())
}

func (s *syncService) UploadBoard(ctx context.Context, board models.Board, userID string) bool {
	if err := s.cloudBoards.Upsert(ctx, cloud.ToBoardRecord(board, userID)); err != nil {
		s.log.Warn(ctx, "upload board failed", "id", board.ID, "error", err)
		return false
	}
	return true
}

func (s *syncService) DeleteBoardFromCloud(ctx context.Context, id string) bool {
	if err := s.cloudBoards.DeleteByID(ctx, id); err != nil {
		s.log.Warn(ctx, "delete board failed", "id", id, "error", err)
		return false
	}
	return true
}
