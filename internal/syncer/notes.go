package syncer

import (
	"context"

	"github.com/dmitrijs2005/toonsync/internal/cloud"
	"github.com/dmitrijs2005/toonsync/internal/models"
	"github.com/dmitrijs2005/toonsync/internal/resolver"
)

func (s *syncService) SyncNotes(ctx context.Context, userID string, opts Options) models.SyncResult {
	if !s.allowed(ctx, userID) {
		return models.SyncResult{}
	}
	return s.syncNotes(ctx, userID, opts)
}

func (s *syncService) syncNotes(ctx context.Context, userID string, opts Options) models.SyncResult {
	if s.cloudNotes == nil || s.localNotes == nil {
		return models.SyncResult{}
	}

	e := engine[models.Note, cloud.NoteRecord]{
		entity: models.EntityNotes,
		log:    s.log.With("entity", models.EntityNotes, "user_id", userID),
		fetch: func(ctx context.Context) ([]cloud.NoteRecord, error) {
			return s.cloudNotes.SelectByUser(ctx, userID)
		},
		list:    s.localNotes.List,
		localID: func(n models.Note) string { return n.ID },
		cloudID: func(r cloud.NoteRecord) string { return r.ID },
		resolve: resolver.Resolve,
		upload: func(ctx context.Context, n models.Note) error {
			return s.cloudNotes.Upsert(ctx, cloud.ToNoteRecord(n, userID))
		},
		download: func(ctx context.Context, snapshot *models.Note, rec cloud.NoteRecord) (bool, error) {
			return s.localNotes.ApplyRemote(ctx, cloud.FromNoteRecord(rec), unchangedSince(snapshot))
		},
	}
	return e.run(ctx, opts.strategy())
}

// unchangedSince accepts the incoming note only if the local note is still
// the one the decision was made on.
func unchangedSince(snapshot *models.Note) func(*models.Note) bool {
	return func(current *models.Note) bool {
		if current == nil {
			return true
		}
		if snapshot == nil {
			return false
		}
		return current.UpdatedAt <= snapshot.UpdatedAt
	}
}

func (s *syncService) UploadNote(ctx context.Context, note models.Note, userID string) bool {
	if err := s.cloudNotes.Upsert(ctx, cloud.ToNoteRecord(note, userID)); err != nil {
		s.log.Warn(ctx, "upload note failed", "id", note.ID, "error", err)
		return false
	}
	return true
}

// DeleteNoteFromCloud hard-deletes the cloud row. It is unrelated to the
// soft-delete flag, which syncs as ordinary content.
func (s *syncService) DeleteNoteFromCloud(ctx context.Context, id string) bool {
	if err := s.cloudNotes.DeleteByID(ctx, id); err != nil {
		s.log.Warn(ctx, "delete note failed", "id", id, "error", err)
		return false
	}
	return true
}

func (s *syncService) FetchNotes(ctx context.Context, userID string) ([]models.Note, error) {
	recs, err := s.cloudNotes.SelectByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]models.Note, 0, len(recs))
	for _, r := range recs {
		out = append(out, cloud.FromNoteRecord(r))
	}
	return out, nil
}

func (s *syncService) FetchNotesFromCloud(ctx context.Context, userID string) []models.Note {
	out, err := s.FetchNotes(ctx, userID)
	if err != nil {
		s.log.Warn(ctx, "fetch notes failed", "user_id", userID, "error", err)
		return []models.Note{}
	}
	return out
}
