package syncer

import (
	"context"

	"github.com/dmitrijs2005/toonsync/internal/cloud"
	"github.com/dmitrijs2005/toonsync/internal/models"
	"github.com/dmitrijs2005/toonsync/internal/resolver"
)

func (s *syncService) SyncLabels(ctx context.Context, userID string, opts Options) models.SyncResult {
	if !s.allowed(ctx, userID) {
		return models.SyncResult{}
	}
	return s.syncLabels(ctx, userID, opts)
}

func (s *syncService) syncLabels(ctx context.Context, userID string, opts Options) models.SyncResult {
	if s.cloudLabels == nil || s.localLabels == nil {
		return models.SyncResult{}
	}

	e := engine[models.Label, cloud.LabelRecord]{
		entity: models.EntityLabels,
		log:    s.log.With("entity", models.EntityLabels, "user_id", userID),
		fetch: func(ctx context.Context) ([]cloud.LabelRecord, error) {
			return s.cloudLabels.SelectByUser(ctx, userID)
		},
		list:    s.localLabels.List,
		localID: func(l models.Label) string { return l.ID },
		cloudID: func(r cloud.LabelRecord) string { return r.ID },
		resolve: resolver.ResolveLabel,
		upload: func(ctx context.Context, l models.Label) error {
			return s.cloudLabels.Upsert(ctx, cloud.ToLabelRecord(l, userID))
		},
		download: func(ctx context.Context, _ *models.Label, rec cloud.LabelRecord) (bool, error) {
			if err := s.localLabels.Put(ctx, cloud.FromLabelRecord(rec)); err != nil {
				return false, err
			}
			return true, nil
		},
	}
	return e.run(ctx, opts.strategy())
}

func (s *syncService) UploadLabel(ctx context.Context, label models.Label, userID string) bool {
	if err := s.cloudLabels.Upsert(ctx, cloud.ToLabelRecord(label, userID)); err != nil {
		s.log.Warn(ctx, "upload label failed", "id", label.ID, "error", err)
		return false
	}
	return true
}

func (s *syncService) DeleteLabelFromCloud(ctx context.Context, id string) bool {
	if err := s.cloudLabels.DeleteByID(ctx, id); err != nil {
		s.log.Warn(ctx, "delete label failed", "id", id, "error", err)
		return false
	}
	return true
}
