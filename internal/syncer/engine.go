package syncer

import (
	"context"
	"time"

	"github.com/dmitrijs2005/toonsync/internal/logging"
	"github.com/dmitrijs2005/toonsync/internal/models"
	"github.com/dmitrijs2005/toonsync/internal/resolver"
)

// engine runs one pass for an entity. L is the local model, C the cloud row.
type engine[L, C any] struct {
	entity models.Entity
	log    logging.Logger

	fetch   func(ctx context.Context) ([]C, error)
	list    func(ctx context.Context) ([]L, error)
	localID func(L) string
	cloudID func(C) string
	resolve func(local *L, rec *C, strategy models.ConflictStrategy) resolver.Action

	upload func(ctx context.Context, l L) error
	// download stores rec locally. applied is false when the local record
	// changed after the snapshot and was kept.
	download func(ctx context.Context, snapshot *L, rec C) (applied bool, err error)
}

func (e engine[L, C]) run(ctx context.Context, strategy models.ConflictStrategy) models.SyncResult {
	var result models.SyncResult
	started := time.Now()

	clouds, err := e.fetch(ctx)
	if err != nil {
		// Carry on with an empty cloud side so local records still upload.
		result.AddError(models.FetchFailed, e.entity, "", err)
		e.log.Warn(ctx, "cloud fetch failed", "error", err)
		clouds = nil
	}

	locals, err := e.list(ctx)
	if err != nil {
		result.AddError(models.LocalReadFailed, e.entity, "", err)
		e.log.Error(ctx, "local read failed", "error", err)
		return result
	}

	cloudByID := make(map[string]int, len(clouds))
	for i := range clouds {
		cloudByID[e.cloudID(clouds[i])] = i
	}

	seen := make(map[string]struct{}, len(locals))
	for i := range locals {
		if ctx.Err() != nil {
			break
		}
		id := e.localID(locals[i])
		seen[id] = struct{}{}

		var rec *C
		if j, ok := cloudByID[id]; ok {
			rec = &clouds[j]
		}
		e.apply(ctx, id, &locals[i], rec, strategy, &result)
	}

	for j := range clouds {
		if ctx.Err() != nil {
			break
		}
		id := e.cloudID(clouds[j])
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		e.apply(ctx, id, nil, &clouds[j], strategy, &result)
	}

	if err := ctx.Err(); err != nil {
		e.log.Warn(ctx, "sync pass interrupted", "error", err)
	}

	e.log.Info(ctx, "sync pass finished",
		"uploaded", result.Uploaded,
		"downloaded", result.Downloaded,
		"skipped", result.Skipped,
		"errors", len(result.Errors),
		"elapsed", time.Since(started),
	)
	return result
}

func (e engine[L, C]) apply(ctx context.Context, id string, local *L, rec *C, strategy models.ConflictStrategy, result *models.SyncResult) {
	action := e.resolve(local, rec, strategy)
	e.log.Debug(ctx, "resolved", "id", id, "action", action.String())

	switch action {
	case resolver.Upload:
		if err := e.upload(ctx, *local); err != nil {
			result.AddError(models.UploadFailed, e.entity, id, err)
			e.log.Warn(ctx, "upload failed", "id", id, "error", err)
			return
		}
		result.Uploaded++

	case resolver.Download:
		applied, err := e.download(ctx, local, *rec)
		if err != nil {
			result.AddError(models.DownloadFailed, e.entity, id, err)
			e.log.Warn(ctx, "download failed", "id", id, "error", err)
			return
		}
		if !applied {
			e.log.Debug(ctx, "local record changed during pass, kept", "id", id)
			result.Skipped++
			return
		}
		result.Downloaded++

	default:
		result.Skipped++
	}
}
