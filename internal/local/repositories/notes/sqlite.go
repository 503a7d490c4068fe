package notes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/toonsync/internal/common"
	"github.com/dmitrijs2005/toonsync/internal/dbx"
	"github.com/dmitrijs2005/toonsync/internal/models"
	"github.com/dmitrijs2005/toonsync/internal/timex"
	"github.com/google/uuid"
)

var _ Repository = (*SQLiteRepository)(nil)

const columns = `id, title, content, labels, color, design_id, active_design_label_id, images,
	is_pinned, is_archived, is_deleted, deleted_at, created_at, updated_at`

// SQLiteRepository implements Repository. Writers are serialized by mu so a
// read-modify-write never interleaves with another one.
type SQLiteRepository struct {
	db  *sql.DB
	mu  sync.Mutex
	now timex.Clock
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: timex.NowMillis}
}

// SetClock replaces the time source. Used by tests.
func (r *SQLiteRepository) SetClock(now timex.Clock) {
	r.now = now
}

// List returns every note, soft-deleted ones included, most recently updated first.
func (r *SQLiteRepository) List(ctx context.Context) ([]models.Note, error) {
	query := `SELECT ` + columns + ` FROM notes ORDER BY updated_at DESC, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select notes: %w", err)
	}
	defer rows.Close()

	var result []models.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, id string) (*models.Note, error) {
	return get(ctx, r.db, id)
}

// Create inserts a new note. A missing id is generated, a missing color gets
// the default and both timestamps are set to now.
func (r *SQLiteRepository) Create(ctx context.Context, n models.Note) (models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.Color == "" {
		n.Color = models.DefaultNoteColor
	}
	n.DesignID = models.NonEmpty(n.DesignID)
	n.ActiveDesignLabelID = models.NonEmpty(n.ActiveDesignLabelID)
	n.Labels = cloneOrEmpty(n.Labels)
	n.Images = cloneOrEmpty(n.Images)
	n.CreatedAt = r.now()
	n.UpdatedAt = n.CreatedAt

	labels, images, err := encodeLists(n)
	if err != nil {
		return models.Note{}, err
	}

	query := `INSERT INTO notes (` + columns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		n.ID, n.Title, n.Content, labels, n.Color, nullString(n.DesignID), nullString(n.ActiveDesignLabelID), images,
		n.IsPinned, n.IsArchived, n.IsDeleted, nullInt(n.DeletedAt), n.CreatedAt, n.UpdatedAt)
	if err != nil {
		return models.Note{}, fmt.Errorf("failed to insert note: %w", err)
	}
	return n, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, id string, patch models.NotePatch) (models.Note, error) {
	return r.mutate(ctx, id, func(n models.Note) models.Note {
		return patch.Apply(n)
	})
}

// SoftDelete hides a note and stamps DeletedAt. The row is kept so the
// deletion syncs like any other edit.
func (r *SQLiteRepository) SoftDelete(ctx context.Context, id string) (models.Note, error) {
	return r.mutate(ctx, id, func(n models.Note) models.Note {
		n.IsDeleted = true
		n.DeletedAt = models.Ptr(r.now())
		return n
	})
}

func (r *SQLiteRepository) Restore(ctx context.Context, id string) (models.Note, error) {
	return r.mutate(ctx, id, func(n models.Note) models.Note {
		n.IsDeleted = false
		n.DeletedAt = nil
		return n
	})
}

// Purge physically removes a note. Removing a missing note is not an error.
func (r *SQLiteRepository) Purge(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id=?`, id); err != nil {
		return fmt.Errorf("failed to purge note: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Put(ctx context.Context, n models.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return put(ctx, r.db, n)
}

func (r *SQLiteRepository) ApplyRemote(ctx context.Context, incoming models.Note, accept func(local *models.Note) bool) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	applied := false
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		current, err := get(ctx, tx, incoming.ID)
		if err != nil && !errors.Is(err, common.ErrNotFound) {
			return err
		}
		if !accept(current) {
			return nil
		}
		if err := put(ctx, tx, incoming); err != nil {
			return err
		}
		applied = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return applied, nil
}

// mutate loads a note, applies fn and stores the result with an advanced
// UpdatedAt, all inside one transaction.
func (r *SQLiteRepository) mutate(ctx context.Context, id string, fn func(models.Note) models.Note) (models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out models.Note
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		current, err := get(ctx, tx, id)
		if err != nil {
			return err
		}
		next := fn(*current)
		next.ID = current.ID
		next.CreatedAt = current.CreatedAt
		next.UpdatedAt = timex.Advance(current.UpdatedAt, r.now())
		if err := put(ctx, tx, next); err != nil {
			return err
		}
		out = next
		return nil
	})
	return out, err
}

type scanner interface {
	Scan(dest ...any) error
}

func get(ctx context.Context, db dbx.DBTX, id string) (*models.Note, error) {
	row := db.QueryRowContext(ctx, `SELECT `+columns+` FROM notes WHERE id=?`, id)
	n, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return &n, nil
}

func put(ctx context.Context, db dbx.DBTX, n models.Note) error {
	labels, images, err := encodeLists(n)
	if err != nil {
		return err
	}

	query := `INSERT INTO notes (` + columns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			labels = excluded.labels,
			color = excluded.color,
			design_id = excluded.design_id,
			active_design_label_id = excluded.active_design_label_id,
			images = excluded.images,
			is_pinned = excluded.is_pinned,
			is_archived = excluded.is_archived,
			is_deleted = excluded.is_deleted,
			deleted_at = excluded.deleted_at,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at`
	_, err = db.ExecContext(ctx, query,
		n.ID, n.Title, n.Content, labels, n.Color, nullString(n.DesignID), nullString(n.ActiveDesignLabelID), images,
		n.IsPinned, n.IsArchived, n.IsDeleted, nullInt(n.DeletedAt), n.CreatedAt, n.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert note: %w", err)
	}
	return nil
}

func scanNote(s scanner) (models.Note, error) {
	var (
		n              models.Note
		labels, images string
		designID       sql.NullString
		activeLabelID  sql.NullString
		deletedAt      sql.NullInt64
	)
	err := s.Scan(&n.ID, &n.Title, &n.Content, &labels, &n.Color, &designID, &activeLabelID, &images,
		&n.IsPinned, &n.IsArchived, &n.IsDeleted, &deletedAt, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return models.Note{}, err
	}

	if n.Labels, err = decodeList(labels); err != nil {
		return models.Note{}, fmt.Errorf("note %s labels: %w", n.ID, err)
	}
	if n.Images, err = decodeList(images); err != nil {
		return models.Note{}, fmt.Errorf("note %s images: %w", n.ID, err)
	}
	if designID.Valid {
		n.DesignID = &designID.String
	}
	if activeLabelID.Valid {
		n.ActiveDesignLabelID = &activeLabelID.String
	}
	if deletedAt.Valid {
		n.DeletedAt = &deletedAt.Int64
	}
	return n, nil
}

func encodeLists(n models.Note) (string, string, error) {
	labels, err := json.Marshal(cloneOrEmpty(n.Labels))
	if err != nil {
		return "", "", fmt.Errorf("encode labels: %w", err)
	}
	images, err := json.Marshal(cloneOrEmpty(n.Images))
	if err != nil {
		return "", "", fmt.Errorf("encode images: %w", err)
	}
	return string(labels), string(images), nil
}

func decodeList(s string) ([]string, error) {
	out := []string{}
	if s == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

func cloneOrEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return slices.Clone(s)
}

// nullString stores an empty reference as NULL so it reads back as absent.
func nullString(p *string) sql.NullString {
	if p == nil || *p == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func nullInt(p *int64) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *p, Valid: true}
}
