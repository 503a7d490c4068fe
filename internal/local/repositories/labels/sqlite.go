package labels

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/toonsync/internal/common"
	"github.com/dmitrijs2005/toonsync/internal/dbx"
	"github.com/dmitrijs2005/toonsync/internal/models"
	"github.com/dmitrijs2005/toonsync/internal/timex"
	"github.com/google/uuid"
)

var _ Repository = (*SQLiteRepository)(nil)

const columns = `id, name, preset_id, custom_design_id, is_system_label, created_at, last_used_at`

type SQLiteRepository struct {
	db  *sql.DB
	mu  sync.Mutex
	now timex.Clock
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: timex.NowMillis}
}

func (r *SQLiteRepository) SetClock(now timex.Clock) {
	r.now = now
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.Label, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+columns+` FROM labels ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to select labels: %w", err)
	}
	defer rows.Close()

	var result []models.Label
	for rows.Next() {
		l, err := scanLabel(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, id string) (*models.Label, error) {
	return get(ctx, r.db, id)
}

func (r *SQLiteRepository) Create(ctx context.Context, l models.Label) (models.Label, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	l.CreatedAt = r.now()
	l.LastUsedAt = nil

	_, err := r.db.ExecContext(ctx, `INSERT INTO labels (`+columns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.Name, nullString(l.PresetID), nullString(l.CustomDesignID), l.IsSystemLabel, l.CreatedAt, nullInt(l.LastUsedAt))
	if err != nil {
		return models.Label{}, fmt.Errorf("failed to insert label: %w", err)
	}
	return l, nil
}

func (r *SQLiteRepository) Touch(ctx context.Context, id string) (models.Label, error) {
	return r.mutate(ctx, id, func(l models.Label) models.Label { return l })
}

// Rename changes the label name. It counts as a use so the edit wins the
// next latest_wins comparison.
func (r *SQLiteRepository) Rename(ctx context.Context, id, name string) (models.Label, error) {
	return r.mutate(ctx, id, func(l models.Label) models.Label {
		l.Name = name
		return l
	})
}

func (r *SQLiteRepository) Put(ctx context.Context, l models.Label) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return put(ctx, r.db, l)
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.db.ExecContext(ctx, `DELETE FROM labels WHERE id=?`, id); err != nil {
		return fmt.Errorf("failed to delete label: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) mutate(ctx context.Context, id string, fn func(models.Label) models.Label) (models.Label, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out models.Label
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		current, err := get(ctx, tx, id)
		if err != nil {
			return err
		}
		next := fn(*current)
		next.LastUsedAt = models.Ptr(timex.Advance(current.SyncTime(), r.now()))
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

func get(ctx context.Context, db dbx.DBTX, id string) (*models.Label, error) {
	l, err := scanLabel(db.QueryRowContext(ctx, `SELECT `+columns+` FROM labels WHERE id=?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return &l, nil
}

func put(ctx context.Context, db dbx.DBTX, l models.Label) error {
	query := `INSERT INTO labels (` + columns + `) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			preset_id = excluded.preset_id,
			custom_design_id = excluded.custom_design_id,
			is_system_label = excluded.is_system_label,
			created_at = excluded.created_at,
			last_used_at = excluded.last_used_at`
	_, err := db.ExecContext(ctx, query,
		l.ID, l.Name, nullString(l.PresetID), nullString(l.CustomDesignID), l.IsSystemLabel, l.CreatedAt, nullInt(l.LastUsedAt))
	if err != nil {
		return fmt.Errorf("failed to upsert label: %w", err)
	}
	return nil
}

func scanLabel(s scanner) (models.Label, error) {
	var (
		l              models.Label
		presetID       sql.NullString
		customDesignID sql.NullString
		lastUsedAt     sql.NullInt64
	)
	if err := s.Scan(&l.ID, &l.Name, &presetID, &customDesignID, &l.IsSystemLabel, &l.CreatedAt, &lastUsedAt); err != nil {
		return models.Label{}, err
	}
	if presetID.Valid {
		l.PresetID = &presetID.String
	}
	if customDesignID.Valid {
		l.CustomDesignID = &customDesignID.String
	}
	if lastUsedAt.Valid {
		l.LastUsedAt = &lastUsedAt.Int64
	}
	return l, nil
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
