package boards

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

const columns = `id, hashtag, custom_style, board_design_id, created_at, updated_at`

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

func (r *SQLiteRepository) List(ctx context.Context) ([]models.Board, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+columns+` FROM boards ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to select boards: %w", err)
	}
	defer rows.Close()

	var result []models.Board
	for rows.Next() {
		b, err := scanBoard(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, id string) (*models.Board, error) {
	return get(ctx, r.db, id)
}

func (r *SQLiteRepository) Create(ctx context.Context, b models.Board) (models.Board, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	b.CreatedAt = r.now()
	b.UpdatedAt = b.CreatedAt

	_, err := r.db.ExecContext(ctx, `INSERT INTO boards (`+columns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		b.ID, b.Hashtag, nullStyle(b.CustomStyle), nullString(b.BoardDesignID), b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return models.Board{}, fmt.Errorf("failed to insert board: %w", err)
	}
	return b, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, id string, patch Patch) (models.Board, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out models.Board
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		current, err := get(ctx, tx, id)
		if err != nil {
			return err
		}
		next := patch.apply(*current)
		next.UpdatedAt = timex.Advance(current.UpdatedAt, r.now())
		if err := put(ctx, tx, next); err != nil {
			return err
		}
		out = next
		return nil
	})
	return out, err
}

func (r *SQLiteRepository) Put(ctx context.Context, b models.Board) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return put(ctx, r.db, b)
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.db.ExecContext(ctx, `DELETE FROM boards WHERE id=?`, id); err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func get(ctx context.Context, db dbx.DBTX, id string) (*models.Board, error) {
	b, err := scanBoard(db.QueryRowContext(ctx, `SELECT `+columns+` FROM boards WHERE id=?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return &b, nil
}

func put(ctx context.Context, db dbx.DBTX, b models.Board) error {
	query := `INSERT INTO boards (` + columns + `) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			hashtag = excluded.hashtag,
			custom_style = excluded.custom_style,
			board_design_id = excluded.board_design_id,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at`
	_, err := db.ExecContext(ctx, query,
		b.ID, b.Hashtag, nullStyle(b.CustomStyle), nullString(b.BoardDesignID), b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert board: %w", err)
	}
	return nil
}

func scanBoard(s scanner) (models.Board, error) {
	var (
		b             models.Board
		style         sql.NullString
		boardDesignID sql.NullString
	)
	if err := s.Scan(&b.ID, &b.Hashtag, &style, &boardDesignID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return models.Board{}, err
	}
	if style.Valid && style.String != "" {
		b.CustomStyle = []byte(style.String)
	}
	if boardDesignID.Valid {
		b.BoardDesignID = &boardDesignID.String
	}
	return b, nil
}

// nullStyle stores the style document as TEXT so it reads back byte-for-byte.
func nullStyle(style []byte) sql.NullString {
	if len(style) == 0 {
		return sql.NullString{}
	}
	return sql.NullString{String: string(style), Valid: true}
}

// nullString stores an empty reference as NULL so it reads back as absent.
func nullString(p *string) sql.NullString {
	if p == nil || *p == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}
