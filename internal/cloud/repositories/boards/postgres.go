package boards

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/toonsync/internal/cloud"
	"github.com/dmitrijs2005/toonsync/internal/cloud/repositories"
	"github.com/dmitrijs2005/toonsync/internal/common"
	"github.com/dmitrijs2005/toonsync/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Upsert(ctx context.Context, rec cloud.BoardRecord) error {
	var style *string
	if len(rec.CustomStyle) > 0 {
		s := string(rec.CustomStyle)
		style = &s
	}

	query := `
		INSERT INTO boards (id, user_id, hashtag, custom_style, board_design_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4::json, $5, $6::timestamptz, $7::timestamptz)
		ON CONFLICT (id)
		DO UPDATE SET
			hashtag = EXCLUDED.hashtag,
			custom_style = EXCLUDED.custom_style,
			board_design_id = EXCLUDED.board_design_id,
			created_at = EXCLUDED.created_at,
			updated_at = EXCLUDED.updated_at
			WHERE boards.user_id = EXCLUDED.user_id;
	`
	res, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.UserID, rec.Hashtag, style, rec.BoardDesignID, rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	err = dbx.ExpectAffected(res)
	if errors.Is(err, common.ErrNotFound) {
		return common.ErrOwnershipConflict
	}
	return err
}

func (r *PostgresRepository) SelectByUser(ctx context.Context, userID string) ([]cloud.BoardRecord, error) {
	query := `SELECT id, user_id, hashtag, custom_style::text, board_design_id, created_at, updated_at
		FROM boards WHERE user_id=$1 ORDER BY updated_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select boards: %w", err)
	}
	defer rows.Close()

	result := []cloud.BoardRecord{}
	for rows.Next() {
		var (
			rec                  cloud.BoardRecord
			style, designID      sql.NullString
			createdAt, updatedAt sql.NullTime
		)
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Hashtag, &style, &designID, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		if style.Valid {
			rec.CustomStyle = []byte(style.String)
		}
		rec.BoardDesignID = repositories.NullString(designID)
		if createdAt.Valid {
			rec.CreatedAt = repositories.FormatTime(createdAt.Time)
		}
		if updatedAt.Valid {
			rec.UpdatedAt = repositories.FormatTime(updatedAt.Time)
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) DeleteByID(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM boards WHERE id=$1`, id); err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}
	return nil
}
