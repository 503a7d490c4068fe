package labels

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

func (r *PostgresRepository) Upsert(ctx context.Context, rec cloud.LabelRecord) error {
	query := `
		INSERT INTO labels (id, user_id, name, preset_id, custom_design_id, is_system_label, created_at, last_used_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7::timestamptz, $8::timestamptz)
		ON CONFLICT (id)
		DO UPDATE SET
			name = EXCLUDED.name,
			preset_id = EXCLUDED.preset_id,
			custom_design_id = EXCLUDED.custom_design_id,
			is_system_label = EXCLUDED.is_system_label,
			created_at = EXCLUDED.created_at,
			last_used_at = EXCLUDED.last_used_at
			WHERE labels.user_id = EXCLUDED.user_id;
	`
	res, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.UserID, rec.Name, rec.PresetID, rec.CustomDesignID, rec.IsSystemLabel, rec.CreatedAt, rec.LastUsedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	err = dbx.ExpectAffected(res)
	if errors.Is(err, common.ErrNotFound) {
		return common.ErrOwnershipConflict
	}
	return err
}

func (r *PostgresRepository) SelectByUser(ctx context.Context, userID string) ([]cloud.LabelRecord, error) {
	query := `SELECT id, user_id, name, preset_id, custom_design_id, is_system_label, created_at, last_used_at
		FROM labels WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select labels: %w", err)
	}
	defer rows.Close()

	result := []cloud.LabelRecord{}
	for rows.Next() {
		var (
			rec                cloud.LabelRecord
			presetID, designID sql.NullString
			createdAt          sql.NullTime
			lastUsedAt         sql.NullTime
		)
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Name, &presetID, &designID,
			&rec.IsSystemLabel, &createdAt, &lastUsedAt); err != nil {
			return nil, err
		}
		rec.PresetID = repositories.NullString(presetID)
		rec.CustomDesignID = repositories.NullString(designID)
		if createdAt.Valid {
			rec.CreatedAt = repositories.FormatTime(createdAt.Time)
		}
		rec.LastUsedAt = repositories.FormatNullTime(lastUsedAt)
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) DeleteByID(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM labels WHERE id=$1`, id); err != nil {
		return fmt.Errorf("failed to delete label: %w", err)
	}
	return nil
}
