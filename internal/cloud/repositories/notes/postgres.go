package notes

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

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectColumns = `id, user_id, title, content, array_to_json(labels)::text, color,
		design_id, active_design_label_id, array_to_json(images)::text,
		is_pinned, is_archived, is_deleted, deleted_at, created_at, updated_at`

// Upsert writes rec by id. The update branch only fires for the same owner;
// zero affected rows therefore means the id is taken by someone else.
func (r *PostgresRepository) Upsert(ctx context.Context, rec cloud.NoteRecord) error {
	labels, err := repositories.EncodeTextArray(rec.Labels)
	if err != nil {
		return err
	}
	images, err := repositories.EncodeTextArray(rec.Images)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO notes (id, user_id, title, content, labels, color, design_id, active_design_label_id,
			images, is_pinned, is_archived, is_deleted, deleted_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, ARRAY(SELECT json_array_elements_text($5::json)), $6, $7, $8,
			ARRAY(SELECT json_array_elements_text($9::json)), $10, $11, $12,
			$13::timestamptz, $14::timestamptz, $15::timestamptz)
		ON CONFLICT (id)
		DO UPDATE SET
			title = EXCLUDED.title,
			content = EXCLUDED.content,
			labels = EXCLUDED.labels,
			color = EXCLUDED.color,
			design_id = EXCLUDED.design_id,
			active_design_label_id = EXCLUDED.active_design_label_id,
			images = EXCLUDED.images,
			is_pinned = EXCLUDED.is_pinned,
			is_archived = EXCLUDED.is_archived,
			is_deleted = EXCLUDED.is_deleted,
			deleted_at = EXCLUDED.deleted_at,
			created_at = EXCLUDED.created_at,
			updated_at = EXCLUDED.updated_at
			WHERE notes.user_id = EXCLUDED.user_id;
	`
	res, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.UserID, rec.Title, rec.Content, labels, rec.Color, rec.DesignID, rec.ActiveDesignLabelID,
		images, rec.IsPinned, rec.IsArchived, rec.IsDeleted, rec.DeletedAt, rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	err = dbx.ExpectAffected(res)
	if errors.Is(err, common.ErrNotFound) {
		return common.ErrOwnershipConflict
	}
	return err
}

func (r *PostgresRepository) SelectByUser(ctx context.Context, userID string) ([]cloud.NoteRecord, error) {
	query := `SELECT ` + selectColumns + ` FROM notes WHERE user_id=$1 ORDER BY updated_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select notes: %w", err)
	}
	defer rows.Close()

	result := []cloud.NoteRecord{}
	for rows.Next() {
		rec, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*cloud.NoteRecord, error) {
	query := `SELECT ` + selectColumns + ` FROM notes WHERE id=$1`
	rec, err := scanNote(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	return rec, err
}

func (r *PostgresRepository) DeleteByID(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id=$1`, id); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanNote(row scanner) (*cloud.NoteRecord, error) {
	var (
		rec                     cloud.NoteRecord
		labels, images          sql.NullString
		color                   sql.NullString
		designID, activeLabelID sql.NullString
		deletedAt               sql.NullTime
		createdAt, updatedAt    sql.NullTime
	)
	if err := row.Scan(&rec.ID, &rec.UserID, &rec.Title, &rec.Content, &labels, &color,
		&designID, &activeLabelID, &images,
		&rec.IsPinned, &rec.IsArchived, &rec.IsDeleted, &deletedAt, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if rec.Labels, err = repositories.DecodeTextArray(labels); err != nil {
		return nil, err
	}
	if rec.Images, err = repositories.DecodeTextArray(images); err != nil {
		return nil, err
	}
	rec.Color = color.String
	rec.DesignID = repositories.NullString(designID)
	rec.ActiveDesignLabelID = repositories.NullString(activeLabelID)
	rec.DeletedAt = repositories.FormatNullTime(deletedAt)
	if createdAt.Valid {
		rec.CreatedAt = repositories.FormatTime(createdAt.Time)
	}
	if updatedAt.Valid {
		rec.UpdatedAt = repositories.FormatTime(updatedAt.Time)
	}
	return &rec, nil
}
