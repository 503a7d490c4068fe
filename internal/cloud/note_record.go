package cloud

import (
	"slices"

	"github.com/dmitrijs2005/toonsync/internal/models"
	"github.com/dmitrijs2005/toonsync/internal/timex"
)

// NoteRecord is a row of the cloud notes table.
type NoteRecord struct {
	ID                  string   `json:"id"`
	UserID              string   `json:"user_id"`
	Title               string   `json:"title"`
	Content             string   `json:"content"`
	Labels              []string `json:"labels"`
	Color               string   `json:"color"`
	DesignID            *string  `json:"design_id"`
	ActiveDesignLabelID *string  `json:"active_design_label_id"`
	Images              []string `json:"images"`
	IsPinned            bool     `json:"is_pinned"`
	IsArchived          bool     `json:"is_archived"`
	IsDeleted           bool     `json:"is_deleted"`
	DeletedAt           *string  `json:"deleted_at"`
	CreatedAt           string   `json:"created_at"`
	UpdatedAt           string   `json:"updated_at"`
}

// UpdatedAtMillis is UpdatedAt as epoch milliseconds, 0 if unparseable.
func (r NoteRecord) UpdatedAtMillis() int64 {
	ms, _ := timex.ParseMillis(r.UpdatedAt)
	return ms
}

// ToNoteRecord maps a local note to its cloud row owned by userID.
func ToNoteRecord(n models.Note, userID string) NoteRecord {
	return NoteRecord{
		ID:                  n.ID,
		UserID:              userID,
		Title:               n.Title,
		Content:             n.Content,
		Labels:              cloneOrEmpty(n.Labels),
		Color:               n.Color,
		DesignID:            models.NonEmpty(n.DesignID),
		ActiveDesignLabelID: models.NonEmpty(n.ActiveDesignLabelID),
		Images:              cloneOrEmpty(n.Images),
		IsPinned:            n.IsPinned,
		IsArchived:          n.IsArchived,
		IsDeleted:           n.IsDeleted,
		DeletedAt:           formatOptional(n.DeletedAt),
		CreatedAt:           timex.FormatMillis(n.CreatedAt),
		UpdatedAt:           timex.FormatMillis(n.UpdatedAt),
	}
}

// FromNoteRecord maps a cloud row back to a local note.
func FromNoteRecord(r NoteRecord) models.Note {
	createdAt, _ := timex.ParseMillis(r.CreatedAt)
	updatedAt, ok := timex.ParseMillis(r.UpdatedAt)
	if !ok {
		updatedAt = createdAt
	}

	return models.Note{
		ID:                  r.ID,
		Title:               r.Title,
		Content:             r.Content,
		Labels:              cloneOrEmpty(r.Labels),
		Color:               r.Color,
		DesignID:            models.NonEmpty(r.DesignID),
		ActiveDesignLabelID: models.NonEmpty(r.ActiveDesignLabelID),
		Images:              cloneOrEmpty(r.Images),
		IsPinned:            r.IsPinned,
		IsArchived:          r.IsArchived,
		IsDeleted:           r.IsDeleted,
		DeletedAt:           parseOptional(r.DeletedAt),
		CreatedAt:           createdAt,
		UpdatedAt:           updatedAt,
	}
}

func cloneOrEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return slices.Clone(s)
}

func formatOptional(ms *int64) *string {
	if ms == nil {
		return nil
	}
	s := timex.FormatMillis(*ms)
	return &s
}

func parseOptional(s *string) *int64 {
	if s == nil {
		return nil
	}
	ms, ok := timex.ParseMillis(*s)
	if !ok {
		return nil
	}
	return &ms
}
