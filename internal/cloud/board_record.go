package cloud

import (
	"bytes"
	"encoding/json"

	"github.com/dmitrijs2005/toonsync/internal/models"
	"github.com/dmitrijs2005/toonsync/internal/timex"
)

// BoardRecord is a row of the cloud boards table. CustomStyle is stored in a
// json column so its text survives unchanged.
type BoardRecord struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	Hashtag       string          `json:"hashtag"`
	CustomStyle   json.RawMessage `json:"custom_style"`
	BoardDesignID *string         `json:"board_design_id"`
	CreatedAt     string          `json:"created_at"`
	UpdatedAt     string          `json:"updated_at"`
}

func (r BoardRecord) UpdatedAtMillis() int64 {
	ms, _ := timex.ParseMillis(r.UpdatedAt)
	return ms
}

func ToBoardRecord(b models.Board, userID string) BoardRecord {
	return BoardRecord{
		ID:            b.ID,
		UserID:        userID,
		Hashtag:       b.Hashtag,
		CustomStyle:   cloneStyle(b.CustomStyle),
		BoardDesignID: models.NonEmpty(b.BoardDesignID),
		CreatedAt:     timex.FormatMillis(b.CreatedAt),
		UpdatedAt:     timex.FormatMillis(b.UpdatedAt),
	}
}

func FromBoardRecord(r BoardRecord) models.Board {
	createdAt, _ := timex.ParseMillis(r.CreatedAt)
	updatedAt, ok := timex.ParseMillis(r.UpdatedAt)
	if !ok {
		updatedAt = createdAt
	}
	return models.Board{
		ID:            r.ID,
		Hashtag:       r.Hashtag,
		CustomStyle:   cloneStyle(r.CustomStyle),
		BoardDesignID: models.NonEmpty(r.BoardDesignID),
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}
}

// cloneStyle copies a style document; empty and JSON null mean no style.
func cloneStyle(b []byte) []byte {
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	return bytes.Clone(b)
}
