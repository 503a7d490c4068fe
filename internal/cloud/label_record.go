package cloud

import (
	"github.com/dmitrijs2005/toonsync/internal/models"
	"github.com/dmitrijs2005/toonsync/internal/timex"
)

// LabelRecord is a row of the cloud labels table.
type LabelRecord struct {
	ID             string  `json:"id"`
	UserID         string  `json:"user_id"`
	Name           string  `json:"name"`
	PresetID       *string `json:"preset_id"`
	CustomDesignID *string `json:"custom_design_id"`
	IsSystemLabel  bool    `json:"is_system_label"`
	CreatedAt      string  `json:"created_at"`
	LastUsedAt     *string `json:"last_used_at"`
}

// SyncTimeMillis mirrors models.Label.SyncTime on the cloud side.
func (r LabelRecord) SyncTimeMillis() int64 {
	if r.LastUsedAt != nil {
		if ms, ok := timex.ParseMillis(*r.LastUsedAt); ok {
			return ms
		}
	}
	ms, _ := timex.ParseMillis(r.CreatedAt)
	return ms
}

func ToLabelRecord(l models.Label, userID string) LabelRecord {
	return LabelRecord{
		ID:             l.ID,
		UserID:         userID,
		Name:           l.Name,
		PresetID:       models.NonEmpty(l.PresetID),
		CustomDesignID: models.NonEmpty(l.CustomDesignID),
		IsSystemLabel:  l.IsSystemLabel,
		CreatedAt:      timex.FormatMillis(l.CreatedAt),
		LastUsedAt:     formatOptional(l.LastUsedAt),
	}
}

func FromLabelRecord(r LabelRecord) models.Label {
	createdAt, _ := timex.ParseMillis(r.CreatedAt)
	return models.Label{
		ID:             r.ID,
		Name:           r.Name,
		PresetID:       models.NonEmpty(r.PresetID),
		CustomDesignID: models.NonEmpty(r.CustomDesignID),
		IsSystemLabel:  r.IsSystemLabel,
		CreatedAt:      createdAt,
		LastUsedAt:     parseOptional(r.LastUsedAt),
	}
}
