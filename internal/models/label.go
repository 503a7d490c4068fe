package models

import "bytes"

// Label is a user tag. Labels have no updatedAt; LastUsedAt (or CreatedAt
// when never used) serves as the conflict timestamp.
type Label struct {
	ID             string
	Name           string
	PresetID       *string
	CustomDesignID *string
	IsSystemLabel  bool
	CreatedAt      int64
	LastUsedAt     *int64
}

// SyncTime is the timestamp compared under latest_wins.
func (l Label) SyncTime() int64 {
	if l.LastUsedAt != nil {
		return *l.LastUsedAt
	}
	return l.CreatedAt
}

func (l Label) Equal(o Label) bool {
	return l.ID == o.ID &&
		l.Name == o.Name &&
		equalRef(l.PresetID, o.PresetID) &&
		equalRef(l.CustomDesignID, o.CustomDesignID) &&
		l.IsSystemLabel == o.IsSystemLabel &&
		l.CreatedAt == o.CreatedAt &&
		equalPtr(l.LastUsedAt, o.LastUsedAt)
}

// Board groups notes by hashtag. CustomStyle is an opaque JSON document.
type Board struct {
	ID            string
	Hashtag       string
	CustomStyle   []byte
	BoardDesignID *string
	CreatedAt     int64
	UpdatedAt     int64
}

func (b Board) Equal(o Board) bool {
	return b.ID == o.ID &&
		b.Hashtag == o.Hashtag &&
		bytes.Equal(b.CustomStyle, o.CustomStyle) &&
		equalRef(b.BoardDesignID, o.BoardDesignID) &&
		b.CreatedAt == o.CreatedAt &&
		b.UpdatedAt == o.UpdatedAt
}
