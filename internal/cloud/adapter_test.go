package cloud

import (
	"encoding/json"
	"testing"

	"github.com/dmitrijs2005/toonsync/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullNote() models.Note {
	return models.Note{
		ID:                  "3f1c9a52-7c1e-4c1b-9d55-0a8e7f2a4b10",
		Title:               "Trip",
		Content:             "pack the tent",
		Labels:              []string{"travel", "summer"},
		Color:               "#B3E5FC",
		DesignID:            models.Ptr("design-42"),
		ActiveDesignLabelID: models.Ptr("travel"),
		Images:              []string{"https://cdn.example/1.png", "https://cdn.example/2.png"},
		IsPinned:            true,
		IsArchived:          true,
		IsDeleted:           true,
		DeletedAt:           models.Ptr(int64(1714557700456)),
		CreatedAt:           1714557600123,
		UpdatedAt:           1714557700456,
	}
}

func TestToNoteRecord_MapsEveryField(t *testing.T) {
	r := ToNoteRecord(fullNote(), "user-1")

	assert.Equal(t, "3f1c9a52-7c1e-4c1b-9d55-0a8e7f2a4b10", r.ID)
	assert.Equal(t, "user-1", r.UserID)
	assert.Equal(t, "Trip", r.Title)
	assert.Equal(t, "pack the tent", r.Content)
	assert.Equal(t, []string{"travel", "summer"}, r.Labels)
	assert.Equal(t, "#B3E5FC", r.Color)
	assert.Equal(t, "design-42", *r.DesignID)
	assert.Equal(t, "travel", *r.ActiveDesignLabelID)
	assert.Len(t, r.Images, 2)
	assert.True(t, r.IsPinned)
	assert.True(t, r.IsArchived)
	assert.True(t, r.IsDeleted)
	assert.Equal(t, "2024-05-01T10:01:40.456Z", *r.DeletedAt)
	assert.Equal(t, "2024-05-01T10:00:00.123Z", r.CreatedAt)
	assert.Equal(t, "2024-05-01T10:01:40.456Z", r.UpdatedAt)
	assert.Equal(t, int64(1714557700456), r.UpdatedAtMillis())
}

func TestNoteRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		note models.Note
	}{
		{name: "all fields", note: fullNote()},
		{name: "no design", note: func() models.Note {
			n := fullNote()
			n.DesignID = nil
			n.ActiveDesignLabelID = nil
			n.DeletedAt = nil
			n.IsDeleted = false
			return n
		}()},
		{name: "empty collections", note: models.Note{
			ID:        "n2",
			Labels:    []string{},
			Images:    []string{},
			Color:     "#FFFFFF",
			CreatedAt: 1,
			UpdatedAt: 1,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromNoteRecord(ToNoteRecord(tt.note, "user-1"))
			assert.Equal(t, tt.note, got)
		})
	}
}

func TestNoteRoundTrip_EmptyReferences(t *testing.T) {
	n := fullNote()
	n.DesignID = models.Ptr("")
	n.ActiveDesignLabelID = models.Ptr("")

	r := ToNoteRecord(n, "user-1")
	assert.Nil(t, r.DesignID)
	assert.Nil(t, r.ActiveDesignLabelID)

	got := FromNoteRecord(r)
	assert.True(t, n.Equal(got))
	assert.Nil(t, got.DesignID)
	assert.Nil(t, got.ActiveDesignLabelID)
}

func TestLabelAndBoardRecords_EmptyReferencesAreAbsent(t *testing.T) {
	lr := ToLabelRecord(models.Label{ID: "l1", Name: "x", PresetID: models.Ptr(""), CustomDesignID: models.Ptr("")}, "user-1")
	assert.Nil(t, lr.PresetID)
	assert.Nil(t, lr.CustomDesignID)

	br := ToBoardRecord(models.Board{ID: "b1", Hashtag: "x", BoardDesignID: models.Ptr("")}, "user-1")
	assert.Nil(t, br.BoardDesignID)
}

func TestToNoteRecord_DoesNotAlias(t *testing.T) {
	n := fullNote()
	r := ToNoteRecord(n, "u")
	r.Labels[0] = "changed"
	*r.DesignID = "changed"
	assert.Equal(t, "travel", n.Labels[0])
	assert.Equal(t, "design-42", *n.DesignID)
}

func TestFromNoteRecord_MissingOptionalColumns(t *testing.T) {
	var r NoteRecord
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": "cloud-note-1",
		"user_id": "user-1",
		"title": "From web",
		"created_at": "2024-05-01T10:00:00+00:00",
		"updated_at": "2024-05-01T10:00:05.5+00:00"
	}`), &r))

	n := FromNoteRecord(r)
	assert.Equal(t, "cloud-note-1", n.ID)
	assert.Equal(t, "From web", n.Title)
	assert.Equal(t, []string{}, n.Labels)
	assert.Equal(t, []string{}, n.Images)
	assert.Nil(t, n.DesignID)
	assert.Nil(t, n.ActiveDesignLabelID)
	assert.Nil(t, n.DeletedAt)
	assert.Equal(t, int64(1714557600000), n.CreatedAt)
	assert.Equal(t, int64(1714557605500), n.UpdatedAt)
}

func TestFromNoteRecord_EmptyStringsAreAbsent(t *testing.T) {
	n := FromNoteRecord(NoteRecord{ID: "x", DesignID: models.Ptr(""), CreatedAt: "2024-05-01T10:00:00Z"})
	assert.Nil(t, n.DesignID)
	assert.Equal(t, n.CreatedAt, n.UpdatedAt, "missing updated_at falls back to created_at")
}

func TestLabelRoundTrip(t *testing.T) {
	l := models.Label{
		ID:             "label-1",
		Name:           "travel",
		PresetID:       models.Ptr("preset-ocean"),
		CustomDesignID: models.Ptr("design-7"),
		IsSystemLabel:  true,
		CreatedAt:      1714557600123,
		LastUsedAt:     models.Ptr(int64(1714557900000)),
	}
	r := ToLabelRecord(l, "user-1")
	assert.Equal(t, "user-1", r.UserID)
	assert.Equal(t, int64(1714557900000), r.SyncTimeMillis())
	assert.Equal(t, l, FromLabelRecord(r))

	l.LastUsedAt = nil
	l.PresetID = nil
	r = ToLabelRecord(l, "user-1")
	assert.Nil(t, r.LastUsedAt)
	assert.Equal(t, int64(1714557600123), r.SyncTimeMillis())
	assert.Equal(t, l, FromLabelRecord(r))
}

func TestBoardRoundTrip(t *testing.T) {
	b := models.Board{
		ID:            "board-1",
		Hashtag:       "work",
		CustomStyle:   []byte(`{"background":"#222","sticker":"star"}`),
		BoardDesignID: models.Ptr("design-9"),
		CreatedAt:     1714557600123,
		UpdatedAt:     1714557600999,
	}
	r := ToBoardRecord(b, "user-1")
	assert.JSONEq(t, `{"background":"#222","sticker":"star"}`, string(r.CustomStyle))
	assert.Equal(t, int64(1714557600999), r.UpdatedAtMillis())
	assert.Equal(t, b, FromBoardRecord(r))

	b.CustomStyle = nil
	b.BoardDesignID = nil
	assert.Equal(t, b, FromBoardRecord(ToBoardRecord(b, "user-1")))

	assert.Nil(t, FromBoardRecord(BoardRecord{ID: "b", CustomStyle: json.RawMessage("null")}).CustomStyle)
}
