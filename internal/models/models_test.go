package models

import (
	"errors"
	"testing"

	"github.com/dmitrijs2005/toonsync/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleNote() Note {
	return Note{
		ID:        "note-1",
		Title:     "Groceries",
		Content:   "milk, eggs",
		Labels:    []string{"home", "todo"},
		Color:     "#FFF59D",
		DesignID:  Ptr("design-1"),
		Images:    []string{"file:///a.png", "file:///b.png"},
		IsPinned:  true,
		CreatedAt: 1000,
		UpdatedAt: 2000,
	}
}

func TestNote_Equal(t *testing.T) {
	a := sampleNote()
	b := sampleNote()
	assert.True(t, a.Equal(b))

	b.Labels = []string{"todo", "home"}
	assert.True(t, a.Equal(b), "labels are a set")

	b = sampleNote()
	b.Images = []string{"file:///b.png", "file:///a.png"}
	assert.False(t, a.Equal(b), "images are ordered")

	b = sampleNote()
	b.DesignID = nil
	assert.False(t, a.Equal(b))

	b = sampleNote()
	b.DesignID = Ptr("design-1")
	assert.True(t, a.Equal(b), "pointers compare by value")

	b = sampleNote()
	b.UpdatedAt++
	assert.False(t, a.Equal(b))

	b = sampleNote()
	b.DesignID = Ptr("")
	b.ActiveDesignLabelID = Ptr("")
	c := b
	c.DesignID = nil
	c.ActiveDesignLabelID = nil
	assert.True(t, b.Equal(c), "empty reference equals a missing one")
	assert.False(t, a.Equal(b))

	a.Labels = nil
	b = a
	b.Labels = []string{}
	assert.True(t, a.Equal(b), "nil equals empty")
}

func TestNotePatch_Apply(t *testing.T) {
	n := sampleNote()

	got := NotePatch{
		Title:         Ptr("Shopping"),
		Labels:        &[]string{"errands"},
		IsArchived:    Ptr(true),
		ClearDesignID: true,
	}.Apply(n)

	assert.Equal(t, "Shopping", got.Title)
	assert.Equal(t, []string{"errands"}, got.Labels)
	assert.True(t, got.IsArchived)
	assert.Nil(t, got.DesignID)
	assert.Equal(t, n.Content, got.Content)
	assert.Equal(t, n.UpdatedAt, got.UpdatedAt)
	assert.Equal(t, []string{"home", "todo"}, n.Labels, "input slice untouched")
}

func TestNotePatch_ApplyEmptyReferenceClears(t *testing.T) {
	n := sampleNote()
	n.ActiveDesignLabelID = Ptr("home")

	got := NotePatch{DesignID: Ptr(""), ActiveDesignLabelID: Ptr("")}.Apply(n)

	assert.Nil(t, got.DesignID)
	assert.Nil(t, got.ActiveDesignLabelID)
}

func TestNonEmpty(t *testing.T) {
	assert.Nil(t, NonEmpty(nil))
	assert.Nil(t, NonEmpty(Ptr("")))

	src := Ptr("design-1")
	got := NonEmpty(src)
	require.NotNil(t, got)
	assert.Equal(t, "design-1", *got)
	assert.NotSame(t, src, got)
}

func TestLabel_SyncTime(t *testing.T) {
	l := Label{ID: "l1", CreatedAt: 100}
	assert.Equal(t, int64(100), l.SyncTime())
	l.LastUsedAt = Ptr(int64(500))
	assert.Equal(t, int64(500), l.SyncTime())
}

func TestBoard_Equal(t *testing.T) {
	a := Board{ID: "b1", Hashtag: "work", CustomStyle: []byte(`{"bg":"#000"}`), CreatedAt: 1, UpdatedAt: 2}
	b := a
	b.CustomStyle = []byte(`{"bg":"#000"}`)
	assert.True(t, a.Equal(b))
	b.CustomStyle = []byte(`{"bg":"#fff"}`)
	assert.False(t, a.Equal(b))
}

func TestParseConflictStrategy(t *testing.T) {
	for in, want := range map[string]ConflictStrategy{
		"":            LatestWins,
		"latest_wins": LatestWins,
		"local_wins":  LocalWins,
		"cloud_wins":  CloudWins,
	} {
		got, err := ParseConflictStrategy(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseConflictStrategy("merge")
	require.ErrorIs(t, err, common.ErrInvalidStrategy)
}

func TestSyncError_Messages(t *testing.T) {
	var r SyncResult
	r.AddError(FetchFailed, EntityNotes, "", errors.New("Network error"))
	r.AddError(UploadFailed, EntityNotes, "note-1", errors.New("Upload failed"))
	r.AddError(DownloadFailed, EntityNotes, "note-2", errors.New("disk full"))
	r.AddError(UploadFailed, EntityLabels, "l1", errors.New("denied"))

	assert.Equal(t, []string{
		"Fetch error: Network error",
		"Upload error: Upload failed",
		"Download error: disk full",
		"Upload labels error: denied",
	}, r.Messages())

	cause := errors.New("root")
	r.AddError(UploadFailed, EntityBoards, "b1", cause)
	assert.ErrorIs(t, r.Errors[4], cause)
}

func TestSyncResult_Merge(t *testing.T) {
	a := SyncResult{Uploaded: 1, Downloaded: 2, Skipped: 3}
	b := SyncResult{Uploaded: 4, Downloaded: 5, Skipped: 6}
	b.AddError(FetchFailed, EntityBoards, "", errors.New("x"))

	a.Merge(b)
	assert.Equal(t, 5, a.Uploaded)
	assert.Equal(t, 7, a.Downloaded)
	assert.Equal(t, 9, a.Skipped)
	assert.Equal(t, []string{"Fetch boards error: x"}, a.Messages())

	assert.Empty(t, SyncResult{}.Messages())
}
