// Package models defines the records the sync engine moves between the local
// store and the cloud: notes, labels and boards, plus the value objects that
// describe a sync pass.
package models

import "slices"

// Note is the unit of synchronization. Timestamps are epoch milliseconds.
type Note struct {
	// ID is a client-generated UUID and is never reassigned.
	ID      string
	Title   string
	Content string

	// Labels is a set; order carries no meaning.
	Labels []string
	Color  string

	// DesignID is a weak reference to a design and may dangle.
	DesignID            *string
	ActiveDesignLabelID *string

	// Images is an ordered list of URIs.
	Images []string

	IsPinned   bool
	IsArchived bool

	// IsDeleted is the soft-delete marker; a deleted note is still synced.
	IsDeleted bool
	DeletedAt *int64

	CreatedAt int64
	// UpdatedAt advances on every local write and is the conflict tie-breaker.
	UpdatedAt int64
}

// Equal reports whether two notes carry the same state. Labels compare as
// sets, nil slices equal empty ones and an empty design reference equals a
// missing one.
func (n Note) Equal(o Note) bool {
	return n.ID == o.ID &&
		n.Title == o.Title &&
		n.Content == o.Content &&
		sameSet(n.Labels, o.Labels) &&
		n.Color == o.Color &&
		equalRef(n.DesignID, o.DesignID) &&
		equalRef(n.ActiveDesignLabelID, o.ActiveDesignLabelID) &&
		slices.Equal(n.Images, o.Images) &&
		n.IsPinned == o.IsPinned &&
		n.IsArchived == o.IsArchived &&
		n.IsDeleted == o.IsDeleted &&
		equalPtr(n.DeletedAt, o.DeletedAt) &&
		n.CreatedAt == o.CreatedAt &&
		n.UpdatedAt == o.UpdatedAt
}

// NotePatch is a partial update. Nil fields are left untouched. The Clear*
// flags reset an optional field to absent, as does setting it to "".
type NotePatch struct {
	Title      *string
	Content    *string
	Labels     *[]string
	Color      *string
	DesignID   *string
	Images     *[]string
	IsPinned   *bool
	IsArchived *bool

	ActiveDesignLabelID *string

	ClearDesignID            bool
	ClearActiveDesignLabelID bool
}

// Apply returns a copy of n with the patch applied. Timestamps are not
// touched; the store owns them.
func (p NotePatch) Apply(n Note) Note {
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
	if p.Labels != nil {
		n.Labels = slices.Clone(*p.Labels)
	}
	if p.Color != nil {
		n.Color = *p.Color
	}
	if p.DesignID != nil {
		n.DesignID = NonEmpty(p.DesignID)
	}
	if p.ClearDesignID {
		n.DesignID = nil
	}
	if p.ActiveDesignLabelID != nil {
		n.ActiveDesignLabelID = NonEmpty(p.ActiveDesignLabelID)
	}
	if p.ClearActiveDesignLabelID {
		n.ActiveDesignLabelID = nil
	}
	if p.Images != nil {
		n.Images = slices.Clone(*p.Images)
	}
	if p.IsPinned != nil {
		n.IsPinned = *p.IsPinned
	}
	if p.IsArchived != nil {
		n.IsArchived = *p.IsArchived
	}
	return n
}

// DefaultNoteColor is assigned to notes created locally without a color.
const DefaultNoteColor = "#FFFFFF"
