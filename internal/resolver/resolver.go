// Package resolver decides, per record id, which replica is authoritative.
//
// Presence always wins: a record held by only one side is copied to the
// other regardless of strategy. When both sides hold content-equal records
// nothing happens. Otherwise the strategy picks a side; under latest_wins
// the newer timestamp wins and ties go to the cloud.
package resolver

import (
	"github.com/dmitrijs2005/toonsync/internal/cloud"
	"github.com/dmitrijs2005/toonsync/internal/models"
)

type Action int

const (
	Skip Action = iota
	Upload
	Download
)

func (a Action) String() string {
	switch a {
	case Skip:
		return "skip"
	case Upload:
		return "upload"
	case Download:
		return "download"
	default:
		return "unknown"
	}
}

// Sides is what the decision needs to know about one id. LocalTime and
// CloudTime are epoch milliseconds and only matter when both sides exist.
type Sides struct {
	HasLocal  bool
	HasCloud  bool
	Equal     bool
	LocalTime int64
	CloudTime int64
}

// Decide applies the resolution rules. Unknown strategies behave like
// latest_wins.
func Decide(s Sides, strategy models.ConflictStrategy) Action {
	switch {
	case s.HasLocal && !s.HasCloud:
		return Upload
	case !s.HasLocal && s.HasCloud:
		return Download
	case !s.HasLocal && !s.HasCloud:
		return Skip
	}

	if s.Equal {
		return Skip
	}

	switch strategy {
	case models.LocalWins:
		return Upload
	case models.CloudWins:
		return Download
	default:
		if s.CloudTime >= s.LocalTime {
			return Download
		}
		return Upload
	}
}

// Resolve decides for a note. Either side may be nil.
func Resolve(local *models.Note, rec *cloud.NoteRecord, strategy models.ConflictStrategy) Action {
	if rec == nil {
		return ResolveNotes(local, nil, strategy)
	}
	remote := cloud.FromNoteRecord(*rec)
	return ResolveNotes(local, &remote, strategy)
}

// ResolveNotes is Resolve for a remote note that is already translated.
func ResolveNotes(local, remote *models.Note, strategy models.ConflictStrategy) Action {
	s := Sides{HasLocal: local != nil, HasCloud: remote != nil}
	if local != nil && remote != nil {
		s.Equal = local.Equal(*remote)
		s.LocalTime = local.UpdatedAt
		s.CloudTime = remote.UpdatedAt
	}
	return Decide(s, strategy)
}

// ResolveLabel decides for a label, comparing last use (or creation) times.
func ResolveLabel(local *models.Label, rec *cloud.LabelRecord, strategy models.ConflictStrategy) Action {
	s := Sides{HasLocal: local != nil, HasCloud: rec != nil}
	if local != nil && rec != nil {
		remote := cloud.FromLabelRecord(*rec)
		s.Equal = local.Equal(remote)
		s.LocalTime = local.SyncTime()
		s.CloudTime = remote.SyncTime()
	}
	return Decide(s, strategy)
}

func ResolveBoard(local *models.Board, rec *cloud.BoardRecord, strategy models.ConflictStrategy) Action {
	s := Sides{HasLocal: local != nil, HasCloud: rec != nil}
	if local != nil && rec != nil {
		remote := cloud.FromBoardRecord(*rec)
		s.Equal = local.Equal(remote)
		s.LocalTime = local.UpdatedAt
		s.CloudTime = remote.UpdatedAt
	}
	return Decide(s, strategy)
}
