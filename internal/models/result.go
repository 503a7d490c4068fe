package models

import "fmt"

// Entity names the record family a sync pass handled.
type Entity string

const (
	EntityNotes  Entity = "notes"
	EntityLabels Entity = "labels"
	EntityBoards Entity = "boards"
)

// SyncErrorKind tags a per-record or per-pass failure.
type SyncErrorKind int

const (
	FetchFailed SyncErrorKind = iota
	UploadFailed
	DownloadFailed
	LocalReadFailed
)

func (k SyncErrorKind) String() string {
	switch k {
	case FetchFailed:
		return "Fetch"
	case UploadFailed:
		return "Upload"
	case DownloadFailed:
		return "Download"
	case LocalReadFailed:
		return "Local read"
	default:
		return "Unknown"
	}
}

// SyncError records one failed operation. ID is empty for pass-level
// failures such as the initial fetch.
type SyncError struct {
	Kind   SyncErrorKind
	Entity Entity
	ID     string
	Err    error
}

// Error renders "Upload error: <cause>" for notes and
// "Upload labels error: <cause>" for the other entities.
func (e *SyncError) Error() string {
	if e.Entity == EntityNotes || e.Entity == "" {
		return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s %s error: %v", e.Kind, e.Entity, e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

// SyncResult summarizes a pass. It is returned even when every record failed.
type SyncResult struct {
	Uploaded   int
	Downloaded int
	Skipped    int
	Errors     []*SyncError
}

// Messages returns the human-readable error strings in order.
func (r SyncResult) Messages() []string {
	out := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		out = append(out, e.Error())
	}
	return out
}

// Merge adds o's counters and errors to r.
func (r *SyncResult) Merge(o SyncResult) {
	r.Uploaded += o.Uploaded
	r.Downloaded += o.Downloaded
	r.Skipped += o.Skipped
	r.Errors = append(r.Errors, o.Errors...)
}

// AddError appends a typed failure.
func (r *SyncResult) AddError(kind SyncErrorKind, entity Entity, id string, err error) {
	r.Errors = append(r.Errors, &SyncError{Kind: kind, Entity: entity, ID: id, Err: err})
}
