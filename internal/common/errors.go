// Package common defines shared constants and sentinel errors used across
// the local store, cloud repositories and the sync engine. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")
	// ErrOwnershipConflict means the id already belongs to another user.
	ErrOwnershipConflict = errors.New("record owned by another user")

	// Sync-level errors.
	ErrInvalidStrategy = errors.New("invalid conflict strategy")
	ErrSyncNotAllowed  = errors.New("sync not allowed for user")

	// Realtime errors.
	ErrSubscriptionClosed = errors.New("subscription closed")
	ErrListenerClosed     = errors.New("listener closed")
)

// DefaultRealtimeChannel is the Postgres NOTIFY channel the cloud triggers
// publish note changes on.
const DefaultRealtimeChannel = "notes_changes"
