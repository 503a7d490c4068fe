// Package realtime delivers cloud note changes to an open session.
//
// Cloud triggers publish a small JSON notice on a Postgres NOTIFY channel.
// The Bridge listens, keeps notices for the subscribed user, re-reads the
// changed row and hands the translated note to the caller. StoreApplier is
// the standard caller: it writes those notes into the local store under the
// same latest_wins rule the bulk sync uses.
package realtime

import (
	"encoding/json"
	"fmt"
	"strings"
)

type Op string

const (
	OpInsert Op = "INSERT"
	OpUpdate Op = "UPDATE"
	OpDelete Op = "DELETE"
)

// Event is the NOTIFY payload written by the notes trigger.
type Event struct {
	Type   Op     `json:"type"`
	ID     string `json:"id"`
	UserID string `json:"user_id"`
}

// ParseEvent decodes a payload. Op names are case-insensitive.
func ParseEvent(payload string) (Event, error) {
	var e Event
	if err := json.Unmarshal([]byte(payload), &e); err != nil {
		return Event{}, fmt.Errorf("decode event: %w", err)
	}
	e.Type = Op(strings.ToUpper(string(e.Type)))
	switch e.Type {
	case OpInsert, OpUpdate, OpDelete:
	default:
		return Event{}, fmt.Errorf("unknown event type %q", e.Type)
	}
	if e.ID == "" {
		return Event{}, fmt.Errorf("event without id")
	}
	return e, nil
}
