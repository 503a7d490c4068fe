// Package repositories holds column codecs shared by the Postgres-backed
// cloud repositories in the subpackages.
//
// text[] columns travel as JSON text (array_to_json on read,
// json_array_elements_text on write) so the repositories only ever bind plain
// strings, which keeps them independent of driver array support.
package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/toonsync/internal/timex"
)

// EncodeTextArray renders s as a JSON array for a $n::json parameter.
func EncodeTextArray(s []string) (string, error) {
	if s == nil {
		s = []string{}
	}
	b, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encode text array: %w", err)
	}
	return string(b), nil
}

// DecodeTextArray parses array_to_json output. NULL and empty input decode to
// an empty slice.
func DecodeTextArray(s sql.NullString) ([]string, error) {
	out := []string{}
	if !s.Valid || s.String == "" || s.String == "null" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(s.String), &out); err != nil {
		return nil, fmt.Errorf("decode text array: %w", err)
	}
	return out, nil
}

// FormatTime renders a timestamptz value with millisecond precision.
func FormatTime(t time.Time) string {
	return timex.FormatMillis(t.UnixMilli())
}

// FormatNullTime is FormatTime for nullable columns.
func FormatNullTime(t sql.NullTime) *string {
	if !t.Valid {
		return nil
	}
	s := FormatTime(t.Time)
	return &s
}

// NullString converts a nullable column to an optional string.
func NullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
