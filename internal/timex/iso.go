package timex

import "time"

// isoLayout is ISO-8601 in UTC with fixed millisecond precision.
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatMillis renders epoch milliseconds as an ISO-8601 UTC string with
// millisecond precision, e.g. "2024-05-01T10:00:00.123Z".
func FormatMillis(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(isoLayout)
}

// ParseMillis parses an ISO-8601 timestamp into epoch milliseconds. Any
// RFC 3339 offset is accepted. The second result is false when s is empty or
// malformed.
func ParseMillis(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return 0, false
	}
	return t.UnixMilli(), true
}
