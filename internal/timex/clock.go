package timex

import "time"

// Clock returns the current time as epoch milliseconds.
type Clock func() int64

// NowMillis is the wall clock.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}

// Advance returns the next modification timestamp after prev. It never moves
// backwards, so two writes within one millisecond still order correctly.
func Advance(prev, now int64) int64 {
	if now > prev {
		return now
	}
	return prev + 1
}
