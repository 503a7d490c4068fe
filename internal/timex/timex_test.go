package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuration_UnmarshalJSON(t *testing.T) {
	var v struct {
		A Duration `json:"a"`
		B Duration `json:"b"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"30s","b":1000000000}`), &v))
	assert.Equal(t, 30*time.Second, v.A.Duration)
	assert.Equal(t, time.Second, v.B.Duration)

	require.Error(t, json.Unmarshal([]byte(`{"a":true}`), &v))
	require.Error(t, json.Unmarshal([]byte(`{"a":"soon"}`), &v))
}

func TestDuration_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Duration{Duration: 90 * time.Second})
	require.NoError(t, err)
	assert.Equal(t, `"1m30s"`, string(b))
}

func TestFormatMillis(t *testing.T) {
	assert.Equal(t, "1970-01-01T00:00:00.000Z", FormatMillis(0))
	assert.Equal(t, "2024-05-01T10:00:00.123Z", FormatMillis(1714557600123))
}

func TestParseMillis(t *testing.T) {
	ms, ok := ParseMillis("2024-05-01T10:00:00.123Z")
	require.True(t, ok)
	assert.Equal(t, int64(1714557600123), ms)

	ms, ok = ParseMillis("2024-05-01T12:00:00.123+02:00")
	require.True(t, ok)
	assert.Equal(t, int64(1714557600123), ms)

	ms, ok = ParseMillis("2024-05-01T10:00:00.123456+00:00")
	require.True(t, ok)
	assert.Equal(t, int64(1714557600123), ms)

	_, ok = ParseMillis("")
	assert.False(t, ok)
	_, ok = ParseMillis("yesterday")
	assert.False(t, ok)
}

func TestFormatParseRoundTrip(t *testing.T) {
	for _, ms := range []int64{0, 1, 999, 1714557600123, 4102444800000} {
		got, ok := ParseMillis(FormatMillis(ms))
		require.True(t, ok)
		assert.Equal(t, ms, got)
	}
}

func TestAdvance(t *testing.T) {
	assert.Equal(t, int64(2000), Advance(1000, 2000))
	assert.Equal(t, int64(1001), Advance(1000, 1000))
	assert.Equal(t, int64(1001), Advance(1000, 900))
}

func TestNowMillis(t *testing.T) {
	before := time.Now().UnixMilli()
	got := NowMillis()
	assert.GreaterOrEqual(t, got, before)
}
