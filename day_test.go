package zet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceDay(t *testing.T) {
	zagreb, err := time.LoadLocation("Europe/Zagreb")
	require.NoError(t, err)

	for _, tc := range []struct {
		name     string
		now      time.Time
		expected string
		offset   int
	}{
		{
			"afternoon",
			time.Date(2024, 1, 15, 14, 30, 0, 0, zagreb),
			"20240115",
			0,
		},
		{
			"just past midnight",
			time.Date(2024, 1, 16, 0, 30, 0, 0, zagreb),
			"20240115",
			1440,
		},
		{
			"last minute before cutoff",
			time.Date(2024, 1, 16, 3, 59, 0, 0, zagreb),
			"20240115",
			1440,
		},
		{
			"exactly at cutoff",
			time.Date(2024, 1, 16, 4, 0, 0, 0, zagreb),
			"20240116",
			0,
		},
		{
			"rollover across month boundary",
			time.Date(2024, 2, 1, 1, 0, 0, 0, zagreb),
			"20240131",
			1440,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			day, offset := ServiceDay(tc.now, DefaultNightCutoff)
			assert.Equal(t, tc.expected, day.Format("20060102"))
			assert.Equal(t, tc.offset, offset)
		})
	}
}

func TestParseMinute(t *testing.T) {
	for _, tc := range []struct {
		in       string
		expected int
	}{
		{"08:05:00", 485},
		{"00:00:00", 0},
		{"23:59:59", 1439},
		// Post-midnight trips encode hours past 24.
		{"25:05:00", 1505},
		{"24:00:00", 1440},
		// Seconds are ignored.
		{"08:05:59", 485},
		// Garbage sorts last instead of failing the build.
		{"", sentinelMinute},
		{"0805", sentinelMinute},
		{"08:xx:00", sentinelMinute},
		{"08:75:00", sentinelMinute},
	} {
		assert.Equal(t, tc.expected, ParseMinute(tc.in), "input %q", tc.in)
	}
}

func TestFormatMinute(t *testing.T) {
	assert.Equal(t, "08:05", FormatMinute(485))
	assert.Equal(t, "00:00", FormatMinute(0))
	assert.Equal(t, "23:59", FormatMinute(1439))

	// Hours past 24 wrap back onto the clock face.
	assert.Equal(t, "01:05", FormatMinute(1505))
	assert.Equal(t, "00:00", FormatMinute(1440))
}
