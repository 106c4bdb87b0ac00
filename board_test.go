package zet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flyer26/zet-display/model"
)

func testBoardOpts() BoardOptions {
	return BoardOptions{
		WindowBefore: 2,
		WindowAfter:  60,
		Cap:          15,
		CutoffHour:   DefaultNightCutoff,
	}
}

func TestComposeBoardWindow(t *testing.T) {
	// 10:00 -> currentMinutes 600
	now := zagrebTime(t, "2024-01-15 10:00")

	departures := []model.Departure{
		{TripID: "too-early", Route: "1", Minute: 597, Display: "09:57"},
		{TripID: "edge-before", Route: "1", Minute: 598, Display: "09:58"},
		{TripID: "now", Route: "1", Minute: 600, Display: "10:00"},
		{TripID: "edge-after", Route: "1", Minute: 660, Display: "11:00"},
		{TripID: "too-late", Route: "1", Minute: 661, Display: "11:01"},
	}

	entries := ComposeBoard(departures, nil, now, testBoardOpts())

	ids := []string{}
	for _, e := range entries {
		ids = append(ids, e.TripID)
	}
	assert.Equal(t, []string{"edge-before", "now", "edge-after"}, ids)

	assert.Equal(t, -2, entries[0].Minutes)
	assert.Equal(t, 0, entries[1].Minutes)
	assert.Equal(t, 60, entries[2].Minutes)
}

func TestComposeBoardLiveDelay(t *testing.T) {
	now := zagrebTime(t, "2024-01-15 10:00")

	departures := []model.Departure{
		{TripID: "delayed", Route: "4", Minute: 600, Display: "10:00"},
		{TripID: "ontime", Route: "11", Minute: 601, Display: "10:01"},
	}

	// 125 s rounds to 2 minutes.
	entries := ComposeBoard(departures, map[string]int{"delayed": 125}, now, testBoardOpts())
	require.Equal(t, 2, len(entries))

	// The delayed trip is re-ranked behind the on-time one; the
	// board shows expected departure order.
	assert.Equal(t, "ontime", entries[0].TripID)
	assert.Equal(t, 1, entries[0].Minutes)
	assert.Equal(t, model.StatusScheduled, entries[0].Status)

	assert.Equal(t, "delayed", entries[1].TripID)
	assert.Equal(t, 2, entries[1].Minutes)
	assert.Equal(t, "10:02", entries[1].Display)
	assert.Equal(t, model.StatusLive, entries[1].Status)
}

func TestComposeBoardNegativeDelay(t *testing.T) {
	now := zagrebTime(t, "2024-01-15 10:00")

	departures := []model.Departure{
		{TripID: "early", Route: "4", Minute: 605, Display: "10:05"},
		{TripID: "gone", Route: "4", Minute: 601, Display: "10:01"},
	}

	// Running 90 s early rounds to -2 minutes. A trip pushed just
	// below the departed tolerance drops off the board.
	delays := map[string]int{"early": -90, "gone": -300}
	entries := ComposeBoard(departures, delays, now, testBoardOpts())

	require.Equal(t, 1, len(entries))
	assert.Equal(t, "early", entries[0].TripID)
	assert.Equal(t, 3, entries[0].Minutes)
	assert.Equal(t, "10:03", entries[0].Display)
}

func TestComposeBoardCap(t *testing.T) {
	now := zagrebTime(t, "2024-01-15 10:00")

	departures := []model.Departure{}
	for i := 0; i < 30; i++ {
		departures = append(departures, model.Departure{
			TripID: "t", Route: "1", Minute: 600 + i,
		})
	}

	entries := ComposeBoard(departures, nil, now, testBoardOpts())
	require.Equal(t, 15, len(entries))
	assert.Equal(t, 0, entries[0].Minutes)
	assert.Equal(t, 14, entries[14].Minutes)
}

func TestComposeBoardNightRollover(t *testing.T) {
	// 00:30 before the cutoff compares as minute 30+1440=1470, so
	// a 25:05 night-line departure (minute 1505) is 35 min away.
	now := zagrebTime(t, "2024-01-16 00:30")

	departures := []model.Departure{
		{TripID: "night", Route: "31", Headsign: "Savski most", Minute: 1505, Display: "01:05"},
		{TripID: "morning", Route: "4", Minute: 390, Display: "06:30"},
	}

	entries := ComposeBoard(departures, nil, now, testBoardOpts())
	require.Equal(t, 1, len(entries))
	assert.Equal(t, "night", entries[0].TripID)
	assert.Equal(t, 35, entries[0].Minutes)
	assert.Equal(t, "01:05", entries[0].Display)
}

func TestComposeBoardIdempotent(t *testing.T) {
	now := zagrebTime(t, "2024-01-15 10:00")

	departures := []model.Departure{
		{TripID: "a", Route: "1", Minute: 610},
		{TripID: "b", Route: "2", Minute: 605},
	}
	delays := map[string]int{"b": 600}

	first := ComposeBoard(departures, delays, now, testBoardOpts())
	second := ComposeBoard(departures, delays, now, testBoardOpts())
	assert.Equal(t, first, second)
}

func TestComposeBoardEmpty(t *testing.T) {
	now := zagrebTime(t, "2024-01-15 10:00")
	entries := ComposeBoard(nil, nil, now, testBoardOpts())
	assert.Equal(t, []model.BoardEntry{}, entries)
}
