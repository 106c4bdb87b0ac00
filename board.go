package zet

import (
	"math"
	"sort"
	"time"

	"github.com/flyer26/zet-display/model"
)

// Departures this many minutes gone still show on the board, so a
// tram that just left doesn't vanish the second it's due.
const departedTolerance = 2

type BoardOptions struct {
	// Window around "now", in minutes of scheduled time.
	WindowBefore int
	WindowAfter  int

	// Maximum number of entries returned.
	Cap int

	CutoffHour int
}

// ComposeBoard merges a station's static departures with live delays
// into the ranked board shown to a client.
//
// The comparison axis is minutes-of-day, rolled forward by a day
// before the night cutoff so it lines up with the >24h minutes the
// builder produces for post-midnight trips. Scheduled minutes select
// the window; the live delay (rounded to whole minutes) then shifts
// the departure, flags it Live, and decides the final ranking. A trip
// running 5 minutes late is therefore ranked behind an on-time trip
// scheduled 3 minutes after it; the board reflects expected order of
// departure, not timetable order.
func ComposeBoard(
	departures []model.Departure,
	delays map[string]int,
	now time.Time,
	opts BoardOptions,
) []model.BoardEntry {

	_, offset := ServiceDay(now, opts.CutoffHour)
	currentMinutes := now.Hour()*60 + now.Minute() + offset

	entries := []model.BoardEntry{}
	for _, dep := range departures {
		if dep.Minute < currentMinutes-opts.WindowBefore || dep.Minute > currentMinutes+opts.WindowAfter {
			continue
		}

		final := dep.Minute
		status := model.StatusScheduled
		if delay, live := delays[dep.TripID]; live {
			final += int(math.Round(float64(delay) / 60))
			status = model.StatusLive
		}

		until := final - currentMinutes
		if until < -departedTolerance {
			continue
		}

		entries = append(entries, model.BoardEntry{
			TripID:   dep.TripID,
			Route:    dep.Route,
			Headsign: dep.Headsign,
			Minutes:  until,
			Display:  FormatMinute(final),
			Status:   status,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Minutes < entries[j].Minutes
	})

	if opts.Cap > 0 && len(entries) > opts.Cap {
		entries = entries[:opts.Cap]
	}

	return entries
}
