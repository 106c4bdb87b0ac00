package zet

import (
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/flyer26/zet-display/model"
	"github.com/flyer26/zet-display/parse"
)

// Schedule is one fully built in-memory snapshot of the static
// timetable. It is immutable once published: rebuilds produce a fresh
// Schedule and swap a pointer, they never touch a live one.
type Schedule struct {
	// Effective service day the snapshot was built for, as YYYYMMDD.
	ServiceDay string

	BuiltAt time.Time

	// All logical station names, sorted.
	Stations []string

	// Station name to its departures, ascending by minute-of-day.
	Departures map[string][]model.Departure

	// Station name to representative coordinate.
	Coords map[string]model.Coordinate

	stationByStop map[string]string
}

// FindStation matches a queried name against the canonical station
// list, case-insensitively and ignoring surrounding whitespace.
// Returns "" when nothing matches.
func (s *Schedule) FindStation(query string) string {
	query = strings.TrimSpace(query)
	for _, name := range s.Stations {
		if strings.EqualFold(name, query) {
			return name
		}
	}
	return ""
}

type tripInfo struct {
	route    string
	headsign string
}

// BuildTimetable constructs the per-station departure index from a
// static feed.
//
// Only trips of active services are materialized. stop_times.txt is
// streamed, never held in memory whole: per row, the trip is looked
// up first so rows for inactive trips cost nothing further, then the
// stop is resolved to its logical station. Rows referencing unknown
// stops are dropped. After the stream is consumed every station's
// list is stable-sorted by minute-of-day, so rows tied on the minute
// keep their feed order.
func BuildTimetable(
	feed *parse.StaticFeed,
	active map[string]bool,
	clusters *Clusters,
	logger *slog.Logger,
) (map[string][]model.Departure, []string, error) {

	routeName := map[string]string{}
	for _, r := range feed.Routes {
		name := r.ShortName
		if name == "" {
			name = r.LongName
		}
		routeName[r.ID] = name
	}

	trips := map[string]tripInfo{}
	for _, t := range feed.Trips {
		if !active[t.ServiceID] {
			continue
		}
		trips[t.ID] = tripInfo{route: routeName[t.RouteID], headsign: t.Headsign}
	}

	departures := map[string][]model.Departure{}
	skippedStops := 0

	err := feed.StopTimes(func(row *parse.StopTimeRow) error {
		trip, ok := trips[row.TripID]
		if !ok {
			return nil
		}

		station, ok := clusters.StationByStop[row.StopID]
		if !ok {
			skippedStops++
			return nil
		}

		minute := ParseMinute(row.DepartureTime)
		departures[station] = append(departures[station], model.Departure{
			TripID:   row.TripID,
			Route:    trip.route,
			Headsign: trip.headsign,
			Minute:   minute,
			Display:  FormatMinute(minute),
		})
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	if skippedStops > 0 && logger != nil {
		logger.Warn("stop_times rows referenced unknown stops", "rows", skippedStops)
	}

	stations := make([]string, 0, len(departures))
	for station, deps := range departures {
		sort.SliceStable(deps, func(i, j int) bool {
			return deps[i].Minute < deps[j].Minute
		})
		stations = append(stations, station)
	}
	sort.Strings(stations)

	return departures, stations, nil
}
