package parse

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/spkg/bom"

	"github.com/flyer26/zet-display/model"
)

// StaticFeed holds the parsed lookup tables of a static dump, plus a
// handle for streaming stop_times.txt, which tends to be far too
// large to materialize up front.
type StaticFeed struct {
	Stops         []*model.Stop
	Routes        []*model.Route
	Trips         []*model.Trip
	Calendars     []*model.Calendar
	CalendarDates []*model.CalendarDate

	stopTimes *zip.File
}

// OpenStatic reads a zipped static dump. Missing files are treated as
// empty tables, with the exception of stops.txt and trips.txt, which
// the schedule build cannot do anything useful without.
func OpenStatic(buf []byte) (*StaticFeed, error) {
	r, err := zip.NewReader(bytes.NewReader(buf), int64(len(buf)))
	if err != nil {
		return nil, fmt.Errorf("unzipping: %w", err)
	}

	file := map[string]*zip.File{
		"routes.txt":         nil,
		"stops.txt":          nil,
		"trips.txt":          nil,
		"stop_times.txt":     nil,
		"calendar.txt":       nil,
		"calendar_dates.txt": nil,
	}

	for _, f := range r.File {
		// There should not be any subdirectories. But, some
		// agencies don't care.
		if f.FileInfo().IsDir() {
			continue
		}
		path := strings.Split(f.Name, "/")
		fName := path[len(path)-1]

		if _, found := file[fName]; !found {
			continue
		}

		file[fName] = f
	}

	for _, required := range []string{"stops.txt", "trips.txt"} {
		if file[required] == nil {
			return nil, fmt.Errorf("missing %s", required)
		}
	}

	// LazyCSVReader required (at least) to survive sloppy use of
	// quotes. The BOM reader strips unicode BOMs if present.
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		return gocsv.LazyCSVReader(bom.NewReader(in))
	})

	feed := &StaticFeed{stopTimes: file["stop_times.txt"]}

	parsers := []struct {
		name string
		fn   func(io.Reader) error
	}{
		{"stops.txt", func(r io.Reader) (err error) {
			feed.Stops, err = ParseStops(r)
			return
		}},
		{"routes.txt", func(r io.Reader) (err error) {
			feed.Routes, err = ParseRoutes(r)
			return
		}},
		{"trips.txt", func(r io.Reader) (err error) {
			feed.Trips, err = ParseTrips(r)
			return
		}},
		{"calendar.txt", func(r io.Reader) (err error) {
			feed.Calendars, err = ParseCalendar(r)
			return
		}},
		{"calendar_dates.txt", func(r io.Reader) (err error) {
			feed.CalendarDates, err = ParseCalendarDates(r)
			return
		}},
	}

	for _, p := range parsers {
		if file[p.name] == nil {
			continue
		}
		rc, err := file[p.name].Open()
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", p.name, err)
		}
		err = p.fn(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", p.name, err)
		}
	}

	return feed, nil
}

// StopTimes streams stop_times.txt through fn, row by row. Column
// indices are resolved from the header, so the table survives column
// reordering. A feed without stop_times.txt streams nothing.
func (f *StaticFeed) StopTimes(fn func(*StopTimeRow) error) error {
	if f.stopTimes == nil {
		return nil
	}

	rc, err := f.stopTimes.Open()
	if err != nil {
		return fmt.Errorf("opening stop_times.txt: %w", err)
	}
	defer rc.Close()

	return streamStopTimes(rc, fn)
}
