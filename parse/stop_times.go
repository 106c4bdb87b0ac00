package parse

import (
	"io"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
)

// One row of stop_times.txt. Times are kept as raw strings here;
// converting them to minutes is the schedule builder's concern, and
// rows for inactive trips are skipped before the time is ever looked
// at.
type StopTimeRow struct {
	TripID        string `csv:"trip_id"`
	StopID        string `csv:"stop_id"`
	DepartureTime string `csv:"departure_time"`
}

func streamStopTimes(data io.Reader, fn func(*StopTimeRow) error) error {
	err := gocsv.UnmarshalToCallbackWithError(data, fn)
	if err != nil {
		return errors.Wrap(err, "streaming stop_times csv")
	}
	return nil
}
