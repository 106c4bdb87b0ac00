package parse

import (
	"fmt"
	"io"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/flyer26/zet-display/model"
)

type CalendarCSV struct {
	ServiceID string `csv:"service_id"`
	StartDate string `csv:"start_date"`
	EndDate   string `csv:"end_date"`
	Monday    string `csv:"monday"`
	Tuesday   string `csv:"tuesday"`
	Wednesday string `csv:"wednesday"`
	Thursday  string `csv:"thursday"`
	Friday    string `csv:"friday"`
	Saturday  string `csv:"saturday"`
	Sunday    string `csv:"sunday"`
}

// ParseCalendar reads calendar.txt into rows with a weekday bitmask
// (bit 1<<time.Weekday set when the service runs that day). Rows with
// garbage weekday flags or no service_id are dropped.
func ParseCalendar(data io.Reader) ([]*model.Calendar, error) {
	calendarCsv := []*CalendarCSV{}
	if err := gocsv.Unmarshal(data, &calendarCsv); err != nil {
		return nil, fmt.Errorf("unmarshaling calendar csv: %w", err)
	}

	calendars := []*model.Calendar{}
	seen := map[string]bool{}
	for _, c := range calendarCsv {
		if c.ServiceID == "" || seen[c.ServiceID] {
			continue
		}

		flags := []struct {
			value string
			day   time.Weekday
		}{
			{c.Monday, time.Monday},
			{c.Tuesday, time.Tuesday},
			{c.Wednesday, time.Wednesday},
			{c.Thursday, time.Thursday},
			{c.Friday, time.Friday},
			{c.Saturday, time.Saturday},
			{c.Sunday, time.Sunday},
		}

		var weekday int8
		bad := false
		for _, f := range flags {
			switch f.value {
			case "", "0":
			case "1":
				weekday |= 1 << f.day
			default:
				bad = true
			}
		}
		if bad {
			continue
		}

		seen[c.ServiceID] = true
		calendars = append(calendars, &model.Calendar{
			ServiceID: c.ServiceID,
			StartDate: c.StartDate,
			EndDate:   c.EndDate,
			Weekday:   weekday,
		})
	}

	return calendars, nil
}
