package zet

import (
	"log/slog"
	"time"

	"github.com/flyer26/zet-display/model"
)

// ActiveServices resolves the set of service IDs running on the
// effective service day of now.
//
// The base pass takes every calendar row whose weekday flag for the
// effective day is set and whose [start_date, end_date] range covers
// the effective date. Dates are compared as YYYYMMDD strings; with
// zero padding the lexicographic order matches chronological order,
// and no parsing ambiguity can creep in. Exceptions run after the
// base pass and always win: an Added row inserts a service the
// calendar never mentions, a Removed row deletes one it does.
//
// Empty tables are fine. An empty result is not an error either, but
// it gets logged: a day with zero services usually means the feed's
// dates are off, not that nothing runs.
func ActiveServices(
	now time.Time,
	cutoffHour int,
	calendars []*model.Calendar,
	dates []*model.CalendarDate,
	logger *slog.Logger,
) map[string]bool {

	day, _ := ServiceDay(now, cutoffHour)
	date := day.Format("20060102")
	weekdayBit := int8(1) << day.Weekday()

	services := map[string]bool{}
	for _, c := range calendars {
		if c.Weekday&weekdayBit == 0 {
			continue
		}
		if c.StartDate > date || c.EndDate < date {
			continue
		}
		services[c.ServiceID] = true
	}

	for _, cd := range dates {
		if cd.Date != date {
			continue
		}
		switch cd.ExceptionType {
		case model.ExceptionAdded:
			services[cd.ServiceID] = true
		case model.ExceptionRemoved:
			delete(services, cd.ServiceID)
		}
	}

	if len(services) == 0 && logger != nil {
		logger.Warn("no active services for service day", "date", date)
	}

	return services
}
