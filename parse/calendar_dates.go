package parse

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/flyer26/zet-display/model"
)

type CalendarDateCSV struct {
	ServiceID     string `csv:"service_id"`
	Date          string `csv:"date"`
	ExceptionType string `csv:"exception_type"`
}

func ParseCalendarDates(data io.Reader) ([]*model.CalendarDate, error) {
	calendarDateCsv := []*CalendarDateCSV{}
	if err := gocsv.Unmarshal(data, &calendarDateCsv); err != nil {
		return nil, fmt.Errorf("unmarshaling calendar_dates csv: %w", err)
	}

	dates := []*model.CalendarDate{}
	for _, cd := range calendarDateCsv {
		if cd.ServiceID == "" || cd.Date == "" {
			continue
		}

		var exception model.ExceptionType
		switch cd.ExceptionType {
		case "1":
			exception = model.ExceptionAdded
		case "2":
			exception = model.ExceptionRemoved
		default:
			continue
		}

		dates = append(dates, &model.CalendarDate{
			ServiceID:     cd.ServiceID,
			Date:          cd.Date,
			ExceptionType: exception,
		})
	}

	return dates, nil
}
