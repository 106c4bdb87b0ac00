package parse

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/flyer26/zet-display/model"
)

type TripCSV struct {
	ID        string `csv:"trip_id"`
	RouteID   string `csv:"route_id"`
	ServiceID string `csv:"service_id"`
	Headsign  string `csv:"trip_headsign"`
}

func ParseTrips(data io.Reader) ([]*model.Trip, error) {
	tripCsv := []*TripCSV{}
	if err := gocsv.Unmarshal(data, &tripCsv); err != nil {
		return nil, fmt.Errorf("unmarshaling trips csv: %w", err)
	}

	trips := []*model.Trip{}
	seen := map[string]bool{}
	for _, t := range tripCsv {
		if t.ID == "" || t.RouteID == "" || seen[t.ID] {
			continue
		}
		seen[t.ID] = true

		trips = append(trips, &model.Trip{
			ID:        t.ID,
			RouteID:   t.RouteID,
			ServiceID: t.ServiceID,
			Headsign:  t.Headsign,
		})
	}

	return trips, nil
}
