package parse

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/flyer26/zet-display/model"
)

type RouteCSV struct {
	ID        string `csv:"route_id"`
	ShortName string `csv:"route_short_name"`
	LongName  string `csv:"route_long_name"`
}

func ParseRoutes(data io.Reader) ([]*model.Route, error) {
	routeCsv := []*RouteCSV{}
	if err := gocsv.Unmarshal(data, &routeCsv); err != nil {
		return nil, fmt.Errorf("unmarshaling routes csv: %w", err)
	}

	routes := []*model.Route{}
	seen := map[string]bool{}
	for _, r := range routeCsv {
		if r.ID == "" || seen[r.ID] {
			continue
		}
		seen[r.ID] = true

		routes = append(routes, &model.Route{
			ID:        r.ID,
			ShortName: r.ShortName,
			LongName:  r.LongName,
		})
	}

	return routes, nil
}
