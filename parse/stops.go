package parse

import (
	"fmt"
	"io"
	"strconv"

	"github.com/gocarina/gocsv"

	"github.com/flyer26/zet-display/model"
)

type StopCSV struct {
	ID   string `csv:"stop_id"`
	Name string `csv:"stop_name"`
	Lat  string `csv:"stop_lat"`
	Lon  string `csv:"stop_lon"`
}

// ParseStops reads stops.txt. Rows without an id, a name, or a
// parseable coordinate pair are dropped rather than failing the whole
// load, as a single malformed stop shouldn't take the board down.
func ParseStops(data io.Reader) ([]*model.Stop, error) {
	stopCsv := []*StopCSV{}
	if err := gocsv.Unmarshal(data, &stopCsv); err != nil {
		return nil, fmt.Errorf("unmarshaling stops csv: %w", err)
	}

	stops := []*model.Stop{}
	seen := map[string]bool{}
	for _, st := range stopCsv {
		if st.ID == "" || st.Name == "" || seen[st.ID] {
			continue
		}

		lat, errLat := strconv.ParseFloat(st.Lat, 64)
		lon, errLon := strconv.ParseFloat(st.Lon, 64)
		if errLat != nil || errLon != nil {
			continue
		}

		seen[st.ID] = true
		stops = append(stops, &model.Stop{
			ID:   st.ID,
			Name: st.Name,
			Lat:  lat,
			Lon:  lon,
		})
	}

	return stops, nil
}
