package parse

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flyer26/zet-display/model"
)

func TestParseStops(t *testing.T) {
	content := strings.Join([]string{
		"stop_id,stop_name,stop_lat,stop_lon",
		"s1,Main Sq,45.8131,15.9775",
		"s2,Main Sq,45.8133,15.9779",
		",Nameless,45.0,15.0",
		"s3,,45.0,15.0",
		"s4,Borongaj,not-a-float,15.0",
		"s1,Dupe,45.0,15.0",
	}, "\n")

	stops, err := ParseStops(bytes.NewBufferString(content))
	require.NoError(t, err)

	assert.Equal(t, []*model.Stop{
		{ID: "s1", Name: "Main Sq", Lat: 45.8131, Lon: 15.9775},
		{ID: "s2", Name: "Main Sq", Lat: 45.8133, Lon: 15.9779},
	}, stops)
}

func TestParseTrips(t *testing.T) {
	content := strings.Join([]string{
		"trip_id,route_id,service_id,trip_headsign",
		"t1,r1,wd,Dubec",
		"t2,r1,su,Ljubljanica",
		",r1,wd,Nowhere",
		"t3,,wd,Nowhere",
	}, "\n")

	trips, err := ParseTrips(bytes.NewBufferString(content))
	require.NoError(t, err)

	assert.Equal(t, []*model.Trip{
		{ID: "t1", RouteID: "r1", ServiceID: "wd", Headsign: "Dubec"},
		{ID: "t2", RouteID: "r1", ServiceID: "su", Headsign: "Ljubljanica"},
	}, trips)
}

func TestParseRoutes(t *testing.T) {
	content := strings.Join([]string{
		"route_id,route_short_name,route_long_name",
		"r1,4,Savski most - Dubec",
		"r2,,Night line",
	}, "\n")

	routes, err := ParseRoutes(bytes.NewBufferString(content))
	require.NoError(t, err)

	assert.Equal(t, []*model.Route{
		{ID: "r1", ShortName: "4", LongName: "Savski most - Dubec"},
		{ID: "r2", ShortName: "", LongName: "Night line"},
	}, routes)
}
