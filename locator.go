package zet

import (
	"math"

	"github.com/flyer26/zet-display/model"
)

func HaversineDistance(aLat, aLon, bLat, bLon float64) float64 {
	const earthRadiusKm = 6371

	aLatRad := aLat * math.Pi / 180
	aLonRad := aLon * math.Pi / 180
	bLatRad := bLat * math.Pi / 180
	bLonRad := bLon * math.Pi / 180
	deltaLat := aLatRad - bLatRad
	deltaLon := aLonRad - bLonRad

	a := math.Cos(aLatRad)*math.Cos(bLatRad)*math.Pow(math.Sin(deltaLon/2), 2) + math.Pow(math.Sin(deltaLat/2), 2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return c * earthRadiusKm
}

// NearestStation returns the station whose representative coordinate
// is closest to (lat, lon), if any lies within maxDistanceKm. A plain
// linear scan: station counts sit in the low thousands, a spatial
// index would be overkill. Name order breaks exact distance ties so
// the answer doesn't depend on map iteration.
func NearestStation(lat, lon float64, coords map[string]model.Coordinate, maxDistanceKm float64) (string, bool) {
	best := ""
	bestDist := math.Inf(1)

	for name, coord := range coords {
		d := HaversineDistance(lat, lon, coord.Lat, coord.Lon)
		if d < bestDist || (d == bestDist && name < best) {
			best = name
			bestDist = d
		}
	}

	if best == "" || bestDist > maxDistanceKm {
		return "", false
	}
	return best, true
}
