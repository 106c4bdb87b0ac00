package zet

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/flyer26/zet-display/model"
)

// Stops this close in both axes are considered the same boarding
// point. 0.02 decimal degrees is roughly 1.5-2 km at European
// latitudes.
const clusterTolerance = 0.02

// Clusters maps physical stop records onto logical stations.
type Clusters struct {
	// stop_id to logical station name
	StationByStop map[string]string

	// logical station name to its representative coordinate
	Coords map[string]model.Coordinate

	// all logical station names, sorted
	Names []string
}

// ClusterStops groups same-named stops into logical stations.
//
// Stops are grouped by trimmed exact name first. Within a name group,
// each stop joins the first existing cluster whose seed stop lies
// within the bounding-box tolerance, or starts a new cluster. Only
// the seed is compared against, never the other members: this greedy
// first-fit assignment is order dependent, and deliberately so, since
// the suffix numbering below is part of the observable station names.
// When a name group ends up with several clusters, each gets the base
// name with " (k)" appended in discovery order; a lone cluster keeps
// the bare name. The seed's coordinate represents the whole cluster.
func ClusterStops(stops []*model.Stop) *Clusters {
	groups := map[string][]*model.Stop{}
	order := []string{}
	for _, stop := range stops {
		name := strings.TrimSpace(stop.Name)
		if name == "" {
			continue
		}
		if _, seen := groups[name]; !seen {
			order = append(order, name)
		}
		groups[name] = append(groups[name], stop)
	}

	c := &Clusters{
		StationByStop: map[string]string{},
		Coords:        map[string]model.Coordinate{},
	}

	for _, name := range order {
		clusters := [][]*model.Stop{}

		for _, stop := range groups[name] {
			assigned := false
			for i, cluster := range clusters {
				seed := cluster[0]
				if math.Abs(stop.Lat-seed.Lat) <= clusterTolerance &&
					math.Abs(stop.Lon-seed.Lon) <= clusterTolerance {
					clusters[i] = append(clusters[i], stop)
					assigned = true
					break
				}
			}
			if !assigned {
				clusters = append(clusters, []*model.Stop{stop})
			}
		}

		for i, cluster := range clusters {
			station := name
			if len(clusters) > 1 {
				station = fmt.Sprintf("%s (%d)", name, i+1)
			}

			seed := cluster[0]
			c.Coords[station] = model.Coordinate{Lat: seed.Lat, Lon: seed.Lon}
			for _, stop := range cluster {
				c.StationByStop[stop.ID] = station
			}
		}
	}

	names := make([]string, 0, len(c.Coords))
	for name := range c.Coords {
		names = append(names, name)
	}
	sort.Strings(names)
	c.Names = names

	return c
}
