package parse

import (
	"fmt"

	gtfsproto "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	proto "google.golang.org/protobuf/proto"
)

// ParseDelays extracts per-trip delays from a realtime feed.
//
// Each trip's delay is taken from the first stop time update of its
// trip update, preferring the departure delay and falling back to the
// arrival delay. Later updates along the trip are ignored: the delay
// is assumed to propagate uniformly to every remaining stop. Canceled
// trips carry no delay observation at all.
func ParseDelays(feed []byte) (map[string]int, error) {
	f := &gtfsproto.FeedMessage{}
	if err := proto.Unmarshal(feed, f); err != nil {
		return nil, fmt.Errorf("unmarshaling protobuf: %w", err)
	}

	if inc := f.GetHeader().GetIncrementality(); inc != gtfsproto.FeedHeader_FULL_DATASET {
		return nil, fmt.Errorf("feed incrementality %s not supported", inc)
	}

	delays := map[string]int{}
	for _, entity := range f.GetEntity() {
		tu := entity.GetTripUpdate()
		if tu == nil {
			continue
		}

		trip := tu.GetTrip()
		if trip.GetTripId() == "" {
			continue
		}
		if trip.GetScheduleRelationship() == gtfsproto.TripDescriptor_CANCELED {
			continue
		}

		updates := tu.GetStopTimeUpdate()
		if len(updates) == 0 {
			continue
		}

		first := updates[0]
		delay := 0
		if dep := first.GetDeparture(); dep != nil {
			delay = int(dep.GetDelay())
		} else if arr := first.GetArrival(); arr != nil {
			delay = int(arr.GetDelay())
		}

		delays[trip.GetTripId()] = delay
	}

	return delays, nil
}
