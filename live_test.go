package zet

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	proto "google.golang.org/protobuf/proto"

	p "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"

	"github.com/flyer26/zet-display/downloader"
)

type fakeDownloader struct {
	data  []byte
	err   error
	calls int
}

func (d *fakeDownloader) Get(ctx context.Context, url string, options downloader.GetOptions) ([]byte, error) {
	d.calls++
	if d.err != nil {
		return nil, d.err
	}
	return d.data, nil
}

func delayFeed(t *testing.T, delays map[string]int32) []byte {
	entities := []*p.FeedEntity{}
	for tripID, delay := range delays {
		entities = append(entities, &p.FeedEntity{
			Id: proto.String(tripID),
			TripUpdate: &p.TripUpdate{
				Trip: &p.TripDescriptor{TripId: proto.String(tripID)},
				StopTimeUpdate: []*p.TripUpdate_StopTimeUpdate{
					{Departure: &p.TripUpdate_StopTimeEvent{Delay: proto.Int32(delay)}},
				},
			},
		})
	}

	data, err := proto.Marshal(&p.FeedMessage{
		Header: &p.FeedHeader{
			GtfsRealtimeVersion: proto.String("2.0"),
			Incrementality:      p.FeedHeader_FULL_DATASET.Enum(),
		},
		Entity: entities,
	})
	require.NoError(t, err)
	return data
}

func TestDelayCacheServesWithinTTL(t *testing.T) {
	dl := &fakeDownloader{data: delayFeed(t, map[string]int32{"t1": 120})}

	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	cache := NewDelayCache("http://example.com/rt", dl)
	cache.TimeNow = func() time.Time { return now }

	delays := cache.Delays(context.Background())
	assert.Equal(t, map[string]int{"t1": 120}, delays)
	assert.Equal(t, 1, dl.calls)

	// Within the TTL the cached map is served untouched, even if
	// the upstream has new data.
	dl.data = delayFeed(t, map[string]int32{"t1": 300})
	now = now.Add(5 * time.Second)
	delays = cache.Delays(context.Background())
	assert.Equal(t, map[string]int{"t1": 120}, delays)
	assert.Equal(t, 1, dl.calls)

	// Past the TTL it's refetched, and the map is replaced
	// wholesale.
	now = now.Add(4 * time.Second)
	delays = cache.Delays(context.Background())
	assert.Equal(t, map[string]int{"t1": 300}, delays)
	assert.Equal(t, 2, dl.calls)
}

func TestDelayCacheFailsOpen(t *testing.T) {
	dl := &fakeDownloader{data: delayFeed(t, map[string]int32{"t1": 60})}

	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	cache := NewDelayCache("http://example.com/rt", dl)
	cache.TimeNow = func() time.Time { return now }

	delays := cache.Delays(context.Background())
	assert.Equal(t, map[string]int{"t1": 60}, delays)

	// Upstream breaks; last-known-good keeps being served.
	dl.err = errors.New("upstream down")
	now = now.Add(time.Minute)
	delays = cache.Delays(context.Background())
	assert.Equal(t, map[string]int{"t1": 60}, delays)

	// Decode failure behaves the same way.
	dl.err = nil
	dl.data = []byte("not a protobuf")
	now = now.Add(time.Minute)
	delays = cache.Delays(context.Background())
	assert.Equal(t, map[string]int{"t1": 60}, delays)
}

func TestDelayCacheEmptyWithoutFirstFetch(t *testing.T) {
	dl := &fakeDownloader{err: errors.New("upstream down")}

	cache := NewDelayCache("http://example.com/rt", dl)

	// Nothing good was ever fetched: an empty map, not an error.
	delays := cache.Delays(context.Background())
	assert.Equal(t, map[string]int{}, delays)
}

func TestDelayCacheNoURL(t *testing.T) {
	dl := &fakeDownloader{}

	cache := NewDelayCache("", dl)
	delays := cache.Delays(context.Background())
	assert.Equal(t, map[string]int{}, delays)
	assert.Equal(t, 0, dl.calls)
}
