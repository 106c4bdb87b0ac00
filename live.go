package zet

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/flyer26/zet-display/downloader"
	"github.com/flyer26/zet-display/metrics"
	"github.com/flyer26/zet-display/parse"
)

// DelayCache serves the realtime trip-delay map, bounding the
// upstream call rate with a short TTL.
//
// The mutex is held for the whole call, fetch included, so callers
// arriving while a fetch is in flight wait for it and share its
// result instead of issuing duplicates. The cache fails open: when
// the upstream fetch or decode breaks, the previous map keeps being
// served (or an empty one, if there never was a good fetch), and the
// caller never sees an error. A board built on slightly stale delays
// beats no board.
type DelayCache struct {
	URL        string
	TTL        time.Duration
	Timeout    time.Duration
	MaxSize    int
	Downloader downloader.Downloader
	Logger     *slog.Logger
	Metrics    *metrics.Collector
	TimeNow    func() time.Time

	mutex     sync.Mutex
	delays    map[string]int
	fetchedAt time.Time
}

func NewDelayCache(url string, dl downloader.Downloader) *DelayCache {
	return &DelayCache{
		URL:        url,
		TTL:        DefaultLiveTTL,
		Timeout:    DefaultLiveTimeout,
		MaxSize:    DefaultLiveMaxSize,
		Downloader: dl,
		TimeNow:    time.Now,
	}
}

// Delays returns the trip_id to delay-seconds map. Entries are
// replaced wholesale on each refresh, never merged.
func (c *DelayCache) Delays(ctx context.Context) map[string]int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := c.TimeNow()
	if c.delays != nil && now.Sub(c.fetchedAt) < c.TTL {
		return c.delays
	}

	if c.URL == "" {
		return map[string]int{}
	}

	if c.Metrics != nil {
		c.Metrics.LiveFetches.Inc()
	}

	body, err := c.Downloader.Get(ctx, c.URL, downloader.GetOptions{
		Timeout: c.Timeout,
		MaxSize: c.MaxSize,
	})
	if err != nil {
		return c.failOpen("fetching realtime feed", err)
	}

	delays, err := parse.ParseDelays(body)
	if err != nil {
		return c.failOpen("decoding realtime feed", err)
	}

	c.delays = delays
	c.fetchedAt = now
	return c.delays
}

func (c *DelayCache) failOpen(msg string, err error) map[string]int {
	if c.Metrics != nil {
		c.Metrics.LiveFetchErrors.Inc()
	}
	if c.Logger != nil {
		c.Logger.Warn(msg, "url", c.URL, "err", err)
	}
	if c.delays != nil {
		return c.delays
	}
	return map[string]int{}
}
