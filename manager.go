package zet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/flyer26/zet-display/config"
	"github.com/flyer26/zet-display/downloader"
	"github.com/flyer26/zet-display/metrics"
	"github.com/flyer26/zet-display/model"
	"github.com/flyer26/zet-display/parse"
)

const (
	DefaultLiveTTL       = 8 * time.Second
	DefaultLiveTimeout   = 5 * time.Second
	DefaultLiveMaxSize   = 1 << 20 // 1 MB
	DefaultStaticTimeout = 60 * time.Second
	DefaultStaticMaxSize = 800 << 20 // 800 MB
)

var ErrNoSchedule = errors.New("no schedule loaded")

// SnapshotSink is handed every published snapshot. The HTTP layer
// hangs off of this; it gets read-only structures and nothing else.
type SnapshotSink func(*Schedule)

// Manager owns the schedule snapshot and everything needed to rebuild
// it. Reads go against whatever snapshot is currently published;
// rebuilds assemble a complete new Schedule and swap it in with a
// single pointer store. Nothing inside a published snapshot is ever
// mutated.
type Manager struct {
	StaticURL     string
	Location      *time.Location
	CutoffHour    int
	BoardOpts     BoardOptions
	MaxStationKm  float64
	StaticTimeout time.Duration
	StaticMaxSize int

	Downloader downloader.Downloader
	Live       *DelayCache
	Logger     *slog.Logger
	Metrics    *metrics.Collector
	Sink       SnapshotSink
	TimeNow    func() time.Time

	schedule   atomic.Pointer[Schedule]
	rebuildMu  sync.Mutex
	rebuilding atomic.Bool
}

func NewManager(cfg *config.Config) (*Manager, error) {
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone: %w", err)
	}

	dl := downloader.NewMemory()
	logger := slog.Default()

	live := NewDelayCache(cfg.RealtimeURL, dl)
	if cfg.LiveTTL > 0 {
		live.TTL = cfg.LiveTTL
	}
	live.Logger = logger

	return &Manager{
		StaticURL:  cfg.StaticURL,
		Location:   location,
		CutoffHour: cfg.NightCutoffHour,
		BoardOpts: BoardOptions{
			WindowBefore: cfg.WindowBeforeMin,
			WindowAfter:  cfg.WindowAfterMin,
			Cap:          cfg.BoardCap,
			CutoffHour:   cfg.NightCutoffHour,
		},
		MaxStationKm:  cfg.MaxStationKm,
		StaticTimeout: DefaultStaticTimeout,
		StaticMaxSize: DefaultStaticMaxSize,
		Downloader:    dl,
		Live:          live,
		Logger:        logger,
		TimeNow:       time.Now,
	}, nil
}

// WithMetrics attaches a collector to the manager and its delay cache.
func (m *Manager) WithMetrics(c *metrics.Collector) *Manager {
	m.Metrics = c
	m.Live.Metrics = c
	return m
}

func (m *Manager) now() time.Time {
	return m.TimeNow().In(m.Location)
}

// Schedule returns the currently published snapshot, or nil before
// the first successful rebuild.
func (m *Manager) Schedule() *Schedule {
	return m.schedule.Load()
}

// Rebuild fetches the static feed, builds a complete new snapshot and
// publishes it. Reads served concurrently keep using the previous
// snapshot until the swap. Rebuilds are serialized.
func (m *Manager) Rebuild(ctx context.Context) error {
	m.rebuildMu.Lock()
	defer m.rebuildMu.Unlock()

	start := time.Now()

	body, err := m.Downloader.Get(ctx, m.StaticURL, downloader.GetOptions{
		Timeout: m.StaticTimeout,
		MaxSize: m.StaticMaxSize,
	})
	if err != nil {
		return m.rebuildErr(fmt.Errorf("downloading static feed: %w", err))
	}

	schedule, err := m.build(body)
	if err != nil {
		return m.rebuildErr(err)
	}

	m.schedule.Store(schedule)

	if m.Metrics != nil {
		m.Metrics.Rebuilds.Inc()
		m.Metrics.RebuildDuration.Observe(time.Since(start).Seconds())
		m.Metrics.Stations.Set(float64(len(schedule.Stations)))
		total := 0
		for _, deps := range schedule.Departures {
			total += len(deps)
		}
		m.Metrics.Departures.Set(float64(total))
	}
	if m.Sink != nil {
		m.Sink(schedule)
	}

	m.Logger.Info("published schedule snapshot",
		"service_day", schedule.ServiceDay,
		"stations", len(schedule.Stations),
		"took", time.Since(start))

	return nil
}

func (m *Manager) build(body []byte) (*Schedule, error) {
	feed, err := parse.OpenStatic(body)
	if err != nil {
		return nil, fmt.Errorf("parsing static feed: %w", err)
	}

	now := m.now()
	day, _ := ServiceDay(now, m.CutoffHour)

	active := ActiveServices(now, m.CutoffHour, feed.Calendars, feed.CalendarDates, m.Logger)
	clusters := ClusterStops(feed.Stops)

	departures, _, err := BuildTimetable(feed, active, clusters, m.Logger)
	if err != nil {
		return nil, fmt.Errorf("building timetable: %w", err)
	}

	return &Schedule{
		ServiceDay:    day.Format("20060102"),
		BuiltAt:       now,
		Stations:      clusters.Names,
		Departures:    departures,
		Coords:        clusters.Coords,
		stationByStop: clusters.StationByStop,
	}, nil
}

func (m *Manager) rebuildErr(err error) error {
	if m.Metrics != nil {
		m.Metrics.RebuildErrors.Inc()
	}
	return err
}

// maybeRebuild kicks off a background rebuild when the published
// snapshot was built for a service day that has since rolled over.
// At most one rebuild runs at a time; requests keep being served from
// the stale snapshot until the new one is published.
func (m *Manager) maybeRebuild(ctx context.Context) {
	s := m.schedule.Load()
	if s == nil {
		return
	}

	day, _ := ServiceDay(m.now(), m.CutoffHour)
	if s.ServiceDay == day.Format("20060102") {
		return
	}

	if !m.rebuilding.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer m.rebuilding.Store(false)
		if err := m.Rebuild(context.WithoutCancel(ctx)); err != nil {
			m.Logger.Error("background rebuild failed", "err", err)
		}
	}()
}

// Board returns the departure board for a station. The name is
// matched case-insensitively after trimming; an unknown station gets
// an empty board, not an error.
func (m *Manager) Board(ctx context.Context, station string) ([]model.BoardEntry, error) {
	s := m.schedule.Load()
	if s == nil {
		return nil, ErrNoSchedule
	}
	m.maybeRebuild(ctx)

	if m.Metrics != nil {
		m.Metrics.BoardQueries.Inc()
	}

	name := s.FindStation(station)
	if name == "" {
		return []model.BoardEntry{}, nil
	}

	delays := m.Live.Delays(ctx)
	return ComposeBoard(s.Departures[name], delays, m.now(), m.BoardOpts), nil
}

// Nearest returns the station closest to (lat, lon), or "" when none
// lies within the configured distance bound.
func (m *Manager) Nearest(lat, lon float64) (string, error) {
	s := m.schedule.Load()
	if s == nil {
		return "", ErrNoSchedule
	}

	if m.Metrics != nil {
		m.Metrics.NearestQueries.Inc()
	}

	name, ok := NearestStation(lat, lon, s.Coords, m.MaxStationKm)
	if !ok {
		return "", nil
	}
	return name, nil
}

// Run builds the first snapshot and then keeps it current, rebuilding
// whenever a tick finds the service day rolled over. A failed rebuild
// leaves the previous snapshot serving and is retried next tick.
func (m *Manager) Run(ctx context.Context, interval time.Duration) error {
	if err := m.Rebuild(ctx); err != nil {
		m.Logger.Error("initial rebuild failed", "err", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s := m.schedule.Load()
			day, _ := ServiceDay(m.now(), m.CutoffHour)
			if s != nil && s.ServiceDay == day.Format("20060102") {
				continue
			}
			if err := m.Rebuild(ctx); err != nil {
				m.Logger.Error("scheduled rebuild failed", "err", err)
			}
		}
	}
}
