package metrics

import (
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	reg *prometheus.Registry

	Rebuilds        prometheus.Counter
	RebuildErrors   prometheus.Counter
	RebuildDuration prometheus.Histogram

	LiveFetches     prometheus.Counter
	LiveFetchErrors prometheus.Counter

	BoardQueries   prometheus.Counter
	NearestQueries prometheus.Counter

	Stations   prometheus.Gauge
	Departures prometheus.Gauge
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		Rebuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "display_schedule_rebuilds_total",
			Help: "Total schedule snapshot rebuilds.",
		}),
		RebuildErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "display_schedule_rebuild_errors_total",
			Help: "Total failed schedule rebuilds.",
		}),
		RebuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "display_schedule_rebuild_duration_seconds",
			Help:    "Duration of schedule snapshot rebuilds.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		}),
		LiveFetches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "display_live_fetches_total",
			Help: "Total realtime feed fetch attempts.",
		}),
		LiveFetchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "display_live_fetch_errors_total",
			Help: "Total realtime feed fetches served from last-known-good instead.",
		}),
		BoardQueries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "display_board_queries_total",
			Help: "Total departure board queries.",
		}),
		NearestQueries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "display_nearest_queries_total",
			Help: "Total nearest-station queries.",
		}),
		Stations: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "display_stations",
			Help: "Logical stations in the published snapshot.",
		}),
		Departures: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "display_departures",
			Help: "Departure records in the published snapshot.",
		}),
	}

	reg.MustRegister(
		c.Rebuilds, c.RebuildErrors, c.RebuildDuration,
		c.LiveFetches, c.LiveFetchErrors,
		c.BoardQueries, c.NearestQueries,
		c.Stations, c.Departures,
	)

	return c
}

func (c *Collector) Handler() http.Handler { return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}) }

// Serve starts an HTTP server exposing /metrics on the given address.
func (c *Collector) Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("metrics server error: %v", err)
		}
	}()
	return srv
}
