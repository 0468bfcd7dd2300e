// Package metrics exports prometheus instrumentation for a playlist.Store.
package metrics

import (
	"errors"
	"io"

	"github.com/forestrie/go-playlist/playlist"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

// Collector implements playlist.Observer by updating prometheus metrics.
// Install it with playlist.WithObserver.
type Collector struct {
	versions  *prometheus.CounterVec
	depth     prometheus.Histogram
	queries   *prometheus.CounterVec
	frames    *prometheus.HistogramVec
	fastPaths *prometheus.CounterVec
	rejected  *prometheus.CounterVec
}

// NewCollector registers the playlist metrics with reg. A nil reg leaves
// the metrics unregistered, which is convenient in tests.
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		versions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "playlist_versions_total",
			Help: "Versions created, by node kind",
		}, []string{"kind"}),

		depth: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "playlist_version_depth",
			Help:    "Depth of the node chain below each new version",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),

		queries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "playlist_queries_total",
			Help: "Queries answered, by query kind",
		}, []string{"kind"}),

		frames: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "playlist_query_frames",
			Help:    "Nodes visited per query",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}, []string{"kind"}),

		fastPaths: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "playlist_query_fast_paths_total",
			Help: "Nodes answered from their cached aggregate",
		}, []string{"kind"}),

		// Labels: "handle_range", "position_range", "invalid_range", "length_overflow", "other"
		rejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "playlist_rejected_total",
			Help: "Calls rejected by input validation, by reason",
		}, []string{"reason"}),
	}
}

func (c *Collector) VersionCreated(kind playlist.Kind, depth uint64) {
	c.versions.WithLabelValues(kind.String()).Inc()
	c.depth.Observe(float64(depth))
}

func (c *Collector) QueryAnswered(kind playlist.QueryKind, stats playlist.QueryStats) {
	label := kind.String()
	c.queries.WithLabelValues(label).Inc()
	c.frames.WithLabelValues(label).Observe(float64(stats.Frames))
	c.fastPaths.WithLabelValues(label).Add(float64(stats.FastPaths))
}

func (c *Collector) Rejected(err error) {
	c.rejected.WithLabelValues(Reason(err)).Inc()
}

// Reason maps a playlist error to its metric label.
func Reason(err error) string {
	switch {
	case errors.Is(err, playlist.ErrHandleRange):
		return "handle_range"
	case errors.Is(err, playlist.ErrPositionRange):
		return "position_range"
	case errors.Is(err, playlist.ErrInvalidRange):
		return "invalid_range"
	case errors.Is(err, playlist.ErrLengthOverflow):
		return "length_overflow"
	default:
		return "other"
	}
}

// WriteText writes every metric family gathered from g in the prometheus
// text exposition format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
