package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds the per-session metrics.
type Registry struct {
	// Frame Metrics
	FramesTotal  prometheus.Counter
	FrameSeconds prometheus.Histogram

	// Cursor Metrics
	CursorParticles    prometheus.Gauge
	CursorEmittedTotal *prometheus.CounterVec

	// Scene Metrics
	SceneHoverChangesTotal     *prometheus.CounterVec
	SceneSelectionChangesTotal *prometheus.CounterVec

	registry *prometheus.Registry
	mu       sync.Mutex
	seen     totals
}

// totals are the last cumulative counts reported by the layers, so that
// counters only ever advance by the difference.
type totals struct {
	steady     uint64
	burst      uint64
	hover      map[string]uint64
	selections map[string]uint64
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
		seen: totals{
			hover:      make(map[string]uint64),
			selections: make(map[string]uint64),
		},
	}

	r.initFrameMetrics()
	r.initCursorMetrics()
	r.initSceneMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
