package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initFrameMetrics() {
	r.FramesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "lumen_frames_total",
			Help: "Total number of frames stepped",
		},
	)

	r.FrameSeconds = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "lumen_frame_seconds",
			Help:    "Wall time spent stepping one frame in seconds",
			Buckets: []float64{0.001, 0.002, 0.004, 0.008, 0.016, 0.033, 0.066, 0.25},
		},
	)
}

func (r *Registry) initCursorMetrics() {
	r.CursorParticles = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "lumen_cursor_particles",
			Help: "Live cursor particles after the last frame",
		},
	)

	r.CursorEmittedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "lumen_cursor_emitted_total",
			Help: "Total number of cursor particles emitted",
		},
		[]string{"kind"},
	)
}

func (r *Registry) initSceneMetrics() {
	r.SceneHoverChangesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "lumen_scene_hover_changes_total",
			Help: "Total number of hover starts and ends",
		},
		[]string{"variant"},
	)

	r.SceneSelectionChangesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "lumen_scene_selection_changes_total",
			Help: "Total number of selection changes",
		},
		[]string{"variant"},
	)
}
