package metrics

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/common/expfmt"
)

// Emission kinds used as the kind label.
const (
	KindSteady = "steady"
	KindBurst  = "burst"
)

// RecordFrame records one stepped frame and how long it took
func (r *Registry) RecordFrame(duration time.Duration) {
	r.FramesTotal.Inc()
	r.FrameSeconds.Observe(duration.Seconds())
}

// RecordCursor takes the layer's live count and cumulative emission totals.
func (r *Registry) RecordCursor(live int, steady, burst uint64) {
	r.CursorParticles.Set(float64(live))

	r.mu.Lock()
	defer r.mu.Unlock()
	if steady > r.seen.steady {
		r.CursorEmittedTotal.WithLabelValues(KindSteady).Add(float64(steady - r.seen.steady))
		r.seen.steady = steady
	}
	if burst > r.seen.burst {
		r.CursorEmittedTotal.WithLabelValues(KindBurst).Add(float64(burst - r.seen.burst))
		r.seen.burst = burst
	}
}

// RecordScene takes a scene's cumulative hover and selection change counts.
func (r *Registry) RecordScene(variant string, hoverChanges, selectionChanges uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if prev := r.seen.hover[variant]; hoverChanges > prev {
		r.SceneHoverChangesTotal.WithLabelValues(variant).Add(float64(hoverChanges - prev))
		r.seen.hover[variant] = hoverChanges
	}
	if prev := r.seen.selections[variant]; selectionChanges > prev {
		r.SceneSelectionChangesTotal.WithLabelValues(variant).Add(float64(selectionChanges - prev))
		r.seen.selections[variant] = selectionChanges
	}
}

// WriteText writes every registered metric in the Prometheus text format.
func (r *Registry) WriteText(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
