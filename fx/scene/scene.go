// Package scene holds the interactive skill scenes: a keyboard of selectable
// keys and a rotating constellation graph. Scenes own hover and selection
// state; a View renders them through gfx/render3d.
package scene

import (
	"errors"
	"fmt"
	"time"

	"lumen/gfx/render3d"
)

var ErrUnknownVariant = errors.New("scene: unknown variant")

const (
	VariantKeyboard      = "keyboard"
	VariantConstellation = "constellation"
)

// Scene is the contract both layouts satisfy.
type Scene interface {
	Variant() string
	Graph() *Graph

	HoverStart(id NodeID)
	HoverEnd(id NodeID)
	// Click toggles selection; layouts without selection ignore it.
	Click(id NodeID)

	Hovered() (NodeID, bool)
	Selected() (NodeID, bool)
	// Emphasized reports whether a node is drawn highlighted.
	Emphasized(id NodeID) bool

	Tick(dt time.Duration)
	Orbit() *render3d.OrbitController
	Pick(r render3d.Ray) (NodeID, bool)
	Stats() Stats

	nodeMesh(i int) render3d.Mesh
	frame(f *frame)
}

// Stats counts state changes for metrics.
type Stats struct {
	HoverChanges     uint64
	SelectionChanges uint64
}

// Config tunes both layouts.
type Config struct {
	Motion Motion
	// FOVDeg is the vertical field of view.
	FOVDeg float64
}

func DefaultConfig() Config {
	return Config{Motion: DefaultMotion(), FOVDeg: 60}
}

// New builds the named layout over def.
func New(variant string, def Definition, cfg Config) (Scene, error) {
	g, err := NewGraph(def.Nodes)
	if err != nil {
		return nil, err
	}
	switch variant {
	case VariantKeyboard:
		return NewKeyboard(g, cfg), nil
	case VariantConstellation:
		return NewConstellation(g, cfg), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, variant)
	}
}

// UpdateHover turns a pick result into hover start and end events.
func UpdateHover(s Scene, id NodeID, hit bool) {
	cur, hovering := s.Hovered()
	switch {
	case hit && hovering && cur == id:
	case hit:
		if hovering {
			s.HoverEnd(cur)
		}
		s.HoverStart(id)
	case hovering:
		s.HoverEnd(cur)
	}
}

// hoverState is the hover bookkeeping shared by both layouts.
type hoverState struct {
	graph   *Graph
	hovered NodeID
	stats   Stats
}

func (h *hoverState) Graph() *Graph { return h.graph }

func (h *hoverState) HoverStart(id NodeID) {
	if _, ok := h.graph.index[id]; !ok || h.hovered == id {
		return
	}
	h.hovered = id
	h.stats.HoverChanges++
}

// HoverEnd clears the hover only if id is the hovered node, so a late end
// for a previous node does not cancel a newer start.
func (h *hoverState) HoverEnd(id NodeID) {
	if h.hovered == "" || h.hovered != id {
		return
	}
	h.hovered = ""
	h.stats.HoverChanges++
}

func (h *hoverState) Hovered() (NodeID, bool) { return h.hovered, h.hovered != "" }

func (h *hoverState) Stats() Stats { return h.stats }

