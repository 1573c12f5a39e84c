package scene

import (
	"errors"
	"fmt"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"

	"lumen/gfx/render3d"
)

var (
	ErrEmptyNodeID       = errors.New("scene: empty node id")
	ErrDuplicateNode     = errors.New("scene: duplicate node id")
	ErrSelfConnection    = errors.New("scene: node connects to itself")
	ErrUnknownConnection = errors.New("scene: connection to unknown node")
	ErrBadColor          = errors.New("scene: bad node color")
)

// NodeID identifies a node within one graph.
type NodeID string

// Node is one labelled skill node.
type Node struct {
	ID          NodeID     `yaml:"id" validate:"required"`
	Name        string     `yaml:"name" validate:"required"`
	Description string     `yaml:"description"`
	Icon        string     `yaml:"icon"`
	Color       string     `yaml:"color" validate:"required,hexcolor"`
	Position    [3]float64 `yaml:"position"`
	// Size is the key footprint for the keyboard layout; zero uses the default.
	Size        [3]float64 `yaml:"size"`
	Connections []NodeID   `yaml:"connections"`
}

func (n Node) Pos() render3d.Vec3 {
	return render3d.V3(n.Position[0], n.Position[1], n.Position[2])
}

// Edge is an undirected edge with A < B.
type Edge struct {
	A, B NodeID
}

func makeEdge(a, b NodeID) Edge {
	if b < a {
		a, b = b, a
	}
	return Edge{A: a, B: b}
}

// Has reports whether id is an endpoint.
func (e Edge) Has(id NodeID) bool { return e.A == id || e.B == id }

// Graph is an immutable validated node set with undirected adjacency.
type Graph struct {
	nodes  []Node
	colors []colorful.Color
	index  map[NodeID]int
	adj    map[NodeID][]NodeID
	edges  []Edge
}

// NewGraph validates nodes and builds the adjacency. A connection declared
// from either side makes the two nodes neighbours; each pair yields one edge.
func NewGraph(nodes []Node) (*Graph, error) {
	g := &Graph{
		nodes:  append([]Node(nil), nodes...),
		colors: make([]colorful.Color, len(nodes)),
		index:  make(map[NodeID]int, len(nodes)),
		adj:    make(map[NodeID][]NodeID, len(nodes)),
	}
	for i, n := range g.nodes {
		if n.ID == "" {
			return nil, fmt.Errorf("%w (node %d)", ErrEmptyNodeID, i)
		}
		if _, dup := g.index[n.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateNode, n.ID)
		}
		c, err := colorful.Hex(n.Color)
		if err != nil {
			return nil, fmt.Errorf("%w: %q on %q", ErrBadColor, n.Color, n.ID)
		}
		g.index[n.ID] = i
		g.colors[i] = c
	}

	seen := make(map[Edge]struct{})
	for _, n := range g.nodes {
		for _, to := range n.Connections {
			if to == n.ID {
				return nil, fmt.Errorf("%w: %q", ErrSelfConnection, n.ID)
			}
			if _, ok := g.index[to]; !ok {
				return nil, fmt.Errorf("%w: %q -> %q", ErrUnknownConnection, n.ID, to)
			}
			e := makeEdge(n.ID, to)
			if _, ok := seen[e]; ok {
				continue
			}
			seen[e] = struct{}{}
			g.edges = append(g.edges, e)
			g.adj[e.A] = append(g.adj[e.A], e.B)
			g.adj[e.B] = append(g.adj[e.B], e.A)
		}
	}

	sort.Slice(g.edges, func(i, j int) bool {
		if g.edges[i].A != g.edges[j].A {
			return g.edges[i].A < g.edges[j].A
		}
		return g.edges[i].B < g.edges[j].B
	})
	for id := range g.adj {
		ns := g.adj[id]
		sort.Slice(ns, func(i, j int) bool { return ns[i] < ns[j] })
	}
	return g, nil
}

func (g *Graph) Len() int { return len(g.nodes) }

// Nodes returns the nodes in declaration order.
func (g *Graph) Nodes() []Node { return g.nodes }

func (g *Graph) Node(id NodeID) (Node, bool) {
	i, ok := g.index[id]
	if !ok {
		return Node{}, false
	}
	return g.nodes[i], true
}

// IndexOf returns the declaration index of id, or -1.
func (g *Graph) IndexOf(id NodeID) int {
	if i, ok := g.index[id]; ok {
		return i
	}
	return -1
}

// Color returns the parsed color of node i.
func (g *Graph) Color(i int) colorful.Color { return g.colors[i] }

// Neighbors returns the sorted ids adjacent to id.
func (g *Graph) Neighbors(id NodeID) []NodeID { return g.adj[id] }

func (g *Graph) Adjacent(a, b NodeID) bool {
	for _, n := range g.adj[a] {
		if n == b {
			return true
		}
	}
	return false
}

// Edges returns each undirected edge once, sorted.
func (g *Graph) Edges() []Edge { return g.edges }
