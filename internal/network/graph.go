package network

import (
	"errors"
	"fmt"
	"strings"

	"github.com/GoSim-25-26J-441/titanic-bn/pkg/config"
)

var (
	// ErrInvalidGraph is returned for unknown, duplicate or self-referencing
	// nodes and edges
	ErrInvalidGraph = errors.New("invalid graph")
	// ErrCycle is returned when the edges do not form a DAG
	ErrCycle = errors.New("cycle detected")
)

// Position is a node's fixed place in the diagram
type Position struct {
	X float64
	Y float64
}

// Edge is a directed parent -> child dependency
type Edge struct {
	From string
	To   string
}

// Graph is the assumed dependency structure between dataset columns (DAG).
// It is built once and never modified.
type Graph struct {
	nodes     []string
	positions map[string]Position
	edges     []Edge
	children  map[string][]string
	parents   map[string][]string
}

// New builds a graph from a network definition
func New(cfg config.Network) (*Graph, error) {
	g := &Graph{
		positions: make(map[string]Position),
		children:  make(map[string][]string),
		parents:   make(map[string][]string),
	}

	// First pass: nodes
	for _, n := range cfg.Nodes {
		if n.Name == "" {
			return nil, fmt.Errorf("%w: empty node name", ErrInvalidGraph)
		}
		if _, exists := g.positions[n.Name]; exists {
			return nil, fmt.Errorf("%w: duplicate node %q", ErrInvalidGraph, n.Name)
		}
		g.nodes = append(g.nodes, n.Name)
		g.positions[n.Name] = Position{X: n.X, Y: n.Y}
	}

	// Second pass: edges, now that every node is known
	seen := make(map[Edge]bool)
	for i, e := range cfg.Edges {
		edge := Edge{From: e.From, To: e.To}
		if err := g.checkEdge(edge); err != nil {
			return nil, fmt.Errorf("edge %d: %w", i, err)
		}
		if seen[edge] {
			return nil, fmt.Errorf("edge %d: %w: duplicate edge %s -> %s", i, ErrInvalidGraph, edge.From, edge.To)
		}
		seen[edge] = true
		g.edges = append(g.edges, edge)
		g.children[edge.From] = append(g.children[edge.From], edge.To)
		g.parents[edge.To] = append(g.parents[edge.To], edge.From)
	}

	if err := g.validateAcyclic(); err != nil {
		return nil, fmt.Errorf("network contains cycles: %w", err)
	}

	return g, nil
}

func (g *Graph) checkEdge(e Edge) error {
	if _, ok := g.positions[e.From]; !ok {
		return fmt.Errorf("%w: unknown node %q", ErrInvalidGraph, e.From)
	}
	if _, ok := g.positions[e.To]; !ok {
		return fmt.Errorf("%w: unknown node %q", ErrInvalidGraph, e.To)
	}
	if e.From == e.To {
		return fmt.Errorf("%w: self loop on %q", ErrInvalidGraph, e.From)
	}
	return nil
}

// validateAcyclic checks if the graph is acyclic (DAG)
func (g *Graph) validateAcyclic() error {
	visited := make(map[string]bool)
	recStack := make(map[string]bool)

	// Declaration order keeps the reported cycle deterministic
	for _, node := range g.nodes {
		if !visited[node] {
			if err := g.dfs(node, visited, recStack); err != nil {
				return err
			}
		}
	}

	return nil
}

// dfs performs depth-first search to detect cycles
func (g *Graph) dfs(node string, visited, recStack map[string]bool) error {
	visited[node] = true
	recStack[node] = true

	for _, child := range g.children[node] {
		if !visited[child] {
			if err := g.dfs(child, visited, recStack); err != nil {
				return err
			}
		} else if recStack[child] {
			return fmt.Errorf("%w: %s -> %s", ErrCycle, node, child)
		}
	}

	recStack[node] = false
	return nil
}

// Nodes returns the node names in declaration order
func (g *Graph) Nodes() []string {
	return append([]string(nil), g.nodes...)
}

// Edges returns the edges in declaration order
func (g *Graph) Edges() []Edge {
	return append([]Edge(nil), g.edges...)
}

// Parents returns the direct parents of a node
func (g *Graph) Parents(node string) []string {
	return append([]string(nil), g.parents[node]...)
}

// Children returns the direct children of a node
func (g *Graph) Children(node string) []string {
	return append([]string(nil), g.children[node]...)
}

// Position returns a node's diagram position
func (g *Graph) Position(node string) (Position, bool) {
	p, ok := g.positions[node]
	return p, ok
}

// Roots returns the nodes without parents
func (g *Graph) Roots() []string {
	var roots []string
	for _, n := range g.nodes {
		if len(g.parents[n]) == 0 {
			roots = append(roots, n)
		}
	}
	return roots
}

// TopologicalOrder lists every node after all of its parents. Ties are
// broken by declaration order.
func (g *Graph) TopologicalOrder() []string {
	indegree := make(map[string]int, len(g.nodes))
	for _, n := range g.nodes {
		indegree[n] = len(g.parents[n])
	}

	order := make([]string, 0, len(g.nodes))
	done := make(map[string]bool, len(g.nodes))
	for len(order) < len(g.nodes) {
		for _, n := range g.nodes {
			if done[n] || indegree[n] > 0 {
				continue
			}
			done[n] = true
			order = append(order, n)
			for _, c := range g.children[n] {
				indegree[c]--
			}
			break
		}
	}
	return order
}

// String summarises the graph, e.g. "DiGraph with 4 nodes and 3 edges"
func (g *Graph) String() string {
	return fmt.Sprintf("DiGraph with %d nodes and %d edges", len(g.nodes), len(g.edges))
}

// Describe lists nodes and edges, one edge per line
func (g *Graph) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Nodes: %s\n", strings.Join(g.nodes, ", "))
	b.WriteString("Edges:\n")
	for _, e := range g.edges {
		fmt.Fprintf(&b, "  %s -> %s\n", e.From, e.To)
	}
	return b.String()
}
