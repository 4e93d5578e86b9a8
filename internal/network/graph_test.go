package network

import (
	"errors"
	"reflect"
	"testing"

	"github.com/GoSim-25-26J-441/titanic-bn/pkg/config"
)

func passengerNetwork() config.Network {
	return config.Network{
		Nodes: []config.Node{
			{Name: "Embarked", X: -1, Y: 1},
			{Name: "Pclass", X: 0, Y: 1},
			{Name: "Sex", X: 1, Y: 1},
			{Name: "Survived", X: 0, Y: 0},
		},
		Edges: []config.Edge{
			{From: "Embarked", To: "Pclass"},
			{From: "Pclass", To: "Survived"},
			{From: "Sex", To: "Survived"},
		},
	}
}

func TestNew(t *testing.T) {
	g, err := New(passengerNetwork())
	if err != nil {
		t.Fatalf("failed to create graph: %v", err)
	}

	if got := g.String(); got != "DiGraph with 4 nodes and 3 edges" {
		t.Fatalf("unexpected summary %q", got)
	}
	if got := g.Nodes(); !reflect.DeepEqual(got, []string{"Embarked", "Pclass", "Sex", "Survived"}) {
		t.Fatalf("unexpected nodes %v", got)
	}
	if got := g.Parents("Survived"); !reflect.DeepEqual(got, []string{"Pclass", "Sex"}) {
		t.Fatalf("expected Survived parents [Pclass Sex], got %v", got)
	}
	if got := g.Children("Embarked"); !reflect.DeepEqual(got, []string{"Pclass"}) {
		t.Fatalf("expected Embarked children [Pclass], got %v", got)
	}
	if got := g.Parents("Sex"); len(got) != 0 {
		t.Fatalf("expected Sex to have no parents, got %v", got)
	}
	if got := g.Roots(); !reflect.DeepEqual(got, []string{"Embarked", "Sex"}) {
		t.Fatalf("expected roots [Embarked Sex], got %v", got)
	}

	pos, ok := g.Position("Survived")
	if !ok {
		t.Fatalf("expected position for Survived")
	}
	if pos != (Position{X: 0, Y: 0}) {
		t.Fatalf("unexpected position %+v", pos)
	}
	if _, ok := g.Position("Age"); ok {
		t.Fatalf("expected no position for unknown node")
	}
}

func TestTopologicalOrder(t *testing.T) {
	g, err := New(passengerNetwork())
	if err != nil {
		t.Fatalf("failed to create graph: %v", err)
	}

	order := g.TopologicalOrder()
	if !reflect.DeepEqual(order, []string{"Embarked", "Pclass", "Sex", "Survived"}) {
		t.Fatalf("unexpected order %v", order)
	}

	index := make(map[string]int)
	for i, n := range order {
		index[n] = i
	}
	for _, e := range g.Edges() {
		if index[e.From] >= index[e.To] {
			t.Fatalf("edge %s -> %s violates order %v", e.From, e.To, order)
		}
	}
}

func TestDescribe(t *testing.T) {
	g, err := New(passengerNetwork())
	if err != nil {
		t.Fatalf("failed to create graph: %v", err)
	}

	want := "Nodes: Embarked, Pclass, Sex, Survived\n" +
		"Edges:\n" +
		"  Embarked -> Pclass\n" +
		"  Pclass -> Survived\n" +
		"  Sex -> Survived\n"
	if got := g.Describe(); got != want {
		t.Fatalf("unexpected description:\n%s", got)
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	g, err := New(passengerNetwork())
	if err != nil {
		t.Fatalf("failed to create graph: %v", err)
	}

	nodes := g.Nodes()
	nodes[0] = "changed"
	edges := g.Edges()
	edges[0].From = "changed"
	parents := g.Parents("Survived")
	parents[0] = "changed"

	if g.Nodes()[0] != "Embarked" || g.Edges()[0].From != "Embarked" || g.Parents("Survived")[0] != "Pclass" {
		t.Fatalf("graph was modified through an accessor")
	}
}

func TestNewWithCycle(t *testing.T) {
	cfg := passengerNetwork()
	cfg.Edges = append(cfg.Edges, config.Edge{From: "Survived", To: "Embarked"})

	_, err := New(cfg)
	if err == nil {
		t.Fatalf("expected error for cyclic graph, got nil")
	}
	if !errors.Is(err, ErrCycle) {
		t.Fatalf("expected ErrCycle, got %v", err)
	}
}

func TestNewInvalid(t *testing.T) {
	tests := []struct {
		name  string
		nodes []config.Node
		edges []config.Edge
	}{
		{
			name:  "Empty node name",
			nodes: []config.Node{{Name: ""}},
		},
		{
			name:  "Duplicate node",
			nodes: []config.Node{{Name: "Sex"}, {Name: "Sex"}},
		},
		{
			name:  "Unknown edge source",
			nodes: []config.Node{{Name: "Sex"}},
			edges: []config.Edge{{From: "Age", To: "Sex"}},
		},
		{
			name:  "Unknown edge target",
			nodes: []config.Node{{Name: "Sex"}},
			edges: []config.Edge{{From: "Sex", To: "Age"}},
		},
		{
			name:  "Self loop",
			nodes: []config.Node{{Name: "Sex"}},
			edges: []config.Edge{{From: "Sex", To: "Sex"}},
		},
		{
			name:  "Duplicate edge",
			nodes: []config.Node{{Name: "Sex"}, {Name: "Survived"}},
			edges: []config.Edge{{From: "Sex", To: "Survived"}, {From: "Sex", To: "Survived"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(config.Network{Nodes: tt.nodes, Edges: tt.edges})
			if !errors.Is(err, ErrInvalidGraph) {
				t.Fatalf("expected ErrInvalidGraph, got %v", err)
			}
		})
	}
}
