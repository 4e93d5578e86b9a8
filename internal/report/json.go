package report

import (
	"fmt"
	"io"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/GoSim-25-26J-441/titanic-bn/internal/estimate"
)

// Struct converts the report into a protobuf Struct. Undefined scenario
// probabilities become null.
func Struct(r *Report) (*structpb.Struct, error) {
	nodes := make([]any, 0, len(r.Graph.Nodes()))
	for _, name := range r.Graph.Nodes() {
		p, _ := r.Graph.Position(name)
		nodes = append(nodes, map[string]any{"name": name, "x": p.X, "y": p.Y})
	}
	edges := make([]any, 0, len(r.Graph.Edges()))
	for _, e := range r.Graph.Edges() {
		edges = append(edges, map[string]any{"from": e.From, "to": e.To})
	}

	cases := make([]any, 0, len(r.Outcomes))
	for _, o := range r.Outcomes {
		given := make([]any, 0, len(o.Given))
		for _, c := range o.Given {
			given = append(given, map[string]any{"column": c.Column, "value": c.Value})
		}
		var probability any
		if o.Defined() {
			probability = o.Probability
		}
		cases = append(cases, map[string]any{
			"label":       o.Label,
			"given":       given,
			"matched":     o.Matched,
			"positive":    o.Positive,
			"probability": probability,
		})
	}

	st, err := structpb.NewStruct(map[string]any{
		"run_id": r.RunID,
		"rows":   r.Rows,
		"graph": map[string]any{
			"nodes": nodes,
			"edges": edges,
		},
		"marginals":    tables(r.Marginals),
		"conditionals": tables(r.Conditionals),
		"scenarios": map[string]any{
			"outcome": r.Outcome,
			"cases":   cases,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build report struct: %w", err)
	}
	return st, nil
}

// WriteJSON writes the report as indented protojson
func WriteJSON(w io.Writer, r *Report) error {
	st, err := Struct(r)
	if err != nil {
		return err
	}
	data, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func tables(ts []*estimate.Table) []any {
	out := make([]any, 0, len(ts))
	for _, t := range ts {
		rows := make([]any, 0, len(t.Rows))
		for _, row := range t.Rows {
			rows = append(rows, map[string]any{
				"parents":      anySlice(row.Parents),
				"child":        row.Child,
				"joint_count":  row.JointCount,
				"parent_count": row.ParentCount,
				"probability":  row.Probability,
			})
		}
		out = append(out, map[string]any{
			"name":    t.Name(),
			"parents": anySlice(t.Parents),
			"child":   t.Child,
			"rows":    rows,
		})
	}
	return out
}

// anySlice widens a string slice for structpb
func anySlice(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
