package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Column kinds understood by the dataset loader
const (
	KindInt      = "int"
	KindCategory = "category"
)

// Model is a complete description of one estimation run: where the data
// comes from, the assumed dependency network, which tables to estimate and
// which scenarios to evaluate.
type Model struct {
	LogLevel  string    `yaml:"log_level"`
	LogFormat string    `yaml:"log_format"`
	Dataset   Dataset   `yaml:"dataset"`
	Network   Network   `yaml:"network"`
	Queries   Queries   `yaml:"queries"`
	Scenarios Scenarios `yaml:"scenarios"`
	Render    Render    `yaml:"render"`
}

// Dataset describes the input CSV and the columns projected out of it
type Dataset struct {
	Path string `yaml:"path"`
	// PreviewRows is how many leading rows the report prints. Unset means
	// DefaultPreviewRows; 0 turns the preview off.
	PreviewRows *int     `yaml:"preview_rows"`
	Columns     []Column `yaml:"columns"`
}

// Preview returns the number of preview rows
func (d Dataset) Preview() int {
	if d.PreviewRows == nil {
		return DefaultPreviewRows
	}
	return *d.PreviewRows
}

// Column is one projected CSV column
type Column struct {
	Name        string `yaml:"name"`
	Kind        string `yaml:"kind"` // int or category
	DropMissing bool   `yaml:"drop_missing,omitempty"`
}

// Network is the assumed (not learned) dependency structure
type Network struct {
	Nodes []Node `yaml:"nodes"`
	Edges []Edge `yaml:"edges"`
}

// Node is a network node with its fixed diagram position
type Node struct {
	Name string  `yaml:"name"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
}

// Edge is a directed parent -> child dependency
type Edge struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Queries lists the frequency tables to estimate
type Queries struct {
	Marginals    []string      `yaml:"marginals"`
	Conditionals []Conditional `yaml:"conditionals"`
}

// Conditional is a P(child | parents...) table request
type Conditional struct {
	Child   string   `yaml:"child"`
	Parents []string `yaml:"parents"`
}

// Scenarios is the list of filtered-mean lookups on a 0/1 outcome column
type Scenarios struct {
	Outcome string     `yaml:"outcome"`
	Cases   []Scenario `yaml:"cases"`
}

// Scenario is a labelled conjunction of equality constraints
type Scenario struct {
	Label string      `yaml:"label"`
	Given Constraints `yaml:"given"`
}

// Constraint requires Column == Value
type Constraint struct {
	Column string
	Value  string
}

// Constraints keeps the order the constraints were written in
type Constraints []Constraint

// UnmarshalYAML decodes a mapping such as {Sex: female, Pclass: 1} while
// preserving key order.
func (c *Constraints) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: given must be a mapping of column to value", node.Line)
	}
	out := make(Constraints, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: value for %q must be a scalar", value.Line, key.Value)
		}
		out = append(out, Constraint{Column: key.Value, Value: value.Value})
	}
	*c = out
	return nil
}

// Render controls the diagram output. An empty Path disables rendering.
type Render struct {
	Path   string `yaml:"path"`
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// Column returns the named column definition
func (d *Dataset) Column(name string) (Column, bool) {
	for _, c := range d.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}
