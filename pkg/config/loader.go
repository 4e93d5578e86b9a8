package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

//go:embed default_model.yaml
var defaultModelYAML []byte

// DefaultModel returns the built-in passenger network: four columns, the
// Embarked -> Pclass -> Survived <- Sex structure, two marginals, two
// conditional tables and four scenarios.
func DefaultModel() (*Model, error) {
	m, err := ParseModelYAML(defaultModelYAML)
	if err != nil {
		return nil, fmt.Errorf("failed to parse built-in model: %w", err)
	}
	return m, nil
}

// LoadModel loads and parses a model file. Files ending in .hcl are parsed
// as HCL, everything else as YAML.
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file %s: %w", path, err)
	}

	var m *Model
	if strings.EqualFold(filepath.Ext(path), ".hcl") {
		m, err = ParseModelHCL(data, path)
	} else {
		m, err = ParseModelYAML(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse model file %s: %w", path, err)
	}
	return m, nil
}

// Validate performs validation on the model
func (m *Model) Validate() error {
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[m.LogLevel] {
		return fmt.Errorf("invalid log_level: %s (must be debug, info, warn, or error)", m.LogLevel)
	}
	if m.LogFormat != "text" && m.LogFormat != "json" {
		return fmt.Errorf("invalid log_format: %s (must be text or json)", m.LogFormat)
	}

	if err := validateDataset(&m.Dataset); err != nil {
		return fmt.Errorf("dataset validation failed: %w", err)
	}
	if err := validateNetwork(&m.Network); err != nil {
		return fmt.Errorf("network validation failed: %w", err)
	}
	if err := validateQueries(&m.Queries, &m.Dataset); err != nil {
		return fmt.Errorf("queries validation failed: %w", err)
	}
	if err := validateScenarios(&m.Scenarios, &m.Dataset); err != nil {
		return fmt.Errorf("scenarios validation failed: %w", err)
	}

	if m.Render.Width <= 0 || m.Render.Height <= 0 {
		return fmt.Errorf("render width and height must be positive, got %dx%d", m.Render.Width, m.Render.Height)
	}
	return nil
}

// validateDataset validates the dataset section
func validateDataset(d *Dataset) error {
	if d.Path == "" {
		return fmt.Errorf("path cannot be empty")
	}
	if d.Preview() < 0 {
		return fmt.Errorf("preview_rows cannot be negative, got %d", d.Preview())
	}
	if len(d.Columns) == 0 {
		return fmt.Errorf("at least one column must be defined")
	}

	names := make(map[string]bool)
	for _, c := range d.Columns {
		if c.Name == "" {
			return fmt.Errorf("column name cannot be empty")
		}
		if names[c.Name] {
			return fmt.Errorf("duplicate column name: %s", c.Name)
		}
		names[c.Name] = true
		if c.Kind != KindInt && c.Kind != KindCategory {
			return fmt.Errorf("column %s: kind must be %s or %s, got %q", c.Name, KindInt, KindCategory, c.Kind)
		}
	}
	return nil
}

// validateNetwork checks names and edge endpoints. Cycles are rejected when
// the graph is built.
func validateNetwork(n *Network) error {
	if len(n.Nodes) == 0 {
		return fmt.Errorf("network must have at least one node")
	}

	nodeNames := make(map[string]bool)
	for _, node := range n.Nodes {
		if node.Name == "" {
			return fmt.Errorf("node name cannot be empty")
		}
		if nodeNames[node.Name] {
			return fmt.Errorf("duplicate node name: %s", node.Name)
		}
		nodeNames[node.Name] = true
	}

	for i, edge := range n.Edges {
		if !nodeNames[edge.From] {
			return fmt.Errorf("edge %d: 'from' node %s does not exist", i, edge.From)
		}
		if !nodeNames[edge.To] {
			return fmt.Errorf("edge %d: 'to' node %s does not exist", i, edge.To)
		}
	}
	return nil
}

// validateQueries checks that every referenced column is projected
func validateQueries(q *Queries, d *Dataset) error {
	for _, name := range q.Marginals {
		if _, ok := d.Column(name); !ok {
			return fmt.Errorf("marginal column %s is not a dataset column", name)
		}
	}

	for i, c := range q.Conditionals {
		if _, ok := d.Column(c.Child); !ok {
			return fmt.Errorf("conditional %d: child column %s is not a dataset column", i, c.Child)
		}
		if len(c.Parents) == 0 {
			return fmt.Errorf("conditional %d: at least one parent must be listed (use marginals for none)", i)
		}
		seen := make(map[string]bool)
		for _, p := range c.Parents {
			if _, ok := d.Column(p); !ok {
				return fmt.Errorf("conditional %d: parent column %s is not a dataset column", i, p)
			}
			if p == c.Child {
				return fmt.Errorf("conditional %d: column %s cannot be both parent and child", i, p)
			}
			if seen[p] {
				return fmt.Errorf("conditional %d: duplicate parent %s", i, p)
			}
			seen[p] = true
		}
	}
	return nil
}

// validateScenarios checks the outcome column and every constraint
func validateScenarios(s *Scenarios, d *Dataset) error {
	if len(s.Cases) == 0 {
		return nil
	}

	outcome, ok := d.Column(s.Outcome)
	if !ok {
		return fmt.Errorf("outcome column %s is not a dataset column", s.Outcome)
	}
	if outcome.Kind != KindInt {
		return fmt.Errorf("outcome column %s must be of kind %s", s.Outcome, KindInt)
	}

	for i, sc := range s.Cases {
		if sc.Label == "" {
			return fmt.Errorf("scenario %d: label cannot be empty", i)
		}
		if len(sc.Given) == 0 {
			return fmt.Errorf("scenario %s: at least one constraint must be given", sc.Label)
		}
		for _, c := range sc.Given {
			if _, ok := d.Column(c.Column); !ok {
				return fmt.Errorf("scenario %s: column %s is not a dataset column", sc.Label, c.Column)
			}
		}
	}
	return nil
}
