package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Defaults applied to fields left empty by a model file
const (
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultPreviewRows = 5
	DefaultOutcome     = "Survived"
	DefaultTitle       = "Titanic Bayesian network structure"
	DefaultWidth       = 800
	DefaultHeight      = 500
)

// ParseModelYAML parses a Model from YAML bytes, applies defaults and validates it.
func ParseModelYAML(data []byte) (*Model, error) {
	var m Model
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse model yaml: %w", err)
	}

	m.ApplyDefaults()
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid model: %w", err)
	}

	return &m, nil
}

// ParseModelYAMLString parses a Model from a YAML string.
func ParseModelYAMLString(yamlText string) (*Model, error) {
	return ParseModelYAML([]byte(yamlText))
}

// ApplyDefaults fills in zero-valued optional fields
func (m *Model) ApplyDefaults() {
	if m.LogLevel == "" {
		m.LogLevel = DefaultLogLevel
	}
	if m.LogFormat == "" {
		m.LogFormat = DefaultLogFormat
	}
	if m.Dataset.PreviewRows == nil {
		n := DefaultPreviewRows
		m.Dataset.PreviewRows = &n
	}
	if m.Scenarios.Outcome == "" {
		m.Scenarios.Outcome = DefaultOutcome
	}
	if m.Render.Title == "" {
		m.Render.Title = DefaultTitle
	}
	if m.Render.Width == 0 {
		m.Render.Width = DefaultWidth
	}
	if m.Render.Height == 0 {
		m.Render.Height = DefaultHeight
	}
}
