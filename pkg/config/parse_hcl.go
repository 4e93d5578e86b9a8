package config

import (
	"fmt"
	"strconv"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// hclModel mirrors Model in block form:
//
//	dataset {
//	  path = "data/train.csv"
//	  column "Embarked" {
//	    kind         = "category"
//	    drop_missing = true
//	  }
//	}
//	network {
//	  node "Pclass" {
//	    x = 0
//	    y = 1
//	  }
//	  edge {
//	    from = "Embarked"
//	    to   = "Pclass"
//	  }
//	}
//	marginals = ["Sex"]
//	conditional {
//	  child   = "Pclass"
//	  parents = ["Embarked"]
//	}
//	scenarios {
//	  scenario "Female, 1st class" {
//	    given = { Sex = "female", Pclass = 1 }
//	  }
//	}
type hclModel struct {
	LogLevel     string            `hcl:"log_level,optional"`
	LogFormat    string            `hcl:"log_format,optional"`
	Dataset      *hclDataset       `hcl:"dataset,block"`
	Network      *hclNetwork       `hcl:"network,block"`
	Marginals    []string          `hcl:"marginals,optional"`
	Conditionals []*hclConditional `hcl:"conditional,block"`
	Scenarios    *hclScenarios     `hcl:"scenarios,block"`
	Render       *hclRender        `hcl:"render,block"`
}

type hclDataset struct {
	Path        string       `hcl:"path,optional"`
	PreviewRows *int         `hcl:"preview_rows,optional"`
	Columns     []*hclColumn `hcl:"column,block"`
}

type hclColumn struct {
	Name        string `hcl:"name,label"`
	Kind        string `hcl:"kind"`
	DropMissing bool   `hcl:"drop_missing,optional"`
}

type hclNetwork struct {
	Nodes []*hclNode `hcl:"node,block"`
	Edges []*hclEdge `hcl:"edge,block"`
}

type hclNode struct {
	Name string  `hcl:"name,label"`
	X    float64 `hcl:"x"`
	Y    float64 `hcl:"y"`
}

type hclEdge struct {
	From string `hcl:"from"`
	To   string `hcl:"to"`
}

type hclConditional struct {
	Child   string   `hcl:"child"`
	Parents []string `hcl:"parents"`
}

type hclScenarios struct {
	Outcome string         `hcl:"outcome,optional"`
	Cases   []*hclScenario `hcl:"scenario,block"`
}

type hclScenario struct {
	Label string         `hcl:"label,label"`
	Given hcl.Expression `hcl:"given"`
}

type hclRender struct {
	Path   string `hcl:"path,optional"`
	Title  string `hcl:"title,optional"`
	Width  int    `hcl:"width,optional"`
	Height int    `hcl:"height,optional"`
}

// ParseModelHCL parses a Model from HCL source, applies defaults and
// validates it. filename is only used in diagnostics.
func ParseModelHCL(data []byte, filename string) (*Model, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse model hcl: %w", diags)
	}

	var root hclModel
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode model hcl: %w", diags)
	}

	m, err := root.translate()
	if err != nil {
		return nil, err
	}

	m.ApplyDefaults()
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid model: %w", err)
	}
	return m, nil
}

func (h *hclModel) translate() (*Model, error) {
	m := &Model{
		LogLevel:  h.LogLevel,
		LogFormat: h.LogFormat,
		Queries:   Queries{Marginals: h.Marginals},
	}

	if h.Dataset != nil {
		m.Dataset.Path = h.Dataset.Path
		m.Dataset.PreviewRows = h.Dataset.PreviewRows
		for _, c := range h.Dataset.Columns {
			m.Dataset.Columns = append(m.Dataset.Columns, Column{Name: c.Name, Kind: c.Kind, DropMissing: c.DropMissing})
		}
	}

	if h.Network != nil {
		for _, n := range h.Network.Nodes {
			m.Network.Nodes = append(m.Network.Nodes, Node{Name: n.Name, X: n.X, Y: n.Y})
		}
		for _, e := range h.Network.Edges {
			m.Network.Edges = append(m.Network.Edges, Edge{From: e.From, To: e.To})
		}
	}

	for _, c := range h.Conditionals {
		m.Queries.Conditionals = append(m.Queries.Conditionals, Conditional{Child: c.Child, Parents: c.Parents})
	}

	if h.Scenarios != nil {
		m.Scenarios.Outcome = h.Scenarios.Outcome
		for _, sc := range h.Scenarios.Cases {
			given, err := constraintsFromExpr(sc.Given)
			if err != nil {
				return nil, fmt.Errorf("scenario %q: %w", sc.Label, err)
			}
			m.Scenarios.Cases = append(m.Scenarios.Cases, Scenario{Label: sc.Label, Given: given})
		}
	}

	if h.Render != nil {
		m.Render = Render{Path: h.Render.Path, Title: h.Render.Title, Width: h.Render.Width, Height: h.Render.Height}
	}
	return m, nil
}

// constraintsFromExpr evaluates a `given = { col = value }` object.
// Attributes come back in lexical order, which does not affect filtering.
func constraintsFromExpr(expr hcl.Expression) (Constraints, error) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to evaluate given: %w", diags)
	}
	ty := val.Type()
	if val.IsNull() || !(ty.IsObjectType() || ty.IsMapType()) {
		return nil, fmt.Errorf("given must be an object of column = value, got %s", ty.FriendlyName())
	}

	var out Constraints
	for it := val.ElementIterator(); it.Next(); {
		k, v := it.Element()
		s, err := scalarString(v)
		if err != nil {
			return nil, fmt.Errorf("given.%s: %w", k.AsString(), err)
		}
		out = append(out, Constraint{Column: k.AsString(), Value: s})
	}
	return out, nil
}

func scalarString(v cty.Value) (string, error) {
	if v.IsNull() || !v.IsKnown() {
		return "", fmt.Errorf("value must be set")
	}
	switch v.Type() {
	case cty.String:
		return v.AsString(), nil
	case cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			i, _ := bf.Int64()
			return strconv.FormatInt(i, 10), nil
		}
		return bf.Text('f', -1), nil
	case cty.Bool:
		return strconv.FormatBool(v.True()), nil
	default:
		return "", fmt.Errorf("value must be a string, number or bool, got %s", v.Type().FriendlyName())
	}
}
