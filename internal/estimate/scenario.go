package estimate

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/go-gota/gota/series"

	"github.com/GoSim-25-26J-441/titanic-bn/internal/dataset"
	"github.com/GoSim-25-26J-441/titanic-bn/pkg/config"
	"github.com/GoSim-25-26J-441/titanic-bn/pkg/utils"
)

// ErrNotBinary is returned when the outcome column holds values other than 0 and 1
var ErrNotBinary = errors.New("outcome is not encoded as 0/1")

// Outcome is the result of one scenario: the share of matching rows whose
// outcome is 1. Probability is NaN when no row matched.
type Outcome struct {
	Label       string
	Given       config.Constraints
	Matched     int
	Positive    int
	Probability float64
}

// Defined reports whether any row matched the scenario
func (o Outcome) Defined() bool {
	return o.Matched > 0
}

// Evaluate filters the rows satisfying every constraint of sc and returns
// the mean of the 0/1 outcome column over them. When nothing matches the
// returned Outcome has a NaN probability and the error wraps
// ErrInsufficientData.
func Evaluate(ds *dataset.Dataset, outcome string, sc config.Scenario) (Outcome, error) {
	res := Outcome{Label: sc.Label, Given: sc.Given, Probability: math.NaN()}

	if kind, ok := ds.Kind(outcome); !ok || kind != config.KindInt {
		return res, fmt.Errorf("%w: outcome %q must be an int column", ErrInvalidQuery, outcome)
	}

	frame := ds.Frame()
	mask := make([]bool, frame.Nrow())
	for i := range mask {
		mask[i] = true
	}
	for _, c := range sc.Given {
		kind, ok := ds.Kind(c.Column)
		if !ok {
			return res, fmt.Errorf("%w: unknown column %q", ErrInvalidQuery, c.Column)
		}
		if kind == config.KindInt {
			if _, err := strconv.Atoi(c.Value); err != nil {
				return res, fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidQuery, c.Column, c.Value)
			}
		}
		matches, err := frame.Col(c.Column).Compare(series.Eq, c.Value).Bool()
		if err != nil {
			return res, fmt.Errorf("failed to compare %s: %w", c.Column, err)
		}
		for i, m := range matches {
			mask[i] = mask[i] && m
		}
	}

	values, err := frame.Col(outcome).Int()
	if err != nil {
		return res, fmt.Errorf("failed to read outcome %s: %w", outcome, err)
	}
	selected := make([]float64, 0, len(values))
	for i, v := range values {
		if v != 0 && v != 1 {
			return res, fmt.Errorf("%w: %s=%d in row %d", ErrNotBinary, outcome, v, i+1)
		}
		if mask[i] {
			selected = append(selected, float64(v))
		}
	}

	res.Matched = len(selected)
	res.Positive = int(utils.Sum(selected))
	if res.Matched == 0 {
		return res, fmt.Errorf("scenario %q: %w", sc.Label, ErrInsufficientData)
	}
	res.Probability = utils.Mean(selected)
	return res, nil
}

// EvaluateAll evaluates every scenario in order. Scenarios without matching
// rows are kept as undefined outcomes; any other error stops evaluation.
func EvaluateAll(ds *dataset.Dataset, outcome string, scenarios []config.Scenario) ([]Outcome, error) {
	out := make([]Outcome, 0, len(scenarios))
	for _, sc := range scenarios {
		res, err := Evaluate(ds, outcome, sc)
		if err != nil && !errors.Is(err, ErrInsufficientData) {
			return nil, err
		}
		out = append(out, res)
	}
	return out, nil
}
