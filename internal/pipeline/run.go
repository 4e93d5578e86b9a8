// Package pipeline runs the whole lab: load the data, build the graph,
// draw it, estimate the tables, evaluate the scenarios and report.
package pipeline

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/GoSim-25-26J-441/titanic-bn/internal/dataset"
	"github.com/GoSim-25-26J-441/titanic-bn/internal/estimate"
	"github.com/GoSim-25-26J-441/titanic-bn/internal/metrics"
	"github.com/GoSim-25-26J-441/titanic-bn/internal/network"
	"github.com/GoSim-25-26J-441/titanic-bn/internal/render"
	"github.com/GoSim-25-26J-441/titanic-bn/internal/report"
	"github.com/GoSim-25-26J-441/titanic-bn/pkg/config"
	"github.com/GoSim-25-26J-441/titanic-bn/pkg/logger"
	"github.com/GoSim-25-26J-441/titanic-bn/pkg/utils"
)

// Options holds the per-run settings that are not part of the model
type Options struct {
	// ReportJSON is where the JSON report goes; empty skips it
	ReportJSON string
	// Now stamps the run ID. Defaults to time.Now.
	Now func() time.Time
}

// Run executes every stage in order and writes the text report to stdout.
// Any error aborts the run; scenarios without matching rows do not.
func Run(model *config.Model, opts Options, stdout io.Writer) (*report.Report, error) {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	runID := utils.GenerateRunID(now())
	log := logger.With("run_id", runID)

	timings := metrics.NewCollector(nil)
	timings.Start()

	var ds *dataset.Dataset
	err := timings.Time("load", func() (err error) {
		ds, err = dataset.Load(model.Dataset.Path, model.Dataset.Columns)
		if err != nil {
			return fmt.Errorf("failed to load dataset: %w", err)
		}
		log.Info("dataset loaded", "path", model.Dataset.Path, "rows", ds.Len())
		return nil
	})
	if err != nil {
		return nil, err
	}

	var g *network.Graph
	err = timings.Time("network", func() (err error) {
		g, err = network.New(model.Network)
		if err != nil {
			return fmt.Errorf("failed to build network: %w", err)
		}
		log.Info("network built", "nodes", len(g.Nodes()), "edges", len(g.Edges()))
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := timings.Time("render", func() error { return render.WriteFile(g, model.Render) }); err != nil {
		return nil, err
	}

	r := &report.Report{
		RunID:   runID,
		Rows:    ds.Len(),
		Preview: ds.Head(model.Dataset.Preview()),
		Graph:   g,
		Outcome: model.Scenarios.Outcome,
	}
	err = timings.Time("estimate", func() (err error) {
		r.Marginals, r.Conditionals, err = estimateTables(ds, model.Queries)
		return err
	})
	if err != nil {
		return nil, err
	}

	err = timings.Time("scenarios", func() (err error) {
		r.Outcomes, err = estimate.EvaluateAll(ds, model.Scenarios.Outcome, model.Scenarios.Cases)
		if err != nil {
			return fmt.Errorf("failed to evaluate scenarios: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, o := range r.Outcomes {
		if !o.Defined() {
			log.Warn("scenario matched no rows", "scenario", o.Label)
			continue
		}
		log.Debug("scenario evaluated", "scenario", o.Label, "matched", o.Matched, "probability", utils.Round(o.Probability, 4))
	}

	err = timings.Time("report", func() error {
		if err := report.WriteText(stdout, r); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		if opts.ReportJSON == "" {
			return nil
		}
		if err := writeJSON(opts.ReportJSON, r); err != nil {
			return err
		}
		log.Info("json report written", "path", opts.ReportJSON)
		return nil
	})
	if err != nil {
		return nil, err
	}

	timings.Stop()
	log.Info("run complete", "duration", timings.Duration(), timings.Attrs())
	return r, nil
}

func estimateTables(ds *dataset.Dataset, q config.Queries) (marginals, conditionals []*estimate.Table, err error) {
	for _, col := range q.Marginals {
		t, err := estimate.Marginal(ds, col)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to estimate P(%s): %w", col, err)
		}
		marginals = append(marginals, t)
	}
	for _, c := range q.Conditionals {
		t, err := estimate.Conditional(ds, c.Parents, c.Child)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to estimate P(%s | %v): %w", c.Child, c.Parents, err)
		}
		conditionals = append(conditionals, t)
	}
	return marginals, conditionals, nil
}

func writeJSON(path string, r *report.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create json report: %w", err)
	}
	if err := report.WriteJSON(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
