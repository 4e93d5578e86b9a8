package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/go-gota/gota/dataframe"

	"github.com/GoSim-25-26J-441/titanic-bn/internal/estimate"
)

// WriteText prints the report in reading order: preview, graph, marginal
// tables, conditional tables, scenarios and a closing summary.
func WriteText(w io.Writer, r *Report) error {
	var b strings.Builder

	if r.Preview.Nrow() == 0 {
		fmtr.Fprintf(&b, "Data loaded (%d rows).\n", r.Rows)
	} else {
		fmtr.Fprintf(&b, "Data loaded (%d rows). First %d rows:\n", r.Rows, r.Preview.Nrow())
		writeFrame(&b, r.Preview)
	}

	b.WriteString("\nGraph built:\n")
	b.WriteString(r.Graph.String())
	b.WriteString("\n")
	b.WriteString(r.Graph.Describe())

	if len(r.Marginals) > 0 {
		b.WriteString("\n--- Marginal probabilities ---\n")
		for _, t := range r.Marginals {
			writeTable(&b, t, t.ByProbability())
		}
	}

	if len(r.Conditionals) > 0 {
		b.WriteString("\n--- Conditional probabilities ---\n")
		for _, t := range r.Conditionals {
			writeTable(&b, t, t.Rows)
		}
	}

	if len(r.Outcomes) > 0 {
		b.WriteString("\n=== Scenarios ===\n")
		for _, o := range r.Outcomes {
			fmt.Fprintf(&b, "P(%s=1 | %s): %s", r.Outcome, o.Label, Percent(o))
			if o.Defined() {
				fmtr.Fprintf(&b, " (%d of %d rows)", o.Positive, o.Matched)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(Summary(r))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Summary is the closing line of the text report
func Summary(r *Report) string {
	best, worst, ok := extremes(r.Outcomes)
	if !ok {
		return "No scenario matched any row."
	}
	return fmt.Sprintf("Highest %s rate: %s (%s). Lowest: %s (%s).",
		r.Outcome, best.Label, Percent(best), worst.Label, Percent(worst))
}

func writeTable(b *strings.Builder, t *estimate.Table, rows []estimate.Row) {
	fmt.Fprintf(b, "\n%s:\n", t.Name())
	writeFrame(b, t.Frame(rows))
}

// writeFrame prints every row of df under its header, one indexed line per
// row. DataFrame.String stops after ten rows.
func writeFrame(b *strings.Builder, df dataframe.DataFrame) {
	w := new(tabwriter.Writer)
	w.Init(b, 0, 8, 2, ' ', 0)
	for i, record := range df.Records() {
		if i == 0 {
			fmt.Fprintf(w, "\t%s\n", strings.Join(record, "\t"))
			continue
		}
		fmt.Fprintf(w, "%d:\t%s\n", i-1, strings.Join(record, "\t"))
	}
	w.Flush()
}
