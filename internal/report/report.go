package report

import (
	"github.com/go-gota/gota/dataframe"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/GoSim-25-26J-441/titanic-bn/internal/estimate"
	"github.com/GoSim-25-26J-441/titanic-bn/internal/network"
)

var fmtr = message.NewPrinter(language.English)

// Report is everything one run prints
type Report struct {
	RunID string
	// Rows is the number of rows left after loading
	Rows         int
	Preview      dataframe.DataFrame
	Graph        *network.Graph
	Marginals    []*estimate.Table
	Conditionals []*estimate.Table
	// Outcome is the 0/1 column the scenarios are evaluated against
	Outcome  string
	Outcomes []estimate.Outcome
}

// Percent formats a probability as a percentage with two decimals, or
// "insufficient data" when it is undefined
func Percent(o estimate.Outcome) string {
	if !o.Defined() {
		return "insufficient data"
	}
	return fmtr.Sprintf("%.2f%%", o.Probability*100)
}

// extremes returns the defined outcomes with the highest and lowest
// probability; ok is false when none is defined
func extremes(outcomes []estimate.Outcome) (best, worst estimate.Outcome, ok bool) {
	for _, o := range outcomes {
		if !o.Defined() {
			continue
		}
		if !ok {
			best, worst, ok = o, o, true
			continue
		}
		if o.Probability > best.Probability {
			best = o
		}
		if o.Probability < worst.Probability {
			worst = o
		}
	}
	return best, worst, ok
}
