package estimate

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/GoSim-25-26J-441/titanic-bn/internal/dataset"
	"github.com/GoSim-25-26J-441/titanic-bn/pkg/utils"
)

var (
	// ErrInsufficientData is returned when a lookup or scenario matches no
	// rows; the probability is undefined rather than zero
	ErrInsufficientData = errors.New("insufficient data")
	// ErrInvalidQuery is returned for unknown or conflicting columns
	ErrInvalidQuery = errors.New("invalid query")
)

// ProbabilityColumn names the probability column of Table.Frame
const ProbabilityColumn = "probability"

// Row is one (parents..., child) combination observed in the data
type Row struct {
	Parents     []string
	Child       string
	JointCount  int
	ParentCount int
	Probability float64
}

// Table is an empirical conditional frequency table P(child | parents).
// Only observed parent combinations are present.
type Table struct {
	Parents []string
	Child   string
	Rows    []Row
}

// Marginal estimates P(column) as count / total rows
func Marginal(ds *dataset.Dataset, column string) (*Table, error) {
	return Conditional(ds, nil, column)
}

// Conditional estimates P(child | parents) by counting rows grouped by
// parents+child and dividing by the counts grouped by parents alone. With
// no parents this is the marginal distribution of child.
func Conditional(ds *dataset.Dataset, parents []string, child string) (*Table, error) {
	if err := checkQuery(ds, parents, child); err != nil {
		return nil, err
	}

	frame := ds.Frame()
	fields := append(append([]string(nil), parents...), child)
	joint, err := groupCounts(frame, fields)
	if err != nil {
		return nil, err
	}

	parentCounts := map[string]*group{tupleKey(nil): {count: frame.Nrow()}}
	if len(parents) > 0 {
		parentCounts, err = groupCounts(frame, parents)
		if err != nil {
			return nil, err
		}
	}

	t := &Table{
		Parents: append([]string(nil), parents...),
		Child:   child,
		Rows:    make([]Row, 0, len(joint)),
	}
	for _, g := range joint {
		parentValues := g.values[:len(parents)]
		pg, ok := parentCounts[tupleKey(parentValues)]
		if !ok {
			return nil, fmt.Errorf("no parent group for %v", parentValues)
		}
		t.Rows = append(t.Rows, Row{
			Parents:     append([]string(nil), parentValues...),
			Child:       g.values[len(parents)],
			JointCount:  g.count,
			ParentCount: pg.count,
			Probability: utils.Ratio(g.count, pg.count),
		})
	}

	sort.Slice(t.Rows, func(i, j int) bool {
		a, b := t.Rows[i], t.Rows[j]
		if c := compareTuples(a.Parents, b.Parents); c != 0 {
			return c < 0
		}
		return compareValues(a.Child, b.Child) < 0
	})
	return t, nil
}

func checkQuery(ds *dataset.Dataset, parents []string, child string) error {
	if !ds.Has(child) {
		return fmt.Errorf("%w: unknown column %q", ErrInvalidQuery, child)
	}
	seen := make(map[string]bool)
	for _, p := range parents {
		if !ds.Has(p) {
			return fmt.Errorf("%w: unknown column %q", ErrInvalidQuery, p)
		}
		if p == child {
			return fmt.Errorf("%w: %q is both parent and child", ErrInvalidQuery, p)
		}
		if seen[p] {
			return fmt.Errorf("%w: duplicate parent %q", ErrInvalidQuery, p)
		}
		seen[p] = true
	}
	return nil
}

type group struct {
	values []string
	count  int
}

// groupCounts counts rows per distinct combination of columns. GroupBy
// joins values with "_", so ("A_B", "C") and ("A", "B_C") share a gota
// group; rows are recounted by their own tuple to split them again.
func groupCounts(df dataframe.DataFrame, columns []string) (map[string]*group, error) {
	groups := df.GroupBy(columns...)
	if groups.Err != nil {
		return nil, fmt.Errorf("failed to group by %v: %w", columns, groups.Err)
	}

	out := make(map[string]*group)
	for _, part := range groups.GetGroups() {
		records := make([][]string, len(columns))
		for i, c := range columns {
			records[i] = part.Col(c).Records()
		}
		for row := 0; row < part.Nrow(); row++ {
			values := make([]string, len(columns))
			for i := range columns {
				values[i] = records[i][row]
			}
			key := tupleKey(values)
			g, ok := out[key]
			if !ok {
				g = &group{values: values}
				out[key] = g
			}
			g.count++
		}
	}
	return out, nil
}

func tupleKey(values []string) string {
	return strings.Join(values, "\x1f")
}

// compareValues orders integers numerically and everything else lexically
func compareValues(a, b string) int {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	if aerr == nil && berr == nil {
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		}
		return 0
	}
	return strings.Compare(a, b)
}

func compareTuples(a, b []string) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := compareValues(a[i], b[i]); c != 0 {
			return c
		}
	}
	return len(a) - len(b)
}

// Distribution returns P(child | parents = parentValues) for one observed
// parent combination.
func (t *Table) Distribution(parentValues ...string) (map[string]float64, error) {
	if len(parentValues) != len(t.Parents) {
		return nil, fmt.Errorf("%w: expected %d parent values, got %d", ErrInvalidQuery, len(t.Parents), len(parentValues))
	}
	dist := make(map[string]float64)
	for _, r := range t.Rows {
		if equalTuples(r.Parents, parentValues) {
			dist[r.Child] = r.Probability
		}
	}
	if len(dist) == 0 {
		return nil, fmt.Errorf("%w: %s never observed", ErrInsufficientData, t.describeParents(parentValues))
	}
	return dist, nil
}

// Probability returns P(child = value | parents = parentValues). A child
// value never seen with an observed parent combination has probability 0.
func (t *Table) Probability(value string, parentValues ...string) (float64, error) {
	dist, err := t.Distribution(parentValues...)
	if err != nil {
		return 0, err
	}
	return dist[value], nil
}

// ParentTuples returns the observed parent combinations in table order
func (t *Table) ParentTuples() [][]string {
	var out [][]string
	for i, r := range t.Rows {
		if i > 0 && equalTuples(t.Rows[i-1].Parents, r.Parents) {
			continue
		}
		out = append(out, append([]string(nil), r.Parents...))
	}
	return out
}

// ByProbability returns the rows ordered by descending probability, ties
// kept in table order
func (t *Table) ByProbability() []Row {
	rows := append([]Row(nil), t.Rows...)
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Probability > rows[j].Probability
	})
	return rows
}

// Name returns the table's conventional name, e.g. "P(Survived | Sex, Pclass)"
func (t *Table) Name() string {
	if len(t.Parents) == 0 {
		return fmt.Sprintf("P(%s)", t.Child)
	}
	return fmt.Sprintf("P(%s | %s)", t.Child, strings.Join(t.Parents, ", "))
}

// Frame renders rows as a data frame with one column per parent, the
// child and the probability
func (t *Table) Frame(rows []Row) dataframe.DataFrame {
	cols := make([]series.Series, 0, len(t.Parents)+2)
	for i, p := range t.Parents {
		values := make([]string, len(rows))
		for j, r := range rows {
			values[j] = r.Parents[i]
		}
		cols = append(cols, valueSeries(values, p))
	}

	childValues := make([]string, len(rows))
	probs := make([]float64, len(rows))
	for j, r := range rows {
		childValues[j] = r.Child
		probs[j] = r.Probability
	}
	cols = append(cols, valueSeries(childValues, t.Child))
	cols = append(cols, series.New(probs, series.Float, ProbabilityColumn))
	return dataframe.New(cols...)
}

// valueSeries keeps integer-valued columns as Int so they print as numbers
func valueSeries(values []string, name string) series.Series {
	for _, v := range values {
		if _, err := strconv.Atoi(v); err != nil {
			return series.New(values, series.String, name)
		}
	}
	return series.New(values, series.Int, name)
}

func (t *Table) describeParents(values []string) string {
	parts := make([]string, len(t.Parents))
	for i, p := range t.Parents {
		parts[i] = p + "=" + values[i]
	}
	return strings.Join(parts, ", ")
}

func equalTuples(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
