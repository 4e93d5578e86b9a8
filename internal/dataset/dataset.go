package dataset

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/GoSim-25-26J-441/titanic-bn/pkg/config"
)

var (
	// ErrMissingColumn is returned when the CSV lacks a projected column
	ErrMissingColumn = errors.New("missing required column")
	// ErrMissingValue is returned when a column that is not dropped on
	// missing values still has one
	ErrMissingValue = errors.New("missing value")
	// ErrCoercion is returned when an int column holds a non-integer
	ErrCoercion = errors.New("type coercion failed")
	// ErrNoRows is returned when no rows survive loading
	ErrNoRows = errors.New("no usable rows")
)

// Dataset is an immutable projection of the input table. Int columns are
// stored as gota Int series and categorical columns as String series whose
// domain is the set of values observed at load time.
type Dataset struct {
	df         dataframe.DataFrame
	columns    []config.Column
	categories map[string][]string
}

// Len returns the number of rows
func (d *Dataset) Len() int {
	return d.df.Nrow()
}

// Columns returns the projected column names in schema order
func (d *Dataset) Columns() []string {
	names := make([]string, len(d.columns))
	for i, c := range d.columns {
		names[i] = c.Name
	}
	return names
}

// Kind returns the declared kind of a column
func (d *Dataset) Kind(column string) (string, bool) {
	for _, c := range d.columns {
		if c.Name == column {
			return c.Kind, true
		}
	}
	return "", false
}

// Has reports whether column is part of the dataset
func (d *Dataset) Has(column string) bool {
	_, ok := d.Kind(column)
	return ok
}

// Categories returns the sorted observed values of a categorical column
func (d *Dataset) Categories(column string) []string {
	values := d.categories[column]
	out := make([]string, len(values))
	copy(out, values)
	return out
}

// Frame returns a copy of the underlying data frame
func (d *Dataset) Frame() dataframe.DataFrame {
	return d.df.Copy()
}

// Col returns a copy of one column
func (d *Dataset) Col(column string) (series.Series, error) {
	if !d.Has(column) {
		return series.Series{}, fmt.Errorf("%w: %s", ErrMissingColumn, column)
	}
	return d.df.Col(column), nil
}

// Head returns the first n rows as a new frame. A non-positive n gives a
// frame with the same columns and no rows.
func (d *Dataset) Head(n int) dataframe.DataFrame {
	if n >= d.df.Nrow() {
		return d.df.Copy()
	}
	if n < 1 {
		cols := make([]series.Series, 0, d.df.Ncol())
		for _, name := range d.df.Names() {
			cols = append(cols, series.New([]string{}, d.df.Col(name).Type(), name))
		}
		return dataframe.New(cols...)
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return d.df.Subset(idx)
}

// observedValues returns the sorted distinct values of a column
func observedValues(s series.Series) []string {
	seen := make(map[string]struct{})
	for _, v := range s.Records() {
		seen[v] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
