package dataset

import (
	"fmt"
	"io"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/GoSim-25-26J-441/titanic-bn/pkg/config"
	"github.com/GoSim-25-26J-441/titanic-bn/pkg/logger"
)

// MissingValues are the cell contents treated as absent
var MissingValues = []string{"", "NA", "NaN", "<nil>"}

// Load reads a CSV file and projects it onto columns
func Load(path string, columns []config.Column) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset %s: %w", path, err)
	}
	defer f.Close()

	ds, err := Read(f, columns)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset %s: %w", path, err)
	}
	return ds, nil
}

// Read parses CSV with a header row from r and projects it onto columns
func Read(r io.Reader, columns []config.Column) (*Dataset, error) {
	df := dataframe.ReadCSV(r, loadOptions()...)
	if df.Err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", df.Err)
	}
	return build(df, columns)
}

// FromRecords builds a dataset from string records, header first
func FromRecords(records [][]string, columns []config.Column) (*Dataset, error) {
	df := dataframe.LoadRecords(records, loadOptions()...)
	if df.Err != nil {
		return nil, fmt.Errorf("failed to load records: %w", df.Err)
	}
	return build(df, columns)
}

// Every column is read as a string so coercion failures surface with the
// column name instead of silently turning into a different type.
func loadOptions() []dataframe.LoadOption {
	return []dataframe.LoadOption{
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(MissingValues),
	}
}

func build(raw dataframe.DataFrame, columns []config.Column) (*Dataset, error) {
	present := make(map[string]bool)
	for _, name := range raw.Names() {
		present[name] = true
	}
	selected := make([]string, 0, len(columns))
	for _, c := range columns {
		if !present[c.Name] {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, c.Name)
		}
		selected = append(selected, c.Name)
	}

	df := raw.Select(selected)
	if df.Err != nil {
		return nil, fmt.Errorf("failed to select columns: %w", df.Err)
	}

	df, err := dropMissing(df, columns)
	if err != nil {
		return nil, err
	}

	for _, c := range columns {
		if row := firstMissing(df.Col(c.Name)); row >= 0 {
			return nil, fmt.Errorf("%w: column %s, row %d", ErrMissingValue, c.Name, row+1)
		}
	}

	categories := make(map[string][]string)
	for _, c := range columns {
		switch c.Kind {
		case config.KindInt:
			ints, err := df.Col(c.Name).Int()
			if err != nil {
				return nil, fmt.Errorf("%w: column %s: %v", ErrCoercion, c.Name, err)
			}
			df = df.Mutate(series.New(ints, series.Int, c.Name))
			if df.Err != nil {
				return nil, fmt.Errorf("failed to store column %s: %w", c.Name, df.Err)
			}
		case config.KindCategory:
			categories[c.Name] = observedValues(df.Col(c.Name))
		default:
			return nil, fmt.Errorf("column %s: unsupported kind %q", c.Name, c.Kind)
		}
	}

	logger.Debug("dataset projected", "rows", df.Nrow(), "columns", selected)

	cols := make([]config.Column, len(columns))
	copy(cols, columns)
	return &Dataset{df: df, columns: cols, categories: categories}, nil
}

// dropMissing discards rows with a missing value in any drop_missing column
func dropMissing(df dataframe.DataFrame, columns []config.Column) (dataframe.DataFrame, error) {
	var masks [][]bool
	var dropCols []string
	for _, c := range columns {
		if c.DropMissing {
			masks = append(masks, df.Col(c.Name).IsNaN())
			dropCols = append(dropCols, c.Name)
		}
	}

	keep := make([]int, 0, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		missing := false
		for _, m := range masks {
			if m[i] {
				missing = true
				break
			}
		}
		if !missing {
			keep = append(keep, i)
		}
	}

	if len(keep) == 0 {
		return df, fmt.Errorf("%w: %d rows read, none complete", ErrNoRows, df.Nrow())
	}
	if dropped := df.Nrow() - len(keep); dropped > 0 {
		logger.Info("dropped rows with missing values", "columns", dropCols, "dropped", dropped, "kept", len(keep))
		df = df.Subset(keep)
		if df.Err != nil {
			return df, fmt.Errorf("failed to drop rows: %w", df.Err)
		}
	}
	return df, nil
}

// firstMissing returns the index of the first missing element or -1
func firstMissing(s series.Series) int {
	for i, nan := range s.IsNaN() {
		if nan {
			return i
		}
	}
	return -1
}
