// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/titanic-bn/internal/dataset"
	"github.com/GoSim-25-26J-441/titanic-bn/pkg/config"
)

// PassengerColumns is the four-column projection of the default model
func PassengerColumns() []config.Column {
	return []config.Column{
		{Name: "Survived", Kind: config.KindInt},
		{Name: "Sex", Kind: config.KindCategory},
		{Name: "Pclass", Kind: config.KindInt},
		{Name: "Embarked", Kind: config.KindCategory, DropMissing: true},
	}
}

// PassengersCSV returns the absolute path of the 22-row fixture. Two rows
// (both 1st class female survivors) have a blank Embarked and are dropped
// on load, leaving 20.
func PassengersCSV() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "testdata", "passengers.csv")
}

// LoadPassengers loads the fixture with PassengerColumns
func LoadPassengers(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.Load(PassengersCSV(), PassengerColumns())
	require.NoError(t, err)
	return ds
}

// Records builds a dataset from rows of Survived, Sex, Pclass, Embarked
func Records(t *testing.T, rows ...[4]string) *dataset.Dataset {
	t.Helper()
	records := [][]string{{"Survived", "Sex", "Pclass", "Embarked"}}
	for _, r := range rows {
		records = append(records, []string{r[0], r[1], r[2], r[3]})
	}
	ds, err := dataset.FromRecords(records, PassengerColumns())
	require.NoError(t, err)
	return ds
}
