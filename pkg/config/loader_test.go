package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultModel(t *testing.T) {
	m, err := DefaultModel()
	require.NoError(t, err)

	assert.Equal(t, "data/train.csv", m.Dataset.Path)
	require.Len(t, m.Dataset.Columns, 4)
	embarked, ok := m.Dataset.Column("Embarked")
	require.True(t, ok)
	assert.True(t, embarked.DropMissing)
	assert.Equal(t, KindCategory, embarked.Kind)

	assert.Len(t, m.Network.Nodes, 4)
	assert.Equal(t, []Edge{
		{From: "Embarked", To: "Pclass"},
		{From: "Pclass", To: "Survived"},
		{From: "Sex", To: "Survived"},
	}, m.Network.Edges)

	assert.Equal(t, []string{"Sex", "Embarked"}, m.Queries.Marginals)
	assert.Equal(t, []Conditional{
		{Child: "Pclass", Parents: []string{"Embarked"}},
		{Child: "Survived", Parents: []string{"Sex", "Pclass"}},
	}, m.Queries.Conditionals)

	require.Len(t, m.Scenarios.Cases, 4)
	assert.Equal(t, "Survived", m.Scenarios.Outcome)
	assert.Equal(t, Constraints{{Column: "Sex", Value: "male"}, {Column: "Pclass", Value: "3"}}, m.Scenarios.Cases[3].Given)
	assert.Equal(t, "bn_structure.png", m.Render.Path)
}

func TestLoadModelYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.yml")
	require.NoError(t, os.WriteFile(path, []byte(minimalModel), 0o600))

	m, err := LoadModel(path)
	require.NoError(t, err)
	assert.Equal(t, "passengers.csv", m.Dataset.Path)
}

func TestLoadModelHCLMatchesDefault(t *testing.T) {
	fromHCL, err := LoadModel("testdata/model.hcl")
	require.NoError(t, err)
	builtin, err := DefaultModel()
	require.NoError(t, err)

	// HCL object attributes are iterated in lexical order
	sortGiven := cmpopts.SortSlices(func(a, b Constraint) bool { return a.Column < b.Column })
	if diff := cmp.Diff(builtin, fromHCL, sortGiven); diff != "" {
		t.Fatalf("HCL model differs from built-in model (-builtin +hcl):\n%s", diff)
	}
}

func TestLoadModelMissingFile(t *testing.T) {
	_, err := LoadModel(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
