package estimate_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/titanic-bn/internal/estimate"
	"github.com/GoSim-25-26J-441/titanic-bn/internal/testutil"
	"github.com/GoSim-25-26J-441/titanic-bn/pkg/config"
)

func scenario(label, sex, pclass string) config.Scenario {
	return config.Scenario{
		Label: label,
		Given: config.Constraints{{Column: "Sex", Value: sex}, {Column: "Pclass", Value: pclass}},
	}
}

func TestEvaluateFixtureScenarios(t *testing.T) {
	ds := testutil.LoadPassengers(t)

	tests := []struct {
		sc       config.Scenario
		matched  int
		positive int
		want     float64
	}{
		{scenario("Female, 1st class", "female", "1"), 3, 3, 1.0},
		{scenario("Female, 3rd class", "female", "3"), 5, 3, 0.6},
		{scenario("Male, 1st class", "male", "1"), 1, 0, 0.0},
		{scenario("Male, 3rd class", "male", "3"), 7, 0, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.sc.Label, func(t *testing.T) {
			got, err := estimate.Evaluate(ds, "Survived", tt.sc)
			require.NoError(t, err)
			assert.True(t, got.Defined())
			assert.Equal(t, tt.matched, got.Matched)
			assert.Equal(t, tt.positive, got.Positive)
			assert.Equal(t, tt.want, got.Probability)
			assert.Equal(t, tt.sc.Label, got.Label)
		})
	}
}

func TestEvaluateExtremes(t *testing.T) {
	ds := testutil.Records(t,
		[4]string{"1", "female", "1", "S"},
		[4]string{"1", "female", "1", "C"},
		[4]string{"0", "male", "3", "S"},
		[4]string{"0", "male", "3", "Q"},
		[4]string{"1", "male", "1", "S"},
		[4]string{"0", "female", "3", "S"},
	)

	allSurvived, err := estimate.Evaluate(ds, "Survived", scenario("all survived", "female", "1"))
	require.NoError(t, err)
	assert.Equal(t, 1.0, allSurvived.Probability)

	noneSurvived, err := estimate.Evaluate(ds, "Survived", scenario("none survived", "male", "3"))
	require.NoError(t, err)
	assert.Equal(t, 0.0, noneSurvived.Probability)
	assert.True(t, noneSurvived.Defined())

	nobody, err := estimate.Evaluate(ds, "Survived", scenario("nobody", "female", "2"))
	require.ErrorIs(t, err, estimate.ErrInsufficientData)
	assert.False(t, nobody.Defined())
	assert.Equal(t, 0, nobody.Matched)
	assert.True(t, math.IsNaN(nobody.Probability))
}

func TestEvaluateFirstClassWomenBeatThirdClassMen(t *testing.T) {
	ds := testutil.LoadPassengers(t)

	women, err := estimate.Evaluate(ds, "Survived", scenario("women", "female", "1"))
	require.NoError(t, err)
	men, err := estimate.Evaluate(ds, "Survived", scenario("men", "male", "3"))
	require.NoError(t, err)

	assert.Greater(t, women.Probability, men.Probability)
}

func TestEvaluateIgnoresRowsWithoutPort(t *testing.T) {
	ds := testutil.LoadPassengers(t)

	got, err := estimate.Evaluate(ds, "Survived", config.Scenario{
		Label: "1st class",
		Given: config.Constraints{{Column: "Pclass", Value: "1"}},
	})
	require.NoError(t, err)
	// rows 2, 4, 7, 12 remain; the two port-less survivors are gone
	assert.Equal(t, 4, got.Matched)
	assert.Equal(t, 3, got.Positive)
}

func TestEvaluateInvalid(t *testing.T) {
	ds := testutil.Records(t,
		[4]string{"1", "female", "1", "S"},
		[4]string{"0", "male", "3", "S"},
	)

	_, err := estimate.Evaluate(ds, "Sex", scenario("x", "female", "1"))
	assert.ErrorIs(t, err, estimate.ErrInvalidQuery)

	_, err = estimate.Evaluate(ds, "Age", scenario("x", "female", "1"))
	assert.ErrorIs(t, err, estimate.ErrInvalidQuery)

	_, err = estimate.Evaluate(ds, "Survived", config.Scenario{
		Label: "x",
		Given: config.Constraints{{Column: "Age", Value: "3"}},
	})
	assert.ErrorIs(t, err, estimate.ErrInvalidQuery)

	_, err = estimate.Evaluate(ds, "Survived", scenario("x", "female", "first"))
	assert.ErrorIs(t, err, estimate.ErrInvalidQuery)

	_, err = estimate.Evaluate(ds, "Pclass", scenario("x", "female", "1"))
	assert.ErrorIs(t, err, estimate.ErrNotBinary)
}

func TestEvaluateAllKeepsUndefinedOutcomes(t *testing.T) {
	ds := testutil.LoadPassengers(t)

	outcomes, err := estimate.EvaluateAll(ds, "Survived", []config.Scenario{
		scenario("Female, 1st class", "female", "1"),
		scenario("Female, 4th class", "female", "4"),
		scenario("Male, 3rd class", "male", "3"),
	})
	require.NoError(t, err)
	require.Len(t, outcomes, 3)

	assert.True(t, outcomes[0].Defined())
	assert.False(t, outcomes[1].Defined())
	assert.True(t, math.IsNaN(outcomes[1].Probability))
	assert.Equal(t, "Female, 4th class", outcomes[1].Label)
	assert.Equal(t, 0.0, outcomes[2].Probability)

	_, err = estimate.EvaluateAll(ds, "Sex", []config.Scenario{scenario("x", "female", "1")})
	assert.ErrorIs(t, err, estimate.ErrInvalidQuery)
}
