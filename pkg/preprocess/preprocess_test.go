package preprocess

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSelector(t *testing.T) {
	sel, err := ParseSelector("default")
	require.NoError(t, err)
	require.Equal(t, SelectorDefault, sel)

	sel, err = ParseSelector("none")
	require.NoError(t, err)
	require.Equal(t, SelectorNone, sel)

	sel, err = ParseSelector("")
	require.NoError(t, err)
	require.Equal(t, SelectorNone, sel)

	_, err = ParseSelector("bogus")
	require.ErrorIs(t, err, ErrUnknownPreprocessor)
}

func TestBuildNone(t *testing.T) {
	pipeline, err := Build(SelectorNone, []bool{true, false})
	require.NoError(t, err)
	require.Nil(t, pipeline)
}

func TestConditionalImputer(t *testing.T) {
	nan := math.NaN()
	im := &ConditionalImputer{Categorical: []bool{false, true}}

	X, err := im.FitTransform([][]float64{
		{1, 0},
		{3, 0},
		{nan, 1},
		{4, nan},
	})
	require.NoError(t, err)

	// Numeric column: mean of 1, 3, 4.
	require.InDelta(t, 8.0/3.0, X[2][0], 1e-9)
	// Categorical column: most frequent is 0.
	require.Equal(t, 0.0, X[3][1])
}

func TestConditionalImputerTransformBeforeFit(t *testing.T) {
	im := &ConditionalImputer{Categorical: []bool{false}}
	_, err := im.Transform([][]float64{{1}})
	require.Error(t, err)
}

func TestOneHotEncoder(t *testing.T) {
	enc := &OneHotEncoder{Categorical: []bool{true, false}}

	X, err := enc.FitTransform([][]float64{
		{0, 1.5},
		{1, 2.5},
		{2, 3.5},
	})
	require.NoError(t, err)
	// Three categories plus the numeric passthrough.
	require.Len(t, X[0], 4)
	require.Equal(t, []float64{1, 0, 0, 1.5}, X[0])
	require.Equal(t, []float64{0, 1, 0, 2.5}, X[1])
}

func TestOneHotEncoderIgnoresUnseen(t *testing.T) {
	enc := &OneHotEncoder{Categorical: []bool{true}}

	_, err := enc.FitTransform([][]float64{{0}, {1}})
	require.NoError(t, err)

	X, err := enc.Transform([][]float64{{7}})
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0}, X[0])
}

func TestDefaultPipeline(t *testing.T) {
	nan := math.NaN()
	pipeline, err := Build(SelectorDefault, []bool{true, false})
	require.NoError(t, err)
	require.NotNil(t, pipeline)

	X, err := pipeline.FitTransform([][]float64{
		{0, 1},
		{0, nan},
		{1, 3},
	})
	require.NoError(t, err)
	// Two one-hot columns plus the imputed numeric column.
	require.Len(t, X[0], 3)
	require.Equal(t, 2.0, X[1][2])
}

func TestPipelineColumnMismatch(t *testing.T) {
	pipeline, err := Build(SelectorDefault, []bool{true, false, true})
	require.NoError(t, err)

	_, err = pipeline.FitTransform([][]float64{{1, 2}})
	require.Error(t, err)
}
