package model

import (
	"encoding/json"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesmlstack/revenue-predictor/internal/errors"
)

func syntheticData(n int, seed int64) ([][]float64, []float64) {
	rng := rand.New(rand.NewSource(seed))
	x := make([][]float64, n)
	y := make([]float64, n)
	for i := range x {
		a := rng.Float64() * 10
		b := rng.Float64() * 4
		x[i] = []float64{a, b}
		y[i] = 3*a + 25*math.Floor(b)
	}
	return x, y
}

func TestTrainFitsPiecewiseFunction(t *testing.T) {
	x, y := syntheticData(400, 11)
	m, err := Train(x, y, TrainParams{Rounds: 50, LearningRate: 0.3, MaxDepth: 4, MinSamplesLeaf: 1})
	require.NoError(t, err)
	require.Equal(t, 50, m.NumTrees())

	sse, sst := 0.0, 0.0
	meanY := 0.0
	for _, v := range y {
		meanY += v
	}
	meanY /= float64(len(y))
	for i := range y {
		err := y[i] - m.Predict(x[i])
		sse += err * err
		dev := y[i] - meanY
		sst += dev * dev
	}
	assert.Less(t, sse/sst, 0.05, "boosted trees should explain most of the variance")
}

func TestTrainIsDeterministic(t *testing.T) {
	x, y := syntheticData(150, 3)
	params := TrainParams{Rounds: 10, LearningRate: 0.3, MaxDepth: 3, MinSamplesLeaf: 1}

	first, err := Train(x, y, params)
	require.NoError(t, err)
	second, err := Train(x, y, params)
	require.NoError(t, err)

	for i := range x {
		assert.Equal(t, first.Predict(x[i]), second.Predict(x[i]))
	}
}

func TestTrainConstantTargetPredictsConstant(t *testing.T) {
	x := [][]float64{{1, 2}, {3, 4}, {5, 6}, {7, 8}}
	y := []float64{42, 42, 42, 42}
	m, err := Train(x, y, DefaultTrainParams())
	require.NoError(t, err)
	assert.InDelta(t, 42.0, m.Predict([]float64{9, 10}), 1e-9)
}

func TestTrainRejectsEmptyOrMismatchedData(t *testing.T) {
	var validationErr *errors.ValidationError

	_, err := Train(nil, nil, DefaultTrainParams())
	assert.ErrorAs(t, err, &validationErr)

	_, err = Train([][]float64{{1}}, []float64{1, 2}, DefaultTrainParams())
	assert.ErrorAs(t, err, &validationErr)
}

func TestModelJSONRoundTripPredictsIdentically(t *testing.T) {
	x, y := syntheticData(120, 5)
	m, err := Train(x, y, TrainParams{Rounds: 15, LearningRate: 0.3, MaxDepth: 4, MinSamplesLeaf: 1})
	require.NoError(t, err)

	data, err := json.Marshal(m)
	require.NoError(t, err)
	restored := &GBTRegressor{}
	require.NoError(t, json.Unmarshal(data, restored))

	for i := range x {
		assert.Equal(t, m.Predict(x[i]), restored.Predict(x[i]))
	}
}
