package model

import (
	"fmt"
	"sort"

	"github.com/salesmlstack/revenue-predictor/internal/errors"
)

// TrainParams are the boosting hyperparameters. The defaults mirror the
// production pipeline: 100 rounds of depth-6 trees.
type TrainParams struct {
	Rounds         int
	LearningRate   float64
	MaxDepth       int
	MinSamplesLeaf int
}

func DefaultTrainParams() TrainParams {
	return TrainParams{
		Rounds:         100,
		LearningRate:   0.3,
		MaxDepth:       6,
		MinSamplesLeaf: 1,
	}
}

// Train fits a gradient-boosted ensemble on squared error. Each round fits
// one regression tree to the current residuals by greedy variance-reduction
// splits. Training is fully deterministic: no row or column subsampling.
func Train(x [][]float64, y []float64, params TrainParams) (*GBTRegressor, error) {
	if len(x) == 0 || len(x) != len(y) {
		return nil, &errors.ValidationError{
			Field:    "trainingData",
			ErrorMsg: fmt.Sprintf("need matching non-empty features and targets, got %d x %d", len(x), len(y)),
		}
	}

	m := &GBTRegressor{
		BaseScore:    meanOf(y),
		LearningRate: params.LearningRate,
		Trees:        make([]tree, 0, params.Rounds),
	}

	predictions := make([]float64, len(y))
	for i := range predictions {
		predictions[i] = m.BaseScore
	}

	residuals := make([]float64, len(y))
	indexes := make([]int, len(y))
	for round := 0; round < params.Rounds; round++ {
		for i := range y {
			residuals[i] = y[i] - predictions[i]
			indexes[i] = i
		}
		t := growTree(x, residuals, indexes, params)
		for i := range predictions {
			predictions[i] += params.LearningRate * t.predict(x[i])
		}
		m.Trees = append(m.Trees, t)
	}
	return m, nil
}

// growTree builds one depth-limited regression tree over the given sample
// indexes, targeting the residuals.
func growTree(x [][]float64, residuals []float64, indexes []int, params TrainParams) tree {
	t := tree{}
	growNode(&t, x, residuals, indexes, 0, params)
	return t
}

// growNode appends a node for the given samples and recurses into its
// children. Returns the index of the appended node.
func growNode(t *tree, x [][]float64, residuals []float64, indexes []int, depth int, params TrainParams) int {
	nodeIndex := len(t.Nodes)
	t.Nodes = append(t.Nodes, node{})

	if depth >= params.MaxDepth || len(indexes) < 2*params.MinSamplesLeaf {
		t.Nodes[nodeIndex] = node{Leaf: true, Value: meanAt(residuals, indexes)}
		return nodeIndex
	}

	feature, threshold, ok := bestSplit(x, residuals, indexes, params.MinSamplesLeaf)
	if !ok {
		t.Nodes[nodeIndex] = node{Leaf: true, Value: meanAt(residuals, indexes)}
		return nodeIndex
	}

	var left, right []int
	for _, i := range indexes {
		if x[i][feature] < threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	leftIndex := growNode(t, x, residuals, left, depth+1, params)
	rightIndex := growNode(t, x, residuals, right, depth+1, params)
	t.Nodes[nodeIndex] = node{
		Feature:   feature,
		Threshold: threshold,
		Left:      leftIndex,
		Right:     rightIndex,
	}
	return nodeIndex
}

// bestSplit scans every feature for the split that minimizes the summed
// squared error of the two children, using prefix sums over the samples
// sorted by feature value.
func bestSplit(x [][]float64, residuals []float64, indexes []int, minLeaf int) (int, float64, bool) {
	bestFeature, bestThreshold := -1, 0.0
	bestScore := parentScore(residuals, indexes)
	found := false

	numFeatures := len(x[indexes[0]])
	sorted := make([]int, len(indexes))
	for feature := 0; feature < numFeatures; feature++ {
		copy(sorted, indexes)
		f := feature
		sort.Slice(sorted, func(a, b int) bool {
			return x[sorted[a]][f] < x[sorted[b]][f]
		})

		totalSum := 0.0
		for _, i := range sorted {
			totalSum += residuals[i]
		}

		leftSum, leftCount := 0.0, 0
		total := len(sorted)
		for pos := 0; pos < total-1; pos++ {
			i := sorted[pos]
			leftSum += residuals[i]
			leftCount++

			// No split between identical feature values.
			if x[i][feature] == x[sorted[pos+1]][feature] {
				continue
			}
			if leftCount < minLeaf || total-leftCount < minLeaf {
				continue
			}

			rightSum := totalSum - leftSum
			rightCount := total - leftCount
			score := -leftSum*leftSum/float64(leftCount) - rightSum*rightSum/float64(rightCount)
			if score < bestScore {
				bestScore = score
				bestFeature = feature
				bestThreshold = (x[i][feature] + x[sorted[pos+1]][feature]) / 2
				found = true
			}
		}
	}
	return bestFeature, bestThreshold, found
}

// parentScore is the unsplit node's contribution under the same scoring used
// in bestSplit, so a split is only taken when it strictly improves it.
func parentScore(residuals []float64, indexes []int) float64 {
	sum := 0.0
	for _, i := range indexes {
		sum += residuals[i]
	}
	return -sum * sum / float64(len(indexes))
}

func meanOf(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func meanAt(values []float64, indexes []int) float64 {
	sum := 0.0
	for _, i := range indexes {
		sum += values[i]
	}
	return sum / float64(len(indexes))
}
