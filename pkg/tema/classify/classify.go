// Package classify trains and evaluates an ensemble classifier (a random
// forest) on a feature matrix with an aligned label vector. Splitting into
// train and held-out partitions is seeded and reproducible: the same seed
// and holdout fraction always produce the same partitions.
package classify

import (
	"fmt"
	"math/rand"

	randomforest "github.com/malaschitz/randomForest"

	"github.com/cognicore/tema/pkg/tema/internalerr"
)

// Config controls training and evaluation.
type Config struct {
	Trees   int     // ensemble size
	Holdout float64 // test fraction in (0,1)
	Seed    int64   // split seed
}

// Model wraps a fitted forest. Once fitted it is immutable.
type Model struct {
	forest  randomforest.Forest
	classes int
}

// Result reports a train/evaluate run.
type Result struct {
	Model         *Model
	TrainAccuracy float64
	TestAccuracy  float64
	TrainIdx      []int
	TestIdx       []int
}

// Split partitions [0,n) into train and test index sets. The permutation
// is drawn from a rand.Rand seeded with seed, so repeated calls with the
// same arguments return identical partitions. The test set holds
// floor(n*holdout) rows.
func Split(n int, holdout float64, seed int64) (train, test []int) {
	perm := rand.New(rand.NewSource(seed)).Perm(n)
	cut := int(float64(n) * holdout)
	test = append(test, perm[:cut]...)
	train = append(train, perm[cut:]...)
	return train, test
}

// Train fits a forest of cfg.Trees trees on X/y. The training partition
// must contain at least two distinct classes.
func Train(X [][]float64, y []int, trees int) (*Model, error) {
	if len(X) == 0 || len(X) != len(y) {
		return nil, fmt.Errorf("%w: %d rows vs %d labels", internalerr.ErrFit, len(X), len(y))
	}
	distinct := make(map[int]struct{})
	maxClass := 0
	for _, c := range y {
		distinct[c] = struct{}{}
		if c > maxClass {
			maxClass = c
		}
	}
	if len(distinct) < 2 {
		return nil, fmt.Errorf("%w: degenerate label distribution, %d class(es) in training data",
			internalerr.ErrFit, len(distinct))
	}
	if trees <= 0 {
		trees = 100
	}

	m := &Model{classes: maxClass + 1}
	m.forest.Data = randomforest.ForestData{X: X, Class: y}
	m.forest.Train(trees)
	return m, nil
}

// Predict returns the majority-vote class for one feature vector.
func (m *Model) Predict(x []float64) int {
	votes := m.forest.Vote(x)
	best, bestVote := 0, -1.0
	for c, v := range votes {
		if v > bestVote {
			best, bestVote = c, v
		}
	}
	return best
}

// Evaluate returns the exact-match accuracy of the model on X/y.
func (m *Model) Evaluate(X [][]float64, y []int) float64 {
	if len(X) == 0 {
		return 0
	}
	hits := 0
	for i, x := range X {
		if m.Predict(x) == y[i] {
			hits++
		}
	}
	return float64(hits) / float64(len(X))
}

// TrainEval splits X/y per cfg, fits on the training partition only and
// reports accuracy on both partitions.
func TrainEval(X [][]float64, y []int, cfg Config) (Result, error) {
	if len(X) != len(y) {
		return Result{}, fmt.Errorf("%w: %d rows vs %d labels", internalerr.ErrFit, len(X), len(y))
	}
	trainIdx, testIdx := Split(len(X), cfg.Holdout, cfg.Seed)

	trainX, trainY := gather(X, y, trainIdx)
	testX, testY := gather(X, y, testIdx)

	model, err := Train(trainX, trainY, cfg.Trees)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Model:         model,
		TrainAccuracy: model.Evaluate(trainX, trainY),
		TestAccuracy:  model.Evaluate(testX, testY),
		TrainIdx:      trainIdx,
		TestIdx:       testIdx,
	}, nil
}

func gather(X [][]float64, y []int, idx []int) ([][]float64, []int) {
	gx := make([][]float64, len(idx))
	gy := make([]int, len(idx))
	for i, j := range idx {
		gx[i] = X[j]
		gy[i] = y[j]
	}
	return gx, gy
}

// FeatureImportance scores each feature by permutation: the drop in
// accuracy on X/y when that feature's column is shuffled. Higher means the
// feature mattered more; scores can be slightly negative for irrelevant
// features. The shuffle is seeded for reproducibility.
func (m *Model) FeatureImportance(X [][]float64, y []int, seed int64) []float64 {
	if len(X) == 0 {
		return nil
	}
	features := len(X[0])
	base := m.Evaluate(X, y)
	rnd := rand.New(rand.NewSource(seed))

	scores := make([]float64, features)
	col := make([]float64, len(X))
	for j := 0; j < features; j++ {
		for i := range X {
			col[i] = X[i][j]
		}
		perm := rnd.Perm(len(X))
		for i := range X {
			X[i][j] = col[perm[i]]
		}
		scores[j] = base - m.Evaluate(X, y)
		for i := range X {
			X[i][j] = col[i]
		}
	}
	return scores
}

// MajorityBaseline returns the accuracy of always predicting the most
// frequent class, the floor any useful model must beat.
func MajorityBaseline(y []int) float64 {
	if len(y) == 0 {
		return 0
	}
	counts := make(map[int]int)
	best := 0
	for _, c := range y {
		counts[c]++
		if counts[c] > best {
			best = counts[c]
		}
	}
	return float64(best) / float64(len(y))
}
