package classify

import (
	"errors"
	"reflect"
	"testing"

	"github.com/cognicore/tema/pkg/tema/internalerr"
)

// twoBlobs builds a linearly separable two-class dataset: class 0 around
// (0,0), class 1 around (10,10).
func twoBlobs(perClass int) ([][]float64, []int) {
	var X [][]float64
	var y []int
	for i := 0; i < perClass; i++ {
		off := float64(i%5) * 0.1
		X = append(X, []float64{off, off})
		y = append(y, 0)
		X = append(X, []float64{10 + off, 10 + off})
		y = append(y, 1)
	}
	return X, y
}

func TestSplitDeterministic(t *testing.T) {
	train1, test1 := Split(100, 0.25, 1)
	train2, test2 := Split(100, 0.25, 1)

	if !reflect.DeepEqual(train1, train2) || !reflect.DeepEqual(test1, test2) {
		t.Error("same seed and holdout must give identical partitions")
	}
	if len(test1) != 25 || len(train1) != 75 {
		t.Errorf("partition sizes %d/%d, want 75/25", len(train1), len(test1))
	}

	_, test3 := Split(100, 0.25, 2)
	if reflect.DeepEqual(test1, test3) {
		t.Error("different seeds should give different partitions")
	}
}

func TestSplitDisjointAndComplete(t *testing.T) {
	train, test := Split(40, 0.3, 7)
	seen := make(map[int]int)
	for _, i := range train {
		seen[i]++
	}
	for _, i := range test {
		seen[i]++
	}
	if len(seen) != 40 {
		t.Fatalf("partitions cover %d of 40 rows", len(seen))
	}
	for i, n := range seen {
		if n != 1 {
			t.Errorf("row %d appears %d times", i, n)
		}
	}
}

func TestTrainDegenerateLabels(t *testing.T) {
	X := [][]float64{{1}, {2}, {3}}
	y := []int{0, 0, 0}
	if _, err := Train(X, y, 10); !errors.Is(err, internalerr.ErrFit) {
		t.Errorf("single-class training: expected ErrFit, got %v", err)
	}
}

func TestTrainMismatchedRows(t *testing.T) {
	if _, err := Train([][]float64{{1}}, []int{0, 1}, 10); !errors.Is(err, internalerr.ErrFit) {
		t.Errorf("expected ErrFit, got %v", err)
	}
}

func TestTrainEvalSeparable(t *testing.T) {
	X, y := twoBlobs(30)

	res, err := TrainEval(X, y, Config{Trees: 50, Holdout: 0.25, Seed: 1})
	if err != nil {
		t.Fatal(err)
	}

	baseline := MajorityBaseline(y)
	if res.TestAccuracy < baseline {
		t.Errorf("test accuracy %.3f below majority baseline %.3f", res.TestAccuracy, baseline)
	}
	if res.TrainAccuracy < 0.9 {
		t.Errorf("train accuracy %.3f suspiciously low on separable data", res.TrainAccuracy)
	}
	if len(res.TrainIdx)+len(res.TestIdx) != len(X) {
		t.Error("partitions do not cover the dataset")
	}
}

func TestMajorityBaseline(t *testing.T) {
	if got := MajorityBaseline([]int{0, 0, 0, 1}); got != 0.75 {
		t.Errorf("baseline = %v, want 0.75", got)
	}
	if got := MajorityBaseline(nil); got != 0 {
		t.Errorf("empty baseline = %v", got)
	}
}

func TestFeatureImportance(t *testing.T) {
	// Feature 0 carries all the signal, feature 1 is constant noise.
	var X [][]float64
	var y []int
	for i := 0; i < 40; i++ {
		cls := i % 2
		X = append(X, []float64{float64(cls * 10), 1})
		y = append(y, cls)
	}

	model, err := Train(X, y, 50)
	if err != nil {
		t.Fatal(err)
	}

	scores := model.FeatureImportance(X, y, 1)
	if len(scores) != 2 {
		t.Fatalf("expected 2 scores, got %d", len(scores))
	}
	if scores[0] <= scores[1] {
		t.Errorf("informative feature should outrank the constant one: %v", scores)
	}

	// Permutation must leave the data unchanged afterwards.
	for i := range X {
		if X[i][0] != float64((i%2)*10) || X[i][1] != 1 {
			t.Fatal("importance computation mutated the feature matrix")
		}
	}
}
