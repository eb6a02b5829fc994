package bow

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/cognicore/tema/pkg/tema/internalerr"
)

var docs = []string{
	"perro gato jardín",
	"perro gato comida",
	"perro sopa pan",
	"perro pan tomate",
}

func TestFitVocabulary(t *testing.T) {
	v := New(Config{})
	if err := v.Fit(docs); err != nil {
		t.Fatal(err)
	}

	vocab := v.Vocabulary()
	want := []string{"comida", "gato", "jardín", "pan", "perro", "sopa", "tomate"}
	if !reflect.DeepEqual(vocab, want) {
		t.Errorf("vocabulary = %v, want %v", vocab, want)
	}
	if v.DocFreq("perro") != 4 || v.DocFreq("gato") != 2 {
		t.Error("document frequencies wrong")
	}
}

func TestMaxFeaturesCap(t *testing.T) {
	v := New(Config{MaxFeatures: 3})
	if err := v.Fit(docs); err != nil {
		t.Fatal(err)
	}
	vocab := v.Vocabulary()
	if len(vocab) > 3 {
		t.Fatalf("vocabulary %v exceeds cap", vocab)
	}
	// perro (df 4), gato and pan (df 2) survive; ties break lexicographically.
	want := []string{"gato", "pan", "perro"}
	if !reflect.DeepEqual(vocab, want) {
		t.Errorf("vocabulary = %v, want %v", vocab, want)
	}
}

func TestMaxDocFreqCeiling(t *testing.T) {
	v := New(Config{MaxDocFreq: 3})
	if err := v.Fit(docs); err != nil {
		t.Fatal(err)
	}
	for _, term := range v.Vocabulary() {
		if term == "perro" {
			t.Error("near-universal term 'perro' should be excluded by the df ceiling")
		}
		if v.DocFreq(term) > 3 {
			t.Errorf("term %q has df %d above the ceiling", term, v.DocFreq(term))
		}
	}
}

func TestFitDeterministic(t *testing.T) {
	a := New(Config{MaxFeatures: 4, MaxDocFreq: 3})
	b := New(Config{MaxFeatures: 4, MaxDocFreq: 3})
	if err := a.Fit(docs); err != nil {
		t.Fatal(err)
	}
	if err := b.Fit(docs); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a.Vocabulary(), b.Vocabulary()) {
		t.Error("same corpus and knobs must produce identical vocabularies")
	}
}

func TestEmptyVocabulary(t *testing.T) {
	v := New(Config{MaxDocFreq: 1})
	err := v.Fit([]string{"perro", "perro", "perro"})
	if !errors.Is(err, internalerr.ErrVectorization) {
		t.Errorf("expected ErrVectorization, got %v", err)
	}
}

func TestTransformCounts(t *testing.T) {
	v := New(Config{})
	X, err := v.FitTransform([]string{"perro perro gato", "gato"})
	if err != nil {
		t.Fatal(err)
	}

	r, c := X.Dims()
	if r != 2 || c != 2 {
		t.Fatalf("dims %dx%d", r, c)
	}
	// columns lexicographic: gato, perro
	if X.At(0, 1) != 2 || X.At(0, 0) != 1 || X.At(1, 0) != 1 || X.At(1, 1) != 0 {
		t.Errorf("counts wrong: [[%v %v] [%v %v]]", X.At(0, 0), X.At(0, 1), X.At(1, 0), X.At(1, 1))
	}
}

func TestTransformEmptyDocument(t *testing.T) {
	v := New(Config{})
	X, err := v.FitTransform([]string{"perro gato", ""})
	if err != nil {
		t.Fatal(err)
	}
	r, _ := X.Dims()
	if r != 2 {
		t.Fatalf("empty document must keep its row, got %d rows", r)
	}
	if X.At(1, 0) != 0 || X.At(1, 1) != 0 {
		t.Error("empty document should be an all-zero row")
	}
}

func TestTFIDFWeighting(t *testing.T) {
	v := New(Config{TFIDF: true})
	X, err := v.FitTransform([]string{"perro gato", "perro sopa"})
	if err != nil {
		t.Fatal(err)
	}

	// perro appears in both docs: idf = ln(2/2)+1 = 1.
	// gato appears in one: idf = ln(2/1)+1.
	cols := v.Vocabulary() // gato, perro, sopa
	var gato, perro int
	for i, term := range cols {
		switch term {
		case "gato":
			gato = i
		case "perro":
			perro = i
		}
	}
	if got := X.At(0, perro); math.Abs(got-1) > 1e-12 {
		t.Errorf("perro weight = %v, want 1", got)
	}
	wantGato := math.Log(2) + 1
	if got := X.At(0, gato); math.Abs(got-wantGato) > 1e-12 {
		t.Errorf("gato weight = %v, want %v", got, wantGato)
	}
}

func TestTransformUnfitted(t *testing.T) {
	_, err := New(Config{}).Transform([]string{"perro"})
	if !errors.Is(err, internalerr.ErrVectorization) {
		t.Errorf("expected ErrVectorization, got %v", err)
	}
}
