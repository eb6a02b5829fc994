package embed

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cognicore/tema/pkg/tema/internalerr"
)

func writeVectors(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vectors.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadPlain(t *testing.T) {
	m, err := Load(writeVectors(t, "perro 1.0 0.0\ngato 0.0 1.0\n"))
	if err != nil {
		t.Fatal(err)
	}
	if m.Dim() != 2 || m.Len() != 2 {
		t.Fatalf("dim=%d len=%d", m.Dim(), m.Len())
	}
	v, ok := m.Vector("perro")
	if !ok || v[0] != 1.0 {
		t.Errorf("perro vector = %v (%v)", v, ok)
	}
}

func TestLoadWithHeader(t *testing.T) {
	m, err := Load(writeVectors(t, "2 3\nperro 1 2 3\ngato 4 5 6\n"))
	if err != nil {
		t.Fatal(err)
	}
	if m.Dim() != 3 {
		t.Errorf("dim = %d, want 3", m.Dim())
	}
}

func TestLoadDimensionMismatch(t *testing.T) {
	_, err := Load(writeVectors(t, "perro 1 2 3\ngato 4 5\n"))
	if !errors.Is(err, internalerr.ErrLoad) {
		t.Errorf("expected ErrLoad, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"))
	if !errors.Is(err, internalerr.ErrLoad) {
		t.Errorf("expected ErrLoad, got %v", err)
	}
}

func TestAverage(t *testing.T) {
	m := NewModel(2, map[string][]float64{
		"perro": {2, 0},
		"gato":  {0, 2},
	})

	got := m.Average([]string{"perro", "gato", "desconocido"})
	if got[0] != 1 || got[1] != 1 {
		t.Errorf("average = %v, want [1 1]", got)
	}

	zero := m.Average([]string{"nada", "conocido"})
	if zero[0] != 0 || zero[1] != 0 {
		t.Errorf("all-unknown average = %v, want zero vector", zero)
	}
}

func TestMatrixRowAlignment(t *testing.T) {
	m := NewModel(2, map[string][]float64{"a": {1, 0}, "b": {0, 1}})

	docs := [][]string{{"a"}, {"b"}, {"a", "b"}}
	X := m.Matrix(docs)
	r, c := X.Dims()
	if r != len(docs) || c != 2 {
		t.Fatalf("dims = %dx%d", r, c)
	}
	if X.At(0, 0) != 1 || X.At(1, 1) != 1 || X.At(2, 0) != 0.5 {
		t.Error("rows not aligned with input document order")
	}
}
