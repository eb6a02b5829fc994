// Package embed loads pretrained word vectors in the word2vec text format
// and averages them into dense document representations.
package embed

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/cognicore/tema/pkg/tema/internalerr"
)

// Model is an immutable word → vector lookup of fixed dimensionality.
type Model struct {
	dim     int
	vectors map[string][]float64
}

// Load reads a word2vec text file: one "word v1 v2 ... vn" line per word,
// optionally preceded by a "count dim" header line. All vectors must share
// one dimensionality.
func Load(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrLoad, err)
	}
	defer f.Close()

	m := &Model{vectors: make(map[string][]float64)}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)

		// Optional "count dim" header.
		if lineNo == 1 && len(fields) == 2 {
			if _, err := strconv.Atoi(fields[0]); err == nil {
				if d, err := strconv.Atoi(fields[1]); err == nil {
					m.dim = d
					continue
				}
			}
		}

		if len(fields) < 2 {
			return nil, fmt.Errorf("%w: %s:%d: not a vector line", internalerr.ErrLoad, path, lineNo)
		}
		word := fields[0]
		vec := make([]float64, len(fields)-1)
		for i, fld := range fields[1:] {
			v, err := strconv.ParseFloat(fld, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %s:%d: %v", internalerr.ErrLoad, path, lineNo, err)
			}
			vec[i] = v
		}
		if m.dim == 0 {
			m.dim = len(vec)
		}
		if len(vec) != m.dim {
			return nil, fmt.Errorf("%w: %s:%d: dimension %d, want %d", internalerr.ErrLoad, path, lineNo, len(vec), m.dim)
		}
		m.vectors[word] = vec
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrLoad, err)
	}
	if len(m.vectors) == 0 {
		return nil, fmt.Errorf("%w: %s: no vectors", internalerr.ErrLoad, path)
	}

	return m, nil
}

// NewModel builds an in-memory model, mainly for tests.
func NewModel(dim int, vectors map[string][]float64) *Model {
	return &Model{dim: dim, vectors: vectors}
}

// Dim returns the vector dimensionality.
func (m *Model) Dim() int {
	return m.dim
}

// Len returns the vocabulary size of the model.
func (m *Model) Len() int {
	return len(m.vectors)
}

// Vector returns the vector for a word.
func (m *Model) Vector(word string) ([]float64, bool) {
	v, ok := m.vectors[word]
	return v, ok
}

// Average returns the mean vector of the known words in the slice.
// When none of the words are known, the zero vector is returned.
func (m *Model) Average(words []string) []float64 {
	sum := make([]float64, m.dim)
	known := 0
	for _, w := range words {
		v, ok := m.vectors[w]
		if !ok {
			continue
		}
		for i := range sum {
			sum[i] += v[i]
		}
		known++
	}
	if known > 0 {
		for i := range sum {
			sum[i] /= float64(known)
		}
	}
	return sum
}

// Matrix builds a dense document-by-dimension matrix by averaging the
// vectors of each token slice. Row i corresponds to docs[i].
func (m *Model) Matrix(docs [][]string) *mat.Dense {
	out := mat.NewDense(len(docs), m.dim, nil)
	for i, words := range docs {
		out.SetRow(i, m.Average(words))
	}
	return out
}
