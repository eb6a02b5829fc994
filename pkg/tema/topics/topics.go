// Package topics fits a Latent Dirichlet Allocation topic model over a
// bag-of-words feature matrix and exposes the two factor views: top terms
// per topic and per-document topic weights. Topics are unsupervised; they
// need not align with human-interpretable themes.
package topics

import (
	"fmt"
	"sort"

	"github.com/james-bowman/nlp"
	"github.com/james-bowman/sparse"
	"golang.org/x/exp/rand"

	"github.com/cognicore/tema/pkg/tema/internalerr"
)

// Config controls the factorization.
type Config struct {
	K          int // number of latent topics
	Iterations int // fitting passes, defaulted when 0
	Seed       int64
}

// DefaultIterations matches the scale of corpus this package targets
// (thousands of short documents).
const DefaultIterations = 50

// Model is a fitted topic model. Once fitted it is immutable.
type Model struct {
	k         int
	vocab     []string
	docTopics [][]float64 // row-aligned with the fitted corpus
	termW     [][]float64 // k rows, one weight per vocabulary term
}

// Fit factorizes a document-by-term count matrix into cfg.K topics.
// vocab maps matrix columns to terms and must match the matrix width.
func Fit(counts *sparse.CSR, vocab []string, cfg Config) (*Model, error) {
	docs, terms := counts.Dims()
	if cfg.K <= 0 {
		return nil, fmt.Errorf("%w: topic count %d", internalerr.ErrFit, cfg.K)
	}
	if terms != len(vocab) {
		return nil, fmt.Errorf("%w: %d matrix columns vs %d vocabulary terms", internalerr.ErrFit, terms, len(vocab))
	}
	if docs == 0 || terms == 0 {
		return nil, fmt.Errorf("%w: empty feature matrix", internalerr.ErrFit)
	}

	iterations := cfg.Iterations
	if iterations <= 0 {
		iterations = DefaultIterations
	}

	lda := nlp.NewLatentDirichletAllocation(cfg.K)
	lda.Iterations = iterations
	lda.TransformationPasses = iterations / 2
	lda.Processes = 1
	lda.Rnd = rand.New(rand.NewSource(uint64(cfg.Seed)))

	// The factorizer expects the term-by-document orientation.
	tdm := sparse.NewDOK(terms, docs)
	counts.DoNonZero(func(i, j int, v float64) {
		tdm.Set(j, i, v)
	})

	docsOverTopics, err := lda.FitTransform(tdm.ToCSR())
	if err != nil {
		return nil, fmt.Errorf("%w: lda: %v", internalerr.ErrFit, err)
	}
	topicsOverWords := lda.Components()

	m := &Model{k: cfg.K, vocab: append([]string(nil), vocab...)}

	// docsOverTopics is topics × docs; flip to row-per-document.
	m.docTopics = make([][]float64, docs)
	for doc := 0; doc < docs; doc++ {
		w := make([]float64, cfg.K)
		for topic := 0; topic < cfg.K; topic++ {
			w[topic] = docsOverTopics.At(topic, doc)
		}
		m.docTopics[doc] = w
	}

	m.termW = make([][]float64, cfg.K)
	for topic := 0; topic < cfg.K; topic++ {
		w := make([]float64, terms)
		for term := 0; term < terms; term++ {
			w[term] = topicsOverWords.At(topic, term)
		}
		m.termW[topic] = w
	}

	return m, nil
}

// K returns the number of topics.
func (m *Model) K() int {
	return m.k
}

// DocTopics returns the per-document topic weight vectors, row-aligned
// with the fitted corpus.
func (m *Model) DocTopics() [][]float64 {
	return m.docTopics
}

// TopTerms returns the n highest-weighted vocabulary terms for each topic,
// strongest first. Every returned term is drawn from the fitted vocabulary.
func (m *Model) TopTerms(n int) [][]string {
	if n > len(m.vocab) {
		n = len(m.vocab)
	}
	out := make([][]string, m.k)
	for topic := 0; topic < m.k; topic++ {
		order := make([]int, len(m.vocab))
		for i := range order {
			order[i] = i
		}
		w := m.termW[topic]
		sort.Slice(order, func(a, b int) bool {
			if w[order[a]] != w[order[b]] {
				return w[order[a]] > w[order[b]]
			}
			return m.vocab[order[a]] < m.vocab[order[b]]
		})
		terms := make([]string, n)
		for i := 0; i < n; i++ {
			terms[i] = m.vocab[order[i]]
		}
		out[topic] = terms
	}
	return out
}

// DocsAbove returns the indices of documents whose weight for the given
// topic exceeds threshold, in row order.
func (m *Model) DocsAbove(topic int, threshold float64) []int {
	var out []int
	for i, w := range m.docTopics {
		if topic < len(w) && w[topic] > threshold {
			out = append(out, i)
		}
	}
	return out
}

// Dominant returns each document's strongest topic, row-aligned.
func (m *Model) Dominant() []int {
	out := make([]int, len(m.docTopics))
	for i, w := range m.docTopics {
		best, bestW := 0, -1.0
		for topic, v := range w {
			if v > bestW {
				best, bestW = topic, v
			}
		}
		out[i] = best
	}
	return out
}
