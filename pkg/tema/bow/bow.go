// Package bow builds bag-of-words feature matrices: raw term counts or
// tf-idf weights over a vocabulary selected by document frequency. Matrices
// are document-by-term with rows aligned to the input document order.
package bow

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/james-bowman/sparse"

	"github.com/cognicore/tema/pkg/tema/internalerr"
)

// Config controls vocabulary selection and weighting.
type Config struct {
	// MaxFeatures caps the vocabulary at the N most document-frequent
	// terms. 0 means no cap.
	MaxFeatures int
	// MaxDocFreq drops terms appearing in more than this many documents,
	// suppressing near-universal terms. 0 means no ceiling.
	MaxDocFreq int
	// TFIDF switches the weighting from raw counts to tf × (ln(n/df)+1).
	TFIDF bool
}

// Vectorizer converts whitespace-tokenized documents into a numeric
// feature matrix. Vocabulary selection is deterministic: given the same
// corpus and knobs, the same vocabulary results.
type Vectorizer struct {
	cfg Config

	vocab   []string       // column order, lexicographic
	index   map[string]int // term → column
	docFreq map[string]int // df over the fitted corpus
	numDocs int
}

// New creates an unfitted vectorizer.
func New(cfg Config) *Vectorizer {
	return &Vectorizer{cfg: cfg}
}

// Fit selects the vocabulary from a corpus of pre-filtered documents.
// Terms above the document-frequency ceiling are dropped first; the
// remainder is ranked by document frequency (descending, ties broken
// lexicographically) and capped at MaxFeatures; columns are ordered
// lexicographically. An empty resulting vocabulary is an error.
func (v *Vectorizer) Fit(docs []string) error {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, term := range strings.Fields(doc) {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}

	candidates := make([]string, 0, len(df))
	for term, n := range df {
		if v.cfg.MaxDocFreq > 0 && n > v.cfg.MaxDocFreq {
			continue
		}
		candidates = append(candidates, term)
	}
	if len(candidates) == 0 {
		return fmt.Errorf("%w: empty vocabulary (corpus %d docs, %d distinct terms, max_df %d)",
			internalerr.ErrVectorization, len(docs), len(df), v.cfg.MaxDocFreq)
	}

	sort.Slice(candidates, func(i, j int) bool {
		if df[candidates[i]] != df[candidates[j]] {
			return df[candidates[i]] > df[candidates[j]]
		}
		return candidates[i] < candidates[j]
	})
	if v.cfg.MaxFeatures > 0 && len(candidates) > v.cfg.MaxFeatures {
		candidates = candidates[:v.cfg.MaxFeatures]
	}
	sort.Strings(candidates)

	v.vocab = candidates
	v.index = make(map[string]int, len(candidates))
	v.docFreq = make(map[string]int, len(candidates))
	for i, term := range candidates {
		v.index[term] = i
		v.docFreq[term] = df[term]
	}
	v.numDocs = len(docs)

	return nil
}

// Transform builds the document-by-term matrix for docs using the fitted
// vocabulary. Documents with no vocabulary terms become all-zero rows.
func (v *Vectorizer) Transform(docs []string) (*sparse.CSR, error) {
	if v.vocab == nil {
		return nil, fmt.Errorf("%w: vectorizer not fitted", internalerr.ErrVectorization)
	}

	dok := sparse.NewDOK(len(docs), len(v.vocab))
	for i, doc := range docs {
		counts := make(map[int]float64)
		for _, term := range strings.Fields(doc) {
			if j, ok := v.index[term]; ok {
				counts[j]++
			}
		}
		for j, c := range counts {
			if v.cfg.TFIDF {
				c *= v.idf(v.vocab[j])
			}
			dok.Set(i, j, c)
		}
	}

	return dok.ToCSR(), nil
}

// FitTransform fits the vocabulary and transforms the same corpus.
func (v *Vectorizer) FitTransform(docs []string) (*sparse.CSR, error) {
	if err := v.Fit(docs); err != nil {
		return nil, err
	}
	return v.Transform(docs)
}

// idf is the smoothed inverse document frequency: ln(n/df) + 1.
func (v *Vectorizer) idf(term string) float64 {
	df := v.docFreq[term]
	if df == 0 {
		return 0
	}
	return math.Log(float64(v.numDocs)/float64(df)) + 1
}

// Vocabulary returns the fitted terms in column order.
func (v *Vectorizer) Vocabulary() []string {
	out := make([]string, len(v.vocab))
	copy(out, v.vocab)
	return out
}

// DocFreq returns the fitted document frequency of a term, 0 if the term
// is not in the vocabulary.
func (v *Vectorizer) DocFreq(term string) int {
	return v.docFreq[term]
}

// Dense converts a feature matrix into row slices for consumers that work
// on [][]float64 rather than gonum matrices.
func Dense(m *sparse.CSR) [][]float64 {
	r, c := m.Dims()
	out := make([][]float64, r)
	for i := 0; i < r; i++ {
		row := make([]float64, c)
		for j := 0; j < c; j++ {
			row[j] = m.At(i, j)
		}
		out[i] = row
	}
	return out
}
