package project

import (
	"github.com/danaugrs/go-tsne/tsne"
	"gonum.org/v1/gonum/mat"
)

// t-SNE knobs sized for corpora in the low thousands of documents.
const (
	tsnePerplexity   = 30
	tsneLearningRate = 100
	tsneMaxIter      = 300
)

// TSNE computes an unsupervised 2D embedding of X. Unlike Fisher it
// ignores labels, so it shows cluster structure rather than separability.
func TSNE(X *mat.Dense) *mat.Dense {
	t := tsne.NewTSNE(2, tsnePerplexity, tsneLearningRate, tsneMaxIter, false)
	t.EmbedData(X, nil)
	return t.Y
}
