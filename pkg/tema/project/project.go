// Package project reduces a feature matrix to two dimensions for visual
// inspection: a label-aware Fisher discriminant projection that maximizes
// between-class separation, a t-SNE embedding as the unsupervised
// alternative, and a scatter renderer colored by category.
package project

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/cognicore/tema/pkg/tema/internalerr"
)

// ridge is added to the within-class scatter diagonal so the matrix stays
// invertible when features outnumber documents.
const ridge = 1e-6

// Fisher computes a 2D linear discriminant projection of X (documents in
// rows) guided by the class labels y. The projection directions are the
// leading eigenvectors of Sw⁻¹Sb, the classic Fisher criterion.
func Fisher(X *mat.Dense, y []int) (*mat.Dense, error) {
	n, d := X.Dims()
	if n != len(y) {
		return nil, fmt.Errorf("%w: %d rows vs %d labels", internalerr.ErrFit, n, len(y))
	}

	classes := 0
	for _, c := range y {
		if c+1 > classes {
			classes = c + 1
		}
	}
	counts := make([]int, classes)
	for _, c := range y {
		counts[c]++
	}
	present := 0
	for _, ct := range counts {
		if ct > 0 {
			present++
		}
	}
	if present < 2 {
		return nil, fmt.Errorf("%w: need at least two classes, got %d", internalerr.ErrFit, present)
	}

	// Class means and the grand mean.
	means := mat.NewDense(classes, d, nil)
	grand := make([]float64, d)
	for i := 0; i < n; i++ {
		row := X.RawRowView(i)
		c := y[i]
		for j := 0; j < d; j++ {
			means.Set(c, j, means.At(c, j)+row[j])
			grand[j] += row[j]
		}
	}
	for c := 0; c < classes; c++ {
		if counts[c] == 0 {
			continue
		}
		for j := 0; j < d; j++ {
			means.Set(c, j, means.At(c, j)/float64(counts[c]))
		}
	}
	for j := 0; j < d; j++ {
		grand[j] /= float64(n)
	}

	// Within-class and between-class scatter.
	sw := mat.NewDense(d, d, nil)
	sb := mat.NewDense(d, d, nil)
	diff := make([]float64, d)
	for i := 0; i < n; i++ {
		row := X.RawRowView(i)
		c := y[i]
		for j := 0; j < d; j++ {
			diff[j] = row[j] - means.At(c, j)
		}
		rankOneUpdate(sw, diff, 1)
	}
	for c := 0; c < classes; c++ {
		if counts[c] == 0 {
			continue
		}
		for j := 0; j < d; j++ {
			diff[j] = means.At(c, j) - grand[j]
		}
		rankOneUpdate(sb, diff, float64(counts[c]))
	}
	for j := 0; j < d; j++ {
		sw.Set(j, j, sw.At(j, j)+ridge)
	}

	var swInv mat.Dense
	if err := swInv.Inverse(sw); err != nil {
		return nil, fmt.Errorf("%w: within-class scatter not invertible: %v", internalerr.ErrFit, err)
	}
	var criterion mat.Dense
	criterion.Mul(&swInv, sb)

	var eig mat.Eigen
	if ok := eig.Factorize(&criterion, mat.EigenRight); !ok {
		return nil, fmt.Errorf("%w: eigen decomposition failed", internalerr.ErrFit)
	}
	vals := eig.Values(nil)
	var vecs mat.CDense
	eig.VectorsTo(&vecs)

	// Two leading directions by eigenvalue magnitude.
	order := make([]int, len(vals))
	for i := range order {
		order[i] = i
	}
	for i := 0; i < len(order); i++ {
		for j := i + 1; j < len(order); j++ {
			if real(vals[order[j]]) > real(vals[order[i]]) {
				order[i], order[j] = order[j], order[i]
			}
		}
	}

	w := mat.NewDense(d, 2, nil)
	for axis := 0; axis < 2 && axis < len(order); axis++ {
		col := order[axis]
		for j := 0; j < d; j++ {
			w.Set(j, axis, real(vecs.At(j, col)))
		}
	}

	// Project the mean-centered data.
	centered := mat.NewDense(n, d, nil)
	for i := 0; i < n; i++ {
		row := X.RawRowView(i)
		for j := 0; j < d; j++ {
			centered.Set(i, j, row[j]-grand[j])
		}
	}
	coords := mat.NewDense(n, 2, nil)
	coords.Mul(centered, w)

	return coords, nil
}

// rankOneUpdate adds weight * v vᵀ to m.
func rankOneUpdate(m *mat.Dense, v []float64, weight float64) {
	d := len(v)
	for i := 0; i < d; i++ {
		if v[i] == 0 {
			continue
		}
		wi := weight * v[i]
		for j := 0; j < d; j++ {
			m.Set(i, j, m.At(i, j)+wi*v[j])
		}
	}
}
