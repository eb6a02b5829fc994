package project

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/cognicore/tema/pkg/tema/internalerr"
)

// Scatter renders 2D coordinates as a scatter plot with one color per
// class and writes it to path (format chosen by extension, e.g. .png).
// classes supplies the legend names indexed by label id.
func Scatter(coords *mat.Dense, y []int, classes []string, title, path string) error {
	n, dims := coords.Dims()
	if dims < 2 {
		return fmt.Errorf("%w: need 2D coordinates, got %d", internalerr.ErrFit, dims)
	}
	if n != len(y) {
		return fmt.Errorf("%w: %d points vs %d labels", internalerr.ErrFit, n, len(y))
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "component 1"
	p.Y.Label.Text = "component 2"

	byClass := make(map[int]plotter.XYs)
	for i := 0; i < n; i++ {
		byClass[y[i]] = append(byClass[y[i]], plotter.XY{
			X: coords.At(i, 0),
			Y: coords.At(i, 1),
		})
	}

	for c := 0; c < len(classes); c++ {
		pts, ok := byClass[c]
		if !ok {
			continue
		}
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return fmt.Errorf("scatter for class %q: %w", classes[c], err)
		}
		sc.GlyphStyle.Color = plotutil.Color(c)
		sc.GlyphStyle.Radius = vg.Points(2.5)
		p.Add(sc)
		p.Legend.Add(classes[c], sc)
	}
	p.Legend.Top = true

	if err := p.Save(7*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("save plot: %w", err)
	}
	return nil
}
