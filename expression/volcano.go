package expression

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	regulationColor = map[Regulation]color.Color{
		NotSignificant: color.NRGBA{R: 128, G: 128, B: 128, A: 179},
		Up:             color.NRGBA{R: 255, A: 179},
		Down:           color.NRGBA{B: 255, A: 179},
	}
	thresholdColor = color.NRGBA{A: 179}
)

// VolcanoPlot draws the -log10(p-value) of each gene against its log2
// fold change, colored by regulation, with dashed lines on the
// thresholds. Genes with a missing value or a null p-value are not
// drawn
func VolcanoPlot(genes []Gene, t Thresholds, title string) (*plot.Plot, error) {

	groups := map[Regulation]plotter.XYs{}
	xmin, xmax := -t.Log2FC, t.Log2FC
	pLine := -math.Log10(t.PValue)
	ymin, ymax := math.Min(0, pLine), pLine

	plotted := 0
	for _, g := range genes {
		x, y := g.Log2FoldChange, g.NegLog10P()
		if !isFinite(x) || !isFinite(y) {
			continue
		}
		r := t.Classify(g)
		groups[r] = append(groups[r], plotter.XY{X: x, Y: y})
		xmin, xmax = math.Min(xmin, x), math.Max(xmax, x)
		ymin, ymax = math.Min(ymin, y), math.Max(ymax, y)
		plotted++
	}
	if plotted == 0 {
		return nil, errors.New("no gene to plot")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Log2 Fold Change"
	p.Y.Label.Text = "-log10(p-value)"
	p.Add(plotter.NewGrid())

	labels := map[Regulation]string{
		NotSignificant: "not significant",
		Up:             fmt.Sprintf("up (log2FC > %g, p < %g)", t.Log2FC, t.PValue),
		Down:           fmt.Sprintf("down (log2FC < %g, p < %g)", -t.Log2FC, t.PValue),
	}
	for _, r := range []Regulation{NotSignificant, Up, Down} {
		if len(groups[r]) == 0 {
			continue
		}
		s, err := plotter.NewScatter(groups[r])
		if err != nil {
			return nil, err
		}
		s.GlyphStyle.Color = regulationColor[r]
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		s.GlyphStyle.Radius = vg.Points(2)
		p.Add(s)
		p.Legend.Add(labels[r], s)
	}

	thresholds := []plotter.XYs{
		{{X: xmin, Y: pLine}, {X: xmax, Y: pLine}},
		{{X: t.Log2FC, Y: ymin}, {X: t.Log2FC, Y: ymax}},
		{{X: -t.Log2FC, Y: ymin}, {X: -t.Log2FC, Y: ymax}},
	}
	for _, pts := range thresholds {
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, err
		}
		line.Color = thresholdColor
		line.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
		p.Add(line)
	}

	p.Legend.Top = true
	return p, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
