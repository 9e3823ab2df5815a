package impact

import (
	"errors"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/feliixx/gotranslate/internal/plotutil"
)

var (
	barColor  = color.RGBA{R: 65, G: 105, B: 225, A: 255}
	edgeColor = color.Black
)

// BarChart plots the number of mutations per wild type residue
func BarChart(counts []ResidueCount, title string) (*plot.Plot, error) {

	if len(counts) == 0 {
		return nil, errors.New("no residue to plot")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Amino Acid"
	p.Y.Label.Text = "Frequency"
	p.Y.Min = 0
	p.Y.Tick.Marker = plotutil.IntegerTicks{}

	values := make(plotter.Values, len(counts))
	names := make([]string, len(counts))
	for i, c := range counts {
		values[i] = float64(c.Count)
		names[i] = string(c.Residue)
	}

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return nil, err
	}
	bars.Color = barColor
	bars.LineStyle.Color = edgeColor
	bars.LineStyle.Width = vg.Length(1)

	p.Add(bars)
	p.NominalX(names...)
	return p, nil
}
