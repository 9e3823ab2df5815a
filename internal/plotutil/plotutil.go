// Package plotutil holds the plot helpers shared by the charts of
// the analysis commands.
package plotutil

import (
	"fmt"
	"io"
	"math"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// IntegerTicks marks every integer of the axis range
type IntegerTicks struct{}

func (IntegerTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	for i := int(math.Ceil(min)); i <= int(math.Floor(max)); i++ {
		ticks = append(ticks, plot.Tick{
			Value: float64(i),
			Label: fmt.Sprintf("%d", i),
		})
	}
	return ticks
}

// Write renders p to out. format is one of png, svg or pdf
func Write(out io.Writer, p *plot.Plot, format string, width, height vg.Length) error {

	format = strings.ToLower(format)
	switch format {
	case "png", "svg", "pdf":
	default:
		return fmt.Errorf("unsupported chart format: %s", format)
	}

	writer, err := p.WriterTo(width, height, format)
	if err != nil {
		return err
	}
	_, err = writer.WriteTo(out)
	return err
}
