package expression

import "fmt"

// Regulation is the direction of a significant expression change
type Regulation int

const (
	NotSignificant Regulation = iota
	Up
	Down
)

func (r Regulation) String() string {
	switch r {
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "not significant"
	}
}

// Thresholds of the significance filter
type Thresholds struct {
	// genes must change by more than Log2FC in absolute value
	Log2FC float64
	// and have a p-value below PValue
	PValue float64
}

// DefaultThresholds flags the genes changing more than twofold with
// a p-value below 0.01
var DefaultThresholds = Thresholds{Log2FC: 1, PValue: 0.01}

// Validate checks that the thresholds can select genes
func (t Thresholds) Validate() error {
	if t.Log2FC < 0 {
		return fmt.Errorf("invalid log2 fold change threshold %g, must be positive", t.Log2FC)
	}
	if t.PValue <= 0 || t.PValue > 1 {
		return fmt.Errorf("invalid p-value threshold %g, must be in ]0, 1]", t.PValue)
	}
	return nil
}

// Classify returns the regulation of g. A gene with a missing value
// is never significant
func (t Thresholds) Classify(g Gene) Regulation {
	if !(g.PValue < t.PValue) {
		return NotSignificant
	}
	switch {
	case g.Log2FoldChange > t.Log2FC:
		return Up
	case g.Log2FoldChange < -t.Log2FC:
		return Down
	}
	return NotSignificant
}

// Split returns the up and down regulated genes, in input order
func Split(genes []Gene, t Thresholds) (up, down []Gene) {
	for _, g := range genes {
		switch t.Classify(g) {
		case Up:
			up = append(up, g)
		case Down:
			down = append(down, g)
		}
	}
	return up, down
}
