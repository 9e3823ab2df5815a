package impact

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Mutation holds both predictions for a mutation
type Mutation struct {
	Protein  string
	Mutation string
	SIFT     float64
	FoldX    float64
}

// Key identifies the mutation, see Record.Key
func (m Mutation) Key() string {
	return m.Protein + "_" + m.Mutation
}

// Original returns the wild type residue, the first letter of
// the mutation, or 0 if the mutation is empty
func (m Mutation) Original() byte {
	if m.Mutation == "" {
		return 0
	}
	return m.Mutation[0]
}

// Merge joins the SIFT and FoldX records sharing the same protein
// and mutation. Mutations are returned in SIFT order; a key present
// several times in both tables yields every pair
func Merge(sift, foldx []Record) []Mutation {

	byKey := make(map[string][]Record, len(foldx))
	for _, r := range foldx {
		byKey[r.Key()] = append(byKey[r.Key()], r)
	}

	var merged []Mutation
	for _, s := range sift {
		for _, f := range byKey[s.Key()] {
			merged = append(merged, Mutation{
				Protein:  s.Protein,
				Mutation: s.Mutation,
				SIFT:     s.Score,
				FoldX:    f.Score,
			})
		}
	}
	return merged
}

// Thresholds of the deleterious filter
type Thresholds struct {
	// mutations with a SIFT score below SIFT affect the function
	SIFT float64
	// mutations with a FoldX score above FoldX affect the structure
	FoldX float64
}

// DefaultThresholds are the usual cutoffs of both tools
var DefaultThresholds = Thresholds{SIFT: 0.05, FoldX: 2}

// Deleterious returns the mutations affecting both the function
// and the structure of the protein
func Deleterious(mutations []Mutation, t Thresholds) []Mutation {

	var kept []Mutation
	for _, m := range mutations {
		if m.SIFT < t.SIFT && m.FoldX > t.FoldX {
			kept = append(kept, m)
		}
	}
	return kept
}

// ResidueCount is the number of mutations of a wild type residue
type ResidueCount struct {
	Residue byte
	Count   int
	// Percent is the share of the counted mutations, from 0 to 100
	Percent float64
}

// CountOriginal counts the wild type residue of each mutation. The
// result is sorted by decreasing count, residues with the same count
// keep the order of their first mutation
func CountOriginal(mutations []Mutation) []ResidueCount {

	index := map[byte]int{}
	var result []ResidueCount
	total := 0
	for _, m := range mutations {
		aa := m.Original()
		if aa == 0 {
			continue
		}
		i, ok := index[aa]
		if !ok {
			i = len(result)
			index[aa] = i
			result = append(result, ResidueCount{Residue: aa})
		}
		result[i].Count++
		total++
	}

	for i := range result {
		result[i].Percent = 100 * float64(result[i].Count) / float64(total)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})
	return result
}

// Summary describes the scores of a set of mutations. Statistics
// of an empty set are NaN, the standard deviation needs at least
// two mutations
type Summary struct {
	Count       int
	MeanSIFT    float64
	StdDevSIFT  float64
	MinSIFT     float64
	MeanFoldX   float64
	StdDevFoldX float64
	MaxFoldX    float64
}

// Summarize computes the score statistics of mutations
func Summarize(mutations []Mutation) Summary {

	s := Summary{
		Count:       len(mutations),
		MeanSIFT:    math.NaN(),
		StdDevSIFT:  math.NaN(),
		MinSIFT:     math.NaN(),
		MeanFoldX:   math.NaN(),
		StdDevFoldX: math.NaN(),
		MaxFoldX:    math.NaN(),
	}
	if len(mutations) == 0 {
		return s
	}

	sift := make([]float64, len(mutations))
	foldx := make([]float64, len(mutations))
	for i, m := range mutations {
		sift[i] = m.SIFT
		foldx[i] = m.FoldX
	}

	s.MeanSIFT = stat.Mean(sift, nil)
	s.MinSIFT = floats.Min(sift)
	s.MeanFoldX = stat.Mean(foldx, nil)
	s.MaxFoldX = floats.Max(foldx)
	if len(mutations) > 1 {
		s.StdDevSIFT = stat.StdDev(sift, nil)
		s.StdDevFoldX = stat.StdDev(foldx, nil)
	}
	return s
}
