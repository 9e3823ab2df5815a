// Package impact combines SIFT (functional impact) and FoldX (structural
// impact) predictions for protein mutations and reports the residues whose
// mutation is deleterious for both.
package impact

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	proteinColumn  = "Protein"
	mutationColumn = "Amino_acid"

	// SIFTColumn is the score column of a SIFT table
	SIFTColumn = "SIFT_score"
	// FoldXColumn is the score column of a FoldX table
	FoldXColumn = "FoldX_score"
)

// Record is one row of a SIFT or FoldX table
type Record struct {
	Protein string
	// Mutation is written <wild type><position><mutant>, for example E63D
	Mutation string
	Score    float64
}

// Key identifies a mutation of a given protein
func (r Record) Key() string {
	return r.Protein + "_" + r.Mutation
}

// Load reads a tab separated table with a header line. The header
// must contain the Protein, Amino_acid and scoreColumn columns, other
// columns are ignored
func Load(in io.Reader, scoreColumn string) ([]Record, error) {

	r := csv.NewReader(in)
	r.Comma = '\t'
	r.LazyQuotes = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("empty table, expected a header line")
	}
	if err != nil {
		return nil, fmt.Errorf("fail to read header: %w", err)
	}

	columns := map[string]int{}
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	var index [3]int
	for i, name := range []string{proteinColumn, mutationColumn, scoreColumn} {
		col, ok := columns[name]
		if !ok {
			return nil, fmt.Errorf("missing column %q in header", name)
		}
		index[i] = col
	}

	var records []Record
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		raw := strings.TrimSpace(row[index[2]])
		score, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			line, _ := r.FieldPos(index[2])
			return nil, fmt.Errorf("line %d: invalid %s %q: %w", line, scoreColumn, raw, err)
		}
		records = append(records, Record{
			Protein:  strings.TrimSpace(row[index[0]]),
			Mutation: strings.TrimSpace(row[index[1]]),
			Score:    score,
		})
	}
	return records, nil
}
