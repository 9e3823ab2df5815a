// Package expression analyses differential gene expression results:
// it flags the significantly up and down regulated genes and draws
// them on a volcano plot.
package expression

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/feliixx/gotranslate/internal/source"
)

const (
	geneColumn     = "Gene"
	log2FCColumn   = "log2FoldChange"
	pvalueColumn   = "pvalue"
	padjColumn     = "padj"
	negLog10Column = "neg_log10_pvalue"
)

// Gene is one row of a differential expression table. Missing
// values are NaN
type Gene struct {
	Name           string
	Log2FoldChange float64
	PValue         float64
	PAdj           float64
}

// NegLog10P returns -log10 of the p-value, +Inf for a p-value of 0
func (g Gene) NegLog10P() float64 {
	return -math.Log10(g.PValue)
}

// Load reads a differential expression table. Columns are separated
// by commas when the header holds one, by runs of blanks otherwise.
// The log2FoldChange and pvalue columns are required, padj is
// optional. Genes are named after the Gene column, or the first
// column when there is none. NA and empty cells are missing values
func Load(in io.Reader) ([]Gene, error) {

	data, err := io.ReadAll(in)
	if err != nil {
		return nil, err
	}

	rows, err := split(data)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("empty table")
	}

	header := rows[0]
	index := map[string]int{}
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	nameCol, ok := index[geneColumn]
	if !ok {
		nameCol = 0
	}
	columns := map[string]int{}
	for _, name := range []string{log2FCColumn, pvalueColumn} {
		i, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("missing column %s", name)
		}
		columns[name] = i
	}
	padjCol, hasPAdj := index[padjColumn]

	genes := make([]Gene, 0, len(rows)-1)
	for n, row := range rows[1:] {

		line := n + 2
		if len(row) != len(header) {
			return nil, fmt.Errorf("line %d: expected %d fields, got %d", line, len(header), len(row))
		}

		g := Gene{Name: strings.TrimSpace(row[nameCol]), PAdj: math.NaN()}
		if g.Log2FoldChange, err = parseValue(row[columns[log2FCColumn]]); err != nil {
			return nil, fmt.Errorf("line %d: invalid %s: %w", line, log2FCColumn, err)
		}
		if g.PValue, err = parseValue(row[columns[pvalueColumn]]); err != nil {
			return nil, fmt.Errorf("line %d: invalid %s: %w", line, pvalueColumn, err)
		}
		if hasPAdj {
			if g.PAdj, err = parseValue(row[padjCol]); err != nil {
				return nil, fmt.Errorf("line %d: invalid %s: %w", line, padjColumn, err)
			}
		}
		genes = append(genes, g)
	}
	return genes, nil
}

// LoadFrom reads the table at src, a local file or an http(s) URL,
// see Load
func LoadFrom(ctx context.Context, src string) ([]Gene, error) {

	in, err := source.Open(ctx, src)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	genes, err := Load(in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src, err)
	}
	return genes, nil
}

func split(data []byte) ([][]string, error) {

	firstLine, _, _ := bytes.Cut(data, []byte("\n"))
	if bytes.ContainsRune(firstLine, ',') {
		r := csv.NewReader(bytes.NewReader(data))
		r.FieldsPerRecord = -1
		return r.ReadAll()
	}

	var rows [][]string
	for _, line := range strings.Split(string(data), "\n") {
		if fields := strings.Fields(line); len(fields) > 0 {
			rows = append(rows, fields)
		}
	}
	return rows, nil
}

func parseValue(s string) (float64, error) {
	s = strings.TrimSpace(s)
	switch strings.ToUpper(s) {
	case "", "NA", "NAN":
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

// Missing is the number of missing values per column
type Missing struct {
	Log2FoldChange int
	PValue         int
	PAdj           int
}

// CountMissing counts the missing values of genes
func CountMissing(genes []Gene) Missing {
	var m Missing
	for _, g := range genes {
		if math.IsNaN(g.Log2FoldChange) {
			m.Log2FoldChange++
		}
		if math.IsNaN(g.PValue) {
			m.PValue++
		}
		if math.IsNaN(g.PAdj) {
			m.PAdj++
		}
	}
	return m
}

// WriteCSV writes genes as a comma separated table with a header.
// Missing values are left empty
func WriteCSV(out io.Writer, genes []Gene) error {

	w := csv.NewWriter(out)
	if err := w.Write([]string{geneColumn, log2FCColumn, pvalueColumn, padjColumn, negLog10Column}); err != nil {
		return err
	}
	for _, g := range genes {
		err := w.Write([]string{
			g.Name,
			formatValue(g.Log2FoldChange),
			formatValue(g.PValue),
			formatValue(g.PAdj),
			formatValue(g.NegLog10P()),
		})
		if err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatValue(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
