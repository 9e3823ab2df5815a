package expression

import (
	"bytes"
	"context"
	"encoding/csv"
	"math"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/plot/vg"

	"github.com/feliixx/gotranslate/internal/plotutil"
)

func loadFixture(t *testing.T) []Gene {
	t.Helper()

	genes, err := LoadFrom(context.Background(), "testdata/results.txt")
	if err != nil {
		t.Fatal(err)
	}
	return genes
}

func names(genes []Gene) []string {
	var n []string
	for _, g := range genes {
		n = append(n, g.Name)
	}
	return n
}

func TestLoad(t *testing.T) {

	genes := loadFixture(t)
	if len(genes) != 9 {
		t.Fatalf("expected 9 genes, got %d", len(genes))
	}

	ifitm1 := genes[3]
	if ifitm1.Name != "IFITM1" || ifitm1.Log2FoldChange != -1.6878 || ifitm1.PValue != 3.735e-06 || ifitm1.PAdj != 0.006809 {
		t.Errorf("wrong values for IFITM1: %+v", ifitm1)
	}
	if znf := genes[6]; !math.IsNaN(znf.PAdj) || znf.PValue != 0.005 {
		t.Errorf("expected a missing padj for ZNF516: %+v", znf)
	}
	if novel := genes[8]; !math.IsNaN(novel.PValue) || novel.Log2FoldChange != -3 {
		t.Errorf("expected a missing p-value for NOVEL: %+v", novel)
	}

	if want, got := (Missing{PValue: 1, PAdj: 2}), CountMissing(genes); want != got {
		t.Errorf("expected missing values %+v but got %+v", want, got)
	}
}

func TestLoadCSV(t *testing.T) {

	genes, err := LoadFrom(context.Background(), "testdata/results.csv")
	if err != nil {
		t.Fatal(err)
	}
	if want, got := []string{"DOK6", "TBX5", "ZNF516"}, names(genes); !reflect.DeepEqual(want, got) {
		t.Errorf("expected genes %v but got %v", want, got)
	}
	if !math.IsNaN(genes[2].PAdj) {
		t.Errorf("expected an empty cell to be a missing value, got %v", genes[2].PAdj)
	}
}

func TestLoadWithoutGeneColumn(t *testing.T) {

	genes, err := Load(strings.NewReader("id pvalue log2FoldChange\nENSG01 0.001 -4\n"))
	if err != nil {
		t.Fatal(err)
	}
	if want, got := (Gene{Name: "ENSG01", Log2FoldChange: -4, PValue: 0.001}), genes[0]; want.Name != got.Name || want.Log2FoldChange != got.Log2FoldChange || want.PValue != got.PValue || !math.IsNaN(got.PAdj) {
		t.Errorf("expected %+v but got %+v", want, got)
	}
}

func TestLoadErrors(t *testing.T) {

	tests := []struct {
		name  string
		input string
		msg   string
	}{
		{"empty", "", "empty table"},
		{"missing pvalue", "Gene log2FoldChange\nA 1\n", "missing column pvalue"},
		{"missing log2FoldChange", "Gene,pvalue\nA,0.1\n", "missing column log2FoldChange"},
		{"short row", "Gene log2FoldChange pvalue\nA 1\n", "line 2: expected 3 fields, got 2"},
		{"invalid number", "Gene log2FoldChange pvalue\nA 1 low\n", "line 2: invalid pvalue"},
		{"invalid padj", "Gene log2FoldChange pvalue padj\nA 1 0.1 x\n", "line 2: invalid padj"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(test.input))
			if err == nil || !strings.Contains(err.Error(), test.msg) {
				t.Errorf("expected an error containing %q, got %v", test.msg, err)
			}
		})
	}

	if _, err := LoadFrom(context.Background(), "testdata/missing.txt"); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestClassify(t *testing.T) {

	tests := []struct {
		name     string
		gene     Gene
		expected Regulation
	}{
		{"up", Gene{Log2FoldChange: 2, PValue: 0.001}, Up},
		{"down", Gene{Log2FoldChange: -2, PValue: 0.001}, Down},
		{"small change", Gene{Log2FoldChange: 0.5, PValue: 0.001}, NotSignificant},
		{"fold change on the threshold", Gene{Log2FoldChange: 1, PValue: 0.001}, NotSignificant},
		{"negative fold change on the threshold", Gene{Log2FoldChange: -1, PValue: 0.001}, NotSignificant},
		{"p-value on the threshold", Gene{Log2FoldChange: 3, PValue: 0.01}, NotSignificant},
		{"missing p-value", Gene{Log2FoldChange: 3, PValue: math.NaN()}, NotSignificant},
		{"missing fold change", Gene{Log2FoldChange: math.NaN(), PValue: 0.001}, NotSignificant},
		{"null p-value", Gene{Log2FoldChange: -5, PValue: 0}, Down},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if want, got := test.expected, DefaultThresholds.Classify(test.gene); want != got {
				t.Errorf("expected %v but got %v", want, got)
			}
		})
	}
}

func TestSplit(t *testing.T) {

	up, down := Split(loadFixture(t), DefaultThresholds)
	if want, got := []string{"RGMB", "ZNF516"}, names(up); !reflect.DeepEqual(want, got) {
		t.Errorf("expected up regulated genes %v but got %v", want, got)
	}
	if want, got := []string{"TBX5", "IFITM1"}, names(down); !reflect.DeepEqual(want, got) {
		t.Errorf("expected down regulated genes %v but got %v", want, got)
	}

	up, down = Split(loadFixture(t), Thresholds{Log2FC: 0.5, PValue: 0.05})
	if want, got := []string{"DOK6", "SLC32A1", "RGMB", "ZNF516", "LIPH"}, names(up); !reflect.DeepEqual(want, got) {
		t.Errorf("expected up regulated genes %v but got %v", want, got)
	}
	if len(down) != 2 {
		t.Errorf("expected 2 down regulated genes, got %v", names(down))
	}
}

func TestThresholdsValidate(t *testing.T) {

	for _, th := range []Thresholds{{Log2FC: -1, PValue: 0.01}, {Log2FC: 1, PValue: 0}, {Log2FC: 1, PValue: 2}} {
		if err := th.Validate(); err == nil {
			t.Errorf("expected an error for %+v", th)
		}
	}
	if err := DefaultThresholds.Validate(); err != nil {
		t.Error(err)
	}
}

func TestWriteCSV(t *testing.T) {

	up, _ := Split(loadFixture(t), DefaultThresholds)

	var buf bytes.Buffer
	if err := WriteCSV(&buf, up); err != nil {
		t.Fatal(err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if want, got := []string{"Gene", "log2FoldChange", "pvalue", "padj", "neg_log10_pvalue"}, rows[0]; !reflect.DeepEqual(want, got) {
		t.Errorf("expected header %v but got %v", want, got)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 2 genes, got %d rows", len(rows))
	}
	if want, got := []string{"RGMB", "1.0809", "0.001", "0.01"}, rows[1][:4]; !reflect.DeepEqual(want, got) {
		t.Errorf("expected %v but got %v", want, got)
	}
	if want, got := []string{"ZNF516", "2.5", "0.005", ""}, rows[2][:4]; !reflect.DeepEqual(want, got) {
		t.Errorf("expected %v but got %v", want, got)
	}

	negLog10, err := strconv.ParseFloat(rows[1][4], 64)
	if err != nil {
		t.Fatal(err)
	}
	if !scalar.EqualWithinAbs(3, negLog10, 1e-9) {
		t.Errorf("expected -log10(0.001) = 3, got %v", negLog10)
	}
}

func TestVolcanoPlot(t *testing.T) {

	p, err := VolcanoPlot(loadFixture(t), DefaultThresholds, "Volcano")
	if err != nil {
		t.Fatal(err)
	}
	// NOVEL has no p-value and is not drawn
	if !scalar.EqualWithinAbs(-2.1297, p.X.Min, 1e-12) || !scalar.EqualWithinAbs(2.5, p.X.Max, 1e-12) {
		t.Errorf("wrong x range [%v, %v]", p.X.Min, p.X.Max)
	}
	if p.Y.Min != 0 {
		t.Errorf("expected the y axis to start at 0, got %v", p.Y.Min)
	}

	var buf bytes.Buffer
	if err := plotutil.Write(&buf, p, "svg", 6*vg.Inch, 4*vg.Inch); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("<?xml")) {
		t.Error("expected an svg document")
	}

	// the threshold lines are drawn even when every gene is within them
	p, err = VolcanoPlot([]Gene{{Name: "A", Log2FoldChange: 0.2, PValue: 0.5}}, DefaultThresholds, "")
	if err != nil {
		t.Fatal(err)
	}
	if p.X.Min != -1 || p.X.Max != 1 || !scalar.EqualWithinAbs(2, p.Y.Max, 1e-9) {
		t.Errorf("wrong range x [%v, %v] y max %v", p.X.Min, p.X.Max, p.Y.Max)
	}

	_, err = VolcanoPlot([]Gene{{Name: "A", Log2FoldChange: 1, PValue: math.NaN()}}, DefaultThresholds, "")
	if err == nil {
		t.Error("expected an error when no gene can be drawn")
	}
}
