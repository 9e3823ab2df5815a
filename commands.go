package main

import (
	"fmt"
	"io"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/feliixx/gotranslate/expression"
	"github.com/feliixx/gotranslate/impact"
	"github.com/feliixx/gotranslate/internal/plotutil"
	"github.com/feliixx/gotranslate/transeq"
	"github.com/feliixx/gotranslate/translate"
)

// translated when no sequence is given
const referenceSequence = "ATGGCCATTGTAATGGGCCGCTGAA"

type translateCommand struct {
	Table       int    `short:"t" long:"table" value-name:"<code>" description:"NCBI genetic code, see transeq --help for the available codes" default:"0"`
	Placeholder string `short:"p" long:"placeholder" value-name:"<char>" description:"Character written for codons absent from the genetic code" default:"?"`
	Strict      bool   `long:"strict" description:"Fail on unknown codons and on incomplete trailing codons instead of skipping them"`
	Args        struct {
		Sequences []string `positional-arg-name:"sequence"`
	} `positional-args:"yes"`

	env *env
}

func (c *translateCommand) Execute(args []string) error {

	if len(c.Placeholder) != 1 {
		return fmt.Errorf("wrong value for -p | --placeholder parameter: %q, expected a single character", c.Placeholder)
	}
	t, err := translate.New(translate.Options{
		Table:       c.Table,
		Placeholder: c.Placeholder[0],
	})
	if err != nil {
		return err
	}

	sequences := c.Args.Sequences
	if len(sequences) == 0 {
		sequences = []string{referenceSequence}
	}

	for _, sequence := range sequences {

		protein := ""
		if c.Strict {
			protein, err = t.TranslateStrict(sequence)
			if err != nil {
				return fmt.Errorf("sequence %s: %w", sequence, err)
			}
		} else {
			protein = t.Translate(sequence)
		}
		fmt.Fprintf(c.env.stdout, "DNA: %s\nProtein: %s\n", sequence, protein)
	}
	return nil
}

// Required struct to store required command line args
type Required struct {
	Sequence string `short:"s" long:"sequence" value-name:"<filename>" description:"Nucleotide sequence(s) filename, '-' for stdin"`
	Outseq   string `short:"o" long:"outseq" value-name:"<filename>" description:"Protein sequence filename, '-' for stdout"`
}

type transeqCommand struct {
	Required        `group:"required"`
	transeq.Options `group:"optional"`

	env *env
}

func (c *transeqCommand) Execute(args []string) error {

	if c.Sequence == "" {
		return fmt.Errorf("missing required parameter -s | -sequence, try %s transeq --help for details", toolName)
	}
	if c.Outseq == "" {
		return fmt.Errorf("missing required parameter -o | -outseq, try %s transeq --help for details", toolName)
	}

	var in io.Reader = os.Stdin
	if c.Sequence != "-" {
		f, err := os.Open(c.Sequence)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	if c.Outseq == "-" {
		return transeq.Translate(c.env.ctx, in, c.env.stdout, c.Options, c.env.logger())
	}

	out, err := os.Create(c.Outseq)
	if err != nil {
		return err
	}
	err = transeq.Translate(c.env.ctx, in, out, c.Options, c.env.logger())
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	return err
}

type impactCommand struct {
	SIFT     string  `long:"sift" value-name:"<file|url>" description:"SIFT table (Protein, Amino_acid, SIFT_score columns)" default:"https://raw.githubusercontent.com/HackBio-Internship/public_datasets/main/R/datasets/sift.tsv"`
	FoldX    string  `long:"foldx" value-name:"<file|url>" description:"FoldX table (Protein, Amino_acid, FoldX_score columns)" default:"https://raw.githubusercontent.com/HackBio-Internship/public_datasets/main/R/datasets/foldX.tsv"`
	SIFTMax  float64 `long:"sift-max" value-name:"<score>" description:"Mutations with a SIFT score below this value affect the protein function" default:"0.05"`
	FoldXMin float64 `long:"foldx-min" value-name:"<score>" description:"Mutations with a FoldX score above this value affect the protein structure" default:"2"`
	Chart    string  `long:"chart" value-name:"<filename>" description:"Write a bar chart of the wild type residues to this file"`
	Format   string  `long:"format" value-name:"<format>" description:"Chart format: png, svg or pdf" default:"png"`
	Width    float64 `long:"width" value-name:"<inch>" description:"Chart width" default:"10"`
	Height   float64 `long:"height" value-name:"<inch>" description:"Chart height" default:"5"`

	env *env
}

func (c *impactCommand) Execute(args []string) error {

	logger := c.env.logger()

	sift, err := impact.LoadFrom(c.env.ctx, c.SIFT, impact.SIFTColumn)
	if err != nil {
		return err
	}
	foldx, err := impact.LoadFrom(c.env.ctx, c.FoldX, impact.FoldXColumn)
	if err != nil {
		return err
	}

	merged := impact.Merge(sift, foldx)
	logger.Infof("%d SIFT records, %d FoldX records, %d in both tables", len(sift), len(foldx), len(merged))

	deleterious := impact.Deleterious(merged, impact.Thresholds{SIFT: c.SIFTMax, FoldX: c.FoldXMin})
	counts := impact.CountOriginal(deleterious)

	out := c.env.stdout
	fmt.Fprintln(out, "Protein\tAmino_acid\tSIFT_score\tFoldX_score")
	for _, m := range deleterious {
		fmt.Fprintf(out, "%s\t%s\t%g\t%g\n", m.Protein, m.Mutation, m.SIFT, m.FoldX)
	}

	fmt.Fprintln(out, "\nAmino_acid\tCount\tPercent")
	for _, rc := range counts {
		fmt.Fprintf(out, "%c\t%d\t%.2f%%\n", rc.Residue, rc.Count, rc.Percent)
	}

	s := impact.Summarize(deleterious)
	fmt.Fprintf(out, "\n%d deleterious mutation(s) in %d protein(s)\n", s.Count, countProteins(deleterious))
	fmt.Fprintf(out, "SIFT  mean %.4f sd %.4f min %.4f\n", s.MeanSIFT, s.StdDevSIFT, s.MinSIFT)
	fmt.Fprintf(out, "FoldX mean %.4f sd %.4f max %.4f\n", s.MeanFoldX, s.StdDevFoldX, s.MaxFoldX)

	if c.Chart == "" {
		return nil
	}
	if len(counts) == 0 {
		logger.Warnf("no deleterious mutation, %s not written", c.Chart)
		return nil
	}
	p, err := impact.BarChart(counts, "High-Impact Amino Acids (Structure & Function)")
	if err != nil {
		return err
	}
	return writeChart(c.Chart, p, c.Format, c.Width, c.Height)
}

type expressionCommand struct {
	Input  string  `short:"i" long:"input" value-name:"<file|url>" description:"Differential expression table (Gene, log2FoldChange, pvalue and padj columns), blank or comma separated" default:"https://gist.githubusercontent.com/stephenturner/806e31fce55a8b7175af/raw/1a507c4c3f9f1baaa3a69187223ff3d3050628d4/results.txt"`
	Log2FC float64 `long:"log2fc" value-name:"<value>" description:"Genes must change by more than this log2 fold change" default:"1"`
	PValue float64 `long:"pvalue" value-name:"<value>" description:"Genes must have a p-value below this value" default:"0.01"`
	Top    int     `long:"top" value-name:"<n>" description:"Number of up and down regulated genes printed" default:"5"`
	Up     string  `long:"up" value-name:"<filename>" description:"Write the up regulated genes to this csv file"`
	Down   string  `long:"down" value-name:"<filename>" description:"Write the down regulated genes to this csv file"`
	Plot   string  `long:"plot" value-name:"<filename>" description:"Write a volcano plot to this file"`
	Format string  `long:"format" value-name:"<format>" description:"Plot format: png, svg or pdf" default:"png"`
	Width  float64 `long:"width" value-name:"<inch>" description:"Plot width" default:"10"`
	Height float64 `long:"height" value-name:"<inch>" description:"Plot height" default:"6"`

	env *env
}

func (c *expressionCommand) Execute(args []string) error {

	thresholds := expression.Thresholds{Log2FC: c.Log2FC, PValue: c.PValue}
	if err := thresholds.Validate(); err != nil {
		return err
	}
	if c.Top < 0 {
		return fmt.Errorf("wrong value for --top parameter: %d, must be positive", c.Top)
	}

	logger := c.env.logger()

	genes, err := expression.LoadFrom(c.env.ctx, c.Input)
	if err != nil {
		return err
	}
	missing := expression.CountMissing(genes)
	if missing.Log2FoldChange > 0 || missing.PValue > 0 {
		logger.Warnf("%d gene(s) without log2FoldChange, %d without pvalue, they are never significant", missing.Log2FoldChange, missing.PValue)
	}

	up, down := expression.Split(genes, thresholds)

	out := c.env.stdout
	fmt.Fprintf(out, "%d gene(s): %d up regulated, %d down regulated\n", len(genes), len(up), len(down))
	fmt.Fprintf(out, "Missing values: log2FoldChange %d, pvalue %d, padj %d\n", missing.Log2FoldChange, missing.PValue, missing.PAdj)
	printGenes(out, "up", up, c.Top)
	printGenes(out, "down", down, c.Top)

	for _, f := range []struct {
		name  string
		genes []expression.Gene
	}{{c.Up, up}, {c.Down, down}} {
		if f.name == "" {
			continue
		}
		if err := writeGenes(f.name, f.genes); err != nil {
			return err
		}
		logger.Infof("%d gene(s) written to %s", len(f.genes), f.name)
	}

	if c.Plot == "" {
		return nil
	}
	p, err := expression.VolcanoPlot(genes, thresholds, "Volcano Plot")
	if err != nil {
		return err
	}
	return writeChart(c.Plot, p, c.Format, c.Width, c.Height)
}

func printGenes(out io.Writer, direction string, genes []expression.Gene, top int) {

	if len(genes) > top {
		genes = genes[:top]
	}
	fmt.Fprintf(out, "\nTop %d %s regulated gene(s)\n", len(genes), direction)
	fmt.Fprintln(out, "Gene\tlog2FoldChange\tpvalue\tpadj")
	for _, g := range genes {
		fmt.Fprintf(out, "%s\t%g\t%g\t%g\n", g.Name, g.Log2FoldChange, g.PValue, g.PAdj)
	}
}

func writeGenes(filename string, genes []expression.Gene) error {

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	err = expression.WriteCSV(f, genes)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	return err
}

// writeChart renders p to filename, width and height are in inches
func writeChart(filename string, p *plot.Plot, format string, width, height float64) error {

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	err = plotutil.Write(f, p, format, vg.Length(width)*vg.Inch, vg.Length(height)*vg.Inch)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	return err
}

func countProteins(mutations []impact.Mutation) int {
	proteins := map[string]bool{}
	for _, m := range mutations {
		proteins[m.Protein] = true
	}
	return len(proteins)
}
