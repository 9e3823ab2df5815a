// Package ncbicode stores codon <-> AA
// translation tables.
//
// Relevant documentation:
//
//	https://www.ncbi.nlm.nih.gov/Taxonomy/Utils/wprintgc.cgi?chapter=tgencodes#SG1
package ncbicode

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Stop is the residue a stop codon maps to
const Stop = '*'

// IsStop reports whether aa is the stop marker
func IsStop(aa byte) bool {
	return aa == Stop
}

// Table is a read-only codon <-> AA mapping. Codons are
// 3 uppercase letters over {A, C, G, T}
type Table struct {
	id    int
	codon map[string]byte
}

// ID returns the NCBI id of the table
func (t *Table) ID() int {
	return t.id
}

// Lookup returns the residue encoded by codon. codon must
// already be uppercase
func (t *Table) Lookup(codon string) (aa byte, ok bool) {
	aa, ok = t.codon[codon]
	return aa, ok
}

// Len returns the number of codons in the table, always 64
func (t *Table) Len() int {
	return len(t.codon)
}

// Codons returns the codons of the table in lexical order
func (t *Table) Codons() []string {
	codons := make([]string, 0, len(t.codon))
	for c := range t.codon {
		codons = append(codons, c)
	}
	sort.Strings(codons)
	return codons
}

const (
	Standard                                                    = 0
	VertebrateMitochondrial                                     = 2
	YeastMitochondrial                                          = 3
	MoldProtozoanCoelenterateMitochondrialMycoplasmaSpiroplasma = 4
	InvertebrateMitochondrial                                   = 5
	CiliateDasycladaceanHexamita                                = 6
	EchinodermFlatwormMitochondrial                             = 9
	Euplotid                                                    = 10
	BacterialArchaealPlantPlastid                               = 11
	AlternativeYeast                                            = 12
	AscidianMitochondrial                                       = 13
	AlternativeFlatwormMitochondrial                            = 14
	ChlorophyceanMitochondrial                                  = 16
	TrematodeMitochondrial                                      = 21
	ScenedesmusObliquusMitochondrial                            = 22
	ThraustochytriumMitochondrial                               = 23
	PterobranchiaMitochondrial                                  = 24
	CandidateDivisionSR1Gracilibacteria                         = 25
	PachysolenTannophilus                                       = 26
	Mesodinium                                                  = 29
	Peritrich                                                   = 30
)

var (
	standard = map[string]byte{
		"TTT": 'F', "TTC": 'F', "TTA": 'L', "TTG": 'L',
		"TCT": 'S', "TCC": 'S', "TCA": 'S', "TCG": 'S',
		"TAT": 'Y', "TAC": 'Y', "TAA": Stop, "TAG": Stop,
		"TGT": 'C', "TGC": 'C', "TGA": Stop, "TGG": 'W',

		"CTT": 'L', "CTC": 'L', "CTA": 'L', "CTG": 'L',
		"CCT": 'P', "CCC": 'P', "CCA": 'P', "CCG": 'P',
		"CAT": 'H', "CAC": 'H', "CAA": 'Q', "CAG": 'Q',
		"CGT": 'R', "CGC": 'R', "CGA": 'R', "CGG": 'R',

		"ATT": 'I', "ATC": 'I', "ATA": 'I', "ATG": 'M',
		"ACT": 'T', "ACC": 'T', "ACA": 'T', "ACG": 'T',
		"AAT": 'N', "AAC": 'N', "AAA": 'K', "AAG": 'K',
		"AGT": 'S', "AGC": 'S', "AGA": 'R', "AGG": 'R',

		"GTT": 'V', "GTC": 'V', "GTA": 'V', "GTG": 'V',
		"GCT": 'A', "GCC": 'A', "GCA": 'A', "GCG": 'A',
		"GAT": 'D', "GAC": 'D', "GAA": 'E', "GAG": 'E',
		"GGT": 'G', "GGC": 'G', "GGA": 'G', "GGG": 'G',
	}

	// differences from the standard code, as published by
	// NCBI (RNA alphabet, 'U' is read as 'T')
	diffs = map[int]map[string]byte{
		VertebrateMitochondrial: {"AGA": Stop, "AGG": Stop, "AUA": 'M', "UGA": 'W'},
		YeastMitochondrial:      {"AUA": 'M', "CUU": 'T', "CUC": 'T', "CUA": 'T', "CUG": 'T', "UGA": 'W'},
		MoldProtozoanCoelenterateMitochondrialMycoplasmaSpiroplasma: {"UGA": 'W'},
		InvertebrateMitochondrial:                                   {"AGA": 'S', "AGG": 'S', "AUA": 'M', "UGA": 'W'},
		CiliateDasycladaceanHexamita:                                {"UAA": 'Q', "UAG": 'Q'},
		EchinodermFlatwormMitochondrial:                             {"AAA": 'N', "AGA": 'S', "AGG": 'S', "UGA": 'W'},
		Euplotid:                                                    {"UGA": 'C'},
		// only the start codons differ
		BacterialArchaealPlantPlastid:       {},
		AlternativeYeast:                    {"CUG": 'S'},
		AscidianMitochondrial:               {"AGA": 'G', "AGG": 'G', "AUA": 'M', "UGA": 'W'},
		AlternativeFlatwormMitochondrial:    {"AAA": 'N', "AGA": 'S', "AGG": 'S', "UAA": 'Y', "UGA": 'W'},
		ChlorophyceanMitochondrial:          {"UAG": 'L'},
		TrematodeMitochondrial:              {"UGA": 'W', "AUA": 'M', "AGA": 'S', "AGG": 'S', "AAA": 'N'},
		ScenedesmusObliquusMitochondrial:    {"UCA": Stop, "UAG": 'L'},
		ThraustochytriumMitochondrial:       {"UUA": Stop},
		PterobranchiaMitochondrial:          {"AGA": 'S', "AGG": 'K', "UGA": 'W'},
		CandidateDivisionSR1Gracilibacteria: {"UGA": 'G'},
		PachysolenTannophilus:               {"CUG": 'A'},
		Mesodinium:                          {"UAA": 'Y', "UAG": 'Y'},
		Peritrich:                           {"UAA": 'E', "UAG": 'E'},
	}

	standardTable = &Table{id: Standard, codon: standard}

	mu     sync.Mutex
	loaded = map[int]*Table{Standard: standardTable}
)

// StandardTable returns the standard genetic code
func StandardTable() *Table {
	return standardTable
}

// Load returns the table for the given NCBI code. 0 and 1
// both designate the standard code. Tables are built once
// and shared between callers
func Load(code int) (*Table, error) {

	if code == 1 {
		code = Standard
	}

	mu.Lock()
	defer mu.Unlock()

	if t, ok := loaded[code]; ok {
		return t, nil
	}

	tableDiff, ok := diffs[code]
	if !ok {
		return nil, fmt.Errorf("invalid table code: %v", code)
	}

	tableCodon := make(map[string]byte, len(standard))
	for codon, aaCode := range standard {
		tableCodon[codon] = aaCode
	}
	for codon, aaCode := range tableDiff {
		tableCodon[strings.ReplaceAll(codon, "U", "T")] = aaCode
	}

	t := &Table{id: code, codon: tableCodon}
	loaded[code] = t
	return t, nil
}
