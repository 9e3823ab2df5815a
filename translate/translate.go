// Package translate converts nucleotide sequences to protein
// sequences.
//
// A sequence is read 3 characters at a time starting at its first
// character. Translation stops at the first stop codon, a trailing
// codon shorter than 3 letters is dropped, and a codon absent
// from the genetic code (for example one containing 'N') is
// written as a placeholder.
package translate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/feliixx/gotranslate/ncbicode"
)

// DefaultPlaceholder is written for each codon absent from the
// genetic code
const DefaultPlaceholder = '?'

// ErrPartialCodon is returned in strict mode when the sequence
// ends with an incomplete codon
var ErrPartialCodon = errors.New("incomplete trailing codon")

// UnknownCodonError is returned in strict mode for the first codon
// that is not part of the genetic code
type UnknownCodonError struct {
	// Position is the 0-based offset of the codon in the sequence,
	// counted in characters
	Position int
	Codon    string
}

func (e *UnknownCodonError) Error() string {
	return fmt.Sprintf("unknown codon %q at position %d", e.Codon, e.Position)
}

// Options struct to store translation settings
type Options struct {
	// Table is the NCBI genetic code, 0 for the standard code
	Table int
	// Placeholder replaces unknown codons, 0 means '?'
	Placeholder byte
}

// Translator translates sequences with a fixed genetic code. It is
// safe for concurrent use
type Translator struct {
	table       *ncbicode.Table
	placeholder byte
}

var standard = &Translator{
	table:       ncbicode.StandardTable(),
	placeholder: DefaultPlaceholder,
}

// New returns a Translator for the given options
func New(options Options) (*Translator, error) {

	table, err := ncbicode.Load(options.Table)
	if err != nil {
		return nil, err
	}
	placeholder := options.Placeholder
	if placeholder == 0 {
		placeholder = DefaultPlaceholder
	}
	return &Translator{
		table:       table,
		placeholder: placeholder,
	}, nil
}

// Translate translates sequence with the standard genetic code.
// It never fails: unknown codons become '?' and a trailing
// incomplete codon is ignored
func Translate(sequence string) string {
	return standard.Translate(sequence)
}

// Normalize returns sequence in uppercase, the case used by the
// codon tables
func Normalize(sequence string) string {
	return strings.ToUpper(sequence)
}

// Placeholder returns the byte written for unknown codons
func (t *Translator) Placeholder() byte {
	return t.placeholder
}

// Translate translates sequence, see the package documentation for
// the rules applied
func (t *Translator) Translate(sequence string) string {
	protein, _ := t.scan(sequence, false)
	return protein
}

// TranslateStrict works like Translate but returns an error instead
// of writing a placeholder or dropping a trailing partial codon.
// The protein translated before the error is returned along with it
func (t *Translator) TranslateStrict(sequence string) (string, error) {
	return t.scan(sequence, true)
}

func (t *Translator) scan(sequence string, strict bool) (string, error) {

	// codons are 3 characters, not 3 bytes
	letters := []rune(Normalize(sequence))

	var protein strings.Builder
	protein.Grow(len(letters) / 3)

	pos := 0
	for ; pos+3 <= len(letters); pos += 3 {

		codon := string(letters[pos : pos+3])
		aa, ok := t.table.Lookup(codon)
		if !ok {
			if strict {
				return protein.String(), &UnknownCodonError{Position: pos, Codon: codon}
			}
			protein.WriteByte(t.placeholder)
			continue
		}
		if ncbicode.IsStop(aa) {
			return protein.String(), nil
		}
		protein.WriteByte(aa)
	}

	if strict && pos < len(letters) {
		return protein.String(), fmt.Errorf("%w: %d nucleotide(s) left at position %d", ErrPartialCodon, len(letters)-pos, pos)
	}
	return protein.String(), nil
}
