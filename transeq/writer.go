package transeq

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

const (
	// size of the buffer for writing to file
	maxBufferSize = 1024 * 1024 * 10
)

type writer struct {
	buf         *bytes.Buffer
	width       int
	trim        bool
	placeholder byte
}

func newWriter(width int, trim bool, placeholder byte) *writer {
	return &writer{
		buf:         bytes.NewBuffer(make([]byte, 0, 4096)),
		width:       width,
		trim:        trim,
		placeholder: placeholder,
	}
}

// suffixes to add to sequence id for each frame
const suffixes = "123456"

// sequence id should look like
//
//	>sequenceID_<frame> comment
func (w *writer) writeID(r *record, frameIndex int) {
	w.buf.Write(r.id)
	w.buf.WriteByte('_')
	w.buf.WriteByte(suffixes[frameIndex])
	w.buf.Write(r.comment)
	w.buf.WriteByte('\n')
}

// writeProtein writes the protein, w.width residues per line
func (w *writer) writeProtein(protein string) {

	if w.trim {
		protein = strings.TrimRight(protein, string(w.placeholder))
	}
	if w.width == 0 {
		if len(protein) > 0 {
			w.buf.WriteString(protein)
			w.buf.WriteByte('\n')
		}
		return
	}
	for len(protein) > w.width {
		w.buf.WriteString(protein[:w.width])
		w.buf.WriteByte('\n')
		protein = protein[w.width:]
	}
	if len(protein) > 0 {
		w.buf.WriteString(protein)
		w.buf.WriteByte('\n')
	}
}

// lockedWriter serializes the flushes of the workers
type lockedWriter struct {
	mu  sync.Mutex
	out io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.out.Write(p)
}

func (w *writer) flush(out io.Writer, cancel context.CancelFunc, errs chan<- error) {

	if w.buf.Len() == 0 {
		return
	}
	_, err := out.Write(w.buf.Bytes())
	if err != nil {
		select {
		case errs <- fmt.Errorf("fail to write to output file: %w", err):
		default:
		}
		cancel()
	}
	w.buf.Reset()
}
