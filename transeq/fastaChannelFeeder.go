package transeq

import (
	"bytes"
	"context"
	"unicode/utf8"

	"github.com/feliixx/gotranslate/internal/logutil"
)

// written in place of any non ASCII character
const nonNucleotide = 'X'

type fastaChannelFeeder struct {
	idBuffer       *bytes.Buffer
	commentBuffer  *bytes.Buffer
	sequenceBuffer *bytes.Buffer
	fastaChan      chan<- *record
	logger         *logutil.Logger
}

func newFastaChannelFeeder(fnaSequences chan<- *record, logger *logutil.Logger) *fastaChannelFeeder {
	return &fastaChannelFeeder{
		idBuffer:       bytes.NewBuffer(nil),
		commentBuffer:  bytes.NewBuffer(nil),
		sequenceBuffer: bytes.NewBuffer(nil),
		fastaChan:      fnaSequences,
		logger:         logger,
	}
}

func (f *fastaChannelFeeder) reset() {
	f.idBuffer.Reset()
	f.sequenceBuffer.Reset()
	f.commentBuffer.Reset()
}

// parse the header of the sequence. It is formatted like this:
//
//	>sequenceID comments
func (f *fastaChannelFeeder) setHeader(line []byte) {
	idEnd := bytes.IndexByte(line, ' ')
	if idEnd != -1 {
		f.idBuffer.Write(line[:idEnd])
		f.commentBuffer.Write(line[idEnd:])
	} else {
		f.idBuffer.Write(line)
	}
}

// sendFasta sends the buffered record to the workers. It returns
// false if ctx was cancelled before the record could be sent
func (f *fastaChannelFeeder) sendFasta(ctx context.Context) bool {

	r := getRecord()
	r.id = append(r.id, f.idBuffer.Bytes()...)
	r.comment = append(r.comment, f.commentBuffer.Bytes()...)

	invalid := 0
	var first rune
	seq := f.sequenceBuffer.Bytes()
	for len(seq) > 0 {

		// one byte per character, so that frames are counted in
		// characters even for non ASCII input
		c, size := utf8.DecodeRune(seq)
		seq = seq[size:]

		b := byte(c)
		if c >= utf8.RuneSelf {
			b = nonNucleotide
		} else if 'a' <= b && b <= 'z' {
			b -= 'a' - 'A'
		}
		switch b {
		case 'A', 'C', 'G', 'T', 'N':
		case 'U':
			b = 'T'
		default:
			if invalid == 0 {
				first = c
			}
			invalid++
		}
		r.seq = append(r.seq, b)
	}
	if invalid > 0 {
		f.logger.Warnf("%d invalid char(s) in sequence %s, first one is %q, translated as unknown codons", invalid, r.id[1:], first)
	}

	select {
	case f.fastaChan <- r:
		return true
	case <-ctx.Done():
		putRecord(r)
		return false
	}
}
