// Package transeq translates every sequence of a fasta file to the
// corresponding protein sequences, in one or more reading frames.
package transeq

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"runtime"
	"sync"

	"github.com/feliixx/gotranslate/internal/logutil"
	"github.com/feliixx/gotranslate/translate"
)

const (
	mb = 1 << 20
	// longest line accepted in the fasta file
	maxSeqLength = 100 * mb
)

// Translate read a fasta file and translate each sequence to the corresponding prot sequence
// with the specified options. Warnings about the input are sent to logger, which may be nil
func Translate(ctx context.Context, inputSequence io.Reader, out io.Writer, options Options, logger *logutil.Logger) error {

	framesToGenerate, reverse, err := computeFrames(options.Frame)
	if err != nil {
		return err
	}

	translator, err := newTranslator(options)
	if err != nil {
		return err
	}

	numWorker := options.NumWorker
	if numWorker <= 0 {
		numWorker = runtime.NumCPU()
	}

	fnaSequences := make(chan *record, 10)
	errs := make(chan error, 1)

	workerCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	output := &lockedWriter{out: out}

	var wg sync.WaitGroup
	wg.Add(numWorker)

	for nWorker := 0; nWorker < numWorker; nWorker++ {

		go func() {

			defer wg.Done()

			w := newWriter(options.Width, options.Trim, translator.Placeholder())

			for sequence := range fnaSequences {

				// keep draining the channel so the reader never blocks
				if workerCtx.Err() != nil {
					putRecord(sequence)
					continue
				}

				w.translate(translator, sequence, framesToGenerate, reverse, options.Alternative)

				if w.buf.Len() > maxBufferSize {
					w.flush(output, cancel, errs)
				}
				putRecord(sequence)
			}
			if workerCtx.Err() == nil {
				w.flush(output, cancel, errs)
			}
		}()
	}
	readErr := readSequenceFromFasta(workerCtx, inputSequence, fnaSequences, logger)

	wg.Wait()

	select {
	case err := <-errs:
		return err
	default:
	}
	if readErr != nil {
		return readErr
	}
	return ctx.Err()
}

// translate writes the translation of r in each requested frame
func (w *writer) translate(t *translate.Translator, r *record, frames [nFrames]bool, reverse, alternative bool) {

	startPos := [3]int{0, 1, 2}
	w.translateFrames(t, r, frames[:3], startPos, 0)

	if !reverse {
		return
	}

	r.reverseComplement()

	if !alternative {
		// Staden convention: Frame -1 is the reverse-complement of the sequence
		// having the same codon phase as frame 1. Frame -2 is the same phase as
		// frame 2. Frame -3 is the same phase as frame 3
		switch len(r.seq) % 3 {
		case 0:
			startPos = [3]int{0, 2, 1}
		case 1:
			startPos = [3]int{1, 0, 2}
		case 2:
			startPos = [3]int{2, 1, 0}
		}
	}
	w.translateFrames(t, r, frames[3:], startPos, 3)
}

func (w *writer) translateFrames(t *translate.Translator, r *record, frames []bool, startPos [3]int, firstFrame int) {

	for i, start := range startPos {

		if !frames[i] {
			continue
		}
		w.writeID(r, firstFrame+i)

		if start < len(r.seq) {
			w.writeProtein(t.Translate(string(r.seq[start:])))
		}
	}
}

// fasta format is:
//
//	>sequenceID some comments on sequence
//	ACAGGCAGAGACACGACAGACGACGACACAGGAGCAGACAGCAGCAGACGACCACATATT
//	TTTGCGGTCACATGACGACTTCGGCAGCGA
//
// see https://blast.ncbi.nlm.nih.gov/Blast.cgi?CMD=Web&PAGE_TYPE=BlastDocs&DOC_TYPE=BlastHelp
// section 1 for details
func readSequenceFromFasta(ctx context.Context, inputSequence io.Reader, fnaSequences chan<- *record, logger *logutil.Logger) error {

	defer close(fnaSequences)

	feeder := newFastaChannelFeeder(fnaSequences, logger)

	scanner := bufio.NewScanner(inputSequence)
	scanner.Buffer(make([]byte, 0, 4096), maxSeqLength)

	inRecord := false
	skipped := 0

	for scanner.Scan() {

		line := bytes.TrimRight(scanner.Bytes(), "\r")
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			if inRecord && !feeder.sendFasta(ctx) {
				return nil
			}
			feeder.reset()
			feeder.setHeader(line)
			inRecord = true
			continue
		}
		if !inRecord {
			skipped++
			continue
		}
		// if the line doesn't start with '>', then it's a part of the
		// nucleotide sequence, so write it to the buffer
		feeder.sequenceBuffer.Write(line)
	}
	if skipped > 0 {
		logger.Warnf("%d line(s) before the first sequence header, ignoring", skipped)
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if inRecord {
		feeder.sendFasta(ctx)
	}
	return nil
}
