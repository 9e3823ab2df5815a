package transeq

import "sync"

// a fasta record ready to be translated
//
//	id      holds the sequence id, including the leading '>'
//	comment holds the rest of the header line, including the leading ' '
//	seq     holds the nucleotide sequence, uppercase, with 'U' replaced by 'T'
type record struct {
	id      []byte
	comment []byte
	seq     []byte
}

var pool = sync.Pool{
	New: func() interface{} {
		return &record{
			seq: make([]byte, 0, 512),
		}
	},
}

func getRecord() *record {
	r := pool.Get().(*record)
	r.id = r.id[:0]
	r.comment = r.comment[:0]
	r.seq = r.seq[:0]
	return r
}

func putRecord(r *record) {
	pool.Put(r)
}

// reverseComplement replaces the sequence by its reverse complement.
// Basically, switch
//
//	A <-> T
//	C <-> G
//
// and leave any other letter as it is
func (r *record) reverseComplement() {

	for i, n := range r.seq {
		switch n {
		case 'A':
			r.seq[i] = 'T'
		case 'T':
			r.seq[i] = 'A'
		case 'C':
			r.seq[i] = 'G'
		case 'G':
			r.seq[i] = 'C'
		}
	}
	for i, j := 0, len(r.seq)-1; i < j; i, j = i+1, j-1 {
		r.seq[i], r.seq[j] = r.seq[j], r.seq[i]
	}
}
