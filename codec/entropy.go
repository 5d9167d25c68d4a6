package codec

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/mleithner/ca2/caspec"
	"github.com/mleithner/ca2/errs"
)

// entropyEncoder implements the fixed-width-then-general-compressor
// family (spec.md §4.3, generalized in SPEC_FULL.md §4.10 to Zstd/LZ4 in
// addition to Bzip2): every interned value is written as a fixed
// two-byte big-endian word directly into the wrapped compressor's input
// stream.
type entropyEncoder struct {
	buf io.Writer // accumulates the raw (pre-compression) bytes
	w   io.WriteCloser
	k   int
}

func newEntropyEncoder(gc GeneralCompressor, k int) *entropyEncoder {
	pw := &byteSink{}
	return &entropyEncoder{buf: pw, w: gc.NewWriter(pw), k: k}
}

func (e *entropyEncoder) WriteRow(values []uint16) error {
	var word [2]byte
	for _, v := range values {
		binary.BigEndian.PutUint16(word[:], v)
		if _, err := e.w.Write(word[:]); err != nil {
			return err
		}
	}
	return nil
}

func (e *entropyEncoder) Finish() ([]byte, error) {
	if err := e.w.Close(); err != nil {
		return nil, err
	}
	return e.buf.(*byteSink).bytes, nil
}

// byteSink is an io.Writer that accumulates everything written to it; it
// stands in for a BufWriter over a file in the teacher's design, since
// here the payload is returned to the caller to place inside a .cca file
// or an archive rather than written directly.
type byteSink struct {
	bytes []byte
}

func (s *byteSink) Write(p []byte) (int, error) {
	s.bytes = append(s.bytes, p...)
	return len(p), nil
}

// entropyDecoder reads exactly 2*k bytes per row from the decompressed
// stream and interprets them as k big-endian uint16 values.
type entropyDecoder struct {
	r     io.Reader
	k     int
	total uint64
	done  uint64
	err   error
}

func newEntropyDecoder(gc GeneralCompressor, r io.Reader, k int, n uint64) *entropyDecoder {
	return &entropyDecoder{r: gc.NewReader(r), k: k, total: n}
}

func (d *entropyDecoder) Next() (caspec.Row, bool) {
	if d.done >= d.total || d.err != nil {
		return nil, false
	}
	buf := make([]byte, 2*d.k)
	if _, err := io.ReadFull(d.r, buf); err != nil {
		// XXX Hacky: fold the read error into clean termination rather than
		// surfacing it as a decode error, per spec.md §4.9's "Failure
		// semantics" (a premature I/O error just yields fewer than n rows).
		// Err() still reports it for callers that want to distinguish this.
		if err == io.ErrUnexpectedEOF {
			d.err = fmt.Errorf("%w: %v", errs.ErrShortRead, err)
		} else if err != io.EOF {
			d.err = err
		}
		d.total = 0
		return nil, false
	}
	row := make(caspec.Row, d.k)
	for i := range row {
		row[i] = binary.BigEndian.Uint16(buf[2*i : 2*i+2])
	}
	d.done++
	return row, true
}

func (d *entropyDecoder) Err() error { return d.err }
