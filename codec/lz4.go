package codec

import (
	"io"

	"github.com/pierrec/lz4/v4"
)

// lz4Compressor implements GeneralCompressor for the supplemental LZ4
// variant (SPEC_FULL.md §4.10): favors decode speed over ratio, grounded
// on the teacher's github.com/pierrec/lz4/v4 dependency.
type lz4Compressor struct{}

func (lz4Compressor) NewWriter(w io.Writer) io.WriteCloser {
	return lz4.NewWriter(w)
}

func (lz4Compressor) NewReader(r io.Reader) io.Reader {
	return lz4.NewReader(r)
}
