package codec

import (
	"compress/bzip2"
	"io"

	dbzip2 "github.com/dsnet/compress/bzip2"
)

// bzip2Compressor implements GeneralCompressor for spec.md §4.3's Bzip2
// variant. The standard library only ships a bzip2 *reader*, so writing
// uses github.com/dsnet/compress/bzip2 (the pack's only Go bzip2
// encoder, see other_examples/87d49f0b_dsnet-compress__bzip2-writer.go.go);
// reading uses the stdlib reader, which is already sufficient.
type bzip2Compressor struct{}

func (bzip2Compressor) NewWriter(w io.Writer) io.WriteCloser {
	return dbzip2.NewWriter(w)
}

func (bzip2Compressor) NewReader(r io.Reader) io.Reader {
	return bzip2.NewReader(r)
}
