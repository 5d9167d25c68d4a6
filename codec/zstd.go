package codec

import (
	"io"

	"github.com/klauspost/compress/zstd"
)

// zstdCompressor implements GeneralCompressor for the supplemental Zstd
// variant (SPEC_FULL.md §4.10), grounded on the teacher's own use of
// github.com/klauspost/compress for a pure-Go zstd codec.
type zstdCompressor struct{}

func (zstdCompressor) NewWriter(w io.Writer) io.WriteCloser {
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return errWriteCloser{err}
	}
	return enc
}

func (zstdCompressor) NewReader(r io.Reader) io.Reader {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return errReader{err}
	}
	return &zstdReader{dec}
}

// zstdReader adapts *zstd.Decoder (whose Close takes no error) to
// io.Reader; callers here only ever read it to EOF or abandon it, so
// there's no need to surface Close.
type zstdReader struct {
	dec *zstd.Decoder
}

func (z *zstdReader) Read(p []byte) (int, error) {
	return z.dec.Read(p)
}

// errWriteCloser/errReader turn a construction-time error into a runtime
// error on first use, so GeneralCompressor's NewWriter/NewReader can stay
// panic-free and error-return-free at the call site (matching the
// Encoder/RowDecoder interfaces, which already carry their own error
// paths).
type errWriteCloser struct{ err error }

func (e errWriteCloser) Write([]byte) (int, error) { return 0, e.err }
func (e errWriteCloser) Close() error              { return e.err }

type errReader struct{ err error }

func (e errReader) Read([]byte) (int, error) { return 0, e.err }
