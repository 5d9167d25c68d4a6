// Package codec implements the two payload transports a stored CA can
// use: the Basic bit-packed shift register (caspec.Basic) and the
// fixed-width-then-general-compressor family (caspec.Bzip2/Zstd/LZ4).
//
// The row-level interface is uniform across both: an Encoder accepts
// rows one at a time and produces a finished byte payload; a RowDecoder
// produces a finite, non-restartable, lazy sequence of rows from a byte
// stream, mirroring mebo's blob.NumericEncoder/NumericDecoder shape.
package codec

import (
	"fmt"
	"io"

	"github.com/mleithner/ca2/caspec"
	"github.com/mleithner/ca2/errs"
)

// GeneralCompressor wraps a general-purpose compression algorithm used
// by the fixed-width codec family. It mirrors mebo's compress.Codec
// interface, generalized to stream semantics (write_all/read_exact, per
// spec.md §1) instead of whole-buffer semantics, since rows are written
// incrementally.
type GeneralCompressor interface {
	// NewWriter wraps w so that bytes written to the result are
	// compressed into w. Callers must Close the returned writer to flush
	// the final block.
	NewWriter(w io.Writer) io.WriteCloser
	// NewReader wraps r so that reads from the result are decompressed
	// from r.
	NewReader(r io.Reader) io.Reader
}

// Encoder accepts rows and produces a finished payload.
type Encoder interface {
	// WriteRow appends one row's values, in stored-column order.
	WriteRow(values []uint16) error
	// Finish flushes any buffered state and returns the complete payload.
	Finish() ([]byte, error)
}

// RowDecoder produces rows lazily from a payload.
type RowDecoder interface {
	// Next returns the next row, or ok=false once n rows have been
	// produced or a read error terminated the stream early (spec.md §4.9
	// "Failure semantics": no partial row is ever returned).
	Next() (row caspec.Row, ok bool)
	// Err returns the first error encountered, if any; a nil Err after
	// Next returns ok=false with fewer than n rows delivered means the
	// stream was simply exhausted cleanly.
	Err() error
}

// NewEncoder returns an Encoder for version, sized for columns with the
// given per-column value counts vs (stored-column order, descending).
func NewEncoder(version caspec.Version, vs []uint16) (Encoder, error) {
	switch version {
	case caspec.Basic:
		return newBasicEncoder(vs)
	case caspec.Bzip2:
		return newEntropyEncoder(bzip2Compressor{}, len(vs)), nil
	case caspec.Zstd:
		return newEntropyEncoder(zstdCompressor{}, len(vs)), nil
	case caspec.LZ4:
		return newEntropyEncoder(lz4Compressor{}, len(vs)), nil
	default:
		return nil, fmt.Errorf("codec: %w: %s", errs.ErrUnsupportedVersion, version)
	}
}

// NewRowDecoder returns a RowDecoder for version, reading from r.
func NewRowDecoder(version caspec.Version, r io.Reader, vs []uint16, n uint64) (RowDecoder, error) {
	switch version {
	case caspec.Basic:
		return newBasicDecoder(r, vs, n)
	case caspec.Bzip2:
		return newEntropyDecoder(bzip2Compressor{}, r, len(vs), n), nil
	case caspec.Zstd:
		return newEntropyDecoder(zstdCompressor{}, r, len(vs), n), nil
	case caspec.LZ4:
		return newEntropyDecoder(lz4Compressor{}, r, len(vs), n), nil
	default:
		return nil, fmt.Errorf("codec: %w: %s", errs.ErrUnsupportedVersion, version)
	}
}
