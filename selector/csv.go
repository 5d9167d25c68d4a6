package selector

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"
	"github.com/mleithner/ca2/caspec"
	"github.com/mleithner/ca2/codec"
	"github.com/mleithner/ca2/errs"
)

// OpenRowStream reads c's payload in full, verifies it against the
// index's stored checksum, constructs the appropriate codec.RowDecoder
// for its stored version, and wraps it in a RowStream projecting onto
// req. A checksum mismatch is fatal corruption: no decoder is built and
// errs.ErrChecksumMismatch is returned.
func OpenRowStream(c Candidate, req caspec.RequestedCA) (*RowStream, error) {
	data, err := c.Archive.PayloadBytes(c.Entry)
	if err != nil {
		return nil, err
	}
	if sum := xxhash.Sum64(data); sum != c.Entry.Checksum {
		return nil, fmt.Errorf("%w: got %x, want %x", errs.ErrChecksumMismatch, sum, c.Entry.Checksum)
	}

	dec, err := codec.NewRowDecoder(c.Entry.Spec.Version, bytes.NewReader(data), c.Entry.Spec.Vs, c.Entry.Spec.N)
	if err != nil {
		return nil, err
	}
	return NewRowStream(dec, c.Entry.Spec.Vs, req)
}

// WriteCSV drains rs into w as CSV, one line per row in requested
// parameter order. If header is true, the first line is req's parameter
// names.
func WriteCSV(w io.Writer, rs *RowStream, req caspec.RequestedCA, header bool) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if header {
		if err := cw.Write(req.ParameterNames); err != nil {
			return err
		}
	}

	for {
		row, ok := rs.Next()
		if !ok {
			break
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return rs.Err()
}
