package selector

import (
	"github.com/mleithner/ca2/caspec"
	"github.com/mleithner/ca2/codec"
	"github.com/mleithner/ca2/intern"
)

// RowStream decodes a selected CA's stored rows and projects each one
// onto a requested parameter model: reordering stored columns to
// requested-declaration order, then mapping each stored integer onto its
// parameter value by the modular-projection law (stored mod size).
type RowStream struct {
	dec     codec.RowDecoder
	reorder []int
	req     caspec.RequestedCA
	err     error
}

// NewRowStream builds a RowStream that reads rows from dec (a decoder
// over the selected CA's payload, per its stored Spec) and projects them
// onto req. storedVs is the selected
// CA's Spec.Vs (descending-sorted stored value counts).
func NewRowStream(dec codec.RowDecoder, storedVs []uint16, req caspec.RequestedCA) (*RowStream, error) {
	reorder, err := intern.ReorderMap(req.ParameterSizes, storedVs)
	if err != nil {
		return nil, err
	}
	return &RowStream{dec: dec, reorder: reorder, req: req}, nil
}

// Next returns the next projected row as parameter-value strings, in
// requested-declaration column order, or ok=false once the underlying
// decoder is exhausted (cleanly or due to an early read error — see
// Err).
func (rs *RowStream) Next() ([]string, bool) {
	stored, ok := rs.dec.Next()
	if !ok {
		return nil, false
	}

	out := make([]string, len(rs.reorder))
	for i, srcCol := range rs.reorder {
		storedValue := stored[srcCol]
		size := rs.req.ParameterSizes[i]
		idx := storedValue % size
		out[i] = rs.req.ParameterValues[i][idx]
	}
	return out, true
}

// Err returns the first decoding error encountered, if any.
func (rs *RowStream) Err() error {
	if rs.err != nil {
		return rs.err
	}
	return rs.dec.Err()
}
