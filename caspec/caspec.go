// Package caspec defines CASpec, the descriptor of a single stored
// covering array, along with its serialization and compatibility
// predicate.
package caspec

import (
	"fmt"

	"github.com/mleithner/ca2/errs"
)

// MaxBasicColumnValues is the largest per-column value count the Basic
// (bit-packed) codec supports; larger columns need a fixed-width codec
// (Bzip2, Zstd, LZ4).
const MaxBasicColumnValues = 255

// CASpec is the descriptor of one stored covering array.
//
// Vs is sorted non-increasing and has length K() >= T; no entry is 0.
type CASpec struct {
	Version Version
	N       uint64
	T       uint8
	Vs      []uint16
}

// K returns the column count (len(Vs)).
func (s CASpec) K() int { return len(s.Vs) }

// Row is a decoded row: one uint16 value per stored column, in
// stored-column order (descending-v order).
type Row []uint16

// New validates and constructs a CASpec. Vs must already be sorted
// non-increasing (callers typically derive it from a caller-declared
// order and sort it themselves, since the original column order is
// needed elsewhere to build the column map).
func New(version Version, n uint64, t uint8, vs []uint16) (CASpec, error) {
	s := CASpec{Version: version, N: n, T: t, Vs: vs}
	if err := s.Validate(); err != nil {
		return CASpec{}, err
	}
	return s, nil
}

// Validate checks the structural invariants from the data model: t >= 2,
// k >= t, vs non-increasing, no zero entries, and (for the Basic codec)
// no column wider than MaxBasicColumnValues.
func (s CASpec) Validate() error {
	if s.T < 2 {
		return errs.ErrStrengthTooLow
	}
	if len(s.Vs) < int(s.T) {
		return errs.ErrTooFewColumns
	}
	for i, v := range s.Vs {
		if v == 0 {
			return fmt.Errorf("%w: column %d", errs.ErrZeroValueCount, i)
		}
		if i > 0 && s.Vs[i-1] < v {
			return errs.ErrUnsortedValues
		}
		if s.Version == Basic && v > MaxBasicColumnValues {
			return fmt.Errorf("%w: column %d has %d values", errs.ErrColumnTooWide, i, v)
		}
	}
	return nil
}

// IsCompatibleWith reports whether a stored CASpec can satisfy s acting
// as a request: stored.T >= s.T, stored has at least as many columns,
// and every one of s's (descending-sorted) value counts is dominated
// positionally by stored's.
func (s CASpec) IsCompatibleWith(stored CASpec) bool {
	if stored.T < s.T {
		return false
	}
	if stored.K() < s.K() {
		return false
	}
	for i := range s.Vs {
		if stored.Vs[i] < s.Vs[i] {
			return false
		}
	}
	return true
}

// RequestedCA is the descriptor derived from an input parameter model
// plus a caller-supplied strength.
type RequestedCA struct {
	// ParameterNames is the ordered sequence of column labels, in the
	// model's declared order (not sorted).
	ParameterNames []string
	// ParameterValues[i] is the value alphabet for requested column i, in
	// the model's declared order; its length equals ParameterSizes[i].
	ParameterValues [][]string
	// ParameterSizes is the per-column value count, in the model's
	// declared order.
	ParameterSizes []uint16
	// CASpec's Vs is ParameterSizes sorted descending, N=0, T as
	// requested.
	CASpec CASpec
}

// NewRequestedCA builds a RequestedCA from a parsed parameter model.
func NewRequestedCA(names []string, values [][]string, sizes []uint16, strength uint8) (RequestedCA, error) {
	if len(names) != len(values) || len(names) != len(sizes) {
		return RequestedCA{}, fmt.Errorf("ca2: parameter names/values/sizes length mismatch (%d/%d/%d)", len(names), len(values), len(sizes))
	}
	vs := make([]uint16, len(sizes))
	copy(vs, sizes)
	sortDescending(vs)

	spec, err := New(Unversioned, 0, strength, vs)
	if err != nil {
		return RequestedCA{}, err
	}
	// A requested spec's Version is a placeholder; it only carries
	// t/n/vs for the compatibility predicate and is never serialized.
	return RequestedCA{
		ParameterNames:  names,
		ParameterValues: values,
		ParameterSizes:  sizes,
		CASpec:          spec,
	}, nil
}

func sortDescending(vs []uint16) {
	for i := 1; i < len(vs); i++ {
		for j := i; j > 0 && vs[j-1] < vs[j]; j-- {
			vs[j-1], vs[j] = vs[j], vs[j-1]
		}
	}
}
