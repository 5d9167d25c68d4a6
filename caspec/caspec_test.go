package caspec

import (
	"errors"
	"fmt"
	"testing"

	"github.com/mleithner/ca2/errs"
	"github.com/stretchr/testify/require"
)

func TestSerializeDeserializeIdempotent(t *testing.T) {
	cases := []CASpec{
		{Version: Basic, N: 0, T: 2, Vs: nil},
		{Version: Basic, N: 3, T: 2, Vs: []uint16{4, 4}},
		{Version: Bzip2, N: 12, T: 2, Vs: []uint16{3, 3, 2}},
		{Version: Zstd, N: 9, T: 3, Vs: []uint16{5, 4, 3, 2}},
	}

	for _, s := range cases {
		s := s
		t.Run(fmt.Sprintf("%s/n=%d", s.Version, s.N), func(t *testing.T) {
			buf := s.Serialize()
			got, n, err := Deserialize(buf)
			require.NoError(t, err)
			require.Equal(t, len(buf), n)
			require.Equal(t, s.Version, got.Version)
			require.Equal(t, s.N, got.N)
			require.Equal(t, s.T, got.T)
			require.Equal(t, s.Vs, got.Vs)
		})
	}
}

func TestDeserializeUnknownVersion(t *testing.T) {
	s := CASpec{Version: Basic, N: 1, T: 2, Vs: []uint16{2, 2}}
	buf := s.Serialize()
	buf[1] = 0x63 // corrupt version to something unknown

	_, n, err := Deserialize(buf)
	require.True(t, errors.Is(err, errs.ErrUnknownVersion))
	require.Equal(t, len(buf), n) // consumed length still reported, so callers can skip the entry
}

func TestDeserializeMissingTerminator(t *testing.T) {
	s := CASpec{Version: Basic, N: 1, T: 2, Vs: []uint16{2, 2}}
	buf := s.Serialize()
	buf = buf[:len(buf)-1] // drop the last terminator byte

	_, _, err := Deserialize(buf)
	require.True(t, errors.Is(err, errs.ErrMissingTerminator))
}

func TestDeserializeTruncatedPrefix(t *testing.T) {
	_, _, err := Deserialize([]byte{0, 1, 2, 3})
	require.True(t, errors.Is(err, errs.ErrTruncatedSpec))
}

func TestIsCompatibleWith(t *testing.T) {
	stored1 := CASpec{Version: Basic, N: 12, T: 2, Vs: []uint16{3, 3, 2}}
	stored2 := CASpec{Version: Basic, N: 9, T: 2, Vs: []uint16{3, 3, 3}}
	request, err := New(Unversioned, 0, 2, []uint16{3, 3})
	require.NoError(t, err)

	require.True(t, request.IsCompatibleWith(stored1))
	require.True(t, request.IsCompatibleWith(stored2))

	tooWeak, err := New(Unversioned, 0, 3, []uint16{3, 3, 2})
	require.NoError(t, err)
	require.False(t, tooWeak.IsCompatibleWith(stored1)) // stored1.T == 2 < 3

	tooNarrow, err := New(Unversioned, 0, 2, []uint16{4, 3})
	require.NoError(t, err)
	require.False(t, tooNarrow.IsCompatibleWith(stored1)) // stored1.Vs[0] == 3 < 4
}

func TestValidateRejectsBadSpecs(t *testing.T) {
	cases := []struct {
		name string
		t    uint8
		vs   []uint16
		want error
	}{
		{"strength too low", 1, []uint16{2, 2}, errs.ErrStrengthTooLow},
		{"too few columns", 3, []uint16{2, 2}, errs.ErrTooFewColumns},
		{"unsorted values", 2, []uint16{2, 3}, errs.ErrUnsortedValues},
		{"zero value count", 2, []uint16{2, 0}, errs.ErrZeroValueCount},
		{"column too wide", 2, []uint16{300, 2}, errs.ErrColumnTooWide},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			_, err := New(Basic, 0, c.t, c.vs)
			require.True(t, errors.Is(err, c.want))
		})
	}
}

func TestNewRequestedCASortsDescending(t *testing.T) {
	req, err := NewRequestedCA(
		[]string{"a", "x"},
		[][]string{{"0", "1"}, {"x", "y", "z"}},
		[]uint16{2, 3},
		2,
	)
	require.NoError(t, err)
	require.Equal(t, []uint16{3, 2}, req.CASpec.Vs)
	require.Equal(t, []uint16{2, 3}, req.ParameterSizes) // declared order untouched
}
