package codec

import (
	"bytes"
	"errors"
	"testing"

	"github.com/mleithner/ca2/caspec"
	"github.com/mleithner/ca2/errs"
	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, version caspec.Version, vs []uint16, rows [][]uint16) {
	t.Helper()

	enc, err := NewEncoder(version, vs)
	require.NoError(t, err)
	for _, row := range rows {
		require.NoError(t, enc.WriteRow(row))
	}
	payload, err := enc.Finish()
	require.NoError(t, err)

	if version == caspec.Basic {
		require.Zero(t, len(payload)%chunkBytes, "Basic payload must be a multiple of %d bytes", chunkBytes)
	}

	dec, err := NewRowDecoder(version, bytes.NewReader(payload), vs, uint64(len(rows)))
	require.NoError(t, err)

	for i, want := range rows {
		got, ok := dec.Next()
		require.True(t, ok, "row %d", i)
		require.Equal(t, caspec.Row(want), got)
	}
	_, ok := dec.Next()
	require.False(t, ok)
	require.NoError(t, dec.Err())
}

func scenario1Rows() [][]uint16 {
	// spec.md §8 scenario 1, already projected onto stored columns [3,2].
	return [][]uint16{{0, 0}, {1, 1}, {2, 0}, {0, 1}}
}

func TestBasicRoundTripScenario1(t *testing.T) {
	roundTrip(t, caspec.Basic, []uint16{3, 2}, scenario1Rows())
}

func TestBzip2RoundTripScenario1(t *testing.T) {
	roundTrip(t, caspec.Bzip2, []uint16{3, 2}, scenario1Rows())
}

func TestZstdRoundTripScenario1(t *testing.T) {
	roundTrip(t, caspec.Zstd, []uint16{3, 2}, scenario1Rows())
}

func TestLZ4RoundTripScenario1(t *testing.T) {
	roundTrip(t, caspec.LZ4, []uint16{3, 2}, scenario1Rows())
}

func TestBasicVsBzip2IdenticalDecodedOutput(t *testing.T) {
	// spec.md §8 concrete scenario 5.
	vs := []uint16{4, 4}
	rows := [][]uint16{{0, 1}, {2, 3}, {1, 1}}

	for _, version := range []caspec.Version{caspec.Basic, caspec.Bzip2} {
		version := version
		t.Run(version.String(), func(t *testing.T) {
			roundTrip(t, version, vs, rows)
		})
	}
}

func TestBasicRoundTripManyRows(t *testing.T) {
	vs := []uint16{256, 17, 9, 2}
	rows := make([][]uint16, 0, 100)
	for i := 0; i < 100; i++ {
		rows = append(rows, []uint16{
			uint16(i % 256),
			uint16(i % 17),
			uint16(i % 9),
			uint16(i % 2),
		})
	}
	roundTrip(t, caspec.Basic, vs, rows)
}

func TestBasicRoundTripEmpty(t *testing.T) {
	roundTrip(t, caspec.Basic, []uint16{3, 2}, nil)
}

func TestUnsupportedVersionRejected(t *testing.T) {
	_, err := NewEncoder(caspec.Version(99), []uint16{2, 2})
	require.Error(t, err)

	_, err = NewRowDecoder(caspec.Version(99), bytes.NewReader(nil), []uint16{2, 2}, 0)
	require.Error(t, err)
}

func TestBasicDecoderReportsShortRead(t *testing.T) {
	vs := []uint16{3, 2}
	enc, err := NewEncoder(caspec.Basic, vs)
	require.NoError(t, err)
	require.NoError(t, enc.WriteRow([]uint16{1, 1}))
	require.NoError(t, enc.WriteRow([]uint16{2, 0}))
	payload, err := enc.Finish()
	require.NoError(t, err)

	truncated := payload[:len(payload)-1] // chop a byte out of the last word
	dec, err := NewRowDecoder(caspec.Basic, bytes.NewReader(truncated), vs, 2)
	require.NoError(t, err)

	_, ok := dec.Next()
	for ok {
		_, ok = dec.Next()
	}
	require.True(t, errors.Is(dec.Err(), errs.ErrShortRead))
}

func TestBasicRejectsBitWidthOverflow(t *testing.T) {
	// 300 distinct values need 9 bits, beyond what the Basic codec's
	// shift register accounting supports for a single column.
	wide := []uint16{300, 2}

	_, err := NewEncoder(caspec.Basic, wide)
	require.Error(t, err)

	_, err = NewRowDecoder(caspec.Basic, bytes.NewReader(nil), wide, 0)
	require.Error(t, err)
}
