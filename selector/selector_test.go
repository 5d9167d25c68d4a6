package selector

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/mleithner/ca2/archive"
	"github.com/mleithner/ca2/caspec"
	"github.com/mleithner/ca2/codec"
	"github.com/mleithner/ca2/errs"
	"github.com/stretchr/testify/require"
)

func mustSpec(t *testing.T, version caspec.Version, n uint64, tt uint8, vs []uint16) caspec.CASpec {
	t.Helper()
	s, err := caspec.New(version, n, tt, vs)
	require.NoError(t, err)
	return s
}

func encodeRows(t *testing.T, version caspec.Version, vs []uint16, rows [][]uint16) []byte {
	t.Helper()
	enc, err := codec.NewEncoder(version, vs)
	require.NoError(t, err)
	for _, r := range rows {
		require.NoError(t, enc.WriteRow(r))
	}
	data, err := enc.Finish()
	require.NoError(t, err)
	return data
}

func openArchive(t *testing.T, payloads []archive.Payload) *archive.Archive {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, archive.Write(&buf, nil, payloads))

	f, err := os.CreateTemp(t.TempDir(), "ca2-*.ca2")
	require.NoError(t, err)
	_, err = f.Write(buf.Bytes())
	require.NoError(t, err)
	require.NoError(t, f.Close())

	a, err := archive.Open(f.Name())
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func TestSelectPicksSmallestCompatible(t *testing.T) {
	small := mustSpec(t, caspec.Basic, 6, 2, []uint16{3, 3})
	large := mustSpec(t, caspec.Basic, 20, 2, []uint16{3, 3})

	archives := []*archive.Archive{
		openArchive(t, []archive.Payload{
			{Spec: large, Data: encodeRows(t, caspec.Basic, large.Vs, [][]uint16{{0, 0}})},
			{Spec: small, Data: encodeRows(t, caspec.Basic, small.Vs, [][]uint16{{0, 0}})},
		}),
	}

	requested := mustSpec(t, caspec.Unversioned, 0, 2, []uint16{3, 3})
	c, err := Select(requested, Candidates(archives))
	require.NoError(t, err)
	require.Equal(t, uint64(6), c.Entry.Spec.N)
}

func TestSelectRejectsIncompatible(t *testing.T) {
	tooNarrow := mustSpec(t, caspec.Basic, 6, 2, []uint16{2, 2})
	archives := []*archive.Archive{
		openArchive(t, []archive.Payload{
			{Spec: tooNarrow, Data: encodeRows(t, caspec.Basic, tooNarrow.Vs, [][]uint16{{0, 0}})},
		}),
	}

	requested := mustSpec(t, caspec.Unversioned, 0, 2, []uint16{3, 3})
	_, err := Select(requested, Candidates(archives))
	require.Error(t, err)
}

func TestSelectStableTieBreakPicksFirstEncountered(t *testing.T) {
	s1 := mustSpec(t, caspec.Basic, 5, 2, []uint16{3, 3})
	s2 := mustSpec(t, caspec.Basic, 5, 2, []uint16{4, 4})

	a1 := openArchive(t, []archive.Payload{{Spec: s1, Data: encodeRows(t, caspec.Basic, s1.Vs, [][]uint16{{0, 0}})}})
	a2 := openArchive(t, []archive.Payload{{Spec: s2, Data: encodeRows(t, caspec.Basic, s2.Vs, [][]uint16{{0, 0}})}})

	requested := mustSpec(t, caspec.Unversioned, 0, 2, []uint16{3, 3})
	c, err := Select(requested, Candidates([]*archive.Archive{a1, a2}))
	require.NoError(t, err)
	require.Equal(t, s1.Vs, c.Entry.Spec.Vs)
}

func TestRowStreamProjectsScenario6(t *testing.T) {
	// spec.md §8 scenario 6's reorder: requestedSizes=[2,3] against
	// storedVs=[5,4,3] yields reorder map [0,1].
	stored := mustSpec(t, caspec.Basic, 1, 2, []uint16{5, 4, 3})
	a := openArchive(t, []archive.Payload{
		{Spec: stored, Data: encodeRows(t, caspec.Basic, stored.Vs, [][]uint16{{3, 1, 2}})},
	})

	req, err := caspec.NewRequestedCA(
		[]string{"A", "B"},
		[][]string{{"a0", "a1"}, {"b0", "b1", "b2"}},
		[]uint16{2, 3},
		2,
	)
	require.NoError(t, err)

	c, err := Select(req.CASpec, Candidates([]*archive.Archive{a}))
	require.NoError(t, err)

	rs, err := OpenRowStream(c, req)
	require.NoError(t, err)

	row, ok := rs.Next()
	require.True(t, ok)
	require.Equal(t, []string{"a1", "b1"}, row)

	_, ok = rs.Next()
	require.False(t, ok)
	require.NoError(t, rs.Err())
}

func TestWriteCSVIncludesHeader(t *testing.T) {
	stored := mustSpec(t, caspec.Basic, 2, 2, []uint16{2, 2})
	a := openArchive(t, []archive.Payload{
		{Spec: stored, Data: encodeRows(t, caspec.Basic, stored.Vs, [][]uint16{{0, 1}, {1, 0}})},
	})

	req, err := caspec.NewRequestedCA(
		[]string{"X", "Y"},
		[][]string{{"x0", "x1"}, {"y0", "y1"}},
		[]uint16{2, 2},
		2,
	)
	require.NoError(t, err)

	c, err := Select(req.CASpec, Candidates([]*archive.Archive{a}))
	require.NoError(t, err)

	rs, err := OpenRowStream(c, req)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rs, req, true))
	require.Equal(t, "X,Y\nx0,y1\nx1,y0\n", buf.String())
}

func TestOpenRowStreamRejectsCorruptedPayload(t *testing.T) {
	stored := mustSpec(t, caspec.Basic, 1, 2, []uint16{2, 2})
	payload := encodeRows(t, caspec.Basic, stored.Vs, [][]uint16{{0, 1}})

	var buf bytes.Buffer
	require.NoError(t, archive.Write(&buf, nil, []archive.Payload{{Spec: stored, Data: payload}}))
	raw := buf.Bytes()
	raw[0] ^= 0xFF // flip a byte inside the payload, leaving the index untouched

	f, err := os.CreateTemp(t.TempDir(), "ca2-*.ca2")
	require.NoError(t, err)
	_, err = f.Write(raw)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	a, err := archive.Open(f.Name())
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })

	req, err := caspec.NewRequestedCA([]string{"X", "Y"}, [][]string{{"x0", "x1"}, {"y0", "y1"}}, []uint16{2, 2}, 2)
	require.NoError(t, err)

	c, err := Select(req.CASpec, Candidates([]*archive.Archive{a}))
	require.NoError(t, err)

	_, err = OpenRowStream(c, req)
	require.True(t, errors.Is(err, errs.ErrChecksumMismatch))
}
