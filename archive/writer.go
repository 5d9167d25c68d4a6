package archive

import (
	"encoding/binary"
	"io"
	"sort"

	"github.com/cespare/xxhash/v2"
	"github.com/mleithner/ca2/caspec"
)

// Payload is one compressed CA ready to be packaged: its descriptor and
// its already-encoded bytes (as produced by codec.Encoder.Finish).
type Payload struct {
	Spec caspec.CASpec
	Data []byte
}

// Write assembles an archive into w: the optional prepend blob verbatim,
// then the payloads sorted by Spec.N ascending (stable on ties), then
// the trailing index. It mirrors original_source/src/bin/pca.rs::main,
// restructured as a library function so cmd/pca stays a thin CLI shell.
//
// Buffering is the caller's concern (spec.md §1 lists "buffered file I/O
// primitives" as out of scope); callers writing to a file should wrap it
// in a *bufio.Writer.
func Write(w io.Writer, prepend []byte, payloads []Payload) error {
	var offset uint64

	if len(prepend) > 0 {
		if _, err := w.Write(prepend); err != nil {
			return err
		}
		offset += uint64(len(prepend))
	}

	sorted := make([]Payload, len(payloads))
	copy(sorted, payloads)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Spec.N < sorted[j].Spec.N
	})

	offsets := make([]uint64, len(sorted))
	checksums := make([]uint64, len(sorted))
	for i, p := range sorted {
		offsets[i] = offset
		checksums[i] = xxhash.Sum64(p.Data)
		if _, err := w.Write(p.Data); err != nil {
			return err
		}
		offset += uint64(len(p.Data))
	}

	if _, err := w.Write([]byte{MagicPrefix}); err != nil {
		return err
	}
	if _, err := w.Write(MagicIndex); err != nil {
		return err
	}

	var hdr [offsetSize]byte
	var sum [checksumSize]byte
	for i, p := range sorted {
		binary.BigEndian.PutUint64(hdr[:], offsets[i])
		if _, err := w.Write(hdr[:]); err != nil {
			return err
		}
		if _, err := w.Write(p.Spec.Serialize()); err != nil {
			return err
		}
		binary.BigEndian.PutUint64(sum[:], checksums[i])
		if _, err := w.Write(sum[:]); err != nil {
			return err
		}
	}

	return nil
}
