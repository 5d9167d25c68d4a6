package archive

import (
	"bytes"
	"io"

	"github.com/mleithner/ca2/errs"
)

// initialScanWindow is the initial size of the trailing slice of the
// archive searched for the index magic; spec.md §4.6 leaves the buffer
// granularity as an implementation choice.
const initialScanWindow = 8 * 1024

// FindIndexStart locates the first byte of the index's first entry (the
// position right after the magic) in an archive of the given size.
//
// It scans the trailing window [size-capacity, size) for occurrences of
// MagicPrefix, verifying each against MagicIndex, expanding the window
// geometrically and retrying from the new (larger) trailing slice if no
// match is found — equivalent to original_source's backward
// window-by-window scan, but reading the candidate window in one slice
// per attempt rather than many small forward reads. Since MagicIndex is
// verified directly against the bytes already loaded for the *current*
// attempt's window, a magic string can never be split across scan
// windows: each retry reads a strictly larger contiguous suffix of the
// file, so the window-overlap requirement from spec.md §4.6 holds
// trivially.
func FindIndexStart(ra io.ReaderAt, size int64) (int64, error) {
	if size <= 0 {
		return 0, errs.ErrNoIndexFound
	}

	capacity := int64(initialScanWindow)
	for {
		start := size - capacity
		if start < 0 {
			start = 0
		}

		buf := make([]byte, size-start)
		if _, err := ra.ReadAt(buf, start); err != nil && err != io.EOF {
			return 0, err
		}

		if pos, ok := scanForMagic(buf); ok {
			return start + int64(pos), nil
		}

		if start == 0 {
			return 0, errs.ErrNoIndexFound
		}
		capacity *= 2
	}
}

// scanForMagic searches buf for MagicPrefix followed by MagicIndex,
// continuing past any mismatch (the prefix byte may legitimately occur
// inside payload bytes — spec.md §4.6's caveat). It returns the offset
// within buf of the byte right after the full magic.
func scanForMagic(buf []byte) (int, bool) {
	from := 0
	for {
		idx := bytes.IndexByte(buf[from:], MagicPrefix)
		if idx < 0 {
			return 0, false
		}
		candidate := from + idx
		magicStart := candidate + 1
		magicEnd := magicStart + len(MagicIndex)
		if magicEnd <= len(buf) && bytes.Equal(buf[magicStart:magicEnd], MagicIndex) {
			return magicEnd, true
		}
		from = candidate + 1
	}
}
