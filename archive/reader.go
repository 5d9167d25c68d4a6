package archive

import (
	"encoding/binary"
	"errors"
	"io"
	"os"

	"github.com/mleithner/ca2/caspec"
	"github.com/mleithner/ca2/errs"
)

// ReadIndex locates and parses the trailing index of an archive of the
// given size. Unknown-version entries are skipped (spec.md §4.4's "soft
// failure"); a truncated trailing record is fatal corruption (spec.md
// §4.6). Besides the entries it returns the offset of the index itself
// (its MagicPrefix byte), which is where the last payload ends.
func ReadIndex(ra io.ReaderAt, size int64) ([]IndexEntry, int64, error) {
	indexStart, err := FindIndexStart(ra, size)
	if err != nil {
		return nil, 0, err
	}

	buf := make([]byte, size-indexStart)
	if _, err := ra.ReadAt(buf, indexStart); err != nil && err != io.EOF {
		return nil, 0, err
	}

	var entries []IndexEntry
	i := 0
	for i < len(buf) {
		if i+offsetSize > len(buf) {
			return nil, 0, errs.ErrCorruptIndex
		}
		offset := binary.BigEndian.Uint64(buf[i : i+offsetSize])
		i += offsetSize

		spec, n, err := caspec.Deserialize(buf[i:])
		if err != nil && !errors.Is(err, errs.ErrUnknownVersion) {
			return nil, 0, errs.ErrCorruptIndex
		}
		skip := err != nil // unknown version: keep scanning, drop this entry
		i += n

		if i+checksumSize > len(buf) {
			return nil, 0, errs.ErrCorruptIndex
		}
		checksum := binary.BigEndian.Uint64(buf[i : i+checksumSize])
		i += checksumSize

		if skip {
			continue
		}
		entries = append(entries, IndexEntry{PayloadOffset: offset, Spec: spec, Checksum: checksum})
	}

	// indexStart points just past the magic; step back over it so callers
	// get the offset where the payloads end.
	return entries, indexStart - magicTotalLen, nil
}

// Archive is an opened, indexed .ca2 file.
type Archive struct {
	Path       string
	Entries    []IndexEntry
	IndexStart int64

	file *os.File
}

// Open opens path and parses its trailing index.
func Open(path string) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	entries, indexStart, err := ReadIndex(f, info.Size())
	if err != nil {
		f.Close()
		return nil, err
	}

	return &Archive{Path: path, Entries: entries, IndexStart: indexStart, file: f}, nil
}

// Close releases the underlying file handle.
func (a *Archive) Close() error { return a.file.Close() }

// payloadEnd returns the file offset immediately following entry's
// payload bytes: the next entry's PayloadOffset in file order, or
// IndexStart if entry holds the last payload.
func (a *Archive) payloadEnd(entry IndexEntry) int64 {
	end := a.IndexStart
	for _, e := range a.Entries {
		if e.PayloadOffset > entry.PayloadOffset && int64(e.PayloadOffset) < end {
			end = int64(e.PayloadOffset)
		}
	}
	return end
}

// PayloadSection returns a reader bounded to exactly the bytes of
// entry's payload.
func (a *Archive) PayloadSection(entry IndexEntry) *io.SectionReader {
	length := a.payloadEnd(entry) - int64(entry.PayloadOffset)
	return io.NewSectionReader(a.file, int64(entry.PayloadOffset), length)
}

// PayloadBytes reads entry's payload section in full, for checksum
// verification ahead of decoding (selector.OpenRowStream).
func (a *Archive) PayloadBytes(entry IndexEntry) ([]byte, error) {
	return io.ReadAll(a.PayloadSection(entry))
}
