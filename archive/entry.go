package archive

import "github.com/mleithner/ca2/caspec"

// IndexEntry describes one payload stored in an archive.
type IndexEntry struct {
	// PayloadOffset is the byte offset of the payload within the archive
	// (relative to the start of the file, so it already accounts for any
	// prepended blob).
	PayloadOffset uint64
	// Spec is the stored CASpec.
	Spec caspec.CASpec
	// Checksum is xxhash.Sum64 of the payload bytes (SPEC_FULL.md §3).
	Checksum uint64
}
