// Package archive implements the .ca2 container: an optional prepended
// blob, followed by concatenated payloads, followed by a trailing index
// discoverable by scanning from EOF (spec.md §4.5/§4.6).
package archive

// MagicPrefix is the one-byte sentinel that may start the index magic.
// It is deliberately a byte ('_') that can also appear inside payload
// bytes; scanners must tolerate and recover from that (spec.md §4.6).
const MagicPrefix byte = '_'

// MagicIndex is the 16-byte magic following MagicPrefix at the start of
// the index.
var MagicIndex = []byte("CCAA_INDEX_FILE\n")

// magicTotalLen is len(MagicIndex) + 1 (the prefix byte).
const magicTotalLen = 1 + 16

// checksumSize is the width of the per-entry integrity checksum
// (SPEC_FULL.md §3), an xxhash64 of the payload bytes.
const checksumSize = 8

// offsetSize is the width of the per-entry payload offset field.
const offsetSize = 8
