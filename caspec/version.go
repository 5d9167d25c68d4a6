package caspec

// Version selects both the payload codec and the integer-width
// interpretation used to decode a stored CA's rows.
type Version uint16

const (
	// Unversioned marks a CASpec that only describes a request (never
	// serialized, never matched against MaxBasicColumnValues).
	Unversioned Version = 0

	// Basic is the bit-packed codec: each column occupies
	// max(1, ceil(log2(v_j))) bits, MSB-first, in a 64-bit shift register.
	Basic Version = 1

	// Bzip2 stores each value as a fixed two-byte big-endian word inside a
	// bzip2-compressed stream.
	Bzip2 Version = 2

	// Zstd is the same fixed-width transport as Bzip2, wrapped in a zstd
	// stream instead. A supplemental codec, not present in the original
	// format but additive to it (see SPEC_FULL.md's Domain Stack section).
	Zstd Version = 3

	// LZ4 is the same fixed-width transport, wrapped in an LZ4 stream.
	LZ4 Version = 4
)

// Known reports whether v is a version this implementation can decode.
func (v Version) Known() bool {
	switch v {
	case Basic, Bzip2, Zstd, LZ4:
		return true
	default:
		return false
	}
}

// FixedWidth reports whether the codec for v transports values as
// uniform two-byte words (true for everything except Basic).
func (v Version) FixedWidth() bool {
	return v != Basic
}

func (v Version) String() string {
	switch v {
	case Basic:
		return "Basic"
	case Bzip2:
		return "Bzip2"
	case Zstd:
		return "Zstd"
	case LZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
