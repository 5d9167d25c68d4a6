package caspec

import (
	"encoding/binary"

	"github.com/mleithner/ca2/errs"
)

// vsTerminator is the sentinel value ending a serialized vs list; 0 is
// reserved and never a legal column value count.
const vsTerminator = uint16(0)

// fixedPrefixSize is the byte length of the version+n+t prefix, before
// the variable-length vs list.
const fixedPrefixSize = 2 + 8 + 1

// Serialize encodes s into the big-endian CASpec layout:
//
//	offset 0:      2 bytes  version
//	offset 2:      8 bytes  n
//	offset 10:     1 byte   t
//	offset 11:     2*k bytes vs[0..k)
//	offset 11+2k:  2 bytes  terminator (0x0000)
func (s CASpec) Serialize() []byte {
	out := make([]byte, fixedPrefixSize+2*len(s.Vs)+2)
	binary.BigEndian.PutUint16(out[0:2], uint16(s.Version))
	binary.BigEndian.PutUint64(out[2:10], s.N)
	out[10] = s.T
	off := fixedPrefixSize
	for _, v := range s.Vs {
		binary.BigEndian.PutUint16(out[off:off+2], v)
		off += 2
	}
	binary.BigEndian.PutUint16(out[off:off+2], vsTerminator)
	return out
}

// Deserialize reads one CASpec from the front of buf.
//
// It returns the parsed spec and the number of bytes consumed. If the
// version field names a version this implementation doesn't know,
// Deserialize returns errs.ErrUnknownVersion, a soft failure: callers
// (notably the archive index reader) should skip this entry rather than
// treat the whole read as fatal. A truncated fixed prefix or a missing
// terminator before the buffer ends are fatal corruption, reported as
// errs.ErrTruncatedSpec / errs.ErrMissingTerminator.
func Deserialize(buf []byte) (CASpec, int, error) {
	if len(buf) < fixedPrefixSize {
		return CASpec{}, 0, errs.ErrTruncatedSpec
	}

	version := Version(binary.BigEndian.Uint16(buf[0:2]))
	n := binary.BigEndian.Uint64(buf[2:10])
	t := buf[10]

	// The vs list is parsed unconditionally, even for an unknown version:
	// its layout doesn't depend on the version tag, and callers scanning a
	// sequence of serialized specs (archive.ReadIndex) need the consumed
	// length to skip over an entry whose version they don't recognize.
	var vs []uint16
	i := fixedPrefixSize
	for {
		if i+2 > len(buf) {
			return CASpec{}, 0, errs.ErrMissingTerminator
		}
		v := binary.BigEndian.Uint16(buf[i : i+2])
		i += 2
		if v == vsTerminator {
			break
		}
		vs = append(vs, v)
	}

	if !version.Known() {
		return CASpec{}, i, errs.ErrUnknownVersion
	}

	return CASpec{Version: version, N: n, T: t, Vs: vs}, i, nil
}
