package caspec

import (
	"fmt"

	"github.com/mleithner/ca2/errs"
)

// MagicCcmeta is the fixed prefix of a .ccmeta sidecar file, written by
// cmd/cca alongside its .cca payload and consumed by cmd/pca.
const MagicCcmeta = " CCA"

// SerializeCcmeta returns the full contents of a .ccmeta file describing
// s.
func SerializeCcmeta(s CASpec) []byte {
	return append([]byte(MagicCcmeta), s.Serialize()...)
}

// DeserializeCcmeta parses the contents of a .ccmeta file.
func DeserializeCcmeta(buf []byte) (CASpec, error) {
	if len(buf) < len(MagicCcmeta) || string(buf[:len(MagicCcmeta)]) != MagicCcmeta {
		return CASpec{}, errs.ErrNotACcmetaFile
	}
	s, _, err := Deserialize(buf[len(MagicCcmeta):])
	if err != nil {
		return CASpec{}, fmt.Errorf("%w: %v", errs.ErrInvalidCASpec, err)
	}
	return s, nil
}
