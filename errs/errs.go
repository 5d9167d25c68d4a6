// Package errs collects the sentinel errors returned across the ca2
// module, so callers can distinguish failure kinds with errors.Is.
package errs

import "errors"

var (
	// CASpec validation and construction

	ErrStrengthTooLow     = errors.New("ca2: strength t must be >= 2")
	ErrTooFewColumns      = errors.New("ca2: column count must be >= strength")
	ErrZeroValueCount     = errors.New("ca2: a column value count (v_i) cannot be zero")
	ErrColumnTooWide      = errors.New("ca2: column value count exceeds what the Basic codec supports (> 255)")
	ErrUnsortedValues     = errors.New("ca2: vs must be sorted non-increasing")
	ErrNotAPermutation    = errors.New("ca2: declared value counts are not a permutation of the input columns")
	ErrColumnIntervalFull = errors.New("ca2: more distinct values seen in a column than its declared v_i allows")
	ErrNoMatchingColumn   = errors.New("ca2: no matching column available for greedy mapping")

	// CASpec serialization

	ErrTruncatedSpec    = errors.New("ca2: truncated CASpec, buffer ends inside the version/n/t prefix")
	ErrMissingTerminator = errors.New("ca2: CASpec is missing its terminator")
	ErrUnknownVersion   = errors.New("ca2: unknown CASpec version")

	// Codec

	ErrUnsupportedVersion  = errors.New("ca2: unsupported codec version")
	ErrBitWidthOverflow    = errors.New("ca2: bit width exceeds 8 bits for the Basic codec")
	ErrShortRead           = errors.New("ca2: short read while decoding a row")

	// ccmeta / cca file formats

	ErrNotACcmetaFile = errors.New("ca2: not a valid .ccmeta file (bad magic)")
	ErrInvalidCASpec  = errors.New("ca2: invalid CASpec in .ccmeta file")

	// Archive

	ErrNoIndexFound       = errors.New("ca2: no CA metadata found")
	ErrCorruptIndex       = errors.New("ca2: corrupted archive index")
	ErrChecksumMismatch   = errors.New("ca2: payload checksum mismatch")
	ErrOutputExists       = errors.New("ca2: refusing to overwrite an existing output file")
	ErrNoInputFiles       = errors.New("ca2: no valid input files")
	ErrMissingPair        = errors.New("ca2: .cca/.ccmeta pair is incomplete")

	// Selection

	ErrNoCompatibleCA = errors.New("ca2: no compatible CA found")

	// Parameter-model ingestion

	ErrUnrecognizedModel = errors.New("ca2: input file matches no supported parameter-model format")
)
