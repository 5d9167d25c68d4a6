package codec

import "math/bits"

// BitWidth returns max(1, ceil(log2(v))), the number of bits the Basic
// codec spends on a column with v distinct values.
func BitWidth(v uint16) uint8 {
	if v <= 1 {
		return 1
	}
	// ceil(log2(v)) == bit length of (v-1), for v > 1.
	w := bits.Len16(v - 1)
	if w < 1 {
		w = 1
	}
	return uint8(w)
}

// BitWidths computes BitWidth for every entry of vs.
func BitWidths(vs []uint16) []uint8 {
	out := make([]uint8, len(vs))
	for i, v := range vs {
		out[i] = BitWidth(v)
	}
	return out
}
