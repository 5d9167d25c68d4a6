package intern

import "github.com/mleithner/ca2/errs"

// greedyMap builds, for each entry in targets (in order), the index of
// the leftmost not-yet-used entry in candidates for which match(
// candidates[j], targets[i]) holds. This is the single greedy algorithm
// behind both the compressor's column_map (input columns -> stored
// columns, exact-size match) and the extractor's reorder_map (stored
// columns -> requested columns, dominance match). notFound is returned
// verbatim when some target has no available match, so each caller can
// report the failure in its own vocabulary.
func greedyMap(targets, candidates []uint16, match func(candidate, target uint16) bool, notFound error) ([]int, error) {
	used := make([]bool, len(candidates))
	out := make([]int, 0, len(targets))
	for _, target := range targets {
		found := -1
		for j, candidate := range candidates {
			if used[j] {
				continue
			}
			if match(candidate, target) {
				found = j
				break
			}
		}
		if found < 0 {
			return nil, notFound
		}
		used[found] = true
		out = append(out, found)
	}
	return out, nil
}

// ColumnMap computes column_map such that reading input column
// columnMap[i] yields the value for stored (output) column i. vsOut must
// be a permutation of vsIn by multiset of values; ties are resolved by
// picking the leftmost unused input column with an exactly equal value
// count. Failure means vsOut isn't such a permutation.
func ColumnMap(vsIn, vsOut []uint16) ([]int, error) {
	return greedyMap(vsOut, vsIn, func(candidate, target uint16) bool {
		return candidate == target
	}, errs.ErrNotAPermutation)
}

// ReorderMap computes, for each requested column i (in model-declared
// order), the index of the stored column that supplies it: the leftmost
// not-yet-used stored column whose value count dominates (>=) the
// requested size. Guaranteed to succeed when the stored spec is
// compatible with the request (caspec.CASpec.IsCompatibleWith).
func ReorderMap(requestedSizes, storedVs []uint16) ([]int, error) {
	return greedyMap(requestedSizes, storedVs, func(candidate, target uint16) bool {
		return candidate >= target
	}, errs.ErrNoMatchingColumn)
}
