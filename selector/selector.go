// Package selector implements the extractor's core decision: given a
// requested covering array and a set of loaded archives, find the
// smallest compatible stored CA and stream its rows back projected onto
// the requested parameter model.
package selector

import (
	"github.com/mleithner/ca2/archive"
	"github.com/mleithner/ca2/caspec"
	"github.com/mleithner/ca2/errs"
)

// Candidate is one stored CA available for selection, tagged with the
// archive it came from so its payload can be opened later.
type Candidate struct {
	Archive *archive.Archive
	Entry   archive.IndexEntry
}

// Candidates collects every entry of every given archive into a flat
// candidate list, in archive order then entry order — the order Select
// uses to break ties between equally-sized compatible CAs.
func Candidates(archives []*archive.Archive) []Candidate {
	var out []Candidate
	for _, a := range archives {
		for _, e := range a.Entries {
			out = append(out, Candidate{Archive: a, Entry: e})
		}
	}
	return out
}

// Select finds the smallest-n candidate whose spec is compatible with
// requested, per caspec.CASpec.IsCompatibleWith. Ties are broken by
// first encounter in candidates, so callers control tie-break order by
// the order they load archives in.
func Select(requested caspec.CASpec, candidates []Candidate) (Candidate, error) {
	var best Candidate
	found := false
	for _, c := range candidates {
		if !requested.IsCompatibleWith(c.Entry.Spec) {
			continue
		}
		if !found || c.Entry.Spec.N < best.Entry.Spec.N {
			best = c
			found = true
		}
	}
	if !found {
		return Candidate{}, errs.ErrNoCompatibleCA
	}
	return best, nil
}
