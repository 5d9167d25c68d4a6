// Package intern provides per-column symbol interning and the greedy
// column-mapping algorithms shared by the compressor (input columns ->
// stored columns) and the extractor (stored columns -> requested
// columns).
package intern

import "github.com/mleithner/ca2/errs"

// Table assigns dense uint16 identifiers to strings in order of first
// occurrence, per column. Create one with NewTable; the zero value has no
// map and panics on the first new value.
type Table struct {
	ids  map[string]uint16
	next uint16
}

// NewTable returns an empty interning table.
func NewTable() *Table {
	return &Table{ids: make(map[string]uint16)}
}

// Intern returns the identifier for value, assigning the next integer in
// {0, 1, 2, ...} the first time value is seen.
func (t *Table) Intern(value string) uint16 {
	if id, ok := t.ids[value]; ok {
		return id
	}
	id := t.next
	t.ids[value] = id
	t.next++
	return id
}

// InternBounded is like Intern, but fails once value would be the
// (max+1)th distinct value seen in this column: a column's declared
// v_i is a hard cap on the number of symbols the compressor can assign
// it, and a CSV with more distinct values than declared cannot be
// represented.
func (t *Table) InternBounded(value string, max uint16) (uint16, error) {
	if id, ok := t.ids[value]; ok {
		return id, nil
	}
	if t.next >= max {
		return 0, errs.ErrColumnIntervalFull
	}
	id := t.next
	t.ids[value] = id
	t.next++
	return id, nil
}

// Len returns the number of distinct values interned so far.
func (t *Table) Len() int { return int(t.next) }
