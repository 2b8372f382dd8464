package accessor

import (
	"slices"
	"strings"
)

// Report is a ranked, immutable sequence of records.
type Report struct {
	records []Record
}

// Compare orders records by count, highest first, then by formatted key in
// byte order. Distinct keys never compare equal.
func Compare(a, b Record) int {
	if a.Count() != b.Count() {
		if a.Count() > b.Count() {
			return -1
		}
		return 1
	}
	return strings.Compare(a.Key.String(), b.Key.String())
}

func Rank(records []Record) Report {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, Compare)
	return Report{records: sorted}
}

func (r Report) Len() int {
	return len(r.records)
}

// Records returns the ranked records. The slice is shared; callers must not
// modify it.
func (r Report) Records() []Record {
	return r.records
}
