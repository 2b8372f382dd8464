package analysis

import (
	"sort"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/dhamidi/reflyze/accessor"
)

// DiffReports returns a unified diff of two rendered reports, or "" when
// they are equal.
func DiffReports(oldName, oldText, newName, newText string) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(oldText),
		B:        difflib.SplitLines(newText),
		FromFile: oldName,
		ToFile:   newName,
		Context:  1,
	})
}

// Delta is the change in accessor count for one call site.
type Delta struct {
	Key      accessor.Key
	Old, New int
}

// Deltas compares two reports key by key. Keys whose count did not change
// are left out. The result is sorted by key.
func Deltas(old, cur []accessor.Record) []Delta {
	counts := make(map[accessor.Key]*Delta)
	get := func(k accessor.Key) *Delta {
		d, ok := counts[k]
		if !ok {
			d = &Delta{Key: k}
			counts[k] = d
		}
		return d
	}
	for _, r := range old {
		get(r.Key).Old += r.Count()
	}
	for _, r := range cur {
		get(r.Key).New += r.Count()
	}

	var deltas []Delta
	for _, d := range counts {
		if d.Old != d.New {
			deltas = append(deltas, *d)
		}
	}
	sort.Slice(deltas, func(i, j int) bool {
		return deltas[i].Key.String() < deltas[j].Key.String()
	})
	return deltas
}
