package turnstile

import (
	"sort"
	"time"
)

// NeverPrune never deletes a file.
type NeverPrune struct{}

// MaxFileCount keeps this many rotated files, the newest ones, and selects the rest.
// Zero selects every rotated file. A negative count selects nothing.
type MaxFileCount int

// MaxAge selects rotated files last modified longer ago than this duration.
// A negative age selects nothing.
type MaxAge time.Duration

func (NeverPrune) pruneSelect([]RotatedFile, time.Time) []RotatedFile {
	return nil
}

func (m MaxFileCount) pruneSelect(newestFirst []RotatedFile, _ time.Time) []RotatedFile {
	if m < 0 || len(newestFirst) <= int(m) {
		return nil
	}

	return newestFirst[m:]
}

func (m MaxAge) pruneSelect(newestFirst []RotatedFile, now time.Time) []RotatedFile {
	if m < 0 {
		return nil
	}

	var old []RotatedFile

	for _, file := range newestFirst {
		if now.Sub(file.ModTime) > time.Duration(m) {
			old = append(old, file)
		}
	}

	return old
}

// FilesToDelete returns the union of every rotated file selected by any condition.
// Each file appears once; the result is sorted by ascending index (oldest first).
// The input slice is not modified.
func FilesToDelete(rotated []RotatedFile, now time.Time, conditions ...PruneCondition) []RotatedFile {
	newestFirst := make(rotatedFiles, len(rotated))
	copy(newestFirst, rotated)
	sort.Sort(sort.Reverse(newestFirst))

	var (
		seen = make(map[uint]struct{})
		gone = rotatedFiles{}
	)

	for _, cond := range conditions {
		if cond == nil {
			continue
		}

		for _, file := range cond.pruneSelect(newestFirst, now) {
			if _, ok := seen[file.Index]; ok {
				continue // already selected by another condition.
			}

			seen[file.Index] = struct{}{}
			gone = append(gone, file)
		}
	}

	sort.Sort(gone)

	return gone
}

// Our conditions must satisfy the PruneCondition interface.
var (
	_ PruneCondition = NeverPrune{}
	_ PruneCondition = MaxFileCount(0)
	_ PruneCondition = MaxAge(0)
)
