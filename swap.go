package turnstile

import "sort"

// rotatedFiles is used to satisfy a sort.Sort interface.
type rotatedFiles []RotatedFile

// Len is part of sort.Interface.
func (r rotatedFiles) Len() int {
	return len(r)
}

// Swap is part of sort.Interface.
func (r rotatedFiles) Swap(i, j int) {
	r[i], r[j] = r[j], r[i]
}

// Less is part of the sort.Sort interface.
// Lower indexes are older files, so this sorts oldest first.
func (r rotatedFiles) Less(i, j int) bool {
	return r[i].Index < r[j].Index
}

// Our rotatedFiles type must satify a sort.Interface.
var _ sort.Interface = (rotatedFiles)(nil)
