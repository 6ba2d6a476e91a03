package turnstile

import (
	"os"
	"time"
)

// NeverRotate never triggers a rotation.
type NeverRotate struct{}

// SizeThreshold triggers a rotation when the active file is already larger
// than this many bytes. A write that lands exactly on the threshold does not
// rotate; the next write does. A negative threshold never rotates.
type SizeThreshold int64

// AgeThreshold triggers a rotation when the active file was last modified
// longer ago than this duration. A negative age never rotates.
type AgeThreshold time.Duration

func (NeverRotate) rotationDue(os.FileInfo, time.Time) bool {
	return false
}

func (s SizeThreshold) rotationDue(info os.FileInfo, _ time.Time) bool {
	return s >= 0 && info.Size() > int64(s)
}

func (a AgeThreshold) rotationDue(info os.FileInfo, now time.Time) bool {
	return a >= 0 && now.Sub(info.ModTime()) > time.Duration(a)
}

// ShouldRotate returns true if any condition is satisfied by the active
// file's metadata. Comparisons are strictly greater-than. Nil conditions are skipped.
func ShouldRotate(info os.FileInfo, now time.Time, conditions ...RotationCondition) bool {
	for _, cond := range conditions {
		if cond != nil && cond.rotationDue(info, now) {
			return true
		}
	}

	return false
}

// Our conditions must satisfy the RotationCondition interface.
var (
	_ RotationCondition = NeverRotate{}
	_ RotationCondition = SizeThreshold(0)
	_ RotationCondition = AgeThreshold(0)
)
