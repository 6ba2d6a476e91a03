package turnstile

import (
	"os"
	"time"
)

// RotationCondition decides if the active file must be rotated before a write.
// The set is closed; use NeverRotate, SizeThreshold or AgeThreshold.
// A file rotates when ANY configured condition is satisfied.
type RotationCondition interface {
	// rotationDue is handed the active file's metadata captured before the pending write.
	rotationDue(info os.FileInfo, now time.Time) bool
}

// PruneCondition selects rotated files for deletion after a rotation.
// The set is closed; use NeverPrune, MaxFileCount or MaxAge.
// A file is deleted when ANY configured condition selects it.
type PruneCondition interface {
	// pruneSelect is handed every rotated file, newest (highest index) first.
	pruneSelect(newestFirst []RotatedFile, now time.Time) []RotatedFile
}
