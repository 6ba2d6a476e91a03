package turnstile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Some constants this package uses to name files.
// With a Filepath of service.log, the active file is service.ACTIVE.log
// and rotated files are service.log.1, service.log.2, etc.
const (
	ActiveMarker = ".ACTIVE" // inserted between the stem and the extension.
	LegacyMarker = "_ACTIVE" // recognized as a claim to be active, never created.
	Joiner       = "."       // joins the base name with an integer.
)

// RotatedFile is a file that was retired from active duty.
type RotatedFile struct {
	Path    string
	Index   uint
	ModTime time.Time
	Size    int64
}

// FileSet is the result of resolving a directory listing against a base path.
type FileSet struct {
	Active  string        // Full path to the file claiming to be active. Empty if none exists.
	Index   uint          // Highest rotated index found, 0 if there are no rotated files.
	Rotated []RotatedFile // Sorted by ascending index.
}

// ActiveName returns the file name (sans directory) of the active file for a base path.
func ActiveName(fileName string) string {
	stem, ext := splitBase(fileName)

	return stem + ActiveMarker + ext
}

// RotatedName returns the file name (sans directory) of rotated file number index.
func RotatedName(fileName string, index uint) string {
	return filepath.Base(fileName) + Joiner + strconv.FormatUint(uint64(index), 10)
}

// Resolve finds the active file and every rotated file for fileName in a
// directory listing. It does not touch the filesystem; pass it the output of
// filer.ReadDir for the directory fileName lives in. Directories are ignored.
// If more than one file claims to be active, ErrCorruptState is returned.
func Resolve(fileName string, listing []os.FileInfo) (*FileSet, error) {
	var (
		dir       = filepath.Dir(fileName)
		stem, ext = splitBase(fileName)
		prefix    = filepath.Base(fileName) + Joiner
		set       = &FileSet{Rotated: []RotatedFile{}}
		claims    []string
	)

	for _, info := range listing {
		if info.IsDir() {
			continue
		}

		name := info.Name()

		switch {
		case name == stem+ActiveMarker+ext, name == stem+LegacyMarker+ext:
			claims = append(claims, name)
		case strings.HasPrefix(name, prefix):
			idx, ok := parseIndex(strings.TrimPrefix(name, prefix))
			if !ok {
				continue // not our file.
			}

			set.Rotated = append(set.Rotated, RotatedFile{
				Path:    filepath.Join(dir, name),
				Index:   idx,
				ModTime: info.ModTime(),
				Size:    info.Size(),
			})

			if idx > set.Index {
				set.Index = idx
			}
		}
	}

	if len(claims) > 1 {
		sort.Strings(claims)
		return nil, fmt.Errorf("%w: %s in %s", ErrCorruptState, strings.Join(claims, ", "), dir)
	}

	if len(claims) == 1 {
		set.Active = filepath.Join(dir, claims[0])
	}

	sort.Sort(rotatedFiles(set.Rotated))

	return set, nil
}

// splitBase returns the stem and extension of a path's base name: service, .log.
func splitBase(fileName string) (string, string) {
	base := filepath.Base(fileName)
	ext := filepath.Ext(base)

	return strings.TrimSuffix(base, ext), ext
}

// parseIndex accepts only canonical positive decimals: 1, 2, 10; not 0, 01 or +1.
func parseIndex(part string) (uint, bool) {
	idx, err := strconv.ParseUint(part, 10, 0)
	if err != nil || idx == 0 || strconv.FormatUint(idx, 10) != part {
		return 0, false
	}

	return uint(idx), true
}
