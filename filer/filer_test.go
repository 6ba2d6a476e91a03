package filer_test

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golift.io/turnstile/filer"
)

// Our interface must satify a filer.Filer.
var _ filer.Filer = (*MyFiler)(nil)

// Create a custom Filer that overrides only the Rename method.
type MyFiler struct {
	filer.File
}

func (f *MyFiler) Rename(oldpath, newpath string) error {
	fmt.Printf("Renamed %s -> %s\n", oldpath, newpath)

	return nil
}

func ExampleFile() {
	// Pass s into turnstile.Config.Filer.
	s := &MyFiler{}
	_ = s.Rename("old.file", "new.file")
	// Output:
	// Renamed old.file -> new.file
}

func TestReadDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"app.ACTIVE.log", "app.log.1", "app.log.2"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0o600))
	}

	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o750))

	infos, err := filer.Default().ReadDir(dir)
	require.NoError(t, err)

	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name())
	}

	sort.Strings(names)
	assert.Equal(t, []string{"app.ACTIVE.log", "app.log.1", "app.log.2", "sub"}, names)
}

func TestReadDirMissing(t *testing.T) {
	t.Parallel()

	infos, err := filer.Default().ReadDir(filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Nil(t, infos)
}

func TestStat(t *testing.T) {
	t.Parallel()

	name := filepath.Join(t.TempDir(), "app.ACTIVE.log")
	require.NoError(t, os.WriteFile(name, []byte("12345"), 0o600))

	info, err := filer.Default().Stat(name)
	require.NoError(t, err)
	assert.EqualValues(t, 5, info.Size())
	assert.Equal(t, "app.ACTIVE.log", info.Name())
}
