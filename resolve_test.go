package turnstile_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golift.io/turnstile"
	"golift.io/turnstile/mocks"
)

// fakeInfo returns a mock FileInfo that answers every question it may be asked.
func fakeInfo(mockCtrl *gomock.Controller, name string, dir bool, mod time.Time, size int64) os.FileInfo {
	fake := mocks.NewMockFileInfo(mockCtrl)
	fake.EXPECT().Name().Return(name).AnyTimes()
	fake.EXPECT().IsDir().Return(dir).AnyTimes()
	fake.EXPECT().ModTime().Return(mod).AnyTimes()
	fake.EXPECT().Size().Return(size).AnyTimes()

	return fake
}

func TestNames(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	assert.Equal("service.ACTIVE.log", turnstile.ActiveName("/var/log/service.log"))
	assert.Equal("service.log.12", turnstile.RotatedName("/var/log/service.log", 12))
	assert.Equal("app.ACTIVE", turnstile.ActiveName("app"))
	assert.Equal("app.1", turnstile.RotatedName("app", 1))
	assert.Equal("my.app.ACTIVE.txt", turnstile.ActiveName("logs/my.app.txt"))
}

func TestResolveEmpty(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	set, err := turnstile.Resolve(filepath.Join("/", "var", "log", "service.log"), nil)
	require.NoError(t, err)
	assert.Empty(set.Active, "no active file exists in an empty listing")
	assert.Zero(set.Index)
	assert.Empty(set.Rotated)
}

func TestResolve(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	var (
		now     = time.Now()
		dir     = filepath.Join("/", "var", "log")
		listing = []os.FileInfo{
			fakeInfo(mockCtrl, "service.log.2", false, now.Add(-time.Hour), 200),
			fakeInfo(mockCtrl, "service.ACTIVE.log", false, now, 10),
			fakeInfo(mockCtrl, "service.log.10", false, now.Add(-time.Minute), 1000),
			fakeInfo(mockCtrl, "service.log.3", false, now.Add(-30*time.Minute), 300),
			fakeInfo(mockCtrl, "service.log.11", true, now, 0),   // directory.
			fakeInfo(mockCtrl, "service.log.012", false, now, 0), // not canonical.
			fakeInfo(mockCtrl, "service.log.0", false, now, 0),   // zero is never an index.
			fakeInfo(mockCtrl, "service.log.gz", false, now, 0),
			fakeInfo(mockCtrl, "service.log", false, now, 0),
			fakeInfo(mockCtrl, "other.log.99", false, now, 0),
			fakeInfo(mockCtrl, "other.ACTIVE.log", false, now, 0),
		}
	)

	set, err := turnstile.Resolve(filepath.Join(dir, "service.log"), listing)
	require.NoError(t, err)
	assert.Equal(filepath.Join(dir, "service.ACTIVE.log"), set.Active)
	assert.EqualValues(10, set.Index, "the highest index must be found")
	require.Len(t, set.Rotated, 3)

	for i, idx := range []uint{2, 3, 10} {
		assert.Equal(idx, set.Rotated[i].Index, "rotated files must be sorted oldest first")
		assert.Equal(filepath.Join(dir, turnstile.RotatedName("service.log", idx)), set.Rotated[i].Path)
	}

	assert.EqualValues(1000, set.Rotated[2].Size)
	assert.Equal(now.Add(-time.Hour), set.Rotated[0].ModTime)
}

func TestResolveNoActive(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	set, err := turnstile.Resolve("service.log", []os.FileInfo{
		fakeInfo(mockCtrl, "service.log.1", false, time.Now(), 1),
		fakeInfo(mockCtrl, "service.ACTIVE.log", true, time.Now(), 0), // a directory is not a file.
	})
	require.NoError(t, err)
	assert.Empty(set.Active)
	assert.EqualValues(1, set.Index)
}

func TestResolveLegacyActive(t *testing.T) {
	t.Parallel()

	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	set, err := turnstile.Resolve(filepath.Join("logs", "service.log"), []os.FileInfo{
		fakeInfo(mockCtrl, "service_ACTIVE.log", false, time.Now(), 1),
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("logs", "service_ACTIVE.log"), set.Active)
}

func TestResolveCorrupt(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	set, err := turnstile.Resolve("service.log", []os.FileInfo{
		fakeInfo(mockCtrl, "service.ACTIVE.log", false, time.Now(), 1),
		fakeInfo(mockCtrl, "service.log.1", false, time.Now(), 1),
		fakeInfo(mockCtrl, "service_ACTIVE.log", false, time.Now(), 1),
	})
	assert.ErrorIs(err, turnstile.ErrCorruptState, "two active files must be reported, not guessed")
	assert.Contains(err.Error(), "service.ACTIVE.log, service_ACTIVE.log")
	assert.Nil(set)
}
