package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brettbedarf/pathfs"
	"github.com/brettbedarf/pathfs/internal/mocks"
	"github.com/brettbedarf/pathfs/osfs"
)

func TestFile_Move(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	src := filepath.Join(root, "one.txt")
	dst := filepath.Join(root, "two.txt")
	require.NoError(t, os.WriteFile(src, []byte("data"), 0o600))

	f := newLocalFS(t, false).File(p(src))
	require.NoError(t, f.Move(p(dst)))

	assert.Equal(t, dst, f.Path().String())
	assert.NoFileExists(t, src)
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "data", string(data))
}

func TestFile_Move_Preconditions(t *testing.T) {
	t.Parallel()
	fsys, fake := newFakeFS(t)
	fake.AddFile("/a").AddFile("/b")

	err := fsys.File(p("/missing")).Move(p("/c"))
	assert.ErrorIs(t, err, pathfs.ErrNothingToMove)

	f := fsys.File(p("/a"))
	err = f.Move(p("/b"))
	var preErr *pathfs.PreconditionError
	require.ErrorAs(t, err, &preErr)
	assert.ErrorIs(t, err, pathfs.ErrDestinationExists)
	assert.Equal(t, "/b", preErr.Path)
	assert.Equal(t, "/a", f.Path().String())

	assert.Empty(t, fake.CallsTo(osfs.MethodRename), "no OS mutation may follow a failed precondition")
}

func TestFile_Move_MissingParent(t *testing.T) {
	t.Parallel()
	fsys, fake := newFakeFS(t)
	fake.AddFile("/a")
	f := fsys.File(p("/a"))

	err := f.Move(p("/no/such/dir/a"))

	var opErr *pathfs.OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, pathfs.OpRename, opErr.Op)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Equal(t, "/a", f.Path().String())
	assert.True(t, fake.Exists("/a"))
}

func TestFile_Delete(t *testing.T) {
	t.Parallel()

	t.Run("unlinks", func(t *testing.T) {
		t.Parallel()
		fsys, fake := newFakeFS(t)
		fake.AddFile("/d/f")

		require.NoError(t, fsys.File(p("/d/f")).Delete())

		assert.False(t, fake.Exists("/d/f"))
		assert.True(t, fake.Exists("/d"))
		assert.Equal(t, []string{"/d/f"}, fake.CallsTo(osfs.MethodUnlink))
	})

	t.Run("absent is noop", func(t *testing.T) {
		t.Parallel()
		fsys, fake := newFakeFS(t)

		require.NoError(t, fsys.File(p("/gone")).Delete())
		assert.Empty(t, fake.CallsTo(osfs.MethodUnlink, osfs.MethodRmdir))
	})

	t.Run("failure names unlink", func(t *testing.T) {
		t.Parallel()
		osys := &mocks.MockOS{}
		osys.On("Lstat", "/ro/f").Return(mocks.FileInfo{FileName: "f", FileMode: 0o444}, nil)
		osys.On("Unlink", "/ro/f").Return(&fs.PathError{Op: "unlink", Path: "/ro/f", Err: syscall.EPERM})

		err := New(nil, osys).File(p("/ro/f")).Delete()

		var opErr *pathfs.OperationError
		require.ErrorAs(t, err, &opErr)
		assert.Equal(t, pathfs.OpUnlink, opErr.Op)
		assert.Equal(t, []any{"/ro/f"}, opErr.Args)
		assert.ErrorIs(t, err, syscall.EPERM)
		osys.AssertExpectations(t)
	})

	t.Run("directory at file path survives", func(t *testing.T) {
		t.Parallel()
		fsys, fake := newFakeFS(t)
		fake.AddDir("/raced")

		err := fsys.File(p("/raced")).Delete()

		var opErr *pathfs.OperationError
		require.ErrorAs(t, err, &opErr)
		assert.Equal(t, pathfs.OpUnlink, opErr.Op)
		assert.ErrorIs(t, err, syscall.EISDIR)
		assert.True(t, fake.Exists("/raced"), "a directory must not be removed through a File")
		assert.Empty(t, fake.CallsTo(osfs.MethodRmdir))
	})

	t.Run("empty local directory survives", func(t *testing.T) {
		t.Parallel()
		dir := filepath.Join(t.TempDir(), "empty")
		require.NoError(t, os.Mkdir(dir, 0o755))

		err := newLocalFS(t, false).File(p(dir)).Delete()

		require.Error(t, err)
		assert.DirExists(t, dir)
	})

	t.Run("dangling symlink", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		link := filepath.Join(root, "dangling")
		require.NoError(t, os.Symlink(filepath.Join(root, "nowhere"), link))

		require.NoError(t, newLocalFS(t, false).File(p(link)).Delete())

		_, err := os.Lstat(link)
		assert.True(t, os.IsNotExist(err))
	})
}

func TestFile_ModifiedTime(t *testing.T) {
	t.Parallel()
	stamp := time.Date(2019, 12, 31, 23, 59, 59, 0, time.UTC)
	osys := &mocks.MockOS{}
	osys.On("Stat", "/f").Return(mocks.FileInfo{FileName: "f", Modified: stamp}, nil)

	got, err := New(nil, osys).File(p("/f")).ModifiedTime()

	require.NoError(t, err)
	assert.Equal(t, stamp.Unix(), got)
}

func TestFile_ModifiedTime_Missing(t *testing.T) {
	t.Parallel()
	fsys, _ := newFakeFS(t)

	_, err := fsys.File(p("/nope")).ModifiedTime()

	var opErr *pathfs.OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, pathfs.OpModTime, opErr.Op)
	assert.Contains(t, err.Error(), `mtime("/nope")`)
}
