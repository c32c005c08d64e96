package osfs

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal_OpenDir(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o600))
	}

	stream, err := Local{}.OpenDir(dir)
	require.NoError(t, err)

	var names []string
	for {
		batch, err := stream.ReadNames(2)
		names = append(names, batch...)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
	}
	require.NoError(t, stream.Close())

	assert.ElementsMatch(t, []string{"a", "b", "c"}, names)
}

func TestLocal_OpenDir_NotADirectory(t *testing.T) {
	t.Parallel()
	file := filepath.Join(t.TempDir(), "f")
	require.NoError(t, os.WriteFile(file, nil, 0o600))

	stream, err := Local{}.OpenDir(file)

	assert.Nil(t, stream)
	assert.ErrorIs(t, err, syscall.ENOTDIR)
}

func TestLocal_Mutations(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	osys := Local{}

	nested := filepath.Join(root, "x", "y")
	require.NoError(t, osys.MkdirAll(nested, 0o755))
	info, err := osys.Stat(nested)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	moved := filepath.Join(root, "z")
	require.NoError(t, osys.Rename(nested, moved))
	_, err = osys.Lstat(nested)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, osys.Rmdir(moved))
	assert.ErrorIs(t, osys.Rmdir(moved), fs.ErrNotExist)

	cwd, err := osys.Getwd()
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(cwd))
}

func TestLocal_UnlinkRefusesDirectory(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	dir := filepath.Join(root, "empty")
	file := filepath.Join(root, "f")
	require.NoError(t, os.Mkdir(dir, 0o755))
	require.NoError(t, os.WriteFile(file, nil, 0o600))
	osys := Local{}

	err := osys.Unlink(dir)
	require.Error(t, err)
	var pathErr *fs.PathError
	require.ErrorAs(t, err, &pathErr)
	assert.Equal(t, "unlink", pathErr.Op)
	assert.DirExists(t, dir, "an empty directory must survive unlink")

	assert.ErrorIs(t, osys.Rmdir(file), syscall.ENOTDIR)
	assert.FileExists(t, file)

	require.NoError(t, osys.Unlink(file))
	assert.NoFileExists(t, file)
}
