// Package osfs is the boundary between pathfs nodes and the operating system.
//
// Production code uses [Local] which delegates to the os package.
// Tests use [Fake] which provides an in-memory tree with spy capabilities
// and error injection.
package osfs

import (
	"io/fs"
	"os"
	"syscall"
)

// OS is the set of fallible primitives the filesystem nodes are built on.
// Implementations report failures only through the returned error.
type OS interface {
	// Stat returns file info for name, following symlinks.
	Stat(name string) (fs.FileInfo, error)

	// Lstat returns file info for name without following a final symlink.
	Lstat(name string) (fs.FileInfo, error)

	// OpenDir opens a directory stream. The caller must Close it.
	OpenDir(name string) (DirStream, error)

	// MkdirAll creates a directory path and all parents that do not exist.
	MkdirAll(path string, perm fs.FileMode) error

	// Rename moves oldpath to newpath.
	Rename(oldpath, newpath string) error

	// Unlink removes a non-directory entry. It fails on a directory.
	Unlink(name string) error

	// Rmdir removes an empty directory. It fails on anything else.
	Rmdir(name string) error

	// Getwd returns the current working directory.
	Getwd() (string, error)
}

// DirStream enumerates the entry names of an open directory in OS order.
type DirStream interface {
	// ReadNames returns up to n names. With n > 0 it returns io.EOF once the
	// stream is exhausted; with n <= 0 it returns all remaining names.
	ReadNames(n int) ([]string, error)

	Close() error
}

// Local implements [OS] by delegating to the os package.
type Local struct{}

func (Local) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

func (Local) Lstat(name string) (fs.FileInfo, error) {
	return os.Lstat(name)
}

// OpenDir opens name and rejects anything that is not a directory, matching
// opendir(3) rather than os.Open.
func (Local) OpenDir(name string) (DirStream, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close() // nolint:errcheck
		return nil, err
	}
	if !info.IsDir() {
		f.Close() // nolint:errcheck
		return nil, &fs.PathError{Op: "opendir", Path: name, Err: syscall.ENOTDIR}
	}
	return localStream{f}, nil
}

func (Local) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (Local) Rename(oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}

// Unlink calls unlink(2) directly. os.Remove would fall back to rmdir and
// silently remove an empty directory.
func (Local) Unlink(name string) error {
	if err := syscall.Unlink(name); err != nil {
		return &fs.PathError{Op: "unlink", Path: name, Err: err}
	}
	return nil
}

func (Local) Rmdir(name string) error {
	if err := syscall.Rmdir(name); err != nil {
		return &fs.PathError{Op: "rmdir", Path: name, Err: err}
	}
	return nil
}

func (Local) Getwd() (string, error) {
	return os.Getwd()
}

type localStream struct {
	*os.File
}

func (s localStream) ReadNames(n int) ([]string, error) {
	return s.Readdirnames(n)
}

var _ OS = Local{}
