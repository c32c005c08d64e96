package mocks

import (
	"io/fs"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/brettbedarf/pathfs/osfs"
)

// MockOS implements osfs.OS for testing across packages
type MockOS struct {
	mock.Mock
}

func (m *MockOS) Stat(name string) (fs.FileInfo, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(fs.FileInfo), args.Error(1)
}

func (m *MockOS) Lstat(name string) (fs.FileInfo, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(fs.FileInfo), args.Error(1)
}

func (m *MockOS) OpenDir(name string) (osfs.DirStream, error) {
	args := m.Called(name)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(osfs.DirStream), args.Error(1)
}

func (m *MockOS) MkdirAll(path string, perm fs.FileMode) error {
	args := m.Called(path, perm)
	return args.Error(0)
}

func (m *MockOS) Rename(oldpath, newpath string) error {
	args := m.Called(oldpath, newpath)
	return args.Error(0)
}

func (m *MockOS) Unlink(name string) error {
	args := m.Called(name)
	return args.Error(0)
}

func (m *MockOS) Rmdir(name string) error {
	args := m.Called(name)
	return args.Error(0)
}

func (m *MockOS) Getwd() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

var _ osfs.OS = (*MockOS)(nil)

// MockDirStream implements osfs.DirStream for testing across packages
type MockDirStream struct {
	mock.Mock
}

func (m *MockDirStream) ReadNames(n int) ([]string, error) {
	args := m.Called(n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockDirStream) Close() error {
	args := m.Called()
	return args.Error(0)
}

var _ osfs.DirStream = (*MockDirStream)(nil)

// FileInfo is a static fs.FileInfo for stubbing Stat and Lstat results
type FileInfo struct {
	FileName string
	FileMode fs.FileMode
	Modified time.Time
}

func (fi FileInfo) Name() string       { return fi.FileName }
func (fi FileInfo) Size() int64        { return 0 }
func (fi FileInfo) Mode() fs.FileMode  { return fi.FileMode }
func (fi FileInfo) ModTime() time.Time { return fi.Modified }
func (fi FileInfo) IsDir() bool        { return fi.FileMode.IsDir() }
func (fi FileInfo) Sys() any           { return nil }
