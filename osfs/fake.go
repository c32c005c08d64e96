package osfs

import (
	"io"
	"io/fs"
	"os"
	"path"
	"slices"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/puzpuzpuz/xsync/v4"
)

// Method names recorded in [Call] and used as keys for [Fake.FailOn]
const (
	MethodStat      = "Stat"
	MethodLstat     = "Lstat"
	MethodOpenDir   = "OpenDir"
	MethodReadNames = "ReadNames"
	MethodClose     = "Close"
	MethodMkdirAll  = "MkdirAll"
	MethodRename    = "Rename"
	MethodUnlink    = "Unlink"
	MethodRmdir     = "Rmdir"
	MethodGetwd     = "Getwd"
)

// Fake is an in-memory [OS] for testing. It records all calls (spy) and
// simulates a directory tree (fake). Directory streams yield "." and ".."
// first and then children in creation order, so enumeration order is
// deterministic.
//
// Individual calls are safe for concurrent use; multi-entry operations such
// as Rename are not atomic with respect to each other.
type Fake struct {
	Cwd string           // returned by Getwd
	Now func() time.Time // clock for new entries

	entries *xsync.Map[string, *fakeEntry]
	errs    *xsync.Map[string, error]
	seq     atomic.Uint64

	callsMu sync.Mutex
	calls   []Call
}

// Call records a single method invocation on [Fake].
type Call struct {
	Method string
	Path   string
}

type fakeEntry struct {
	dir     bool
	seq     uint64
	modTime time.Time
}

// NewFake returns a ready-to-use [Fake] containing only the root directory.
func NewFake() *Fake {
	f := &Fake{
		Cwd:     "/",
		Now:     time.Now,
		entries: xsync.NewMap[string, *fakeEntry](),
		errs:    xsync.NewMap[string, error](),
	}
	f.entries.Store("/", &fakeEntry{dir: true, modTime: f.Now()})
	return f
}

// AddDir creates the directory and any missing parents. It is not recorded.
func (f *Fake) AddDir(name string) *Fake {
	f.mkdirAll(clean(name)) // nolint:errcheck
	return f
}

// AddFile creates a file and any missing parent directories. It is not recorded.
func (f *Fake) AddFile(name string) *Fake {
	name = clean(name)
	f.mkdirAll(path.Dir(name)) // nolint:errcheck
	f.store(name, false)
	return f
}

// SetModTime overrides the modification time of an existing entry.
func (f *Fake) SetModTime(name string, t time.Time) {
	if e, ok := f.entries.Load(clean(name)); ok {
		f.entries.Store(clean(name), &fakeEntry{dir: e.dir, seq: e.seq, modTime: t})
	}
}

// FailOn injects err for every call of method on name. It is checked before
// any simulated behavior.
func (f *Fake) FailOn(method, name string, err error) *Fake {
	f.errs.Store(method+":"+clean(name), err)
	return f
}

// Exists reports whether name is present in the tree. It is not recorded.
func (f *Fake) Exists(name string) bool {
	_, ok := f.entries.Load(clean(name))
	return ok
}

// Calls returns a copy of the spy log.
func (f *Fake) Calls() []Call {
	f.callsMu.Lock()
	defer f.callsMu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallsTo returns the paths passed to any of methods, in call order.
func (f *Fake) CallsTo(methods ...string) []string {
	var out []string
	for _, c := range f.Calls() {
		if slices.Contains(methods, c.Method) {
			out = append(out, c.Path)
		}
	}
	return out
}

func (f *Fake) Stat(name string) (fs.FileInfo, error) {
	return f.stat(MethodStat, "stat", name)
}

// Lstat is identical to Stat; the fake has no symlinks.
func (f *Fake) Lstat(name string) (fs.FileInfo, error) {
	return f.stat(MethodLstat, "lstat", name)
}

func (f *Fake) stat(method, op, name string) (fs.FileInfo, error) {
	if err := f.record(method, name); err != nil {
		return nil, err
	}
	name = clean(name)
	e, ok := f.entries.Load(name)
	if !ok {
		return nil, &fs.PathError{Op: op, Path: name, Err: fs.ErrNotExist}
	}
	return fakeFileInfo{name: path.Base(name), entry: e}, nil
}

func (f *Fake) OpenDir(name string) (DirStream, error) {
	if err := f.record(MethodOpenDir, name); err != nil {
		return nil, err
	}
	name = clean(name)
	e, ok := f.entries.Load(name)
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	if !e.dir {
		return nil, &fs.PathError{Op: "opendir", Path: name, Err: syscall.ENOTDIR}
	}
	return &fakeStream{fake: f, path: name, names: append([]string{".", ".."}, f.children(name)...)}, nil
}

func (f *Fake) MkdirAll(name string, _ fs.FileMode) error {
	if err := f.record(MethodMkdirAll, name); err != nil {
		return err
	}
	return f.mkdirAll(clean(name))
}

func (f *Fake) Rename(oldpath, newpath string) error {
	if err := f.record(MethodRename, oldpath); err != nil {
		return err
	}
	oldpath, newpath = clean(oldpath), clean(newpath)
	linkErr := func(err error) error {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: err}
	}

	src, ok := f.entries.Load(oldpath)
	if !ok {
		return linkErr(fs.ErrNotExist)
	}
	if parent, ok := f.entries.Load(path.Dir(newpath)); !ok || !parent.dir {
		return linkErr(fs.ErrNotExist)
	}
	if src.dir && strings.HasPrefix(newpath+"/", oldpath+"/") {
		return linkErr(syscall.EINVAL)
	}
	if dst, ok := f.entries.Load(newpath); ok && (dst.dir || src.dir) {
		return linkErr(syscall.EEXIST)
	}

	// Move the entry and every descendant, keeping their creation order
	prefix := oldpath + "/"
	moved := make(map[string]*fakeEntry)
	f.entries.Range(func(key string, e *fakeEntry) bool {
		if key == oldpath || strings.HasPrefix(key, prefix) {
			moved[key] = e
		}
		return true
	})
	for key, e := range moved {
		f.entries.Delete(key)
		f.entries.Store(newpath+strings.TrimPrefix(key, oldpath), e)
	}
	return nil
}

func (f *Fake) Unlink(name string) error {
	if err := f.record(MethodUnlink, name); err != nil {
		return err
	}
	name = clean(name)
	e, ok := f.entries.Load(name)
	if !ok {
		return &fs.PathError{Op: "unlink", Path: name, Err: fs.ErrNotExist}
	}
	if e.dir {
		return &fs.PathError{Op: "unlink", Path: name, Err: syscall.EISDIR}
	}
	f.entries.Delete(name)
	return nil
}

func (f *Fake) Rmdir(name string) error {
	if err := f.record(MethodRmdir, name); err != nil {
		return err
	}
	name = clean(name)
	e, ok := f.entries.Load(name)
	if !ok {
		return &fs.PathError{Op: "rmdir", Path: name, Err: fs.ErrNotExist}
	}
	if !e.dir {
		return &fs.PathError{Op: "rmdir", Path: name, Err: syscall.ENOTDIR}
	}
	if len(f.children(name)) > 0 {
		return &fs.PathError{Op: "rmdir", Path: name, Err: syscall.ENOTEMPTY}
	}
	f.entries.Delete(name)
	return nil
}

func (f *Fake) Getwd() (string, error) {
	if err := f.record(MethodGetwd, ""); err != nil {
		return "", err
	}
	return f.Cwd, nil
}

// record appends to the spy log and returns any injected error
func (f *Fake) record(method, name string) error {
	f.callsMu.Lock()
	f.calls = append(f.calls, Call{Method: method, Path: name})
	f.callsMu.Unlock()

	if err, ok := f.errs.Load(method + ":" + clean(name)); ok {
		return err
	}
	return nil
}

func (f *Fake) mkdirAll(name string) error {
	// Walk from the root so parents are created before children
	var missing []string
	for p := name; ; p = path.Dir(p) {
		if e, ok := f.entries.Load(p); ok {
			if !e.dir {
				return &fs.PathError{Op: "mkdir", Path: p, Err: syscall.ENOTDIR}
			}
			break
		}
		missing = append(missing, p)
	}
	for i := len(missing) - 1; i >= 0; i-- {
		f.store(missing[i], true)
	}
	return nil
}

func (f *Fake) store(name string, dir bool) {
	f.entries.Store(name, &fakeEntry{dir: dir, seq: f.seq.Add(1), modTime: f.Now()})
}

// children returns the direct child names of dir in creation order
func (f *Fake) children(dir string) []string {
	type child struct {
		name string
		seq  uint64
	}
	var found []child
	f.entries.Range(func(key string, e *fakeEntry) bool {
		if key != dir && path.Dir(key) == dir {
			found = append(found, child{name: path.Base(key), seq: e.seq})
		}
		return true
	})
	sort.Slice(found, func(i, j int) bool { return found[i].seq < found[j].seq })

	names := make([]string, len(found))
	for i, c := range found {
		names[i] = c.name
	}
	return names
}

func clean(name string) string {
	if name == "" {
		return ""
	}
	if !path.IsAbs(name) {
		name = "/" + name
	}
	return path.Clean(name)
}

// --- fake DirStream ---

type fakeStream struct {
	fake   *Fake
	path   string
	names  []string
	closed bool
}

func (s *fakeStream) ReadNames(n int) ([]string, error) {
	if err := s.fake.record(MethodReadNames, s.path); err != nil {
		return nil, err
	}
	if s.closed {
		return nil, &fs.PathError{Op: "readdirent", Path: s.path, Err: fs.ErrClosed}
	}
	if n <= 0 {
		out := s.names
		s.names = nil
		return out, nil
	}
	if len(s.names) == 0 {
		return nil, io.EOF
	}
	n = min(n, len(s.names))
	out := s.names[:n]
	s.names = s.names[n:]
	return out, nil
}

func (s *fakeStream) Close() error {
	if err := s.fake.record(MethodClose, s.path); err != nil {
		return err
	}
	if s.closed {
		return &fs.PathError{Op: "close", Path: s.path, Err: fs.ErrClosed}
	}
	s.closed = true
	return nil
}

// --- fake fs.FileInfo ---

type fakeFileInfo struct {
	name  string
	entry *fakeEntry
}

func (fi fakeFileInfo) Name() string { return fi.name }
func (fi fakeFileInfo) Size() int64  { return 0 }
func (fi fakeFileInfo) Mode() fs.FileMode {
	if fi.entry.dir {
		return fs.ModeDir | 0o755
	}
	return 0o644
}
func (fi fakeFileInfo) ModTime() time.Time { return fi.entry.modTime }
func (fi fakeFileInfo) IsDir() bool        { return fi.entry.dir }
func (fi fakeFileInfo) Sys() any           { return nil }

var (
	_ OS          = (*Fake)(nil)
	_ DirStream   = (*fakeStream)(nil)
	_ fs.FileInfo = fakeFileInfo{}
)
