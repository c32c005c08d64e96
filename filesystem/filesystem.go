// Package filesystem binds [pathfs.Node] values to a host OS tree.
//
// A [Filesystem] owns the configuration and the [osfs.OS] backend. Nodes it
// constructs hold only a path; every operation goes to the OS at call time
// and every fallible primitive runs inside a guard scope, so failures come
// back as typed errors from the pathfs package.
package filesystem

import (
	"sync"

	"github.com/brettbedarf/pathfs"
	"github.com/brettbedarf/pathfs/config"
	"github.com/brettbedarf/pathfs/internal/guard"
	"github.com/brettbedarf/pathfs/internal/util"
	"github.com/brettbedarf/pathfs/osfs"
	"github.com/brettbedarf/pathfs/paths"
)

type Filesystem struct {
	cfg  *config.Config
	osys osfs.OS
}

// New creates a Filesystem. A nil cfg uses the defaults and a nil osys uses
// the host OS.
func New(cfg *config.Config, osys osfs.OS) *Filesystem {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	if osys == nil {
		osys = osfs.Local{}
	}
	return &Filesystem{cfg: cfg, osys: osys}
}

var defaultFS = sync.OnceValue(func() *Filesystem {
	return New(config.NewDefaultConfig(), osfs.Local{})
})

// Default returns the process-wide Filesystem bound to the host OS
func Default() *Filesystem {
	return defaultFS()
}

// NewDirectory binds p to a Directory on the default filesystem
func NewDirectory(p pathfs.Path) *Directory {
	return Default().Directory(p)
}

// NewFile binds p to a File on the default filesystem
func NewFile(p pathfs.Path) *File {
	return Default().File(p)
}

func (f *Filesystem) Config() *config.Config {
	return f.cfg
}

// logger returns a component logger limited to the configured level. Nothing
// is written until util.InitializeLogger installs an output.
func (f *Filesystem) logger(component string) util.Logger {
	return util.GetLevelLogger(component, f.cfg.LogLvl)
}

// Path parses s. No OS access.
func (f *Filesystem) Path(s string) pathfs.Path {
	return paths.FromString(s)
}

// CurrentDirectoryPath returns the process working directory. An OS failure,
// or a result that is empty or not absolute, is an *OperationError naming
// getcwd.
func (f *Filesystem) CurrentDirectoryPath() (pathfs.Path, error) {
	logger := f.logger("CurrentDirectoryPath")

	var cwd string
	err := guard.Do(f.logger("guard"), pathfs.OpGetwd, nil, func() (err error) {
		cwd, err = f.osys.Getwd()
		return err
	})
	if err != nil {
		logger.Debug().Err(err).Msg("Failed to get working directory")
		return nil, err
	}

	p := paths.FromString(cwd)
	if cwd == "" || !p.IsAbsolute() {
		err := &pathfs.OperationError{Op: pathfs.OpGetwd, Result: cwd}
		logger.Debug().Err(err).Msg("Unexpected working directory")
		return nil, err
	}
	return p, nil
}

// Directory binds p to a Directory. No OS access.
func (f *Filesystem) Directory(p pathfs.Path) *Directory {
	return &Directory{node: node{fsys: f, path: p}}
}

// File binds p to a File. No OS access.
func (f *Filesystem) File(p pathfs.Path) *File {
	return &File{node: node{fsys: f, path: p}}
}

// Node classifies p against the OS and returns the matching variant. Anything
// that is not a directory, including a path that cannot be classified,
// becomes a *File.
func (f *Filesystem) Node(p pathfs.Path) pathfs.Node {
	if f.Classify(p) == pathfs.KindDirectory {
		return f.Directory(p)
	}
	return f.File(p)
}

// Classify reports whether p is a directory. It uses Lstat, so a symlink to a
// directory is a File unless FollowSymlinks is set; with it set, Stat is used
// and a symlink is classified by its target.
func (f *Filesystem) Classify(p pathfs.Path) pathfs.Kind {
	stat := f.osys.Lstat
	if f.cfg.FollowSymlinks {
		stat = f.osys.Stat
	}
	info, err := stat(p.String())
	if err != nil || !info.IsDir() {
		return pathfs.KindFile
	}
	return pathfs.KindDirectory
}

// exists reports whether anything, including a dangling symlink, is at p
func (f *Filesystem) exists(p pathfs.Path) bool {
	_, err := f.osys.Lstat(p.String())
	return err == nil
}
