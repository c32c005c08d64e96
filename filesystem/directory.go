package filesystem

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/brettbedarf/pathfs"
	"github.com/brettbedarf/pathfs/internal/guard"
	"github.com/brettbedarf/pathfs/internal/util"
	"github.com/brettbedarf/pathfs/osfs"
)

// names requested from a directory stream per readdir call
const readBatch = 128

// ErrInvalidName is returned by [Directory.Child] for a name that is not a
// single path component.
var ErrInvalidName = errors.New("invalid entry name")

// Directory is a [pathfs.Node] addressing a directory. It never caches its
// contents; every Read enumerates the OS again.
type Directory struct {
	node
}

func (d *Directory) Kind() pathfs.Kind {
	return pathfs.KindDirectory
}

// IsDirectory reports whether the bound path is currently a directory
func (d *Directory) IsDirectory() bool {
	return d.fsys.Classify(d.Path()) == pathfs.KindDirectory
}

// ReadNames returns the entry names in OS enumeration order, without "."
// and "..".
func (d *Directory) ReadNames() ([]string, error) {
	return d.fsys.readNames(d.Path())
}

// Read returns a newly classified node for every entry, in OS enumeration
// order. Entries that are not directories come back as *File.
func (d *Directory) Read() ([]pathfs.Node, error) {
	p := d.Path()
	names, err := d.fsys.readNames(p)
	if err != nil {
		return nil, err
	}
	return d.fsys.children(p, names), nil
}

// ReadMatching is Read filtered by a comma-separated doublestar pattern
// matched against each entry name. Patterns prefixed with "!" exclude.
func (d *Directory) ReadMatching(pattern string) ([]pathfs.Node, error) {
	gp, err := util.ParseGlobPattern(pattern)
	if err != nil {
		return nil, err
	}
	p := d.Path()
	names, err := d.fsys.readNames(p)
	if err != nil {
		return nil, err
	}
	return d.fsys.children(p, gp.Filter(names)), nil
}

// Child classifies the single entry name inside the directory. The entry
// does not have to exist.
func (d *Directory) Child(name string) (pathfs.Node, error) {
	if name == "" || name == "." || name == ".." || strings.Contains(name, "/") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return d.fsys.Node(d.Path().Add(name)), nil
}

// Write creates the directory and any missing parents, like `mkdir -p`.
// It is a no-op when the path is already a directory.
func (d *Directory) Write() error {
	logger := d.fsys.logger("Write")
	p := d.Path().String()

	if d.IsDirectory() {
		logger.Trace().Str("path", p).Msg("Directory already exists")
		return nil
	}

	mode := d.fsys.cfg.DirMode
	err := guard.Do(d.fsys.logger("guard"), pathfs.OpMkdir, []any{p, mode, true}, func() error {
		return d.fsys.osys.MkdirAll(p, mode)
	})
	if err != nil {
		logger.Debug().Err(err).Str("path", p).Msg("Failed to create directory")
		return err
	}
	logger.Debug().Str("path", p).Stringer("mode", mode).Msg("Created directory")
	return nil
}

// Move renames the directory and rebinds it to newPath on success.
// It fails with a *PreconditionError when nothing is at the current path or
// something is already at newPath.
func (d *Directory) Move(newPath pathfs.Path) error {
	return d.move(newPath)
}

// Delete removes the directory and everything below it, children before
// parents in enumeration order. The first failure stops the walk and leaves
// the remaining entries in place. Deleting an absent directory is a no-op.
func (d *Directory) Delete() error {
	logger := d.fsys.logger("Delete")
	p := d.Path()

	if !d.fsys.exists(p) {
		logger.Trace().Str("path", p.String()).Msg("Nothing to delete")
		return nil
	}

	children, err := d.Read()
	if err != nil {
		return err
	}
	for _, child := range children {
		if err := child.Delete(); err != nil {
			return err
		}
	}

	dir := p.String()
	err = guard.Do(d.fsys.logger("guard"), pathfs.OpRmdir, []any{dir}, func() error {
		return d.fsys.osys.Rmdir(dir)
	})
	if err != nil {
		logger.Debug().Err(err).Str("path", dir).Msg("Failed to remove directory")
		return err
	}
	logger.Debug().Str("path", dir).Msg("Removed directory")
	return nil
}

// readNames enumerates p inside a single opendir scope. The stream is closed
// on every path; a close failure is reported only if enumeration succeeded.
func (f *Filesystem) readNames(p pathfs.Path) (names []string, err error) {
	logger := f.logger("Read")
	dir := p.String()

	scope := guard.Enter(f.logger("guard"), pathfs.OpOpenDir, dir)
	defer func() {
		if closeErr := scope.Exit(); err == nil && closeErr != nil {
			names, err = nil, closeErr
		}
		if err != nil {
			logger.Debug().Err(err).Str("path", dir).Msg("Failed to read directory")
			return
		}
		logger.Trace().Str("path", dir).Int("entries", len(names)).Msg("Read directory")
	}()

	return enumerate(scope, f.osys, dir)
}

func enumerate(scope *guard.Scope, osys osfs.OS, dir string) ([]string, error) {
	var stream osfs.DirStream
	err := scope.Do(func() (err error) {
		stream, err = osys.OpenDir(dir)
		return err
	})
	if err != nil {
		return nil, err
	}
	if stream == nil {
		return nil, &pathfs.OperationError{Op: pathfs.OpOpenDir, Args: []any{dir}, Result: stream}
	}
	scope.AddClose(pathfs.OpCloseDir, stream.Close)

	names := []string{}
	for done := false; !done; {
		var batch []string
		err := scope.Run(pathfs.OpReadDir, func() (err error) {
			batch, err = stream.ReadNames(readBatch)
			if errors.Is(err, io.EOF) {
				done = true
				return nil
			}
			return err
		})
		if err != nil {
			return nil, err
		}
		if len(batch) == 0 {
			done = true
		}
		for _, name := range batch {
			if name != "." && name != ".." {
				names = append(names, name)
			}
		}
	}
	return names, nil
}

// children builds a classified node for each name under parent
func (f *Filesystem) children(parent pathfs.Path, names []string) []pathfs.Node {
	nodes := make([]pathfs.Node, 0, len(names))
	for _, name := range names {
		nodes = append(nodes, f.Node(parent.Add(name)))
	}
	return nodes
}

var _ pathfs.Node = (*Directory)(nil)
