package filesystem

import (
	"sync"
	"time"

	"github.com/brettbedarf/pathfs"
	"github.com/brettbedarf/pathfs/internal/guard"
)

// node holds the state shared by Directory and File: the owning filesystem
// and the bound path. The path is only replaced by a successful move.
type node struct {
	fsys *Filesystem
	mu   sync.RWMutex // Protects path
	path pathfs.Path
}

// Path returns the last known location of the node (Thread-safe)
func (n *node) Path() pathfs.Path {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.path
}

// Exists reports whether anything is currently at the node's path
func (n *node) Exists() bool {
	return n.fsys.exists(n.Path())
}

// ModifiedTime returns the last-modified time in Unix seconds. A missing
// path, or an OS result that is not a valid timestamp, is an
// *OperationError naming mtime.
func (n *node) ModifiedTime() (int64, error) {
	logger := n.fsys.logger("ModifiedTime")
	p := n.Path().String()

	var mtime time.Time
	err := guard.Do(n.fsys.logger("guard"), pathfs.OpModTime, []any{p}, func() error {
		info, err := n.fsys.osys.Stat(p)
		if err != nil {
			return err
		}
		mtime = info.ModTime()
		return nil
	})
	if err != nil {
		logger.Debug().Err(err).Str("path", p).Msg("Failed to get modified time")
		return 0, err
	}
	if mtime.IsZero() {
		err := &pathfs.OperationError{Op: pathfs.OpModTime, Args: []any{p}, Result: mtime}
		logger.Debug().Err(err).Str("path", p).Msg("Invalid modified time")
		return 0, err
	}
	return mtime.Unix(), nil
}

// move renames the node to newPath and rebinds it on success. The write lock
// is held for the whole move so concurrent moves of the same node serialize.
func (n *node) move(newPath pathfs.Path) error {
	logger := n.fsys.logger("Move")

	n.mu.Lock()
	defer n.mu.Unlock()

	oldPath := n.path
	if !n.fsys.exists(oldPath) {
		return &pathfs.PreconditionError{Op: pathfs.OpRename, Path: oldPath.String(), Err: pathfs.ErrNothingToMove}
	}
	if n.fsys.exists(newPath) {
		return &pathfs.PreconditionError{Op: pathfs.OpRename, Path: newPath.String(), Err: pathfs.ErrDestinationExists}
	}

	from, to := oldPath.String(), newPath.String()
	err := guard.Do(n.fsys.logger("guard"), pathfs.OpRename, []any{from, to}, func() error {
		return n.fsys.osys.Rename(from, to)
	})
	if err != nil {
		logger.Debug().Err(err).Str("from", from).Str("to", to).Msg("Failed to move node")
		return err
	}

	n.path = newPath
	logger.Debug().Str("from", from).Str("to", to).Msg("Moved node")
	return nil
}
