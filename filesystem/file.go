package filesystem

import (
	"github.com/brettbedarf/pathfs"
	"github.com/brettbedarf/pathfs/internal/guard"
)

// File is a [pathfs.Node] for anything that is not a directory.
type File struct {
	node
}

func (f *File) Kind() pathfs.Kind {
	return pathfs.KindFile
}

// Move renames the file and rebinds it to newPath on success.
func (f *File) Move(newPath pathfs.Path) error {
	return f.move(newPath)
}

// Delete unlinks the file. Deleting an absent file is a no-op. A directory
// found at the path is not removed; unlink fails on it.
func (f *File) Delete() error {
	logger := f.fsys.logger("Delete")
	p := f.Path()

	if !f.fsys.exists(p) {
		logger.Trace().Str("path", p.String()).Msg("Nothing to delete")
		return nil
	}

	name := p.String()
	err := guard.Do(f.fsys.logger("guard"), pathfs.OpUnlink, []any{name}, func() error {
		return f.fsys.osys.Unlink(name)
	})
	if err != nil {
		logger.Debug().Err(err).Str("path", name).Msg("Failed to unlink file")
		return err
	}
	logger.Debug().Str("path", name).Msg("Unlinked file")
	return nil
}

var _ pathfs.Node = (*File)(nil)
