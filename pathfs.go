// Package pathfs contains the core domain types for the pathfs library:
// path values, the node capability shared by directories and files, and the
// typed errors every OS interaction reports instead of a bare boolean.
//
// Concrete nodes live in the filesystem package:
//
//	dir := filesystem.NewDirectory(paths.FromString("/tmp/x"))
//	if err := dir.Delete(); err != nil {
//		var opErr *pathfs.OperationError
//		if errors.As(err, &opErr) { ... }
//	}
package pathfs
