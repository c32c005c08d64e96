package pathfs

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// Names of the wrapped OS primitives as they appear in [OperationError.Op]
const (
	OpOpenDir  = "opendir"
	OpReadDir  = "readdir"
	OpCloseDir = "closedir"
	OpMkdir    = "mkdir"
	OpRename   = "rename"
	OpRmdir    = "rmdir"
	OpUnlink   = "unlink"
	OpModTime  = "mtime"
	OpGetwd    = "getcwd"
)

// Precondition failures detected before any OS mutation was attempted
var (
	ErrNothingToMove     = errors.New("there is no file to move")
	ErrDestinationExists = errors.New("there is already a file at the destination path")
)

// OperationError reports a failed OS primitive.
//
// When Err is set the primitive failed through the OS error channel and the
// error scope translated it; Err stays reachable with errors.Is/As (e.g.
// fs.ErrNotExist). When Err is nil the primitive returned without an OS error
// but its Result was not the expected success value.
type OperationError struct {
	Op     string // primitive name, see the Op* constants
	Args   []any  // argument snapshot passed to the primitive
	Result any    // raw observed result; only meaningful when Err is nil
	Err    error
}

func (e *OperationError) Error() string {
	call := fmt.Sprintf("%s(%s)", e.Op, formatArgs(e.Args))
	if e.Err != nil {
		return call + ": " + e.Err.Error()
	}
	return fmt.Sprintf("%s returned %#v", call, e.Result)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// Translated reports whether the failure came from the OS error channel
// rather than an unexpected result value.
func (e *OperationError) Translated() bool {
	return e.Err != nil
}

// PreconditionError reports a check that failed before the OS call was made.
// Err is one of [ErrNothingToMove] or [ErrDestinationExists].
type PreconditionError struct {
	Op   string
	Path string
	Err  error
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PreconditionError) Unwrap() error {
	return e.Err
}

func formatArgs(args []any) string {
	parts := make([]string, len(args))
	for i, a := range args {
		switch v := a.(type) {
		case string:
			parts[i] = fmt.Sprintf("%q", v)
		case fs.FileMode:
			parts[i] = fmt.Sprintf("%#o", uint32(v.Perm()))
		case fmt.Stringer:
			parts[i] = fmt.Sprintf("%q", v.String())
		default:
			parts[i] = fmt.Sprintf("%v", v)
		}
	}
	return strings.Join(parts, ", ")
}
