package pathfs

// Kind tags the variant of a [Node]. It is produced by classifying a path
// against the OS at call time.
type Kind uint8

const (
	KindFile Kind = iota
	KindDirectory
)

func (k Kind) String() string {
	switch k {
	case KindDirectory:
		return "dir"
	case KindFile:
		return "file"
	default:
		return "unknown"
	}
}

// Node is a path-addressed Directory or File.
//
// A Node never caches directory contents or file bytes; every call hits the
// OS. The bound path is only ever replaced by a successful Move.
type Node interface {
	// Path returns the last known location of the node. No OS access.
	Path() Path

	// Kind returns the variant tag of the node
	Kind() Kind

	// Move relocates the node to newPath and rebinds it on success
	Move(newPath Path) error

	// Delete removes the node. Absent nodes are a no-op.
	Delete() error

	// ModifiedTime returns the last-modified time in Unix seconds
	ModifiedTime() (int64, error)
}
