// Package paths provides the concrete [pathfs.Path] value used by the library.
package paths

import (
	"strings"

	"github.com/brettbedarf/pathfs"
)

const separator = "/"

// PosixPath is an immutable, lexically normalized POSIX path. The zero value
// is the relative path ".".
type PosixPath struct {
	absolute bool
	segments []string
}

// FromString parses s into a PosixPath. Empty and "." segments are dropped
// and ".." removes the preceding segment where possible. No OS access.
func FromString(s string) PosixPath {
	p := PosixPath{absolute: strings.HasPrefix(s, separator)}
	p.segments = appendSegments(nil, p.absolute, s)
	return p
}

// String returns "/"-joined segments; "/" for the root and "." for an empty
// relative path.
func (p PosixPath) String() string {
	joined := strings.Join(p.segments, separator)
	if p.absolute {
		return separator + joined
	}
	if joined == "" {
		return "."
	}
	return joined
}

// Add returns a new path with segment appended. The receiver is unchanged.
func (p PosixPath) Add(segment string) pathfs.Path {
	return p.Join(segment)
}

// Join is Add with a concrete return type
func (p PosixPath) Join(segment string) PosixPath {
	base := make([]string, len(p.segments), len(p.segments)+1)
	copy(base, p.segments)
	return PosixPath{
		absolute: p.absolute,
		segments: appendSegments(base, p.absolute, segment),
	}
}

func (p PosixPath) Equal(other pathfs.Path) bool {
	if other == nil {
		return false
	}
	return p.String() == other.String()
}

func (p PosixPath) IsAbsolute() bool {
	return p.absolute
}

// Segments returns a copy of the path components
func (p PosixPath) Segments() []string {
	out := make([]string, len(p.segments))
	copy(out, p.segments)
	return out
}

// Base returns the last segment, or "" for the root and empty paths.
func (p PosixPath) Base() string {
	if len(p.segments) == 0 {
		return ""
	}
	return p.segments[len(p.segments)-1]
}

// Parent returns the path without its last segment. The parent of the root
// is the root itself.
func (p PosixPath) Parent() PosixPath {
	if len(p.segments) == 0 {
		return p
	}
	parent := make([]string, len(p.segments)-1)
	copy(parent, p.segments)
	return PosixPath{absolute: p.absolute, segments: parent}
}

func appendSegments(segments []string, absolute bool, s string) []string {
	for _, part := range strings.Split(s, separator) {
		switch part {
		case "", ".":
			continue
		case "..":
			if n := len(segments); n > 0 && segments[n-1] != ".." {
				segments = segments[:n-1]
			} else if !absolute {
				// relative paths keep leading ".." segments
				segments = append(segments, part)
			}
		default:
			segments = append(segments, part)
		}
	}
	return segments
}

var _ pathfs.Path = PosixPath{}
