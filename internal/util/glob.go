package util

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// GlobPattern is a comma-separated list of doublestar patterns. Patterns
// prefixed with "!" exclude matches. An empty list matches everything.
type GlobPattern struct {
	include []string
	exclude []string
}

// ParseGlobPattern splits pattern and validates every part.
func ParseGlobPattern(pattern string) (*GlobPattern, error) {
	gp := &GlobPattern{}
	for _, part := range strings.Split(pattern, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		negate := strings.HasPrefix(part, "!")
		part = strings.TrimPrefix(part, "!")
		if !doublestar.ValidatePattern(part) {
			return nil, fmt.Errorf("invalid glob pattern %q", part)
		}
		if negate {
			gp.exclude = append(gp.exclude, part)
		} else {
			gp.include = append(gp.include, part)
		}
	}
	return gp, nil
}

// Match reports whether name matches any include pattern and no exclude pattern
func (gp *GlobPattern) Match(name string) bool {
	matched := len(gp.include) == 0
	for _, p := range gp.include {
		if doublestar.MatchUnvalidated(p, name) {
			matched = true
			break
		}
	}
	if !matched {
		return false
	}
	for _, p := range gp.exclude {
		if doublestar.MatchUnvalidated(p, name) {
			return false
		}
	}
	return true
}

// Filter returns the names that match, preserving their order. The result
// is never nil.
func (gp *GlobPattern) Filter(names []string) []string {
	filtered := make([]string, 0, len(names))
	for _, name := range names {
		if gp.Match(name) {
			filtered = append(filtered, name)
		}
	}
	return filtered
}
