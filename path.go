package pathfs

// Path is an immutable filesystem location. Operations that "change" a path
// return a new value and never mutate the receiver.
type Path interface {
	// String returns the path in its native string form
	String() string

	// Add returns a new Path with segment appended as the last component
	Add(segment string) Path

	// Equal reports whether both paths have the same normalized string form
	Equal(other Path) bool
}
