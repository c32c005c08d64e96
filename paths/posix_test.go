package paths

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"/tmp/a", "/tmp/a"},
		{"/tmp//a/", "/tmp/a"},
		{"/tmp/./a", "/tmp/a"},
		{"/tmp/a/../b", "/tmp/b"},
		{"/..", "/"},
		{"/", "/"},
		{"", "."},
		{".", "."},
		{"a/b", "a/b"},
		{"../a", "../a"},
		{"a/../../b", "../b"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FromString(tt.in).String())
		})
	}
}

func TestPosixPath_AddDoesNotMutate(t *testing.T) {
	t.Parallel()

	parent := FromString("/tmp/x")
	a := parent.Add("a")
	b := parent.Add("b")

	assert.Equal(t, "/tmp/x", parent.String(), "parent must be unchanged")
	assert.Equal(t, "/tmp/x/a", a.String())
	assert.Equal(t, "/tmp/x/b", b.String())
}

func TestPosixPath_JoinSharesNoBackingArray(t *testing.T) {
	t.Parallel()

	// Parent with spare capacity must not leak appends between siblings
	parent := FromString("/a/b/c").Parent()
	x := parent.Join("x")
	y := parent.Join("y")

	assert.Equal(t, "/a/b/x", x.String())
	assert.Equal(t, "/a/b/y", y.String())
}

func TestPosixPath_Equal(t *testing.T) {
	t.Parallel()

	assert.True(t, FromString("/tmp/a/").Equal(FromString("/tmp//a")))
	assert.False(t, FromString("/tmp/a").Equal(FromString("tmp/a")))
	assert.False(t, FromString("/tmp/a").Equal(nil))
}

func TestPosixPath_ParentAndBase(t *testing.T) {
	t.Parallel()

	p := FromString("/tmp/a/b")
	assert.Equal(t, "b", p.Base())
	assert.Equal(t, "/tmp/a", p.Parent().String())

	root := FromString("/")
	assert.Equal(t, "", root.Base())
	assert.Equal(t, "/", root.Parent().String())
	assert.True(t, root.IsAbsolute())
}

func TestPosixPath_Segments(t *testing.T) {
	t.Parallel()

	p := FromString("/tmp/a")
	segs := p.Segments()
	require.Equal(t, []string{"tmp", "a"}, segs)

	segs[0] = "changed"
	assert.Equal(t, "/tmp/a", p.String(), "Segments must return a copy")
}
