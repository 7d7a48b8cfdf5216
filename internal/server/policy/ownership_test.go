package policy

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOwnerSegment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{"u1/car.jpg", "u1"},
		{"u1/nested/car.jpg", "u1"},
		{"u1/", ""},
		{"/car.jpg", ""},
		{"car.jpg", ""},
		{"", ""},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, OwnerSegment(tt.path), "path %q", tt.path)
	}
}

func TestIdentityOwnership(t *testing.T) {
	t.Parallel()

	var check IdentityOwnership
	require.True(t, check.Owns(Principal{Identity: "u1"}, "u1"))
	require.False(t, check.Owns(Principal{Identity: "u1"}, "u2"))
	require.False(t, check.Owns(Anonymous, ""))
}

func TestPathOwnership(t *testing.T) {
	t.Parallel()

	var check PathOwnership
	p := Principal{Identity: "u1"}

	require.True(t, check.Owns(p, "u1/car.jpg"))
	require.False(t, check.Owns(p, "u2/car.jpg"))
	require.False(t, check.Owns(p, "car.jpg"), "pathless keys have no owner")
	require.False(t, check.Owns(Anonymous, "u1/car.jpg"))
}
