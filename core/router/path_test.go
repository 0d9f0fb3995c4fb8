package router_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/landing/core/router"
)

func TestCleanPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want string
	}{
		{"", ""},
		{"hello.txt", "hello.txt"},
		{"docs/intro.html", "docs/intro.html"},
		{"a//b/./c", "a/b/c"},
		{"a/b/../c", "a/c"},
		{"../../etc/passwd", "etc/passwd"},
		{"a/%2E%2E/b", "b"},
		{"caf%C3%A9", "café"},
		{"my%20file.txt", "my file.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()

			got, err := router.CleanPath(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCleanPathRejects(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{
		".env",
		"a/.git/config",
		"a%2Fb",
		"a%5Cb",
		"a%00b",
		"bad%zz",
	} {
		t.Run(raw, func(t *testing.T) {
			t.Parallel()

			_, err := router.CleanPath(raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, router.ErrInvalidParam)
		})
	}
}
