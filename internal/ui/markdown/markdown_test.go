package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	r, err := New(60, StyleDark)
	require.NoError(t, err)
	require.Equal(t, 60, r.Width())

	out, err := r.Render("**Note:** On-spot registration: No guarantee of kit bag.")
	require.NoError(t, err)
	for _, word := range []string{"Note:", "registration:", "guarantee", "kit", "bag."} {
		require.Contains(t, out, word)
	}
	require.False(t, strings.HasSuffix(out, "\n"))
}

func TestNew_UnknownStyleFallsBack(t *testing.T) {
	r, err := New(40, "neon")
	require.NoError(t, err)

	out, err := r.Render("hello")
	require.NoError(t, err)
	require.Contains(t, out, "hello")
}
