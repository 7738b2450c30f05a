package id_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/dispatch/pkg/id"
)

func TestNew(t *testing.T) {
	t.Parallel()

	a, b := id.New(), id.New()
	require.NotEqual(t, a, b)
	require.True(t, id.Valid(a))
	require.Len(t, a, 36)
	require.Equal(t, byte('7'), a[14])
	require.LessOrEqual(t, a[:13], b[:13])
}

func TestToken(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{})
	for range 100 {
		tok := id.Token()
		require.Len(t, tok, 43)
		require.NotContains(t, tok, "+")
		require.NotContains(t, tok, "/")
		seen[tok] = struct{}{}
	}
	require.Len(t, seen, 100)
}

func TestValid(t *testing.T) {
	t.Parallel()

	require.False(t, id.Valid("not-a-uuid"))
	require.False(t, id.Valid(""))
}
