package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsWhitespace(t *testing.T) {
	for _, b := range []byte{' ', '\t', '\f', '\v', '\r', '\n'} {
		require.Truef(t, IsWhitespace(b), "byte %q", b)
	}
	for _, b := range []byte{'a', '0', '<', '_'} {
		require.Falsef(t, IsWhitespace(b), "byte %q", b)
	}
}

func TestIsEOL(t *testing.T) {
	require.True(t, IsEOL('\n'))
	require.True(t, IsEOL('\r'))
	require.False(t, IsEOL(' '))
	require.False(t, IsEOL('a'))
}

func TestIsDigit(t *testing.T) {
	for b := byte('0'); b <= '9'; b++ {
		require.True(t, IsDigit(b))
	}
	require.False(t, IsDigit('a'))
	require.False(t, IsDigit('-'))
}

func TestIsIdentStart(t *testing.T) {
	require.True(t, IsIdentStart('a'))
	require.True(t, IsIdentStart('Z'))
	require.True(t, IsIdentStart('_'))
	require.True(t, IsIdentStart('$'))
	require.False(t, IsIdentStart('0'))
	require.False(t, IsIdentStart('-'))
	// Bytes >= 0x80 always pass: multi-byte UTF-8 rides along unexamined.
	require.True(t, IsIdentStart(0xC3))
}

func TestIsIdentPart(t *testing.T) {
	require.True(t, IsIdentPart('a'))
	require.True(t, IsIdentPart('0'))
	require.True(t, IsIdentPart('-'))
	require.False(t, IsIdentPart(':')) // ':' is name-significant only for tag names, not identifiers
	require.False(t, IsIdentPart(' '))
	require.True(t, IsIdentPart(0x80))
}

func TestCanBeFollowedByDivision(t *testing.T) {
	for _, b := range []byte{')', ']', '}', 'a', '0', '.', '%', '<'} {
		require.Truef(t, CanBeFollowedByDivision(b), "byte %q", b)
	}
	for _, b := range []byte{'(', '+', ',', ' '} {
		require.Falsef(t, CanBeFollowedByDivision(b), "byte %q", b)
	}
}
