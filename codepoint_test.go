package utfconv

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsValid(t *testing.T) {
	inputs := map[uint32]bool{
		0x0:        true,
		0x41:       true,
		0xD7FF:     true,
		0xD800:     false,
		0xDBFF:     false,
		0xDC00:     false,
		0xDFFF:     false,
		0xE000:     true,
		0xFFFD:     true,
		0xFFFF:     true,
		0x10000:    true,
		0x10FFFF:   true,
		0x110000:   false,
		0xFFFFFFFF: false,
	}

	for v, expected := range inputs {
		require.Equal(t, expected, IsValid(v), "IsValid(%#x)", v)
		require.Equal(t, expected, Codepoint(v).IsValid(), "Codepoint(%#x).IsValid()", v)
	}
}

func TestSurrogateRanges(t *testing.T) {
	require.True(t, IsHighSurrogate(0xD800))
	require.True(t, IsHighSurrogate(0xDBFF))
	require.False(t, IsHighSurrogate(0xDC00))
	require.True(t, IsLowSurrogate(0xDC00))
	require.True(t, IsLowSurrogate(0xDFFF))
	require.False(t, IsLowSurrogate(0xDBFF))
	require.False(t, IsLowSurrogate(0xE000))
}

func TestCodepointString(t *testing.T) {
	require.Equal(t, "U+FFFD", ReplacementCharacter.String())
	require.Equal(t, "U+0041", Codepoint('A').String())
	require.Equal(t, "U+10FFFF", MaxCodepoint.String())
}
