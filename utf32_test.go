package utfconv

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUTF32Decode(t *testing.T) {
	testcases := []struct {
		input    []Codepoint
		expected Codepoint
		consumed int
	}{
		{nil, ReplacementCharacter, 0},
		{[]Codepoint{'A', 'B'}, 'A', 1},
		{[]Codepoint{MaxCodepoint}, MaxCodepoint, 1},
		{[]Codepoint{0xD800}, ReplacementCharacter, 1},
		{[]Codepoint{0xDFFF}, ReplacementCharacter, 1},
		{[]Codepoint{0x110000}, ReplacementCharacter, 1},
		{[]Codepoint{0xFFFFFFFF}, ReplacementCharacter, 1},
	}

	for _, tc := range testcases {
		cp, n := UTF32.Decode(tc.input)
		require.Equal(t, tc.expected, cp, "Decode(%v)", tc.input)
		require.Equal(t, tc.consumed, n, "Decode(%v)", tc.input)
	}
}

func TestUTF32Lenient(t *testing.T) {
	cp, n := UTF32.DecodeLenient([]Codepoint{0xD800})
	require.Equal(t, Codepoint(0xD800), cp, "no validation")
	require.Equal(t, 1, n)

	cp, n = UTF32.DecodeLenient(nil)
	require.Equal(t, ReplacementCharacter, cp)
	require.Equal(t, 0, n)
}

func TestUTF32Sequences(t *testing.T) {
	src := []Codepoint{'a', 0x20AC, 0x1D11E}
	require.Equal(t, []Codepoint{0x1D11E}, UTF32.Encode(nil, 0x1D11E))
	require.Equal(t, 3, UTF32.Length(src))
	require.Equal(t, 3, UTF32.ValidSequence(src))
	require.Equal(t, 1, UTF32.ValidSequence([]Codepoint{'a', 0x110000}))

	require.Equal(t, []byte("a€\U0001D11E"), UTF32.ToUTF8(nil, src))
	require.Equal(t, []uint16{'a', 0x20AC, 0xD834, 0xDD1E}, UTF32.ToUTF16(nil, src))
	require.Equal(t, []byte("�"), UTF32.ToUTF8(nil, []Codepoint{0xDC00}))
}
