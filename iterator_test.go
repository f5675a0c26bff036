package utfconv

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const iterText = "aé€\U0001D11E"

var iterCodepoints = []Codepoint{'a', 0xE9, 0x20AC, 0x1D11E}

func collectForward[U Unit](t *testing.T, buf []U) ([]int, []Codepoint) {
	t.Helper()

	var positions []int
	var values []Codepoint
	it := NewIterator(buf)
	for !it.Done() {
		positions = append(positions, it.Pos())
		values = append(values, it.Value())
		require.True(t, it.Next())
	}
	require.False(t, it.Next(), "Next at the end does not move")
	require.Equal(t, len(buf), it.Pos())
	require.Equal(t, ReplacementCharacter, it.Value(), "Value at the end")
	return positions, values
}

func collectBackward[U Unit](t *testing.T, buf []U) ([]int, []Codepoint) {
	t.Helper()

	var positions []int
	var values []Codepoint
	it := NewIterator(buf)
	it.Seek(len(buf))
	for it.Prev() {
		positions = append(positions, it.Pos())
		values = append(values, it.Value())
	}
	require.Zero(t, it.Pos())
	return positions, values
}

func reversed[T any](s []T) []T {
	out := make([]T, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}

func TestIterator(t *testing.T) {
	t.Run("utf8", func(t *testing.T) {
		buf := []byte(iterText)
		positions, values := collectForward(t, buf)
		require.Equal(t, []int{0, 1, 3, 6}, positions)
		require.Equal(t, iterCodepoints, values)

		positions, values = collectBackward(t, buf)
		require.Equal(t, []int{6, 3, 1, 0}, positions)
		require.Equal(t, reversed(iterCodepoints), values)
	})
	t.Run("utf16", func(t *testing.T) {
		buf := Convert[uint16]([]byte(iterText))
		positions, values := collectForward(t, buf)
		require.Equal(t, []int{0, 1, 2, 3}, positions)
		require.Equal(t, iterCodepoints, values)

		positions, values = collectBackward(t, buf)
		require.Equal(t, []int{3, 2, 1, 0}, positions)
		require.Equal(t, reversed(iterCodepoints), values)
	})
	t.Run("utf32", func(t *testing.T) {
		buf := Convert[Codepoint]([]byte(iterText))
		positions, values := collectForward(t, buf)
		require.Equal(t, []int{0, 1, 2, 3}, positions)
		require.Equal(t, iterCodepoints, values)

		positions, values = collectBackward(t, buf)
		require.Equal(t, []int{3, 2, 1, 0}, positions)
		require.Equal(t, reversed(iterCodepoints), values)
	})
}

func TestIteratorIllFormed(t *testing.T) {
	buf := []byte{0xF0, 'A', 'B', 0xE2, 0x82}
	positions, _ := collectForward(t, buf)
	require.Equal(t, []int{0, 1, 2, 3}, positions, "a truncated lead byte does not hide what follows")

	positions, _ = collectBackward(t, buf)
	require.Equal(t, []int{3, 2, 1, 0}, positions, "both directions agree")
}

func TestIteratorSeek(t *testing.T) {
	it := NewIterator([]byte(iterText))
	it.Seek(3)
	require.Equal(t, Codepoint(0x20AC), it.Value())

	it.Seek(-5)
	require.Zero(t, it.Pos())
	require.False(t, it.Prev(), "Prev at the start does not move")

	it.Seek(100)
	require.True(t, it.Done())
}

func TestIteratorSet(t *testing.T) {
	t.Run("same width", func(t *testing.T) {
		buf := []byte(iterText)
		it := NewIterator(buf)
		require.True(t, it.Next())
		require.NoError(t, it.Set(0xDF)) // é -> ß, both two bytes
		require.Equal(t, "aß€\U0001D11E", string(buf))
		require.Equal(t, Codepoint(0xDF), it.Value())
	})
	t.Run("width mismatch", func(t *testing.T) {
		buf := []byte(iterText)
		it := NewIterator(buf)
		err := it.Set(0x20AC) // a -> €, one byte to three
		require.ErrorIs(t, err, ErrWidthMismatch)
		require.Equal(t, iterText, string(buf), "buffer is untouched")
	})
	t.Run("surrogate pair", func(t *testing.T) {
		buf := Convert[uint16]([]byte(iterText))
		it := NewIterator(buf)
		it.Seek(3)
		require.NoError(t, it.Set(0x1F600))
		require.Equal(t, "aé€\U0001F600", string(Convert[byte](buf)))

		it.Seek(0)
		require.ErrorIs(t, it.Set(0x1F600), ErrWidthMismatch)
	})
	t.Run("done", func(t *testing.T) {
		it := NewIterator([]Codepoint{'a'})
		require.True(t, it.Next())
		require.ErrorIs(t, it.Set('b'), ErrIteratorDone)
	})
}

func TestAll(t *testing.T) {
	var positions []int
	var values []Codepoint
	for i, cp := range All([]byte(iterText)) {
		positions = append(positions, i)
		values = append(values, cp)
	}
	require.Equal(t, []int{0, 1, 3, 6}, positions)
	require.Equal(t, iterCodepoints, values)

	t.Run("ill-formed input", func(t *testing.T) {
		values = values[:0]
		for _, cp := range All([]uint16{'a', 0xDC00, 0xD800}) {
			values = append(values, cp)
		}
		require.Equal(t, []Codepoint{'a', ReplacementCharacter, ReplacementCharacter}, values)
	})
	t.Run("early break", func(t *testing.T) {
		var count int
		for range All([]byte(iterText)) {
			count++
			if count == 2 {
				break
			}
		}
		require.Equal(t, 2, count)
	})
}

func TestBackward(t *testing.T) {
	var positions []int
	var values []Codepoint
	for i, cp := range Backward([]byte(iterText)) {
		positions = append(positions, i)
		values = append(values, cp)
	}
	require.Equal(t, []int{6, 3, 1, 0}, positions)
	require.Equal(t, reversed(iterCodepoints), values)

	t.Run("ill-formed input", func(t *testing.T) {
		positions = positions[:0]
		values = values[:0]
		for i, cp := range Backward([]byte("a\x80b\xE2\x82")) {
			positions = append(positions, i)
			values = append(values, cp)
		}
		require.Equal(t, []int{3, 2, 1, 0}, positions)
		require.Equal(t, []Codepoint{ReplacementCharacter, 'b', ReplacementCharacter, 'a'}, values)
	})
}
