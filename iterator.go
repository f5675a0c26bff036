package utfconv

import (
	"fmt"
	"iter"
)

// Iterator walks a buffer of units one code point at a time, in either
// direction, without copying it. It borrows the buffer: any change to
// the buffer other than through Set invalidates the iterator.
//
// Value decodes without validation, so an Iterator should only be used
// on well-formed text (for example the output of a strict conversion).
type Iterator[U Unit] struct {
	buf   []U
	pos   int
	codec codec[U]
}

// NewIterator returns an iterator positioned at the start of buf.
func NewIterator[U Unit](buf []U) *Iterator[U] {
	return &Iterator[U]{
		buf:   buf,
		codec: codecFor[U](),
	}
}

// Pos returns the current position, in units.
func (it *Iterator[U]) Pos() int {
	return it.pos
}

// Done reports whether the iterator is past the last code point.
func (it *Iterator[U]) Done() bool {
	return it.pos >= len(it.buf)
}

// Seek moves the iterator to unit position pos, clamped to the buffer.
// pos should be the start of a sequence.
func (it *Iterator[U]) Seek(pos int) {
	it.pos = min(max(pos, 0), len(it.buf))
}

// Value returns the code point at the current position, or
// ReplacementCharacter when the iterator is done.
func (it *Iterator[U]) Value() Codepoint {
	if it.Done() {
		return ReplacementCharacter
	}
	cp, _ := it.codec.DecodeLenient(it.buf[it.pos:])
	return cp
}

// Next moves to the following code point. It returns false, without
// moving, when the iterator is already done.
func (it *Iterator[U]) Next() bool {
	if it.Done() {
		return false
	}
	it.pos += it.codec.width(it.buf[it.pos:])
	return true
}

// Prev moves to the preceding code point. It returns false, without
// moving, at the start of the buffer.
func (it *Iterator[U]) Prev() bool {
	if it.pos == 0 {
		return false
	}
	it.pos -= it.codec.widthBack(it.buf[:it.pos])
	return true
}

// Set overwrites the code point at the current position in place. The
// replacement must encode to exactly as many units as the sequence it
// replaces, otherwise the following text would be corrupted: in that
// case ErrWidthMismatch is returned and the buffer is left untouched.
func (it *Iterator[U]) Set(cp Codepoint) error {
	if it.Done() {
		return ErrIteratorDone
	}

	var scratch [4]U
	enc := it.codec.Encode(scratch[:0], cp)
	if w := it.codec.width(it.buf[it.pos:]); len(enc) != w {
		return fmt.Errorf("replacing %d unit(s) at %d with %s (%d unit(s)): %w", w, it.pos, cp, len(enc), ErrWidthMismatch)
	}
	copy(it.buf[it.pos:], enc)
	return nil
}

// All returns a sequence of the code points in src, with their starting
// positions in units. Ill-formed sequences yield ReplacementCharacter.
func All[U Unit](src []U) iter.Seq2[int, Codepoint] {
	c := codecFor[U]()
	return func(yield func(int, Codepoint) bool) {
		for i := 0; i < len(src); {
			cp, n := c.Decode(src[i:])
			if !yield(i, cp) {
				return
			}
			i += n
		}
	}
}

// Backward is like All, but walks src from its end.
func Backward[U Unit](src []U) iter.Seq2[int, Codepoint] {
	c := codecFor[U]()
	return func(yield func(int, Codepoint) bool) {
		for end := len(src); end > 0; {
			start := end - c.widthBack(src[:end])
			cp, n := c.Decode(src[start:end])
			if n != end-start {
				cp = ReplacementCharacter
			}
			if !yield(start, cp) {
				return
			}
			end = start
		}
	}
}
