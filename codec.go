package utfconv

import "io"

// Unit is the code unit type of one of the encoding forms: byte for
// UTF-8, uint16 for UTF-16 and Codepoint for UTF-32.
type Unit interface {
	byte | uint16 | Codepoint
}

// Codec is implemented by the three encoding forms. Codecs hold no state,
// so a single value may be used from any number of goroutines.
//
// Decode and DecodeLenient return the decoded code point and the number
// of units consumed. For non-empty input the count is always at least 1.
// Given empty input they return (ReplacementCharacter, 0).
//
// The append-style methods (Encode and the To* conversions) append to dst
// and return the extended slice, like the standard library's append.
type Codec[U Unit] interface {
	Format() Format

	// Decode decodes the first code point of src, validating it against
	// the well-formedness rules of the encoding form. Ill-formed input
	// yields ReplacementCharacter.
	Decode(src []U) (Codepoint, int)
	// DecodeLenient decodes the first code point of src without any
	// validation. Its result is unspecified for ill-formed input.
	DecodeLenient(src []U) (Codepoint, int)
	Encode(dst []U, cp Codepoint) []U
	// Length returns the number of code points in src.
	Length(src []U) int

	ToUTF8(dst []byte, src []U) []byte
	ToUTF16(dst []uint16, src []U) []uint16
	ToUTF32(dst []Codepoint, src []U) []Codepoint
	ToUTF8Lenient(dst []byte, src []U) []byte
	ToUTF16Lenient(dst []uint16, src []U) []uint16
	ToUTF32Lenient(dst []Codepoint, src []U) []Codepoint

	// Read reads the entire stream, from its start, as units of this
	// encoding form in the given byte order.
	Read(r io.ReadSeeker, order ByteOrder) ([]U, error)
	// Write serializes src in the given byte order with a single call to
	// w.Write, and returns the number of units that were written.
	Write(w io.Writer, src []U, order ByteOrder) (int, error)
	WriteBOM(w io.Writer, order ByteOrder) error

	// ValidSequence returns the index of the first ill-formed sequence in
	// src, or len(src) if src is well-formed.
	ValidSequence(src []U) int
}

// codec is the full set of operations an encoding form provides to the
// rest of the package.
type codec[U Unit] interface {
	Codec[U]

	// decode is Decode, additionally reporting whether the sequence was
	// well-formed.
	decode(src []U) (Codepoint, int, bool)
	// width returns the number of units the sequence starting at src[0]
	// occupies, judged from its leading unit only.
	width(src []U) int
	// widthBack returns the number of units of the sequence that ends at
	// the end of src.
	widthBack(src []U) int
	unmarshal(b []byte, order ByteOrder) []U
	marshal(dst []byte, src []U, order ByteOrder) []byte
}

var (
	_ codec[byte]      = UTF8Codec{}
	_ codec[uint16]    = UTF16Codec{}
	_ codec[Codepoint] = UTF32Codec{}
)

// codecFor returns the codec whose unit type is U.
func codecFor[U Unit]() codec[U] {
	var zero U
	switch any(zero).(type) {
	case byte:
		return any(UTF8).(codec[U])
	case uint16:
		return any(UTF16).(codec[U])
	default:
		return any(UTF32).(codec[U])
	}
}

// CodecFor returns the codec whose unit type is U.
func CodecFor[U Unit]() Codec[U] {
	return codecFor[U]()
}

// transcode decodes src with from and appends the re-encoded code points
// to dst with to. Same-form conversions are plain copies.
func transcode[S, T Unit](from codec[S], to codec[T], dst []T, src []S, lenient bool) []T {
	if same, ok := any(src).([]T); ok {
		return append(dst, same...)
	}

	for len(src) > 0 {
		var cp Codepoint
		var n int
		if lenient {
			cp, n = from.DecodeLenient(src)
		} else {
			cp, n = from.Decode(src)
		}
		dst = to.Encode(dst, cp)
		src = src[n:]
	}
	return dst
}

func validSequence[U Unit](c codec[U], src []U) int {
	for i := 0; i < len(src); {
		_, n, ok := c.decode(src[i:])
		if !ok {
			return i
		}
		i += n
	}
	return len(src)
}

func length[U Unit](c codec[U], src []U) int {
	var n int
	for len(src) > 0 {
		_, w := c.DecodeLenient(src)
		src = src[w:]
		n++
	}
	return n
}
