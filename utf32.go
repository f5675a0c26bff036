package utfconv

import "io"

// UTF32Codec stores each code point in a single 32-bit unit.
type UTF32Codec struct{}

// UTF32 is the UTF-32 codec.
var UTF32 UTF32Codec

func (UTF32Codec) Format() Format {
	return FormatUTF32
}

func (c UTF32Codec) Decode(src []Codepoint) (Codepoint, int) {
	cp, n, _ := c.decode(src)
	return cp, n
}

func (UTF32Codec) decode(src []Codepoint) (Codepoint, int, bool) {
	if len(src) == 0 {
		return ReplacementCharacter, 0, false
	}
	if !src[0].IsValid() {
		return ReplacementCharacter, 1, false
	}
	return src[0], 1, true
}

func (UTF32Codec) DecodeLenient(src []Codepoint) (Codepoint, int) {
	if len(src) == 0 {
		return ReplacementCharacter, 0
	}
	return src[0], 1
}

// Encode appends cp to dst unchanged.
func (UTF32Codec) Encode(dst []Codepoint, cp Codepoint) []Codepoint {
	return append(dst, cp)
}

func (UTF32Codec) Length(src []Codepoint) int {
	return len(src)
}

func (c UTF32Codec) ToUTF8(dst []byte, src []Codepoint) []byte {
	return transcode[Codepoint, byte](c, UTF8, dst, src, false)
}

func (c UTF32Codec) ToUTF16(dst []uint16, src []Codepoint) []uint16 {
	return transcode[Codepoint, uint16](c, UTF16, dst, src, false)
}

func (UTF32Codec) ToUTF32(dst []Codepoint, src []Codepoint) []Codepoint {
	return append(dst, src...)
}

func (c UTF32Codec) ToUTF8Lenient(dst []byte, src []Codepoint) []byte {
	return transcode[Codepoint, byte](c, UTF8, dst, src, true)
}

func (c UTF32Codec) ToUTF16Lenient(dst []uint16, src []Codepoint) []uint16 {
	return transcode[Codepoint, uint16](c, UTF16, dst, src, true)
}

func (UTF32Codec) ToUTF32Lenient(dst []Codepoint, src []Codepoint) []Codepoint {
	return append(dst, src...)
}

// Read reads all of r as 32-bit units in the given order. A stream whose
// size is not a multiple of 4 is zero padded to the next unit.
// ByteOrderNone is rejected with ErrByteOrderRequired.
func (c UTF32Codec) Read(r io.ReadSeeker, order ByteOrder) ([]Codepoint, error) {
	return readUnits[Codepoint](c, r, 0, order)
}

func (c UTF32Codec) Write(w io.Writer, src []Codepoint, order ByteOrder) (int, error) {
	return writeUnits[Codepoint](c, w, src, order)
}

// WriteBOM writes the UTF-32 byte order mark for order. Nothing is
// written for ByteOrderNone.
func (UTF32Codec) WriteBOM(w io.Writer, order ByteOrder) error {
	return writeBOM(w, BOM(FormatUTF32, order))
}

func (c UTF32Codec) ValidSequence(src []Codepoint) int {
	return validSequence[Codepoint](c, src)
}

func (UTF32Codec) width(src []Codepoint) int {
	return min(1, len(src))
}

func (UTF32Codec) widthBack(src []Codepoint) int {
	return min(1, len(src))
}

func (UTF32Codec) unmarshal(b []byte, order ByteOrder) []Codepoint {
	units := make([]Codepoint, len(b)/4)
	for i := range units {
		units[i] = Codepoint(order.Uint32(b[4*i:]))
	}
	return units
}

func (UTF32Codec) marshal(dst []byte, src []Codepoint, order ByteOrder) []byte {
	for _, u := range src {
		dst = order.AppendUint32(dst, uint32(u))
	}
	return dst
}
