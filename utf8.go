package utfconv

import "io"

// UTF8Codec encodes code points as 1 to 4 bytes.
type UTF8Codec struct{}

// UTF8 is the UTF-8 codec.
var UTF8 UTF8Codec

// trailingBytes maps a leading byte to the number of continuation bytes
// that follow it. 4 and 5 belong to the obsolete 5 and 6 byte forms and
// are always rejected.
var trailingBytes = [256]uint8{
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 3, 3, 3, 3, 3, 3, 3, 3, 4, 4, 4, 4, 5, 5, 5, 5,
}

// utf8Offsets removes the marker bits that accumulate when the bytes of
// a sequence are summed with 6 bit shifts.
var utf8Offsets = [4]Codepoint{0x00000000, 0x00003080, 0x000E2080, 0x03C82080}

// utf8Firsts are the marker bits of a leading byte, by sequence length - 1.
var utf8Firsts = [4]byte{0x00, 0xC0, 0xE0, 0xF0}

// secondByteRange returns the bounds of the byte following b0 in a
// well-formed sequence (Unicode Table 3-7). The narrowed ranges exclude
// overlong forms, surrogates and values above U+10FFFF.
func secondByteRange(b0 byte) (byte, byte) {
	switch b0 {
	case 0xE0:
		return 0xA0, 0xBF
	case 0xED:
		return 0x80, 0x9F
	case 0xF0:
		return 0x90, 0xBF
	case 0xF4:
		return 0x80, 0x8F
	}
	return 0x80, 0xBF
}

func isContinuation(b byte) bool {
	return b&0xC0 == 0x80
}

func (UTF8Codec) Format() Format {
	return FormatUTF8
}

func (c UTF8Codec) Decode(src []byte) (Codepoint, int) {
	cp, n, _ := c.decode(src)
	return cp, n
}

// decode consumes the maximal subpart of an ill-formed sequence: the
// leading byte and every continuation byte that was still acceptable.
// A sequence cut short by the end of src consumes the rest of src.
func (UTF8Codec) decode(src []byte) (Codepoint, int, bool) {
	if len(src) == 0 {
		return ReplacementCharacter, 0, false
	}

	b0 := src[0]
	extra := int(trailingBytes[b0])
	switch {
	case extra == 0:
		if b0 < 0x80 {
			return Codepoint(b0), 1, true
		}
		// stray continuation byte
		return ReplacementCharacter, 1, false
	case extra > 3, extra == 1 && b0 < 0xC2, extra == 3 && b0 > 0xF4:
		return ReplacementCharacter, 1, false
	}

	cp := Codepoint(b0)
	lo, hi := secondByteRange(b0)
	for i := 1; i <= extra; i++ {
		if i == len(src) {
			return ReplacementCharacter, len(src), false
		}
		b := src[i]
		if b < lo || b > hi {
			return ReplacementCharacter, i, false
		}
		cp = cp<<6 + Codepoint(b)
		lo, hi = 0x80, 0xBF
	}
	return cp - utf8Offsets[extra], extra + 1, true
}

func (UTF8Codec) DecodeLenient(src []byte) (Codepoint, int) {
	if len(src) == 0 {
		return ReplacementCharacter, 0
	}

	extra := int(trailingBytes[src[0]])
	if extra > 3 {
		return ReplacementCharacter, 1
	}
	if len(src) <= extra {
		return ReplacementCharacter, len(src)
	}

	var cp Codepoint
	var i int
	switch extra {
	case 3:
		cp += Codepoint(src[i])
		cp <<= 6
		i++
		fallthrough
	case 2:
		cp += Codepoint(src[i])
		cp <<= 6
		i++
		fallthrough
	case 1:
		cp += Codepoint(src[i])
		cp <<= 6
		i++
		fallthrough
	case 0:
		cp += Codepoint(src[i])
		i++
	}
	return cp - utf8Offsets[extra], i
}

func utf8Len(cp Codepoint) int {
	switch {
	case cp < 0x80:
		return 1
	case cp < 0x800:
		return 2
	case cp < 0x10000:
		return 3
	}
	return 4
}

// Encode appends the UTF-8 form of cp to dst. Values that are not
// scalar values are encoded as ReplacementCharacter.
func (UTF8Codec) Encode(dst []byte, cp Codepoint) []byte {
	if !cp.IsValid() {
		cp = ReplacementCharacter
	}

	n := utf8Len(cp)
	var buf [4]byte
	switch n {
	case 4:
		buf[3] = byte(cp|0x80) & 0xBF
		cp >>= 6
		fallthrough
	case 3:
		buf[2] = byte(cp|0x80) & 0xBF
		cp >>= 6
		fallthrough
	case 2:
		buf[1] = byte(cp|0x80) & 0xBF
		cp >>= 6
		fallthrough
	case 1:
		buf[0] = byte(cp) | utf8Firsts[n-1]
	}
	return append(dst, buf[:n]...)
}

func (c UTF8Codec) Length(src []byte) int {
	return length[byte](c, src)
}

func (UTF8Codec) ToUTF8(dst []byte, src []byte) []byte {
	return append(dst, src...)
}

func (c UTF8Codec) ToUTF16(dst []uint16, src []byte) []uint16 {
	return transcode[byte, uint16](c, UTF16, dst, src, false)
}

func (c UTF8Codec) ToUTF32(dst []Codepoint, src []byte) []Codepoint {
	return transcode[byte, Codepoint](c, UTF32, dst, src, false)
}

func (UTF8Codec) ToUTF8Lenient(dst []byte, src []byte) []byte {
	return append(dst, src...)
}

func (c UTF8Codec) ToUTF16Lenient(dst []uint16, src []byte) []uint16 {
	return transcode[byte, uint16](c, UTF16, dst, src, true)
}

func (c UTF8Codec) ToUTF32Lenient(dst []Codepoint, src []byte) []Codepoint {
	return transcode[byte, Codepoint](c, UTF32, dst, src, true)
}

// Read reads all of r. The byte order is irrelevant for UTF-8 and is
// ignored.
func (c UTF8Codec) Read(r io.ReadSeeker, _ ByteOrder) ([]byte, error) {
	return readUnits[byte](c, r, 0, ByteOrderNone)
}

// Write writes src to w. The byte order is ignored.
func (c UTF8Codec) Write(w io.Writer, src []byte, _ ByteOrder) (int, error) {
	return writeUnits[byte](c, w, src, ByteOrderNone)
}

// WriteBOM writes the UTF-8 byte order mark, whatever order is given.
func (UTF8Codec) WriteBOM(w io.Writer, _ ByteOrder) error {
	return writeBOM(w, bomUTF8[:])
}

func (c UTF8Codec) ValidSequence(src []byte) int {
	return validSequence[byte](c, src)
}

// FullSequence reports whether src holds at least as many bytes as its
// leading byte announces. Bytes that cannot start a sequence count as
// complete.
func (UTF8Codec) FullSequence(src []byte) bool {
	if len(src) == 0 {
		return false
	}
	extra := int(trailingBytes[src[0]])
	return extra > 3 || len(src) > extra
}

// width stops at the first byte that is not a continuation byte, so a
// broken sequence never swallows the characters after it.
func (UTF8Codec) width(src []byte) int {
	if len(src) == 0 {
		return 0
	}
	extra := int(trailingBytes[src[0]])
	if extra > 3 {
		return 1
	}
	n := 1
	for n <= extra && n < len(src) && isContinuation(src[n]) {
		n++
	}
	return n
}

func (c UTF8Codec) widthBack(src []byte) int {
	if len(src) == 0 {
		return 0
	}
	i := len(src) - 1
	for j := 0; j < 3 && i > 0 && isContinuation(src[i]); j++ {
		i--
	}
	if n := len(src) - i; c.width(src[i:]) == n {
		return n
	}
	return 1
}

func (UTF8Codec) unmarshal(b []byte, _ ByteOrder) []byte {
	return b
}

func (UTF8Codec) marshal(dst []byte, src []byte, _ ByteOrder) []byte {
	return append(dst, src...)
}
