package utfconv

import "io"

// UTF16Codec encodes code points as one 16-bit unit, or as a surrogate
// pair for code points above U+FFFF.
type UTF16Codec struct{}

// UTF16 is the UTF-16 codec.
var UTF16 UTF16Codec

func combineSurrogates(hi, lo uint16) Codepoint {
	return Codepoint((uint32(hi)-surrogateMin)<<10+(uint32(lo)-lowSurrogateMin)) + surrogateSelf
}

func (UTF16Codec) Format() Format {
	return FormatUTF16
}

func (c UTF16Codec) Decode(src []uint16) (Codepoint, int) {
	cp, n, _ := c.decode(src)
	return cp, n
}

// decode rejects unpaired surrogates one unit at a time, so a high
// surrogate followed by anything but a low surrogate leaves the
// following unit to be decoded on its own.
func (UTF16Codec) decode(src []uint16) (Codepoint, int, bool) {
	if len(src) == 0 {
		return ReplacementCharacter, 0, false
	}

	u := uint32(src[0])
	switch {
	case IsHighSurrogate(u):
		if len(src) > 1 && IsLowSurrogate(uint32(src[1])) {
			return combineSurrogates(src[0], src[1]), 2, true
		}
		return ReplacementCharacter, 1, false
	case IsLowSurrogate(u):
		return ReplacementCharacter, 1, false
	}
	return Codepoint(u), 1, true
}

// DecodeLenient combines a high surrogate with the unit after it without
// looking at that unit.
func (UTF16Codec) DecodeLenient(src []uint16) (Codepoint, int) {
	if len(src) == 0 {
		return ReplacementCharacter, 0
	}

	if IsHighSurrogate(uint32(src[0])) {
		if len(src) < 2 {
			return ReplacementCharacter, 1
		}
		return combineSurrogates(src[0], src[1]), 2
	}
	return Codepoint(src[0]), 1
}

// Encode appends the UTF-16 form of cp to dst. Values that are not
// scalar values are encoded as ReplacementCharacter.
func (UTF16Codec) Encode(dst []uint16, cp Codepoint) []uint16 {
	if !cp.IsValid() {
		cp = ReplacementCharacter
	}
	if cp < surrogateSelf {
		return append(dst, uint16(cp))
	}
	cp -= surrogateSelf
	return append(dst, uint16(cp>>10)+surrogateMin, uint16(cp&0x3FF)+lowSurrogateMin)
}

func (c UTF16Codec) Length(src []uint16) int {
	return length[uint16](c, src)
}

func (c UTF16Codec) ToUTF8(dst []byte, src []uint16) []byte {
	return transcode[uint16, byte](c, UTF8, dst, src, false)
}

func (UTF16Codec) ToUTF16(dst []uint16, src []uint16) []uint16 {
	return append(dst, src...)
}

func (c UTF16Codec) ToUTF32(dst []Codepoint, src []uint16) []Codepoint {
	return transcode[uint16, Codepoint](c, UTF32, dst, src, false)
}

func (c UTF16Codec) ToUTF8Lenient(dst []byte, src []uint16) []byte {
	return transcode[uint16, byte](c, UTF8, dst, src, true)
}

func (UTF16Codec) ToUTF16Lenient(dst []uint16, src []uint16) []uint16 {
	return append(dst, src...)
}

func (c UTF16Codec) ToUTF32Lenient(dst []Codepoint, src []uint16) []Codepoint {
	return transcode[uint16, Codepoint](c, UTF32, dst, src, true)
}

// Read reads all of r as 16-bit units in the given order. A stream with
// an odd number of bytes is padded with a zero byte. ByteOrderNone is
// rejected with ErrByteOrderRequired.
func (c UTF16Codec) Read(r io.ReadSeeker, order ByteOrder) ([]uint16, error) {
	return readUnits[uint16](c, r, 0, order)
}

func (c UTF16Codec) Write(w io.Writer, src []uint16, order ByteOrder) (int, error) {
	return writeUnits[uint16](c, w, src, order)
}

// WriteBOM writes the UTF-16 byte order mark for order. Nothing is
// written for ByteOrderNone.
func (UTF16Codec) WriteBOM(w io.Writer, order ByteOrder) error {
	return writeBOM(w, BOM(FormatUTF16, order))
}

func (c UTF16Codec) ValidSequence(src []uint16) int {
	return validSequence[uint16](c, src)
}

func (UTF16Codec) width(src []uint16) int {
	if len(src) > 1 && IsHighSurrogate(uint32(src[0])) {
		return 2
	}
	return min(1, len(src))
}

func (UTF16Codec) widthBack(src []uint16) int {
	n := len(src)
	if n > 1 && IsLowSurrogate(uint32(src[n-1])) && IsHighSurrogate(uint32(src[n-2])) {
		return 2
	}
	return min(1, n)
}

func (UTF16Codec) unmarshal(b []byte, order ByteOrder) []uint16 {
	units := make([]uint16, len(b)/2)
	for i := range units {
		units[i] = order.Uint16(b[2*i:])
	}
	return units
}

func (UTF16Codec) marshal(dst []byte, src []uint16, order ByteOrder) []byte {
	for _, u := range src {
		dst = order.AppendUint16(dst, u)
	}
	return dst
}
