package utfconv

import "fmt"

// Codepoint is a Unicode scalar value. Values produced by a strict decoder
// are always valid; ReplacementCharacter marks the position of an
// ill-formed sequence.
type Codepoint uint32

const (
	// ReplacementCharacter is U+FFFD, substituted for anything that
	// could not be decoded.
	ReplacementCharacter Codepoint = 0xFFFD
	// MaxCodepoint is the largest Unicode scalar value.
	MaxCodepoint Codepoint = 0x10FFFF

	surrogateMin     = 0xD800
	surrogateMax     = 0xDFFF
	highSurrogateMax = 0xDBFF
	lowSurrogateMin  = 0xDC00
	surrogateSelf    = 0x10000
)

// IsValid reports whether v is a Unicode scalar value: in the range
// 0..0x10FFFF and outside the surrogate range 0xD800..0xDFFF.
func IsValid(v uint32) bool {
	return v <= uint32(MaxCodepoint) && (v < surrogateMin || v > surrogateMax)
}

func (c Codepoint) IsValid() bool {
	return IsValid(uint32(c))
}

func (c Codepoint) String() string {
	return fmt.Sprintf("U+%04X", uint32(c))
}

func IsHighSurrogate(v uint32) bool {
	return v >= surrogateMin && v <= highSurrogateMax
}

func IsLowSurrogate(v uint32) bool {
	return v >= lowSurrogateMin && v <= surrogateMax
}
