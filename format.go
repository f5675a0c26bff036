package utfconv

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// ByteOrder is the order in which the bytes of a multi-byte code unit
// appear in a stream. ByteOrderNone is used for UTF-8, where the order
// does not matter.
type ByteOrder int

const (
	ByteOrderNone ByteOrder = iota
	BigEndian
	LittleEndian
)

// DefaultByteOrder is used by WriteFile when a UTF-16 or UTF-32 target
// is requested without a byte order.
const DefaultByteOrder = BigEndian

func (o ByteOrder) String() string {
	switch o {
	case ByteOrderNone:
		return "none"
	case BigEndian:
		return "big"
	case LittleEndian:
		return "little"
	}
	return fmt.Sprintf("ByteOrder(%d)", int(o))
}

// ParseByteOrder accepts "big"/"be", "little"/"le" and "none" (or the
// empty string), in any case.
func ParseByteOrder(s string) (ByteOrder, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return ByteOrderNone, nil
	case "big", "be", "bigendian", "big-endian":
		return BigEndian, nil
	case "little", "le", "littleendian", "little-endian":
		return LittleEndian, nil
	}
	return ByteOrderNone, fmt.Errorf("%q: %w", s, ErrUnknownOrder)
}

func (o ByteOrder) binary() binary.ByteOrder {
	if o == LittleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// AppendUint16 appends v to b in byte order o. ByteOrderNone is
// treated as big endian.
func (o ByteOrder) AppendUint16(b []byte, v uint16) []byte {
	if o == LittleEndian {
		return binary.LittleEndian.AppendUint16(b, v)
	}
	return binary.BigEndian.AppendUint16(b, v)
}

func (o ByteOrder) Uint16(b []byte) uint16 {
	return o.binary().Uint16(b)
}

// AppendUint32 appends v to b in byte order o. ByteOrderNone is
// treated as big endian.
func (o ByteOrder) AppendUint32(b []byte, v uint32) []byte {
	if o == LittleEndian {
		return binary.LittleEndian.AppendUint32(b, v)
	}
	return binary.BigEndian.AppendUint32(b, v)
}

func (o ByteOrder) Uint32(b []byte) uint32 {
	return o.binary().Uint32(b)
}

// Format identifies one of the Unicode encoding forms. The zero value,
// FormatUnknown, is what Detect reports for a stream without a byte
// order mark; it is read as UTF-8.
type Format int

const (
	FormatUnknown Format = iota
	FormatUTF8
	FormatUTF16
	FormatUTF32
)

func (f Format) String() string {
	switch f {
	case FormatUnknown:
		return "unknown"
	case FormatUTF8:
		return "utf8"
	case FormatUTF16:
		return "utf16"
	case FormatUTF32:
		return "utf32"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat accepts the format names "utf8", "utf16" and "utf32", with
// or without a dash, in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "utf8", "utf-8":
		return FormatUTF8, nil
	case "utf16", "utf-16":
		return FormatUTF16, nil
	case "utf32", "utf-32":
		return FormatUTF32, nil
	}
	return FormatUnknown, fmt.Errorf("%q: %w", s, ErrUnknownFormat)
}

// UnitSize returns the number of bytes in one code unit of f.
func (f Format) UnitSize() int {
	switch f {
	case FormatUTF16:
		return 2
	case FormatUTF32:
		return 4
	}
	return 1
}

// Encoding describes how a stream is encoded: its format, its byte order,
// and how many leading bytes the byte order mark occupies (0 when there
// is none).
type Encoding struct {
	Format    Format
	Order     ByteOrder
	BOMLength int
}

func (e Encoding) String() string {
	if e.Order == ByteOrderNone {
		return e.Format.String()
	}
	return e.Format.String() + "-" + e.Order.String()
}

var (
	bomUTF8    = [...]byte{0xEF, 0xBB, 0xBF}
	bomUTF16BE = [...]byte{0xFE, 0xFF}
	bomUTF16LE = [...]byte{0xFF, 0xFE}
	bomUTF32BE = [...]byte{0x00, 0x00, 0xFE, 0xFF}
	bomUTF32LE = [...]byte{0xFF, 0xFE, 0x00, 0x00}
)

// BOM returns a copy of the byte order mark for the given format and
// byte order. UTF-8 has a single mark regardless of order. UTF-16 and
// UTF-32 have no mark for ByteOrderNone, and neither does FormatUnknown.
func BOM(f Format, o ByteOrder) []byte {
	var b []byte
	switch f {
	case FormatUTF8:
		b = bomUTF8[:]
	case FormatUTF16:
		switch o {
		case BigEndian:
			b = bomUTF16BE[:]
		case LittleEndian:
			b = bomUTF16LE[:]
		}
	case FormatUTF32:
		switch o {
		case BigEndian:
			b = bomUTF32BE[:]
		case LittleEndian:
			b = bomUTF32LE[:]
		}
	}
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}
