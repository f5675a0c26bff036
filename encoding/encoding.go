// Package encoding exposes the utfconv codecs as golang.org/x/text
// encodings, so that they can be plugged into anything that accepts an
// encoding.Encoding or a transform.Transformer. Part of the reason this
// exists is that names such as "unicode" clash with the stdlib, and it's
// rather easier if we just hide the x/text plumbing from utfconv.
//
// Decoders turn UTF-8, UTF-16 or UTF-32 bytes into UTF-8; encoders go the
// other way. Ill-formed input is replaced with U+FFFD, never reported as
// an error.
package encoding

import (
	"bytes"
	"strings"

	"github.com/lestrrat-go/utfconv"
	enc "golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// Encoding is one Unicode encoding form in a fixed byte order. It
// implements golang.org/x/text/encoding.Encoding.
type Encoding struct {
	format utfconv.Format
	order  utfconv.ByteOrder
	bom    bool
}

var _ enc.Encoding = Encoding{}

// New returns the encoding for format f in byte order o. UTF-16 and
// UTF-32 default to big endian when o is utfconv.ByteOrderNone, and
// utfconv.FormatUnknown is treated as UTF-8.
func New(f utfconv.Format, o utfconv.ByteOrder) Encoding {
	switch f {
	case utfconv.FormatUTF16, utfconv.FormatUTF32:
		if o == utfconv.ByteOrderNone {
			o = utfconv.BigEndian
		}
	default:
		f = utfconv.FormatUTF8
		o = utfconv.ByteOrderNone
	}
	return Encoding{format: f, order: o}
}

// WithBOM returns a copy of e whose encoder starts its output with a
// byte order mark, and whose decoder consumes a leading mark and, for
// UTF-16 and UTF-32, follows the byte order it announces.
func (e Encoding) WithBOM() Encoding {
	e.bom = true
	return e
}

func (e Encoding) Format() utfconv.Format {
	return e.format
}

func (e Encoding) Order() utfconv.ByteOrder {
	return e.order
}

func (e Encoding) String() string {
	var sb strings.Builder
	sb.WriteString(e.format.String())
	if e.order != utfconv.ByteOrderNone {
		sb.WriteByte('-')
		sb.WriteString(e.order.String())
	}
	if e.bom {
		sb.WriteString(" (bom)")
	}
	return sb.String()
}

func (e Encoding) NewDecoder() *enc.Decoder {
	return &enc.Decoder{Transformer: &decoder{
		format:  e.format,
		order:   e.order,
		initial: e.order,
		bom:     e.bom,
	}}
}

func (e Encoding) NewEncoder() *enc.Encoder {
	return &enc.Encoder{Transformer: &encoder{
		format: e.format,
		order:  e.order,
		bom:    e.bom,
	}}
}

// Load returns the encoding registered under name, or nil. Names are
// matched case-insensitively. The byte-order-neutral names ("utf-16",
// "utf-32") honor a leading byte order mark and default to big endian.
func Load(name string) enc.Encoding {
	switch strings.ToLower(name) {
	case "utf8", "utf-8":
		return New(utfconv.FormatUTF8, utfconv.ByteOrderNone)
	case "utf16", "utf-16":
		return New(utfconv.FormatUTF16, utfconv.BigEndian).WithBOM()
	case "utf16be", "utf-16be":
		return New(utfconv.FormatUTF16, utfconv.BigEndian)
	case "utf16le", "utf-16le":
		return New(utfconv.FormatUTF16, utfconv.LittleEndian)
	case "utf32", "utf-32", "ucs4", "ucs-4":
		return New(utfconv.FormatUTF32, utfconv.BigEndian).WithBOM()
	case "utf32be", "utf-32be", "ucs4be", "ucs-4be":
		return New(utfconv.FormatUTF32, utfconv.BigEndian)
	case "utf32le", "utf-32le", "ucs4le", "ucs-4le":
		return New(utfconv.FormatUTF32, utfconv.LittleEndian)
	}
	return nil
}

// ForEncoding returns the encoding matching a detected stream encoding.
func ForEncoding(e utfconv.Encoding) Encoding {
	x := New(e.Format, e.Order)
	if e.BOMLength > 0 {
		x = x.WithBOM()
	}
	return x
}

type decoder struct {
	format  utfconv.Format
	order   utfconv.ByteOrder
	initial utfconv.ByteOrder
	bom     bool
	started bool
}

func (d *decoder) Reset() {
	d.order = d.initial
	d.started = false
}

func (d *decoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	if d.bom && !d.started {
		n, ok := d.consumeBOM(src, atEOF)
		if !ok {
			return 0, 0, transform.ErrShortSrc
		}
		nSrc = n
		d.started = true
	}

	var buf [4]byte
	for nSrc < len(src) {
		cp, n, short := d.decodeOne(src[nSrc:], atEOF)
		if short {
			err = transform.ErrShortSrc
			break
		}
		out := utfconv.UTF8.Encode(buf[:0], cp)
		if nDst+len(out) > len(dst) {
			err = transform.ErrShortDst
			break
		}
		nDst += copy(dst[nDst:], out)
		nSrc += n
	}
	return nDst, nSrc, err
}

// consumeBOM returns the length of the byte order mark at the start of
// src, switching to the order it announces. ok is false when src is too
// short to decide.
func (d *decoder) consumeBOM(src []byte, atEOF bool) (n int, ok bool) {
	var partial bool
	for _, o := range []utfconv.ByteOrder{utfconv.BigEndian, utfconv.LittleEndian} {
		mark := utfconv.BOM(d.format, o)
		if bytes.HasPrefix(src, mark) {
			if d.format != utfconv.FormatUTF8 {
				d.order = o
			}
			return len(mark), true
		}
		if len(src) < len(mark) && bytes.HasPrefix(mark, src) {
			partial = true
		}
	}
	if partial && !atEOF {
		return 0, false
	}
	return 0, true
}

// decodeOne decodes the sequence at the start of src. short reports that
// more input is needed to decide.
func (d *decoder) decodeOne(src []byte, atEOF bool) (cp utfconv.Codepoint, n int, short bool) {
	switch d.format {
	case utfconv.FormatUTF16:
		if len(src) < 2 {
			if !atEOF {
				return 0, 0, true
			}
			return utfconv.ReplacementCharacter, len(src), false
		}
		units := [2]uint16{d.order.Uint16(src)}
		if !utfconv.IsHighSurrogate(uint32(units[0])) {
			cp, _ = utfconv.UTF16.Decode(units[:1])
			return cp, 2, false
		}
		if len(src) < 4 {
			if !atEOF {
				return 0, 0, true
			}
			return utfconv.ReplacementCharacter, 2, false
		}
		units[1] = d.order.Uint16(src[2:])
		cp, n = utfconv.UTF16.Decode(units[:])
		return cp, 2 * n, false
	case utfconv.FormatUTF32:
		if len(src) < 4 {
			if !atEOF {
				return 0, 0, true
			}
			return utfconv.ReplacementCharacter, len(src), false
		}
		unit := [1]utfconv.Codepoint{utfconv.Codepoint(d.order.Uint32(src))}
		cp, _ = utfconv.UTF32.Decode(unit[:])
		return cp, 4, false
	}

	if !atEOF && !utfconv.UTF8.FullSequence(src) {
		return 0, 0, true
	}
	cp, n = utfconv.UTF8.Decode(src)
	return cp, n, false
}

type encoder struct {
	format  utfconv.Format
	order   utfconv.ByteOrder
	bom     bool
	started bool
}

func (e *encoder) Reset() {
	e.started = false
}

func (e *encoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	if e.bom && !e.started {
		mark := utfconv.BOM(e.format, e.order)
		if len(dst) < len(mark) {
			return 0, 0, transform.ErrShortDst
		}
		nDst = copy(dst, mark)
		e.started = true
	}

	var buf [4]byte
	for nSrc < len(src) {
		if !atEOF && !utfconv.UTF8.FullSequence(src[nSrc:]) {
			err = transform.ErrShortSrc
			break
		}
		cp, n := utfconv.UTF8.Decode(src[nSrc:])
		out := e.appendUnits(buf[:0], cp)
		if nDst+len(out) > len(dst) {
			err = transform.ErrShortDst
			break
		}
		nDst += copy(dst[nDst:], out)
		nSrc += n
	}
	return nDst, nSrc, err
}

func (e *encoder) appendUnits(b []byte, cp utfconv.Codepoint) []byte {
	switch e.format {
	case utfconv.FormatUTF16:
		var units [2]uint16
		for _, u := range utfconv.UTF16.Encode(units[:0], cp) {
			b = e.order.AppendUint16(b, u)
		}
		return b
	case utfconv.FormatUTF32:
		return e.order.AppendUint32(b, uint32(cp))
	}
	return utfconv.UTF8.Encode(b, cp)
}
