package utfconv

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// Convert re-encodes src, in the encoding form of S, into the encoding
// form of T. Ill-formed sequences become ReplacementCharacter.
// Converting to the same form returns a copy of src.
//
//	u16 := utfconv.Convert[uint16]([]byte("héllo"))
func Convert[T, S Unit](src []S) []T {
	return transcode(codecFor[S](), codecFor[T](), nil, src, false)
}

// ConvertLenient is Convert without validation of src. It must only be
// used on text that is known to be well-formed.
func ConvertLenient[T, S Unit](src []S) []T {
	return transcode(codecFor[S](), codecFor[T](), nil, src, true)
}

// Validate returns a *MalformedError describing the first ill-formed
// sequence in src, or nil if src is well-formed.
func Validate[U Unit](src []U) error {
	c := codecFor[U]()
	if i := c.ValidSequence(src); i < len(src) {
		f := c.Format()
		return &MalformedError{
			Encoding:   Encoding{Format: f},
			Offset:     i,
			ByteOffset: int64(i * f.UnitSize()),
		}
	}
	return nil
}

// ReadFile detects the encoding of r from its byte order mark, reads all
// of it from the start of the stream and converts the text to the
// encoding form of T. The byte order
// mark itself is not part of the result. A stream without a mark is read
// as UTF-8.
//
//	text, enc, err := utfconv.ReadFile[byte](ctx, f)
func ReadFile[T Unit](ctx context.Context, r io.ReadSeeker) ([]T, Encoding, error) {
	tlog := getTraceLogFromContext(ctx)

	enc, err := Detect(r)
	if err != nil {
		return nil, Encoding{}, err
	}
	tlog.Debug("detected encoding",
		slog.String("format", enc.Format.String()),
		slog.String("order", enc.Order.String()),
		slog.Int("bom", enc.BOMLength),
	)

	var out []T
	switch enc.Format {
	case FormatUTF32:
		out, err = readAs[T, Codepoint](r, enc)
	case FormatUTF16:
		out, err = readAs[T, uint16](r, enc)
	default:
		// no mark: assume UTF-8 (which covers ASCII)
		out, err = readAs[T, byte](r, enc)
	}
	if err != nil {
		return nil, enc, err
	}

	tlog.Debug("read text", slog.Int("units", len(out)))
	return out, enc, nil
}

func readAs[T, S Unit](r io.ReadSeeker, enc Encoding) ([]T, error) {
	units, err := readUnits(codecFor[S](), r, int64(enc.BOMLength), enc.Order)
	if err != nil {
		return nil, err
	}
	if same, ok := any(units).([]T); ok {
		return same, nil
	}
	return Convert[T](units), nil
}

// ValidateFile detects the encoding of r and checks that the text after
// the byte order mark is well-formed. The detected encoding is returned
// along with a *MalformedError for the first ill-formed sequence.
func ValidateFile(ctx context.Context, r io.ReadSeeker) (Encoding, error) {
	tlog := getTraceLogFromContext(ctx)

	enc, err := Detect(r)
	if err != nil {
		return Encoding{}, err
	}

	switch enc.Format {
	case FormatUTF32:
		err = validateAs[Codepoint](UTF32, r, enc)
	case FormatUTF16:
		err = validateAs[uint16](UTF16, r, enc)
	default:
		err = validateAs[byte](UTF8, r, enc)
	}
	if err != nil {
		tlog.Debug("validation failed", slog.String("error", err.Error()))
		return enc, err
	}
	return enc, nil
}

func validateAs[U Unit](c codec[U], r io.ReadSeeker, enc Encoding) error {
	units, err := readUnits(c, r, int64(enc.BOMLength), enc.Order)
	if err != nil {
		return err
	}
	if i := c.ValidSequence(units); i < len(units) {
		return &MalformedError{
			Encoding:   enc,
			Offset:     i,
			ByteOffset: int64(enc.BOMLength) + int64(i*c.Format().UnitSize()),
		}
	}
	return nil
}

// WriteFile converts src to the encoding form of T and writes it to w,
// preceded by the byte order mark. UTF-16 and UTF-32 output given
// ByteOrderNone is written in DefaultByteOrder. order is ignored for
// UTF-8, which always gets its 3 byte mark.
//
//	err := utfconv.WriteFile[uint16](ctx, f, []byte("text"), utfconv.LittleEndian)
func WriteFile[T, S Unit](ctx context.Context, w io.Writer, src []S, order ByteOrder) error {
	tlog := getTraceLogFromContext(ctx)

	to := codecFor[T]()
	if to.Format() != FormatUTF8 && order == ByteOrderNone {
		order = DefaultByteOrder
	}

	units, ok := any(src).([]T)
	if !ok {
		units = Convert[T](src)
	}

	if err := to.WriteBOM(w, order); err != nil {
		return err
	}
	n, err := to.Write(w, units, order)
	if err != nil {
		return fmt.Errorf("utfconv: failed to write %s text: %w", to.Format(), err)
	}
	if n != len(units) {
		return fmt.Errorf("utfconv: wrote %d of %d units: %w", n, len(units), io.ErrShortWrite)
	}

	tlog.Debug("wrote text",
		slog.String("format", to.Format().String()),
		slog.String("order", order.String()),
		slog.Int("units", n),
	)
	return nil
}
