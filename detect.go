package utfconv

import (
	"bytes"
	"fmt"
	"io"

	"github.com/lestrrat-go/utfconv/internal/debug"
)

// maxBOMLength is the number of bytes Detect needs to see to recognize
// any byte order mark.
const maxBOMLength = 4

// bomPatterns lists the recognized marks in match order. The 4-byte
// UTF-32 marks come first because the UTF-32LE mark begins with the
// UTF-16LE one.
var bomPatterns = [...]struct {
	pattern []byte
	enc     Encoding
}{
	{bomUTF32BE[:], Encoding{Format: FormatUTF32, Order: BigEndian, BOMLength: len(bomUTF32BE)}},
	{bomUTF32LE[:], Encoding{Format: FormatUTF32, Order: LittleEndian, BOMLength: len(bomUTF32LE)}},
	{bomUTF16BE[:], Encoding{Format: FormatUTF16, Order: BigEndian, BOMLength: len(bomUTF16BE)}},
	{bomUTF16LE[:], Encoding{Format: FormatUTF16, Order: LittleEndian, BOMLength: len(bomUTF16LE)}},
	{bomUTF8[:], Encoding{Format: FormatUTF8, Order: ByteOrderNone, BOMLength: len(bomUTF8)}},
}

// DetectBytes classifies b by its leading byte order mark. Input without
// a recognized mark is reported as FormatUnknown with ByteOrderNone.
func DetectBytes(b []byte) Encoding {
	if debug.Enabled {
		debug.Printf("START DetectBytes (%d bytes)", len(b))
		defer debug.Printf("END   DetectBytes")
	}

	for _, p := range bomPatterns {
		if bytes.HasPrefix(b, p.pattern) {
			if debug.Enabled {
				debug.Printf("matched BOM % x -> %s", p.pattern, p.enc)
				debug.Dump(p.enc)
			}
			return p.enc
		}
	}
	return Encoding{}
}

// Detect peeks at the first bytes of r and classifies the stream the way
// DetectBytes does. The mark is looked for at the start of the stream,
// wherever r is positioned, since that is where ReadFile and the codecs'
// Read start too. The position of r is restored before returning.
func Detect(r io.ReadSeeker) (Encoding, error) {
	pos, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return Encoding{}, fmt.Errorf("utfconv: failed to query stream position: %w", err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return Encoding{}, fmt.Errorf("utfconv: failed to seek to start of stream: %w", err)
	}

	var buf [maxBOMLength]byte
	n, err := io.ReadFull(r, buf[:])
	switch err {
	case nil, io.EOF, io.ErrUnexpectedEOF:
	default:
		return Encoding{}, fmt.Errorf("utfconv: failed to read byte order mark: %w", err)
	}

	if _, err := r.Seek(pos, io.SeekStart); err != nil {
		return Encoding{}, fmt.Errorf("utfconv: failed to rewind stream: %w", err)
	}
	return DetectBytes(buf[:n]), nil
}
