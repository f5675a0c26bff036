package utfconv

import (
	"fmt"
	"io"

	"github.com/lestrrat-go/utfconv/internal/debug"
	"github.com/lestrrat-go/utfconv/internal/pool"
)

// readAll reads r from offset to its end with one bulk read. The result
// is zero padded to a multiple of unitSize.
func readAll(r io.ReadSeeker, offset int64, unitSize int) ([]byte, error) {
	end, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("utfconv: failed to seek to end of stream: %w", err)
	}
	if _, err := r.Seek(offset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("utfconv: failed to seek to offset %d: %w", offset, err)
	}

	size := max(end-offset, 0)
	padded := size
	if rem := size % int64(unitSize); rem != 0 {
		padded += int64(unitSize) - rem
	}

	buf := make([]byte, padded)
	if _, err := io.ReadFull(r, buf[:size]); err != nil {
		return nil, fmt.Errorf("utfconv: failed to read %d bytes: %w", size, err)
	}

	if debug.Enabled {
		debug.Printf("readAll: read %d bytes from offset %d (padded to %d)", size, offset, padded)
	}
	return buf, nil
}

func readUnits[U Unit](c codec[U], r io.ReadSeeker, offset int64, order ByteOrder) ([]U, error) {
	f := c.Format()
	if f != FormatUTF8 && order == ByteOrderNone {
		return nil, fmt.Errorf("utfconv: reading %s: %w", f, ErrByteOrderRequired)
	}

	b, err := readAll(r, offset, f.UnitSize())
	if err != nil {
		return nil, err
	}
	return c.unmarshal(b, order), nil
}

func writeUnits[U Unit](c codec[U], w io.Writer, src []U, order ByteOrder) (int, error) {
	f := c.Format()
	if f != FormatUTF8 && order == ByteOrderNone {
		return 0, fmt.Errorf("utfconv: writing %s: %w", f, ErrByteOrderRequired)
	}

	if b, ok := any(src).([]byte); ok {
		return w.Write(b)
	}

	size := f.UnitSize()
	buf := pool.ByteSlice().GetCapacity(len(src) * size)
	defer func() { pool.ByteSlice().Put(buf) }()

	buf = c.marshal(buf, src, order)
	n, err := w.Write(buf)
	if debug.Enabled {
		debug.Printf("writeUnits: wrote %d of %d bytes (%s, %s)", n, len(buf), f, order)
	}
	return n / size, err
}

func writeBOM(w io.Writer, bom []byte) error {
	if len(bom) == 0 {
		return nil
	}
	if _, err := w.Write(bom); err != nil {
		return fmt.Errorf("utfconv: failed to write byte order mark: %w", err)
	}
	return nil
}
