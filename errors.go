package utfconv

import (
	"errors"
	"fmt"
)

var (
	// ErrByteOrderRequired is returned when UTF-16 or UTF-32 units are
	// read or written with ByteOrderNone.
	ErrByteOrderRequired = errors.New("byte order required")
	// ErrWidthMismatch is returned by Iterator.Set when the new code point
	// does not encode to the same number of units as the one it replaces.
	ErrWidthMismatch = errors.New("encoded width differs from the sequence being replaced")
	ErrIteratorDone  = errors.New("iterator is at the end of its buffer")
	ErrUnknownFormat = errors.New("unknown encoding format")
	ErrUnknownOrder  = errors.New("unknown byte order")
)

// MalformedError reports the first ill-formed sequence found by Validate
// or ValidateFile.
type MalformedError struct {
	Encoding Encoding
	// Offset is the index of the offending sequence, in units, from the
	// start of the text (after any byte order mark).
	Offset int
	// ByteOffset is the position of the sequence in the original bytes,
	// byte order mark included.
	ByteOffset int64
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf(
		"malformed %s sequence at unit %d (byte offset %d)",
		e.Encoding.Format,
		e.Offset,
		e.ByteOffset,
	)
}
