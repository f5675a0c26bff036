package encoding_test

import (
	"bytes"
	"io"
	"testing"
	"testing/iotest"

	"github.com/lestrrat-go/utfconv"
	"github.com/lestrrat-go/utfconv/encoding"
	"github.com/stretchr/testify/require"
	enc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"
)

var samples = []string{
	"",
	"hello, world",
	"héllo wörld",
	"€100 \U0001D11E \U0001F600",
	"日本語のテキスト",
}

func TestMatchesXText(t *testing.T) {
	reference := map[string]enc.Encoding{
		"utf16be": unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
		"utf16le": unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
		"utf32be": utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM),
		"utf32le": utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM),
		"utf8":    unicode.UTF8,
	}

	for name, ref := range reference {
		t.Run(name, func(t *testing.T) {
			e := encoding.Load(name)
			require.NotNil(t, e, "Load(%q)", name)

			for _, s := range samples {
				expected, err := ref.NewEncoder().String(s)
				require.NoError(t, err)

				encoded, err := e.NewEncoder().String(s)
				require.NoError(t, err)
				require.Equal(t, expected, encoded, "encoding %q", s)

				decoded, err := e.NewDecoder().String(expected)
				require.NoError(t, err)
				require.Equal(t, s, decoded, "decoding %q", s)
			}
		})
	}
}

func TestStreaming(t *testing.T) {
	const text = "€100 \U0001D11E héllo"

	for _, name := range []string{"utf8", "utf16le", "utf16be", "utf32le", "utf32be"} {
		t.Run(name, func(t *testing.T) {
			e := encoding.Load(name)
			encoded, err := e.NewEncoder().Bytes([]byte(text))
			require.NoError(t, err)

			// one byte at a time exercises the short source paths
			r := transform.NewReader(iotest.OneByteReader(bytes.NewReader(encoded)), e.NewDecoder())
			decoded, err := io.ReadAll(r)
			require.NoError(t, err)
			require.Equal(t, text, string(decoded))

			r = transform.NewReader(iotest.OneByteReader(bytes.NewReader([]byte(text))), e.NewEncoder())
			reencoded, err := io.ReadAll(r)
			require.NoError(t, err)
			require.Equal(t, encoded, reencoded)
		})
	}
}

func TestByteOrderMark(t *testing.T) {
	t.Run("encoder writes the mark", func(t *testing.T) {
		out, err := encoding.Load("utf-16").NewEncoder().Bytes([]byte("A"))
		require.NoError(t, err)
		require.Equal(t, []byte{0xFE, 0xFF, 0x00, 0x41}, out)

		out, err = encoding.New(utfconv.FormatUTF8, utfconv.ByteOrderNone).WithBOM().NewEncoder().Bytes([]byte("A"))
		require.NoError(t, err)
		require.Equal(t, []byte{0xEF, 0xBB, 0xBF, 0x41}, out)
	})
	t.Run("decoder follows the mark", func(t *testing.T) {
		d := encoding.Load("utf-16").NewDecoder()
		out, err := d.Bytes([]byte{0xFF, 0xFE, 0x41, 0x00})
		require.NoError(t, err)
		require.Equal(t, "A", string(out))

		// the decoder is reset between calls
		out, err = d.Bytes([]byte{0x00, 0x41})
		require.NoError(t, err)
		require.Equal(t, "A", string(out), "big endian without a mark")

		out, err = encoding.Load("ucs-4").NewDecoder().Bytes([]byte{0xFF, 0xFE, 0x00, 0x00, 0x41, 0x00, 0x00, 0x00})
		require.NoError(t, err)
		require.Equal(t, "A", string(out))
	})
	t.Run("fixed order keeps the mark", func(t *testing.T) {
		out, err := encoding.Load("utf-16le").NewDecoder().Bytes([]byte{0xFF, 0xFE, 0x41, 0x00})
		require.NoError(t, err)
		require.Equal(t, "\ufeffA", string(out))
	})
	t.Run("detected encoding", func(t *testing.T) {
		input := []byte{0xFF, 0xFE, 0x41, 0x00, 0x42, 0x00}
		detected := utfconv.DetectBytes(input)

		e := encoding.ForEncoding(detected)
		require.Equal(t, utfconv.FormatUTF16, e.Format())
		require.Equal(t, utfconv.LittleEndian, e.Order())
		require.Equal(t, "utf16-little (bom)", e.String())

		out, err := e.NewDecoder().Bytes(input)
		require.NoError(t, err)
		require.Equal(t, "AB", string(out))
	})
}

func TestIllFormed(t *testing.T) {
	testcases := []struct {
		name     string
		encoding string
		input    []byte
		expected string
	}{
		{"lone high surrogate at the end", "utf16le", []byte{0x41, 0x00, 0x00, 0xD8}, "A�"},
		{"lone low surrogate", "utf16be", []byte{0xDC, 0x00, 0x00, 0x41}, "�A"},
		{"high surrogate before a non-surrogate", "utf16be", []byte{0xD8, 0x00, 0x00, 0x41}, "�A"},
		{"odd byte at the end", "utf16be", []byte{0x00, 0x41, 0x00}, "A�"},
		{"utf32 surrogate", "utf32be", []byte{0x00, 0x00, 0xD8, 0x00}, "�"},
		{"utf32 above max", "utf32le", []byte{0x00, 0x00, 0x11, 0x00}, "�"},
		{"truncated utf32", "utf32le", []byte{0x41, 0x00, 0x00, 0x00, 0x42}, "A�"},
		{"overlong utf8", "utf8", []byte{0xC0, 0x80, 0x41}, "��A"},
		{"truncated utf8", "utf8", []byte{0x41, 0xE2, 0x82}, "A�"},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := encoding.Load(tc.encoding).NewDecoder().Bytes(tc.input)
			require.NoError(t, err)
			require.Equal(t, tc.expected, string(out))
		})
	}
}

func TestLoad(t *testing.T) {
	for _, name := range []string{"UTF-8", "utf-16", "UTF-16BE", "utf-16le", "UTF-32", "ucs4", "ucs-4be", "utf32le"} {
		require.NotNil(t, encoding.Load(name), "Load(%q)", name)
	}
	require.Nil(t, encoding.Load("iso-8859-1"))
	require.Nil(t, encoding.Load(""))

	e := encoding.New(utfconv.FormatUTF32, utfconv.ByteOrderNone)
	require.Equal(t, utfconv.BigEndian, e.Order(), "UTF-32 defaults to big endian")
	require.Equal(t, "utf32-big", e.String())

	e = encoding.New(utfconv.FormatUnknown, utfconv.LittleEndian)
	require.Equal(t, utfconv.FormatUTF8, e.Format())
	require.Equal(t, utfconv.ByteOrderNone, e.Order())
}
