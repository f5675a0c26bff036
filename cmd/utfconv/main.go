package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/lestrrat-go/strcursor"
	"github.com/lestrrat-go/utfconv"
	"github.com/lestrrat-go/utfconv/encoding"
	"github.com/lestrrat-go/utfconv/internal/cliutil"
)

type cmdopts struct {
	To       string `long:"to" default:"utf8" description:"target encoding form (utf8, utf16, utf32)"`
	Order    string `long:"order" default:"big" description:"byte order of UTF-16/UTF-32 output (big, little)"`
	NoBOM    bool   `long:"no-bom" description:"do not write a byte order mark"`
	Output   string `short:"o" long:"output" description:"write to this file instead of stdout"`
	Detect   bool   `long:"detect" description:"only print the detected encoding"`
	Validate bool   `long:"validate" description:"only check that the input is well-formed"`
	Verbose  bool   `short:"v" long:"verbose" description:"log what is detected and written"`
	Version  bool   `long:"version"`
}

func main() {
	os.Exit(_main())
}

func _main() int {
	return run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

func showVersion(w io.Writer) {
	fmt.Fprintf(w, "utfconv: using utfconv version %s\n", utfconv.Version)
}

func showUsage(w io.Writer) {
	fmt.Fprintf(w, `Usage : utfconv [options] files ...
	Convert text between UTF-8, UTF-16 and UTF-32. The input encoding is
	detected from its byte order mark; input without one is read as UTF-8.
	--to       : target encoding form (utf8, utf16, utf32)
	--order    : byte order of UTF-16/UTF-32 output (big, little)
	--no-bom   : do not write a byte order mark
	--detect   : only print the detected encoding
	--validate : only check that the input is well-formed
	--version  : display the version of the library used
`)
}

type input struct {
	name string
	buf  []byte
}

// stdinHasInput reports whether r can be read as input: anything but a
// terminal.
func stdinHasInput(r io.Reader) bool {
	if r == nil {
		return false
	}
	if f, ok := r.(*os.File); ok {
		return !cliutil.IsTty(f.Fd())
	}
	return true
}

func run(argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts := cmdopts{}
	args, err := flags.ParseArgs(&opts, argv)
	if err != nil {
		showUsage(stderr)
		return 1
	}

	if opts.Version {
		showVersion(stdout)
		return 0
	}

	to, err := utfconv.ParseFormat(opts.To)
	if err != nil {
		fmt.Fprintf(stderr, "%s\n", err)
		return 1
	}
	order, err := utfconv.ParseByteOrder(opts.Order)
	if err != nil {
		fmt.Fprintf(stderr, "%s\n", err)
		return 1
	}

	ctx := context.Background()
	if opts.Verbose {
		ctx = utfconv.WithTraceLogger(ctx, slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	var inputs []input
	switch {
	case len(args) > 0: // filename present
		for _, f := range args {
			buf, err := os.ReadFile(f)
			if err != nil {
				fmt.Fprintf(stderr, "%s\n", err)
				return 1
			}
			inputs = append(inputs, input{name: f, buf: buf})
		}
	case stdinHasInput(stdin):
		buf, err := io.ReadAll(stdin)
		if err != nil {
			fmt.Fprintf(stderr, "%s\n", err)
			return 1
		}
		inputs = append(inputs, input{name: "-", buf: buf})
	default:
		showUsage(stderr)
		return 1
	}

	if opts.Output == "" {
		return process(ctx, stdout, stderr, inputs, opts, to, order)
	}

	fh, err := os.Create(opts.Output)
	if err != nil {
		fmt.Fprintf(stderr, "%s\n", err)
		return 1
	}
	status := process(ctx, fh, stderr, inputs, opts, to, order)
	if err := fh.Close(); err != nil {
		fmt.Fprintf(stderr, "%s: %s\n", opts.Output, err)
		return 1
	}
	return status
}

func process(ctx context.Context, out, stderr io.Writer, inputs []input, opts cmdopts, to utfconv.Format, order utfconv.ByteOrder) int {
	status := 0
	for _, in := range inputs {
		switch {
		case opts.Detect:
			fmt.Fprintf(out, "%s: %s\n", in.name, utfconv.DetectBytes(in.buf))
		case opts.Validate:
			if err := validate(ctx, out, in); err != nil {
				fmt.Fprintf(stderr, "%s\n", err)
				status = 1
			}
		default:
			if err := convert(ctx, out, in, to, order, !opts.NoBOM); err != nil {
				fmt.Fprintf(stderr, "%s: %s\n", in.name, err)
				return 1
			}
		}
	}
	return status
}

func validate(ctx context.Context, out io.Writer, in input) error {
	enc, err := utfconv.ValidateFile(ctx, bytes.NewReader(in.buf))
	var merr *utfconv.MalformedError
	if errors.As(err, &merr) {
		line, col := locate(in.buf, merr)
		return fmt.Errorf("%s: %w at line %d, column %d", in.name, err, line, col)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", in.name, err)
	}
	fmt.Fprintf(out, "%s: ok (%s)\n", in.name, enc)
	return nil
}

// locate converts the text preceding a malformed sequence to UTF-8 and
// walks it with a cursor to find the line and column the sequence is on.
func locate(buf []byte, merr *utfconv.MalformedError) (int, int) {
	enc := merr.Encoding
	prefix := buf[enc.BOMLength:merr.ByteOffset]
	u8, err := encoding.New(enc.Format, enc.Order).NewDecoder().Bytes(prefix)
	if err != nil {
		return 0, 0
	}

	cur := strcursor.NewRuneCursor(bytes.NewReader(u8))
	for !cur.Done() {
		if err := cur.Advance(1); err != nil {
			break
		}
	}
	return cur.LineNumber(), cur.Column()
}

func convert(ctx context.Context, out io.Writer, in input, to utfconv.Format, order utfconv.ByteOrder, bom bool) error {
	r := bytes.NewReader(in.buf)
	if !bom {
		// the transformer writes the units alone; the source encoding
		// still comes from the detected mark
		src := utfconv.DetectBytes(in.buf)
		dec := encoding.ForEncoding(src).NewDecoder()
		encd := encoding.New(to, order).NewEncoder()
		u8, err := dec.Bytes(in.buf)
		if err != nil {
			return err
		}
		b, err := encd.Bytes(u8)
		if err != nil {
			return err
		}
		_, err = out.Write(b)
		return err
	}

	switch to {
	case utfconv.FormatUTF16:
		text, _, err := utfconv.ReadFile[uint16](ctx, r)
		if err != nil {
			return err
		}
		return utfconv.WriteFile[uint16](ctx, out, text, order)
	case utfconv.FormatUTF32:
		text, _, err := utfconv.ReadFile[utfconv.Codepoint](ctx, r)
		if err != nil {
			return err
		}
		return utfconv.WriteFile[utfconv.Codepoint](ctx, out, text, order)
	}
	text, _, err := utfconv.ReadFile[byte](ctx, r)
	if err != nil {
		return err
	}
	return utfconv.WriteFile[byte](ctx, out, text, order)
}
