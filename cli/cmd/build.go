package cmd

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/ardnew/worldc/log"
	"github.com/ardnew/worldc/scene"
)

// defaultIndent is the indentation width of encoded documents.
const defaultIndent = 2

// Build compiles world scripts and writes the world document.
type Build struct {
	ScriptFlags

	Format string `default:"${formatDefault}" enum:"${formatEnum}" help:"Document encoding." short:"f"`
	Output string `default:"-"                                     help:"Output file or '-' for stdout." short:"o"`
	Indent int    `default:"2"                                     help:"Indentation width."`
}

// Run executes the build command.
func (b *Build) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	format, err := scene.ParseFormat(b.Format)
	if err != nil {
		return err
	}

	doc, err := b.compile(ctx)
	if err != nil {
		return err
	}

	indent := b.Indent
	if indent <= 0 {
		indent = defaultIndent
	}

	var buf bytes.Buffer

	if err := scene.Encode(ctx, &buf, doc, format, indent); err != nil {
		return err
	}

	if err := b.write(ctx, buf.Bytes()); err != nil {
		return ErrWriteOutput.With(slog.String("output", b.Output)).Wrap(err)
	}

	log.DebugContext(ctx, "wrote document",
		slog.String("format", format.String()),
		slog.String("output", b.Output),
		slog.Int("bytes", buf.Len()),
	)

	return nil
}

func (b *Build) write(ctx context.Context, data []byte) (err error) {
	if b.Output == "" || b.Output == stdio {
		_, err = stdoutFrom(ctx).Write(data)

		return err
	}

	file, err := os.Create(b.Output)
	if err != nil {
		return err
	}

	return writeClose(file, data)
}

// writeClose writes data to w and closes it, reporting the first error.
func writeClose(w io.WriteCloser, data []byte) (err error) {
	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}()

	_, err = w.Write(data)

	return err
}
