package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/worldc/log"
	"github.com/ardnew/worldc/pkg"
	"github.com/ardnew/worldc/scene"
	"github.com/ardnew/worldc/script"
)

type (
	contextKey struct{}
	stdinKey   struct{}
)

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// WithStdin returns a new context.Context whose source "-" reads from r.
func WithStdin(ctx context.Context, r io.Reader) context.Context {
	return context.WithValue(ctx, stdinKey{}, r)
}

func stdinFrom(ctx context.Context) io.Reader {
	if r, ok := ctx.Value(stdinKey{}).(io.Reader); ok && r != nil {
		return r
	}

	return os.Stdin
}

// stdoutFrom returns the standard output configured on the kong application.
func stdoutFrom(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

// stdio names standard input as a source and standard output as a
// destination.
const stdio = "-"

type source struct {
	name string
	r    io.Reader
	c    io.Closer
}

// openSources opens every named source once. Paths naming the same file are
// read once, in order of first appearance; "-" is read last.
func openSources(paths []string, stdin io.Reader) (srcs []source, err error) {
	if len(paths) == 0 {
		paths = []string{stdio}
	}

	defer func() {
		if err != nil {
			closeSources(srcs)
			srcs = nil
		}
	}()

	var (
		seen     []os.FileInfo
		hasStdin bool
	)

	for _, path := range paths {
		if path == stdio {
			hasStdin = true

			continue
		}

		file, err := os.Open(path)
		if err != nil {
			return srcs, ErrOpenSource.With(slog.String("source", path)).Wrap(err)
		}

		info, err := file.Stat()
		if err != nil {
			_ = file.Close()

			return srcs, ErrOpenSource.With(slog.String("source", path)).Wrap(err)
		}

		if sameFileSeen(seen, info) {
			_ = file.Close()

			continue
		}

		seen = append(seen, info)
		srcs = append(srcs, source{name: path, r: file, c: file})
	}

	if hasStdin {
		srcs = append(srcs, source{name: stdio, r: stdin})
	}

	return srcs, nil
}

func sameFileSeen(seen []os.FileInfo, info os.FileInfo) bool {
	for _, s := range seen {
		if os.SameFile(s, info) {
			return true
		}
	}

	return false
}

func closeSources(srcs []source) {
	for _, s := range srcs {
		if s.c != nil {
			_ = s.c.Close()
		}
	}
}

// ScriptFlags are the inputs shared by the commands that compile world
// scripts.
type ScriptFlags struct {
	Sources []string           `arg:"" help:"World script file(s) or '-' for stdin." name:"source" optional:""`
	Define  map[string]float64 `       help:"Predefine a variable (name=value)."                    placeholder:"NAME=VALUE" short:"D"`
	Group   string             `       help:"Emit only objects in this group."                                               short:"g"`
}

func (f *ScriptFlags) options() []script.Option {
	opts := []script.Option{script.WithGroup(f.Group)}

	for name, v := range f.Define {
		opts = append(opts, script.WithVariable(name, v))
	}

	return opts
}

// compile loads every source into one compilation and assembles the document.
func (f *ScriptFlags) compile(ctx context.Context) (*scene.Document, error) {
	srcs, err := openSources(f.Sources, stdinFrom(ctx))
	if err != nil {
		return nil, err
	}
	defer closeSources(srcs)

	c := script.New(append(f.options(), script.WithLogger(log.Default()))...)

	for _, src := range srcs {
		data, err := io.ReadAll(src.r)
		if err != nil {
			return nil, ErrOpenSource.With(slog.String("source", src.name)).Wrap(err)
		}

		log.DebugContext(ctx, "loading source",
			slog.String("source", src.name),
			slog.Int("bytes", len(data)),
		)

		if err := c.Load(ctx, string(data)); err != nil {
			return nil, withSource(err, src.name)
		}
	}

	return c.Assemble(ctx)
}

// withSource attaches the source name to structured errors.
func withSource(err error, name string) error {
	if e, ok := err.(*pkg.Error); ok { //nolint:errorlint
		return e.With(slog.String("source", name))
	}

	return err
}
