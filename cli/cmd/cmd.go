package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ardnew/espr/lang"
	"github.com/ardnew/espr/log"
	"github.com/ardnew/espr/semantics"
)

type (
	kongContextKey struct{}
	concurrencyKey struct{}
	streamsKey     struct{}
)

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, kongContextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, _ := ctx.Value(kongContextKey{}).(*kong.Context)

	return ktx
}

// WithConcurrency returns a new context.Context holding the number of schemas
// legalized at once.
func WithConcurrency(ctx context.Context, n int) context.Context {
	return context.WithValue(ctx, concurrencyKey{}, n)
}

func concurrencyFrom(ctx context.Context) int {
	n, ok := ctx.Value(concurrencyKey{}).(int)
	if !ok {
		return 1
	}

	return n
}

// streams are the standard input, output, and error of a command.
type streams struct {
	in       io.Reader
	out, err io.Writer
}

// WithStreams returns a new context.Context whose commands read stdin ("-")
// from in, write results to out, and write diagnostics to errw. Nil
// arguments keep the process's standard streams.
func WithStreams(
	ctx context.Context,
	in io.Reader,
	out, errw io.Writer,
) context.Context {
	s := streamsFrom(ctx)

	if in != nil {
		s.in = in
	}

	if out != nil {
		s.out = out
	}

	if errw != nil {
		s.err = errw
	}

	return context.WithValue(ctx, streamsKey{}, s)
}

func streamsFrom(ctx context.Context) streams {
	if s, ok := ctx.Value(streamsKey{}).(streams); ok {
		return s
	}

	return streams{in: os.Stdin, out: os.Stdout, err: os.Stderr}
}

// source is the text of one input file.
type source struct {
	name string
	text string
}

// stdinSource is the special source name for reading from stdin.
const stdinSource = "-"

// fileKey identifies a file by device and inode, so a file named twice, via
// different paths, or through a symlink is read once.
type fileKey struct {
	dev uint64
	ino uint64
}

func makeFileKey(info os.FileInfo) (fileKey, bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return fileKey{}, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true
}

// readSources reads the named files in order, skipping duplicates. Every
// occurrence of "-" stands for a single read of stdin, placed last.
func readSources(ctx context.Context, names []string) ([]source, error) {
	var (
		srcs     = make([]source, 0, len(names))
		seen     = make(map[fileKey]struct{})
		hasStdin bool
	)

	for _, name := range names {
		if name == stdinSource {
			hasStdin = true

			continue
		}

		text, ok, err := readUniqueFile(name, seen)
		if err != nil {
			return nil, ErrReadSource.With(slog.String("file", name)).Wrap(err)
		}

		if !ok {
			log.DebugContext(ctx, "skipping duplicate source",
				slog.String("file", name))

			continue
		}

		srcs = append(srcs, source{name: name, text: text})
	}

	if hasStdin {
		data, err := io.ReadAll(streamsFrom(ctx).in)
		if err != nil {
			return nil, ErrReadSource.With(slog.String("file", "<stdin>")).Wrap(err)
		}

		srcs = append(srcs, source{name: "<stdin>", text: string(data)})
	}

	return srcs, nil
}

// readUniqueFile reads the file at path unless a file with the same
// identity is already in seen.
func readUniqueFile(
	path string,
	seen map[fileKey]struct{},
) (text string, ok bool, err error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", false, err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", false, err
	}

	if key, keyed := makeFileKey(info); keyed {
		if _, dup := seen[key]; dup {
			return "", false, nil
		}

		seen[key] = struct{}{}
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return "", false, err
	}

	return string(data), true, nil
}

// compile parses and legalizes src.
func compile(ctx context.Context, src source) (*semantics.IR, error) {
	logger := log.Default().With(slog.String("file", src.name))

	tree, err := lang.Parse(src.text,
		lang.WithContext(ctx),
		lang.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	return semantics.Legalize(tree,
		semantics.WithContext(ctx),
		semantics.WithLogger(logger),
		semantics.WithConcurrency(concurrencyFrom(ctx)),
	)
}
