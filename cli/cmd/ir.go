package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/espr/semantics"
)

// IR prints the legalized IR of EXPRESS documents. Each document is
// legalized on its own; the schemas of all documents are printed together.
type IR struct {
	Format string `default:"yaml" enum:"yaml,json" help:"Output format (${enum})."                    short:"f"`
	Indent int    `default:"2"                     help:"Indent width; 0 prints compact or flow style." short:"i"`

	Files []string `arg:"" default:"-" help:"EXPRESS files, or '-' for stdin." name:"file"`
}

// Run executes the ir command.
func (c *IR) Run(ctx context.Context) error {
	s := streamsFrom(ctx)

	srcs, err := readSources(ctx, c.Files)
	if err != nil {
		return err
	}

	var (
		pal    = newPalette(s.err)
		merged = &semantics.IR{}
		failed int
	)

	for _, src := range srcs {
		ir, err := compile(ctx, src)
		if err != nil {
			pal.diagnose(s.err, src, err)

			failed++

			continue
		}

		merged.Schemas = append(merged.Schemas, ir.Schemas...)
	}

	if failed > 0 {
		return ErrCheck.With(
			slog.Int("files", len(srcs)),
			slog.Int("failed", failed),
		)
	}

	if c.Format == "json" {
		err = merged.FormatJSON(ctx, s.out, c.Indent)
	} else {
		err = merged.FormatYAML(ctx, s.out, c.Indent)
	}

	if err != nil {
		return ErrWriteOutput.With(slog.String("format", c.Format)).Wrap(err)
	}

	return nil
}
