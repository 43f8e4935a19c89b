package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/espr/log"
	"github.com/ardnew/espr/semantics"
)

// Check parses and legalizes EXPRESS documents, reporting a diagnostic for
// each document that fails.
type Check struct {
	Files []string `arg:"" default:"-" help:"EXPRESS files, or '-' for stdin." name:"file"`
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) error {
	s := streamsFrom(ctx)

	srcs, err := readSources(ctx, c.Files)
	if err != nil {
		return err
	}

	pal := newPalette(s.err)
	failed := 0

	for _, src := range srcs {
		ir, err := compile(ctx, src)
		if err != nil {
			pal.diagnose(s.err, src, err)

			failed++

			continue
		}

		if _, err := fmt.Fprintf(s.out, "%s: ok (%s)\n", src.name, summary(ir)); err != nil {
			return ErrWriteOutput.Wrap(err)
		}
	}

	log.DebugContext(ctx, "check complete",
		slog.Int("files", len(srcs)),
		slog.Int("failed", failed))

	if failed > 0 {
		return ErrCheck.With(
			slog.Int("files", len(srcs)),
			slog.Int("failed", failed),
		)
	}

	return nil
}

// summary counts the declarations of ir.
func summary(ir *semantics.IR) string {
	var types, entities, functions int

	for _, s := range ir.Schemas {
		types += len(s.Types)
		entities += len(s.Entities)
		functions += len(s.Functions)
	}

	return fmt.Sprintf("%d schemas, %d types, %d entities, %d functions",
		len(ir.Schemas), types, entities, functions)
}
