package log_test

import (
	"log/slog"
	"os"

	"github.com/ardnew/espr/log"
)

func ExampleMake() {
	logger := log.Make(os.Stdout,
		log.WithFormat(log.FormatText),
		log.WithTimeLayout("none"),
	)

	logger.Info("schema legalized", slog.String("schema", "geometry"))
	// Output: level=INFO msg="schema legalized" schema=geometry
}
