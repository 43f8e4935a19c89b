// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// The espr library packages accept a [Logger] through their WithLogger
// options; the zero [Logger] discards everything, so logging costs nothing
// unless a caller opts in. The command-line front-end configures the
// package-level default logger with [Config].
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("schema legalized", slog.String("schema", "geometry"))
//
// # Configuration
//
// Configure the logger using functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelTrace),
//		log.WithFormat(log.FormatText),
//		log.WithTimeLayout("none"),
//		log.WithCaller(true))
//
// # Levels
//
// Five levels are supported: [LevelTrace], [LevelDebug], [LevelInfo],
// [LevelWarn], and [LevelError]. TRACE sits below DEBUG and is used for
// per-production parser tracing.
//
// # Output Formats
//
// Two output formats are supported: [FormatJSON] (default) and
// [FormatText]. With [WithPretty], text output is colorized with lipgloss
// styles when the writer is a terminal.
package log
