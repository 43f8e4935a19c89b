// Package cli contains the command line interface for espr.
//
// # Usage
//
//	espr [flags] <command> [args]
//
// Commands:
//
//   - parse: parse one expression-level production and print the tree,
//     remarks and residual input
//   - check: parse and legalize EXPRESS documents, reporting diagnostics
//   - ir: print the legalized IR of EXPRESS documents as YAML or JSON
//   - init: write the configuration file from current flag values
//
// # Configuration
//
// Flags may also be set in config.yaml (or config.json) in the user
// configuration directory, for example ~/.config/espr/config.yaml:
//
//	log:
//	  level: debug
//	  format: text
//	concurrency: 4
//
// Nested keys are joined with "-" to form the flag name, so the file above
// sets --log-level, --log-format, and --concurrency. Underscores may be used
// in place of hyphens. Command-line flags override the file.
//
// # Logging Options
//
//   - --log-level: minimum level (trace, debug, info, warn, error)
//   - --log-format: json or text
//   - --log-time-layout: timestamp layout (RFC3339, RFC3339Nano, ...)
//   - --log-caller: include caller information
//   - --log-pretty: colorize text output
//
// # Profiling Options
//
// Available only when built with the pprof build tag:
//
//	go build -tags pprof -o espr .
//
//   - --pprof-mode: profiling mode (see [profile.Modes])
//   - --pprof-dir: profile output directory
package cli
