// Package cmd implements the espr subcommands: parse, check, ir, and init.
//
// Commands take their inputs from command-line arguments and the values
// stored in [context.Context] by [WithContext], [WithConcurrency], and
// [WithStreams]. Diagnostics are written to the error stream with a source
// snippet; results are written to the output stream.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the YAML configuration file.
	ConfigIdentifier = "config"
)
