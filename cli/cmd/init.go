package cmd

import (
	"context"
	"log/slog"
	"os"
	"reflect"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/espr/log"
	"github.com/ardnew/espr/profile"
)

// defaultConfigIndent is the indent width of the generated configuration
// file.
const defaultConfigIndent = 2

// Init writes the configuration file with the current value of every global
// flag.
type Init struct {
	Force bool `help:"Overwrite an existing configuration file." short:"F"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) error {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return ErrWriteConfig.Wrap(os.ErrInvalid)
	}

	confPath := ktx.Model.Vars()[ConfigIdentifier]

	if _, err := os.Stat(confPath); err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(ErrFileExists)
	}

	data, err := yaml.MarshalWithOptions(i.flagValues(ctx),
		yaml.Indent(defaultConfigIndent))
	if err != nil {
		return ErrWriteConfig.With(slog.String("file", confPath)).Wrap(err)
	}

	if err := os.WriteFile(confPath, data, 0o600); err != nil {
		return ErrWriteConfig.With(slog.String("file", confPath)).Wrap(err)
	}

	log.DebugContext(ctx, "initialized configuration file",
		slog.String("path", confPath))

	return nil
}

// flagValues returns the global flags and their current values in model
// order. Help, version, and profiling flags are left out, as are empty
// values.
func (i *Init) flagValues(ctx context.Context) yaml.MapSlice {
	ktx := kongContextFrom(ctx)
	ignore := []string{"help", "version", profile.Tag}

	var out yaml.MapSlice

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(ignore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		val := ktx.FlagValue(flag)
		if val == nil {
			continue
		}

		rv := reflect.ValueOf(val)
		if rv.IsZero() && rv.Kind() != reflect.Bool {
			continue
		}

		// Custom string types such as the log level are written as plain
		// strings.
		if rv.Kind() == reflect.String {
			val = rv.String()
		}

		out = append(out, yaml.MapItem{Key: flag.Name, Value: val})
	}

	return out
}
