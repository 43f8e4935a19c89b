package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/espr/cli/cmd"
	"github.com/ardnew/espr/pkg"
)

// CLI is the top-level command-line interface for espr.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Concurrency int              `default:"1" help:"Number of schemas legalized at once." short:"j"`
	Version     kong.VersionFlag `            help:"Print version and exit."`

	Parse cmd.Parse `cmd:"" help:"Parse an expression or literal."`
	Check cmd.Check `cmd:"" help:"Parse and legalize EXPRESS documents."`
	IR    cmd.IR    `cmd:"" help:"Print the legalized IR of EXPRESS documents."`
	Init  cmd.Init  `cmd:"" help:"Write a configuration file with current flag values."`
}

// Run executes the espr CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	if err := mkdirAllRequired(); err != nil {
		return err
	}

	configFile := configPath(baseConfig + ".yaml")

	vars := kong.Vars{
		"version":            pkg.Version(),
		cmd.ConfigIdentifier: configFile,
		cmd.CacheIdentifier:  cacheDir(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Apply logger flags before kong parses anything, so errors reported
	// during parsing already honor them.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		// Commands see ctx as it is when they run, after the values below
		// have been added to it.
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configPath(baseConfig+".json")),
		kong.Configuration(resolve, configFile),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithConcurrency(ctx, cli.Concurrency)

	defer cli.Log.start(ctx)()

	// No-op unless built with tag pprof and a mode is selected.
	defer cli.Pprof.start(ctx)()

	return ktx.Run()
}
