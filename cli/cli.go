package cli

import (
	"context"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/worldc/cli/cmd"
	"github.com/ardnew/worldc/log"
	"github.com/ardnew/worldc/pkg"
	"github.com/ardnew/worldc/scene"
)

// CLI is the top-level command-line interface for worldc.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit." short:"V"`

	Build cmd.Build `cmd:"" default:"withargs" help:"Compile world scripts into a Mirage world document."`
	Check cmd.Check `cmd:""                    help:"Compile world scripts and report errors without output."`
	Eval  cmd.Eval  `cmd:""                    help:"Evaluate an arithmetic expression."`
	Repl  cmd.Repl  `cmd:""                    help:"Start an interactive expression evaluator."`
	Init  cmd.Init  `cmd:""                    help:"Write a configuration file with the current global flags."`
}

// Run executes the worldc CLI with the given context and arguments.
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

	configFilePath := configPath(baseConfig)

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  cachePath(),
		"version":            pkg.Version,
		"formatDefault":      scene.DefaultFormat.String(),
		"formatEnum":         strings.Join(scene.Formats(), ","),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
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
		kong.Configuration(loadConfig, configFilePath),
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

	cli.Log.start(ctx)

	defer cli.Pprof.start(ctx)()

	log.TraceContext(ctx, "running command",
		slog.String("command", ktx.Command()),
		slog.String("config", configFilePath),
	)

	return ktx.Run(ctx)
}
