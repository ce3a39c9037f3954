package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"bcheck/analyze"
	"bcheck/baseline"
	"bcheck/common"
	"bcheck/config"
	"bcheck/misc"
	"bcheck/report"
	"bcheck/state"
)

// initializeAppContext prepares application context before command execution but
// after command line has been parsed
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error

	if cmd.NArg() == 0 {
		// nothing to do, just return
		return ctx, nil
	}

	env := state.EnvFromContext(ctx)

	configFile := cmd.String("config")
	if env.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.Bool("debug") {
		if env.Rpt, err = env.Cfg.Reporting.Prepare(); err != nil {
			return ctx, fmt.Errorf("unable to prepare debug reporter: %w", err)
		}
		// save complete processed configuration if external configuration was provided
		if len(configFile) > 0 {
			if data, err := config.Dump(env.Cfg); err == nil {
				env.Rpt.StoreData(fmt.Sprintf("config/%s", filepath.Base(configFile)), data)
			}
		}
	}
	if env.Log, err = env.Cfg.Logging.Prepare(env.Rpt); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.RedirectStdLog()

	env.Log.Debug("Program started", zap.Strings("args", os.Args), zap.String("ver", misc.GetVersion()), zap.String("runtime", runtime.Version()), zap.String("hash", misc.GetGitHash()))

	if env.Rpt != nil {
		env.Log.Info("Creating debug report", zap.String("location", env.Rpt.Name()))
	}
	if len(configFile) == 0 && env.Log != nil {
		env.Log.Info("Using defaults (no configuration file)")
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Debug("Program ended", zap.Duration("elapsed", env.Uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
	}

	// close logging
	env.RestoreStdLog()

	// log is synced now and result can be used in report if necessary, errors
	// must be reported directly to stderr from now on
	if env.Rpt != nil {
		if er := env.Rpt.Close(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close debug report: %w", er))
		}
	}
	// reporting is closed now - remove empty panic file if any
	if env.Cfg != nil && len(env.Cfg.Logging.FileLogger.Destination) > 0 {
		debug.SetCrashOutput(nil, debug.CrashOptions{})
		fname := filepath.Join(filepath.Dir(env.Cfg.Logging.FileLogger.Destination), misc.GetAppName()+"-panic.log")
		if fi, er := os.Stat(fname); er == nil && fi.Size() == 0 {
			if er := os.Remove(fname); er != nil {
				err = multierr.Append(err, fmt.Errorf("unable to remove empty panic log file '%s': %w", fname, er))
			}
		}
	}
	return
}

// Ignore urfave/cli default error handling - for me cli.Exit() looks
// non-transparent and unnesessary. I will return regular errors from
// subcommands.
var errWasHandled bool

// this is called before appContext is destroyed, so we have a chance to
// properly log any error from subcommand
func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {

	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	// do nothing special, error is reported either by exitErrHandler or on
	// exit directly to stderr.
	return err
}

func subcommandNotFoundHandler(ctx context.Context, _ *cli.Command, name string) {
	state.EnvFromContext(ctx).Log.Warn("Unknown command, nothing to do", zap.String("command", name))
}

func main() {

	// allow graceful shutdown on interrupt so a half-written report file is
	// never left behind by a cancelled run
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            misc.GetAppName(),
		Usage:           "web platform baseline compatibility checker",
		Version:         misc.GetVersion() + " (" + runtime.Version() + ") : " + misc.GetGitHash(),
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		CommandNotFound: subcommandNotFoundHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, DefaultText: "", Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "changes program behavior to help troubleshooting, produces report archive"},
		},
		Commands: []*cli.Command{
			{
				Name:         "analyze",
				Usage:        "Analyzes sources for web platform feature compatibility",
				OnUsageError: usageErrorHandler,
				Action:       analyzeAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "target", Aliases: []string{"t"},
						Usage: "lowest acceptable availability `TIER` (one of: " + strings.Join(common.TargetNames(), ", ") + ")"},
					&cli.StringFlag{Name: "format", Aliases: []string{"f"},
						Usage: "report `FORMAT` (one of: " + strings.Join(common.OutputFmtNames(), ", ") + ")"},
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "write report to `FILE` instead of STDOUT"},
					&cli.StringFlag{Name: "parser", Usage: "script detection `MODE` (one of: " + strings.Join(common.ScriptParserNames(), ", ") + ")"},
					&cli.StringSliceFlag{Name: "exception", Aliases: []string{"e"}, Usage: "feature `ID` to never escalate (repeatable)"},
					&cli.StringSliceFlag{Name: "ignore", Usage: "additional ignore `GLOB` for discovery (repeatable)"},
					&cli.IntFlag{Name: "max-errors", Value: -1, Usage: "fail when more than `N` errors are found (-1 disables)"},
					&cli.IntFlag{Name: "max-warnings", Value: -1, Usage: "fail when more than `N` warnings are found (-1 disables)"},
					&cli.BoolFlag{Name: "fixes", Usage: "include before/after examples in modernization suggestions"},
				},
				ArgsUsage: "PATH...",
				CustomHelpTemplate: fmt.Sprintf(`%s
PATH:
    files or directories to analyze, if absent - current working directory.
    Directories are walked recursively, only css/scss/sass/less, js/jsx/ts/tsx
    and html files are considered. Minified files and common build output
    directories are skipped.
`, cli.CommandHelpTemplate),
			},
			{
				Name:         "check",
				Usage:        "Looks up a single token against the feature dataset",
				OnUsageError: usageErrorHandler,
				Action:       checkAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "target", Aliases: []string{"t"},
						Usage: "lowest acceptable availability `TIER` (one of: " + strings.Join(common.TargetNames(), ", ") + ")"},
				},
				ArgsUsage: "TOKEN...",
			},
			{
				Name:  "dumpconfig",
				Usage: "Dumps either default or actual configuration (YAML)",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
				},
				OnUsageError: usageErrorHandler,
				Action:       outputConfiguration,
				ArgsUsage:    "DESTINATION",
				CustomHelpTemplate: fmt.Sprintf(`%s

DESTINATION:
    file name to write configuration to, if absent - STDOUT

Produces file with actual "active" configuration values wich is composition of
default values and values specified in configuration file. To see default
configuration embedded into the program use --default flag.
`, cli.CommandHelpTemplate),
			},
		},
	}

	var err error
	// NOTE: os.Exit is called at the end of main to set exit code, make sure
	// there are no other deffered functions after that
	defer func() {
		stop()
		if err != nil {
			// It may happen that log is either not set yet (argument parsing) or already closed,
			// report errors to stderr directly
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = app.Run(ctx, os.Args)
}

// analyzeOptions folds command line overrides over the configuration.
func analyzeOptions(cmd *cli.Command, cfg *config.Config) (analyze.Options, error) {
	target := cfg.Analysis.TargetTier()
	if s := cmd.String("target"); len(s) > 0 {
		t, err := common.ParseTarget(s)
		if err != nil {
			return analyze.Options{}, fmt.Errorf("bad target: %w", err)
		}
		target = t
	}

	parser := cfg.Analysis.Parser()
	if s := cmd.String("parser"); len(s) > 0 {
		p, err := common.ParseScriptParser(s)
		if err != nil {
			return analyze.Options{}, fmt.Errorf("bad parser mode: %w", err)
		}
		parser = p
	}

	exceptions := cfg.Analysis.Exceptions
	if flagged := cmd.StringSlice("exception"); len(flagged) > 0 {
		exceptions = append(append([]string{}, exceptions...), flagged...)
	}

	fixes := cfg.Analysis.GenFixes || cmd.Bool("fixes")

	return analyze.NewOptions(target, cfg.Analysis.Browsers, exceptions, parser, fixes), nil
}

func analyzeAction(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)

	reg, err := baseline.NewRegistry(env.Log)
	if err != nil {
		return fmt.Errorf("unable to build feature registry: %w", err)
	}

	opts, err := analyzeOptions(cmd, env.Cfg)
	if err != nil {
		return err
	}

	ignore := env.Cfg.Analysis.Ignore
	if flagged := cmd.StringSlice("ignore"); len(flagged) > 0 {
		ignore = append(append([]string{}, ignore...), flagged...)
	}

	roots := cmd.Args().Slice()
	if len(roots) == 0 {
		roots = []string{"."}
	}

	res, err := analyze.NewAnalyzer(reg, opts, ignore, env.Log).Run(ctx, roots)
	if err != nil {
		return err
	}

	if env.Rpt != nil {
		var buf bytes.Buffer
		if err := report.JSON(&buf, res); err == nil {
			env.Rpt.StoreData("result.json", buf.Bytes())
		}
	}

	if err := renderResult(cmd, env.Cfg, res); err != nil {
		return err
	}
	return checkThresholds(cmd, env.Cfg, res)
}

func renderResult(cmd *cli.Command, cfg *config.Config, res *analyze.Result) error {
	format := cfg.Report.Fmt()
	if s := cmd.String("format"); len(s) > 0 {
		f, err := common.ParseOutputFmt(s)
		if err != nil {
			return fmt.Errorf("bad report format: %w", err)
		}
		format = f
	}

	destination := cfg.Report.Destination
	if s := cmd.String("output"); len(s) > 0 {
		destination = s
	}

	out := os.Stdout
	if len(destination) > 0 {
		// a directory destination gets a conventional file name for the format
		if fi, err := os.Stat(destination); err == nil && fi.IsDir() {
			destination = filepath.Join(destination, misc.GetAppName()+"-report"+format.Ext())
		}
		f, err := os.Create(destination)
		if err != nil {
			return fmt.Errorf("unable to create report destination '%s': %w", destination, err)
		}
		defer f.Close()
		out = f
	}

	switch format {
	case common.OutputFmtJson:
		return report.JSON(out, res)
	case common.OutputFmtJunit:
		return report.JUnit(out, res)
	default:
		return report.Console(out, res)
	}
}

// checkThresholds turns the CI limits into the process exit code.
func checkThresholds(cmd *cli.Command, cfg *config.Config, res *analyze.Result) error {
	maxErrors := cfg.Report.MaxErrors
	if cmd.IsSet("max-errors") {
		maxErrors = int(cmd.Int("max-errors"))
	}
	maxWarnings := cfg.Report.MaxWarnings
	if cmd.IsSet("max-warnings") {
		maxWarnings = int(cmd.Int("max-warnings"))
	}

	if maxErrors >= 0 && len(res.Violations) > maxErrors {
		return fmt.Errorf("compatibility threshold exceeded: %d errors (allowed %d)", len(res.Violations), maxErrors)
	}
	if maxWarnings >= 0 && len(res.Warnings) > maxWarnings {
		return fmt.Errorf("compatibility threshold exceeded: %d warnings (allowed %d)", len(res.Warnings), maxWarnings)
	}
	return nil
}

func checkAction(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)

	if cmd.Args().Len() == 0 {
		return fmt.Errorf("nothing to check, specify at least one token")
	}

	reg, err := baseline.NewRegistry(env.Log)
	if err != nil {
		return fmt.Errorf("unable to build feature registry: %w", err)
	}

	target := env.Cfg.Analysis.TargetTier()
	if s := cmd.String("target"); len(s) > 0 {
		t, err := common.ParseTarget(s)
		if err != nil {
			return fmt.Errorf("bad target: %w", err)
		}
		target = t
	}

	for _, token := range cmd.Args().Slice() {
		report.Feature(os.Stdout, reg.CheckFeature(token, target))
	}
	return nil
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	fname := cmd.Args().Get(0)

	var (
		err   error
		data  []byte
		state string
	)

	out := os.Stdout
	if len(fname) > 0 {
		out, err = os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer out.Close()

	}

	if cmd.Bool("default") {
		state = "default"
		data, err = config.Prepare()
	} else {
		state = "actual"
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	if len(fname) == 0 {
		fname = "STDOUT"
	}
	env.Log.Info("Outputing configuration", zap.String("state", state), zap.String("file", fname))

	_, err = out.Write(data)
	if err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
