package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"regoplay/playground/pkg/cli"
	"regoplay/playground/pkg/config"
	"regoplay/playground/pkg/rego"
	"regoplay/playground/pkg/telemetry/health"
	"regoplay/playground/pkg/telemetry/logging"
	"regoplay/playground/pkg/telemetry/metrics"
	"regoplay/playground/pkg/telemetry/tracing"
	"regoplay/playground/pkg/workspace"
)

var fmtFlags struct {
	write    bool
	diff     bool
	list     bool
	check    bool
	watch    bool
	strict   bool
	indent   string
	ifKw     bool
	progress bool
}

var fmtCmd = &cobra.Command{
	Use:   "fmt [path...]",
	Short: "Format policy files",
	Long: `Format Rego policy files into their canonical layout.

Paths may be files or directories; directories are searched for .rego files,
skipping the names listed in workspace.exclude. Without paths the
workspace.paths setting is used. A single "-" reads a module from stdin.

By default the formatted source is printed. The output flags can be combined.

Examples:
  # Print the formatted module
  regofmt fmt policy.rego

  # Rewrite files in place and list the ones that changed
  regofmt fmt --write --list policies/

  # Show what would change
  regofmt fmt --diff .

  # CI: exit with status 1 if any file is not formatted
  regofmt fmt --check .

  # Reformat files as they are saved
  regofmt fmt --write --watch policies/`,
	RunE: formatFiles,
}

func init() {
	rootCmd.AddCommand(fmtCmd)

	fmtCmd.Flags().BoolVarP(&fmtFlags.write, "write", "w", false, "write the result to the source file")
	fmtCmd.Flags().BoolVarP(&fmtFlags.diff, "diff", "d", false, "print diffs of files whose formatting differs")
	fmtCmd.Flags().BoolVarP(&fmtFlags.list, "list", "l", false, "list files whose formatting differs")
	fmtCmd.Flags().BoolVar(&fmtFlags.check, "check", false, "exit with status 1 if any file is not formatted")
	fmtCmd.Flags().BoolVar(&fmtFlags.watch, "watch", false, "keep running and format files as they change")
	fmtCmd.Flags().BoolVar(&fmtFlags.strict, "strict", config.DefaultStrict, "lay collections out one element per line")
	fmtCmd.Flags().StringVar(&fmtFlags.indent, "indent", config.DefaultIndent, `indentation unit; "\t" for tabs`)
	fmtCmd.Flags().BoolVar(&fmtFlags.ifKw, "if", false, "always write the if keyword")
	fmtCmd.Flags().BoolVar(&fmtFlags.progress, "progress", false, "show a progress bar on stderr when it is a terminal")
}

// applyFmtFlags copies explicitly set flags over the configuration.
func applyFmtFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("strict") {
		strict := fmtFlags.strict
		cfg.Format.Strict = &strict
	}
	if flags.Changed("indent") {
		cfg.Format.Indent = unescapeTab(fmtFlags.indent)
	}
	if flags.Changed("if") {
		if fmtFlags.ifKw {
			cfg.Format.IfKeyword = config.KeywordAlways
		} else {
			cfg.Format.IfKeyword = config.KeywordAuto
		}
	}
	if err := config.Validate(cfg); err != nil {
		return cli.NewConfigError("flags", err.Error())
	}
	return nil
}

func unescapeTab(s string) string {
	if s == `\t` {
		return "\t"
	}
	return s
}

func formatFiles(cmd *cobra.Command, args []string) error {
	cfg := config.GetConfig()
	if err := applyFmtFlags(cmd, cfg); err != nil {
		return err
	}

	svc, err := newService(cfg)
	if err != nil {
		return err
	}

	if len(args) == 1 && args[0] == "-" {
		return formatStdin(cmd, svc)
	}

	paths := args
	if len(paths) == 0 {
		paths = cfg.Workspace.Paths
	}

	ctx, stop := cli.SignalContext(cmd.Context())
	defer stop()
	ctx = logging.WithCommand(logging.NewRunID(ctx), "fmt")
	ctx = tracing.ExtractFromEnv(ctx, os.Getenv)

	tracer, err := tracing.New(&cfg.Telemetry.Tracing, tracing.WithLogger(app.logger))
	if err != nil {
		return cli.NewConfigError("telemetry.tracing", err.Error())
	}
	defer tracer.Shutdown(context.Background())

	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)

	out := cmd.OutOrStdout()
	opts := workspace.Options{
		Write:   fmtFlags.write,
		List:    fmtFlags.list,
		Check:   fmtFlags.check,
		Exclude: cfg.Workspace.Exclude,
	}
	if fmtFlags.diff {
		opts.Diff = cli.NewDiffer(colorOutput(out)).Write
	}

	ropts := []workspace.RunnerOption{
		workspace.WithLogger(app.logger),
		workspace.WithMetrics(collector),
		workspace.WithTracer(tracer),
	}
	if fmtFlags.progress && !fmtFlags.watch && isTerminal(cmd.ErrOrStderr()) {
		ropts = append(ropts, workspace.WithProgress(cli.NewProgressReporter(cmd.ErrOrStderr())))
	}
	runner := workspace.NewRunner(svc, opts, out, ropts...)

	summary, err := runner.Run(ctx, paths)
	if err != nil {
		return cli.NewCommandError("fmt", err)
	}
	reportErr := report(cmd.ErrOrStderr(), summary, opts)
	if !fmtFlags.watch {
		return reportErr
	}

	heartbeat := &health.Heartbeat{}
	heartbeat.Beat(summary.Err())

	workspaceCfg := cfg.Workspace
	workspaceCfg.Paths = paths
	return watch(ctx, runner, workspaceCfg, collector, heartbeat,
		workspace.WithConfigReload(configPath(), reloadService(cmd)))
}

// configPath returns the configuration file watch mode reloads.
func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultConfigFileName
}

// reloadService reloads the configuration file, applies the fmt flags again
// and builds the service for the result.
func reloadService(cmd *cobra.Command) workspace.ReloadFunc {
	return func() (*rego.Service, error) {
		cfg, err := config.ReloadConfig(configPath(), func(cfg *config.Config) error {
			return applyFmtFlags(cmd, cfg)
		})
		if err != nil {
			return nil, err
		}
		return newService(cfg)
	}
}

// report prints the files that failed or would be reformatted, and returns
// the error that sets the exit status.
func report(w io.Writer, summary *workspace.Summary, opts workspace.Options) error {
	if err := summary.Err(); err != nil {
		fmt.Fprintln(w, err)
	}

	if opts.Check && !opts.List {
		for _, f := range summary.Files {
			if f.Changed && f.Err == nil {
				fmt.Fprintf(w, "would reformat %s\n", f.Path)
			}
		}
	}

	if summary.Failed > 0 || (opts.Check && summary.Changed > 0) {
		return &cli.ExitError{Code: 1}
	}
	return nil
}

// watch runs the watcher, and the monitor endpoint when metrics are enabled,
// until ctx is cancelled.
func watch(ctx context.Context, runner *workspace.Runner, cfg config.WorkspaceConfig, collector *metrics.Collector, heartbeat *health.Heartbeat, opts ...workspace.WatcherOption) error {
	opts = append([]workspace.WatcherOption{
		workspace.WithHeartbeat(heartbeat),
		workspace.WithWatchLogger(app.logger),
		workspace.WithWatchMetrics(collector),
	}, opts...)
	watcher, err := workspace.NewWatcher(runner, cfg, opts...)
	if err != nil {
		return cli.NewCommandError("fmt", err)
	}

	monitorErr := make(chan error, 1)
	if collector.Enabled() {
		checker := health.New(time.Second)
		checker.Register("watcher", watcher.Check())
		checker.Register("last_run", heartbeat.Check())

		monitor := workspace.NewMonitor(&config.GetConfig().Telemetry.Metrics, collector, checker, Version, GitCommit, app.logger)
		go func() {
			monitorErr <- monitor.Start(ctx)
		}()
	}

	watchErr := make(chan error, 1)
	go func() {
		watchErr <- watcher.Watch(ctx)
	}()

	select {
	case err := <-watchErr:
		if err != nil {
			return cli.NewCommandError("fmt", err)
		}
		return nil
	case err := <-monitorErr:
		// The caller cancels ctx on return, which stops the watcher.
		if err != nil {
			return cli.NewCommandError("fmt", err)
		}
		return <-watchErr
	}
}

func formatStdin(cmd *cobra.Command, svc *rego.Service) error {
	if fmtFlags.write || fmtFlags.watch {
		return cli.NewConfigError("flags", "--write and --watch cannot be used with stdin")
	}

	src, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return cli.NewCommandError("fmt", err)
	}
	out, err := svc.FormatSource("stdin.rego", src)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	changed := out != string(src)
	switch {
	case fmtFlags.diff:
		if err := cli.NewDiffer(colorOutput(w)).Write(w, "stdin.rego", string(src), out); err != nil {
			return err
		}
	case fmtFlags.list:
		if changed {
			fmt.Fprintln(w, "-")
		}
	case fmtFlags.check:
	default:
		_, err = io.WriteString(w, out)
		return err
	}

	if fmtFlags.check && changed {
		return &cli.ExitError{Code: 1}
	}
	return nil
}

func colorOutput(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && cli.ColorEnabled(f)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && cli.IsTerminal(f)
}
