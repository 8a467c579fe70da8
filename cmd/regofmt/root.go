package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"regoplay/playground/pkg/cli"
	"regoplay/playground/pkg/config"
	"regoplay/playground/pkg/telemetry/logging"
)

var (
	// Global flags
	cfgFile   string
	verbose   bool
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "regofmt",
	Short: "regofmt - canonical formatter for Rego policies",
	Long: `regofmt parses Rego policy modules and writes them back in a single
canonical layout: consistent indentation, one blank line between statements,
comments kept next to the code they describe, and keywords written the way the
module's language version expects.

Configuration is read from .regofmt.yaml in the working directory, or from the
file given with --config. Any setting can be overridden with a REGOFMT_
environment variable, such as REGOFMT_FORMAT_INDENT.`,
	Version:           Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// app holds what setup prepared for the command being run. The configuration
// itself is stored with config.SetConfig.
var app struct {
	logger *logging.Logger
}

// Execute runs the root command and exits with its status.
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line args and returns the exit status.
func run(args []string, stdout, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	if err != nil && !cli.Silent(err) {
		fmt.Fprintln(stderr, err)
	}
	return cli.ExitCode(err)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default "+config.DefaultConfigFileName+" if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text, json")
}

// setup loads the configuration and creates the logger.
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}
	if logFormat != "" {
		cfg.Telemetry.Logging.Format = logFormat
	}

	logger, err := logging.New(logging.FromConfig(cfg.Telemetry.Logging, cmd.ErrOrStderr()))
	if err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}

	config.SetConfig(cfg)
	app.logger = logger.With("command", cmd.Name())
	return nil
}

// loadConfig reads --config if given, and the default file otherwise. Only
// the default file may be missing.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if cfgFile != "" {
		cfg, err = config.LoadConfigWithEnvOverrides(cfgFile)
	} else {
		cfg, err = config.LoadOptional(config.DefaultConfigFileName)
	}
	if err == nil {
		return cfg, nil
	}

	var verr config.ValidationError
	if errors.As(err, &verr) && len(verr.Errors) > 0 {
		return nil, cli.NewConfigError(verr.Errors[0].Field, verr.Error())
	}
	return nil, cli.NewConfigError("config", err.Error())
}
