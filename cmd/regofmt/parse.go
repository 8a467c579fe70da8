package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"regoplay/playground/pkg/cli"
	"regoplay/playground/pkg/config"
	"regoplay/playground/pkg/rego/parser"
)

var parseFlags struct {
	start string
}

var startRules = map[string]parser.StartRule{
	"module":     parser.Module,
	"rule":       parser.Rule,
	"expression": parser.Expression,
	"import":     parser.Import,
	"reference":  parser.Reference,
}

var parseCmd = &cobra.Command{
	Use:   "parse <file|->",
	Short: "Print the syntax tree of a policy as JSON",
	Long: `Parse a module, or a fragment of one, and print its syntax tree as JSON.

The --start flag selects what the input is: a whole module (the default), a
single rule, an expression, an import or a reference.

Examples:
  # Dump a module
  regofmt parse policy.rego

  # Dump an expression read from stdin
  echo 'input.user.roles[_] == "admin"' | regofmt parse --start expression -`,
	Args: cobra.ExactArgs(1),
	RunE: parseSource,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVar(&parseFlags.start, "start", "module", "start rule: module, rule, expression, import, reference")
}

func parseSource(cmd *cobra.Command, args []string) error {
	start, ok := startRules[strings.ToLower(parseFlags.start)]
	if !ok {
		return cli.NewConfigError("start", fmt.Sprintf("unknown start rule %q", parseFlags.start))
	}

	p, err := newParser(config.GetConfig())
	if err != nil {
		return err
	}

	src, err := readSource(cmd, args[0])
	if err != nil {
		return cli.NewCommandError("parse", err)
	}

	var node any
	if start == parser.Module {
		node, err = p.ParseModule(args[0], src)
	} else {
		node, err = p.Parse(src, start)
	}
	if err != nil {
		return err
	}

	app.logger.Debug("parsed source", "file", args[0], "start", string(start))
	return cli.NewFormatter(cli.FormatJSON).FormatTo(cmd.OutOrStdout(), node)
}

// readSource reads path, or stdin for "-".
func readSource(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		return string(data), err
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if limit := config.GetConfig().Parser.MaxFileSize; limit > 0 && info.Size() > limit {
		return "", fmt.Errorf("%s: file size %d exceeds maximum %d bytes", path, info.Size(), limit)
	}
	data, err := os.ReadFile(path)
	return string(data), err
}
