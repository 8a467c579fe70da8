package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"regoplay/playground/pkg/cli"
	"regoplay/playground/pkg/config"
	"regoplay/playground/pkg/rego/ast"
)

var builtinsFlags struct {
	kind   string
	output string
}

var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "List the builtins known to the formatter",
	Long: `List the builtin functions and operators of the active capabilities.

Builtins are grouped into three kinds:
  plain      functions called by a bare name, such as count
  reference  namespaced functions, such as io.jwt.decode
  infix      operators written between their operands, such as plus (+)

Without --kind every builtin is listed. Set capabilities.file in the
configuration to list the builtins of another descriptor.`,
	Args: cobra.NoArgs,
	RunE: listBuiltins,
}

func init() {
	rootCmd.AddCommand(builtinsCmd)

	builtinsCmd.Flags().StringVar(&builtinsFlags.kind, "kind", "", "builtin kind: plain, reference, infix")
	builtinsCmd.Flags().StringVarP(&builtinsFlags.output, "output", "o", "text", "output format: text, json")
}

// builtinEntry is the listed form of a builtin.
type builtinEntry struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Infix string `json:"infix,omitempty"`
}

func (e builtinEntry) String() string {
	if e.Infix != "" {
		return fmt.Sprintf("%s (%s)", e.Name, e.Infix)
	}
	return e.Name
}

func listBuiltins(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(builtinsFlags.output)
	if err != nil {
		return err
	}

	reg, err := newRegistry(config.GetConfig())
	if err != nil {
		return err
	}

	groups := map[string][]string{
		"plain":     reg.PlainNames(),
		"reference": reg.ReferenceNames(),
		"infix":     reg.InfixNames(),
	}

	kinds := []string{"plain", "reference", "infix"}
	if builtinsFlags.kind != "" {
		if _, ok := groups[builtinsFlags.kind]; !ok {
			return cli.NewConfigError("kind", fmt.Sprintf("unknown kind %q: must be 'plain', 'reference', or 'infix'", builtinsFlags.kind))
		}
		kinds = []string{builtinsFlags.kind}
	}

	entries := entriesOf(reg, groups, kinds)
	if format == cli.FormatJSON {
		return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), entries)
	}

	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.String()
	}
	return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), lines)
}

func entriesOf(reg *ast.Registry, groups map[string][]string, kinds []string) []builtinEntry {
	entries := []builtinEntry{}
	for _, kind := range kinds {
		for _, name := range groups[kind] {
			e := builtinEntry{Name: name, Kind: kind}
			if b, ok := reg.Lookup(name); ok {
				e.Infix = b.Infix
			}
			entries = append(entries, e)
		}
	}
	return entries
}
