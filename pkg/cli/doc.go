/*
Package cli provides the terminal helpers of the regofmt command.

Diffs:

fmt --diff prints unified diffs, coloured when stdout is a terminal:

	differ := cli.NewDiffer(cli.ColorEnabled(os.Stdout))
	err := differ.Write(os.Stdout, "policy.rego", before, after)

Output Formatting:

Command results are printed as text or JSON:

	formatter := cli.NewFormatter(cli.FormatJSON)
	if err := formatter.FormatTo(os.Stdout, names); err != nil {
		return err
	}

Errors:

ExitCode maps command errors to exit statuses. An ExitError carries a status
without a message, for outcomes that have already been reported.

Signal Handling:

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()
*/
package cli
