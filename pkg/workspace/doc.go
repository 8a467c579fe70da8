// Package workspace formats the policy files of a directory tree.
//
// Discover finds .rego files, honouring exclude patterns. A Runner formats
// them through a rego.Service and, depending on its Options, prints the
// result, lists or diffs changed files, or rewrites them in place. Watcher
// keeps a workspace formatted as files change, and Monitor exposes metrics
// and health probes while it does.
//
//	runner := workspace.NewRunner(rego.New(), workspace.Options{Write: true}, os.Stdout)
//	summary, err := runner.Run(ctx, []string{"policies"})
package workspace
