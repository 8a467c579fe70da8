// Package health serves liveness and readiness probes while regofmt runs in
// watch mode.
//
// Readiness is the aggregate of named checks. Watch mode registers two: one
// for the file watcher and one backed by a Heartbeat that records whether the
// latest formatting run succeeded.
//
//	checker := health.New(time.Second)
//	var hb health.Heartbeat
//	checker.Register("last_run", hb.Check())
//	checker.Mount(mux, version, commit)
package health
