package workspace

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"regoplay/playground/pkg/rego"
	regoerrors "regoplay/playground/pkg/rego/errors"
	"regoplay/playground/pkg/telemetry/logging"
	"regoplay/playground/pkg/telemetry/metrics"
	"regoplay/playground/pkg/telemetry/tracing"
)

// DiffFunc writes the difference between the original and formatted source
// of path to w.
type DiffFunc func(w io.Writer, path, before, after string) error

// Options select what a run does with each file. Several may be combined;
// with none set the formatted source is written to the output.
type Options struct {
	// Write replaces files whose formatting differs.
	Write bool

	// List prints the paths of files whose formatting differs.
	List bool

	// Diff prints the change formatting would make.
	Diff DiffFunc

	// Check reports files whose formatting differs without printing them.
	Check bool

	// Exclude patterns are passed to Discover.
	Exclude []string
}

func (o Options) printSource() bool {
	return !o.Write && !o.List && o.Diff == nil && !o.Check
}

// FileResult is the outcome of formatting one file.
type FileResult struct {
	Path     string
	Changed  bool
	Err      error
	Duration time.Duration
}

// Summary collects the results of a run.
type Summary struct {
	Files    []FileResult
	Changed  int
	Failed   int
	Duration time.Duration
}

// Err returns an error describing failed files, or nil.
func (s *Summary) Err() error {
	if s.Failed == 0 {
		return nil
	}
	list := regoerrors.NewErrorList()
	for _, f := range s.Files {
		if f.Err != nil {
			e := regoerrors.Wrap(f.Err)
			if e.File == "" {
				e.File = f.Path
			}
			list.Add(e)
		}
	}
	return list
}

// Runner formats workspace files. Runs are serialised, so a Runner can be
// shared between the command line and the watcher.
type Runner struct {
	service *rego.Service
	opts    Options
	out     io.Writer

	logger   *logging.Logger
	metrics  *metrics.Collector
	tracer   *tracing.Tracer
	progress Progress

	mu sync.Mutex
}

// Progress receives the number of files processed during a run.
type Progress interface {
	Start(total int64)
	Update(current int64)
	Finish()
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the run logger.
func WithLogger(logger *logging.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(c *metrics.Collector) RunnerOption {
	return func(r *Runner) {
		r.metrics = c
	}
}

// WithTracer sets the tracer.
func WithTracer(t *tracing.Tracer) RunnerOption {
	return func(r *Runner) {
		r.tracer = t
	}
}

// WithProgress reports the progress of each run to p.
func WithProgress(p Progress) RunnerOption {
	return func(r *Runner) {
		r.progress = p
	}
}

// NewRunner creates a runner writing listings, diffs and formatted source to
// out.
func NewRunner(service *rego.Service, opts Options, out io.Writer, ropts ...RunnerOption) *Runner {
	r := &Runner{
		service: service,
		opts:    opts,
		out:     out,
		logger:  logging.Nop(),
		metrics: metrics.Disabled(),
		tracer:  tracing.Noop(),
	}
	for _, opt := range ropts {
		opt(r)
	}
	return r
}

// SetService replaces the service used by later runs. A run in progress
// finishes with the service it started with.
func (r *Runner) SetService(svc *rego.Service) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.service = svc
}

// Run discovers the files under paths and formats each of them. Failures of
// individual files are recorded in the summary; the returned error is for
// failures that stop the run.
func (r *Runner) Run(ctx context.Context, paths []string) (*Summary, error) {
	files, err := Discover(paths, r.opts.Exclude)
	if err != nil {
		return nil, err
	}
	return r.RunFiles(ctx, files)
}

// RunFiles formats the given files in order.
func (r *Runner) RunFiles(ctx context.Context, files []string) (*Summary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	start := time.Now()
	ctx, span := r.tracer.Start(ctx, "run")
	defer span.End()

	if r.progress != nil {
		r.progress.Start(int64(len(files)))
		defer r.progress.Finish()
	}

	summary := &Summary{}
	for i, path := range files {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		res := r.formatFile(ctx, path)
		summary.Files = append(summary.Files, res)
		if res.Err != nil {
			summary.Failed++
		} else if res.Changed {
			summary.Changed++
		}
		if r.progress != nil {
			r.progress.Update(int64(i + 1))
		}
	}
	summary.Duration = time.Since(start)

	tracing.SetStatus(span, summary.Err())
	r.logger.DebugContext(ctx, "run finished",
		"files", len(files),
		"changed", summary.Changed,
		"failed", summary.Failed,
		"duration", summary.Duration,
	)
	return summary, nil
}

func (r *Runner) formatFile(ctx context.Context, path string) FileResult {
	ctx = logging.WithFile(ctx, path)
	ctx, span := r.tracer.Start(ctx, "format_file")
	defer span.End()

	start := time.Now()
	res := FileResult{Path: path}

	src, err := r.read(path)
	if err == nil {
		tracing.SetFileAttributes(span, path, len(src))
		res.Changed, err = r.process(ctx, path, src)
	}
	res.Duration = time.Since(start)

	if err != nil {
		res.Err = err
		kind := string(regoerrors.Wrap(err).Kind)
		tracing.SetErrorAttributes(span, err, kind)
		r.metrics.RecordError(kind)
		r.metrics.RecordFile(metrics.ResultError, res.Duration, len(src))
		r.logger.ErrorContext(ctx, "failed to format file", "error", err)
		return res
	}

	result := metrics.ResultUnchanged
	if res.Changed {
		result = metrics.ResultChanged
	}
	r.metrics.RecordFile(result, res.Duration, len(src))
	r.logger.DebugContext(ctx, "formatted file", "changed", res.Changed, "duration", res.Duration)
	return res
}

func (r *Runner) read(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, regoerrors.NewIOError(path, err)
	}
	if limit := r.service.Parser().MaxFileSize(); limit > 0 && info.Size() > limit {
		e := regoerrors.NewIOError(path, fmt.Errorf("file size %d exceeds maximum %d bytes", info.Size(), limit))
		e.Suggestion = "Split the module or raise parser.max_file_size"
		return nil, e
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, regoerrors.NewIOError(path, err)
	}
	return src, nil
}

func (r *Runner) process(ctx context.Context, path string, src []byte) (bool, error) {
	parseStart := time.Now()
	m, err := r.service.Parser().ParseModule(path, string(src))
	r.metrics.RecordStage(metrics.StageParse, time.Since(parseStart))
	if err != nil {
		return false, err
	}

	formatStart := time.Now()
	out, err := r.service.FormatModule(m)
	r.metrics.RecordStage(metrics.StageFormat, time.Since(formatStart))
	if err != nil {
		return false, err
	}

	before := string(src)
	changed := out != before
	tracing.SetResultAttributes(tracing.SpanFromContext(ctx), changed, len(m.Rules))

	if r.opts.printSource() {
		_, err := io.WriteString(r.out, out)
		return changed, err
	}
	if !changed {
		return false, nil
	}

	if r.opts.List {
		fmt.Fprintln(r.out, path)
	}
	if r.opts.Diff != nil {
		if err := r.opts.Diff(r.out, path, before, out); err != nil {
			return true, err
		}
	}
	if r.opts.Write {
		if err := writeFile(path, out); err != nil {
			return true, regoerrors.NewIOError(path, err)
		}
		r.logger.InfoContext(ctx, "rewrote file")
	}
	return true, nil
}

// writeFile replaces path keeping its permissions.
func writeFile(path, content string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), info.Mode().Perm())
}
