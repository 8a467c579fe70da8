package workspace

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"regoplay/playground/pkg/config"
	"regoplay/playground/pkg/rego"
	regoerrors "regoplay/playground/pkg/rego/errors"
	"regoplay/playground/pkg/rego/parser"
	"regoplay/playground/pkg/telemetry/metrics"
)

const (
	formatted   = "package play\n\nallow if input.ok\n"
	unformatted = "package play\nallow if {   input.ok }\n"
	broken      = "package play\n\nallow if {\n"
)

func setup(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"good.rego":   formatted,
		"messy.rego":  unformatted,
		"lib/ok.rego": formatted,
	})
	return root
}

func TestRunner_Check(t *testing.T) {
	root := setup(t)
	var out bytes.Buffer

	runner := NewRunner(rego.New(), Options{Check: true}, &out)
	summary, err := runner.Run(context.Background(), []string{root})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(summary.Files) != 3 || summary.Changed != 1 || summary.Failed != 0 {
		t.Errorf("summary = %+v", summary)
	}
	if out.Len() != 0 {
		t.Errorf("check mode printed %q", out.String())
	}
	if summary.Err() != nil {
		t.Errorf("Err() = %v", summary.Err())
	}
}

func TestRunner_ListAndWrite(t *testing.T) {
	root := setup(t)
	var out bytes.Buffer

	runner := NewRunner(rego.New(), Options{List: true, Write: true}, &out)
	if _, err := runner.Run(context.Background(), []string{root}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	messy := filepath.Join(root, "messy.rego")
	if strings.TrimSpace(out.String()) != messy {
		t.Errorf("listed %q, want %q", out.String(), messy)
	}

	data, err := os.ReadFile(messy)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != formatted {
		t.Errorf("rewritten file =\n%s\nwant\n%s", data, formatted)
	}

	// A second run finds nothing to do.
	out.Reset()
	summary, err := runner.Run(context.Background(), []string{root})
	if err != nil {
		t.Fatal(err)
	}
	if summary.Changed != 0 || out.Len() != 0 {
		t.Errorf("second run changed %d files, printed %q", summary.Changed, out.String())
	}
}

func TestRunner_Diff(t *testing.T) {
	root := setup(t)
	var out bytes.Buffer
	var calls []string

	diff := func(w io.Writer, path, before, after string) error {
		calls = append(calls, filepath.Base(path))
		if before == after {
			t.Error("diff called for an unchanged file")
		}
		_, err := fmt.Fprintf(w, "diff %s\n", filepath.Base(path))
		return err
	}

	runner := NewRunner(rego.New(), Options{Diff: diff}, &out)
	if _, err := runner.Run(context.Background(), []string{root}); err != nil {
		t.Fatal(err)
	}
	if len(calls) != 1 || calls[0] != "messy.rego" {
		t.Errorf("diff calls = %v", calls)
	}
	if out.String() != "diff messy.rego\n" {
		t.Errorf("output = %q", out.String())
	}
}

func TestRunner_PrintSource(t *testing.T) {
	root := setup(t)
	var out bytes.Buffer

	runner := NewRunner(rego.New(), Options{}, &out)
	if _, err := runner.RunFiles(context.Background(), []string{filepath.Join(root, "messy.rego")}); err != nil {
		t.Fatal(err)
	}
	if out.String() != formatted {
		t.Errorf("output =\n%s\nwant\n%s", out.String(), formatted)
	}
}

func TestRunner_Errors(t *testing.T) {
	root := setup(t)
	writeTree(t, root, map[string]string{"broken.rego": broken})

	collector := metrics.NewCollector(&config.MetricsConfig{Enabled: true, Namespace: "test"}, nil)
	runner := NewRunner(rego.New(), Options{Check: true}, io.Discard, WithMetrics(collector))

	summary, err := runner.Run(context.Background(), []string{root})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if summary.Failed != 1 {
		t.Fatalf("Failed = %d, want 1", summary.Failed)
	}

	runErr := summary.Err()
	if !regoerrors.IsKind(runErr, regoerrors.KindSyntax) {
		t.Errorf("Err() = %v, want a syntax error", runErr)
	}
	if !strings.Contains(runErr.Error(), "broken.rego") {
		t.Errorf("Err() should name the file: %v", runErr)
	}

	n, err := testutil.GatherAndCount(collector.Registry(), "test_errors_total")
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("error series = %d, want 1", n)
	}
}

func TestRunner_MaxFileSize(t *testing.T) {
	root := setup(t)
	svc := rego.New(rego.WithParser(parser.NewParser().WithMaxFileSize(8)))
	runner := NewRunner(svc, Options{Check: true}, io.Discard)

	summary, err := runner.RunFiles(context.Background(), []string{filepath.Join(root, "good.rego")})
	if err != nil {
		t.Fatal(err)
	}
	if summary.Failed != 1 || !regoerrors.IsKind(summary.Files[0].Err, regoerrors.KindIO) {
		t.Errorf("result = %+v, want an io error", summary.Files[0])
	}
}

func TestRunner_Cancelled(t *testing.T) {
	root := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := NewRunner(rego.New(), Options{Check: true}, io.Discard)
	if _, err := runner.Run(ctx, []string{root}); err == nil {
		t.Error("Run() with a cancelled context should fail")
	}
}

type recordingProgress struct {
	total   int64
	updates []int64
	done    bool
}

func (p *recordingProgress) Start(total int64)    { p.total = total }
func (p *recordingProgress) Update(current int64) { p.updates = append(p.updates, current) }
func (p *recordingProgress) Finish()              { p.done = true }

func TestRunner_Progress(t *testing.T) {
	root := setup(t)
	progress := &recordingProgress{}

	runner := NewRunner(rego.New(), Options{Check: true}, io.Discard, WithProgress(progress))
	if _, err := runner.Run(context.Background(), []string{root}); err != nil {
		t.Fatal(err)
	}
	if progress.total != 3 || len(progress.updates) != 3 || progress.updates[2] != 3 || !progress.done {
		t.Errorf("progress = %+v", progress)
	}
}
