package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"regoplay/playground/pkg/config"
)

func testConfig() *config.MetricsConfig {
	return &config.MetricsConfig{
		Enabled:   true,
		Namespace: "test",
	}
}

func TestCollector_NewCollector(t *testing.T) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()

	collector := NewCollector(cfg, registry)

	if collector.Registry() != registry {
		t.Error("Collector registry not set correctly")
	}
	if !collector.Enabled() {
		t.Error("Collector should be enabled")
	}

	defaulted := &config.MetricsConfig{}
	NewCollector(defaulted, nil)
	if defaulted.Namespace != "regofmt" {
		t.Errorf("Namespace = %q, want regofmt", defaulted.Namespace)
	}
}

func TestCollector_RecordFile(t *testing.T) {
	collector := NewCollector(testConfig(), nil)

	collector.RecordFile(ResultChanged, 3*time.Millisecond, 1200)
	collector.RecordFile(ResultChanged, time.Millisecond, 80)
	collector.RecordFile(ResultUnchanged, time.Millisecond, 40)

	if got := testutil.ToFloat64(collector.files.filesTotal.WithLabelValues(ResultChanged)); got != 2 {
		t.Errorf("changed files = %v, want 2", got)
	}
	if got := testutil.ToFloat64(collector.files.filesTotal.WithLabelValues(ResultUnchanged)); got != 1 {
		t.Errorf("unchanged files = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(collector.files.fileDuration); got != 1 {
		t.Errorf("duration series = %d, want 1", got)
	}
}

func TestCollector_RecordStageAndError(t *testing.T) {
	collector := NewCollector(testConfig(), nil)

	collector.RecordStage("parse", time.Millisecond)
	collector.RecordStage("format", time.Millisecond)
	collector.RecordError("syntax")
	collector.RecordError("syntax")

	if got := testutil.CollectAndCount(collector.files.stageDuration); got != 2 {
		t.Errorf("stage series = %d, want 2", got)
	}
	if got := testutil.ToFloat64(collector.files.errorsTotal.WithLabelValues("syntax")); got != 2 {
		t.Errorf("syntax errors = %v, want 2", got)
	}
}

func TestCollector_RecordWatch(t *testing.T) {
	collector := NewCollector(testConfig(), nil)

	collector.RecordWatchEvent("WRITE")
	collector.RecordWatchEvent("CREATE")
	collector.RecordWatchEvent("WRITE")
	collector.RecordWatchRun(3, 20*time.Millisecond)

	if got := testutil.ToFloat64(collector.watch.eventsTotal.WithLabelValues("WRITE")); got != 2 {
		t.Errorf("write events = %v, want 2", got)
	}
	if got := testutil.ToFloat64(collector.watch.runsTotal); got != 1 {
		t.Errorf("runs = %v, want 1", got)
	}
}

func TestCollector_Disabled(t *testing.T) {
	collector := Disabled()

	collector.RecordFile(ResultError, time.Millisecond, 10)
	collector.RecordError("io")
	collector.RecordWatchRun(1, time.Millisecond)

	if got := testutil.ToFloat64(collector.files.filesTotal.WithLabelValues(ResultError)); got != 0 {
		t.Errorf("disabled collector recorded %v files", got)
	}
	if got := testutil.ToFloat64(collector.watch.runsTotal); got != 0 {
		t.Errorf("disabled collector recorded %v runs", got)
	}
}

func TestCollector_Handler(t *testing.T) {
	collector := NewCollector(testConfig(), nil)
	collector.RecordFile(ResultChanged, time.Millisecond, 10)

	server := httptest.NewServer(collector.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL)
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), `test_files_total{result="changed"} 1`) {
		t.Errorf("metrics output missing the file counter:\n%s", body)
	}
}

func TestGather_Names(t *testing.T) {
	collector := NewCollector(testConfig(), nil)
	collector.RecordFile(ResultChanged, time.Millisecond, 10)
	collector.RecordStage("parse", time.Millisecond)
	collector.RecordError("io")
	collector.RecordWatchEvent("WRITE")
	collector.RecordWatchRun(1, time.Millisecond)

	families, err := collector.Registry().Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	got := make(map[string]bool)
	for _, f := range families {
		got[f.GetName()] = true
	}
	for _, name := range []string{
		"test_files_total",
		"test_file_duration_seconds",
		"test_file_size_bytes",
		"test_stage_duration_seconds",
		"test_errors_total",
		"test_watch_events_total",
		"test_watch_runs_total",
		"test_watch_run_files",
		"test_watch_run_duration_seconds",
	} {
		if !got[name] {
			t.Errorf("missing metric family %s", name)
		}
	}
}
