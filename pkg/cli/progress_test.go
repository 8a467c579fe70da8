package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestSimpleProgress(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgressReporter(&buf)

	clock := time.Unix(0, 0)
	p.now = func() time.Time { return clock }

	p.Start(4)
	clock = clock.Add(time.Second)
	p.Update(2)

	if !strings.Contains(buf.String(), "50.0% (2/4) 2.0 files/s") {
		t.Errorf("progress output = %q", buf.String())
	}

	p.Finish()
	out := buf.String()
	if !strings.Contains(out, "100.0% (4/4)") || !strings.HasSuffix(out, "\n") {
		t.Errorf("finished output = %q", out)
	}
}

func TestSimpleProgress_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgressReporter(&buf)
	p.Start(0)
	p.Update(0)
	p.Finish()
	if buf.Len() != 0 {
		t.Errorf("empty progress printed %q", buf.String())
	}
}

func TestSignalContext(t *testing.T) {
	parent, cancel := SignalContext(t.Context())
	defer cancel()

	select {
	case <-parent.Done():
		t.Error("context should not be cancelled initially")
	default:
	}

	cancel()
	<-parent.Done()
}
