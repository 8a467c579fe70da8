package cli

import (
	"errors"
	"fmt"
	"testing"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		want   int
		silent bool
	}{
		{name: "nil", err: nil, want: 0},
		{name: "exit error", err: &ExitError{Code: 1}, want: 1, silent: true},
		{name: "wrapped exit error", err: fmt.Errorf("check: %w", &ExitError{Code: 3}), want: 3, silent: true},
		{name: "config error", err: NewConfigError("format.indent", "invalid"), want: 2},
		{name: "command error", err: NewCommandError("fmt", errors.New("boom")), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
			if got := Silent(tt.err); got != tt.silent {
				t.Errorf("Silent() = %v, want %v", got, tt.silent)
			}
		})
	}
}

func TestCommandError(t *testing.T) {
	cause := errors.New("file not found")
	err := NewCommandError("parse", cause)

	if err.Error() != "command parse failed: file not found" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("CommandError should unwrap to its cause")
	}
}

func TestConfigError(t *testing.T) {
	err := NewConfigError("output", "unknown format")
	if err.Error() != "config error in output: unknown format" {
		t.Errorf("Error() = %q", err.Error())
	}
}
