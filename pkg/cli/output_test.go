package cli

import (
	"bytes"
	"testing"
)

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{"csv", "", true},
	}
	for _, tt := range tests {
		got, err := ParseOutputFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseOutputFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestFormatters(t *testing.T) {
	names := []string{"count", "startswith"}

	tests := []struct {
		name   string
		format OutputFormat
		data   any
		want   string
	}{
		{"text lines", FormatText, names, "count\nstartswith\n"},
		{"text value", FormatText, 42, "42\n"},
		{"json", FormatJSON, names, "[\n  \"count\",\n  \"startswith\"\n]\n"},
		{"json no escaping", FormatJSON, map[string]string{"op": "<="}, "{\n  \"op\": \"<=\"\n}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := NewFormatter(tt.format).FormatTo(&buf, tt.data); err != nil {
				t.Fatalf("FormatTo() error = %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("FormatTo() = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}
