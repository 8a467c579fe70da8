package logging

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestContextKeys(t *testing.T) {
	ctx := context.Background()

	if GetRunID(ctx) != "" || GetFile(ctx) != "" || GetCommand(ctx) != "" {
		t.Error("empty context should have no fields")
	}

	ctx = WithRunID(ctx, "run-123")
	if got := GetRunID(ctx); got != "run-123" {
		t.Errorf("GetRunID() = %q, want %q", got, "run-123")
	}

	ctx = WithFile(ctx, "policy/authz.rego")
	if got := GetFile(ctx); got != "policy/authz.rego" {
		t.Errorf("GetFile() = %q, want %q", got, "policy/authz.rego")
	}

	ctx = WithCommand(ctx, "fmt")
	if got := GetCommand(ctx); got != "fmt" {
		t.Errorf("GetCommand() = %q, want %q", got, "fmt")
	}
}

func TestNewRunID(t *testing.T) {
	a := GetRunID(NewRunID(context.Background()))
	b := GetRunID(NewRunID(context.Background()))

	if _, err := uuid.Parse(a); err != nil {
		t.Errorf("run id %q is not a uuid: %v", a, err)
	}
	if a == b {
		t.Error("run ids should be unique")
	}
}

func TestExtractContextFields(t *testing.T) {
	tests := []struct {
		name string
		ctx  context.Context
		want []any
	}{
		{"empty", context.Background(), nil},
		{"file only", WithFile(context.Background(), "a.rego"), []any{"file", "a.rego"}},
		{
			"all fields in order",
			WithFile(WithCommand(WithRunID(context.Background(), "r"), "parse"), "b.rego"),
			[]any{"run_id", "r", "command", "parse", "file", "b.rego"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractContextFields(tt.ctx)
			if len(got) != len(tt.want) {
				t.Fatalf("extractContextFields() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("field %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
