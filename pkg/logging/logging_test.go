package logging

import (
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{input: "debug", want: LevelDebug},
		{input: "info", want: LevelInfo},
		{input: "warn", want: LevelWarn},
		{input: "warning", want: LevelWarn},
		{input: "error", want: LevelError},
		{input: "ERROR", want: LevelError},
		{input: "verbose", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected level %d, got %d", tt.want, got)
			}
		})
	}
}

func TestWithLevel_DoesNotMutateReceiver(t *testing.T) {
	base := New("test")
	derived := base.WithLevel(LevelError)

	if base.level != LevelInfo {
		t.Fatalf("expected base logger to stay at info, got %d", base.level)
	}
	if derived.level != LevelError {
		t.Fatalf("expected derived logger at error, got %d", derived.level)
	}
}
