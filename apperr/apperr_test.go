package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "plain typed error", err: New(KindNotFound, "category missing"), want: KindNotFound},
		{name: "wrapped typed error", err: fmt.Errorf("list: %w", New(KindConflict, "duplicate")), want: KindConflict},
		{name: "double wrap keeps outer kind", err: Wrap(KindStoreUnavailable, "redis down", New(KindNotFound, "x")), want: KindStoreUnavailable},
		{name: "foreign error", err: errors.New("boom"), want: KindInternal},
		{name: "nil", err: nil, want: KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Fatalf("expected kind %v, got %v", tt.want, got)
			}
		})
	}
}

func TestIsKind(t *testing.T) {
	err := Newf(KindInvalidInput, "bad field %q", "names")

	if !IsKind(err, KindInvalidInput) {
		t.Fatal("expected IsKind to match the carried kind")
	}
	if IsKind(err, KindNotFound) {
		t.Fatal("expected IsKind to reject a different kind")
	}
	if IsKind(nil, KindInternal) {
		t.Fatal("expected IsKind to reject nil")
	}
}

func TestError_MessageIncludesKindAndCause(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := Wrap(KindStoreUnavailable, "ping redis", cause)

	if got := err.Error(); got != "store_unavailable: ping redis: dial tcp: refused" {
		t.Fatalf("unexpected message: %q", got)
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected the cause to stay unwrappable")
	}
}
