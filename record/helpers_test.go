package record

import (
	"testing"

	"github.com/goliatone/go-catalog-sync/apperr"
)

func assertKindNotFound(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected a not_found error, got nil")
	}
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}
