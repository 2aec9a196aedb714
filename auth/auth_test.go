package auth

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-catalog-sync/apperr"
	"github.com/goliatone/go-catalog-sync/kv/memory"
	"github.com/goliatone/go-catalog-sync/record"
)

func newTestStore(t *testing.T, cfg Config) (*Store, *memory.Store) {
	t.Helper()
	mem := memory.New()
	return NewStore(mem, record.NewJSONCodec(), cfg), mem
}

func TestStore_SignUpAndSessionLookup(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t, DefaultConfig())

	token, err := store.SignUp(ctx, "Jane@Example.com", "s3cret-pass", "Jane")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if token == "" {
		t.Fatal("expected a session token")
	}

	identity, ok, err := store.Session(ctx, token)
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	if !ok {
		t.Fatal("expected a valid session")
	}
	if identity.Email != "jane@example.com" {
		t.Fatalf("expected normalized email, got %q", identity.Email)
	}
	if identity.Admin {
		t.Fatal("signup must not grant admin")
	}
}

func TestStore_SignUpConflictPreservesPassword(t *testing.T) {
	ctx := context.Background()
	store, mem := newTestStore(t, DefaultConfig())

	if _, err := store.SignUp(ctx, "jane@example.com", "original-pass", "Jane"); err != nil {
		t.Fatalf("signup: %v", err)
	}
	before, _, err := mem.Get(ctx, userKey("jane@example.com"))
	if err != nil {
		t.Fatalf("read user: %v", err)
	}

	_, err = store.SignUp(ctx, "jane@example.com", "other-pass", "Impostor")
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	after, _, err := mem.Get(ctx, userKey("jane@example.com"))
	if err != nil {
		t.Fatalf("read user: %v", err)
	}
	if !bytes.Equal(before, after) {
		t.Fatal("conflicting signup must not overwrite the existing user record")
	}

	// The original password still works.
	if _, err := store.Login(ctx, "jane@example.com", "original-pass"); err != nil {
		t.Fatalf("login with original password: %v", err)
	}
}

func TestStore_LoginUnknownAndWrongPasswordShareKind(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t, DefaultConfig())

	if _, err := store.SignUp(ctx, "jane@example.com", "s3cret-pass", ""); err != nil {
		t.Fatalf("signup: %v", err)
	}

	_, unknownErr := store.Login(ctx, "nobody@example.com", "whatever")
	_, wrongErr := store.Login(ctx, "jane@example.com", "wrong")

	if !apperr.IsKind(unknownErr, apperr.KindUnauthorized) {
		t.Fatalf("unknown email: expected unauthorized, got %v", unknownErr)
	}
	if !apperr.IsKind(wrongErr, apperr.KindUnauthorized) {
		t.Fatalf("wrong password: expected unauthorized, got %v", wrongErr)
	}
	if unknownErr.Error() == wrongErr.Error() {
		t.Fatal("messages should differ even though the kind matches")
	}
}

func TestStore_AdminLogin(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig()
	cfg.AdminEmail = "admin@example.com"
	cfg.AdminPassword = "super-secret"
	store, _ := newTestStore(t, cfg)

	if err := store.EnsureAdmin(ctx); err != nil {
		t.Fatalf("ensure admin: %v", err)
	}

	token, err := store.Login(ctx, "admin@example.com", "super-secret")
	if err != nil {
		t.Fatalf("admin login: %v", err)
	}
	identity, ok, err := store.Session(ctx, token)
	if err != nil || !ok {
		t.Fatalf("session: ok=%v err=%v", ok, err)
	}
	if !identity.Admin {
		t.Fatal("expected admin identity")
	}

	if _, err := store.Login(ctx, "admin@example.com", "guessed"); !apperr.IsKind(err, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestStore_SessionExpiry(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig()
	cfg.SessionTTL = time.Hour
	store, _ := newTestStore(t, cfg)

	now := time.Now()
	store.nowFunc = func() time.Time { return now }

	token, err := store.SignUp(ctx, "jane@example.com", "s3cret-pass", "")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	if _, ok, _ := store.Session(ctx, token); !ok {
		t.Fatal("expected fresh session to resolve")
	}

	store.nowFunc = func() time.Time { return now.Add(2 * time.Hour) }
	if _, ok, _ := store.Session(ctx, token); ok {
		t.Fatal("expected expired session to be rejected")
	}

	// The expired session was removed, not just hidden.
	store.nowFunc = func() time.Time { return now }
	if _, ok, _ := store.Session(ctx, token); ok {
		t.Fatal("expected expired session to be deleted")
	}
}

func TestStore_LogoutIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t, DefaultConfig())

	token, err := store.SignUp(ctx, "jane@example.com", "s3cret-pass", "")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	if err := store.Logout(ctx, token); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, ok, _ := store.Session(ctx, token); ok {
		t.Fatal("expected session to be gone after logout")
	}
	if err := store.Logout(ctx, token); err != nil {
		t.Fatalf("second logout must not fail: %v", err)
	}
	if err := store.Logout(ctx, "never-issued"); err != nil {
		t.Fatalf("logout of unknown token must not fail: %v", err)
	}
}
