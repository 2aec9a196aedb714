// Package auth implements token-based session issuance over the key-value
// store. It deliberately stays parallel to the record repositories instead
// of reusing them: users and sessions have no archive concept and no
// id-list index, only point lookups by email and token.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/goliatone/go-catalog-sync/apperr"
	"github.com/goliatone/go-catalog-sync/kv"
	"github.com/goliatone/go-catalog-sync/record"
)

// Identity is what a resolved session exposes to callers.
type Identity struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Admin bool   `json:"admin"`
}

// User is the stored per-email account record.
type User struct {
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	PasswordHash []byte    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session maps an opaque bearer token to an identity.
type Session struct {
	Token     string    `json:"token"`
	Identity  Identity  `json:"identity"`
	CreatedAt time.Time `json:"created_at"`
}

// adminCredentials is the distinguished record checked before any per-email
// user lookup during login.
type adminCredentials struct {
	Email        string `json:"email"`
	PasswordHash []byte `json:"password_hash"`
}

// Config holds the auth settings.
type Config struct {
	// AdminEmail and AdminPassword seed the distinguished admin
	// credentials record at startup. Empty values skip the seeding.
	AdminEmail    string
	AdminPassword string
	// SessionTTL bounds session lifetime; lookups lazily delete expired
	// sessions. Zero disables expiry (not recommended).
	SessionTTL time.Duration
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() Config {
	return Config{SessionTTL: 30 * 24 * time.Hour}
}

const (
	userKeyPrefix    = "user:"
	sessionKeyPrefix = "session:"
	adminKey         = "auth:admin"
)

// Store issues and resolves sessions over the key-value store.
type Store struct {
	store kv.Store
	codec record.Codec
	cfg   Config

	nowFunc  func() time.Time
	newToken func() (string, error)
}

// NewStore creates an auth store.
func NewStore(store kv.Store, codec record.Codec, cfg Config) *Store {
	return &Store{
		store:    store,
		codec:    codec,
		cfg:      cfg,
		nowFunc:  time.Now,
		newToken: generateToken,
	}
}

// generateToken returns a 256 bit random bearer token, hex encoded.
func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func userKey(email string) string {
	return userKeyPrefix + strings.ToLower(strings.TrimSpace(email))
}

func sessionKey(token string) string {
	return sessionKeyPrefix + token
}

// EnsureAdmin writes the distinguished admin credentials record from the
// configuration. Called once at process start.
func (s *Store) EnsureAdmin(ctx context.Context) error {
	if s.cfg.AdminEmail == "" || s.cfg.AdminPassword == "" {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	data, err := s.codec.Marshal(adminCredentials{
		Email:        strings.ToLower(s.cfg.AdminEmail),
		PasswordHash: hash,
	})
	if err != nil {
		return fmt.Errorf("encode admin credentials: %w", err)
	}
	return s.store.Set(ctx, adminKey, data)
}

// SignUp creates a user record and an associated session. The two writes
// are not atomic; a failure between them leaves a user without a session,
// which the next login heals.
func (s *Store) SignUp(ctx context.Context, email, password, name string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", apperr.New(apperr.KindInvalidInput, "email and password are required")
	}

	exists, err := s.store.Has(ctx, userKey(email))
	if err != nil {
		return "", err
	}
	if exists {
		return "", apperr.Newf(apperr.KindConflict, "an account for %s already exists", email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	user := User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    s.nowFunc().UTC(),
	}
	data, err := s.codec.Marshal(user)
	if err != nil {
		return "", fmt.Errorf("encode user: %w", err)
	}
	if err := s.store.Set(ctx, userKey(email), data); err != nil {
		return "", err
	}

	return s.issueSession(ctx, Identity{Email: email, Name: name})
}

// Login authenticates against the distinguished admin credentials record
// first and the per-email user record second, then issues a fresh session
// token. Unknown email and wrong password differ only in the message,
// never in the error kind.
func (s *Store) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if data, ok, err := s.store.Get(ctx, adminKey); err != nil {
		return "", err
	} else if ok {
		var admin adminCredentials
		if err := s.codec.Unmarshal(data, &admin); err != nil {
			return "", apperr.Wrap(apperr.KindInternal, "corrupt admin credentials record", err)
		}
		if admin.Email == email {
			if bcrypt.CompareHashAndPassword(admin.PasswordHash, []byte(password)) != nil {
				return "", apperr.New(apperr.KindUnauthorized, "invalid credentials")
			}
			return s.issueSession(ctx, Identity{Email: email, Admin: true})
		}
	}

	data, ok, err := s.store.Get(ctx, userKey(email))
	if err != nil {
		return "", err
	}
	if !ok {
		return "", apperr.Newf(apperr.KindUnauthorized, "no account for %s", email)
	}
	var user User
	if err := s.codec.Unmarshal(data, &user); err != nil {
		return "", apperr.Wrap(apperr.KindInternal, "corrupt user record", err)
	}
	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return "", apperr.New(apperr.KindUnauthorized, "invalid credentials")
	}
	return s.issueSession(ctx, Identity{Email: user.Email, Name: user.Name})
}

func (s *Store) issueSession(ctx context.Context, identity Identity) (string, error) {
	token, err := s.newToken()
	if err != nil {
		return "", err
	}
	session := Session{
		Token:     token,
		Identity:  identity,
		CreatedAt: s.nowFunc().UTC(),
	}
	data, err := s.codec.Marshal(session)
	if err != nil {
		return "", fmt.Errorf("encode session: %w", err)
	}
	if err := s.store.Set(ctx, sessionKey(token), data); err != nil {
		return "", err
	}
	return token, nil
}

// Session resolves a bearer token to an identity. A missing, invalid, or
// expired token is a normal unauthenticated state, reported through the
// boolean, never through the error.
func (s *Store) Session(ctx context.Context, token string) (Identity, bool, error) {
	if token == "" {
		return Identity{}, false, nil
	}
	data, ok, err := s.store.Get(ctx, sessionKey(token))
	if err != nil || !ok {
		return Identity{}, false, err
	}
	var session Session
	if err := s.codec.Unmarshal(data, &session); err != nil {
		return Identity{}, false, apperr.Wrap(apperr.KindInternal, "corrupt session record", err)
	}
	if s.cfg.SessionTTL > 0 && s.nowFunc().Sub(session.CreatedAt) > s.cfg.SessionTTL {
		// Lazy expiry: remove the stale session and report no session.
		_ = s.store.Delete(ctx, sessionKey(token))
		return Identity{}, false, nil
	}
	return session.Identity, true, nil
}

// Logout deletes the session for token. Deleting a non-existent token is
// not an error.
func (s *Store) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.store.Delete(ctx, sessionKey(token))
}
