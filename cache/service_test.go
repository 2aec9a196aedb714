package cache

import (
	"context"
	"errors"
	"testing"
)

// mockCacheService for testing the GetOrFetch wrapper.
type mockCacheService struct {
	result any
	err    error

	lastKey string
}

func (m *mockCacheService) GetOrFetch(ctx context.Context, key string, fetch func(ctx context.Context) (any, error)) (any, error) {
	m.lastKey = key
	if m.result != nil || m.err != nil {
		return m.result, m.err
	}
	return fetch(ctx)
}

func (m *mockCacheService) Delete(ctx context.Context, key string) error {
	return nil
}

func (m *mockCacheService) DeleteByPrefix(ctx context.Context, prefix string) error {
	return nil
}

func TestGetOrFetch_ValidResult(t *testing.T) {
	expectedValue := "test-value"
	mock := &mockCacheService{result: expectedValue}

	result, err := GetOrFetch(context.Background(), mock, "test-key", func(ctx context.Context) (string, error) {
		return expectedValue, nil
	})

	if err != nil {
		t.Errorf("expected no error but got: %v", err)
	}
	if result != expectedValue {
		t.Errorf("expected %q but got %q", expectedValue, result)
	}
}

func TestGetOrFetch_MissRunsFetch(t *testing.T) {
	mock := &mockCacheService{}

	fetchCalled := false
	result, err := GetOrFetch(context.Background(), mock, "miss-key", func(ctx context.Context) (int, error) {
		fetchCalled = true
		return 42, nil
	})

	if err != nil {
		t.Errorf("expected no error but got: %v", err)
	}
	if !fetchCalled {
		t.Error("expected fetch function to be called on cache miss")
	}
	if result != 42 {
		t.Errorf("expected 42 but got %d", result)
	}
	if mock.lastKey != "miss-key" {
		t.Errorf("expected key to pass through, got %q", mock.lastKey)
	}
}

func TestGetOrFetch_TypeAssertionFailure(t *testing.T) {
	// A cached value of the wrong type means two call sites share a key.
	mock := &mockCacheService{result: "wrong-type"}

	result, err := GetOrFetch(context.Background(), mock, "test-key", func(ctx context.Context) (int, error) {
		return 42, nil
	})

	if !errors.Is(err, ErrInvalidResultType) {
		t.Errorf("expected ErrInvalidResultType but got: %v", err)
	}
	if result != 0 {
		t.Errorf("expected zero value but got: %v", result)
	}
}

func TestGetOrFetch_NilInterfaceNoPanic(t *testing.T) {
	mock := &mockCacheService{}

	type someInterface interface {
		DoSomething() string
	}

	result, err := GetOrFetch(context.Background(), mock, "test-key", func(ctx context.Context) (someInterface, error) {
		return nil, nil
	})

	if err != nil {
		t.Errorf("expected no error but got: %v", err)
	}
	if result != nil {
		t.Errorf("expected nil result but got: %v", result)
	}
}

func TestGetOrFetch_FetchErrorPassesThrough(t *testing.T) {
	mock := &mockCacheService{}
	boom := errors.New("source of truth unavailable")

	_, err := GetOrFetch(context.Background(), mock, "err-key", func(ctx context.Context) (string, error) {
		return "", boom
	})

	if !errors.Is(err, boom) {
		t.Errorf("expected fetch error to pass through, got: %v", err)
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		name  string
		parts []string
		want  string
	}{
		{"single segment", []string{"item"}, "item"},
		{"kind method id", []string{"item", "Get", "abc-123"}, "item::Get::abc-123"},
		{"empty segment preserved", []string{"item", "", "x"}, "item::::x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Key(tt.parts...); got != tt.want {
				t.Errorf("Key(%v) = %q, want %q", tt.parts, got, tt.want)
			}
		})
	}
}
