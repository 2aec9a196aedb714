// Package callcontrol provides the call-rate helpers consumed by UI-facing
// code: debounce, throttle, and memoize. They are deliberately small and
// process-local.
package callcontrol

import (
	"sync"
	"time"
)

// Debounce returns a function that delays invoking fn until calls have
// settled for the quiet window. Only the last call within a burst runs.
// The returned stop function cancels a pending invocation.
func Debounce(window time.Duration, fn func()) (call func(), stop func()) {
	var mu sync.Mutex
	var timer *time.Timer

	call = func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(window, fn)
	}
	stop = func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
			timer = nil
		}
	}
	return call, stop
}

// Throttle returns a function that invokes fn at most once per window.
// Calls inside the window are dropped, not queued.
func Throttle(window time.Duration, fn func()) func() {
	var mu sync.Mutex
	var last time.Time

	return func() {
		mu.Lock()
		now := time.Now()
		if now.Sub(last) < window {
			mu.Unlock()
			return
		}
		last = now
		mu.Unlock()
		fn()
	}
}

// Memoize caches fn's results by key with unbounded retention for the
// process lifetime. fn runs at most once per key; concurrent callers for
// the same key share the single result.
func Memoize[K comparable, V any](fn func(K) V) func(K) V {
	var mu sync.Mutex
	results := make(map[K]V)
	inflight := make(map[K]*sync.WaitGroup)

	return func(key K) V {
		for {
			mu.Lock()
			if v, ok := results[key]; ok {
				mu.Unlock()
				return v
			}
			if wg, ok := inflight[key]; ok {
				mu.Unlock()
				wg.Wait()
				continue
			}
			wg := &sync.WaitGroup{}
			wg.Add(1)
			inflight[key] = wg
			mu.Unlock()

			v := fn(key)

			mu.Lock()
			results[key] = v
			delete(inflight, key)
			mu.Unlock()
			wg.Done()
			return v
		}
	}
}
