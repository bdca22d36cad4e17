// © 2025 arclet authors. MIT License.
package concurrent

import "sync"

// lockState tracks a single named resource's mutex and the number of
// goroutines currently waiting to acquire it.
type lockState struct {
	mu      sync.Mutex
	waiters int
}

// LockRegistry is a named-resource mutual-exclusion manager: a singleton
// mapping resource name to lockState, garbage-collected entry-by-entry once
// its waiter count returns to zero.
type LockRegistry struct {
	mu      sync.Mutex
	entries map[string]*lockState
}

var (
	registryOnce sync.Once
	registry     *LockRegistry
)

// DefaultLockRegistry returns the process-wide singleton registry,
// constructing it on first use (the OnceCell idiom referenced by the design
// notes — the singleton property holds by construction, not by a runtime
// check).
func DefaultLockRegistry() *LockRegistry {
	registryOnce.Do(func() {
		registry = &LockRegistry{entries: make(map[string]*lockState)}
	})
	return registry
}

// LockHandle is a single-owner acquisition token; Release is idempotent
// (a double Release is a no-op).
type LockHandle struct {
	reg      *LockRegistry
	name     string
	state    *lockState
	released bool
	mu       sync.Mutex
}

// Acquire blocks until the named resource's lock is held by this handle.
func (r *LockRegistry) Acquire(name string) *LockHandle {
	r.mu.Lock()
	st, ok := r.entries[name]
	if !ok {
		st = &lockState{}
		r.entries[name] = st
		r.mu.Unlock()
		st.mu.Lock()
		return &LockHandle{reg: r, name: name, state: st}
	}
	st.waiters++
	r.mu.Unlock()

	st.mu.Lock()

	r.mu.Lock()
	st.waiters--
	r.mu.Unlock()

	return &LockHandle{reg: r, name: name, state: st}
}

// Release unlocks the resource and, if no other goroutine is waiting on it,
// removes the registry entry. Safe to call more than once.
func (h *LockHandle) Release() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.released {
		return
	}
	h.released = true

	h.reg.mu.Lock()
	h.state.mu.Unlock()
	if h.state.waiters == 0 {
		delete(h.reg.entries, h.name)
	}
	h.reg.mu.Unlock()
}
