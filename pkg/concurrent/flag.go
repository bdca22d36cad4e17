// Package concurrent is arclet's concurrency substrate: a generator
// primitive with bounded-buffer producer/consumer handoff, a priority queue,
// a fixed-size worker pool, an async event loop, a named-resource lock
// registry, and a thread-safe flag. kv, diskcache and tree are built on top
// of these.
//
// © 2025 arclet authors. MIT License.
package concurrent

import "sync/atomic"

// Flag is a thread-safe boolean used for cooperative cancellation, shared by
// Generator and WorkerPool.
type Flag struct {
	v atomic.Bool
}

// NewFlag constructs a Flag with the given initial value.
func NewFlag(initial bool) *Flag {
	f := &Flag{}
	f.v.Store(initial)
	return f
}

// Set stores v.
func (f *Flag) Set(v bool) { f.v.Store(v) }

// Get reads the current value.
func (f *Flag) Get() bool { return f.v.Load() }
