package concurrent

import (
	"sync"
	"testing"
	"time"
)

func TestLockRegistryMutualExclusion(t *testing.T) {
	reg := DefaultLockRegistry()
	name := "resource-a"

	h1 := reg.Acquire(name)
	acquired := make(chan struct{})
	go func() {
		h2 := reg.Acquire(name)
		close(acquired)
		h2.Release()
	}()

	select {
	case <-acquired:
		t.Fatalf("expected second Acquire to block while first holds the lock")
	case <-time.After(50 * time.Millisecond):
	}

	h1.Release()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatalf("expected second Acquire to succeed after Release")
	}
}

func TestLockRegistryReleaseIsIdempotent(t *testing.T) {
	reg := DefaultLockRegistry()
	h := reg.Acquire("resource-b")
	h.Release()
	h.Release() // must not panic or double-unlock
}

func TestLockRegistryDifferentNamesDontBlock(t *testing.T) {
	reg := DefaultLockRegistry()
	h1 := reg.Acquire("resource-c")
	defer h1.Release()

	done := make(chan struct{})
	go func() {
		h2 := reg.Acquire("resource-d")
		h2.Release()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("expected unrelated resource name to acquire immediately")
	}
}

func TestLockRegistryConcurrentAcquireReleaseNoPanic(t *testing.T) {
	reg := DefaultLockRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h := reg.Acquire("resource-e")
			h.Release()
		}()
	}
	wg.Wait()
}
