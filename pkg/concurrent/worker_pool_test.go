package concurrent

import (
	"sync"
	"testing"
	"time"
)

func TestWorkerPoolProcessesAllItems(t *testing.T) {
	q := NewPriorityQueue[int](0)
	for i := 0; i < 20; i++ {
		q.Push(i, nil)
	}

	var mu sync.Mutex
	seen := make(map[int]bool)
	pool := NewWorkerPool(4, q, func(v int) {
		mu.Lock()
		seen[v] = true
		mu.Unlock()
	})

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		mu.Lock()
		n := len(seen)
		mu.Unlock()
		if n == 20 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	pool.Shutdown()

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 20 {
		t.Fatalf("expected all 20 items processed, got %d", len(seen))
	}
}

func TestWorkerPoolShutdownStopsWorkers(t *testing.T) {
	q := NewPriorityQueue[int](0)
	pool := NewWorkerPool(2, q, func(int) {})
	pool.Shutdown()

	q.Push(1, nil)
	time.Sleep(50 * time.Millisecond)
	if _, ok := q.Pop(); !ok {
		t.Fatalf("expected item to remain unconsumed after shutdown")
	}
}
