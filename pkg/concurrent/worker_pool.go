// © 2025 arclet authors. MIT License.
package concurrent

import (
	"sync"
	"time"
)

const idlePollInterval = 100 * time.Millisecond

// WorkerPool runs N workers draining a shared PriorityQueue through one
// caller-supplied callback. All workers share a single inner mutex, so
// callback invocations are serialized across workers by design; callers
// whose callback is re-entrancy-safe may prefer N independent queues
// instead of relaxing this lock.
type WorkerPool[T any] struct {
	queue    *PriorityQueue[T]
	callback func(T)
	running  *Flag
	callMu   sync.Mutex
	wg       sync.WaitGroup
}

// NewWorkerPool starts n workers consuming from queue via callback.
func NewWorkerPool[T any](n int, queue *PriorityQueue[T], callback func(T)) *WorkerPool[T] {
	p := &WorkerPool[T]{
		queue:    queue,
		callback: callback,
		running:  NewFlag(true),
	}
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go p.loop()
	}
	return p
}

func (p *WorkerPool[T]) loop() {
	defer p.wg.Done()
	for p.running.Get() {
		item, ok := p.queue.Pop()
		if !ok {
			time.Sleep(idlePollInterval)
			continue
		}
		p.callMu.Lock()
		p.callback(item)
		p.callMu.Unlock()
	}
}

// Shutdown stops accepting new work. Workers finish whatever item they are
// currently processing and exit; Shutdown blocks until all have joined.
func (p *WorkerPool[T]) Shutdown() {
	p.running.Set(false)
	p.wg.Wait()
}
