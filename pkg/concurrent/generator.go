// © 2025 arclet authors. MIT License.
package concurrent

import "sync"

// yieldChannel is the bounded FIFO handoff between a Generator's producer
// goroutine and its consumer: a queue, a done flag, and two condition
// signals (notEmpty for consumers, notFull for the producer).
type yieldChannel[T any] struct {
	mu       sync.Mutex
	notEmpty *sync.Cond
	notFull  *sync.Cond
	queue    []T
	done     bool
}

func newYieldChannel[T any]() *yieldChannel[T] {
	c := &yieldChannel[T]{}
	c.notEmpty = sync.NewCond(&c.mu)
	c.notFull = sync.NewCond(&c.mu)
	return c
}

// push blocks while the queue already holds 2 or more pending items, then
// enqueues v. Returns false without enqueuing if the channel was completed
// while waiting.
func (c *yieldChannel[T]) push(v T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for len(c.queue) >= 2 && !c.done {
		c.notFull.Wait()
	}
	if c.done {
		return false
	}
	c.queue = append(c.queue, v)
	c.notEmpty.Signal()
	return true
}

// pop blocks while the queue is empty and the channel isn't done, then
// dequeues the oldest item. Returns the zero value and false once the queue
// has drained and the channel is done.
func (c *yieldChannel[T]) pop() (v T, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for len(c.queue) == 0 && !c.done {
		c.notEmpty.Wait()
	}
	if len(c.queue) == 0 {
		return v, false
	}
	v = c.queue[0]
	c.queue = c.queue[1:]
	c.notFull.Signal()
	return v, true
}

// hasMore blocks while the queue is empty and the channel isn't done, then
// reports whether an item is queued.
func (c *yieldChannel[T]) hasMore() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for len(c.queue) == 0 && !c.done {
		c.notEmpty.Wait()
	}
	return len(c.queue) > 0
}

// complete is idempotent and wakes both sides.
func (c *yieldChannel[T]) complete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done {
		return
	}
	c.done = true
	c.notEmpty.Broadcast()
	c.notFull.Broadcast()
}

// Generator runs a single background producer that writes to a bounded
// yieldChannel; Next/HasMore are polled by a single consumer. Cancellation
// via QuitRemaining is idempotent and wakes the producer promptly at its
// next yield call.
type Generator[T any] struct {
	ch         *yieldChannel[T]
	wg         sync.WaitGroup
	terminated *Flag
}

// NewGenerator spawns produce in a background goroutine. produce should call
// yield repeatedly, stopping as soon as yield returns false.
func NewGenerator[T any](produce func(yield func(T) bool)) *Generator[T] {
	g := &Generator[T]{ch: newYieldChannel[T](), terminated: NewFlag(false)}
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		produce(g.ch.push)
		g.ch.complete()
	}()
	return g
}

// HasMore blocks until the producer has queued an item or finished, then
// reports whether a subsequent Next call would return a real item.
func (g *Generator[T]) HasMore() bool { return g.ch.hasMore() }

// Next blocks for the next produced item, or returns the zero value once the
// generator has completed and drained.
func (g *Generator[T]) Next() T {
	v, _ := g.ch.pop()
	return v
}

// IsTerminated reports whether QuitRemaining has been called.
func (g *Generator[T]) IsTerminated() bool { return g.terminated.Get() }

// QuitRemaining signals the producer to stop and wakes any blocked
// consumer/producer. Idempotent.
func (g *Generator[T]) QuitRemaining() {
	g.terminated.Set(true)
	g.ch.complete()
}

// Close cancels the generator and joins its background goroutine.
func (g *Generator[T]) Close() {
	g.QuitRemaining()
	g.wg.Wait()
}
