// © 2025 arclet authors. MIT License.
package concurrent

import "time"

// EventLoop is a single-thread callback-repeater: it owns one worker that
// repeatedly invokes a user callback until Stop clears the running flag. It
// has no queue of events — the callback itself is the event.
type EventLoop struct {
	running *Flag
	done    chan struct{}
}

// NewEventLoop starts a background goroutine invoking callback in a loop,
// sleeping interval between invocations.
func NewEventLoop(interval time.Duration, callback func()) *EventLoop {
	l := &EventLoop{running: NewFlag(true), done: make(chan struct{})}
	go func() {
		defer close(l.done)
		for l.running.Get() {
			callback()
			if interval > 0 {
				time.Sleep(interval)
			}
		}
	}()
	return l
}

// Stop clears the running flag and blocks until the loop goroutine exits.
func (l *EventLoop) Stop() {
	l.running.Set(false)
	<-l.done
}
