// Package loop provides the single-threaded event loop the scroll area runs
// on: a task queue fed from any goroutine, a microtask queue drained after
// every task, and cancelable single-shot timers whose callbacks run on the
// loop goroutine.
package loop

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrClosed is returned by Run when the loop was closed.
var ErrClosed = errors.New("loop closed")

// Scheduler is the deferred-execution surface consumed by the scroll area.
type Scheduler interface {
	// Queue schedules fn to run after the current task, before any
	// further task or timer.
	Queue(fn func())

	// AfterFunc schedules fn to run once after d. The returned cancel
	// func is idempotent and safe to call after the timer fired.
	AfterFunc(d time.Duration, fn func()) (cancel func())
}

// Loop is a Scheduler backed by a goroutine running Run.
type Loop struct {
	tasks chan func()
	wake  chan struct{}
	done  chan struct{}

	mu     sync.Mutex
	micro  []func()
	timers map[uint64]*time.Timer
	nextID uint64
	closed bool
}

// Option configures a Loop.
type Option func(*Loop)

// WithQueueSize sets the task channel buffer size.
func WithQueueSize(n int) Option {
	return func(l *Loop) {
		if n > 0 {
			l.tasks = make(chan func(), n)
		}
	}
}

// New creates a loop. Call Run to start processing.
func New(opts ...Option) *Loop {
	l := &Loop{
		tasks:  make(chan func(), 256),
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
		timers: make(map[uint64]*time.Timer),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Post enqueues fn as a task. Safe to call from any goroutine.
// Returns false if the loop is closed.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.tasks <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Queue schedules a microtask. Safe to call from any goroutine.
func (l *Loop) Queue(fn func()) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.micro = append(l.micro, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// AfterFunc schedules fn on the loop after d.
func (l *Loop) AfterFunc(d time.Duration, fn func()) func() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return func() {}
	}
	l.nextID++
	id := l.nextID
	l.timers[id] = time.AfterFunc(d, func() {
		l.Post(func() {
			l.mu.Lock()
			_, live := l.timers[id]
			delete(l.timers, id)
			l.mu.Unlock()
			if live {
				fn()
			}
		})
	})
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if t, ok := l.timers[id]; ok {
			t.Stop()
			delete(l.timers, id)
		}
	}
}

// PendingTimers returns the number of armed timers.
func (l *Loop) PendingTimers() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.timers)
}

// Run processes tasks until ctx is canceled or Close is called.
// Must be called from a single goroutine.
func (l *Loop) Run(ctx context.Context) error {
	for {
		l.Flush()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.done:
			return ErrClosed
		case fn := <-l.tasks:
			fn()
		case <-l.wake:
		}
	}
}

// RunPending runs every queued task and microtask without blocking.
func (l *Loop) RunPending() {
	for {
		l.Flush()
		select {
		case fn := <-l.tasks:
			fn()
		default:
			return
		}
	}
}

// Flush runs queued microtasks, including ones queued while flushing.
// Call it only from the loop goroutine.
func (l *Loop) Flush() {
	for {
		l.mu.Lock()
		if len(l.micro) == 0 {
			l.mu.Unlock()
			return
		}
		batch := l.micro
		l.micro = nil
		l.mu.Unlock()

		for _, fn := range batch {
			fn()
		}
	}
}

// Close stops all pending timers and ends Run. Safe to call repeatedly.
func (l *Loop) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.closed = true
	for id, t := range l.timers {
		t.Stop()
		delete(l.timers, id)
	}
	l.micro = nil
	close(l.done)
}
