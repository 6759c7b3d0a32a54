package loop

import (
	"sort"
	"sync"
	"time"
)

// Manual is a deterministic Scheduler driven by the caller. Time only moves
// through Advance, and microtasks only run through Flush or Advance.
// Queue may be called from any goroutine; everything else belongs to the
// test goroutine.
type Manual struct {
	now    time.Duration
	timers []*manualTimer
	seq    uint64

	mu    sync.Mutex
	micro []func()
}

type manualTimer struct {
	at       time.Duration
	seq      uint64
	fn       func()
	canceled bool
}

// NewManual creates a manual scheduler at time zero.
func NewManual() *Manual {
	return &Manual{}
}

// Queue schedules a microtask.
func (m *Manual) Queue(fn func()) {
	m.mu.Lock()
	m.micro = append(m.micro, fn)
	m.mu.Unlock()
}

// AfterFunc schedules fn at now+d.
func (m *Manual) AfterFunc(d time.Duration, fn func()) func() {
	m.seq++
	t := &manualTimer{at: m.now + d, seq: m.seq, fn: fn}
	m.timers = append(m.timers, t)
	return func() { t.canceled = true }
}

// Now returns the elapsed virtual time.
func (m *Manual) Now() time.Duration {
	return m.now
}

// Flush runs microtasks until none remain, including ones queued while
// flushing.
func (m *Manual) Flush() {
	for {
		m.mu.Lock()
		batch := m.micro
		m.micro = nil
		m.mu.Unlock()
		if len(batch) == 0 {
			return
		}
		for _, fn := range batch {
			fn()
		}
	}
}

// Advance moves virtual time forward by d, firing due timers in deadline
// order and flushing microtasks after each one.
func (m *Manual) Advance(d time.Duration) {
	target := m.now + d
	m.Flush()
	for {
		t := m.nextDue(target)
		if t == nil {
			break
		}
		m.now = t.at
		t.canceled = true
		t.fn()
		m.Flush()
	}
	m.now = target
	m.compact()
}

// PendingTimers returns the number of live timers.
func (m *Manual) PendingTimers() int {
	n := 0
	for _, t := range m.timers {
		if !t.canceled {
			n++
		}
	}
	return n
}

// PendingMicrotasks returns the number of queued microtasks.
func (m *Manual) PendingMicrotasks() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.micro)
}

func (m *Manual) nextDue(limit time.Duration) *manualTimer {
	live := make([]*manualTimer, 0, len(m.timers))
	for _, t := range m.timers {
		if !t.canceled && t.at <= limit {
			live = append(live, t)
		}
	}
	if len(live) == 0 {
		return nil
	}
	sort.Slice(live, func(i, j int) bool {
		if live[i].at != live[j].at {
			return live[i].at < live[j].at
		}
		return live[i].seq < live[j].seq
	})
	return live[0]
}

func (m *Manual) compact() {
	kept := m.timers[:0]
	for _, t := range m.timers {
		if !t.canceled {
			kept = append(kept, t)
		}
	}
	m.timers = kept
}
