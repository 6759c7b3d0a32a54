package scrollarea

import "time"

// Timeout is a cancelable single-shot timer that can be re-armed at any
// time. Starting it again replaces the pending callback.
type Timeout struct {
	sched  Scheduler
	cancel func()
	gen    uint64
}

// NewTimeout creates an idle timeout on sched.
func NewTimeout(sched Scheduler) *Timeout {
	return &Timeout{sched: sched}
}

// Start arms the timeout, clearing any pending callback first.
func (t *Timeout) Start(d time.Duration, fn func()) {
	t.Clear()
	t.gen++
	gen := t.gen
	t.cancel = t.sched.AfterFunc(d, func() {
		if t.gen != gen {
			return
		}
		t.cancel = nil
		fn()
	})
}

// Clear drops the pending callback, if any. Safe to call repeatedly.
func (t *Timeout) Clear() {
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	t.gen++
}

// Pending reports whether a callback is armed.
func (t *Timeout) Pending() bool {
	return t.cancel != nil
}
