package dom

import (
	"errors"
	"time"

	"github.com/dshills/scrollarea/internal/scrollarea"
)

// ErrAnimationCanceled is delivered by Finished when an animation is
// canceled before it completes.
var ErrAnimationCanceled = errors.New("dom: animation canceled")

// Animation is a timed transition running on an element.
type Animation struct {
	el       *Element
	done     chan error
	stop     func()
	finished bool
}

// Animate starts an animation on e that finishes after d.
func (e *Element) Animate(d time.Duration) *Animation {
	a := &Animation{el: e, done: make(chan error, 1)}
	e.animations = append(e.animations, a)
	if e.doc.sched == nil {
		return a
	}
	a.stop = e.doc.sched.AfterFunc(d, func() { a.settle(nil) })
	return a
}

// Finished implements scrollarea.Animation.
func (a *Animation) Finished() <-chan error { return a.done }

// Running reports whether the animation has neither finished nor been
// canceled.
func (a *Animation) Running() bool { return !a.finished }

// Cancel stops the animation. Finished delivers ErrAnimationCanceled.
func (a *Animation) Cancel() {
	if a.stop != nil {
		a.stop()
	}
	a.settle(ErrAnimationCanceled)
}

func (a *Animation) settle(err error) {
	if a.finished {
		return
	}
	a.finished = true
	a.done <- err
	for i, x := range a.el.animations {
		if x == a {
			a.el.animations = append(a.el.animations[:i], a.el.animations[i+1:]...)
			break
		}
	}
}

// Animations lists the animations running on target and its descendants,
// shadow trees included.
func (d *Document) Animations(target scrollarea.Box) []scrollarea.Animation {
	el, ok := target.(*Element)
	if !ok || el == nil {
		return nil
	}
	var out []scrollarea.Animation
	el.walk(func(n *Element) {
		for _, a := range n.animations {
			out = append(out, a)
		}
	})
	return out
}
