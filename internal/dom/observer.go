package dom

import "github.com/dshills/scrollarea/internal/scrollarea"

type observeKind uint8

const (
	observeResize observeKind = iota
	observeVisibility
)

type observation struct {
	kind    observeKind
	target  *Element
	fn      func()
	primed  bool
	size    scrollarea.Size
	visible bool
	dropped bool
}

func (o *observation) measure() (scrollarea.Size, bool) {
	s := scrollarea.Size{Width: o.target.OffsetWidth(), Height: o.target.OffsetHeight()}
	return s, o.target.Connected() && s.Width > 0 && s.Height > 0
}

// changed records the current measurement and reports whether the
// observer should be told.
func (o *observation) changed() bool {
	size, visible := o.measure()
	first := !o.primed
	o.primed = true
	var diff bool
	switch o.kind {
	case observeResize:
		diff = size != o.size
	case observeVisibility:
		diff = visible != o.visible
	}
	o.size, o.visible = size, visible
	return first || diff
}

func (d *Document) observe(kind observeKind, target scrollarea.Box, fn func()) func() {
	el, ok := target.(*Element)
	if !ok || el == nil || fn == nil {
		return func() {}
	}
	o := &observation{kind: kind, target: el, fn: fn}
	d.observations = append(d.observations, o)
	return func() {
		if o.dropped {
			return
		}
		o.dropped = true
		for i, x := range d.observations {
			if x == o {
				d.observations = append(d.observations[:i], d.observations[i+1:]...)
				break
			}
		}
	}
}

// Commit ends a layout pass. Each observer registered since the previous
// commit receives its initial callback; the others are called when the
// size or visibility of their target changed. It returns the number of
// callbacks delivered.
func (d *Document) Commit() int {
	pending := append([]*observation(nil), d.observations...)
	n := 0
	for _, o := range pending {
		if o.dropped || !o.changed() {
			continue
		}
		n++
		o.fn()
	}
	return n
}

// Observers returns the number of live observations.
func (d *Document) Observers() int { return len(d.observations) }

type resizeObserver struct{ d *Document }

func (r resizeObserver) Observe(target scrollarea.Box, fn func()) func() {
	return r.d.observe(observeResize, target, fn)
}

type visibilityObserver struct{ d *Document }

func (v visibilityObserver) Observe(target scrollarea.Box, fn func()) func() {
	return v.d.observe(observeVisibility, target, fn)
}
