package dom

import "github.com/dshills/scrollarea/internal/scrollarea"

// EventType identifies the kind of event.
type EventType uint8

const (
	EventPointerDown EventType = iota + 1
	EventPointerMove
	EventPointerUp
	EventPointerEnter
	EventPointerLeave
	EventWheel
	EventScroll
	EventKeyDown
)

var eventNames = map[EventType]string{
	EventPointerDown:  "pointerdown",
	EventPointerMove:  "pointermove",
	EventPointerUp:    "pointerup",
	EventPointerEnter: "pointerenter",
	EventPointerLeave: "pointerleave",
	EventWheel:        "wheel",
	EventScroll:       "scroll",
	EventKeyDown:      "keydown",
}

func (t EventType) String() string {
	if s, ok := eventNames[t]; ok {
		return s
	}
	return "unknown"
}

// Bubbles reports whether events of this type propagate to ancestors.
func (t EventType) Bubbles() bool {
	switch t {
	case EventPointerEnter, EventPointerLeave, EventScroll:
		return false
	}
	return true
}

// Key is a keyboard event payload.
type Key struct {
	Name  string
	Rune  rune
	Ctrl  bool
	Alt   bool
	Shift bool
}

// Event travels from its target up through the ancestors, crossing
// shadow roots to their hosts.
type Event struct {
	Type EventType

	// Exactly one payload is set, matching Type. Scroll events carry none.
	Pointer *scrollarea.PointerEvent
	Wheel   *scrollarea.WheelEvent
	Key     *Key

	Target        *Element
	CurrentTarget *Element

	stopped bool
}

// StopPropagation keeps the event from reaching further ancestors.
func (e *Event) StopPropagation() { e.stopped = true }

// Stopped reports whether StopPropagation was called.
func (e *Event) Stopped() bool { return e.stopped }

// DefaultPrevented reports whether a handler suppressed the default
// action of a pointer or wheel event.
func (e *Event) DefaultPrevented() bool {
	switch {
	case e.Pointer != nil:
		return e.Pointer.DefaultPrevented()
	case e.Wheel != nil:
		return e.Wheel.DefaultPrevented()
	}
	return false
}

// Handler receives dispatched events.
type Handler func(*Event)

// propagationPath is target followed by its ancestors.
func propagationPath(target *Element) []*Element {
	var path []*Element
	for n := target; n != nil; {
		path = append(path, n)
		if n.parent != nil {
			n = n.parent
		} else {
			n = n.host
		}
	}
	return path
}
