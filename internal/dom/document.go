package dom

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/dshills/scrollarea/internal/logging"
	"github.com/dshills/scrollarea/internal/scrollarea"
)

// ErrPropertyRegistered is returned when a custom property name is
// registered twice.
var ErrPropertyRegistered = scrollarea.ErrPropertyRegistered

// Document owns an element tree and the browser-like services around it.
type Document struct {
	sched scrollarea.Scheduler
	log   *logging.Logger
	body  *Element
	focus *Element

	capture map[int]*Element
	hover   []*Element

	observations []*observation
	styles       map[string]string
	properties   map[string]scrollarea.PropertyDefinition

	// LineStep and PageOverlap tune keyboard scrolling of scroll
	// containers.
	LineStep    float64
	PageOverlap float64
}

// NewDocument creates an empty document. Scroll events and animation
// timers are scheduled on sched.
func NewDocument(sched scrollarea.Scheduler, log *logging.Logger) *Document {
	if log == nil {
		log = logging.Null()
	}
	d := &Document{
		sched:       sched,
		log:         log.WithComponent("dom"),
		capture:     make(map[int]*Element),
		styles:      make(map[string]string),
		properties:  make(map[string]scrollarea.PropertyDefinition),
		LineStep:    1,
		PageOverlap: 1,
	}
	d.body = d.NewElement("body")
	return d
}

// Body returns the root of the tree.
func (d *Document) Body() *Element { return d.body }

// NewElement creates a detached element.
func (d *Document) NewElement(tag string) *Element {
	return &Element{doc: d, tag: tag}
}

// Focus makes e the target of keyboard events.
func (d *Document) Focus(e *Element) { d.focus = e }

// Focused returns the focused element, or nil.
func (d *Document) Focused() *Element { return d.focus }

// Capture returns the element holding the pointer, if any.
func (d *Document) Capture(pointerID int) *Element { return d.capture[pointerID] }

func (d *Document) releaseAll(e *Element) {
	for id, c := range d.capture {
		if c == e {
			delete(d.capture, id)
		}
	}
	if d.focus == e {
		d.focus = nil
	}
}

// Dispatch delivers ev to target and, for bubbling types, to each
// ancestor until a handler stops propagation.
func (d *Document) Dispatch(target *Element, ev *Event) {
	if target == nil || ev == nil {
		return
	}
	ev.Target = target
	for _, el := range propagationPath(target) {
		ev.CurrentTarget = el
		if ev.Pointer != nil {
			ev.Pointer.Target = target
			ev.Pointer.CurrentTarget = el
		}
		hs := append([]Handler(nil), el.handlers[ev.Type]...)
		for _, h := range hs {
			h(ev)
		}
		if ev.stopped || !ev.Type.Bubbles() {
			break
		}
	}
	ev.CurrentTarget = nil
}

// HitTest returns the deepest rendered element containing the point.
// Later siblings paint over earlier ones, a shadow tree paints over the
// light children of its host, and scroll containers clip their content.
func (d *Document) HitTest(x, y float64) *Element {
	return hit(d.body, x, y, nil)
}

func hit(e *Element, x, y float64, clip *scrollarea.Rect) *Element {
	if e == nil || e.hidden {
		return nil
	}
	r := e.bounds
	r.X += e.tx
	r.Y += e.ty
	inClip := clip == nil || clip.Contains(x, y)

	childClip := clip
	if e.scrollable {
		c := r
		if clip != nil {
			c = intersect(c, *clip)
		}
		childClip = &c
	}
	if e.shadow != nil {
		if h := hitChildren(e.shadow.children, x, y, childClip); h != nil {
			return h
		}
	}
	if h := hitChildren(e.children, x, y, childClip); h != nil {
		return h
	}
	if inClip && r.Contains(x, y) {
		return e
	}
	return nil
}

func hitChildren(kids []*Element, x, y float64, clip *scrollarea.Rect) *Element {
	for i := len(kids) - 1; i >= 0; i-- {
		if h := hit(kids[i], x, y, clip); h != nil {
			return h
		}
	}
	return nil
}

func intersect(a, b scrollarea.Rect) scrollarea.Rect {
	x0 := math.Max(a.X, b.X)
	y0 := math.Max(a.Y, b.Y)
	x1 := math.Min(a.X+a.Width, b.X+b.Width)
	y1 := math.Min(a.Y+a.Height, b.Y+b.Height)
	if x1 < x0 || y1 < y0 {
		return scrollarea.Rect{X: x0, Y: y0}
	}
	return scrollarea.Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// PointerDown routes a press. Hover is refreshed first, then the event
// goes to the capturing element or the element under the pointer.
func (d *Document) PointerDown(p scrollarea.PointerEvent) *Event {
	return d.routePointer(EventPointerDown, p)
}

// PointerMove routes pointer motion, firing enter and leave as the
// pointer crosses element boundaries.
func (d *Document) PointerMove(p scrollarea.PointerEvent) *Event {
	return d.routePointer(EventPointerMove, p)
}

// PointerUp routes a release. Capture is released implicitly afterwards.
func (d *Document) PointerUp(p scrollarea.PointerEvent) *Event {
	ev := d.routePointer(EventPointerUp, p)
	delete(d.capture, p.PointerID)
	return ev
}

// PointerExit reports that the pointer left the document.
func (d *Document) PointerExit(p scrollarea.PointerEvent) {
	d.updateHover(nil, p)
}

func (d *Document) routePointer(t EventType, p scrollarea.PointerEvent) *Event {
	over := d.HitTest(p.ClientX, p.ClientY)
	d.updateHover(over, p)

	target := over
	if c, ok := d.capture[p.PointerID]; ok {
		target = c
	}
	pe := p
	ev := &Event{Type: t, Pointer: &pe}
	if target == nil {
		return ev
	}
	d.Dispatch(target, ev)
	return ev
}

func (d *Document) updateHover(over *Element, p scrollarea.PointerEvent) {
	next := propagationPath(over)
	in := make(map[*Element]bool, len(next))
	for _, el := range next {
		in[el] = true
	}
	was := make(map[*Element]bool, len(d.hover))
	for _, el := range d.hover {
		was[el] = true
	}

	for _, el := range d.hover {
		if !in[el] {
			el.hovered = false
			pe := p
			d.Dispatch(el, &Event{Type: EventPointerLeave, Pointer: &pe})
		}
	}
	for i := len(next) - 1; i >= 0; i-- {
		el := next[i]
		if !was[el] {
			el.hovered = true
			pe := p
			d.Dispatch(el, &Event{Type: EventPointerEnter, Pointer: &pe})
		}
	}
	d.hover = next
}

// Wheel routes a wheel event to the element under the point. Unless a
// handler prevents it, the nearest scroll container that can move in the
// delta's direction scrolls.
func (d *Document) Wheel(x, y float64, w scrollarea.WheelEvent) *Event {
	we := w
	ev := &Event{Type: EventWheel, Wheel: &we}
	target := d.HitTest(x, y)
	if target == nil {
		return ev
	}
	d.Dispatch(target, ev)
	if ev.DefaultPrevented() || we.CtrlKey {
		return ev
	}
	for _, el := range propagationPath(target) {
		if el.scrollable && canScroll(el, we.DeltaX, we.DeltaY) {
			el.ScrollBy(we.DeltaX, we.DeltaY)
			break
		}
	}
	return ev
}

func canScroll(e *Element, dx, dy float64) bool {
	maxTop := math.Max(0, e.ScrollHeight()-e.ClientHeight())
	if (dy > 0 && e.scrollTop < maxTop) || (dy < 0 && e.scrollTop > 0) {
		return true
	}
	limit := math.Max(0, e.ScrollWidth()-e.ClientWidth())
	lo, hi := 0.0, limit
	if e.dir == scrollarea.RTL {
		lo, hi = -limit, 0
	}
	return (dx > 0 && e.scrollLeft < hi) || (dx < 0 && e.scrollLeft > lo)
}

// KeyDown routes a key to the focused element, or the body. Unless a
// handler stops it, navigation keys scroll the nearest scroll container.
func (d *Document) KeyDown(k Key) *Event {
	target := d.focus
	if target == nil {
		target = d.body
	}
	kk := k
	ev := &Event{Type: EventKeyDown, Key: &kk}
	d.Dispatch(target, ev)
	if ev.stopped {
		return ev
	}
	for _, el := range propagationPath(target) {
		if el.scrollable {
			d.keyScroll(el, k)
			break
		}
	}
	return ev
}

func (d *Document) keyScroll(e *Element, k Key) {
	page := math.Max(d.LineStep, e.ClientHeight()-d.PageOverlap)
	switch k.Name {
	case "Up":
		e.ScrollBy(0, -d.LineStep)
	case "Down":
		e.ScrollBy(0, d.LineStep)
	case "Left":
		e.ScrollBy(-d.LineStep, 0)
	case "Right":
		e.ScrollBy(d.LineStep, 0)
	case "PgUp":
		e.ScrollBy(0, -page)
	case "PgDn":
		e.ScrollBy(0, page)
	case "Home":
		e.SetScrollTop(0)
	case "End":
		e.SetScrollTop(e.ScrollHeight())
	}
}

// InjectStyle installs a global stylesheet under id.
func (d *Document) InjectStyle(id, css string) {
	d.styles[id] = css
	d.log.Debug("stylesheet %s injected", id)
}

// Stylesheet returns the stylesheet injected under id.
func (d *Document) Stylesheet(id string) (string, bool) {
	css, ok := d.styles[id]
	return css, ok
}

// RegisterProperty records a typed custom property.
func (d *Document) RegisterProperty(def scrollarea.PropertyDefinition) error {
	if _, ok := d.properties[def.Name]; ok {
		return ErrPropertyRegistered
	}
	d.properties[def.Name] = def
	return nil
}

// RegisteredProperties returns the registered property names, sorted.
func (d *Document) RegisteredProperties() []string {
	names := make([]string, 0, len(d.properties))
	for n := range d.properties {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Env returns scroll area capabilities backed by this document.
func (d *Document) Env() scrollarea.Env {
	return scrollarea.Env{
		Scheduler:  d.sched,
		Resize:     resizeObserver{d},
		Visibility: visibilityObserver{d},
		Properties: d,
		Styles:     d,
		Animations: d,
		Logger:     d.log,
	}
}

func parsePx(v string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(v), "px"), 64)
	if err != nil || math.IsNaN(f) {
		return 0
	}
	return f
}
