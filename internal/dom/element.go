package dom

import (
	"math"
	"sort"

	"github.com/dshills/scrollarea/internal/scrollarea"
)

// Element is a node in the document tree.
type Element struct {
	doc      *Document
	tag      string
	parent   *Element
	children []*Element
	shadow   *Element
	host     *Element

	bounds  scrollarea.Rect
	padding scrollarea.Insets
	margin  scrollarea.Insets
	hidden  bool

	attrs map[string]string
	props map[string]string
	tx    float64
	ty    float64

	scrollable bool
	scrollW    float64
	scrollH    float64
	scrollTop  float64
	scrollLeft float64
	dir        scrollarea.Direction
	scrollDue  bool

	hovered    bool
	handlers   map[EventType][]Handler
	animations []*Animation
}

// Tag returns the element's tag name.
func (e *Element) Tag() string { return e.tag }

// Parent returns the parent element, or nil for the document body,
// detached elements and shadow roots.
func (e *Element) Parent() *Element { return e.parent }

// Children returns the light children in paint order.
func (e *Element) Children() []*Element { return e.children }

// ShadowRoot returns the attached shadow root, if any.
func (e *Element) ShadowRoot() *Element { return e.shadow }

// ParentNode implements scrollarea.Node.
func (e *Element) ParentNode() scrollarea.Node {
	if e.parent == nil {
		return nil
	}
	return e.parent
}

// Host implements scrollarea.Node. Only shadow roots have a host.
func (e *Element) Host() scrollarea.Node {
	if e.host == nil {
		return nil
	}
	return e.host
}

// HostElement returns the element hosting this shadow root.
func (e *Element) HostElement() *Element { return e.host }

// AppendChild adds child as the last light child of e, detaching it from
// any previous parent.
func (e *Element) AppendChild(child *Element) *Element {
	if child == nil || child == e {
		return child
	}
	child.detach()
	child.parent = e
	e.children = append(e.children, child)
	return child
}

// AttachShadow creates the shadow root of e. Calling it again returns the
// existing root.
func (e *Element) AttachShadow() *Element {
	if e.shadow == nil {
		e.shadow = e.doc.NewElement("#shadow-root")
		e.shadow.host = e
	}
	return e.shadow
}

// Remove detaches e from its parent. Pointer captures held by e or its
// descendants are released.
func (e *Element) Remove() {
	e.detach()
	e.walk(func(n *Element) { e.doc.releaseAll(n) })
}

func (e *Element) detach() {
	p := e.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == e {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	e.parent = nil
}

// walk visits e, its shadow tree and its light descendants depth first.
func (e *Element) walk(fn func(*Element)) {
	fn(e)
	if e.shadow != nil {
		e.shadow.walk(fn)
	}
	for _, c := range e.children {
		c.walk(fn)
	}
}

// Connected reports whether e is attached to its document's body, either
// directly or through shadow hosts.
func (e *Element) Connected() bool {
	for n := e; n != nil; {
		if n == e.doc.body {
			return true
		}
		if n.parent != nil {
			n = n.parent
		} else {
			n = n.host
		}
	}
	return false
}

// SetBounds places the element in client coordinates.
func (e *Element) SetBounds(r scrollarea.Rect) { e.bounds = r }

// SetPadding sets the element's padding.
func (e *Element) SetPadding(in scrollarea.Insets) { e.padding = in }

// SetMargin sets the element's margin.
func (e *Element) SetMargin(in scrollarea.Insets) { e.margin = in }

// SetHidden takes the element out of layout. Hidden elements measure zero
// and are skipped by hit testing.
func (e *Element) SetHidden(v bool) { e.hidden = v }

// Rendered reports whether e and every ancestor are displayed.
func (e *Element) Rendered() bool {
	for n := e; n != nil; {
		if n.hidden {
			return false
		}
		if n.parent != nil {
			n = n.parent
		} else {
			n = n.host
		}
	}
	return true
}

// Bounds returns the placed rectangle regardless of visibility.
func (e *Element) Bounds() scrollarea.Rect { return e.bounds }

func (e *Element) OffsetWidth() float64 {
	if !e.Rendered() {
		return 0
	}
	return e.bounds.Width
}

func (e *Element) OffsetHeight() float64 {
	if !e.Rendered() {
		return 0
	}
	return e.bounds.Height
}

func (e *Element) Padding() scrollarea.Insets { return e.padding }
func (e *Element) Margin() scrollarea.Insets  { return e.margin }

// BoundingRect returns the client rectangle including any transform.
func (e *Element) BoundingRect() scrollarea.Rect {
	if !e.Rendered() {
		return scrollarea.Rect{}
	}
	r := e.bounds
	r.X += e.tx
	r.Y += e.ty
	return r
}

// SetTransform sets the element's translation.
func (e *Element) SetTransform(x, y float64) {
	e.tx, e.ty = x, y
}

// Transform returns the element's translation.
func (e *Element) Transform() (x, y float64) { return e.tx, e.ty }

// SetProperty writes a custom style property.
func (e *Element) SetProperty(name, value string) {
	if e.props == nil {
		e.props = make(map[string]string)
	}
	e.props[name] = value
}

// Property returns a style property set on e.
func (e *Element) Property(name string) (string, bool) {
	v, ok := e.props[name]
	return v, ok
}

// PropertyPx parses a pixel length property such as "12px". It returns 0
// when the property is missing or malformed.
func (e *Element) PropertyPx(name string) float64 {
	v, ok := e.props[name]
	if !ok {
		return 0
	}
	return parsePx(v)
}

func (e *Element) SetAttribute(name, value string) {
	if e.attrs == nil {
		e.attrs = make(map[string]string)
	}
	e.attrs[name] = value
}

func (e *Element) RemoveAttribute(name string) {
	delete(e.attrs, name)
}

func (e *Element) Attribute(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

// HasAttribute reports whether the attribute is present.
func (e *Element) HasAttribute(name string) bool {
	_, ok := e.attrs[name]
	return ok
}

// AttributeNames returns the present attribute names, sorted.
func (e *Element) AttributeNames() []string {
	names := make([]string, 0, len(e.attrs))
	for n := range e.attrs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Hovered reports whether the last pointer position was over e or one of
// its descendants.
func (e *Element) Hovered() bool { return e.hovered }

func (e *Element) SetPointerCapture(pointerID int) {
	e.doc.capture[pointerID] = e
}

func (e *Element) ReleasePointerCapture(pointerID int) {
	if e.doc.capture[pointerID] == e {
		delete(e.doc.capture, pointerID)
	}
}

// HasPointerCapture reports whether e holds the pointer.
func (e *Element) HasPointerCapture(pointerID int) bool {
	return e.doc.capture[pointerID] == e
}

// MakeScrollable turns e into a scroll container with the given inline
// direction.
func (e *Element) MakeScrollable(dir scrollarea.Direction) {
	e.scrollable = true
	e.dir = dir
}

// Scrollable reports whether e is a scroll container.
func (e *Element) Scrollable() bool { return e.scrollable }

// ScrollDirection returns the inline direction set by MakeScrollable.
func (e *Element) ScrollDirection() scrollarea.Direction { return e.dir }

// SetScrollSize sets the content extent of a scroll container. Offsets are
// re-clamped to the new range.
func (e *Element) SetScrollSize(w, h float64) {
	e.scrollW, e.scrollH = w, h
	e.SetScrollTop(e.scrollTop)
	e.SetScrollLeft(e.scrollLeft)
}

func (e *Element) ClientWidth() float64  { return e.OffsetWidth() }
func (e *Element) ClientHeight() float64 { return e.OffsetHeight() }

func (e *Element) ScrollWidth() float64 {
	return math.Max(e.scrollW, e.ClientWidth())
}

func (e *Element) ScrollHeight() float64 {
	return math.Max(e.scrollH, e.ClientHeight())
}

func (e *Element) ScrollTop() float64  { return e.scrollTop }
func (e *Element) ScrollLeft() float64 { return e.scrollLeft }

// SetScrollTop clamps v to [0, scrollHeight-clientHeight]. A change
// queues a scroll event.
func (e *Element) SetScrollTop(v float64) {
	limit := math.Max(0, e.ScrollHeight()-e.ClientHeight())
	v = math.Min(math.Max(v, 0), limit)
	if v == e.scrollTop {
		return
	}
	e.scrollTop = v
	e.queueScroll()
}

// SetScrollLeft clamps v to [0, max] left to right and [-max, 0] right to
// left. A change queues a scroll event.
func (e *Element) SetScrollLeft(v float64) {
	limit := math.Max(0, e.ScrollWidth()-e.ClientWidth())
	lo, hi := 0.0, limit
	if e.dir == scrollarea.RTL {
		lo, hi = -limit, 0
	}
	v = math.Min(math.Max(v, lo), hi)
	if v == e.scrollLeft {
		return
	}
	e.scrollLeft = v
	e.queueScroll()
}

// ScrollBy adds to both offsets.
func (e *Element) ScrollBy(dx, dy float64) {
	e.SetScrollLeft(e.scrollLeft + dx)
	e.SetScrollTop(e.scrollTop + dy)
}

// queueScroll coalesces offset changes within a turn into one event.
func (e *Element) queueScroll() {
	if e.scrollDue || e.doc.sched == nil {
		return
	}
	e.scrollDue = true
	e.doc.sched.Queue(func() {
		e.scrollDue = false
		e.doc.Dispatch(e, &Event{Type: EventScroll})
	})
}

// On registers a handler for events of type t reaching e.
func (e *Element) On(t EventType, h Handler) {
	if e.handlers == nil {
		e.handlers = make(map[EventType][]Handler)
	}
	e.handlers[t] = append(e.handlers[t], h)
}

// Off removes every handler of type t.
func (e *Element) Off(t EventType) {
	delete(e.handlers, t)
}

// Contains reports whether n is e or a descendant of e, crossing shadow
// boundaries.
func (e *Element) Contains(n *Element) bool {
	if n == nil {
		return false
	}
	return scrollarea.Contains(e, n)
}
