package scrollarea

import (
	"math"
	"testing"

	"github.com/dshills/scrollarea/internal/loop"
)

type fakeElement struct {
	name    string
	parent  *fakeElement
	host    *fakeElement
	width   float64
	height  float64
	padding Insets
	margin  Insets
	rect    Rect
	hovered bool

	tx, ty     float64
	transforms int
	props      map[string]string
	attrs      map[string]string
	captured   map[int]bool
}

func newFakeElement(name string, w, h float64) *fakeElement {
	return &fakeElement{
		name:     name,
		width:    w,
		height:   h,
		rect:     Rect{Width: w, Height: h},
		props:    make(map[string]string),
		attrs:    make(map[string]string),
		captured: make(map[int]bool),
	}
}

func (e *fakeElement) ParentNode() Node {
	if e.parent == nil {
		return nil
	}
	return e.parent
}

func (e *fakeElement) Host() Node {
	if e.host == nil {
		return nil
	}
	return e.host
}

func (e *fakeElement) OffsetWidth() float64  { return e.width }
func (e *fakeElement) OffsetHeight() float64 { return e.height }
func (e *fakeElement) Padding() Insets       { return e.padding }
func (e *fakeElement) Margin() Insets        { return e.margin }
func (e *fakeElement) BoundingRect() Rect    { return e.rect }
func (e *fakeElement) Hovered() bool         { return e.hovered }

func (e *fakeElement) SetTransform(x, y float64) {
	e.tx, e.ty = x, y
	e.transforms++
}

func (e *fakeElement) SetProperty(name, value string)  { e.props[name] = value }
func (e *fakeElement) SetAttribute(name, value string) { e.attrs[name] = value }
func (e *fakeElement) RemoveAttribute(name string)     { delete(e.attrs, name) }

func (e *fakeElement) Attribute(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

func (e *fakeElement) has(name string) bool {
	_, ok := e.attrs[name]
	return ok
}

func (e *fakeElement) SetPointerCapture(id int)     { e.captured[id] = true }
func (e *fakeElement) ReleasePointerCapture(id int) { delete(e.captured, id) }

// fakeViewport clamps its offsets the way a browser does.
type fakeViewport struct {
	*fakeElement
	scrollW, scrollH float64
	top, left        float64
	dir              Direction
}

func newFakeViewport(w, h, contentW, contentH float64) *fakeViewport {
	return &fakeViewport{
		fakeElement: newFakeElement("viewport", w, h),
		scrollW:     contentW,
		scrollH:     contentH,
	}
}

func (v *fakeViewport) ScrollWidth() float64  { return math.Max(v.scrollW, v.width) }
func (v *fakeViewport) ScrollHeight() float64 { return math.Max(v.scrollH, v.height) }
func (v *fakeViewport) ClientWidth() float64  { return v.width }
func (v *fakeViewport) ClientHeight() float64 { return v.height }
func (v *fakeViewport) ScrollTop() float64    { return v.top }
func (v *fakeViewport) ScrollLeft() float64   { return v.left }

func (v *fakeViewport) SetScrollTop(top float64) {
	v.top = clamp(top, 0, math.Max(0, v.ScrollHeight()-v.height))
}

func (v *fakeViewport) SetScrollLeft(left float64) {
	limit := math.Max(0, v.ScrollWidth()-v.width)
	if v.dir == RTL {
		v.left = clamp(left, -limit, 0)
		return
	}
	v.left = clamp(left, 0, limit)
}

type fakeObserver struct {
	fns          map[Box][]func()
	disconnected int
}

func newFakeObserver() *fakeObserver {
	return &fakeObserver{fns: make(map[Box][]func())}
}

func (o *fakeObserver) Observe(target Box, fn func()) func() {
	o.fns[target] = append(o.fns[target], fn)
	done := false
	return func() {
		if done {
			return
		}
		done = true
		o.disconnected++
		delete(o.fns, target)
	}
}

func (o *fakeObserver) fire(target Box) {
	for _, fn := range o.fns[target] {
		fn()
	}
}

type fakeAnimation struct {
	done chan error
}

func (a *fakeAnimation) Finished() <-chan error { return a.done }

type fakeAnimations struct {
	list []Animation
}

func (s *fakeAnimations) Animations(Box) []Animation { return s.list }

// fixture is a mounted scroll area with both tracks, thumbs and a corner.
// Tracks are 10 wide and span the viewport; nothing has padding.
type fixture struct {
	t      *testing.T
	sched  *loop.Manual
	resize *fakeObserver
	vis    *fakeObserver

	rootEl  *fakeElement
	vpEl    *fakeViewport
	contEl  *fakeElement
	sbYEl   *fakeElement
	sbXEl   *fakeElement
	thYEl   *fakeElement
	thXEl   *fakeElement
	cornrEl *fakeElement

	root    *Root
	vp      *Viewport
	content *Content
	sbY     *Scrollbar
	sbX     *Scrollbar
	thY     *Thumb
	thX     *Thumb
	corner  *Corner
}

func newFixture(t *testing.T, opts Options, w, h, contentW, contentH float64) *fixture {
	t.Helper()
	f := &fixture{
		t:       t,
		sched:   loop.NewManual(),
		resize:  newFakeObserver(),
		vis:     newFakeObserver(),
		rootEl:  newFakeElement("root", w, h),
		vpEl:    newFakeViewport(w, h, contentW, contentH),
		contEl:  newFakeElement("content", contentW, contentH),
		sbYEl:   newFakeElement("scrollbar-y", 10, h),
		sbXEl:   newFakeElement("scrollbar-x", w, 10),
		thYEl:   newFakeElement("thumb-y", 10, 0),
		thXEl:   newFakeElement("thumb-x", 0, 10),
		cornrEl: newFakeElement("corner", 0, 0),
	}
	f.vpEl.parent = f.rootEl
	f.vpEl.dir = opts.Direction
	f.contEl.parent = f.vpEl.fakeElement
	f.sbYEl.parent = f.rootEl
	f.sbXEl.parent = f.rootEl
	f.thYEl.parent = f.sbYEl
	f.thXEl.parent = f.sbXEl
	f.cornrEl.parent = f.rootEl
	f.sbYEl.rect = Rect{X: w - 10, Y: 0, Width: 10, Height: h}
	f.sbXEl.rect = Rect{X: 0, Y: h - 10, Width: w, Height: 10}

	env := Env{Scheduler: f.sched, Resize: f.resize, Visibility: f.vis}
	var err error
	f.root, err = NewRoot(env, f.rootEl, opts)
	must(t, err)
	f.vp, err = NewViewport(f.root, f.vpEl)
	must(t, err)
	f.content, err = NewContent(f.vp, f.contEl)
	must(t, err)
	f.sbY, err = NewScrollbar(f.root, f.sbYEl, ScrollbarOptions{Orientation: Vertical})
	must(t, err)
	f.sbX, err = NewScrollbar(f.root, f.sbXEl, ScrollbarOptions{Orientation: Horizontal})
	must(t, err)
	f.thY, err = NewThumb(f.sbY, f.thYEl)
	must(t, err)
	f.thX, err = NewThumb(f.sbX, f.thXEl)
	must(t, err)
	f.corner, err = NewCorner(f.root, f.cornrEl)
	must(t, err)
	return f
}

// mount mounts every part in tree order and runs the deferred first pass.
func (f *fixture) mount() {
	f.t.Helper()
	must(f.t, f.vp.Mount())
	f.content.Mount()
	must(f.t, f.sbY.Mount())
	must(f.t, f.thY.Mount())
	must(f.t, f.sbX.Mount())
	must(f.t, f.thX.Mount())
	must(f.t, f.corner.Mount())
	f.settle()
}

// settle runs queued microtasks and zero-delay timers, then sizes the
// thumbs from the committed thumb size the way a stylesheet would.
func (f *fixture) settle() {
	f.sched.Advance(0)
	ts := f.root.State().ThumbSize
	f.thYEl.height = ts.Height
	f.thXEl.width = ts.Width
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}
