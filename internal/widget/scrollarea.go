// Package widget assembles a complete scroll area: the dom parts built by
// the renderer and the scrollarea controllers that drive them, with every
// dom event routed to the controller that owns it.
package widget

import (
	"time"

	"github.com/dshills/scrollarea/internal/dom"
	"github.com/dshills/scrollarea/internal/renderer"
	"github.com/dshills/scrollarea/internal/renderer/core"
	"github.com/dshills/scrollarea/internal/scrollarea"
)

// maxSettlePasses bounds the layout and recompute rounds of one frame.
// A corner appearing takes four; anything beyond is a feedback loop.
const maxSettlePasses = 8

// Flusher runs queued microtasks. Both loop.Loop and loop.Manual are
// Flushers.
type Flusher interface {
	Flush()
}

// Options configures a ScrollArea.
type Options struct {
	Direction scrollarea.Direction
	Threshold scrollarea.OverflowEdgeThreshold

	// ScrollTimeout is the settle window of the scrolling flags.
	ScrollTimeout time.Duration

	// MinThumbSize is in cells. Zero selects one cell.
	MinThumbSize float64

	// KeepMounted keeps both tracks rendered without overflow.
	KeepMounted bool

	// TrackSize is the track thickness in cells. Zero selects one.
	TrackSize int
}

// ScrollArea is one mounted scroll area.
type ScrollArea struct {
	doc   *dom.Document
	flush Flusher
	parts renderer.Parts
	opts  Options

	root     *scrollarea.Root
	viewport *scrollarea.Viewport
	content  *scrollarea.Content
	bars     map[scrollarea.Orientation]*scrollarea.Scrollbar
	thumbs   map[scrollarea.Orientation]*scrollarea.Thumb
	corner   *scrollarea.Corner

	barMounted    map[scrollarea.Orientation]bool
	cornerMounted bool
	tracks        [2]trackBox

	unwatch func()
	closed  bool
}

// New builds a scroll area under parent and mounts its parts.
func New(doc *dom.Document, parent *dom.Element, flush Flusher, opts Options) (*ScrollArea, error) {
	if opts.MinThumbSize <= 0 {
		opts.MinThumbSize = 1
	}
	if opts.TrackSize <= 0 {
		opts.TrackSize = 1
	}

	parts := renderer.NewParts(doc, parent, opts.Direction)
	root, err := scrollarea.NewRoot(doc.Env(), parts.Root, scrollarea.Options{
		OverflowEdgeThreshold: opts.Threshold,
		ScrollTimeout:         opts.ScrollTimeout,
		MinThumbSize:          opts.MinThumbSize,
		Direction:             opts.Direction,
	})
	if err != nil {
		parts.Root.Remove()
		return nil, err
	}

	a := &ScrollArea{
		doc:        doc,
		flush:      flush,
		parts:      parts,
		opts:       opts,
		root:       root,
		bars:       make(map[scrollarea.Orientation]*scrollarea.Scrollbar, 2),
		thumbs:     make(map[scrollarea.Orientation]*scrollarea.Thumb, 2),
		barMounted: make(map[scrollarea.Orientation]bool, 2),
	}
	if err := a.build(); err != nil {
		a.Close()
		return nil, err
	}
	a.bind()
	if err := a.viewport.Mount(); err != nil {
		a.Close()
		return nil, err
	}
	a.content.Mount()
	a.syncMounts()
	a.unwatch = root.Watch(func(scrollarea.State) { a.syncMounts() })
	return a, nil
}

func (a *ScrollArea) build() error {
	var err error
	if a.viewport, err = scrollarea.NewViewport(a.root, a.parts.Viewport); err != nil {
		return err
	}
	if a.content, err = scrollarea.NewContent(a.viewport, a.parts.Content); err != nil {
		return err
	}
	for _, o := range []scrollarea.Orientation{scrollarea.Vertical, scrollarea.Horizontal} {
		sb, err := scrollarea.NewScrollbar(a.root, a.parts.Scrollbar(o), scrollarea.ScrollbarOptions{
			Orientation: o,
			KeepMounted: a.opts.KeepMounted,
		})
		if err != nil {
			return err
		}
		th, err := scrollarea.NewThumb(sb, a.parts.Thumb(o))
		if err != nil {
			return err
		}
		a.bars[o], a.thumbs[o] = sb, th
	}
	a.corner, err = scrollarea.NewCorner(a.root, a.parts.Corner)
	return err
}

// bind routes dom events to the controllers.
func (a *ScrollArea) bind() {
	root := a.parts.Root
	root.On(dom.EventPointerEnter, func(ev *dom.Event) { a.root.HandlePointerEnterOrMove(ev.Pointer) })
	root.On(dom.EventPointerMove, func(ev *dom.Event) { a.root.HandlePointerEnterOrMove(ev.Pointer) })
	root.On(dom.EventPointerLeave, func(ev *dom.Event) { a.root.HandlePointerLeave(ev.Pointer) })

	vp := a.parts.Viewport
	vp.On(dom.EventScroll, func(*dom.Event) { a.viewport.HandleScroll() })
	interact := func(*dom.Event) { a.viewport.HandleUserInteraction() }
	for _, t := range []dom.EventType{dom.EventWheel, dom.EventPointerEnter, dom.EventPointerMove, dom.EventKeyDown} {
		vp.On(t, interact)
	}

	for o, sb := range a.bars {
		el := a.parts.Scrollbar(o)
		el.On(dom.EventWheel, func(ev *dom.Event) { sb.HandleWheel(ev.Wheel) })
		el.On(dom.EventPointerDown, func(ev *dom.Event) { sb.HandlePointerDown(ev.Pointer) })
		el.On(dom.EventPointerUp, func(ev *dom.Event) { sb.HandlePointerUp(ev.Pointer) })

		th := a.thumbs[o]
		knob := a.parts.Thumb(o)
		knob.On(dom.EventPointerDown, func(ev *dom.Event) { th.HandlePointerDown(ev.Pointer) })
		knob.On(dom.EventPointerMove, func(ev *dom.Event) { th.HandlePointerMove(ev.Pointer) })
		knob.On(dom.EventPointerUp, func(ev *dom.Event) {
			th.HandlePointerUp(ev.Pointer)
			ev.StopPropagation()
		})
	}
}

// syncMounts mounts and unmounts the tracks, thumbs and corner to match
// what the root says should render.
func (a *ScrollArea) syncMounts() {
	if a.closed {
		return
	}
	changed := false
	for _, o := range []scrollarea.Orientation{scrollarea.Vertical, scrollarea.Horizontal} {
		sb, th := a.bars[o], a.thumbs[o]
		want := sb.ShouldRender()
		if want == a.barMounted[o] {
			continue
		}
		changed = true
		if want {
			if err := sb.Mount(); err != nil {
				a.root.Logger().Warn("mount %s scrollbar: %v", o, err)
				continue
			}
			if err := th.Mount(); err != nil {
				a.root.Logger().Warn("mount %s thumb: %v", o, err)
			}
		} else {
			th.Unmount()
			sb.Unmount()
		}
		a.barMounted[o] = want
	}

	if want := a.corner.ShouldRender(); want != a.cornerMounted {
		changed = true
		if want {
			if err := a.corner.Mount(); err != nil {
				a.root.Logger().Warn("mount corner: %v", err)
			}
		} else {
			a.corner.Unmount()
		}
		a.cornerMounted = want
	}
	if changed {
		a.viewport.ScheduleRecompute()
	}
}

// frameKey is everything Layout reads from the scroll area.
type frameKey struct {
	state  scrollarea.State
	x, y   bool
	corner bool
}

func (a *ScrollArea) key() frameKey {
	return frameKey{
		state:  a.root.State(),
		x:      a.barMounted[scrollarea.Horizontal],
		y:      a.barMounted[scrollarea.Vertical],
		corner: a.cornerMounted,
	}
}

// Frame lays the area out in the given cells with content of the given
// extent, then delivers observer callbacks and runs the geometry passes
// they trigger until the layout stops changing.
func (a *ScrollArea) Frame(area core.Rect, contentW, contentH int) {
	if a.closed {
		return
	}
	for range maxSettlePasses {
		before := a.key()
		a.layout(area, contentW, contentH)
		n := a.doc.Commit()
		a.flush.Flush()
		if n == 0 && a.key() == before {
			return
		}
	}
	a.layout(area, contentW, contentH)
	a.root.Logger().Debug("frame did not settle after %d passes", maxSettlePasses)
}

func (a *ScrollArea) layout(area core.Rect, contentW, contentH int) {
	renderer.Layout(a.parts, area, renderer.LayoutOptions{
		Direction:     a.opts.Direction,
		ContentWidth:  contentW,
		ContentHeight: contentH,
		ShowX:         a.barMounted[scrollarea.Horizontal],
		ShowY:         a.barMounted[scrollarea.Vertical],
		ShowCorner:    a.cornerMounted,
		TrackSize:     a.opts.TrackSize,
	})
	// Track length depends on the corner and a remounted track measures
	// zero until it is shown again; no observer watches either.
	tracks := [2]trackBox{boxOf(a.parts.ScrollbarY), boxOf(a.parts.ScrollbarX)}
	if tracks != a.tracks {
		a.tracks = tracks
		a.viewport.ScheduleRecompute()
	}
}

// trackBox is what the geometry engine measures on a track.
type trackBox struct {
	bounds   scrollarea.Rect
	rendered bool
}

func boxOf(el *dom.Element) trackBox {
	return trackBox{bounds: el.Bounds(), rendered: el.Rendered()}
}

// Parts returns the dom elements of the area.
func (a *ScrollArea) Parts() renderer.Parts { return a.parts }

// Root returns the controller owning the shared state.
func (a *ScrollArea) Root() *scrollarea.Root { return a.root }

// State returns the root's derived state.
func (a *ScrollArea) State() scrollarea.State { return a.root.State() }

// Mounted reports whether the track for o is mounted.
func (a *ScrollArea) Mounted(o scrollarea.Orientation) bool { return a.barMounted[o] }

// CornerMounted reports whether the corner is mounted.
func (a *ScrollArea) CornerMounted() bool { return a.cornerMounted }

// Focus gives the viewport keyboard focus.
func (a *ScrollArea) Focus() { a.doc.Focus(a.parts.Viewport) }

// Offset returns the native scroll offset of the viewport.
func (a *ScrollArea) Offset() scrollarea.Coords {
	return scrollarea.Coords{X: a.parts.Viewport.ScrollLeft(), Y: a.parts.Viewport.ScrollTop()}
}

// ScrollTo writes both native offsets. The viewport clamps them to its
// current range, so call it after the first Frame.
func (a *ScrollArea) ScrollTo(c scrollarea.Coords) {
	a.parts.Viewport.SetScrollLeft(c.X)
	a.parts.Viewport.SetScrollTop(c.Y)
}

// Close unmounts every part, stops the root and removes the area from the
// document. Safe to call more than once.
func (a *ScrollArea) Close() {
	if a.closed {
		return
	}
	a.closed = true
	if a.unwatch != nil {
		a.unwatch()
	}
	if a.corner != nil {
		a.corner.Unmount()
	}
	for o, th := range a.thumbs {
		th.Unmount()
		a.bars[o].Unmount()
	}
	if a.content != nil {
		a.content.Unmount()
	}
	if a.viewport != nil {
		a.viewport.Unmount()
	}
	a.root.Close()
	a.parts.Root.Remove()
}
