package scrollarea

import (
	"time"

	"github.com/google/uuid"

	"github.com/dshills/scrollarea/internal/logging"
)

// Options configures a Root.
type Options struct {
	// OverflowEdgeThreshold is the per-edge dead zone in pixels. Negative
	// values are clamped to 0.
	OverflowEdgeThreshold OverflowEdgeThreshold

	// ScrollTimeout is the settle window for the scrolling flags.
	// Zero selects ScrollTimeout.
	ScrollTimeout time.Duration

	// MinThumbSize is the smallest thumb extent. Zero selects MinThumbSize.
	MinThumbSize float64

	Direction Direction
}

// State is a snapshot of the derived state a Root exposes.
type State struct {
	Hovering   bool
	ScrollingX bool
	ScrollingY bool
	Hidden     HiddenState
	Edges      OverflowEdges
	CornerSize Size
	ThumbSize  Size
}

// Flags returns the subset shared by root, viewport and content.
func (s State) Flags() Flags {
	return Flags{
		ScrollingX: s.ScrollingX,
		ScrollingY: s.ScrollingY,
		Hidden:     s.Hidden,
		Edges:      s.Edges,
	}
}

// handles is the element table. Parts fill it through the Register calls.
type handles struct {
	viewport   ViewportElement
	scrollbarX Element
	scrollbarY Element
	thumbX     ThumbElement
	thumbY     ThumbElement
	corner     Element
}

// Root owns the shared state of one scroll area: hover and scrolling
// flags, derived geometry, the element handle table and the drag gesture.
// A Root and all of its parts must be used from a single goroutine.
type Root struct {
	id  string
	el  RootElement
	env Env
	log *logging.Logger

	direction     Direction
	scrollTimeout time.Duration
	minThumbSize  float64
	threshold     OverflowEdgeThreshold

	hovering   *Cell[bool]
	scrollingX *Cell[bool]
	scrollingY *Cell[bool]
	cornerSize *Cell[Size]
	thumbSize  *Cell[Size]
	hidden     *Cell[HiddenState]
	edges      *Cell[OverflowEdges]

	scrollXTimeout *Timeout
	scrollYTimeout *Timeout
	position       Coords

	drag    dragSession
	handles handles

	unsubscribe []func()
	closed      bool
}

// NewRoot creates the controller for the scroll area whose outer surface
// is el.
func NewRoot(env Env, el RootElement, opts Options) (*Root, error) {
	if env.Scheduler == nil {
		return nil, ErrNoScheduler
	}
	if isNil(el) {
		return nil, ErrMissingElement
	}
	if opts.ScrollTimeout <= 0 {
		opts.ScrollTimeout = ScrollTimeout
	}
	if opts.MinThumbSize <= 0 {
		opts.MinThumbSize = MinThumbSize
	}

	id := uuid.NewString()
	r := &Root{
		id:             id,
		el:             el,
		env:            env,
		log:            env.logger().WithComponent("scrollarea").WithField("root", id[:8]),
		direction:      opts.Direction,
		scrollTimeout:  opts.ScrollTimeout,
		minThumbSize:   opts.MinThumbSize,
		threshold:      opts.OverflowEdgeThreshold.Normalize(),
		hovering:       NewCell(false),
		scrollingX:     NewCell(false),
		scrollingY:     NewCell(false),
		cornerSize:     NewCell(Size{}),
		thumbSize:      NewCell(Size{}),
		hidden:         NewCell(HiddenState{}),
		edges:          NewCell(OverflowEdges{}),
		scrollXTimeout: NewTimeout(env.Scheduler),
		scrollYTimeout: NewTimeout(env.Scheduler),
	}

	InjectDisableScrollbarStyle(env.Styles)

	r.syncAttributes()
	apply := func() { r.syncAttributes() }
	r.unsubscribe = append(r.unsubscribe,
		r.scrollingX.Subscribe(func(bool) { apply() }),
		r.scrollingY.Subscribe(func(bool) { apply() }),
		r.hidden.Subscribe(func(HiddenState) { apply() }),
		r.edges.Subscribe(func(OverflowEdges) { apply() }),
		r.cornerSize.Subscribe(func(Size) { apply() }),
	)
	return r, nil
}

// ID returns the instance id used to correlate log lines.
func (r *Root) ID() string { return r.id }

// Element returns the root surface.
func (r *Root) Element() RootElement { return r.el }

// Logger returns the logger tagged with this root's id.
func (r *Root) Logger() *logging.Logger { return r.log }

// Direction returns the inline direction.
func (r *Root) Direction() Direction { return r.direction }

// Threshold returns the normalized overflow edge threshold.
func (r *Root) Threshold() OverflowEdgeThreshold { return r.threshold }

// State returns a snapshot of the derived state.
func (r *Root) State() State {
	return State{
		Hovering:   r.hovering.Get(),
		ScrollingX: r.scrollingX.Get(),
		ScrollingY: r.scrollingY.Get(),
		Hidden:     r.hidden.Get(),
		Edges:      r.edges.Get(),
		CornerSize: r.cornerSize.Get(),
		ThumbSize:  r.thumbSize.Get(),
	}
}

// Flags returns the state flags shared by root, viewport and content.
func (r *Root) Flags() Flags {
	return r.State().Flags()
}

// Watch calls fn with a fresh snapshot after any derived state change.
func (r *Root) Watch(fn func(State)) (unsubscribe func()) {
	notify := func() { fn(r.State()) }
	subs := []func(){
		r.hovering.Subscribe(func(bool) { notify() }),
		r.scrollingX.Subscribe(func(bool) { notify() }),
		r.scrollingY.Subscribe(func(bool) { notify() }),
		r.hidden.Subscribe(func(HiddenState) { notify() }),
		r.edges.Subscribe(func(OverflowEdges) { notify() }),
		r.cornerSize.Subscribe(func(Size) { notify() }),
		r.thumbSize.Subscribe(func(Size) { notify() }),
	}
	return func() {
		for _, u := range subs {
			u()
		}
	}
}

// SetOverflowEdgeThreshold replaces the threshold and recomputes the edge
// flags against it.
func (r *Root) SetOverflowEdgeThreshold(t OverflowEdgeThreshold) {
	t = t.Normalize()
	if t == r.threshold {
		return
	}
	r.threshold = t
	r.log.Debug("overflow edge threshold set to %+v", t)
	r.Recompute()
}

// HandleScroll records a new native scroll offset. Each axis whose offset
// moved reports scrolling until the settle timeout passes without another
// delta on that axis.
func (r *Root) HandleScroll(pos Coords) {
	dx := pos.X - r.position.X
	dy := pos.Y - r.position.Y
	r.position = pos

	if dy != 0 {
		r.markScrolling(Vertical)
	}
	if dx != 0 {
		r.markScrolling(Horizontal)
	}
}

// Position returns the last offset passed to HandleScroll.
func (r *Root) Position() Coords { return r.position }

func (r *Root) markScrolling(o Orientation) {
	if r.closed {
		return
	}
	if o == Horizontal {
		r.scrollingX.Set(true)
		r.scrollXTimeout.Start(r.scrollTimeout, func() { r.scrollingX.Set(false) })
		return
	}
	r.scrollingY.Set(true)
	r.scrollYTimeout.Start(r.scrollTimeout, func() { r.scrollingY.Set(false) })
}

// clearScrolling drops an axis's scrolling flag and its settle timer.
func (r *Root) clearScrolling(o Orientation) {
	if o == Horizontal {
		r.scrollXTimeout.Clear()
		r.scrollingX.Set(false)
		return
	}
	r.scrollYTimeout.Clear()
	r.scrollingY.Set(false)
}

// HandlePointerEnterOrMove updates the hover flag from the event target.
// Touch pointers have no hover and are ignored.
func (r *Root) HandlePointerEnterOrMove(ev *PointerEvent) {
	if ev == nil || ev.PointerType == PointerTouch {
		return
	}
	r.hovering.Set(Contains(r.el, ev.Target))
}

// HandlePointerLeave clears the hover flag.
func (r *Root) HandlePointerLeave(*PointerEvent) {
	r.hovering.Set(false)
}

// SetHovering sets the hover flag directly.
func (r *Root) SetHovering(v bool) {
	r.hovering.Set(v)
}

// RegisterViewport fills the viewport slot.
func (r *Root) RegisterViewport(el ViewportElement) error {
	if !isNil(r.handles.viewport) && r.handles.viewport != el {
		return r.slotTaken("viewport")
	}
	r.handles.viewport = el
	return nil
}

// UnregisterViewport clears the viewport slot if el holds it.
func (r *Root) UnregisterViewport(el ViewportElement) {
	if r.handles.viewport == el {
		r.handles.viewport = nil
	}
}

// RegisterScrollbar fills the track slot for the orientation.
func (r *Root) RegisterScrollbar(o Orientation, el Element) error {
	slot := &r.handles.scrollbarY
	if o == Horizontal {
		slot = &r.handles.scrollbarX
	}
	if !isNil(*slot) && *slot != el {
		return r.slotTaken("scrollbar " + string(o))
	}
	*slot = el
	return nil
}

// UnregisterScrollbar clears the track slot if el holds it.
func (r *Root) UnregisterScrollbar(o Orientation, el Element) {
	slot := &r.handles.scrollbarY
	if o == Horizontal {
		slot = &r.handles.scrollbarX
	}
	if *slot == el {
		*slot = nil
	}
}

// RegisterThumb fills the thumb slot for the orientation.
func (r *Root) RegisterThumb(o Orientation, el ThumbElement) error {
	slot := &r.handles.thumbY
	if o == Horizontal {
		slot = &r.handles.thumbX
	}
	if !isNil(*slot) && *slot != el {
		return r.slotTaken("thumb " + string(o))
	}
	*slot = el
	return nil
}

// UnregisterThumb clears the thumb slot if el holds it.
func (r *Root) UnregisterThumb(o Orientation, el ThumbElement) {
	slot := &r.handles.thumbY
	if o == Horizontal {
		slot = &r.handles.thumbX
	}
	if *slot == el {
		*slot = nil
	}
}

// RegisterCorner fills the corner slot.
func (r *Root) RegisterCorner(el Element) error {
	if !isNil(r.handles.corner) && r.handles.corner != el {
		return r.slotTaken("corner")
	}
	r.handles.corner = el
	return nil
}

// UnregisterCorner clears the corner slot if el holds it.
func (r *Root) UnregisterCorner(el Element) {
	if r.handles.corner == el {
		r.handles.corner = nil
	}
}

func (r *Root) slotTaken(slot string) error {
	r.log.Debug("%s handle already registered", slot)
	return &SlotError{Slot: slot}
}

func (r *Root) scrollbar(o Orientation) Element {
	if o == Horizontal {
		return r.handles.scrollbarX
	}
	return r.handles.scrollbarY
}

func (r *Root) thumb(o Orientation) ThumbElement {
	if o == Horizontal {
		return r.handles.thumbX
	}
	return r.handles.thumbY
}

func (r *Root) syncAttributes() {
	applyAttributes(r.el, r.Flags().Attributes())
	cs := r.cornerSize.Get()
	r.el.SetProperty(PropCornerWidth, px(cs.Width))
	r.el.SetProperty(PropCornerHeight, px(cs.Height))
}

// Close ends any drag, cancels the settle timers and detaches from the
// root surface. Safe to call more than once.
func (r *Root) Close() {
	if r.closed {
		return
	}
	r.closed = true
	r.endDrag()
	r.scrollXTimeout.Clear()
	r.scrollYTimeout.Clear()
	for _, u := range r.unsubscribe {
		u()
	}
	r.unsubscribe = nil
}
