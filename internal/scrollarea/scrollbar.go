package scrollarea

import "math"

// ScrollbarOptions configures a Scrollbar.
type ScrollbarOptions struct {
	// Orientation defaults to Vertical.
	Orientation Orientation

	// KeepMounted keeps the track rendered while its axis has no overflow.
	KeepMounted bool
}

// Scrollbar is the track for one axis. It redirects wheel input to the
// viewport and jumps the viewport when the bare track is pressed.
type Scrollbar struct {
	root        *Root
	el          Element
	orientation Orientation
	keepMounted bool
	mounted     bool
	cleanup     []func()
}

// NewScrollbar creates a track of root.
func NewScrollbar(root *Root, el Element, opts ScrollbarOptions) (*Scrollbar, error) {
	if root == nil {
		return nil, newMissingAncestor("Scrollbar", "Root", ErrMissingRoot)
	}
	if isNil(el) {
		return nil, ErrMissingElement
	}
	o := opts.Orientation
	if o != Horizontal {
		o = Vertical
	}
	return &Scrollbar{root: root, el: el, orientation: o, keepMounted: opts.KeepMounted}, nil
}

// Element returns the track surface.
func (s *Scrollbar) Element() Element { return s.el }

// Orientation returns the track's axis.
func (s *Scrollbar) Orientation() Orientation { return s.orientation }

// KeepMounted reports whether the track stays rendered without overflow.
func (s *Scrollbar) KeepMounted() bool { return s.keepMounted }

// ShouldRender reports whether the host should currently render the track.
func (s *Scrollbar) ShouldRender() bool {
	return s.keepMounted || !s.root.hidden.Get().Axis(s.orientation)
}

// Mount registers the track and mirrors hover, scrolling and thumb size
// onto it.
func (s *Scrollbar) Mount() error {
	if s.mounted {
		return nil
	}
	if err := s.root.RegisterScrollbar(s.orientation, s.el); err != nil {
		return err
	}
	s.mounted = true
	s.el.SetAttribute(AttrOrientation, string(s.orientation))
	s.syncAttributes()

	apply := func() { s.syncAttributes() }
	s.cleanup = append(s.cleanup,
		s.root.hovering.Subscribe(func(bool) { apply() }),
		s.root.scrollingX.Subscribe(func(bool) { apply() }),
		s.root.scrollingY.Subscribe(func(bool) { apply() }),
		s.root.thumbSize.Subscribe(func(Size) { apply() }),
	)
	return nil
}

// Unmount frees the track slot. Safe to call more than once.
func (s *Scrollbar) Unmount() {
	if !s.mounted {
		return
	}
	s.mounted = false
	for _, fn := range s.cleanup {
		fn()
	}
	s.cleanup = nil
	s.root.UnregisterScrollbar(s.orientation, s.el)
}

func (s *Scrollbar) syncAttributes() {
	st := s.root.State()
	toggleAttribute(s.el, AttrHovering, st.Hovering)
	toggleAttribute(s.el, AttrScrolling, st.ScrollingX || st.ScrollingY)
	if s.orientation == Vertical {
		s.el.SetProperty(PropThumbHeight, px(st.ThumbSize.Height))
	} else {
		s.el.SetProperty(PropThumbWidth, px(st.ThumbSize.Width))
	}
}

// HandleWheel scrolls the viewport along the track's axis by the wheel
// delta. Zoom gestures pass through, and so does a delta pushing past the
// current scroll bound, so an outer scroller can take it.
func (s *Scrollbar) HandleWheel(ev *WheelEvent) {
	vp := s.root.handles.viewport
	if ev == nil || ev.CtrlKey || isNil(vp) {
		return
	}

	if s.orientation == Vertical {
		cur, delta := vp.ScrollTop(), ev.DeltaY
		hi := math.Max(0, vp.ScrollHeight()-vp.ClientHeight())
		if atBound(cur, delta, 0, hi) {
			return
		}
		ev.PreventDefault()
		vp.SetScrollTop(clamp(cur+delta, 0, hi))
		return
	}

	cur, delta := vp.ScrollLeft(), ev.DeltaX
	lo, hi := scrollLeftRange(vp, s.root.direction)
	if atBound(cur, delta, lo, hi) {
		return
	}
	ev.PreventDefault()
	vp.SetScrollLeft(clamp(cur+delta, lo, hi))
}

// HandlePointerDown jumps the viewport so the thumb centers on a press on
// the bare track, then hands the press to the root so it can continue as
// a drag. Presses on the thumb are left to the thumb.
func (s *Scrollbar) HandlePointerDown(ev *PointerEvent) {
	if ev == nil || ev.Button != 0 {
		return
	}
	if ev.Target != ev.CurrentTarget {
		return
	}
	vp := s.root.handles.viewport
	if isNil(vp) {
		return
	}

	o := s.orientation
	track, th := s.root.scrollbar(o), s.root.thumb(o)
	if !isNil(track) && !isNil(th) {
		thumbExtent := extent(th, o)
		trackOffset := track.Padding().Axis(o)
		thumbOffset := th.Margin().Axis(o)
		rect := track.BoundingRect()
		travel := maxThumbTravel(track, th, o, thumbExtent)

		if o == Vertical {
			click := ev.ClientY - rect.Y - thumbExtent/2 - trackOffset + thumbOffset/2
			scrollRange := vp.ScrollHeight() - vp.ClientHeight()
			vp.SetScrollTop(ratio(click, travel) * scrollRange)
		} else {
			click := ev.ClientX - rect.X - thumbExtent/2 - trackOffset + thumbOffset/2
			scrollRange := vp.ScrollWidth() - vp.ClientWidth()
			r := ratio(click, travel)
			left := r * scrollRange
			if s.root.direction == RTL {
				left = (1 - r) * scrollRange
				// Only a scroll origin sitting at or below zero is negated.
				if vp.ScrollLeft() <= 0 {
					left = -left
				}
			}
			vp.SetScrollLeft(left)
		}
	}

	s.root.HandlePointerDown(ev)
}

// HandlePointerUp ends any gesture that started on the track.
func (s *Scrollbar) HandlePointerUp(ev *PointerEvent) {
	s.root.HandlePointerUp(ev)
}

func atBound(cur, delta, lo, hi float64) bool {
	return (cur <= lo && delta < 0) || (cur >= hi && delta > 0)
}

// scrollLeftRange is the native scrollLeft range: [0, max] left to right
// and [-max, 0] right to left.
func scrollLeftRange(vp ViewportElement, dir Direction) (lo, hi float64) {
	limit := math.Max(0, vp.ScrollWidth()-vp.ClientWidth())
	if dir == RTL {
		return -limit, 0
	}
	return 0, limit
}
