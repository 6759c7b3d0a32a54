package scrollarea

import "github.com/google/uuid"

// dragSession exists between a primary pointer-down on a thumb (or track)
// and the matching pointer-up.
type dragSession struct {
	active      bool
	id          string
	pointerID   int
	orientation Orientation
	start       Coords
	startScroll Coords
}

// Dragging reports whether a drag gesture is in progress and on which axis.
func (r *Root) Dragging() (Orientation, bool) {
	return r.drag.orientation, r.drag.active
}

// HandlePointerDown begins a drag gesture. The axis comes from the
// data-orientation attribute of the element whose handler is running. The
// thumb for that axis takes pointer capture so moves outside its bounds
// keep arriving.
func (r *Root) HandlePointerDown(ev *PointerEvent) {
	if ev == nil || ev.Button != 0 || r.closed {
		return
	}
	if r.drag.active {
		r.endDrag()
	}

	o := Vertical
	if reader, ok := ev.CurrentTarget.(AttributeReader); ok && !isNil(reader) {
		if v, ok := reader.Attribute(AttrOrientation); ok {
			o = ParseOrientation(v)
		}
	}

	r.drag = dragSession{
		active:      true,
		id:          uuid.NewString(),
		pointerID:   ev.PointerID,
		orientation: o,
		start:       Coords{X: ev.ClientX, Y: ev.ClientY},
	}
	if vp := r.handles.viewport; !isNil(vp) {
		r.drag.startScroll = Coords{X: vp.ScrollLeft(), Y: vp.ScrollTop()}
	}
	if th := r.thumb(o); !isNil(th) {
		th.SetPointerCapture(ev.PointerID)
	}
	r.log.Debug("drag %s begin on %s axis at (%g,%g)", r.drag.id[:8], o, ev.ClientX, ev.ClientY)
}

// HandlePointerMove converts pointer travel since pointer-down into a
// native scroll offset on the dragged axis.
func (r *Root) HandlePointerMove(ev *PointerEvent) {
	if ev == nil || !r.drag.active {
		return
	}
	vp := r.handles.viewport
	if isNil(vp) {
		return
	}

	o := r.drag.orientation
	track, th := r.scrollbar(o), r.thumb(o)
	if isNil(track) || isNil(th) {
		return
	}

	travel := maxThumbTravel(track, th, o, extent(th, o))
	if o == Vertical {
		delta := ev.ClientY - r.drag.start.Y
		scrollRange := vp.ScrollHeight() - vp.ClientHeight()
		vp.SetScrollTop(r.drag.startScroll.Y + ratio(delta, travel)*scrollRange)
	} else {
		delta := ev.ClientX - r.drag.start.X
		scrollRange := vp.ScrollWidth() - vp.ClientWidth()
		vp.SetScrollLeft(r.drag.startScroll.X + ratio(delta, travel)*scrollRange)
	}
	ev.PreventDefault()
	r.markScrolling(o)
}

// HandlePointerUp ends the drag gesture and releases pointer capture.
func (r *Root) HandlePointerUp(ev *PointerEvent) {
	id := r.drag.pointerID
	if ev != nil {
		id = ev.PointerID
	}
	r.releaseDrag(id)
}

func (r *Root) endDrag() {
	r.releaseDrag(r.drag.pointerID)
}

func (r *Root) releaseDrag(pointerID int) {
	o := r.drag.orientation
	if r.drag.active {
		r.log.Debug("drag %s end", r.drag.id[:8])
	}
	r.drag.active = false
	if th := r.thumb(o); !isNil(th) {
		th.ReleasePointerCapture(pointerID)
	}
}

// extent is the box size along the orientation's axis.
func extent(b Box, o Orientation) float64 {
	if o == Horizontal {
		return b.OffsetWidth()
	}
	return b.OffsetHeight()
}

// maxThumbTravel is how far a thumb of the given extent can move inside
// its track once track padding and thumb margin are taken out.
func maxThumbTravel(track, thumb Box, o Orientation, thumbExtent float64) float64 {
	return extent(track, o) - thumbExtent - track.Padding().Axis(o) - thumb.Margin().Axis(o)
}
