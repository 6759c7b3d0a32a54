package scrollarea

import "testing"

func TestWheelOnVerticalTrack(t *testing.T) {
	f := newFixture(t, Options{}, 300, 300, 300, 900)
	f.mount()

	up := &WheelEvent{DeltaY: -50}
	f.sbY.HandleWheel(up)
	if f.vpEl.top != 0 {
		t.Fatalf("scrollTop = %v after wheel up at origin", f.vpEl.top)
	}
	if up.DefaultPrevented() {
		t.Error("wheel at the start bound was swallowed")
	}

	down := &WheelEvent{DeltaY: 50}
	f.sbY.HandleWheel(down)
	if f.vpEl.top != 50 {
		t.Errorf("scrollTop = %v, want 50", f.vpEl.top)
	}
	if !down.DefaultPrevented() {
		t.Error("redirected wheel not default-prevented")
	}

	f.vpEl.top = 580
	f.sbY.HandleWheel(&WheelEvent{DeltaY: 50})
	if f.vpEl.top != 600 {
		t.Errorf("scrollTop = %v, want clamp at 600", f.vpEl.top)
	}

	atEnd := &WheelEvent{DeltaY: 50}
	f.sbY.HandleWheel(atEnd)
	if f.vpEl.top != 600 || atEnd.DefaultPrevented() {
		t.Error("wheel past the end bound was handled")
	}

	zoom := &WheelEvent{DeltaY: -50, CtrlKey: true}
	f.sbY.HandleWheel(zoom)
	if f.vpEl.top != 600 || zoom.DefaultPrevented() {
		t.Error("ctrl-wheel was redirected")
	}
}

func TestWheelOnHorizontalTrack(t *testing.T) {
	f := newFixture(t, Options{}, 300, 300, 900, 300)
	f.mount()

	f.sbX.HandleWheel(&WheelEvent{DeltaX: 40, DeltaY: 999})
	if f.vpEl.left != 40 || f.vpEl.top != 0 {
		t.Errorf("offsets = (%v,%v), want (40,0)", f.vpEl.left, f.vpEl.top)
	}
}

func TestWheelRightToLeft(t *testing.T) {
	f := newFixture(t, Options{Direction: RTL}, 300, 300, 900, 300)
	f.mount()

	atStart := &WheelEvent{DeltaX: 10}
	f.sbX.HandleWheel(atStart)
	if f.vpEl.left != 0 || atStart.DefaultPrevented() {
		t.Error("wheel past the rtl origin was handled")
	}
	f.sbX.HandleWheel(&WheelEvent{DeltaX: -30})
	if f.vpEl.left != -30 {
		t.Errorf("scrollLeft = %v, want -30", f.vpEl.left)
	}
}

func TestTrackClickJumpsAndBeginsDrag(t *testing.T) {
	f := newFixture(t, Options{}, 300, 300, 300, 1300)
	f.mount()

	ev := &PointerEvent{PointerID: 2, ClientX: 295, ClientY: 150, Target: f.sbYEl, CurrentTarget: f.sbYEl}
	f.sbY.HandlePointerDown(ev)
	if !approx(f.vpEl.top, 500) {
		t.Errorf("scrollTop = %v, want 500", f.vpEl.top)
	}
	if o, ok := f.root.Dragging(); !ok || o != Vertical {
		t.Errorf("Dragging = %v %v, want vertical drag", o, ok)
	}
	if !f.thYEl.captured[2] {
		t.Error("thumb did not capture the pointer")
	}

	f.sbY.HandlePointerUp(ev)
	if _, ok := f.root.Dragging(); ok {
		t.Error("track pointer up left the drag running")
	}
}

func TestTrackClickIgnoresThumbAndSecondaryButton(t *testing.T) {
	f := newFixture(t, Options{}, 300, 300, 300, 1300)
	f.mount()

	f.sbY.HandlePointerDown(&PointerEvent{ClientY: 250, Target: f.thYEl, CurrentTarget: f.sbYEl})
	f.sbY.HandlePointerDown(&PointerEvent{Button: 1, ClientY: 250, Target: f.sbYEl, CurrentTarget: f.sbYEl})
	if f.vpEl.top != 0 {
		t.Errorf("scrollTop = %v, want untouched", f.vpEl.top)
	}
	if _, ok := f.root.Dragging(); ok {
		t.Error("ignored press began a drag")
	}
}

func TestTrackClickRightToLeft(t *testing.T) {
	f := newFixture(t, Options{Direction: RTL}, 300, 300, 900, 300)
	f.mount()
	if !approx(f.thXEl.width, 100) {
		t.Fatalf("thumb width = %v, want 100", f.thXEl.width)
	}

	// click lands a quarter of the way along the thumb's travel
	press := func() {
		f.sbX.HandlePointerDown(&PointerEvent{ClientX: 100, ClientY: 295, Target: f.sbXEl, CurrentTarget: f.sbXEl})
		f.root.HandlePointerUp(nil)
	}

	press()
	if !approx(f.vpEl.left, -450) {
		t.Errorf("scrollLeft = %v, want -450 with origin at zero", f.vpEl.left)
	}

	// a positive scroll origin keeps the mirrored offset positive
	f.vpEl.dir = LTR
	f.vpEl.left = 100
	press()
	if !approx(f.vpEl.left, 450) {
		t.Errorf("scrollLeft = %v, want 450 with positive origin", f.vpEl.left)
	}
}

func TestCornerSizeFollowsTracks(t *testing.T) {
	f := newFixture(t, Options{}, 300, 300, 900, 900)
	f.sbXEl.height = 12
	f.mount()

	want := Size{Width: 10, Height: 12}
	if got := f.root.State().CornerSize; got != want {
		t.Fatalf("corner = %+v, want %+v", got, want)
	}
	if !f.corner.ShouldRender() {
		t.Error("corner hidden with both axes overflowing")
	}
	if f.cornrEl.props["width"] != "10px" || f.cornrEl.props["height"] != "12px" {
		t.Errorf("corner props = %v", f.cornrEl.props)
	}
	if f.rootEl.props[PropCornerWidth] != "10px" || f.rootEl.props[PropCornerHeight] != "12px" {
		t.Errorf("root corner props = %v", f.rootEl.props)
	}

	f.vpEl.scrollW = 300
	f.root.Recompute()
	f.settle()
	if got := f.root.State().CornerSize; !got.IsZero() {
		t.Errorf("corner = %+v after hiding x, want zero", got)
	}
	if f.corner.ShouldRender() {
		t.Error("corner rendered with one axis hidden")
	}
	if f.sbX.ShouldRender() {
		t.Error("hidden horizontal track still rendered")
	}
	if !f.sbY.ShouldRender() {
		t.Error("vertical track not rendered")
	}
}

func TestCornerSizeNeedsCornerPart(t *testing.T) {
	f := newFixture(t, Options{}, 300, 300, 900, 900)
	must(t, f.vp.Mount())
	must(t, f.sbY.Mount())
	must(t, f.sbX.Mount())
	f.settle()
	if !f.root.State().CornerSize.IsZero() {
		t.Error("corner size committed without a corner")
	}
}

func TestKeepMountedTrack(t *testing.T) {
	f := newFixture(t, Options{}, 300, 300, 300, 300)
	sb, err := NewScrollbar(f.root, newFakeElement("kept", 10, 300), ScrollbarOptions{KeepMounted: true})
	must(t, err)
	f.mount()

	if f.sbY.ShouldRender() {
		t.Error("track without overflow rendered")
	}
	if !sb.ShouldRender() || !sb.KeepMounted() {
		t.Error("keep-mounted track not rendered")
	}
	if sb.Orientation() != Vertical {
		t.Errorf("default orientation = %s", sb.Orientation())
	}
}

func TestTrackMirrorsScrollingAndThumbWidth(t *testing.T) {
	f := newFixture(t, Options{}, 300, 300, 900, 300)
	f.mount()

	if got := f.sbXEl.props[PropThumbWidth]; got != "100px" {
		t.Errorf("%s = %q, want 100px", PropThumbWidth, got)
	}
	f.root.HandleScroll(Coords{X: 10})
	if !f.sbXEl.has(AttrScrolling) || !f.sbYEl.has(AttrScrolling) {
		t.Error("tracks missing data-scrolling")
	}
	if f.thXEl.attrs[AttrOrientation] != "horizontal" {
		t.Errorf("thumb orientation = %q", f.thXEl.attrs[AttrOrientation])
	}
}
