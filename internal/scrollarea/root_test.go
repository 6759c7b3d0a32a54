package scrollarea

import (
	"errors"
	"testing"
	"time"

	"github.com/dshills/scrollarea/internal/loop"
)

func TestNewRootRequiresScheduler(t *testing.T) {
	_, err := NewRoot(Env{}, newFakeElement("root", 1, 1), Options{})
	if !errors.Is(err, ErrNoScheduler) {
		t.Errorf("err = %v, want ErrNoScheduler", err)
	}
	_, err = NewRoot(Env{Scheduler: loop.NewManual()}, nil, Options{})
	if !errors.Is(err, ErrMissingElement) {
		t.Errorf("err = %v, want ErrMissingElement", err)
	}
}

func TestPartsRequireAncestor(t *testing.T) {
	el := newFakeElement("part", 1, 1)
	vp := newFakeViewport(1, 1, 1, 1)

	tests := []struct {
		name     string
		build    func() error
		sentinel error
		ancestor string
	}{
		{"viewport", func() error { _, err := NewViewport(nil, vp); return err }, ErrMissingRoot, "Root"},
		{"scrollbar", func() error { _, err := NewScrollbar(nil, el, ScrollbarOptions{}); return err }, ErrMissingRoot, "Root"},
		{"corner", func() error { _, err := NewCorner(nil, el); return err }, ErrMissingRoot, "Root"},
		{"thumb", func() error { _, err := NewThumb(nil, el); return err }, ErrMissingScrollbar, "Scrollbar"},
		{"content", func() error { _, err := NewContent(nil, el); return err }, ErrMissingViewport, "Viewport"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build()
			if !errors.Is(err, tt.sentinel) {
				t.Fatalf("err = %v, want %v", err, tt.sentinel)
			}
			var mae *MissingAncestorError
			if !errors.As(err, &mae) {
				t.Fatalf("err = %T, want *MissingAncestorError", err)
			}
			if mae.Ancestor != tt.ancestor {
				t.Errorf("ancestor = %q, want %q", mae.Ancestor, tt.ancestor)
			}
		})
	}
}

func TestRegistrationOneRegistrantPerSlot(t *testing.T) {
	f := newFixture(t, Options{}, 300, 300, 300, 900)
	f.mount()

	other := newFakeElement("other", 10, 300)
	err := f.root.RegisterScrollbar(Vertical, other)
	if !errors.Is(err, ErrSlotOccupied) {
		t.Fatalf("err = %v, want ErrSlotOccupied", err)
	}
	var se *SlotError
	if !errors.As(err, &se) || se.Slot != "scrollbar vertical" {
		t.Errorf("slot error = %v", err)
	}

	// re-registering the same element is fine
	if err := f.root.RegisterScrollbar(Vertical, f.sbYEl); err != nil {
		t.Errorf("same registrant: %v", err)
	}

	// a stale unregister does not clear the current registrant
	f.root.UnregisterScrollbar(Vertical, other)
	if f.root.scrollbar(Vertical) == nil {
		t.Error("slot cleared by a non-owner")
	}

	f.sbY.Unmount()
	if f.root.scrollbar(Vertical) != nil {
		t.Error("slot not cleared on unmount")
	}
	if err := f.root.RegisterScrollbar(Vertical, other); err != nil {
		t.Errorf("register after unmount: %v", err)
	}
}

func TestHandleScrollSettles(t *testing.T) {
	f := newFixture(t, Options{}, 300, 300, 900, 900)
	f.mount()

	f.root.HandleScroll(Coords{Y: 10})
	st := f.root.State()
	if !st.ScrollingY || st.ScrollingX {
		t.Fatalf("after y delta: %+v", st)
	}
	if !f.rootEl.has(AttrScrolling) || !f.rootEl.has(AttrScrollingY) {
		t.Error("root attributes not mirrored")
	}

	f.sched.Advance(400 * time.Millisecond)
	f.root.HandleScroll(Coords{Y: 20})
	f.sched.Advance(400 * time.Millisecond)
	if !f.root.State().ScrollingY {
		t.Error("re-armed timer fired early")
	}
	f.sched.Advance(100 * time.Millisecond)
	if f.root.State().ScrollingY {
		t.Error("scrolling-y still set after settle timeout")
	}
	if f.rootEl.has(AttrScrolling) {
		t.Error("data-scrolling left on root")
	}

	f.root.HandleScroll(Coords{X: 5, Y: 20})
	st = f.root.State()
	if !st.ScrollingX || st.ScrollingY {
		t.Errorf("after x delta only: %+v", st)
	}
	if f.root.Position() != (Coords{X: 5, Y: 20}) {
		t.Errorf("position = %+v", f.root.Position())
	}
}

func TestCustomScrollTimeout(t *testing.T) {
	f := newFixture(t, Options{ScrollTimeout: 50 * time.Millisecond}, 300, 300, 900, 900)
	f.mount()
	f.root.HandleScroll(Coords{X: 1})
	f.sched.Advance(50 * time.Millisecond)
	if f.root.State().ScrollingX {
		t.Error("custom timeout not honored")
	}
}

func TestHoverIgnoresTouchAndCrossesShadowRoots(t *testing.T) {
	f := newFixture(t, Options{}, 300, 300, 300, 900)
	f.mount()

	shadowRoot := newFakeElement("#shadow-root", 0, 0)
	shadowRoot.host = f.thYEl
	inner := newFakeElement("grip", 4, 4)
	inner.parent = shadowRoot

	f.root.HandlePointerEnterOrMove(&PointerEvent{PointerType: PointerTouch, Target: inner})
	if f.root.State().Hovering {
		t.Fatal("touch pointer set hover")
	}

	f.root.HandlePointerEnterOrMove(&PointerEvent{PointerType: PointerMouse, Target: inner})
	if !f.root.State().Hovering {
		t.Fatal("shadow descendant not treated as contained")
	}
	if !f.sbYEl.has(AttrHovering) {
		t.Error("track missing data-hovering")
	}

	outside := newFakeElement("elsewhere", 1, 1)
	f.root.HandlePointerEnterOrMove(&PointerEvent{PointerType: PointerPen, Target: outside})
	if f.root.State().Hovering {
		t.Error("outside target kept hover")
	}

	f.root.HandlePointerEnterOrMove(&PointerEvent{PointerType: PointerMouse, Target: f.contEl})
	f.root.HandlePointerLeave(nil)
	if f.root.State().Hovering {
		t.Error("leave did not clear hover")
	}
}

func TestContains(t *testing.T) {
	a := newFakeElement("a", 0, 0)
	b := newFakeElement("b", 0, 0)
	b.parent = a
	var typedNil *fakeElement

	if !Contains(a, a) {
		t.Error("node should contain itself")
	}
	if !Contains(a, b) || Contains(b, a) {
		t.Error("parent chain not followed")
	}
	if Contains(a, typedNil) || Contains(nil, b) {
		t.Error("nil nodes should not be contained")
	}
}

func TestDragHalfTravelScrollsHalfRange(t *testing.T) {
	f := newFixture(t, Options{}, 300, 300, 300, 1300)
	f.mount()

	travel := f.sbYEl.height - f.thYEl.height
	down := &PointerEvent{PointerID: 1, ClientX: 295, ClientY: 10, Target: f.thYEl, CurrentTarget: f.thYEl}
	f.thY.HandlePointerDown(down)
	if o, ok := f.root.Dragging(); !ok || o != Vertical {
		t.Fatalf("Dragging = %v %v", o, ok)
	}
	if !f.thYEl.captured[1] {
		t.Fatal("thumb did not take pointer capture")
	}

	move := &PointerEvent{PointerID: 1, ClientX: 295, ClientY: 10 + travel/2, Target: f.thYEl, CurrentTarget: f.thYEl}
	f.thY.HandlePointerMove(move)
	if !approx(f.vpEl.top, 500) {
		t.Errorf("scrollTop = %v, want 500", f.vpEl.top)
	}
	if !move.DefaultPrevented() {
		t.Error("move not default-prevented")
	}
	if !f.root.State().ScrollingY {
		t.Error("scrolling-y not set by drag")
	}

	f.sched.Advance(ScrollTimeout - time.Millisecond)
	if !f.root.State().ScrollingY {
		t.Error("scrolling-y cleared before settle timeout")
	}
	f.sched.Advance(time.Millisecond)
	if f.root.State().ScrollingY {
		t.Error("scrolling-y not cleared after settle timeout")
	}

	f.thY.HandlePointerUp(&PointerEvent{PointerID: 1})
	if _, ok := f.root.Dragging(); ok {
		t.Error("still dragging after pointer up")
	}
	if f.thYEl.captured[1] {
		t.Error("capture not released")
	}

	f.thY.HandlePointerMove(&PointerEvent{PointerID: 1, ClientY: 200})
	if !approx(f.vpEl.top, 500) {
		t.Error("move after pointer up scrolled")
	}
}

func TestDragIgnoresSecondaryButton(t *testing.T) {
	f := newFixture(t, Options{}, 300, 300, 300, 1300)
	f.mount()
	f.thY.HandlePointerDown(&PointerEvent{Button: 2, Target: f.thYEl, CurrentTarget: f.thYEl})
	if _, ok := f.root.Dragging(); ok {
		t.Error("secondary button began a drag")
	}
}

func TestThumbPointerUpClearsScrolling(t *testing.T) {
	f := newFixture(t, Options{}, 300, 300, 900, 900)
	f.mount()
	f.thX.HandlePointerDown(&PointerEvent{PointerID: 3, ClientX: 10, Target: f.thXEl, CurrentTarget: f.thXEl})
	f.thX.HandlePointerMove(&PointerEvent{PointerID: 3, ClientX: 40})
	if !f.root.State().ScrollingX {
		t.Fatal("horizontal drag did not set scrolling-x")
	}
	if f.vpEl.left <= 0 {
		t.Errorf("scrollLeft = %v, want > 0", f.vpEl.left)
	}
	f.thX.HandlePointerUp(&PointerEvent{PointerID: 3})
	if f.root.State().ScrollingX {
		t.Error("scrolling-x survived thumb pointer up")
	}
	if f.sched.PendingTimers() != 0 {
		t.Errorf("pending timers = %d, want 0", f.sched.PendingTimers())
	}
}

func TestSetOverflowEdgeThreshold(t *testing.T) {
	f := newFixture(t, Options{OverflowEdgeThreshold: UniformThreshold(-5)}, 300, 300, 300, 900)
	if f.root.Threshold() != (OverflowEdgeThreshold{}) {
		t.Fatalf("threshold = %+v, want zero", f.root.Threshold())
	}
	f.mount()

	f.vpEl.top = 20
	f.root.Recompute()
	if !f.root.State().Edges.YStart {
		t.Fatal("y start edge not set at 20px")
	}

	f.root.SetOverflowEdgeThreshold(OverflowEdgeThreshold{YStart: 20})
	if f.root.State().Edges.YStart {
		t.Error("y start edge still set at threshold")
	}
	if !f.vpEl.has(AttrOverflowYEnd) || f.vpEl.has(AttrOverflowYStart) {
		t.Errorf("viewport attributes = %v", f.vpEl.attrs)
	}
}

func TestCloseClearsTimers(t *testing.T) {
	f := newFixture(t, Options{}, 300, 300, 900, 900)
	f.mount()
	f.root.HandleScroll(Coords{X: 1, Y: 1})
	f.thY.HandlePointerDown(&PointerEvent{PointerID: 7, Target: f.thYEl, CurrentTarget: f.thYEl})

	f.root.Close()
	f.root.Close()
	if f.sched.PendingTimers() != 0 {
		t.Errorf("pending timers = %d after Close", f.sched.PendingTimers())
	}
	if f.thYEl.captured[7] {
		t.Error("capture held after Close")
	}
	f.root.HandleScroll(Coords{X: 2})
	if f.sched.PendingTimers() != 0 {
		t.Error("closed root armed a timer")
	}
}

func TestWatchReportsChanges(t *testing.T) {
	f := newFixture(t, Options{}, 300, 300, 300, 900)
	var got []State
	unsub := f.root.Watch(func(s State) { got = append(got, s) })
	f.mount()
	if len(got) == 0 {
		t.Fatal("no notifications during mount")
	}
	last := got[len(got)-1]
	if last.Hidden != (HiddenState{X: true, Corner: true}) {
		t.Errorf("last hidden = %+v", last.Hidden)
	}

	unsub()
	n := len(got)
	f.root.SetHovering(true)
	if len(got) != n {
		t.Error("notified after unsubscribe")
	}
}
