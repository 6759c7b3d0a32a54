package backend

// ActionKind is a pointer transition derived from mouse reports.
type ActionKind int

const (
	ActionMove ActionKind = iota
	ActionPress
	ActionRelease
	ActionWheel
)

// Button numbers follow the DOM convention.
const (
	PointerPrimary   = 0
	PointerMiddle    = 1
	PointerSecondary = 2
)

// MouseAction is one pointer transition.
type MouseAction struct {
	Kind   ActionKind
	Button int
	X, Y   int

	// Wheel deltas in cells. Positive DY scrolls down.
	DX, DY int
}

// MouseTracker turns terminal mouse reports, which carry the set of
// buttons currently held, into press, move and release transitions.
type MouseTracker struct {
	held ButtonMask
}

var trackedButtons = []struct {
	mask   ButtonMask
	button int
}{
	{ButtonPrimary, PointerPrimary},
	{ButtonMiddle, PointerMiddle},
	{ButtonSecondary, PointerSecondary},
}

// Held returns the buttons the tracker believes are down.
func (t *MouseTracker) Held() ButtonMask { return t.held }

// Translate converts a mouse event. Wheel reports do not change the held
// set. A report with no button change is a move.
func (t *MouseTracker) Translate(ev Event) []MouseAction {
	if ev.Type != EventMouse {
		return nil
	}
	if w := ev.Buttons & wheelMask; w != 0 {
		a := MouseAction{Kind: ActionWheel, X: ev.X, Y: ev.Y}
		if w&WheelUp != 0 {
			a.DY--
		}
		if w&WheelDown != 0 {
			a.DY++
		}
		if w&WheelLeft != 0 {
			a.DX--
		}
		if w&WheelRight != 0 {
			a.DX++
		}
		return []MouseAction{a}
	}

	now := ev.Buttons & buttonsMask
	released := t.held &^ now
	pressed := now &^ t.held
	t.held = now

	var out []MouseAction
	for _, b := range trackedButtons {
		if released&b.mask != 0 {
			out = append(out, MouseAction{Kind: ActionRelease, Button: b.button, X: ev.X, Y: ev.Y})
		}
	}
	for _, b := range trackedButtons {
		if pressed&b.mask != 0 {
			out = append(out, MouseAction{Kind: ActionPress, Button: b.button, X: ev.X, Y: ev.Y})
		}
	}
	if len(out) == 0 {
		out = append(out, MouseAction{Kind: ActionMove, X: ev.X, Y: ev.Y})
	}
	return out
}

// Reset forgets held buttons, e.g. after focus loss.
func (t *MouseTracker) Reset() { t.held = ButtonNone }
