package backend

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/scrollarea/internal/renderer/core"
)

func TestMemoryCells(t *testing.T) {
	m := NewMemory(10, 3)
	m.Fill(core.Rect{X: 1, Y: 1, Width: 3, Height: 5}, core.NewCell('#', core.DefaultStyle()))
	m.SetCell(-1, 0, core.NewCell('x', core.DefaultStyle()))
	m.SetCell(9, 0, core.NewCell('e', core.DefaultStyle()))

	rows := []string{"         e", " ###", " ###"}
	for y, want := range rows {
		if got := m.Row(y); got != want {
			t.Errorf("Row(%d) = %q, want %q", y, got, want)
		}
	}
	if m.Cell(50, 50).Rune != ' ' {
		t.Error("outside cell not empty")
	}

	m.Clear()
	if m.Row(1) != "" {
		t.Errorf("row after Clear = %q", m.Row(1))
	}
}

func TestMemoryEvents(t *testing.T) {
	m := NewMemory(4, 4)
	m.Resize(8, 2)
	if ev := m.PollEvent(); ev.Type != EventResize || ev.Width != 8 || ev.Height != 2 {
		t.Errorf("resize event = %+v", ev)
	}
	if w, h := m.Size(); w != 8 || h != 2 {
		t.Errorf("Size = %d,%d", w, h)
	}
	m.Interrupt()
	if ev := m.PollEvent(); ev.Type != EventInterrupt {
		t.Errorf("event = %+v, want interrupt", ev)
	}
	m.Shutdown()
	m.Shutdown()
	if ev := m.PollEvent(); ev.Type != EventClosed {
		t.Errorf("event after shutdown = %+v", ev)
	}
}

func TestMouseTracker(t *testing.T) {
	var tr MouseTracker
	mouse := func(x, y int, b ButtonMask) Event {
		return Event{Type: EventMouse, X: x, Y: y, Buttons: b}
	}

	steps := []struct {
		name string
		ev   Event
		want []MouseAction
	}{
		{"hover", mouse(1, 1, ButtonNone), []MouseAction{{Kind: ActionMove, X: 1, Y: 1}}},
		{"press", mouse(2, 1, ButtonPrimary), []MouseAction{{Kind: ActionPress, Button: PointerPrimary, X: 2, Y: 1}}},
		{"drag", mouse(2, 4, ButtonPrimary), []MouseAction{{Kind: ActionMove, X: 2, Y: 4}}},
		{"wheel while held", mouse(2, 4, ButtonPrimary|WheelDown), []MouseAction{{Kind: ActionWheel, X: 2, Y: 4, DY: 1}}},
		{"second button", mouse(2, 4, ButtonPrimary|ButtonSecondary), []MouseAction{{Kind: ActionPress, Button: PointerSecondary, X: 2, Y: 4}}},
		{"release both", mouse(3, 4, ButtonNone), []MouseAction{
			{Kind: ActionRelease, Button: PointerPrimary, X: 3, Y: 4},
			{Kind: ActionRelease, Button: PointerSecondary, X: 3, Y: 4},
		}},
		{"wheel left", mouse(0, 0, WheelLeft), []MouseAction{{Kind: ActionWheel, DX: -1}}},
	}
	for _, s := range steps {
		got := tr.Translate(s.ev)
		if len(got) != len(s.want) {
			t.Fatalf("%s: got %+v, want %+v", s.name, got, s.want)
		}
		for i := range got {
			if got[i] != s.want[i] {
				t.Fatalf("%s: got %+v, want %+v", s.name, got, s.want)
			}
		}
	}
	if tr.Held() != ButtonNone {
		t.Errorf("Held = %b after release", tr.Held())
	}
	if tr.Translate(Event{Type: EventKey}) != nil {
		t.Error("key event produced actions")
	}
}

func TestConvertEvent(t *testing.T) {
	ev := convertEvent(tcell.NewEventMouse(3, 4, tcell.Button1|tcell.WheelUp, tcell.ModCtrl))
	if ev.Type != EventMouse || ev.X != 3 || ev.Y != 4 {
		t.Fatalf("mouse event = %+v", ev)
	}
	if ev.Buttons != ButtonPrimary|WheelUp || !ev.Mod.Has(ModCtrl) {
		t.Errorf("buttons %b mod %b", ev.Buttons, ev.Mod)
	}
	if got := convertButtons(tcell.Button2); got != ButtonSecondary {
		t.Errorf("Button2 = %b, want secondary", got)
	}

	key := convertEvent(tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModNone))
	if key.Type != EventKey || key.Key != KeyPageDown || key.Key.String() != "PgDn" {
		t.Errorf("key event = %+v", key)
	}
	if convertEvent(tcell.NewEventResize(80, 24)).Width != 80 {
		t.Error("resize width lost")
	}
}

func TestTerminalSimulation(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	term := NewTerminalWithScreen(screen)
	if err := term.Init(); err != nil {
		t.Fatal(err)
	}
	defer term.Shutdown()
	screen.SetSize(10, 2)

	style := core.DefaultStyle().WithForeground(core.ColorFromRGB(255, 0, 0)).With(core.AttrBold)
	term.SetCell(1, 0, core.NewCell('A', style))
	term.Fill(core.Rect{X: 8, Y: 1, Width: 5, Height: 5}, core.NewCell('.', core.DefaultStyle()))
	term.Show()

	mainc, _, st, _ := screen.GetContent(1, 0)
	if mainc != 'A' {
		t.Errorf("cell = %q", mainc)
	}
	fg, _, attrs := st.Decompose()
	if fg != tcell.NewRGBColor(255, 0, 0) || attrs&tcell.AttrBold == 0 {
		t.Errorf("style fg %v attrs %v", fg, attrs)
	}
	if c, _, _, _ := screen.GetContent(9, 1); c != '.' {
		t.Errorf("fill cell = %q", c)
	}
}
