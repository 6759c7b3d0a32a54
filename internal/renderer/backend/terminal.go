package backend

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/scrollarea/internal/renderer/core"
)

// Terminal implements Backend with tcell.
type Terminal struct {
	screen tcell.Screen
	mu     sync.Mutex
}

// NewTerminal creates a terminal backend for the controlling terminal.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

// NewTerminalWithScreen wraps an existing screen, such as a
// tcell.SimulationScreen.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	// Motion reporting is needed for hover and drag.
	t.screen.EnableMouse(tcell.MouseMotionEvents)
	t.screen.HideCursor()
	return nil
}

func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

func (t *Terminal) SetCell(x, y int, c core.Cell) {
	if c.IsContinuation() {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.SetContent(x, y, c.Rune, nil, convertStyle(c.Style))
}

func (t *Terminal) Fill(r core.Rect, c core.Cell) {
	t.mu.Lock()
	defer t.mu.Unlock()

	style := convertStyle(c.Style)
	w, h := t.screen.Size()
	area := r.Intersect(core.Rect{Width: w, Height: h})
	for y := area.Y; y < area.Bottom(); y++ {
		for x := area.X; x < area.Right(); x++ {
			t.screen.SetContent(x, y, c.Rune, nil, style)
		}
	}
}

func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
}

func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Show()
}

func (t *Terminal) PollEvent() Event {
	ev := t.screen.PollEvent()
	if ev == nil {
		return Event{Type: EventClosed}
	}
	return convertEvent(ev)
}

func (t *Terminal) Interrupt() {
	_ = t.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

func convertColor(c core.Color) tcell.Color {
	if c.Default {
		return tcell.ColorDefault
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func convertStyle(s core.Style) tcell.Style {
	return tcell.StyleDefault.
		Foreground(convertColor(s.Foreground)).
		Background(convertColor(s.Background)).
		Bold(s.Attributes.Has(core.AttrBold)).
		Dim(s.Attributes.Has(core.AttrDim)).
		Italic(s.Attributes.Has(core.AttrItalic)).
		Underline(s.Attributes.Has(core.AttrUnderline)).
		Reverse(s.Attributes.Has(core.AttrReverse))
}

func convertEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return Event{
			Type: EventKey,
			Key:  convertKey(e.Key()),
			Rune: e.Rune(),
			Mod:  convertMod(e.Modifiers()),
		}
	case *tcell.EventMouse:
		x, y := e.Position()
		return Event{
			Type:    EventMouse,
			X:       x,
			Y:       y,
			Buttons: convertButtons(e.Buttons()),
			Mod:     convertMod(e.Modifiers()),
		}
	case *tcell.EventResize:
		w, h := e.Size()
		return Event{Type: EventResize, Width: w, Height: h}
	case *tcell.EventInterrupt:
		return Event{Type: EventInterrupt}
	}
	return Event{Type: EventNone}
}

var tcellKeys = map[tcell.Key]Key{
	tcell.KeyRune:   KeyRune,
	tcell.KeyEscape: KeyEscape,
	tcell.KeyEnter:  KeyEnter,
	tcell.KeyTab:    KeyTab,
	tcell.KeyHome:   KeyHome,
	tcell.KeyEnd:    KeyEnd,
	tcell.KeyPgUp:   KeyPageUp,
	tcell.KeyPgDn:   KeyPageDown,
	tcell.KeyUp:     KeyUp,
	tcell.KeyDown:   KeyDown,
	tcell.KeyLeft:   KeyLeft,
	tcell.KeyRight:  KeyRight,
	tcell.KeyCtrlC:  KeyCtrlC,
	tcell.KeyCtrlL:  KeyCtrlL,
}

func convertKey(k tcell.Key) Key {
	if key, ok := tcellKeys[k]; ok {
		return key
	}
	return KeyNone
}

func convertMod(m tcell.ModMask) ModMask {
	var out ModMask
	if m&tcell.ModShift != 0 {
		out |= ModShift
	}
	if m&tcell.ModCtrl != 0 {
		out |= ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		out |= ModAlt
	}
	return out
}

// tcell numbers buttons by role: Button1 primary, Button2 secondary,
// Button3 middle.
var tcellButtons = []struct {
	from tcell.ButtonMask
	to   ButtonMask
}{
	{tcell.Button1, ButtonPrimary},
	{tcell.Button2, ButtonSecondary},
	{tcell.Button3, ButtonMiddle},
	{tcell.WheelUp, WheelUp},
	{tcell.WheelDown, WheelDown},
	{tcell.WheelLeft, WheelLeft},
	{tcell.WheelRight, WheelRight},
}

func convertButtons(b tcell.ButtonMask) ButtonMask {
	var out ButtonMask
	for _, m := range tcellButtons {
		if b&m.from != 0 {
			out |= m.to
		}
	}
	return out
}
