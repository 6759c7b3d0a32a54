package app

import (
	"github.com/dshills/scrollarea/internal/dom"
	"github.com/dshills/scrollarea/internal/renderer/backend"
	"github.com/dshills/scrollarea/internal/scrollarea"
)

// wheelLines is how far one wheel notch scrolls, in cells.
const wheelLines = 3

// mousePointerID identifies the terminal's only pointer.
const mousePointerID = 1

// runeKeys maps pager letter bindings onto navigation keys.
var runeKeys = map[rune]string{
	'j': "Down",
	'k': "Up",
	'h': "Left",
	'l': "Right",
	' ': "PgDn",
	'b': "PgUp",
	'g': "Home",
	'G': "End",
}

// HandleEvent processes a backend event and routes it appropriately.
// Returns ErrQuit if the application should exit.
func (p *Pager) HandleEvent(ev backend.Event) error {
	if p.closed {
		return nil
	}
	switch ev.Type {
	case backend.EventResize:
		p.resize()
	case backend.EventKey:
		if err := p.handleKey(ev); err != nil {
			return err
		}
	case backend.EventMouse:
		p.handleMouse(ev)
	case backend.EventClosed:
		return ErrQuit
	default:
		return nil
	}
	p.invalidate()
	return nil
}

func (p *Pager) handleKey(ev backend.Event) error {
	p.status.ClearMessage()
	switch {
	case ev.Key == backend.KeyCtrlC, ev.Key == backend.KeyEscape:
		return ErrQuit
	case ev.Key == backend.KeyRune && (ev.Rune == 'q' || ev.Rune == 'Q'):
		return ErrQuit
	case ev.Key == backend.KeyCtrlL:
		p.out.Clear()
		return nil
	}

	k := dom.Key{
		Name:  ev.Key.String(),
		Ctrl:  ev.Mod.Has(backend.ModCtrl),
		Alt:   ev.Mod.Has(backend.ModAlt),
		Shift: ev.Mod.Has(backend.ModShift),
	}
	if ev.Key == backend.KeyRune {
		k.Rune = ev.Rune
		if name, ok := runeKeys[ev.Rune]; ok {
			k.Name = name
		}
	}
	p.doc.KeyDown(k)
	return nil
}

func (p *Pager) handleMouse(ev backend.Event) {
	for _, a := range p.mouse.Translate(ev) {
		x, y := float64(a.X), float64(a.Y)
		pe := scrollarea.PointerEvent{
			PointerID:   mousePointerID,
			PointerType: scrollarea.PointerMouse,
			Button:      a.Button,
			ClientX:     x,
			ClientY:     y,
		}
		switch a.Kind {
		case backend.ActionPress:
			p.doc.PointerDown(pe)
		case backend.ActionRelease:
			p.doc.PointerUp(pe)
		case backend.ActionMove:
			p.doc.PointerMove(pe)
		case backend.ActionWheel:
			p.doc.Wheel(x, y, scrollarea.WheelEvent{
				DeltaX:  float64(a.DX * wheelLines),
				DeltaY:  float64(a.DY * wheelLines),
				CtrlKey: ev.Mod.Has(backend.ModCtrl),
			})
		}
	}
}
