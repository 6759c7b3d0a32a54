// Package backend abstracts the terminal the pager draws on and reads
// input from.
package backend

import (
	"strings"
	"sync"

	"github.com/dshills/scrollarea/internal/renderer/core"
)

// EventType identifies the kind of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventMouse
	EventResize
	EventInterrupt
	EventClosed
)

// Event is a terminal input event.
type Event struct {
	Type EventType

	Key  Key
	Rune rune
	Mod  ModMask

	// Mouse events report the cell under the pointer and the full set of
	// buttons held down, not transitions. See MouseTracker.
	X, Y    int
	Buttons ButtonMask

	Width, Height int
}

// Key identifies a keyboard key.
type Key int

const (
	KeyNone Key = iota
	KeyRune
	KeyEscape
	KeyEnter
	KeyTab
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyCtrlC
	KeyCtrlL
)

var keyNames = map[Key]string{
	KeyRune:     "Rune",
	KeyEscape:   "Esc",
	KeyEnter:    "Enter",
	KeyTab:      "Tab",
	KeyHome:     "Home",
	KeyEnd:      "End",
	KeyPageUp:   "PgUp",
	KeyPageDown: "PgDn",
	KeyUp:       "Up",
	KeyDown:     "Down",
	KeyLeft:     "Left",
	KeyRight:    "Right",
	KeyCtrlC:    "Ctrl+C",
	KeyCtrlL:    "Ctrl+L",
}

func (k Key) String() string {
	if s, ok := keyNames[k]; ok {
		return s
	}
	return ""
}

// ModMask is a set of held modifier keys.
type ModMask int

const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
)

// Has reports whether the mask contains mod.
func (m ModMask) Has(mod ModMask) bool { return m&mod != 0 }

// ButtonMask is the set of mouse buttons and wheel directions in an event.
type ButtonMask uint16

const (
	ButtonNone    ButtonMask = 0
	ButtonPrimary ButtonMask = 1 << iota
	ButtonSecondary
	ButtonMiddle
	WheelUp
	WheelDown
	WheelLeft
	WheelRight
)

const (
	buttonsMask = ButtonPrimary | ButtonSecondary | ButtonMiddle
	wheelMask   = WheelUp | WheelDown | WheelLeft | WheelRight
)

// Backend is a cell surface with an input stream.
type Backend interface {
	// Init takes over the terminal. It must be called first.
	Init() error

	// Shutdown restores the terminal. PollEvent then returns EventClosed.
	Shutdown()

	Size() (width, height int)

	// SetCell writes one cell. Positions outside the surface are ignored.
	SetCell(x, y int, c core.Cell)

	Fill(r core.Rect, c core.Cell)
	Clear()

	// Show flushes pending cell writes to the display.
	Show()

	// PollEvent blocks for the next event.
	PollEvent() Event

	// Interrupt wakes a blocked PollEvent with EventInterrupt.
	Interrupt()
}

// Memory is an in-memory Backend for tests and headless runs.
type Memory struct {
	mu     sync.Mutex
	width  int
	height int
	cells  [][]core.Cell
	shows  int

	events chan Event
	done   chan struct{}
	once   sync.Once
}

// NewMemory creates a memory backend of the given size.
func NewMemory(width, height int) *Memory {
	m := &Memory{
		events: make(chan Event, 64),
		done:   make(chan struct{}),
	}
	m.resize(width, height)
	return m
}

func (m *Memory) resize(width, height int) {
	m.width, m.height = width, height
	m.cells = make([][]core.Cell, height)
	for y := range m.cells {
		m.cells[y] = make([]core.Cell, width)
		for x := range m.cells[y] {
			m.cells[y][x] = core.EmptyCell()
		}
	}
}

func (m *Memory) Init() error { return nil }

func (m *Memory) Shutdown() {
	m.once.Do(func() { close(m.done) })
}

func (m *Memory) Size() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.width, m.height
}

func (m *Memory) SetCell(x, y int, c core.Cell) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if x >= 0 && x < m.width && y >= 0 && y < m.height {
		m.cells[y][x] = c
	}
}

func (m *Memory) Fill(r core.Rect, c core.Cell) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			m.SetCell(x, y, c)
		}
	}
}

func (m *Memory) Clear() {
	w, h := m.Size()
	m.Fill(core.Rect{Width: w, Height: h}, core.EmptyCell())
}

func (m *Memory) Show() {
	m.mu.Lock()
	m.shows++
	m.mu.Unlock()
}

func (m *Memory) PollEvent() Event {
	select {
	case ev := <-m.events:
		return ev
	case <-m.done:
		return Event{Type: EventClosed}
	}
}

func (m *Memory) Interrupt() { m.Post(Event{Type: EventInterrupt}) }

// Post queues an input event. It drops the event when the queue is full.
func (m *Memory) Post(ev Event) {
	select {
	case m.events <- ev:
	default:
	}
}

// Resize changes the surface size, clears it and posts EventResize.
func (m *Memory) Resize(width, height int) {
	m.mu.Lock()
	m.resize(width, height)
	m.mu.Unlock()
	m.Post(Event{Type: EventResize, Width: width, Height: height})
}

// Cell returns the cell at (x, y), or an empty cell outside the surface.
func (m *Memory) Cell(x, y int) core.Cell {
	m.mu.Lock()
	defer m.mu.Unlock()
	if x >= 0 && x < m.width && y >= 0 && y < m.height {
		return m.cells[y][x]
	}
	return core.EmptyCell()
}

// Row returns the text of row y with trailing blanks trimmed.
func (m *Memory) Row(y int) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if y < 0 || y >= m.height {
		return ""
	}
	return strings.TrimRight(core.StringFromCells(m.cells[y]), " ")
}

// Shows returns how many times Show was called.
func (m *Memory) Shows() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.shows
}
