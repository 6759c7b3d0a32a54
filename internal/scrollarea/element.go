package scrollarea

import (
	"time"

	"github.com/dshills/scrollarea/internal/logging"
)

// Node is a position in the element tree. Shadow roots have no parent
// node and report the element hosting them through Host.
type Node interface {
	ParentNode() Node
	Host() Node
}

// Box exposes the layout metrics the engine reads.
type Box interface {
	OffsetWidth() float64
	OffsetHeight() float64
	Padding() Insets
	Margin() Insets
	BoundingRect() Rect
}

// Element is a part surface the scroll area measures and writes to.
// Writes never trigger recomputation by themselves.
type Element interface {
	Box

	// SetTransform applies a compositor translation in pixels.
	SetTransform(x, y float64)

	// SetProperty writes a custom style property, e.g. "--scroll-area-thumb-height".
	SetProperty(name, value string)

	// SetAttribute sets an attribute. Presence-style flags use "".
	SetAttribute(name, value string)

	RemoveAttribute(name string)
}

// RootElement is the outermost surface of a scroll area. Hover tracking
// tests event targets against it.
type RootElement interface {
	Element
	Node
}

// ViewportElement is the natively scrolling element.
type ViewportElement interface {
	Element

	ScrollWidth() float64
	ScrollHeight() float64
	ClientWidth() float64
	ClientHeight() float64
	ScrollTop() float64
	ScrollLeft() float64

	// SetScrollTop and SetScrollLeft write the native offsets. The element
	// clamps to its scroll range the way a browser does.
	SetScrollTop(v float64)
	SetScrollLeft(v float64)
}

// CaptureTarget can own a pointer until it is released.
type CaptureTarget interface {
	SetPointerCapture(pointerID int)
	ReleasePointerCapture(pointerID int)
}

// ThumbElement is a thumb surface that takes pointer capture while dragged.
type ThumbElement interface {
	Element
	CaptureTarget
}

// Hoverable elements can report whether a pointer is over them.
type Hoverable interface {
	Hovered() bool
}

// AttributeReader exposes element attributes.
type AttributeReader interface {
	Attribute(name string) (string, bool)
}

// ResizeObserver delivers element size-change notifications.
// The first callback after Observe reports the initial measurement.
type ResizeObserver interface {
	Observe(target Box, fn func()) (disconnect func())
}

// VisibilityObserver delivers element visibility-change notifications.
// The first callback after Observe reports the initial state.
type VisibilityObserver interface {
	Observe(target Box, fn func()) (disconnect func())
}

// PropertyDefinition describes a custom property to register.
type PropertyDefinition struct {
	Name         string
	Syntax       string
	Inherits     bool
	InitialValue string
}

// PropertyRegistry registers typed custom properties. Registering a name
// twice returns an error that callers ignore.
type PropertyRegistry interface {
	RegisterProperty(def PropertyDefinition) error
}

// StyleInjector installs a global stylesheet.
type StyleInjector interface {
	InjectStyle(id, css string)
}

// Animation is a running animation whose completion can be awaited.
type Animation interface {
	// Finished delivers nil when the animation completes or an error when
	// it is canceled.
	Finished() <-chan error
}

// AnimationSource lists animations running on an element subtree.
type AnimationSource interface {
	Animations(target Box) []Animation
}

// Scheduler runs deferred work on the scroll area's goroutine. Queue must
// be safe to call from any goroutine.
type Scheduler interface {
	Queue(fn func())
	AfterFunc(d time.Duration, fn func()) (cancel func())
}

// Env bundles the capabilities the scroll area consumes from its host.
// Only Scheduler is required; every other capability is optional and the
// enhancement it enables is skipped when it is nil.
type Env struct {
	Scheduler  Scheduler
	Resize     ResizeObserver
	Visibility VisibilityObserver
	Properties PropertyRegistry
	Styles     StyleInjector
	Animations AnimationSource
	Logger     *logging.Logger
}

func (e Env) logger() *logging.Logger {
	if e.Logger == nil {
		return logging.Null()
	}
	return e.Logger
}

// PointerType discriminates the input device behind a pointer event.
type PointerType string

const (
	PointerMouse PointerType = "mouse"
	PointerPen   PointerType = "pen"
	PointerTouch PointerType = "touch"
)

// PointerEvent is a pointer down/move/up/enter notification.
type PointerEvent struct {
	PointerID   int
	PointerType PointerType

	// Button is 0 for the primary button.
	Button  int
	ClientX float64
	ClientY float64

	// Target is the innermost node the pointer is over; CurrentTarget is the
	// node whose handler is running.
	Target        Node
	CurrentTarget Node

	defaultPrevented bool
}

// PreventDefault suppresses the host's default handling.
func (e *PointerEvent) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *PointerEvent) DefaultPrevented() bool { return e.defaultPrevented }

// WheelEvent is a wheel or trackpad scroll notification.
type WheelEvent struct {
	DeltaX  float64
	DeltaY  float64
	CtrlKey bool

	defaultPrevented bool
}

// PreventDefault suppresses the host's default handling.
func (e *WheelEvent) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *WheelEvent) DefaultPrevented() bool { return e.defaultPrevented }
