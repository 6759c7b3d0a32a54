package scrollarea

import (
	"errors"
	"fmt"
)

// Construction errors. A part built without its required ancestor is a
// usage error and is reported before the part can be mounted.
var (
	// ErrMissingRoot indicates a part was created without a Root.
	ErrMissingRoot = errors.New("scrollarea: part must be placed within a Root")

	// ErrMissingScrollbar indicates a Thumb was created without a Scrollbar.
	ErrMissingScrollbar = errors.New("scrollarea: part must be placed within a Scrollbar")

	// ErrMissingViewport indicates a Content was created without a Viewport.
	ErrMissingViewport = errors.New("scrollarea: part must be placed within a Viewport")

	// ErrMissingElement indicates a part was created without its element.
	ErrMissingElement = errors.New("scrollarea: part requires an element")

	// ErrNoScheduler indicates a Root was created without a Scheduler.
	ErrNoScheduler = errors.New("scrollarea: environment has no scheduler")

	// ErrSlotOccupied indicates a handle slot already has a registrant.
	ErrSlotOccupied = errors.New("scrollarea: handle slot already registered")
)

// ErrPropertyRegistered is returned by a PropertyRegistry for a name that
// is already registered.
var ErrPropertyRegistered = errors.New("scrollarea: property already registered")

// MissingAncestorError names the part and the ancestor it was created
// outside of.
type MissingAncestorError struct {
	Part     string
	Ancestor string
	Err      error
}

func newMissingAncestor(part, ancestor string, err error) *MissingAncestorError {
	return &MissingAncestorError{Part: part, Ancestor: ancestor, Err: err}
}

func (e *MissingAncestorError) Error() string {
	return fmt.Sprintf("scrollarea: %s must be placed within a %s", e.Part, e.Ancestor)
}

func (e *MissingAncestorError) Unwrap() error {
	return e.Err
}

// SlotError reports a registration conflict for a named handle slot.
type SlotError struct {
	Slot string
}

func (e *SlotError) Error() string {
	return fmt.Sprintf("scrollarea: %s handle already registered", e.Slot)
}

func (e *SlotError) Unwrap() error {
	return ErrSlotOccupied
}
