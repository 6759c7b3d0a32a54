package scrollarea

// Thumb is the draggable indicator inside a Scrollbar.
type Thumb struct {
	sb      *Scrollbar
	el      ThumbElement
	mounted bool
}

// NewThumb creates the thumb of sb.
func NewThumb(sb *Scrollbar, el ThumbElement) (*Thumb, error) {
	if sb == nil {
		return nil, newMissingAncestor("Thumb", "Scrollbar", ErrMissingScrollbar)
	}
	if isNil(el) {
		return nil, ErrMissingElement
	}
	return &Thumb{sb: sb, el: el}, nil
}

// Element returns the thumb surface.
func (t *Thumb) Element() ThumbElement { return t.el }

// Orientation returns the axis of the owning track.
func (t *Thumb) Orientation() Orientation { return t.sb.orientation }

// Mount registers the thumb with the root.
func (t *Thumb) Mount() error {
	if t.mounted {
		return nil
	}
	if err := t.sb.root.RegisterThumb(t.sb.orientation, t.el); err != nil {
		return err
	}
	t.mounted = true
	t.el.SetAttribute(AttrOrientation, string(t.sb.orientation))
	return nil
}

// Unmount frees the thumb slot. Safe to call more than once.
func (t *Thumb) Unmount() {
	if !t.mounted {
		return
	}
	t.mounted = false
	t.sb.root.UnregisterThumb(t.sb.orientation, t.el)
}

// HandlePointerDown starts a drag.
func (t *Thumb) HandlePointerDown(ev *PointerEvent) {
	t.sb.root.HandlePointerDown(ev)
}

// HandlePointerMove drives an active drag.
func (t *Thumb) HandlePointerMove(ev *PointerEvent) {
	t.sb.root.HandlePointerMove(ev)
}

// HandlePointerUp ends the drag and clears the thumb axis's scrolling
// flag at once rather than waiting out the settle timeout.
func (t *Thumb) HandlePointerUp(ev *PointerEvent) {
	t.sb.root.clearScrolling(t.sb.orientation)
	t.sb.root.HandlePointerUp(ev)
}
