package scrollarea

// Corner fills the square where both tracks would overlap. Registering it
// lets the engine commit a corner size.
type Corner struct {
	root    *Root
	el      Element
	mounted bool
	unsub   func()
}

// NewCorner creates the corner of root.
func NewCorner(root *Root, el Element) (*Corner, error) {
	if root == nil {
		return nil, newMissingAncestor("Corner", "Root", ErrMissingRoot)
	}
	if isNil(el) {
		return nil, ErrMissingElement
	}
	return &Corner{root: root, el: el}, nil
}

// Element returns the corner surface.
func (c *Corner) Element() Element { return c.el }

// ShouldRender reports whether both axes currently overflow.
func (c *Corner) ShouldRender() bool {
	return !c.root.hidden.Get().Corner
}

// Size returns the committed corner size.
func (c *Corner) Size() Size {
	return c.root.cornerSize.Get()
}

// Mount registers the corner and mirrors its size onto the element.
func (c *Corner) Mount() error {
	if c.mounted {
		return nil
	}
	if err := c.root.RegisterCorner(c.el); err != nil {
		return err
	}
	c.mounted = true
	c.sync(c.root.cornerSize.Get())
	c.unsub = c.root.cornerSize.Subscribe(c.sync)
	return nil
}

// Unmount frees the corner slot. Safe to call more than once.
func (c *Corner) Unmount() {
	if !c.mounted {
		return
	}
	c.mounted = false
	c.unsub()
	c.root.UnregisterCorner(c.el)
}

func (c *Corner) sync(s Size) {
	c.el.SetProperty("width", px(s.Width))
	c.el.SetProperty("height", px(s.Height))
}
