package scrollarea

// Content wraps the scrolled content. Its size changes rerun the engine.
type Content struct {
	vp      *Viewport
	el      Element
	mounted bool
	cleanup []func()
}

// NewContent creates the content part of vp.
func NewContent(vp *Viewport, el Element) (*Content, error) {
	if vp == nil {
		return nil, newMissingAncestor("Content", "Viewport", ErrMissingViewport)
	}
	if isNil(el) {
		return nil, ErrMissingElement
	}
	return &Content{vp: vp, el: el}, nil
}

// Element returns the content surface.
func (c *Content) Element() Element { return c.el }

// Mount starts watching the content size and mirrors the state flags.
func (c *Content) Mount() {
	if c.mounted {
		return
	}
	c.mounted = true
	root := c.vp.root

	if obs := root.env.Resize; obs != nil {
		c.cleanup = append(c.cleanup, obs.Observe(c.el, skipFirst(root.Recompute)))
	}

	c.syncAttributes()
	apply := func() { c.syncAttributes() }
	c.cleanup = append(c.cleanup,
		root.scrollingX.Subscribe(func(bool) { apply() }),
		root.scrollingY.Subscribe(func(bool) { apply() }),
		root.hidden.Subscribe(func(HiddenState) { apply() }),
		root.edges.Subscribe(func(OverflowEdges) { apply() }),
	)
}

// Unmount disconnects the observer. Safe to call more than once.
func (c *Content) Unmount() {
	if !c.mounted {
		return
	}
	c.mounted = false
	for _, fn := range c.cleanup {
		fn()
	}
	c.cleanup = nil
}

func (c *Content) syncAttributes() {
	applyAttributes(c.el, c.vp.root.Flags().Attributes())
}
