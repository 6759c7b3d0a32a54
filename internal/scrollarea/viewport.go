package scrollarea

// Viewport is the natively scrolling part. It owns the triggers that run
// the geometry engine: mount, resize, visibility, settled animations,
// scroll events and hidden-state transitions.
type Viewport struct {
	root *Root
	el   ViewportElement

	// programmatic is true until the user interacts with the viewport and
	// again once scroll events stop for scrollEndTimeout. While it is set,
	// scroll events do not raise the scrolling flags.
	programmatic bool

	scrollEnd      *Timeout
	waitAnimations *Timeout
	pending        bool
	mounted        bool
	stop           chan struct{}
	cleanup        []func()
}

// NewViewport creates the viewport part of root.
func NewViewport(root *Root, el ViewportElement) (*Viewport, error) {
	if root == nil {
		return nil, newMissingAncestor("Viewport", "Root", ErrMissingRoot)
	}
	if isNil(el) {
		return nil, ErrMissingElement
	}
	return &Viewport{
		root:           root,
		el:             el,
		programmatic:   true,
		scrollEnd:      NewTimeout(root.env.Scheduler),
		waitAnimations: NewTimeout(root.env.Scheduler),
	}, nil
}

// Element returns the viewport surface.
func (v *Viewport) Element() ViewportElement { return v.el }

// Root returns the owning root.
func (v *Viewport) Root() *Root { return v.root }

// Mount registers the viewport with its root and attaches observers. The
// first geometry pass runs as a microtask so parts mounted in the same
// turn are registered by then.
func (v *Viewport) Mount() error {
	if v.mounted {
		return nil
	}
	if err := v.root.RegisterViewport(v.el); err != nil {
		return err
	}
	v.mounted = true
	v.stop = make(chan struct{})
	env := v.root.env

	RegisterOverflowProperties(env.Properties, v.root.log)
	v.el.SetAttribute("class", DisableScrollbarClass)

	if h, ok := v.el.(Hoverable); ok && h.Hovered() {
		v.root.SetHovering(true)
	}

	v.ScheduleRecompute()

	if env.Visibility != nil {
		v.cleanup = append(v.cleanup, env.Visibility.Observe(v.el, skipFirst(v.root.Recompute)))
	} else {
		v.root.log.Debug("no visibility observer; viewport visibility changes are not tracked")
	}

	if env.Resize != nil {
		v.cleanup = append(v.cleanup, env.Resize.Observe(v.el, skipFirst(v.root.Recompute)))
		v.waitAnimations.Start(0, v.awaitAnimations)
	} else {
		v.root.log.Debug("no resize observer; viewport resizes are not tracked")
	}

	v.syncAttributes()
	v.cleanup = append(v.cleanup,
		v.root.hidden.Subscribe(func(HiddenState) {
			v.syncAttributes()
			v.ScheduleRecompute()
		}),
		v.root.scrollingX.Subscribe(func(bool) { v.syncAttributes() }),
		v.root.scrollingY.Subscribe(func(bool) { v.syncAttributes() }),
		v.root.edges.Subscribe(func(OverflowEdges) { v.syncAttributes() }),
	)
	return nil
}

// Unmount detaches observers, clears pending timers and frees the
// viewport slot. Safe to call more than once.
func (v *Viewport) Unmount() {
	if !v.mounted {
		return
	}
	v.mounted = false
	close(v.stop)
	v.scrollEnd.Clear()
	v.waitAnimations.Clear()
	for _, fn := range v.cleanup {
		fn()
	}
	v.cleanup = nil
	v.root.UnregisterViewport(v.el)
}

// ScheduleRecompute queues one geometry pass as a microtask. Requests made
// before it runs share that pass.
func (v *Viewport) ScheduleRecompute() {
	if v.pending || !v.mounted {
		return
	}
	v.pending = true
	v.root.env.Scheduler.Queue(func() {
		v.pending = false
		if v.mounted {
			v.root.Recompute()
		}
	})
}

// HandleScroll reacts to a native scroll event. The root's position is
// updated at once; only scrolls caused by user input raise the scrolling
// flags. The geometry pass that moves the thumbs runs as a microtask.
func (v *Viewport) HandleScroll() {
	if !v.mounted {
		return
	}
	pos := Coords{X: v.el.ScrollLeft(), Y: v.el.ScrollTop()}
	if v.programmatic {
		v.root.position = pos
	} else {
		v.root.HandleScroll(pos)
	}
	v.ScheduleRecompute()
	v.scrollEnd.Start(scrollEndTimeout, func() { v.programmatic = true })
}

// HandleUserInteraction marks the next scroll events as user driven. Hosts
// call it for wheel, touch move, pointer enter and move, and key down on
// the viewport.
func (v *Viewport) HandleUserInteraction() {
	v.programmatic = false
}

// TabIndex returns 0 while either axis overflows, so keyboard users can
// focus the viewport, and -1 otherwise.
func (v *Viewport) TabIndex() int {
	h := v.root.hidden.Get()
	if !h.X || !h.Y {
		return 0
	}
	return -1
}

func (v *Viewport) syncAttributes() {
	applyAttributes(v.el, v.root.Flags().Attributes())
	if v.TabIndex() == 0 {
		v.el.SetAttribute("tabindex", "0")
	} else {
		v.el.RemoveAttribute("tabindex")
	}
}

// awaitAnimations recomputes once every animation running in the viewport
// subtree has finished. A canceled animation abandons the wait.
func (v *Viewport) awaitAnimations() {
	src := v.root.env.Animations
	if src == nil {
		return
	}
	anims := src.Animations(v.el)
	if len(anims) == 0 {
		return
	}
	stop := v.stop
	sched := v.root.env.Scheduler
	log := v.root.log
	go func() {
		for _, a := range anims {
			select {
			case err := <-a.Finished():
				if err != nil {
					log.Debug("animation wait abandoned: %v", err)
					return
				}
			case <-stop:
				return
			}
		}
		sched.Queue(func() {
			if v.mounted && v.stop == stop {
				v.root.Recompute()
			}
		})
	}()
}

// skipFirst drops the initial-measurement callback observers deliver
// right after Observe.
func skipFirst(fn func()) func() {
	seen := false
	return func() {
		if !seen {
			seen = true
			return
		}
		fn()
	}
}
