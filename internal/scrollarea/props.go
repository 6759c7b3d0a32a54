package scrollarea

import (
	"errors"
	"sort"
	"strconv"
	"sync"

	"github.com/dshills/scrollarea/internal/logging"
)

// Custom properties written by the scroll area.
const (
	PropOverflowXStart = "--scroll-area-overflow-x-start"
	PropOverflowXEnd   = "--scroll-area-overflow-x-end"
	PropOverflowYStart = "--scroll-area-overflow-y-start"
	PropOverflowYEnd   = "--scroll-area-overflow-y-end"

	PropCornerWidth  = "--scroll-area-corner-width"
	PropCornerHeight = "--scroll-area-corner-height"

	PropThumbWidth  = "--scroll-area-thumb-width"
	PropThumbHeight = "--scroll-area-thumb-height"
)

// Presence attributes exposed on the root, viewport, content and track.
const (
	AttrScrolling      = "data-scrolling"
	AttrScrollingX     = "data-scrolling-x"
	AttrScrollingY     = "data-scrolling-y"
	AttrHasOverflowX   = "data-has-overflow-x"
	AttrHasOverflowY   = "data-has-overflow-y"
	AttrOverflowXStart = "data-overflow-x-start"
	AttrOverflowXEnd   = "data-overflow-x-end"
	AttrOverflowYStart = "data-overflow-y-start"
	AttrOverflowYEnd   = "data-overflow-y-end"
	AttrHovering       = "data-hovering"
	AttrOrientation    = "data-orientation"
)

// DisableScrollbarClass hides native scrollbars on the viewport.
const DisableScrollbarClass = "scroll-area-disable-scrollbar"

const disableScrollbarCSS = "." + DisableScrollbarClass + "{scrollbar-width:none}." +
	DisableScrollbarClass + "::-webkit-scrollbar{display:none}"

// px formats a pixel length.
func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

// Flags is the state surface shared by root, viewport and content.
type Flags struct {
	ScrollingX bool
	ScrollingY bool
	Hidden     HiddenState
	Edges      OverflowEdges
}

// Attributes returns every presence attribute with its current state.
func (f Flags) Attributes() map[string]bool {
	return map[string]bool{
		AttrScrolling:      f.ScrollingX || f.ScrollingY,
		AttrScrollingX:     f.ScrollingX,
		AttrScrollingY:     f.ScrollingY,
		AttrHasOverflowX:   !f.Hidden.X,
		AttrHasOverflowY:   !f.Hidden.Y,
		AttrOverflowXStart: f.Edges.XStart,
		AttrOverflowXEnd:   f.Edges.XEnd,
		AttrOverflowYStart: f.Edges.YStart,
		AttrOverflowYEnd:   f.Edges.YEnd,
	}
}

// Present returns the names of the attributes currently set, sorted.
func (f Flags) Present() []string {
	var names []string
	for name, on := range f.Attributes() {
		if on {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func applyAttributes(el Element, attrs map[string]bool) {
	if el == nil {
		return
	}
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		toggleAttribute(el, name, attrs[name])
	}
}

func toggleAttribute(el Element, name string, on bool) {
	if on {
		el.SetAttribute(name, "")
		return
	}
	el.RemoveAttribute(name)
}

// processOnce guards a process-wide initialization step.
type processOnce struct {
	mu   sync.Mutex
	done bool
}

// Do runs fn unless a previous call completed. fn reports completion;
// returning false leaves the step eligible for a later call.
func (o *processOnce) Do(fn func() bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.done {
		return
	}
	o.done = fn()
}

func (o *processOnce) reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.done = false
}

var (
	styleOnce    processOnce
	propertyOnce processOnce
)

// InjectDisableScrollbarStyle installs the native-scrollbar-hiding
// stylesheet once per process. Without an injector it does nothing and
// stays eligible for a later call.
func InjectDisableScrollbarStyle(styles StyleInjector) {
	styleOnce.Do(func() bool {
		if styles == nil {
			return false
		}
		styles.InjectStyle(DisableScrollbarClass, disableScrollbarCSS)
		return true
	})
}

// RegisterOverflowProperties registers the four overflow distance
// properties as non-inheriting lengths, once per process. Hosts without a
// registry skip registration; the step is still considered done.
// Names the registry already holds are fine; other failures are logged.
func RegisterOverflowProperties(reg PropertyRegistry, log *logging.Logger) {
	propertyOnce.Do(func() bool {
		if reg == nil {
			return true
		}
		for _, name := range []string{PropOverflowXStart, PropOverflowXEnd, PropOverflowYStart, PropOverflowYEnd} {
			err := reg.RegisterProperty(PropertyDefinition{
				Name:         name,
				Syntax:       "<length>",
				Inherits:     false,
				InitialValue: "0px",
			})
			if err != nil && !errors.Is(err, ErrPropertyRegistered) {
				log.Debug("register property %s: %v", name, err)
			}
		}
		return true
	})
}
