package renderer

import (
	"math"

	"github.com/dshills/scrollarea/internal/dom"
	"github.com/dshills/scrollarea/internal/renderer/core"
	"github.com/dshills/scrollarea/internal/scrollarea"
)

// LayoutOptions describe one layout pass of a scroll area.
type LayoutOptions struct {
	Direction scrollarea.Direction

	// ContentWidth and ContentHeight are the content extent in cells.
	ContentWidth  int
	ContentHeight int

	// ShowX, ShowY and ShowCorner say which optional parts are mounted.
	ShowX      bool
	ShowY      bool
	ShowCorner bool

	// TrackSize is the thickness of both tracks in cells.
	TrackSize int
}

// Layout places the parts inside area. Tracks overlay the viewport at its
// block-end and inline-end edges and stop short of the corner; thumbs
// take their extent from the thumb-size properties the scroll area last
// wrote. Call Document.Commit afterwards to deliver observer callbacks.
func Layout(p Parts, area core.Rect, opts LayoutOptions) {
	track := float64(max(1, opts.TrackSize))
	r := rectOf(area)
	rtl := opts.Direction == scrollarea.RTL

	p.Root.SetBounds(r)
	p.Viewport.SetBounds(r)
	p.Viewport.SetScrollSize(float64(opts.ContentWidth), float64(opts.ContentHeight))
	p.Content.SetBounds(scrollarea.Rect{
		X:      r.X - contentColumn(p.Viewport),
		Y:      r.Y - p.Viewport.ScrollTop(),
		Width:  float64(opts.ContentWidth),
		Height: float64(opts.ContentHeight),
	})

	cornerW := p.Root.PropertyPx(scrollarea.PropCornerWidth)
	cornerH := p.Root.PropertyPx(scrollarea.PropCornerHeight)

	p.ScrollbarY.SetHidden(!opts.ShowY)
	if opts.ShowY {
		x := r.X + r.Width - track
		if rtl {
			x = r.X
		}
		bar := scrollarea.Rect{X: x, Y: r.Y, Width: track, Height: math.Max(0, r.Height-cornerH)}
		p.ScrollbarY.SetBounds(bar)
		h := p.ScrollbarY.PropertyPx(scrollarea.PropThumbHeight)
		p.ThumbY.SetBounds(scrollarea.Rect{X: bar.X, Y: bar.Y, Width: track, Height: h})
	}

	p.ScrollbarX.SetHidden(!opts.ShowX)
	if opts.ShowX {
		x := r.X
		if rtl {
			x = r.X + cornerW
		}
		bar := scrollarea.Rect{X: x, Y: r.Y + r.Height - track, Width: math.Max(0, r.Width-cornerW), Height: track}
		p.ScrollbarX.SetBounds(bar)
		w := p.ScrollbarX.PropertyPx(scrollarea.PropThumbWidth)
		tx := bar.X
		if rtl {
			// Right to left thumbs rest at the inline end and translate
			// by a non-positive offset.
			tx = bar.X + bar.Width - w
		}
		p.ThumbX.SetBounds(scrollarea.Rect{X: tx, Y: bar.Y, Width: w, Height: track})
	}

	p.Corner.SetHidden(!opts.ShowCorner)
	if opts.ShowCorner {
		w := p.Corner.PropertyPx("width")
		h := p.Corner.PropertyPx("height")
		x := r.X + r.Width - w
		if rtl {
			x = r.X
		}
		p.Corner.SetBounds(scrollarea.Rect{X: x, Y: r.Y + r.Height - h, Width: w, Height: h})
	}
}

// contentColumn is the content column shown at the viewport's left edge.
// Right to left viewports rest at the inline end with scrollLeft at zero.
func contentColumn(vp *dom.Element) float64 {
	if vp.ScrollDirection() == scrollarea.RTL {
		limit := math.Max(0, vp.ScrollWidth()-vp.ClientWidth())
		return limit + vp.ScrollLeft()
	}
	return vp.ScrollLeft()
}

func rectOf(r core.Rect) scrollarea.Rect {
	return scrollarea.Rect{X: float64(r.X), Y: float64(r.Y), Width: float64(r.Width), Height: float64(r.Height)}
}

// cellRect rounds a client rectangle to whole cells.
func cellRect(r scrollarea.Rect) core.Rect {
	x := int(math.Round(r.X))
	y := int(math.Round(r.Y))
	return core.Rect{
		X:      x,
		Y:      y,
		Width:  int(math.Round(r.X+r.Width)) - x,
		Height: int(math.Round(r.Y+r.Height)) - y,
	}
}
