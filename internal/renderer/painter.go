package renderer

import (
	"math"

	"github.com/dshills/scrollarea/internal/dom"
	"github.com/dshills/scrollarea/internal/renderer/backend"
	"github.com/dshills/scrollarea/internal/renderer/core"
	"github.com/dshills/scrollarea/internal/scrollarea"
)

// ContentSource supplies the cells of each content row.
type ContentSource interface {
	LineCount() int
	Line(i int) []core.Cell
}

// Theme styles the scroll area chrome.
type Theme struct {
	Text        core.Style
	Track       core.Style
	Thumb       core.Style
	ThumbActive core.Style
	Corner      core.Style
	Edge        core.Style

	TrackRuneY rune
	TrackRuneX rune
	ThumbRune  rune

	// AutoHide skips tracks unless the area is hovered or scrolling.
	AutoHide bool
}

// DefaultTheme returns a theme that works on 256-color terminals.
func DefaultTheme() Theme {
	return Theme{
		Text:        core.DefaultStyle(),
		Track:       core.DefaultStyle().WithForeground(core.ColorFromRGB(0x4a, 0x4a, 0x4a)),
		Thumb:       core.DefaultStyle().WithForeground(core.ColorFromRGB(0x8a, 0x8a, 0x8a)),
		ThumbActive: core.DefaultStyle().WithForeground(core.ColorFromRGB(0xd0, 0xd0, 0xd0)),
		Corner:      core.DefaultStyle().WithBackground(core.ColorFromRGB(0x30, 0x30, 0x30)),
		Edge:        core.DefaultStyle().With(core.AttrDim),
		TrackRuneY:  '│',
		TrackRuneX:  '─',
		ThumbRune:   '█',
	}
}

// Painter draws a laid out scroll area onto a backend.
type Painter struct {
	out   backend.Backend
	theme Theme
}

// NewPainter creates a painter.
func NewPainter(out backend.Backend, theme Theme) *Painter {
	return &Painter{out: out, theme: theme}
}

// SetTheme replaces the theme used by later paints.
func (p *Painter) SetTheme(t Theme) { p.theme = t }

// Theme returns the current theme.
func (p *Painter) Theme() Theme { return p.theme }

// Paint draws content, edge shading, tracks, thumbs and the corner. It
// does not call Show.
func (p *Painter) Paint(parts Parts, src ContentSource) {
	area := cellRect(parts.Viewport.Bounds())
	if area.Empty() {
		return
	}
	p.paintContent(parts.Viewport, area, src)

	showChrome := !p.theme.AutoHide ||
		parts.Root.HasAttribute(scrollarea.AttrScrolling) ||
		parts.ScrollbarY.HasAttribute(scrollarea.AttrHovering) ||
		parts.ScrollbarX.HasAttribute(scrollarea.AttrHovering)
	if showChrome {
		p.paintScrollbar(parts.ScrollbarY, parts.ThumbY, p.theme.TrackRuneY)
		p.paintScrollbar(parts.ScrollbarX, parts.ThumbX, p.theme.TrackRuneX)
	}
	if parts.Corner.Rendered() {
		p.out.Fill(cellRect(parts.Corner.Bounds()).Intersect(area), core.NewCell(' ', p.theme.Corner))
	}
}

func (p *Painter) paintContent(vp *dom.Element, area core.Rect, src ContentSource) {
	top := int(math.Round(vp.ScrollTop()))
	left := int(math.Round(contentColumn(vp)))
	shaded := edgeShading(vp, area)

	for row := 0; row < area.Height; row++ {
		y := area.Y + row
		var line []core.Cell
		if src != nil && top+row < src.LineCount() {
			line = src.Line(top + row)
		}
		for col := 0; col < area.Width; col++ {
			x := area.X + col
			c := core.NewCell(' ', core.DefaultStyle())
			if i := left + col; i >= 0 && i < len(line) {
				c = line[i]
			}
			switch {
			case c.IsContinuation():
				if col > 0 {
					continue
				}
				c = core.NewCell(' ', c.Style)
			case c.Width > 1 && col+c.Width > area.Width:
				c = core.NewCell(' ', c.Style)
			}
			c.Style = p.theme.Text.Merge(c.Style)
			if shaded(x, y) {
				c.Style = c.Style.Merge(p.theme.Edge)
			}
			p.out.SetCell(x, y, c)
		}
	}
}

// edgeShading reports the cells on rows and columns beyond which more
// content lies.
func edgeShading(vp *dom.Element, area core.Rect) func(x, y int) bool {
	startCol, endCol := area.X, area.Right()-1
	if vp.ScrollDirection() == scrollarea.RTL {
		startCol, endCol = endCol, startCol
	}
	yStart := vp.HasAttribute(scrollarea.AttrOverflowYStart)
	yEnd := vp.HasAttribute(scrollarea.AttrOverflowYEnd)
	xStart := vp.HasAttribute(scrollarea.AttrOverflowXStart)
	xEnd := vp.HasAttribute(scrollarea.AttrOverflowXEnd)
	return func(x, y int) bool {
		return (yStart && y == area.Y) ||
			(yEnd && y == area.Bottom()-1) ||
			(xStart && x == startCol) ||
			(xEnd && x == endCol)
	}
}

func (p *Painter) paintScrollbar(track, thumb *dom.Element, trackRune rune) {
	if !track.Rendered() {
		return
	}
	bar := cellRect(track.Bounds())
	if bar.Empty() {
		return
	}
	p.out.Fill(bar, core.NewCell(trackRune, p.theme.Track))

	style := p.theme.Thumb
	if track.HasAttribute(scrollarea.AttrScrolling) {
		style = p.theme.ThumbActive
	}
	knob := cellRect(thumb.BoundingRect()).Intersect(bar)
	if knob.Empty() {
		return
	}
	p.out.Fill(knob, core.NewCell(p.theme.ThumbRune, style))
}
