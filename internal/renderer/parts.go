package renderer

import (
	"github.com/dshills/scrollarea/internal/dom"
	"github.com/dshills/scrollarea/internal/scrollarea"
)

// Parts are the elements that make up one scroll area. The viewport holds
// the content; tracks and the corner are siblings of the viewport inside
// the root so they paint, and hit test, above it.
type Parts struct {
	Root       *dom.Element
	Viewport   *dom.Element
	Content    *dom.Element
	ScrollbarY *dom.Element
	ThumbY     *dom.Element
	ScrollbarX *dom.Element
	ThumbX     *dom.Element
	Corner     *dom.Element
}

// NewParts builds the element tree under parent.
func NewParts(d *dom.Document, parent *dom.Element, dir scrollarea.Direction) Parts {
	p := Parts{
		Root:       d.NewElement("scroll-area"),
		Viewport:   d.NewElement("viewport"),
		Content:    d.NewElement("content"),
		ScrollbarY: d.NewElement("scrollbar"),
		ThumbY:     d.NewElement("thumb"),
		ScrollbarX: d.NewElement("scrollbar"),
		ThumbX:     d.NewElement("thumb"),
		Corner:     d.NewElement("corner"),
	}
	parent.AppendChild(p.Root)
	p.Root.AppendChild(p.Viewport)
	p.Viewport.AppendChild(p.Content)
	p.Viewport.MakeScrollable(dir)
	p.Root.AppendChild(p.ScrollbarY)
	p.ScrollbarY.AppendChild(p.ThumbY)
	p.Root.AppendChild(p.ScrollbarX)
	p.ScrollbarX.AppendChild(p.ThumbX)
	p.Root.AppendChild(p.Corner)
	p.Root.SetAttribute("dir", dir.String())
	return p
}

// Scrollbar returns the track for the orientation.
func (p Parts) Scrollbar(o scrollarea.Orientation) *dom.Element {
	if o == scrollarea.Horizontal {
		return p.ScrollbarX
	}
	return p.ScrollbarY
}

// Thumb returns the thumb for the orientation.
func (p Parts) Thumb(o scrollarea.Orientation) *dom.Element {
	if o == scrollarea.Horizontal {
		return p.ThumbX
	}
	return p.ThumbY
}
