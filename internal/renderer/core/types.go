// Package core holds the cell, style and geometry types shared by the
// renderer and its backends.
package core

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Attribute is a set of text attribute flags.
type Attribute uint8

const (
	AttrNone    Attribute = 0
	AttrBold    Attribute = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
	AttrReverse
)

// Has reports whether every flag in attr is set.
func (a Attribute) Has(attr Attribute) bool { return a&attr == attr }

// Color is a 24-bit color or the terminal default.
type Color struct {
	R, G, B uint8
	Default bool
}

// ColorDefault leaves the terminal's own color in place.
var ColorDefault = Color{Default: true}

// ColorFromRGB returns a true color.
func ColorFromRGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b} }

// ParseColor parses "#rgb" or "#rrggbb". The empty string and "default"
// yield ColorDefault.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "default") {
		return ColorDefault, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Hex formats the color as "#rrggbb", or "default".
func (c Color) Hex() string {
	if c.Default {
		return "default"
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Blend mixes other into c by amount in [0,1]. Blending with the default
// color returns the non-default side.
func (c Color) Blend(other Color, amount float64) Color {
	switch {
	case c.Default:
		return other
	case other.Default:
		return c
	}
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a)*(1-amount) + float64(b)*amount)
	}
	return Color{R: mix(c.R, other.R), G: mix(c.G, other.G), B: mix(c.B, other.B)}
}

// Style is the visual style of a cell.
type Style struct {
	Foreground Color
	Background Color
	Attributes Attribute
}

// DefaultStyle uses the terminal's colors and no attributes.
func DefaultStyle() Style {
	return Style{Foreground: ColorDefault, Background: ColorDefault}
}

func (s Style) WithForeground(c Color) Style {
	s.Foreground = c
	return s
}

func (s Style) WithBackground(c Color) Style {
	s.Background = c
	return s
}

// With adds attribute flags.
func (s Style) With(a Attribute) Style {
	s.Attributes |= a
	return s
}

// Merge overlays the non-default parts of top onto s.
func (s Style) Merge(top Style) Style {
	if !top.Foreground.Default {
		s.Foreground = top.Foreground
	}
	if !top.Background.Default {
		s.Background = top.Background
	}
	s.Attributes |= top.Attributes
	return s
}

// Cell is one terminal cell. A wide rune is followed by a continuation
// cell of width zero.
type Cell struct {
	Rune  rune
	Width int
	Style Style
}

// EmptyCell is a blank in the default style.
func EmptyCell() Cell { return Cell{Rune: ' ', Width: 1, Style: DefaultStyle()} }

// NewCell returns a cell for r in style s.
func NewCell(r rune, s Style) Cell { return Cell{Rune: r, Width: RuneWidth(r), Style: s} }

// IsContinuation reports whether c is the trailing half of a wide rune.
func (c Cell) IsContinuation() bool { return c.Width == 0 && c.Rune == 0 }

// RuneWidth returns the number of columns r occupies.
func RuneWidth(r rune) int { return runewidth.RuneWidth(r) }

// StringWidth returns the number of columns s occupies.
func StringWidth(s string) int { return runewidth.StringWidth(s) }

// CellsFromString lays s out as cells. Zero-width runes are dropped and
// tabs expand to the next multiple of tabWidth.
func CellsFromString(s string, style Style, tabWidth int) []Cell {
	cells := make([]Cell, 0, len(s))
	for _, r := range s {
		if r == '\t' && tabWidth > 0 {
			n := tabWidth - len(cells)%tabWidth
			for i := 0; i < n; i++ {
				cells = append(cells, Cell{Rune: ' ', Width: 1, Style: style})
			}
			continue
		}
		w := RuneWidth(r)
		if w == 0 {
			continue
		}
		cells = append(cells, Cell{Rune: r, Width: w, Style: style})
		for i := 1; i < w; i++ {
			cells = append(cells, Cell{Style: style})
		}
	}
	return cells
}

// StringFromCells reverses CellsFromString, skipping continuations.
func StringFromCells(cells []Cell) string {
	var b strings.Builder
	for _, c := range cells {
		if !c.IsContinuation() {
			b.WriteRune(c.Rune)
		}
	}
	return b.String()
}

// Rect is an integer screen rectangle.
type Rect struct {
	X, Y          int
	Width, Height int
}

func (r Rect) Right() int  { return r.X + r.Width }
func (r Rect) Bottom() int { return r.Y + r.Height }

// Empty reports whether the rectangle covers no cells.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Intersect returns the overlap of r and o, empty when they are disjoint.
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.Right(), o.Right()), min(r.Bottom(), o.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}
