package scrollarea

import (
	"math"
	"time"
)

const (
	// MinThumbSize is the default smallest thumb extent, in pixels.
	MinThumbSize = 16

	// ScrollTimeout is the default settle window after the last scroll
	// delta before an axis stops reporting that it is scrolling.
	ScrollTimeout = 500 * time.Millisecond

	// scrollEndTimeout re-arms programmatic-scroll suppression on the
	// viewport once user-driven scroll events stop arriving.
	scrollEndTimeout = 100 * time.Millisecond
)

// Orientation names the axis a scrollbar or thumb belongs to.
type Orientation string

const (
	Vertical   Orientation = "vertical"
	Horizontal Orientation = "horizontal"
)

// ParseOrientation maps an attribute value to an Orientation.
// Anything other than "horizontal" is vertical.
func ParseOrientation(s string) Orientation {
	if s == string(Horizontal) {
		return Horizontal
	}
	return Vertical
}

// Direction is the inline text direction of the scroll area.
type Direction int

const (
	LTR Direction = iota
	RTL
)

// String returns "ltr" or "rtl".
func (d Direction) String() string {
	if d == RTL {
		return "rtl"
	}
	return "ltr"
}

// ParseDirection maps "rtl" to RTL and everything else to LTR.
func ParseDirection(s string) Direction {
	if s == "rtl" {
		return RTL
	}
	return LTR
}

// Size is a non-negative extent in pixels.
type Size struct {
	Width  float64
	Height float64
}

// IsZero reports whether both extents are zero.
func (s Size) IsZero() bool {
	return s.Width == 0 && s.Height == 0
}

// Coords is a scroll offset pair.
type Coords struct {
	X float64
	Y float64
}

// HiddenState records which scrollbars have nothing to scroll.
type HiddenState struct {
	X      bool
	Y      bool
	Corner bool
}

// Axis reports the hidden flag for the given orientation.
func (h HiddenState) Axis(o Orientation) bool {
	if o == Horizontal {
		return h.X
	}
	return h.Y
}

// OverflowEdges reports, per edge, whether more content lies beyond the
// configured threshold in that direction.
type OverflowEdges struct {
	XStart bool
	XEnd   bool
	YStart bool
	YEnd   bool
}

// OverflowEdgeThreshold holds per-edge dead zones in pixels.
type OverflowEdgeThreshold struct {
	XStart float64
	XEnd   float64
	YStart float64
	YEnd   float64
}

// UniformThreshold applies v to all four edges. Negative values become 0.
func UniformThreshold(v float64) OverflowEdgeThreshold {
	v = nonNegative(v)
	return OverflowEdgeThreshold{XStart: v, XEnd: v, YStart: v, YEnd: v}
}

// Normalize clamps every edge to be non-negative.
func (t OverflowEdgeThreshold) Normalize() OverflowEdgeThreshold {
	return OverflowEdgeThreshold{
		XStart: nonNegative(t.XStart),
		XEnd:   nonNegative(t.XEnd),
		YStart: nonNegative(t.YStart),
		YEnd:   nonNegative(t.YEnd),
	}
}

// Insets are the four sides of a padding or margin box.
type Insets struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// Axis returns the sum of both sides along the orientation's axis.
func (i Insets) Axis(o Orientation) float64 {
	if o == Horizontal {
		return i.Left + i.Right
	}
	return i.Top + i.Bottom
}

// Rect is a client-space rectangle.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}

// clamp bounds v to [lo, hi]. When the range is inverted hi wins.
func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// ratio returns num/den, or 0 when den is zero or the result is not finite.
func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	r := num / den
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}
