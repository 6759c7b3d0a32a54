package scrollarea

import "math"

// TrackMetrics describes one scrollbar track and its thumb as measured
// along the track's axis.
type TrackMetrics struct {
	Present bool
	Width   float64
	Height  float64

	// Padding is the track's padding summed along its axis.
	Padding float64

	ThumbPresent bool

	// ThumbMargin is the thumb's margin summed along the track's axis.
	ThumbMargin float64
}

// Metrics is everything the geometry engine reads in one pass.
type Metrics struct {
	ScrollWidth  float64
	ScrollHeight float64
	ClientWidth  float64
	ClientHeight float64
	ScrollTop    float64
	ScrollLeft   float64

	TrackX TrackMetrics
	TrackY TrackMetrics

	// CornerSize is the corner size committed by the previous pass.
	CornerSize Size

	MinThumbSize float64
	Direction    Direction
	Threshold    OverflowEdgeThreshold
}

// EdgeDistances is how far, in pixels, the viewport can still scroll
// toward each edge.
type EdgeDistances struct {
	XStart float64
	XEnd   float64
	YStart float64
	YEnd   float64
}

// Geometry is the derived state of one engine pass.
type Geometry struct {
	Hidden      HiddenState
	ThumbSize   Size
	ThumbOffset Coords
	Distances   EdgeDistances
	Edges       OverflowEdges
	CornerSize  Size
}

// Compute derives thumb size and offset, overflow distances and flags,
// hidden state and corner size from a set of metrics. It reports false
// when the content has not been laid out yet.
func Compute(m Metrics) (Geometry, bool) {
	if m.ScrollHeight == 0 || m.ScrollWidth == 0 {
		return Geometry{}, false
	}
	minThumb := m.MinThumbSize
	if minThumb <= 0 {
		minThumb = MinThumbSize
	}

	var g Geometry
	hiddenX := m.ClientWidth >= m.ScrollWidth
	hiddenY := m.ClientHeight >= m.ScrollHeight
	g.Hidden = HiddenState{X: hiddenX, Y: hiddenY, Corner: hiddenX || hiddenY}

	ratioX := ratio(m.ClientWidth, m.ScrollWidth)
	ratioY := ratio(m.ClientHeight, m.ScrollHeight)
	maxLeft := math.Max(0, m.ScrollWidth-m.ClientWidth)
	maxTop := math.Max(0, m.ScrollHeight-m.ClientHeight)

	if !hiddenX {
		fromStart := m.ScrollLeft
		if m.Direction == RTL {
			fromStart = -m.ScrollLeft
		}
		g.Distances.XStart = clamp(fromStart, 0, maxLeft)
		g.Distances.XEnd = maxLeft - g.Distances.XStart
	}
	if !hiddenY {
		g.Distances.YStart = clamp(m.ScrollTop, 0, maxTop)
		g.Distances.YEnd = maxTop - g.Distances.YStart
	}

	if !hiddenX && !hiddenY {
		if m.TrackY.Present {
			g.CornerSize.Width = m.TrackY.Width
		}
		if m.TrackX.Present {
			g.CornerSize.Height = m.TrackX.Height
		}
	}

	// Until a corner size has been committed the tracks still span the
	// corner, so its footprint comes off the track length here.
	var cornerW, cornerH float64
	if m.CornerSize.IsZero() {
		cornerW, cornerH = g.CornerSize.Width, g.CornerSize.Height
	}

	var viewW, viewH float64
	if !hiddenX {
		viewW = m.ClientWidth
	}
	if !hiddenY {
		viewH = m.ClientHeight
	}
	availW := viewW - m.TrackX.Padding - m.TrackX.ThumbMargin
	availH := viewH - m.TrackY.Padding - m.TrackY.ThumbMargin
	if m.TrackX.Present {
		availW = math.Min(m.TrackX.Width-cornerW, availW)
	}
	if m.TrackY.Present {
		availH = math.Min(m.TrackY.Height-cornerH, availH)
	}
	g.ThumbSize = Size{
		Width:  math.Max(minThumb, availW*ratioX),
		Height: math.Max(minThumb, availH*ratioY),
	}

	if m.TrackY.Present && m.TrackY.ThumbPresent {
		travel := m.TrackY.Height - g.ThumbSize.Height - m.TrackY.Padding - m.TrackY.ThumbMargin
		r := ratio(m.ScrollTop, m.ScrollHeight-m.ClientHeight)
		g.ThumbOffset.Y = math.Min(travel, math.Max(0, r*travel))
	}
	if m.TrackX.Present && m.TrackX.ThumbPresent {
		travel := m.TrackX.Width - g.ThumbSize.Width - m.TrackX.Padding - m.TrackX.ThumbMargin
		r := ratio(m.ScrollLeft, m.ScrollWidth-m.ClientWidth)
		if m.Direction == RTL {
			g.ThumbOffset.X = clamp(r*travel, -travel, 0)
		} else {
			g.ThumbOffset.X = clamp(r*travel, 0, travel)
		}
	}

	t := m.Threshold.Normalize()
	g.Edges = OverflowEdges{
		XStart: !hiddenX && g.Distances.XStart > t.XStart,
		XEnd:   !hiddenX && g.Distances.XEnd > t.XEnd,
		YStart: !hiddenY && g.Distances.YStart > t.YStart,
		YEnd:   !hiddenY && g.Distances.YEnd > t.YEnd,
	}
	return g, true
}

// Recompute measures the registered elements, derives the geometry and
// commits it. Thumb transforms and distance properties are written on
// every pass; state cells only change when their value does. Without a
// registered viewport, or before content is laid out, it does nothing.
func (r *Root) Recompute() {
	if r.closed {
		return
	}
	vp := r.handles.viewport
	if isNil(vp) {
		return
	}
	g, ok := Compute(r.metrics(vp))
	if !ok {
		r.log.Debug("recompute skipped: content not laid out")
		return
	}

	r.thumbSize.Set(g.ThumbSize)

	if track, th := r.handles.scrollbarY, r.handles.thumbY; !isNil(track) && !isNil(th) {
		th.SetTransform(0, g.ThumbOffset.Y)
	}
	if track, th := r.handles.scrollbarX, r.handles.thumbX; !isNil(track) && !isNil(th) {
		th.SetTransform(g.ThumbOffset.X, 0)
	}

	vp.SetProperty(PropOverflowXStart, px(g.Distances.XStart))
	vp.SetProperty(PropOverflowXEnd, px(g.Distances.XEnd))
	vp.SetProperty(PropOverflowYStart, px(g.Distances.YStart))
	vp.SetProperty(PropOverflowYEnd, px(g.Distances.YEnd))

	if !isNil(r.handles.corner) {
		r.cornerSize.Set(g.CornerSize)
	}
	r.hidden.Set(g.Hidden)
	r.edges.Set(g.Edges)
}

func (r *Root) metrics(vp ViewportElement) Metrics {
	return Metrics{
		ScrollWidth:  vp.ScrollWidth(),
		ScrollHeight: vp.ScrollHeight(),
		ClientWidth:  vp.ClientWidth(),
		ClientHeight: vp.ClientHeight(),
		ScrollTop:    vp.ScrollTop(),
		ScrollLeft:   vp.ScrollLeft(),
		TrackX:       r.trackMetrics(Horizontal),
		TrackY:       r.trackMetrics(Vertical),
		CornerSize:   r.cornerSize.Get(),
		MinThumbSize: r.minThumbSize,
		Direction:    r.direction,
		Threshold:    r.threshold,
	}
}

func (r *Root) trackMetrics(o Orientation) TrackMetrics {
	var tm TrackMetrics
	if track := r.scrollbar(o); !isNil(track) {
		tm.Present = true
		tm.Width = track.OffsetWidth()
		tm.Height = track.OffsetHeight()
		tm.Padding = track.Padding().Axis(o)
	}
	if th := r.thumb(o); !isNil(th) {
		tm.ThumbPresent = true
		tm.ThumbMargin = th.Margin().Axis(o)
	}
	return tm
}
