// Package renderer lays out and paints scroll areas built from dom
// elements onto a terminal backend.
//
// A frame runs in three steps:
//
//	renderer.Layout(parts, area, opts) // place elements from the last state
//	doc.Commit()                       // deliver resize and visibility observers
//	painter.Paint(parts, content)      // draw content, tracks, thumbs, corner
//
// Thumb extents and the corner footprint come from the custom properties
// the scroll area writes, so a frame painted right after a recompute shows
// the new geometry once Layout runs again.
package renderer
