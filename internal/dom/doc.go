// Package dom is a small retained element tree for terminal user
// interfaces. It provides what the scroll area expects from a browser:
// box metrics, native scroll offsets with clamping, attributes and custom
// properties, pointer capture, shadow roots, resize and visibility
// observers, running animations, event dispatch with target and current
// target, and hit testing.
//
// Layout is explicit. Callers place elements with SetBounds, SetPadding
// and SetMargin and then call Document.Commit, which delivers observer
// callbacks for whatever changed since the previous commit.
//
// A Document and its elements belong to one goroutine, normally the one
// running the event loop that backs the document's scheduler.
package dom
