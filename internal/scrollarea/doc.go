// Package scrollarea implements a scrollable region with synthetic,
// fully styleable scrollbars layered over a natively scrolling viewport.
//
// The package is split the way the parts compose:
//
//	Root       shared state cells, element-handle table, hover tracking,
//	           scroll settle timers and the thumb drag gesture
//	Viewport   the scrolling surface; owns the geometry Engine and the
//	           observers that trigger recomputation
//	Content    watches the scrolled content for size changes
//	Scrollbar  one per axis; track click jump-scroll and wheel redirection
//	Thumb      drag handle inside a Scrollbar
//	Corner     fills the square where two visible tracks meet
//
// Every part takes the Root (and, where required, its parent part) by
// reference at construction and registers its element handle on Mount.
// Derived state lives in Cell values that only notify subscribers when a
// write actually changes them.
//
// All methods must be called from the goroutine that runs the Env's
// Scheduler; the package performs no locking of its own.
package scrollarea
