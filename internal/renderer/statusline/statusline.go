// Package statusline draws the pager's bottom status row.
package statusline

import (
	"fmt"
	"strings"

	"github.com/dshills/scrollarea/internal/renderer/backend"
	"github.com/dshills/scrollarea/internal/renderer/core"
)

// MessageType selects the style of a transient message.
type MessageType int

const (
	MessageNone MessageType = iota
	MessageInfo
	MessageError
)

// StatusLine shows the file name, the visible line range, the scroll
// percentage and the scroll area's activity flags.
type StatusLine struct {
	filename  string
	firstLine int
	lastLine  int
	total     int
	percent   int
	flags     []string

	message     string
	messageType MessageType

	bar      core.Style
	errStyle core.Style
}

// New creates a status line.
func New() *StatusLine {
	return &StatusLine{
		bar:      core.DefaultStyle().With(core.AttrReverse),
		errStyle: core.DefaultStyle().WithForeground(core.ColorFromRGB(0xff, 0x55, 0x55)).With(core.AttrBold),
	}
}

func (s *StatusLine) SetFilename(name string) { s.filename = name }

// SetRange records the visible lines, 1-based and inclusive, out of total.
func (s *StatusLine) SetRange(first, last, total int) {
	s.firstLine, s.lastLine, s.total = first, last, total
}

// SetPercent records how far the view has scrolled, 0 to 100.
func (s *StatusLine) SetPercent(p int) { s.percent = min(100, max(0, p)) }

// SetFlags records short activity markers such as "scrolling".
func (s *StatusLine) SetFlags(flags ...string) { s.flags = flags }

// SetMessage replaces the status bar with msg until ClearMessage.
func (s *StatusLine) SetMessage(msg string, t MessageType) {
	s.message, s.messageType = msg, t
}

func (s *StatusLine) ClearMessage() { s.message, s.messageType = "", MessageNone }

// Text returns the left and right halves of the status bar.
func (s *StatusLine) Text() (left, right string) {
	if s.message != "" {
		return s.message, ""
	}
	name := s.filename
	if name == "" {
		name = "[stdin]"
	}
	left = " " + name
	if len(s.flags) > 0 {
		left += " [" + strings.Join(s.flags, ",") + "]"
	}
	right = fmt.Sprintf("%d-%d/%d %3d%% ", s.firstLine, s.lastLine, s.total, s.percent)
	return left, right
}

// Render draws the status line across row, width cells wide.
func (s *StatusLine) Render(b backend.Backend, row, width int) {
	style := s.bar
	if s.message != "" && s.messageType == MessageError {
		style = s.errStyle
	}
	b.Fill(core.Rect{Y: row, Width: width, Height: 1}, core.NewCell(' ', style))

	left, right := s.Text()
	col := 0
	limit := width - core.StringWidth(right) - 1
	if right == "" {
		limit = width
	}
	for _, c := range core.CellsFromString(left, style, 0) {
		if col+c.Width > limit {
			break
		}
		if !c.IsContinuation() {
			b.SetCell(col, row, c)
		}
		col++
	}
	if right == "" || limit < col {
		return
	}
	x := width - core.StringWidth(right)
	for _, c := range core.CellsFromString(right, style, 0) {
		if !c.IsContinuation() {
			b.SetCell(x, row, c)
		}
		x++
	}
}
