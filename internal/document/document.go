// Package document loads text content for the pager and lays it out as
// terminal cells, optionally syntax highlighted.
package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/dshills/scrollarea/internal/renderer/core"
)

// DefaultTabWidth is the tab stop interval.
const DefaultTabWidth = 4

// Document is an immutable, laid out text. It implements
// renderer.ContentSource.
type Document struct {
	path  string
	lines [][]core.Cell
	width int
	lexer string
}

// Option configures a Document.
type Option func(*options)

type options struct {
	tabWidth  int
	highlight bool
	lexer     string
	style     string
}

// WithTabWidth sets the tab stop interval. Values below 1 keep the default.
func WithTabWidth(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.tabWidth = n
		}
	}
}

// WithHighlight enables or disables syntax highlighting.
func WithHighlight(on bool) Option {
	return func(o *options) { o.highlight = on }
}

// WithLexer forces a lexer by name instead of detecting one.
func WithLexer(name string) Option {
	return func(o *options) { o.lexer = name }
}

// WithStyle selects a chroma style by name.
func WithStyle(name string) Option {
	return func(o *options) { o.style = name }
}

// Load reads path and lays it out.
func Load(path string, opts ...Option) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return New(abs, string(data), opts...), nil
}

// New lays out text. name is used for lexer detection and as Path.
func New(name, text string, opts ...Option) *Document {
	o := options{tabWidth: DefaultTabWidth, highlight: true}
	for _, opt := range opts {
		opt(&o)
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	d := &Document{path: name}
	if o.highlight {
		d.lines, d.lexer = highlight(name, text, o)
	} else {
		d.lines = plain(text, o.tabWidth)
	}
	for _, l := range d.lines {
		d.width = max(d.width, len(l))
	}
	return d
}

// Path returns the document's path or name.
func (d *Document) Path() string { return d.path }

// Lexer returns the name of the lexer used, or "" when not highlighted.
func (d *Document) Lexer() string { return d.lexer }

// LineCount returns the number of lines.
func (d *Document) LineCount() int { return len(d.lines) }

// Line returns the cells of line i, or nil when out of range.
func (d *Document) Line(i int) []core.Cell {
	if i < 0 || i >= len(d.lines) {
		return nil
	}
	return d.lines[i]
}

// Width returns the widest line in cells.
func (d *Document) Width() int { return d.width }

// splitLines splits text into lines without a trailing empty line for a
// final newline.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func plain(text string, tabWidth int) [][]core.Cell {
	src := splitLines(text)
	lines := make([][]core.Cell, len(src))
	for i, s := range src {
		lines[i] = appendText(nil, s, core.DefaultStyle(), tabWidth)
	}
	return lines
}

// appendText lays s out after line. Tabs expand relative to the start of
// line, control runes show as '?' and zero-width runes are dropped.
func appendText(line []core.Cell, s string, style core.Style, tabWidth int) []core.Cell {
	for _, r := range s {
		switch {
		case r == '\t':
			n := tabWidth - len(line)%tabWidth
			for range n {
				line = append(line, core.Cell{Rune: ' ', Width: 1, Style: style})
			}
			continue
		case r < 0x20 || r == 0x7f:
			r = '?'
		}
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		line = append(line, core.Cell{Rune: r, Width: w, Style: style})
		for i := 1; i < w; i++ {
			line = append(line, core.Cell{Style: style})
		}
	}
	return line
}
