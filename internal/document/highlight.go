package document

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/dshills/scrollarea/internal/renderer/core"
)

// DefaultStyle is the chroma style used when none is configured.
const DefaultStyle = "monokai"

// analyseLimit bounds the text handed to content-based lexer detection.
const analyseLimit = 4096

// highlight tokenises text as a whole so the lexer keeps multi-line
// context, then splits the tokens back into lines. Plain text (no lexer
// found) is laid out without styling.
func highlight(name, text string, o options) ([][]core.Cell, string) {
	lexer := lookupLexer(name, text, o.lexer)
	if lexer == nil {
		return plain(text, o.tabWidth), ""
	}
	lexer = chroma.Coalesce(lexer)

	tokens, err := chroma.Tokenise(lexer, nil, text)
	if err != nil {
		return plain(text, o.tabWidth), ""
	}

	style := styles.Get(o.style)
	if o.style == "" {
		style = styles.Get(DefaultStyle)
	}
	base := style.Get(chroma.Text)

	want := len(splitLines(text))
	lines := make([][]core.Cell, 0, want)
	var cur []core.Cell
	for _, tok := range tokens {
		if tok.Type == chroma.EOFType {
			break
		}
		cs := cellStyle(style.Get(tok.Type), base)
		parts := strings.Split(tok.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				lines = append(lines, cur)
				cur = nil
			}
			cur = appendText(cur, part, cs, o.tabWidth)
		}
	}
	if len(cur) > 0 {
		lines = append(lines, cur)
	}
	// Lexers may append a newline the source did not have.
	if len(lines) > want {
		lines = lines[:want]
	}
	for len(lines) < want {
		lines = append(lines, nil)
	}
	return lines, lexer.Config().Name
}

// lookupLexer picks a lexer by explicit name, then file name, then
// content. It returns nil for plain text.
func lookupLexer(name, text, forced string) chroma.Lexer {
	if forced != "" {
		return lexers.Get(forced)
	}
	if l := lexers.Match(name); l != nil {
		return l
	}
	if len(text) > analyseLimit {
		text = text[:analyseLimit]
	}
	return lexers.Analyse(text)
}

// cellStyle converts a chroma style entry. Colors equal to the base text
// color stay terminal defaults so the theme's text style shows through.
func cellStyle(e, base chroma.StyleEntry) core.Style {
	s := core.DefaultStyle()
	if e.Colour.IsSet() && e.Colour != base.Colour {
		s = s.WithForeground(core.ColorFromRGB(e.Colour.Red(), e.Colour.Green(), e.Colour.Blue()))
	}
	if e.Bold == chroma.Yes {
		s = s.With(core.AttrBold)
	}
	if e.Italic == chroma.Yes {
		s = s.With(core.AttrItalic)
	}
	if e.Underline == chroma.Yes {
		s = s.With(core.AttrUnderline)
	}
	return s
}
