package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/scrollarea/internal/renderer/core"
)

func TestNew_Plain(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantLines []string
		wantWidth int
	}{
		{"empty", "", nil, 0},
		{"trailing newline", "a\nbc\n", []string{"a", "bc"}, 2},
		{"no trailing newline", "a\nbc", []string{"a", "bc"}, 2},
		{"blank lines", "\n\nx", []string{"", "", "x"}, 1},
		{"crlf", "ab\r\ncd\r\n", []string{"ab", "cd"}, 2},
		{"tab", "\tx\nab\ty", []string{"    x", "ab  y"}, 5},
		{"wide", "世界\n", []string{"世界"}, 4},
		{"control", "a\x01b", []string{"a?b"}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New("x", tt.text, WithHighlight(false))
			if d.LineCount() != len(tt.wantLines) {
				t.Fatalf("LineCount = %d, want %d", d.LineCount(), len(tt.wantLines))
			}
			for i, want := range tt.wantLines {
				if got := core.StringFromCells(d.Line(i)); got != want {
					t.Errorf("line %d = %q, want %q", i, got, want)
				}
			}
			if d.Width() != tt.wantWidth {
				t.Errorf("Width = %d, want %d", d.Width(), tt.wantWidth)
			}
		})
	}
}

func TestLine_OutOfRange(t *testing.T) {
	d := New("x", "a\n", WithHighlight(false))
	if d.Line(-1) != nil || d.Line(1) != nil {
		t.Error("out of range line is not nil")
	}
}

func TestWideRuneHasContinuation(t *testing.T) {
	d := New("x", "世", WithHighlight(false))
	line := d.Line(0)
	if len(line) != 2 || line[0].Width != 2 || !line[1].IsContinuation() {
		t.Errorf("cells = %+v", line)
	}
}

func TestTabWidth(t *testing.T) {
	d := New("x", "\tx", WithHighlight(false), WithTabWidth(8))
	if d.Width() != 9 {
		t.Errorf("Width = %d, want 9", d.Width())
	}
}

func TestHighlight_Go(t *testing.T) {
	src := "package main\n\nfunc main() {\n\tprintln(\"hi\")\n}\n"
	d := New("main.go", src)
	if d.Lexer() != "Go" {
		t.Errorf("Lexer = %q, want Go", d.Lexer())
	}
	if d.LineCount() != 5 {
		t.Fatalf("LineCount = %d, want 5", d.LineCount())
	}
	if got := core.StringFromCells(d.Line(3)); got != "    println(\"hi\")" {
		t.Errorf("line 3 = %q", got)
	}

	colored := false
	for _, c := range d.Line(0) {
		if !c.Style.Foreground.Default {
			colored = true
		}
	}
	if !colored {
		t.Error("keyword line has no colored cells")
	}
}

func TestHighlight_NoTrailingNewline(t *testing.T) {
	d := New("main.go", "package main")
	if d.LineCount() != 1 {
		t.Errorf("LineCount = %d, want 1", d.LineCount())
	}
	if got := core.StringFromCells(d.Line(0)); got != "package main" {
		t.Errorf("line 0 = %q", got)
	}
}

func TestHighlight_ForcedLexer(t *testing.T) {
	d := New("notes", "x = 1\n", WithLexer("python"))
	if d.Lexer() != "Python" {
		t.Errorf("Lexer = %q, want Python", d.Lexer())
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	if err := os.WriteFile(path, []byte("one\ntwo\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	d, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if d.LineCount() != 2 || d.Path() != path {
		t.Errorf("LineCount = %d, Path = %q", d.LineCount(), d.Path())
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("Load of missing file succeeded")
	}
}
