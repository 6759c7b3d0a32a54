package statusline

import (
	"testing"

	"github.com/dshills/scrollarea/internal/renderer/backend"
)

func TestRender(t *testing.T) {
	b := backend.NewMemory(40, 1)
	s := New()
	s.SetFilename("main.go")
	s.SetRange(1, 10, 200)
	s.SetPercent(150)
	s.SetFlags("scrolling")
	s.Render(b, 0, 40)

	want := " main.go [scrolling]      1-10/200 100%"
	if got := b.Row(0); got != want {
		t.Errorf("row = %q, want %q", got, want)
	}
}

func TestRenderTruncatesLeft(t *testing.T) {
	b := backend.NewMemory(20, 1)
	s := New()
	s.SetFilename("a-very-long-file-name.txt")
	s.SetRange(1, 2, 3)
	s.Render(b, 0, 20)

	if got := b.Row(0); got != " a-very- 1-2/3   0%" {
		t.Errorf("row = %q", got)
	}
}

func TestMessage(t *testing.T) {
	b := backend.NewMemory(20, 1)
	s := New()
	s.SetMessage("reload failed", MessageError)
	s.Render(b, 0, 20)
	if got := b.Row(0); got != "reload failed" {
		t.Errorf("row = %q", got)
	}

	s.ClearMessage()
	if left, _ := s.Text(); left != " [stdin]" {
		t.Errorf("left after clear = %q", left)
	}
}
