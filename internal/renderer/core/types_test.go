package core

import "testing"

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#FF8040", ColorFromRGB(255, 128, 64), false},
		{"ff8040", ColorFromRGB(255, 128, 64), false},
		{"#fff", ColorFromRGB(255, 255, 255), false},
		{"", ColorDefault, false},
		{"Default", ColorDefault, false},
		{"#GGG", Color{}, true},
		{"#12345", Color{}, true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseColor(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseColor(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestColorHexAndBlend(t *testing.T) {
	c := ColorFromRGB(0, 0, 0)
	if got := c.Blend(ColorFromRGB(200, 100, 50), 0.5).Hex(); got != "#643219" {
		t.Errorf("Blend = %s, want #643219", got)
	}
	if got := ColorDefault.Blend(c, 0.3); got != c {
		t.Errorf("blend from default = %+v", got)
	}
	if ColorDefault.Hex() != "default" {
		t.Error("default color hex")
	}
}

func TestStyleMerge(t *testing.T) {
	base := DefaultStyle().WithForeground(ColorFromRGB(1, 2, 3)).With(AttrBold)
	top := DefaultStyle().WithBackground(ColorFromRGB(9, 9, 9)).With(AttrDim)
	got := base.Merge(top)
	if got.Foreground != base.Foreground || got.Background != top.Background {
		t.Errorf("Merge colors = %+v", got)
	}
	if !got.Attributes.Has(AttrBold | AttrDim) {
		t.Errorf("Merge attributes = %b", got.Attributes)
	}
}

func TestCellsFromString(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		text  string
	}{
		{"ascii", "abc", 3, "abc"},
		{"wide", "a世b", 4, "a世b"},
		{"tab", "a\tb", 5, "a   b"},
		{"control dropped", "a\x01b", 2, "ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cells := CellsFromString(tt.in, DefaultStyle(), 4)
			if len(cells) != tt.width {
				t.Errorf("len = %d, want %d", len(cells), tt.width)
			}
			if got := StringFromCells(cells); got != tt.text {
				t.Errorf("text = %q, want %q", got, tt.text)
			}
		})
	}
}

func TestRect(t *testing.T) {
	r := Rect{X: 2, Y: 2, Width: 4, Height: 3}
	if !r.Contains(2, 2) || r.Contains(6, 2) || r.Contains(2, 5) {
		t.Error("Contains edges wrong")
	}
	got := r.Intersect(Rect{X: 4, Y: 0, Width: 10, Height: 3})
	if got != (Rect{X: 4, Y: 2, Width: 2, Height: 1}) {
		t.Errorf("Intersect = %+v", got)
	}
	if !r.Intersect(Rect{X: 20, Width: 1, Height: 1}).Empty() {
		t.Error("disjoint intersect not empty")
	}
}
