package main

import (
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestPadCellToWidth(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{"pads short text", "ab", 5, "ab   "},
		{"exact fit", "abcde", 5, "abcde"},
		{"truncates with ellipsis", "abcdefgh", 5, "abcd…"},
		{"vietnamese", "Nguyễn Văn A", 14, "Nguyễn Văn A  "},
		{"wide runes", "日本語", 5, "日本…"},
		{"zero width", "abc", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := padCellToWidth(tt.text, tt.width)
			if got != tt.want {
				t.Errorf("padCellToWidth(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
			if tt.width > 0 && runewidth.StringWidth(got) != tt.width {
				t.Errorf("width of %q = %d, want %d", got, runewidth.StringWidth(got), tt.width)
			}
		})
	}
}
