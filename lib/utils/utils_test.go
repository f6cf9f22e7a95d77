package utils

import (
	"image/color"
	"testing"
	"time"
)

func TestColourParse(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
		ok   bool
	}{
		{"#ff8000", color.RGBA{R: 0xff, G: 0x80, A: 0xff}, true},
		{"#11223344", color.RGBA{R: 0x11, G: 0x22, B: 0x33, A: 0x44}, true},
		{"ff8000", color.RGBA{}, false},
		{"#ff80", color.RGBA{}, false},
		{"#gg8000", color.RGBA{}, false},
	}
	for _, tt := range tests {
		got, err := ColourParse(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("ColourParse(%q) error = %v", tt.in, err)
			continue
		}
		if tt.ok && got != tt.want {
			t.Errorf("ColourParse(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if tt.ok && ColourString(got) != tt.in {
			t.Errorf("ColourString(%v) = %s", got, ColourString(got))
		}
	}
}

func TestDeltaTimer(t *testing.T) {
	var d DeltaTimer
	start := time.Unix(100, 0)
	if dt := d.NextAt(start); dt != 0 {
		t.Errorf("first delta = %v", dt)
	}
	if dt := d.NextAt(start.Add(16 * time.Millisecond)); dt != 16*time.Millisecond {
		t.Errorf("delta = %v", dt)
	}
	d.Reset()
	if dt := d.NextAt(start.Add(time.Hour)); dt != 0 {
		t.Errorf("delta after reset = %v", dt)
	}
}
