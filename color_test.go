package painter

import (
	"image/color"
	"testing"
)

func absDiff(a, b float32) float32 {
	if a > b {
		return a - b
	}
	return b - a
}

func TestHex(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#fff", color.NRGBA{255, 255, 255, 255}},
		{"f00", color.NRGBA{255, 0, 0, 255}},
		{"#0f08", color.NRGBA{0, 255, 0, 136}},
		{"#3498db", color.NRGBA{0x34, 0x98, 0xdb, 255}},
		{"3498DB80", color.NRGBA{0x34, 0x98, 0xdb, 0x80}},
	}
	for _, tt := range tests {
		if got := Hex(tt.in).NRGBA(); got != tt.want {
			t.Errorf("Hex(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseHexInvalid(t *testing.T) {
	for _, in := range []string{"", "#", "12", "#12345", "#ggg", "xyzxyz"} {
		if _, err := ParseHex(in); err == nil {
			t.Errorf("ParseHex(%q) succeeded", in)
		}
		if Hex(in) != Black {
			t.Errorf("Hex(%q) = %v, want Black", in, Hex(in))
		}
	}
}

func TestFromColorRoundtrip(t *testing.T) {
	original := color.NRGBA{R: 200, G: 100, B: 50, A: 255}
	c := FromColor(original)
	if got := c.NRGBA(); got != original {
		t.Errorf("FromColor(%v).NRGBA() = %v", original, got)
	}
}

func TestColorHelpers(t *testing.T) {
	if Gray(0.5) != (Color{0.5, 0.5, 0.5, 1}) {
		t.Errorf("Gray(0.5) = %v", Gray(0.5))
	}
	if White.WithAlpha(0.25).A != 0.25 {
		t.Error("WithAlpha did not replace alpha")
	}
	mid := Black.Lerp(White, 0.5)
	if absDiff(mid.R, 0.5) > 1e-6 || mid.A != 1 {
		t.Errorf("Lerp = %v", mid)
	}
	if got := NewColor(0.1, 0.2, 0.3, 0.4).Float4(); got != [4]float32{0.1, 0.2, 0.3, 0.4} {
		t.Errorf("Float4() = %v", got)
	}
	if got := NewColor(-1, 2, 0.5, 1).NRGBA(); got != (color.NRGBA{0, 255, 128, 255}) {
		t.Errorf("NRGBA clamps: got %v", got)
	}
}
