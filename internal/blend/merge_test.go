package blend

import (
	"math"
	"testing"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestChannel(t *testing.T) {
	tests := []struct {
		name string
		b, f float32
		mode Mode
		want float32
	}{
		{"normal", 0.2, 0.7, Normal, 0.7},
		{"screen", 0.5, 0.5, Screen, 0.75},
		{"screen black", 0, 0.3, Screen, 0.3},
		{"add", 0.25, 0.5, Add, 0.75},
		{"add clamps", 0.75, 0.5, Add, 1},
		{"overlay dark", 0.25, 0.5, Overlay, 0.25},
		{"overlay light", 0.75, 0.5, Overlay, 0.75},
		{"overlay white", 1, 0.2, Overlay, 1},
		{"unknown is normal", 0.1, 0.9, Mode(42), 0.9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Channel(tt.b, tt.f, tt.mode); !approx(got, tt.want) {
				t.Errorf("Channel(%v, %v, %v) = %v, want %v", tt.b, tt.f, tt.mode, got, tt.want)
			}
		})
	}
}

func TestMergeAddDoublesIdenticalColors(t *testing.T) {
	c := Color{R: 0.2, G: 0.4, B: 0.6, A: 1}
	got := Merge(c, c, Add, 1)
	want := Color{R: 0.4, G: 0.8, B: 1, A: 1}
	if !approx(got.R, want.R) || !approx(got.G, want.G) || !approx(got.B, want.B) || !approx(got.A, want.A) {
		t.Errorf("Merge add = %+v, want %+v", got, want)
	}
}

func TestMergeFactor(t *testing.T) {
	bg := Color{R: 0, G: 0, B: 0, A: 1}
	fg := Color{R: 1, G: 1, B: 1, A: 1}

	half := Merge(bg, fg, Normal, 0.5)
	if !approx(half.R, 0.5) {
		t.Errorf("factor 0.5: R = %v, want 0.5", half.R)
	}
	none := Merge(bg, fg, Normal, 0)
	if none.R != 0 {
		t.Errorf("factor 0: R = %v, want 0", none.R)
	}
	over := Merge(bg, fg, Normal, 3)
	if over.R != 1 {
		t.Errorf("factor 3: R = %v, want clamped 1", over.R)
	}
}

func TestMergeTransparentForeground(t *testing.T) {
	bg := Color{R: 0.3, G: 0.3, B: 0.3, A: 1}
	fg := Color{R: 1, G: 0, B: 0, A: 0}
	got := Merge(bg, fg, Screen, 1)
	if got != bg {
		t.Errorf("transparent foreground changed background: %+v", got)
	}
}

func TestMergeRGBA8(t *testing.T) {
	bg := []byte{100, 50, 200, 255, 0, 0, 0, 255}
	fg := []byte{100, 50, 200, 255, 255, 255, 255, 255}
	dst := make([]byte, len(bg))
	MergeRGBA8(dst, bg, fg, Add, 1)

	want := []byte{200, 100, 255, 255, 255, 255, 255, 255}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("dst[%d] = %d, want %d", i, dst[i], want[i])
		}
	}
}

func TestMergeRGBA8Mismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on length mismatch")
		}
	}()
	MergeRGBA8(make([]byte, 4), make([]byte, 4), make([]byte, 8), Normal, 1)
}

func TestModeString(t *testing.T) {
	for m, want := range map[Mode]string{Normal: "normal", Screen: "screen", Add: "add", Overlay: "overlay", 9: "unknown"} {
		if got := m.String(); got != want {
			t.Errorf("Mode(%d).String() = %q, want %q", m, got, want)
		}
	}
}
