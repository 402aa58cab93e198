package gpu

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestQuadIndices(t *testing.T) {
	var idx []uint16
	for q := 0; q < 3; q++ {
		idx = QuadIndices(idx, q)
	}
	if len(idx) != 18 {
		t.Fatalf("len = %d, want 18", len(idx))
	}
	pattern := []uint16{0, 1, 2, 2, 3, 0}
	for q := 0; q < 3; q++ {
		for k, p := range pattern {
			got := idx[q*6+k]
			if want := uint16(q*4) + p; got != want {
				t.Errorf("quad %d index %d = %d, want %d", q, k, got, want)
			}
		}
	}
}

func TestFloat32Bytes(t *testing.T) {
	src := []float32{1.5, -2, 0}
	buf := Float32Bytes(nil, src)
	if len(buf) != 12 {
		t.Fatalf("len = %d, want 12", len(buf))
	}
	for i, want := range src {
		got := math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
		if got != want {
			t.Errorf("float %d = %v, want %v", i, got, want)
		}
	}

	reused := Float32Bytes(buf, src[:1])
	if &reused[0] != &buf[0] {
		t.Error("expected buffer reuse when capacity suffices")
	}
}

func TestUint16BytesPadding(t *testing.T) {
	buf := Uint16Bytes(nil, []uint16{1, 2, 3})
	if len(buf) != 8 {
		t.Fatalf("len = %d, want 8 (padded)", len(buf))
	}
	if binary.LittleEndian.Uint16(buf[4:]) != 3 {
		t.Error("third index not written")
	}
	if buf[6] != 0 || buf[7] != 0 {
		t.Error("padding not zeroed")
	}
}

func TestAlign4(t *testing.T) {
	for in, want := range map[int]int{0: 0, 1: 4, 4: 4, 6: 8, 12: 12} {
		if got := Align4(in); got != want {
			t.Errorf("Align4(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestRGBToRGBA(t *testing.T) {
	got := RGBToRGBA([]byte{1, 2, 3, 4, 5, 6}, 2, 1)
	want := []byte{1, 2, 3, 255, 4, 5, 6, 255}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("RGBToRGBA = %v, want %v", got, want)
		}
	}
}

func TestSolid(t *testing.T) {
	px := Solid(2, 2, 9, 8, 7, 6)
	if len(px) != 16 {
		t.Fatalf("len = %d, want 16", len(px))
	}
	if px[12] != 9 || px[15] != 6 {
		t.Errorf("last pixel = %v", px[12:])
	}
}
