package display

import (
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/painter"
)

func newTestPainter(t *testing.T) *painter.Painter {
	t.Helper()
	instance, err := noop.API{}.CreateInstance(nil)
	if err != nil {
		t.Fatal(err)
	}
	open, err := instance.EnumerateAdapters(nil)[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatal(err)
	}
	p, err := painter.New(open.Device, open.Queue)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		p.Destroy()
		open.Device.Destroy()
		instance.Destroy()
	})
	return p
}

func TestPhosphorFade(t *testing.T) {
	d, err := New(newTestPainter(t), 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	if On != [3]byte{178, 204, 178} || Floor != 25 {
		t.Fatalf("On = %v, Floor = %d", On, Floor)
	}

	d.Update([]bool{true, false})
	if got := d.RGB()[:3]; got[0] != 178 || got[1] != 204 || got[2] != 178 {
		t.Errorf("lit pixel = %v, want on color", got)
	}
	if got := d.RGB()[3:6]; got[0] != Floor || got[1] != Floor || got[2] != Floor {
		t.Errorf("black unlit pixel = %v, want the floor", got)
	}

	want := []byte{118, 78, 52, 34, 25, 25}
	for i, w := range want {
		d.Update([]bool{false, false})
		px := d.RGB()[:3]
		if px[0] != w || px[1] != w || px[2] != w {
			t.Fatalf("fade step %d = %v, want gray %d", i, px, w)
		}
	}

	d.Update([]bool{true, true})
	if d.RGB()[3] != On[0] {
		t.Error("relit pixel did not jump back to the on color")
	}
}

func TestUpdateSizeMismatchPanics(t *testing.T) {
	d, err := New(newTestPainter(t), 4, 2)
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		if recover() == nil {
			t.Error("Update with a short grid did not panic")
		}
	}()
	d.Update(make([]bool, 7))
}

func TestNewInvalidSize(t *testing.T) {
	if _, err := New(newTestPainter(t), 0, 32); err == nil {
		t.Error("zero-width display accepted")
	}
}

func TestSprite(t *testing.T) {
	d, err := New(newTestPainter(t), 64, 32)
	if err != nil {
		t.Fatal(err)
	}
	s := d.Sprite()
	if s.Texture != d.Texture() || s.Size != painter.Pt(64, 32) {
		t.Errorf("Sprite() = %+v", s)
	}
	if d.Texture().Alpha() {
		t.Error("display texture must be RGB")
	}
}

func TestSpeedBar(t *testing.T) {
	tests := []struct {
		fraction float32
		want     string
	}{
		{0, "\xc5\xc4\xd7\xc4\xc4"},
		{0.5, "\xc4\xc4\xc5\xc4\xc4"},
		{1, "\xc4\xc4\xd7\xc4\xc5"},
		{2, "\xc4\xc4\xd7\xc4\xc5"},
	}
	for _, tt := range tests {
		if got := string(SpeedBar(tt.fraction, 5, 2)); got != tt.want {
			t.Errorf("SpeedBar(%v) = %q, want %q", tt.fraction, got, tt.want)
		}
	}
}
