package painter

import (
	"errors"
	"testing"

	"github.com/gogpu/wgpu/hal"
)

// recordingQueue captures texture uploads.
type recordingQueue struct {
	hal.Queue
	uploads [][]byte
}

func (q *recordingQueue) WriteTexture(dst *hal.ImageCopyTexture, data []byte, layout *hal.ImageDataLayout, size *hal.Extent3D) error {
	q.uploads = append(q.uploads, append([]byte(nil), data...))
	return q.Queue.WriteTexture(dst, data, layout, size)
}

func TestNewCanvas(t *testing.T) {
	p, _ := newTestPainter(t)

	a := newTestCanvas(t, p, 32, 16, false)
	b := newTestCanvas(t, p, 8, 8, true)
	if a != 0 || b != 1 || p.CanvasCount() != 2 {
		t.Errorf("ids = %d, %d (count %d), want 0, 1 (2)", a, b, p.CanvasCount())
	}

	c := p.Canvas(a)
	if c.Size() != Sz(32, 16) || c.Data().Clear != ClearEveryFrame || c.Data().Color != Black {
		t.Errorf("canvas A data = %+v", c.Data())
	}
	if !c.Texture().Alpha() || c.Texture().Size() != Sz(32, 16) {
		t.Error("canvas texture must be RGBA of the canvas size")
	}
	if p.Canvas(b).Data().Clear != RetainContents {
		t.Error("NewCanvasNoClear must retain contents")
	}
}

func TestNewCanvasEmptySize(t *testing.T) {
	p, _ := newTestPainter(t)
	for _, size := range []Size{Sz(0, 4), Sz(4, 0), Sz(-1, 4)} {
		id, err := p.NewCanvas(size, Black, DefaultTextureOptions())
		if !errors.Is(err, ErrTextureSize) || id != Screen {
			t.Errorf("NewCanvas(%v) = %d, %v; want Screen, ErrTextureSize", size, id, err)
		}
	}
	if p.CanvasCount() != 0 {
		t.Errorf("failed canvases were registered")
	}
}

func TestCanvasIDString(t *testing.T) {
	if Screen.String() != "screen" || CanvasID(3).String() != "canvas#3" {
		t.Errorf("got %q, %q", Screen.String(), CanvasID(3).String())
	}
}

func TestTextureUpload(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()
	q := &recordingQueue{Queue: queue}
	p, err := New(device, q)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Destroy()
	q.uploads = nil

	rgb := []byte{1, 2, 3, 4, 5, 6}
	tex, err := p.NewTexture(2, 1, rgb, TextureOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(q.uploads) != 1 {
		t.Fatalf("uploads = %d, want 1", len(q.uploads))
	}
	want := []byte{1, 2, 3, 255, 4, 5, 6, 255}
	if string(q.uploads[0]) != string(want) {
		t.Errorf("RGB upload = %v, want %v", q.uploads[0], want)
	}

	p.UpdateTexture(tex, 2, 1, false, []byte{9, 9, 9, 8, 8, 8})
	p.UpdateTexture(tex, 2, 1, false, nil)
	if len(q.uploads) != 2 {
		t.Errorf("uploads = %d after update and nil update, want 2", len(q.uploads))
	}

	if _, err := p.NewTexture(4, 4, nil, DefaultTextureOptions()); err != nil {
		t.Fatal(err)
	}
	if len(q.uploads) != 2 {
		t.Error("nil data must not upload")
	}
}

func TestTexturePanics(t *testing.T) {
	p, _ := newTestPainter(t)
	tex, err := p.NewTexture(2, 2, nil, DefaultTextureOptions())
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		fn   func()
	}{
		{"short data", func() { _, _ = p.NewTexture(2, 2, make([]byte, 15), DefaultTextureOptions()) }},
		{"rgb length for rgba", func() { _, _ = p.NewTexture(2, 2, make([]byte, 12), DefaultTextureOptions()) }},
		{"update size", func() { p.UpdateTexture(tex, 3, 2, true, nil) }},
		{"update alpha", func() { p.UpdateTexture(tex, 2, 2, false, nil) }},
		{"update data", func() { p.UpdateTexture(tex, 2, 2, true, make([]byte, 4)) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("did not panic")
				}
			}()
			tt.fn()
		})
	}

	if _, err := p.NewTexture(0, 1, nil, DefaultTextureOptions()); !errors.Is(err, ErrTextureSize) {
		t.Errorf("zero width: err = %v, want ErrTextureSize", err)
	}
}

func TestBindingsValidation(t *testing.T) {
	p, _ := newTestPainter(t)
	if _, err := p.NewBindings(0, 6, quadLayout); err == nil {
		t.Error("zero vertex capacity accepted")
	}
	if _, err := p.NewBindings(4, 6, nil); err == nil {
		t.Error("empty layout accepted")
	}
	b, err := p.NewBindings(4, 6, quadLayout)
	if err != nil {
		t.Fatal(err)
	}
	if quadLayout.Stride() != floatsPerVertex*4 || b.Layout().Floats() != floatsPerVertex {
		t.Errorf("quad layout stride = %d, want %d", quadLayout.Stride(), floatsPerVertex*4)
	}

	defer func() {
		if recover() == nil {
			t.Error("oversized upload did not panic")
		}
	}()
	_ = b.upload(p.queue, make([]float32, 5*floatsPerVertex), nil)
}
