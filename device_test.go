package painter

import (
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// createNoopDevice opens the noop backend, whose buffers keep their
// contents so uploads can be inspected.
func createNoopDevice(t *testing.T) (hal.Device, hal.Queue, func()) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	cleanup := func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	return openDev.Device, openDev.Queue, cleanup
}

// passRecord is one render pass as the painter recorded it.
type passRecord struct {
	label   string
	view    hal.TextureView
	load    gputypes.LoadOp
	clear   gputypes.Color
	indices uint32
	draws   int
}

type recorder struct {
	passes []*passRecord
	views  int
}

// recordingDevice wraps a hal device to capture render passes. Texture
// views get distinct identities so passes can be matched to targets.
type recordingDevice struct {
	hal.Device
	rec *recorder
}

type testView struct {
	hal.TextureView
	id int
}

func (d recordingDevice) CreateTextureView(tex hal.Texture, desc *hal.TextureViewDescriptor) (hal.TextureView, error) {
	v, err := d.Device.CreateTextureView(tex, desc)
	if err != nil {
		return nil, err
	}
	d.rec.views++
	return &testView{TextureView: v, id: d.rec.views}, nil
}

func (d recordingDevice) CreateCommandEncoder(desc *hal.CommandEncoderDescriptor) (hal.CommandEncoder, error) {
	enc, err := d.Device.CreateCommandEncoder(desc)
	if err != nil {
		return nil, err
	}
	return &recordingEncoder{CommandEncoder: enc, rec: d.rec}, nil
}

type recordingEncoder struct {
	hal.CommandEncoder
	rec *recorder
}

func (e *recordingEncoder) BeginRenderPass(desc *hal.RenderPassDescriptor) hal.RenderPassEncoder {
	att := desc.ColorAttachments[0]
	r := &passRecord{label: desc.Label, view: att.View, load: att.LoadOp, clear: att.ClearValue}
	e.rec.passes = append(e.rec.passes, r)
	return &recordingPass{RenderPassEncoder: e.CommandEncoder.BeginRenderPass(desc), rec: r}
}

type recordingPass struct {
	hal.RenderPassEncoder
	rec *passRecord
}

func (p *recordingPass) DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32) {
	p.rec.indices += indexCount
	p.rec.draws++
	p.RenderPassEncoder.DrawIndexed(indexCount, instanceCount, firstIndex, baseVertex, firstInstance)
}

// newTestPainter creates a painter on a recording noop device.
func newTestPainter(t *testing.T, opts ...Option) (*Painter, *recorder) {
	t.Helper()
	device, queue, cleanup := createNoopDevice(t)
	rec := &recorder{}
	p, err := New(recordingDevice{Device: device, rec: rec}, queue, opts...)
	if err != nil {
		cleanup()
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() {
		p.Destroy()
		cleanup()
	})
	return p, rec
}

// newTestCanvas creates a canvas or fails the test.
func newTestCanvas(t *testing.T, p *Painter, w, h int, retain bool) CanvasID {
	t.Helper()
	var (
		id  CanvasID
		err error
	)
	if retain {
		id, err = p.NewCanvasNoClear(Sz(w, h), Black, DefaultTextureOptions())
	} else {
		id, err = p.NewCanvas(Sz(w, h), Black, DefaultTextureOptions())
	}
	if err != nil {
		t.Fatalf("NewCanvas failed: %v", err)
	}
	return id
}

// passesFor returns the recorded passes that targeted canvas id.
func passesFor(p *Painter, rec *recorder, id CanvasID) []*passRecord {
	view := p.Canvas(id).texture.view
	var out []*passRecord
	for _, r := range rec.passes {
		if r.view == view {
			out = append(out, r)
		}
	}
	return out
}
