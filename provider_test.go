package painter

import (
	"errors"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

type fakeProvider struct {
	device gpucontext.Device
	queue  gpucontext.Queue
	format gputypes.TextureFormat
}

func (f *fakeProvider) Device() gpucontext.Device {
	return f.device
}

func (f *fakeProvider) Queue() gpucontext.Queue {
	return f.queue
}

func (f *fakeProvider) SurfaceFormat() gputypes.TextureFormat {
	return f.format
}

func (f *fakeProvider) Adapter() gpucontext.Adapter {
	return nil
}

func (f *fakeProvider) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: "noop", Type: gpucontext.AdapterTypeSoftware}
}

// wrappedProvider hides the hal objects behind opaque handles.
type wrappedProvider struct {
	fakeProvider
	halDevice, halQueue any
}

func (w *wrappedProvider) HalDevice() any {
	return w.halDevice
}

func (w *wrappedProvider) HalQueue() any {
	return w.halQueue
}

func TestNewFromProviderHal(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	p, err := NewFromProvider(&fakeProvider{device: device, queue: queue, format: gputypes.TextureFormatRGBA8Unorm})
	if err != nil {
		t.Fatalf("NewFromProvider: %v", err)
	}
	defer p.Destroy()
	if p.Config().ScreenFormat != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("ScreenFormat = %v, want the surface format", p.Config().ScreenFormat)
	}
}

func TestNewFromProviderHeadless(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	p, err := NewFromProvider(&fakeProvider{device: device, queue: queue})
	if err != nil {
		t.Fatalf("NewFromProvider: %v", err)
	}
	defer p.Destroy()
	if p.Config().ScreenFormat != gputypes.TextureFormatBGRA8Unorm {
		t.Errorf("ScreenFormat = %v, want BGRA8 fallback", p.Config().ScreenFormat)
	}
}

func TestNewFromProviderExplicitFormatWins(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	p, err := NewFromProvider(&fakeProvider{device: device, queue: queue, format: gputypes.TextureFormatBGRA8Unorm},
		WithScreenFormat(gputypes.TextureFormatRGBA8Unorm), WithBatchQuads(16))
	if err != nil {
		t.Fatalf("NewFromProvider: %v", err)
	}
	defer p.Destroy()
	if p.Config().ScreenFormat != gputypes.TextureFormatRGBA8Unorm || p.Config().BatchQuads != 16 {
		t.Errorf("Config = %+v, want options applied after the provider", p.Config())
	}
}

func TestNewFromProviderHalAccessors(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	w := &wrappedProvider{halDevice: device, halQueue: queue}
	w.device, w.queue = struct{}{}, struct{}{}
	p, err := NewFromProvider(w)
	if err != nil {
		t.Fatalf("NewFromProvider: %v", err)
	}
	p.Destroy()
}

func TestNewFromProviderErrors(t *testing.T) {
	device, _, cleanup := createNoopDevice(t)
	defer cleanup()

	if _, err := NewFromProvider(nil); !errors.Is(err, ErrNilDevice) {
		t.Errorf("nil provider: err = %v, want ErrNilDevice", err)
	}
	if _, err := NewFromProvider(&fakeProvider{device: "device", queue: "queue"}); !errors.Is(err, ErrNoProviderDevice) {
		t.Errorf("opaque provider: err = %v, want ErrNoProviderDevice", err)
	}
	w := &wrappedProvider{halDevice: device, halQueue: 42}
	if _, err := NewFromProvider(w); !errors.Is(err, ErrNoProviderDevice) {
		t.Errorf("bad HalQueue: err = %v, want ErrNoProviderDevice", err)
	}
}
