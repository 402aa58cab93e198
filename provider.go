package painter

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// halProvider is implemented by hosts that expose their hal objects
// behind the opaque gpucontext handles.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// NewFromProvider creates a Painter on a host's device. The provider's
// Device and Queue may be hal objects themselves, or the provider may
// expose them through HalDevice and HalQueue. The screen format follows
// the provider's surface, falling back to BGRA8 when headless; an explicit
// WithScreenFormat option wins.
func NewFromProvider(provider gpucontext.DeviceProvider, opts ...Option) (*Painter, error) {
	if provider == nil {
		return nil, ErrNilDevice
	}
	device, queue, err := providerHal(provider)
	if err != nil {
		return nil, err
	}

	format := provider.SurfaceFormat()
	if format == gputypes.TextureFormatUndefined {
		format = gputypes.TextureFormatBGRA8Unorm
	}
	info := provider.AdapterInfo()
	Logger().Info("painter: adopting host device",
		"adapter", info.Name,
		"type", info.Type.String(),
		"surface_format", format)

	opts = append([]Option{WithScreenFormat(format)}, opts...)
	return New(device, queue, opts...)
}

func providerHal(provider gpucontext.DeviceProvider) (hal.Device, hal.Queue, error) {
	device, dok := provider.Device().(hal.Device)
	queue, qok := provider.Queue().(hal.Queue)
	if dok && qok && device != nil && queue != nil {
		return device, queue, nil
	}

	hp, ok := provider.(halProvider)
	if !ok {
		return nil, nil, ErrNoProviderDevice
	}
	device, ok = hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, nil, fmt.Errorf("%w: HalDevice is %T", ErrNoProviderDevice, hp.HalDevice())
	}
	queue, ok = hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, nil, fmt.Errorf("%w: HalQueue is %T", ErrNoProviderDevice, hp.HalQueue())
	}
	return device, queue, nil
}
