package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
	"github.com/gogpu/wgpu/hal/software"
)

// ErrNoAdapter is returned when a backend exposes no adapters.
var ErrNoAdapter = errors.New("gpu: backend exposes no adapters")

// Device is an opened hal device together with the instance that owns it.
type Device struct {
	Device hal.Device
	Queue  hal.Queue
	Info   gputypes.AdapterInfo

	instance hal.Instance
}

// Open creates an instance of backend and opens its first adapter with
// default limits.
func Open(backend hal.Backend) (*Device, error) {
	instance, err := backend.CreateInstance(nil)
	if err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, ErrNoAdapter
	}
	open, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("open adapter: %w", err)
	}
	return &Device{
		Device:   open.Device,
		Queue:    open.Queue,
		Info:     adapters[0].Info,
		instance: instance,
	}, nil
}

// OpenBackend opens a backend by name: "noop" or "software". Both register
// under the same hal backend id, so they are constructed explicitly.
func OpenBackend(name string) (*Device, error) {
	switch name {
	case "noop":
		return Open(noop.API{})
	case "software":
		return Open(software.API{})
	default:
		return nil, fmt.Errorf("gpu: unknown backend %q", name)
	}
}

// Close destroys the device and its instance.
func (d *Device) Close() {
	if d.Device != nil {
		d.Device.Destroy()
		d.Device = nil
	}
	if d.instance != nil {
		d.instance.Destroy()
		d.instance = nil
	}
}
