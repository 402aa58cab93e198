package painter

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/painter/internal/gpu"
)

// TextureOptions controls texture layout and sampling.
type TextureOptions struct {
	// Alpha selects RGBA (4 bytes per pixel) input instead of RGB (3).
	Alpha bool
	// MinNearest and MagNearest select nearest filtering for minification
	// and magnification; linear otherwise.
	MinNearest bool
	MagNearest bool
	// Label is an optional debug name.
	Label string
}

// DefaultTextureOptions returns RGBA input, linear minification and
// nearest magnification.
func DefaultTextureOptions() TextureOptions {
	return TextureOptions{Alpha: true, MagNearest: true}
}

func (o TextureOptions) channels() int {
	if o.Alpha {
		return 4
	}
	return 3
}

// Texture is a GPU image owned by the Painter. Textures are compared by
// identity; the size and channel layout never change after creation.
type Texture struct {
	tex     hal.Texture
	view    hal.TextureView
	sampler hal.Sampler

	width, height int
	opts          TextureOptions
}

// Width returns the texture width in pixels.
func (t *Texture) Width() int { return t.width }

// Height returns the texture height in pixels.
func (t *Texture) Height() int { return t.height }

// Size returns the texture size.
func (t *Texture) Size() Size { return Size{W: t.width, H: t.height} }

// Alpha reports whether the texture takes RGBA input.
func (t *Texture) Alpha() bool { return t.opts.Alpha }

// View returns the texture view, for hosts that sample canvases outside
// the painter.
func (t *Texture) View() hal.TextureView { return t.view }

// NewTexture creates a texture and uploads data when it is not nil. data
// holds width*height pixels of 4 (Alpha) or 3 bytes; any other length is a
// caller bug and panics.
func (p *Painter) NewTexture(width, height int, data []byte, opts TextureOptions) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrTextureSize, width, height)
	}
	if data != nil {
		checkPixels(width, height, opts.channels(), data)
	}

	label := opts.Label
	if label == "" {
		label = fmt.Sprintf("painter_texture_%d", len(p.textures))
	}
	w, h := uint32(width), uint32(height) //nolint:gosec // checked positive above

	tex, err := p.device.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        canvasFormat,
		Usage: gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst |
			gputypes.TextureUsageCopySrc | gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		return nil, fmt.Errorf("create texture %s: %w", label, err)
	}
	t := &Texture{tex: tex, width: width, height: height, opts: opts}

	t.view, err = p.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         label + "_view",
		Format:        canvasFormat,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		p.device.DestroyTexture(tex)
		return nil, fmt.Errorf("create texture view %s: %w", label, err)
	}

	t.sampler, err = p.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        label + "_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    filterMode(opts.MagNearest),
		MinFilter:    filterMode(opts.MinNearest),
		MipmapFilter: gputypes.FilterModeNearest,
		LodMaxClamp:  32,
	})
	if err != nil {
		p.device.DestroyTextureView(t.view)
		p.device.DestroyTexture(tex)
		return nil, fmt.Errorf("create sampler %s: %w", label, err)
	}

	if data != nil {
		if err := p.upload(t, data); err != nil {
			t.destroy(p.device)
			return nil, err
		}
	}

	p.textures = append(p.textures, t)
	Logger().Debug("painter: texture created",
		"label", label, "width", width, "height", height, "alpha", opts.Alpha)
	return t, nil
}

// UpdateTexture overwrites the pixels of tex in place. width, height and
// alpha must describe the texture as created; nil data uploads nothing.
// Mismatches panic.
func (p *Painter) UpdateTexture(tex *Texture, width, height int, alpha bool, data []byte) {
	if tex.width != width || tex.height != height || tex.opts.Alpha != alpha {
		panic(fmt.Sprintf("painter: UpdateTexture %dx%d alpha=%v on a %dx%d alpha=%v texture",
			width, height, alpha, tex.width, tex.height, tex.opts.Alpha))
	}
	if data == nil {
		return
	}
	checkPixels(width, height, tex.opts.channels(), data)
	if err := p.upload(tex, data); err != nil {
		panic(err)
	}
}

func (p *Painter) upload(t *Texture, data []byte) error {
	if !t.opts.Alpha {
		data = gpu.RGBToRGBA(data, t.width, t.height)
	}
	w, h := uint32(t.width), uint32(t.height) //nolint:gosec // texture sizes are positive
	err := p.queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: t.tex, MipLevel: 0},
		data,
		&hal.ImageDataLayout{Offset: 0, BytesPerRow: w * 4, RowsPerImage: h},
		&hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	)
	if err != nil {
		return fmt.Errorf("upload texture: %w", err)
	}
	return nil
}

func (t *Texture) destroy(device hal.Device) {
	if t.sampler != nil {
		device.DestroySampler(t.sampler)
		t.sampler = nil
	}
	if t.view != nil {
		device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.tex != nil {
		device.DestroyTexture(t.tex)
		t.tex = nil
	}
}

func checkPixels(width, height, channels int, data []byte) {
	if want := width * height * channels; len(data) != want {
		panic(fmt.Sprintf("painter: texture data is %d bytes, want %d (%dx%dx%d)",
			len(data), want, width, height, channels))
	}
}

func filterMode(nearest bool) gputypes.FilterMode {
	if nearest {
		return gputypes.FilterModeNearest
	}
	return gputypes.FilterModeLinear
}
