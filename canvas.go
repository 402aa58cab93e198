package painter

import (
	"fmt"

	"github.com/gogpu/wgpu/hal"
)

// CanvasID identifies a canvas owned by a Painter. Screen is the host
// surface, a valid target distinct from every canvas.
type CanvasID int

// Screen targets the surface set with Painter.SetScreen.
const Screen CanvasID = -1

// String returns "screen" or "canvas#N".
func (id CanvasID) String() string {
	if id == Screen {
		return "screen"
	}
	return fmt.Sprintf("canvas#%d", int(id))
}

// ClearPolicy decides what happens to a canvas between frames.
type ClearPolicy uint8

const (
	// ClearEveryFrame clears the canvas to its color on the first draw of
	// a frame, and at frame commit when nothing was drawn to it.
	ClearEveryFrame ClearPolicy = iota
	// RetainContents never clears automatically, so the previous frame
	// stays visible (feedback and ping-pong effects).
	RetainContents
)

// CanvasData is the declared description of a render target.
type CanvasData struct {
	Color Color
	Size  Size
	Clear ClearPolicy
}

// Canvas is an off-screen render target. Its behavior is driven by the
// Painter; the canvas only holds data.
type Canvas struct {
	texture *Texture
	data    CanvasData

	damaged bool
	// cleared is set once the canvas received a clear or a draw in the
	// current frame.
	cleared bool
}

// Size returns the canvas size.
func (c *Canvas) Size() Size { return c.data.Size }

// Data returns the canvas description.
func (c *Canvas) Data() CanvasData { return c.data }

// Texture returns the color attachment, usable as a sprite or merge
// source.
func (c *Canvas) Texture() *Texture { return c.texture }

// Damaged reports whether a quad targeted the canvas this frame.
func (c *Canvas) Damaged() bool { return c.damaged }

// NewCanvas creates a canvas cleared to color every frame.
func (p *Painter) NewCanvas(size Size, color Color, opts TextureOptions) (CanvasID, error) {
	return p.newCanvas(CanvasData{Color: color, Size: size, Clear: ClearEveryFrame}, opts)
}

// NewCanvasNoClear creates a canvas that keeps its contents across frames.
// color is used only by explicit Clear calls.
func (p *Painter) NewCanvasNoClear(size Size, color Color, opts TextureOptions) (CanvasID, error) {
	return p.newCanvas(CanvasData{Color: color, Size: size, Clear: RetainContents}, opts)
}

func (p *Painter) newCanvas(data CanvasData, opts TextureOptions) (CanvasID, error) {
	if data.Size.Empty() {
		return Screen, fmt.Errorf("%w: canvas %dx%d", ErrTextureSize, data.Size.W, data.Size.H)
	}
	id := CanvasID(len(p.canvases))
	opts.Alpha = true
	if opts.Label == "" {
		opts.Label = fmt.Sprintf("painter_canvas_%d", int(id))
	}
	tex, err := p.NewTexture(data.Size.W, data.Size.H, nil, opts)
	if err != nil {
		return Screen, err
	}
	p.canvases = append(p.canvases, &Canvas{texture: tex, data: data})
	Logger().Debug("painter: canvas created",
		"id", int(id), "width", data.Size.W, "height", data.Size.H, "policy", data.Clear)
	return id, nil
}

// Canvas returns the canvas for id. Unknown ids, Screen included, panic.
func (p *Painter) Canvas(id CanvasID) *Canvas {
	if id < 0 || int(id) >= len(p.canvases) {
		panic(fmt.Sprintf("painter: invalid canvas id %d", int(id)))
	}
	return p.canvases[id]
}

// CanvasCount returns the number of canvases created so far.
func (p *Painter) CanvasCount() int { return len(p.canvases) }

// CanvasData returns the description of a target. Screen reports black,
// the size given to SetScreen and ClearEveryFrame.
func (p *Painter) CanvasData(id CanvasID) CanvasData {
	if id == Screen {
		return CanvasData{Color: Black, Size: p.screen.size, Clear: ClearEveryFrame}
	}
	return p.Canvas(id).data
}

// SetScreen supplies the host's surface view for draws targeting Screen.
// Call it each frame with the acquired surface texture view.
func (p *Painter) SetScreen(view hal.TextureView, width, height uint32) {
	p.screen.view = view
	p.screen.size = Size{W: int(width), H: int(height)}
}

// targetView returns the attachment and format a target renders to.
func (p *Painter) targetView(id CanvasID) hal.TextureView {
	if id == Screen {
		if p.screen.view == nil {
			panic("painter: drawing to Screen before SetScreen")
		}
		return p.screen.view
	}
	return p.Canvas(id).texture.view
}
