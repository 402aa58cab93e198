// Package display turns a virtual machine's monochrome pixel grid into a
// texture that imitates a slow phosphor screen: lit pixels glow green-gray
// and unlit pixels fade out over several frames instead of switching off.
package display

import (
	"fmt"
	"math"

	"github.com/gogpu/painter"
)

// Phosphor colors as 8-bit channels.
var (
	// On is the color of a lit pixel.
	On = [3]byte{to8(0.7), to8(0.8), to8(0.7)}
	// Floor is the darkest value an unlit pixel fades to.
	Floor = to8(0.1)
)

// Fade divides an unlit pixel's previous value each update.
const Fade = 1.5

func to8(v float64) byte { return byte(255 * v) }

// Display owns an RGB texture of the grid size.
type Display struct {
	p      *painter.Painter
	width  int
	height int
	buf    []byte
	tex    *painter.Texture
}

// New creates a display of width x height pixels, initially black.
func New(p *painter.Painter, width, height int) (*Display, error) {
	tex, err := p.NewTexture(width, height, nil, painter.TextureOptions{
		Alpha:      false,
		MinNearest: true,
		MagNearest: true,
		Label:      "display",
	})
	if err != nil {
		return nil, fmt.Errorf("display: %w", err)
	}
	d := &Display{p: p, width: width, height: height, buf: make([]byte, width*height*3), tex: tex}
	p.UpdateTexture(tex, width, height, false, d.buf)
	painter.Logger().Debug("display: created", "width", width, "height", height)
	return d, nil
}

// Size returns the grid size.
func (d *Display) Size() painter.Size { return painter.Sz(d.width, d.height) }

// Update applies one frame of pixels, row-major, and uploads the result.
// The grid length must be width*height.
func (d *Display) Update(pixels []bool) {
	if len(pixels) != d.width*d.height {
		panic(fmt.Sprintf("display: %d pixels for a %dx%d grid", len(pixels), d.width, d.height))
	}
	for i, lit := range pixels {
		px := d.buf[i*3 : i*3+3]
		if lit {
			copy(px, On[:])
			continue
		}
		v := max(byte(math.Floor(float64(px[0])/Fade)), Floor)
		px[0], px[1], px[2] = v, v, v
	}
	d.p.UpdateTexture(d.tex, d.width, d.height, false, d.buf)
}

// RGB returns the current pixels, three bytes each. The slice is reused
// by the next Update.
func (d *Display) RGB() []byte { return d.buf }

// Texture returns the display texture.
func (d *Display) Texture() *painter.Texture { return d.tex }

// Sprite returns a sprite showing the display at its native size.
func (d *Display) Sprite() painter.Sprite {
	return painter.NewSprite(d.tex, d.Size().Point())
}

// Code page 437 box drawing bytes used by SpeedBar.
const (
	barTrack  = 196
	barThumb  = 197
	barMarker = 215
)

// SpeedBar draws a horizontal slider of width cells as code page 437
// bytes: a thumb at fraction of the track and a double marker at cell
// mark. The thumb wins when both fall on the same cell.
func SpeedBar(fraction float32, width, mark int) []byte {
	bar := make([]byte, width)
	fraction = min(max(fraction, 0), 1)
	thumb := int(fraction * float32(width-1))
	for i := range bar {
		switch i {
		case thumb:
			bar[i] = barThumb
		case mark:
			bar[i] = barMarker
		default:
			bar[i] = barTrack
		}
	}
	return bar
}
