// Package blend implements the canvas merge blend modes on the CPU.
//
// The functions mirror the merge branch of the painter fragment shader
// channel for channel, so CPU previews and tests agree with what the GPU
// writes. Colors are straight (non-premultiplied) alpha in [0, 1].
package blend

// Mode selects how the foreground channel combines with the background.
type Mode int32

const (
	// Normal replaces the background with the foreground.
	Normal Mode = iota
	// Screen inverts, multiplies and inverts again: 1 - (1-b)(1-f).
	Screen
	// Add sums the channels, clamped to 1.
	Add
	// Overlay multiplies dark backgrounds and screens light ones.
	Overlay
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Normal:
		return "normal"
	case Screen:
		return "screen"
	case Add:
		return "add"
	case Overlay:
		return "overlay"
	default:
		return "unknown"
	}
}

// Color is a straight-alpha color.
type Color struct {
	R, G, B, A float32
}

// Channel blends one background channel b with foreground channel f.
// Unknown modes behave like Normal.
func Channel(b, f float32, mode Mode) float32 {
	switch mode {
	case Screen:
		return 1 - (1-b)*(1-f)
	case Add:
		return min(b+f, 1)
	case Overlay:
		if b < 0.5 {
			return 2 * b * f
		}
		return 1 - 2*(1-b)*(1-f)
	default:
		return f
	}
}

// Merge composites fg onto bg. The blended color is mixed over the
// background by fg.A*factor clamped to [0, 1]; the result alpha is fg
// over bg.
func Merge(bg, fg Color, mode Mode, factor float32) Color {
	t := clamp01(fg.A * factor)
	return Color{
		R: lerp(bg.R, Channel(bg.R, fg.R, mode), t),
		G: lerp(bg.G, Channel(bg.G, fg.G, mode), t),
		B: lerp(bg.B, Channel(bg.B, fg.B, mode), t),
		A: bg.A + fg.A*(1-bg.A),
	}
}

// MergeRGBA8 applies Merge to every pixel of two RGBA8 buffers of equal
// length and writes the result into dst, which may alias bg.
func MergeRGBA8(dst, bg, fg []byte, mode Mode, factor float32) {
	if len(bg) != len(fg) || len(dst) < len(bg) {
		panic("blend: MergeRGBA8 buffer length mismatch")
	}
	for i := 0; i+3 < len(bg); i += 4 {
		c := Merge(fromBytes(bg[i:i+4]), fromBytes(fg[i:i+4]), mode, factor)
		dst[i+0] = toByte(c.R)
		dst[i+1] = toByte(c.G)
		dst[i+2] = toByte(c.B)
		dst[i+3] = toByte(c.A)
	}
}

func fromBytes(p []byte) Color {
	return Color{
		R: float32(p[0]) / 255,
		G: float32(p[1]) / 255,
		B: float32(p[2]) / 255,
		A: float32(p[3]) / 255,
	}
}

// toByte converts a [0, 1] channel to 8 bits with rounding.
func toByte(v float32) byte {
	return byte(clamp01(v)*255 + 0.5)
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
