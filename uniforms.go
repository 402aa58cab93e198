package painter

import "github.com/gogpu/painter/internal/blend"

// DrawFlags selects how the fragment stage combines the batch textures.
type DrawFlags int32

const (
	// FlagSprite draws the first texture tinted by the foreground over the
	// background color.
	FlagSprite DrawFlags = 1 << iota
	// FlagText treats the first texture's alpha as glyph coverage between
	// background and foreground.
	FlagText
	// FlagMerge composites the second texture onto the first with the
	// batch blend mode and factor.
	FlagMerge
	// FlagWarp samples the first texture at coordinates read from the
	// second one.
	FlagWarp
)

// BlendMode selects the merge blend function.
type BlendMode int32

// Blend modes, numbered as the fragment stage expects them.
const (
	BlendNormal  = BlendMode(blend.Normal)
	BlendScreen  = BlendMode(blend.Screen)
	BlendAdd     = BlendMode(blend.Add)
	BlendOverlay = BlendMode(blend.Overlay)
)

// String returns the mode name.
func (m BlendMode) String() string {
	return blend.Mode(m).String()
}

// Merge composites fg onto bg on the CPU exactly like a Merge draw does on
// the GPU.
func (m BlendMode) Merge(bg, fg Color, factor float32) Color {
	c := blend.Merge(blend.Color(bg), blend.Color(fg), blend.Mode(m), factor)
	return Color(c)
}

// BatchUniforms is the per-batch uniform state. Two batches with equal
// BatchUniforms (and equal target and textures) are merged.
type BatchUniforms struct {
	Flags      DrawFlags
	Foreground Color
	Background Color
	BlendMode  BlendMode
	Factor     float32
}

// DefaultUniforms returns the uniforms a batch starts with: an untinted
// sprite on a transparent background.
func DefaultUniforms() BatchUniforms {
	return BatchUniforms{
		Flags:      FlagSprite,
		Foreground: White,
		Background: Transparent,
		BlendMode:  BlendNormal,
		Factor:     1,
	}
}
