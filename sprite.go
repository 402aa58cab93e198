package painter

// AssetTexture is a sprite sheet: a texture, the size of one frame in
// pixels and the frame grid extent.
type AssetTexture struct {
	Texture *Texture
	Size    Point
	Frames  Frame
}

// Sprite draws one frame of a texture. Sprites are plain values built
// with the With methods; they can be created on every frame.
type Sprite struct {
	Texture *Texture
	// UVTexture, when set, makes the sprite cover the whole target and
	// sample Texture at the coordinates stored in UVTexture's red and
	// green channels. Frame and FramesCount then address UVTexture.
	UVTexture *Texture

	Pos  Point
	Size Point
	// FramesCount is the number of frames on each axis.
	FramesCount Frame
	// Frame is the current frame on each axis.
	Frame Frame
	Flip  Flip
	// Crop keeps the left Crop.X and bottom Crop.Y fraction of the frame,
	// each in [0, 1].
	Crop       Point
	Opacity    float32
	Foreground Color
	Background Color
}

// NewSprite creates a single-frame sprite drawn untinted at the origin.
func NewSprite(tex *Texture, size Point) Sprite {
	return Sprite{
		Texture:     tex,
		Size:        size,
		FramesCount: Frame{X: 1, Y: 1},
		Crop:        Point{X: 1, Y: 1},
		Opacity:     1,
		Foreground:  White,
		Background:  Transparent,
	}
}

// SpriteFromCanvas creates a sprite showing a whole canvas.
func SpriteFromCanvas(p *Painter, id CanvasID) Sprite {
	c := p.Canvas(id)
	return NewSprite(c.texture, c.data.Size.Point())
}

// SpriteFromAsset creates a sprite for a sprite sheet.
func SpriteFromAsset(a AssetTexture) Sprite {
	return NewSprite(a.Texture, a.Size).WithFramesCount(a.Frames)
}

// WithPos sets the top-left corner.
func (s Sprite) WithPos(pos Point) Sprite {
	s.Pos = pos
	return s
}

// WithSize sets the drawn size.
func (s Sprite) WithSize(size Point) Sprite {
	s.Size = size
	return s
}

// WithScale multiplies the drawn size.
func (s Sprite) WithScale(scale float32) Sprite {
	s.Size = s.Size.Mul(scale)
	return s
}

// WithFrame selects the frame cell.
func (s Sprite) WithFrame(frame Frame) Sprite {
	s.Frame = frame
	return s
}

// WithFramesCount sets the frame grid extent.
func (s Sprite) WithFramesCount(frames Frame) Sprite {
	s.FramesCount = frames
	return s
}

// WithUV sets the UV lookup texture.
func (s Sprite) WithUV(uv *Texture) Sprite {
	s.UVTexture = uv
	return s
}

// WithCrop sets the kept fraction of the frame.
func (s Sprite) WithCrop(crop Point) Sprite {
	s.Crop = crop
	return s
}

// WithOpacity sets the opacity.
func (s Sprite) WithOpacity(opacity float32) Sprite {
	s.Opacity = opacity
	return s
}

// WithFlip mirrors the frame.
func (s Sprite) WithFlip(flip Flip) Sprite {
	s.Flip = flip
	return s
}

// WithFg sets the tint multiplied into the texels.
func (s Sprite) WithFg(c Color) Sprite {
	s.Foreground = c
	return s
}

// WithBg sets the color drawn under the texels.
func (s Sprite) WithBg(c Color) Sprite {
	s.Background = c
	return s
}

// Rect returns the sprite bounds before cropping.
func (s Sprite) Rect() Rect {
	return Rect{Pos: s.Pos, Size: s.Size}
}

// UV returns the texture coordinates of the quad corners: flipped,
// cropped within the frame, then mapped into the frame cell.
func (s Sprite) UV() [4]Point {
	nx, ny := float32(s.FramesCount.X), float32(s.FramesCount.Y)
	fx, fy := float32(s.Frame.X), float32(s.Frame.Y)

	uv := QuadUV
	for i := range uv {
		u, v := uv[i].X, uv[i].Y
		if s.Flip.X {
			u = 1 - u
		}
		if s.Flip.Y {
			v = 1 - v
		}
		u *= s.Crop.X
		v = 1 - (1-v)*s.Crop.Y

		uv[i] = Point{X: (u + fx) / nx, Y: (v + fy) / ny}
	}
	return uv
}

// Draw draws the sprite onto a canvas.
func (s Sprite) Draw(p *Painter, canvas CanvasID) {
	s.draw(p, canvas)
}

// DrawScreen draws the sprite onto the screen.
func (s Sprite) DrawScreen(p *Painter) {
	s.draw(p, Screen)
}

func (s Sprite) draw(p *Painter, target CanvasID) {
	pos, size := s.Pos, s.Size
	textures := TexturePair{First: s.Texture, Second: p.EmptyTexture()}
	flags := FlagSprite

	if s.UVTexture != nil {
		pos = Point{}
		size = p.CanvasData(target).Size.Point()
		textures.Second = s.UVTexture
		flags |= FlagWarp
	}

	cropped := Point{X: size.X * (1 - s.Crop.X), Y: size.Y * (1 - s.Crop.Y)}
	pos.Y += cropped.Y

	p.SetUniforms(target, &textures, BatchUniforms{
		Flags:      flags,
		Foreground: s.Foreground,
		Background: s.Background,
		BlendMode:  BlendNormal,
		Factor:     1,
	})
	p.PushQuad(pos, size.Sub(cropped), s.UV(), s.Opacity)
}
