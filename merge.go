package painter

// Merge composites a foreground texture onto a background texture into a
// canvas with a blend mode. Both textures are stretched over the whole
// target.
type Merge struct {
	Background *Texture
	Foreground *Texture
	Mode       BlendMode
	// Factor scales the foreground alpha before mixing.
	Factor float32
	Pos    Point
}

// NewMerge creates a merge with factor 1 at the origin.
func NewMerge(background, foreground *Texture, mode BlendMode) Merge {
	return Merge{
		Background: background,
		Foreground: foreground,
		Mode:       mode,
		Factor:     1,
	}
}

// WithFactor sets the blend factor.
func (m Merge) WithFactor(factor float32) Merge {
	m.Factor = factor
	return m
}

// WithPos offsets the merged quad.
func (m Merge) WithPos(pos Point) Merge {
	m.Pos = pos
	return m
}

// Draw pushes one canvas-sized quad sampling both textures.
func (m Merge) Draw(p *Painter, canvas CanvasID) {
	size := p.Canvas(canvas).Size().Point()

	p.SetUniforms(canvas, &TexturePair{First: m.Background, Second: m.Foreground}, BatchUniforms{
		Flags:      FlagMerge,
		Foreground: White,
		Background: Transparent,
		BlendMode:  m.Mode,
		Factor:     m.Factor,
	})
	p.PushQuad(m.Pos, size, QuadUV, 1)
}
