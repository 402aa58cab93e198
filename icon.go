package painter

// IconKind selects an icon column in the icon sheet.
type IconKind int

// Icon kinds.
const (
	IconFlip IconKind = iota
	IconPointer
)

// Icon is an animated sprite sheet cell drawn centred on its position.
// The kind picks the frame column, the animation frame picks the row.
type Icon struct {
	sprite Sprite
}

// NewIcon creates an icon from an icon sheet.
func NewIcon(sheet AssetTexture, kind IconKind) Icon {
	s := SpriteFromAsset(sheet)
	s.Frame.X = int(kind)
	return Icon{sprite: s}
}

// WithPos sets the icon centre.
func (i Icon) WithPos(pos Point) Icon {
	i.sprite.Pos = pos
	return i
}

// WithFlip mirrors the icon.
func (i Icon) WithFlip(flip Flip) Icon {
	i.sprite.Flip = flip
	return i
}

// Sprite returns the sprite the icon draws for animFrame.
func (i Icon) Sprite(animFrame int) Sprite {
	s := i.sprite
	s.Pos = s.Pos.Sub(s.Size.Mul(0.5))
	s.Frame.Y = animFrame
	return s
}

// Draw draws the icon at animation frame animFrame.
func (i Icon) Draw(p *Painter, canvas CanvasID, animFrame int) {
	i.Sprite(animFrame).Draw(p, canvas)
}
