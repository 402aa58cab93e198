package painter

import (
	"golang.org/x/text/encoding/charmap"
)

// MaxChars is the number of byte values a font lookup covers.
const MaxChars = 256

// Glyph width multipliers of proportional strip fonts.
const (
	WidthNormal        float32 = 1
	WidthHalf          float32 = 0.5
	WidthThreeQuarters float32 = 0.75
)

// FontLookup maps a byte to a glyph cell index and a width multiplier.
type FontLookup interface {
	Glyph(b byte) (index int, width float32)
}

type asciiLookup struct{}

func (asciiLookup) Glyph(b byte) (int, float32) { return int(b), 1 }

// ASCIILookup returns the lookup for a font with all 256 cells in byte
// order.
func ASCIILookup() FontLookup { return asciiLookup{} }

// CustomLookup is a sparse byte to cell table with per-byte width
// multipliers for proportional fonts. Unmapped bytes use cell 0.
type CustomLookup struct {
	Table  [MaxChars]byte
	Widths [MaxChars]float32
}

// NewCustomLookup maps the bytes of chars, in order, to consecutive cells
// starting at first. All widths start at 1.
func NewCustomLookup(chars string, first byte) *CustomLookup {
	l := &CustomLookup{}
	for i := range l.Widths {
		l.Widths[i] = WidthNormal
	}
	for i := 0; i < len(chars); i++ {
		l.Table[chars[i]] = first + byte(i) //nolint:gosec // at most 256 cells
	}
	return l
}

// SetWidth sets the width multiplier of every byte in chars.
func (l *CustomLookup) SetWidth(chars string, width float32) *CustomLookup {
	for i := 0; i < len(chars); i++ {
		l.Widths[chars[i]] = width
	}
	return l
}

// Glyph implements FontLookup.
func (l *CustomLookup) Glyph(b byte) (int, float32) {
	return int(l.Table[b]), l.Widths[b]
}

// Font is a glyph strip: Count cells of Size pixels laid out in one row.
type Font struct {
	Texture *Texture
	Size    Point
	Count   int
	Lookup  FontLookup
}

// EncodeCP437 converts UTF-8 text to code page 437 bytes, the layout of
// IBM PC fonts. Runes outside the code page become '?'.
func EncodeCP437(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		b, ok := charmap.CodePage437.EncodeRune(r)
		if !ok {
			b = '?'
		}
		out = append(out, b)
	}
	return out
}

// Text draws byte strings with a Font. The pen position advances with
// every glyph, so a Text is used for one run of calls and then dropped.
type Text struct {
	Font       *Font
	Pos        Point
	FontSize   float32
	Foreground Color
	Background Color

	// charOffset is the pen offset from Pos.X in pixels.
	charOffset float32
	// lineOffset is the current line in lines.
	lineOffset float32
}

// NewText creates white on black text at the origin.
func NewText(font *Font) *Text {
	return &Text{
		Font:       font,
		FontSize:   1,
		Foreground: White,
		Background: Black,
	}
}

// WithPos sets the pen origin.
func (t *Text) WithPos(pos Point) *Text {
	t.Pos = pos
	return t
}

// WithFontSize scales the glyph cells.
func (t *Text) WithFontSize(size float32) *Text {
	t.FontSize = size
	return t
}

// WithFg sets the glyph color.
func (t *Text) WithFg(c Color) *Text {
	t.Foreground = c
	return t
}

// WithBg sets the cell background color.
func (t *Text) WithBg(c Color) *Text {
	t.Background = c
	return t
}

// CharSize returns the scaled cell size.
func (t *Text) CharSize() Point {
	return t.Font.Size.Mul(t.FontSize)
}

func (t *Text) begin(p *Painter, canvas CanvasID) {
	p.SetUniforms(canvas, &TexturePair{First: t.Font.Texture, Second: p.EmptyTexture()}, BatchUniforms{
		Flags:      FlagText,
		Foreground: t.Foreground,
		Background: t.Background,
		BlendMode:  BlendNormal,
		Factor:     1,
	})
}

func (t *Text) drawChar(p *Painter, b byte, offset Point) {
	if b == 0 {
		return
	}
	size := t.CharSize()
	index, width := t.Font.Lookup.Glyph(b)
	kerning := size.X * width

	// Crop the cell horizontally to the glyph width, keeping it centred.
	count := float32(t.Font.Count)
	f := width
	findex := float32(index)
	uv := QuadUV
	for i := range uv {
		uv[i].X = (uv[i].X*f + findex + (1-f)/2) / count
	}

	pos := Point{
		X: t.Pos.X + t.charOffset,
		Y: t.Pos.Y + t.lineOffset*size.Y,
	}.Add(offset)
	p.PushQuad(pos, Point{X: kerning, Y: size.Y}, uv, 1)

	t.charOffset += kerning
}

// DrawCharsWith draws bytes after passing each through transform, which
// may replace the byte and offset its quad.
func (t *Text) DrawCharsWith(p *Painter, canvas CanvasID, bytes []byte, transform func(i int, b byte) (byte, Point)) *Text {
	t.begin(p, canvas)
	for i, b := range bytes {
		b, offset := transform(i, b)
		t.drawChar(p, b, offset)
	}
	return t
}

// DrawChars draws bytes on the current line. Zero bytes are skipped.
func (t *Text) DrawChars(p *Painter, canvas CanvasID, bytes []byte) *Text {
	return t.DrawCharsWith(p, canvas, bytes, func(_ int, b byte) (byte, Point) {
		return b, Point{}
	})
}

// DrawLine draws bytes and moves to the next line.
func (t *Text) DrawLine(p *Painter, canvas CanvasID, bytes []byte) *Text {
	return t.DrawChars(p, canvas, bytes).NewLine()
}

// NewLine moves the pen to the start of the next line.
func (t *Text) NewLine() *Text {
	t.lineOffset++
	t.charOffset = 0
	return t
}

// DrawString draws s byte by byte; '\n' starts a new line.
func (t *Text) DrawString(p *Painter, canvas CanvasID, s string) *Text {
	t.begin(p, canvas)
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			t.NewLine()
			continue
		}
		t.drawChar(p, s[i], Point{})
	}
	return t
}
