// Package glyphs bakes glyph-strip fonts from TrueType data.
//
// A strip is one row of equally sized cells, one glyph per cell, which is
// the layout painter.Font draws from. Baking at load time lets text use any
// TTF face instead of a pre-drawn bitmap.
//
//	strip, err := glyphs.Bake(gomono.TTF, glyphs.Options{Size: 16})
//	font, err := strip.Font(p, painter.ASCIILookup(), false)
package glyphs

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/go-text/typesetting/font"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/encoding/charmap"

	"github.com/gogpu/painter"
)

// ErrInvalidOptions is returned when Bake options cannot describe a strip.
var ErrInvalidOptions = errors.New("glyphs: invalid options")

// Options configures Bake.
type Options struct {
	// Size is the font size in pixels.
	Size float64
	// Cell is the size of one cell. Zero fields are derived from the
	// face: the advance of 'M' and the ascent plus descent.
	Cell image.Point
	// Runes lists the rune drawn in each cell. Nil selects the 256 code
	// page 437 characters in byte order, matching painter.ASCIILookup
	// with painter.EncodeCP437 text.
	Runes []rune
}

// Strip is a baked glyph strip: white pixels whose alpha is the glyph
// coverage.
type Strip struct {
	Image *image.NRGBA
	Cell  image.Point
	Runes []rune
}

// Count returns the number of cells.
func (s *Strip) Count() int { return len(s.Runes) }

// CP437 returns the runes of code page 437 in byte order. Control bytes
// decode to control runes, which no face draws.
func CP437() []rune {
	runes := make([]rune, painter.MaxChars)
	for i := range runes {
		runes[i] = charmap.CodePage437.DecodeByte(byte(i))
	}
	return runes
}

// Bake rasterizes every rune of opts.Runes into its own cell, centred
// horizontally on the cell and sitting on the face's baseline. Runes the
// face lacks leave their cell empty.
func Bake(ttf []byte, opts Options) (*Strip, error) {
	if opts.Size <= 0 {
		return nil, fmt.Errorf("%w: size %v", ErrInvalidOptions, opts.Size)
	}
	runes := opts.Runes
	if runes == nil {
		runes = CP437()
	}
	if len(runes) == 0 || len(runes) > painter.MaxChars {
		return nil, fmt.Errorf("%w: %d runes, want 1..%d", ErrInvalidOptions, len(runes), painter.MaxChars)
	}

	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("glyphs: parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    opts.Size,
		DPI:     72,
		Hinting: xfont.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("glyphs: create face: %w", err)
	}
	defer func() {
		_ = face.Close()
	}()

	metrics := face.Metrics()
	cell := opts.Cell
	if cell.X <= 0 {
		adv, ok := face.GlyphAdvance('M')
		if !ok {
			adv = fixed.I(int(opts.Size+0.5) / 2)
		}
		cell.X = adv.Ceil()
	}
	if cell.Y <= 0 {
		cell.Y = (metrics.Ascent + metrics.Descent).Ceil()
	}
	if cell.X <= 0 || cell.Y <= 0 {
		return nil, fmt.Errorf("%w: cell %v", ErrInvalidOptions, cell)
	}

	mask := image.NewAlpha(image.Rect(0, 0, cell.X*len(runes), cell.Y))
	baseline := metrics.Ascent
	if extra := fixed.I(cell.Y) - (metrics.Ascent + metrics.Descent); extra > 0 {
		baseline += extra / 2
	}

	drawn := 0
	for i, r := range runes {
		adv, ok := face.GlyphAdvance(r)
		if !ok {
			continue
		}
		x := i * cell.X
		d := &xfont.Drawer{
			Dst:  mask.SubImage(image.Rect(x, 0, x+cell.X, cell.Y)).(*image.Alpha),
			Src:  image.Opaque,
			Face: face,
			Dot:  fixed.Point26_6{X: fixed.I(x) + (fixed.I(cell.X)-adv)/2, Y: baseline},
		}
		d.DrawString(string(r))
		drawn++
	}

	painter.Logger().Debug("glyphs: strip baked",
		"cells", len(runes), "drawn", drawn, "cell_w", cell.X, "cell_h", cell.Y)
	return &Strip{Image: whiteCoverage(mask), Cell: cell, Runes: runes}, nil
}

// whiteCoverage turns a coverage mask into white NRGBA pixels.
func whiteCoverage(mask *image.Alpha) *image.NRGBA {
	b := mask.Bounds()
	img := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: mask.AlphaAt(x, y).A})
		}
	}
	return img
}

// Font uploads the strip and returns a painter font drawing it. smooth
// selects linear filtering.
func (s *Strip) Font(p *painter.Painter, lookup painter.FontLookup, smooth bool) (*painter.Font, error) {
	b := s.Image.Bounds()
	tex, err := p.NewTexture(b.Dx(), b.Dy(), s.Image.Pix, painter.TextureOptions{
		Alpha:      true,
		MinNearest: !smooth,
		MagNearest: !smooth,
		Label:      "glyph_strip",
	})
	if err != nil {
		return nil, fmt.Errorf("glyphs: upload strip: %w", err)
	}
	return &painter.Font{
		Texture: tex,
		Size:    painter.Pt(float32(s.Cell.X), float32(s.Cell.Y)),
		Count:   s.Count(),
		Lookup:  lookup,
	}, nil
}

// Widths returns the advance of each rune as a fraction of the widest
// advance among runes, for proportional text with painter.CustomLookup.
// Runes the face lacks get 1.
func Widths(ttf []byte, runes []rune) ([]float32, error) {
	face, err := font.ParseTTF(bytes.NewReader(ttf))
	if err != nil {
		return nil, fmt.Errorf("glyphs: parse font: %w", err)
	}

	advances := make([]float32, len(runes))
	var widest float32
	for i, r := range runes {
		gid, ok := face.NominalGlyph(r)
		if !ok {
			advances[i] = -1
			continue
		}
		advances[i] = face.HorizontalAdvance(gid)
		widest = max(widest, advances[i])
	}

	widths := make([]float32, len(runes))
	for i, a := range advances {
		if a < 0 || widest == 0 {
			widths[i] = 1
			continue
		}
		widths[i] = a / widest
	}
	return widths, nil
}

// Lookup builds a proportional lookup for a strip baked from runes: byte b
// of text maps to the cell holding rune b, and widths come from the face.
// Every rune must be below MaxChars.
func Lookup(ttf []byte, runes []rune) (*painter.CustomLookup, error) {
	widths, err := Widths(ttf, runes)
	if err != nil {
		return nil, err
	}
	l := painter.NewCustomLookup("", 0)
	for i, r := range runes {
		if r < 0 || r >= painter.MaxChars {
			return nil, fmt.Errorf("%w: rune %q does not fit a byte lookup", ErrInvalidOptions, r)
		}
		l.Table[r] = byte(i) //nolint:gosec // at most MaxChars runes
		l.Widths[r] = widths[i]
	}
	return l, nil
}
