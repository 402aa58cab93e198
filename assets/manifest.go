// Package assets loads textures and fonts for a Painter from a TOML
// manifest.
//
// A manifest lists every image the host draws with, its frame grid and its
// filtering, plus the fonts built from glyph strips or baked from TrueType
// files:
//
//	[painter]
//	batch_quads = 256
//
//	[[texture]]
//	name = "keyboard_key"
//	file = "keyboard-key.png"
//	width = 53
//	height = 54
//	frames = [16, 2]
//
//	[[font]]
//	name = "ibm"
//	texture = "ibm-font.png"
//	glyph_width = 8
//	glyph_height = 16
//	count = 256
//	lookup = "ascii"
package assets

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/painter"
)

// ErrInvalidManifest is returned for manifests that parse but do not
// describe a loadable asset set.
var ErrInvalidManifest = errors.New("assets: invalid manifest")

// Font lookup names.
const (
	LookupASCII  = "ascii"
	LookupSerif  = "serif"
	LookupCustom = "custom"
)

// Manifest is the parsed asset table.
type Manifest struct {
	Painter  PainterSection `toml:"painter"`
	Canvas   CanvasSection  `toml:"canvas"`
	Textures []TextureEntry `toml:"texture"`
	Fonts    []FontEntry    `toml:"font"`
}

// PainterSection holds Painter settings.
type PainterSection struct {
	BatchQuads int `toml:"batch_quads"`
}

// CanvasSection describes the host's main canvas.
type CanvasSection struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Color  string `toml:"color"`
}

// TextureEntry is one sprite sheet. The image must be Width*Frames[0]
// by Height*Frames[1] pixels.
type TextureEntry struct {
	Name   string `toml:"name"`
	File   string `toml:"file"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	// Frames is the grid extent; zero means one frame on that axis.
	Frames [2]int `toml:"frames"`
	// Opaque uploads the image without its alpha channel.
	Opaque     bool  `toml:"opaque"`
	MinNearest bool  `toml:"min_nearest"`
	MagNearest *bool `toml:"mag_nearest"`
}

// FontEntry is a glyph-strip font, either drawn (Texture) or baked from a
// TrueType file (TTF, "gomono" for the built-in face).
type FontEntry struct {
	Name        string  `toml:"name"`
	Texture     string  `toml:"texture"`
	TTF         string  `toml:"ttf"`
	Size        float64 `toml:"size"`
	GlyphWidth  int     `toml:"glyph_width"`
	GlyphHeight int     `toml:"glyph_height"`
	Count       int     `toml:"count"`
	Smooth      bool    `toml:"smooth"`

	// Lookup is "ascii" (default), "serif" or "custom".
	Lookup string `toml:"lookup"`
	// Chars and First define a custom lookup: byte Chars[i] draws cell
	// First+i.
	Chars             string `toml:"chars"`
	First             int    `toml:"first"`
	HalfWidth         string `toml:"half_width"`
	ThreeQuarterWidth string `toml:"three_quarter_width"`
}

// ParseManifest decodes and validates a TOML manifest. Unknown keys are
// rejected so typos surface at load time.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&m); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidManifest, strict.String())
		}
		return nil, fmt.Errorf("assets: parse manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// LoadManifest reads and parses a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("assets: read manifest: %w", err)
	}
	return ParseManifest(data)
}

// Validate checks names, sizes and font definitions.
func (m *Manifest) Validate() error {
	if m.Painter.BatchQuads < 0 {
		return fmt.Errorf("%w: batch_quads %d", ErrInvalidManifest, m.Painter.BatchQuads)
	}
	if m.Canvas.Color != "" {
		if _, err := painter.ParseHex(m.Canvas.Color); err != nil {
			return fmt.Errorf("%w: canvas color: %w", ErrInvalidManifest, err)
		}
	}
	if m.Canvas.Width < 0 || m.Canvas.Height < 0 {
		return fmt.Errorf("%w: canvas %dx%d", ErrInvalidManifest, m.Canvas.Width, m.Canvas.Height)
	}

	names := make(map[string]bool)
	unique := func(kind, name string) error {
		if name == "" {
			return fmt.Errorf("%w: %s without a name", ErrInvalidManifest, kind)
		}
		if names[name] {
			return fmt.Errorf("%w: duplicate name %q", ErrInvalidManifest, name)
		}
		names[name] = true
		return nil
	}

	for _, t := range m.Textures {
		if err := unique("texture", t.Name); err != nil {
			return err
		}
		if t.File == "" {
			return fmt.Errorf("%w: texture %q has no file", ErrInvalidManifest, t.Name)
		}
		if t.Width <= 0 || t.Height <= 0 {
			return fmt.Errorf("%w: texture %q frame size %dx%d", ErrInvalidManifest, t.Name, t.Width, t.Height)
		}
		if t.Frames[0] < 0 || t.Frames[1] < 0 {
			return fmt.Errorf("%w: texture %q frames %v", ErrInvalidManifest, t.Name, t.Frames)
		}
	}

	for _, f := range m.Fonts {
		if err := unique("font", f.Name); err != nil {
			return err
		}
		if err := f.validate(); err != nil {
			return err
		}
	}
	return nil
}

func (f *FontEntry) validate() error {
	switch {
	case (f.Texture == "") == (f.TTF == ""):
		return fmt.Errorf("%w: font %q needs exactly one of texture and ttf", ErrInvalidManifest, f.Name)
	case f.Texture != "" && (f.GlyphWidth <= 0 || f.GlyphHeight <= 0):
		return fmt.Errorf("%w: font %q glyph size %dx%d", ErrInvalidManifest, f.Name, f.GlyphWidth, f.GlyphHeight)
	case f.Count < 0 || f.Count > painter.MaxChars || (f.Texture != "" && f.Count == 0):
		return fmt.Errorf("%w: font %q count %d, want 1..%d", ErrInvalidManifest, f.Name, f.Count, painter.MaxChars)
	case f.TTF != "" && f.Size <= 0:
		return fmt.Errorf("%w: font %q needs a size to bake", ErrInvalidManifest, f.Name)
	case f.First < 0 || f.First+len(f.Chars) > painter.MaxChars:
		return fmt.Errorf("%w: font %q cells %d+%d exceed %d", ErrInvalidManifest, f.Name, f.First, len(f.Chars), painter.MaxChars)
	}

	switch f.Lookup {
	case "", LookupASCII, LookupSerif:
	case LookupCustom:
		if f.Chars == "" {
			return fmt.Errorf("%w: font %q custom lookup without chars", ErrInvalidManifest, f.Name)
		}
	default:
		return fmt.Errorf("%w: font %q unknown lookup %q", ErrInvalidManifest, f.Name, f.Lookup)
	}
	return nil
}

// Config returns the painter settings of the manifest, for
// painter.WithConfig.
func (m *Manifest) Config() painter.Config {
	return painter.Config{BatchQuads: m.Painter.BatchQuads}
}

// CanvasData returns the main canvas description: the declared size and
// color, black when no color is given.
func (m *Manifest) CanvasData() painter.CanvasData {
	c := painter.Black
	if m.Canvas.Color != "" {
		c = painter.Hex(m.Canvas.Color)
	}
	return painter.CanvasData{Color: c, Size: painter.Sz(m.Canvas.Width, m.Canvas.Height)}
}
