package assets

import (
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"sort"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/font/gofont/gomono"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gogpu/painter"
	"github.com/gogpu/painter/glyphs"
)

// Library holds the loaded assets by manifest name.
type Library struct {
	textures map[string]painter.AssetTexture
	fonts    map[string]*painter.Font
}

// Texture returns a loaded sprite sheet.
func (l *Library) Texture(name string) (painter.AssetTexture, bool) {
	t, ok := l.textures[name]
	return t, ok
}

// Font returns a loaded font.
func (l *Library) Font(name string) (*painter.Font, bool) {
	f, ok := l.fonts[name]
	return f, ok
}

// Sprite returns a sprite for a loaded sprite sheet.
func (l *Library) Sprite(name string) (painter.Sprite, bool) {
	t, ok := l.textures[name]
	if !ok {
		return painter.Sprite{}, false
	}
	return painter.SpriteFromAsset(t), true
}

// Names returns the sorted texture and font names.
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.textures)+len(l.fonts))
	for name := range l.textures {
		names = append(names, name)
	}
	for name := range l.fonts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load decodes every texture and font of m from fsys and uploads them to
// p. Images may be png, bmp, tiff or webp. TTF fonts sharing a face, size
// and glyph set are baked once.
func Load(p *painter.Painter, m *Manifest, fsys fs.FS) (*Library, error) {
	lib := &Library{
		textures: make(map[string]painter.AssetTexture, len(m.Textures)),
		fonts:    make(map[string]*painter.Font, len(m.Fonts)),
	}

	for _, e := range m.Textures {
		t, err := loadTexture(p, e, fsys)
		if err != nil {
			return nil, err
		}
		lib.textures[e.Name] = t
	}
	strips := glyphs.NewCache(len(m.Fonts))
	for _, e := range m.Fonts {
		f, err := loadFont(p, e, fsys, strips)
		if err != nil {
			return nil, err
		}
		lib.fonts[e.Name] = f
	}

	painter.Logger().Info("assets: loaded",
		"textures", len(lib.textures), "fonts", len(lib.fonts))
	return lib, nil
}

func loadTexture(p *painter.Painter, e TextureEntry, fsys fs.FS) (painter.AssetTexture, error) {
	frames := painter.Frame{X: max(e.Frames[0], 1), Y: max(e.Frames[1], 1)}
	w, h := e.Width*frames.X, e.Height*frames.Y

	img, err := decode(fsys, e.File, w, h)
	if err != nil {
		return painter.AssetTexture{}, fmt.Errorf("assets: texture %q: %w", e.Name, err)
	}

	opts := painter.TextureOptions{
		Alpha:      !e.Opaque,
		MinNearest: e.MinNearest,
		MagNearest: e.MagNearest == nil || *e.MagNearest,
		Label:      e.Name,
	}
	pix := img.Pix
	if e.Opaque {
		pix = dropAlpha(img)
	}
	tex, err := p.NewTexture(w, h, pix, opts)
	if err != nil {
		return painter.AssetTexture{}, fmt.Errorf("assets: texture %q: %w", e.Name, err)
	}
	painter.Logger().Debug("assets: texture loaded", "name", e.Name, "file", e.File, "frames", frames)
	return painter.AssetTexture{
		Texture: tex,
		Size:    painter.Pt(float32(e.Width), float32(e.Height)),
		Frames:  frames,
	}, nil
}

func loadFont(p *painter.Painter, e FontEntry, fsys fs.FS, strips *glyphs.Cache) (*painter.Font, error) {
	lookup := e.lookup()
	if e.TTF != "" {
		ttf, err := e.ttf(fsys)
		if err != nil {
			return nil, fmt.Errorf("assets: font %q: %w", e.Name, err)
		}
		var runes []rune
		if e.Count > 0 {
			runes = glyphs.CP437()[:e.Count]
		}
		strip, err := strips.Bake(ttf, glyphs.Options{
			Size:  e.Size,
			Cell:  image.Pt(e.GlyphWidth, e.GlyphHeight),
			Runes: runes,
		})
		if err != nil {
			return nil, fmt.Errorf("assets: font %q: %w", e.Name, err)
		}
		return strip.Font(p, lookup, e.Smooth)
	}

	w, h := e.GlyphWidth*e.Count, e.GlyphHeight
	img, err := decode(fsys, e.Texture, w, h)
	if err != nil {
		return nil, fmt.Errorf("assets: font %q: %w", e.Name, err)
	}
	tex, err := p.NewTexture(w, h, img.Pix, painter.TextureOptions{
		Alpha:      true,
		MinNearest: !e.Smooth,
		MagNearest: !e.Smooth,
		Label:      e.Name,
	})
	if err != nil {
		return nil, fmt.Errorf("assets: font %q: %w", e.Name, err)
	}
	return &painter.Font{
		Texture: tex,
		Size:    painter.Pt(float32(e.GlyphWidth), float32(e.GlyphHeight)),
		Count:   e.Count,
		Lookup:  lookup,
	}, nil
}

func (e *FontEntry) ttf(fsys fs.FS) ([]byte, error) {
	if e.TTF == "gomono" {
		return gomono.TTF, nil
	}
	return fs.ReadFile(fsys, e.TTF)
}

func (e *FontEntry) lookup() painter.FontLookup {
	switch e.Lookup {
	case LookupSerif:
		return SerifLookup()
	case LookupCustom:
		l := painter.NewCustomLookup(e.Chars, byte(e.First)) //nolint:gosec // validated below MaxChars
		l.SetWidth(e.HalfWidth, painter.WidthHalf)
		l.SetWidth(e.ThreeQuarterWidth, painter.WidthThreeQuarters)
		return l
	default:
		return painter.ASCIILookup()
	}
}

// decode reads an image and converts it to NRGBA, checking its size.
func decode(fsys fs.FS, name string, w, h int) (*image.NRGBA, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	b := src.Bounds()
	if b.Dx() != w || b.Dy() != h {
		return nil, fmt.Errorf("%w: %s is %dx%d, manifest declares %dx%d",
			ErrInvalidManifest, name, b.Dx(), b.Dy(), w, h)
	}

	if img, ok := src.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return img, nil
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), src, b.Min, draw.Src)
	painter.Logger().Debug("assets: image converted", "file", name, "format", format)
	return img, nil
}

func dropAlpha(img *image.NRGBA) []byte {
	rgb := make([]byte, 0, len(img.Pix)/4*3)
	for i := 0; i+3 < len(img.Pix); i += 4 {
		rgb = append(rgb, img.Pix[i], img.Pix[i+1], img.Pix[i+2])
	}
	return rgb
}
