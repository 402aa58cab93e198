package glyphs

import (
	"errors"
	"image"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal/noop"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/painter"
)

func cellCoverage(s *Strip, cell int) int {
	sum := 0
	for y := 0; y < s.Cell.Y; y++ {
		for x := cell * s.Cell.X; x < (cell+1)*s.Cell.X; x++ {
			sum += int(s.Image.NRGBAAt(x, y).A)
		}
	}
	return sum
}

func TestBakeStripLayout(t *testing.T) {
	s, err := Bake(gomono.TTF, Options{Size: 16, Runes: []rune("A B")})
	if err != nil {
		t.Fatalf("Bake failed: %v", err)
	}
	if s.Count() != 3 {
		t.Fatalf("Count() = %d, want 3", s.Count())
	}
	if s.Cell.X <= 0 || s.Cell.Y < 16 {
		t.Errorf("Cell = %v, want positive width and at least the font size tall", s.Cell)
	}
	if got := s.Image.Bounds(); got != image.Rect(0, 0, s.Cell.X*3, s.Cell.Y) {
		t.Errorf("bounds = %v, want 3 cells in one row", got)
	}
	if cellCoverage(s, 0) == 0 || cellCoverage(s, 2) == 0 {
		t.Error("letter cells are empty")
	}
	if cellCoverage(s, 1) != 0 {
		t.Error("space cell has coverage")
	}
	c := s.Image.NRGBAAt(0, 0)
	if c.R != 255 || c.G != 255 || c.B != 255 {
		t.Errorf("strip pixels must be white, got %v", c)
	}
}

func TestBakeFixedCell(t *testing.T) {
	s, err := Bake(gomono.TTF, Options{Size: 12, Cell: image.Pt(10, 20), Runes: []rune("x")})
	if err != nil {
		t.Fatal(err)
	}
	if s.Cell != image.Pt(10, 20) || s.Image.Bounds().Dx() != 10 {
		t.Errorf("Cell = %v, bounds = %v", s.Cell, s.Image.Bounds())
	}
}

func TestBakeDefaultsToCP437(t *testing.T) {
	s, err := Bake(gomono.TTF, Options{Size: 8})
	if err != nil {
		t.Fatal(err)
	}
	if s.Count() != painter.MaxChars {
		t.Fatalf("Count() = %d, want %d", s.Count(), painter.MaxChars)
	}
	if s.Runes['A'] != 'A' || s.Runes[0xB0] != '░' {
		t.Errorf("runes are not code page 437 ordered")
	}
	if cellCoverage(s, 0) != 0 {
		t.Error("control byte 0 drew a glyph")
	}
	if cellCoverage(s, 'A') == 0 {
		t.Error("'A' cell is empty")
	}
}

func TestBakeErrors(t *testing.T) {
	if _, err := Bake(gomono.TTF, Options{}); !errors.Is(err, ErrInvalidOptions) {
		t.Errorf("zero size: err = %v, want ErrInvalidOptions", err)
	}
	if _, err := Bake(gomono.TTF, Options{Size: 8, Runes: []rune{}}); !errors.Is(err, ErrInvalidOptions) {
		t.Errorf("no runes: err = %v, want ErrInvalidOptions", err)
	}
	if _, err := Bake(gomono.TTF, Options{Size: 8, Runes: make([]rune, 300)}); !errors.Is(err, ErrInvalidOptions) {
		t.Errorf("300 runes: err = %v, want ErrInvalidOptions", err)
	}
	if _, err := Bake([]byte("not a font"), Options{Size: 8}); err == nil {
		t.Error("garbage font accepted")
	}
}

func TestWidths(t *testing.T) {
	mono, err := Widths(gomono.TTF, []rune("iM"))
	if err != nil {
		t.Fatal(err)
	}
	if mono[0] != 1 || mono[1] != 1 {
		t.Errorf("monospace widths = %v, want all 1", mono)
	}

	prop, err := Widths(goregular.TTF, []rune("iMW͸"))
	if err != nil {
		t.Fatal(err)
	}
	if prop[0] >= prop[1] {
		t.Errorf("'i' (%v) must be narrower than 'M' (%v)", prop[0], prop[1])
	}
	if prop[2] > 1 || prop[1] > 1 {
		t.Errorf("widths exceed 1: %v", prop)
	}
	if prop[3] != 1 {
		t.Errorf("missing rune width = %v, want 1", prop[3])
	}

	if _, err := Widths([]byte("nope"), []rune("a")); err == nil {
		t.Error("garbage font accepted")
	}
}

func TestLookup(t *testing.T) {
	l, err := Lookup(goregular.TTF, []rune("aiM"))
	if err != nil {
		t.Fatal(err)
	}
	if idx, _ := l.Glyph('i'); idx != 1 {
		t.Errorf("Glyph('i') index = %d, want 1", idx)
	}
	if _, w := l.Glyph('i'); w >= 1 {
		t.Errorf("Glyph('i') width = %v, want < 1", w)
	}
	if idx, w := l.Glyph('z'); idx != 0 || w != 1 {
		t.Errorf("unmapped byte = %d, %v; want 0, 1", idx, w)
	}
	if _, err := Lookup(goregular.TTF, []rune("é€")); !errors.Is(err, ErrInvalidOptions) {
		t.Errorf("wide rune: err = %v, want ErrInvalidOptions", err)
	}
}

func TestStripFont(t *testing.T) {
	instance, err := noop.API{}.CreateInstance(nil)
	if err != nil {
		t.Fatal(err)
	}
	defer instance.Destroy()
	open, err := instance.EnumerateAdapters(nil)[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		t.Fatal(err)
	}
	defer open.Device.Destroy()
	p, err := painter.New(open.Device, open.Queue)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Destroy()

	s, err := Bake(gomono.TTF, Options{Size: 10, Runes: []rune("ab")})
	if err != nil {
		t.Fatal(err)
	}
	f, err := s.Font(p, painter.ASCIILookup(), true)
	if err != nil {
		t.Fatal(err)
	}
	if f.Count != 2 || f.Size != painter.Pt(float32(s.Cell.X), float32(s.Cell.Y)) {
		t.Errorf("font = %+v", f)
	}
	if f.Texture.Width() != s.Cell.X*2 || f.Texture.Height() != s.Cell.Y {
		t.Errorf("texture %dx%d, want the strip size", f.Texture.Width(), f.Texture.Height())
	}
}
