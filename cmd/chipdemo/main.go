// Command chipdemo renders a few frames of a 64x32 monochrome display
// headlessly and logs the painter's GPU work per frame.
//
// With -manifest, textures and fonts come from an asset manifest (see
// package assets); the font named "text" is used when present. Without
// one, Go Mono is baked into a code page 437 strip.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/image/font/gofont/gomono"

	"github.com/gogpu/painter"
	"github.com/gogpu/painter/assets"
	"github.com/gogpu/painter/display"
	"github.com/gogpu/painter/glyphs"
	"github.com/gogpu/painter/internal/gpu"
)

type options struct {
	backend  string
	frames   int
	manifest string
}

func main() {
	var (
		backend  = flag.String("backend", "noop", "hal backend: noop or software")
		frames   = flag.Int("frames", 8, "frames to render")
		manifest = flag.String("manifest", "", "asset manifest (TOML)")
		verbose  = flag.Bool("verbose", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	opts := options{backend: *backend, frames: *frames, manifest: *manifest}
	if err := run(opts, logger); err != nil {
		log.Fatalf("chipdemo: %v", err)
	}
}

// scene holds the canvases of the demo: the display and the text overlay
// are merged into main.
type scene struct {
	board   painter.CanvasID
	overlay painter.CanvasID
	main    painter.CanvasID
	display *display.Display
	font    *painter.Font
}

func run(opts options, logger *slog.Logger) error {
	dev, err := gpu.OpenBackend(opts.backend)
	if err != nil {
		return err
	}
	defer dev.Close()

	var m *assets.Manifest
	if opts.manifest != "" {
		if m, err = assets.LoadManifest(opts.manifest); err != nil {
			return err
		}
	}

	cfg := painter.Config{}
	if m != nil {
		cfg = m.Config()
	}
	p, err := painter.New(dev.Device, dev.Queue, painter.WithConfig(cfg), painter.WithLogger(logger))
	if err != nil {
		return err
	}
	defer p.Destroy()

	s, err := newScene(p, m, opts.manifest)
	if err != nil {
		return err
	}
	logger.Info("chipdemo: started", "backend", opts.backend, "adapter", dev.Info.Name, "frames", opts.frames)

	for frame := range opts.frames {
		s.render(p, frame, opts.frames)
		stats := p.Stats()
		logger.Info("chipdemo: frame",
			"frame", frame,
			"draw_calls", stats.DrawCalls,
			"quads", stats.Quads,
			"target_binds", stats.TargetBinds,
			"main_clears", stats.Clears[s.main])
		p.ResetStats()
	}
	return nil
}

func newScene(p *painter.Painter, m *assets.Manifest, manifestPath string) (*scene, error) {
	s := &scene{}
	var err error
	if s.display, err = display.New(p, 64, 32); err != nil {
		return nil, err
	}

	if m != nil {
		lib, err := assets.Load(p, m, os.DirFS(filepath.Dir(manifestPath)))
		if err != nil {
			return nil, err
		}
		s.font, _ = lib.Font("text")
	}
	if s.font == nil {
		strip, err := glyphs.Bake(gomono.TTF, glyphs.Options{Size: 12})
		if err != nil {
			return nil, err
		}
		if s.font, err = strip.Font(p, painter.ASCIILookup(), false); err != nil {
			return nil, err
		}
	}

	data := painter.CanvasData{Color: painter.Black, Size: painter.Sz(320, 200)}
	if m != nil && !m.CanvasData().Size.Empty() {
		data = m.CanvasData()
	}
	if s.main, err = p.NewCanvas(data.Size, data.Color, painter.DefaultTextureOptions()); err != nil {
		return nil, err
	}
	if s.board, err = p.NewCanvas(data.Size, painter.Black, painter.DefaultTextureOptions()); err != nil {
		return nil, err
	}
	if s.overlay, err = p.NewCanvas(data.Size, painter.Transparent, painter.DefaultTextureOptions()); err != nil {
		return nil, err
	}
	return s, nil
}

// render draws one frame: a diagonal sweep on the display, a caption with
// a speed bar, and the screen-blended composite.
func (s *scene) render(p *painter.Painter, frame, frames int) {
	p.BeginFrame()

	size := s.display.Size()
	pixels := make([]bool, size.W*size.H)
	for y := range size.H {
		for x := range size.W {
			pixels[y*size.W+x] = (x+y+frame*4)%16 < 2
		}
	}
	s.display.Update(pixels)

	board := p.Canvas(s.board).Size().Point()
	s.display.Sprite().WithSize(board).Draw(p, s.board)

	fraction := float32(frame) / float32(max(frames-1, 1))
	painter.NewText(s.font).
		WithPos(painter.Pt(4, 4)).
		WithBg(painter.Transparent).
		DrawLine(p, s.overlay, painter.EncodeCP437(fmt.Sprintf("frame %d", frame))).
		DrawLine(p, s.overlay, display.SpeedBar(fraction, 16, 8))

	painter.NewMerge(p.Canvas(s.board).Texture(), p.Canvas(s.overlay).Texture(), painter.BlendScreen).
		Draw(p, s.main)

	p.Draw()
	p.CommitFrame()
}
