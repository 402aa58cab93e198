// Package painter is an immediate-mode 2D batched renderer on top of the
// gogpu/wgpu hal layer.
//
// # Overview
//
// A Painter accumulates quads (sprites, glyph cells, canvas merges) into a
// fixed-capacity vertex/index buffer and issues one indexed draw call per
// batch. A batch is identified by its target canvas, its texture pair and
// its uniform values; any change to that triple flushes the buffered quads
// before the new configuration is adopted, so every quad is drawn with the
// configuration it was pushed under.
//
// # Quick Start
//
//	dev, _ := gpu.OpenBackend("software") // or any hal device/queue
//	p, err := painter.New(dev.Device, dev.Queue)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer p.Destroy()
//
//	canvas, _ := p.NewCanvas(painter.Sz(128, 64), painter.Black, painter.DefaultTextureOptions())
//
//	p.BeginFrame()
//	painter.NewSprite(tex, painter.Pt(16, 16)).WithPos(painter.Pt(8, 8)).Draw(p, canvas)
//	p.CommitFrame()
//
// # Resources
//
// Textures, canvases, bindings and shaders are created through the Painter
// and live until Painter.Destroy. Handles are never invalidated during
// normal operation.
//
// # Coordinates
//
// Canvases and the screen use pixel coordinates with the origin at the top
// left corner and y growing downwards. Texture row zero sits at v = 0.
//
// # Logging
//
// The package is silent by default. Call SetLogger to receive structured
// log/slog output from the painter and its sub-packages.
package painter
