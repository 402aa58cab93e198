package painter

import (
	"fmt"
	"maps"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/painter/internal/gpu"
)

// canvasFormat is the format of every texture and canvas.
const canvasFormat = gputypes.TextureFormatRGBA8Unorm

// floatsPerVertex is position (2), uv (2) and opacity (1).
const floatsPerVertex = 5

// batchState is the key that decides whether a quad may join the current
// batch. It is compared with ==.
type batchState struct {
	canvas      CanvasID
	textures    TexturePair
	hasTextures bool
	uniforms    BatchUniforms
}

// Stats counts GPU work since creation or the last ResetStats.
type Stats struct {
	// DrawCalls is the number of flushed batches.
	DrawCalls int
	// Quads is the number of quads drawn.
	Quads int
	// TargetBinds counts flushes that switched to a new target.
	TargetBinds int
	// Clears counts clears per target, both load-op clears at the first
	// draw of a frame and standalone Clear passes.
	Clears map[CanvasID]int
}

type submission struct {
	index   uint64
	encoder hal.CommandEncoder
	buffer  hal.CommandBuffer
}

// Painter is the batch accumulator and the owner of every GPU resource it
// draws with. It is not safe for concurrent use; create and use it on the
// render thread.
type Painter struct {
	device hal.Device
	queue  hal.Queue
	cfg    Config

	textures []*Texture
	canvases []*Canvas
	bindings []*Bindings
	shaders  []*Shader

	groupLayout hal.BindGroupLayout
	pipeLayout  hal.PipelineLayout

	empty        *Texture
	white        *Texture
	batchShader  *Shader
	batchBinding *Bindings

	screen struct {
		view    hal.TextureView
		size    Size
		cleared bool
	}

	state         batchState
	targetChanged bool
	quads         int
	vertices      []float32
	indices       []uint16

	pending []submission
	stats   Stats
}

// New creates a Painter on a hal device and queue: the bind group layout,
// the built-in empty and white textures, the batch shader and the batch
// vertex/index buffers.
func New(device hal.Device, queue hal.Queue, opts ...Option) (*Painter, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Logger != nil {
		SetLogger(cfg.Logger)
	}
	if cfg.BatchQuads <= 0 || cfg.BatchQuads > gpu.MaxQuads {
		return nil, fmt.Errorf("%w: %d quads, want 1..%d", ErrBatchCapacity, cfg.BatchQuads, gpu.MaxQuads)
	}

	p := &Painter{
		device:        device,
		queue:         queue,
		cfg:           cfg,
		state:         batchState{canvas: Screen, uniforms: DefaultUniforms()},
		targetChanged: true,
		vertices:      make([]float32, 0, cfg.BatchQuads*4*floatsPerVertex),
		indices:       make([]uint16, 0, cfg.BatchQuads*6),
		stats:         Stats{Clears: make(map[CanvasID]int)},
	}
	if err := p.init(); err != nil {
		p.Destroy()
		return nil, err
	}

	Logger().Info("painter: created",
		"batch_quads", cfg.BatchQuads,
		"screen_format", cfg.ScreenFormat)
	return p, nil
}

func (p *Painter) init() error {
	var err error
	p.groupLayout, err = p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "painter_bind_group_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    uniformBinding,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
			textureEntry(1),
			textureEntry(2),
			samplerEntry(3),
			samplerEntry(4),
		},
	})
	if err != nil {
		return fmt.Errorf("create bind group layout: %w", err)
	}
	p.pipeLayout, err = p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "painter_pipeline_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.groupLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}

	p.empty, err = p.NewTexture(1, 1, []byte{0, 0, 0, 0}, TextureOptions{Alpha: true, Label: "painter_empty"})
	if err != nil {
		return err
	}
	p.white, err = p.NewTexture(1, 1, []byte{255, 255, 255, 255}, TextureOptions{Alpha: true, Label: "painter_white"})
	if err != nil {
		return err
	}

	p.batchShader, err = p.NewShader(batchVertexSource, batchFragmentSource, batchUniformNames)
	if err != nil {
		return err
	}
	p.batchBinding, err = p.NewBindings(p.cfg.BatchQuads*4, p.cfg.BatchQuads*6, quadLayout)
	return err
}

func textureEntry(binding uint32) gputypes.BindGroupLayoutEntry {
	return gputypes.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: gputypes.ShaderStageFragment,
		Texture: &gputypes.TextureBindingLayout{
			SampleType:    gputypes.TextureSampleTypeFloat,
			ViewDimension: gputypes.TextureViewDimension2D,
		},
	}
}

func samplerEntry(binding uint32) gputypes.BindGroupLayoutEntry {
	return gputypes.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: gputypes.ShaderStageFragment,
		Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
	}
}

// Config returns the settings the Painter was created with.
func (p *Painter) Config() Config { return p.cfg }

// EmptyTexture returns the built-in 1x1 transparent black texture.
func (p *Painter) EmptyTexture() *Texture { return p.empty }

// WhiteTexture returns the built-in 1x1 opaque white texture.
func (p *Painter) WhiteTexture() *Texture { return p.white }

// BatchShader returns the built-in shader every batch is drawn with.
func (p *Painter) BatchShader() *Shader { return p.batchShader }

// Quads returns the number of quads buffered in the current batch.
func (p *Painter) Quads() int { return p.quads }

// SetUniforms selects the configuration for the following quads. When
// the target, the textures or the uniforms differ from the current batch,
// the batch is flushed first. A nil textures pair samples the empty
// texture and is a distinct configuration from any explicit pair.
func (p *Painter) SetUniforms(canvas CanvasID, textures *TexturePair, uniforms BatchUniforms) {
	next := batchState{canvas: canvas, uniforms: uniforms}
	if textures != nil {
		next.textures = *textures
		next.hasTextures = true
	}
	if next == p.state {
		return
	}
	p.Draw()
	if canvas != p.state.canvas {
		p.targetChanged = true
	}
	p.state = next
}

// PushQuad appends a quad with its corners at pos and pos+size. uv lists
// the texture coordinates of the top-left, top-right, bottom-right and
// bottom-left corners. A full batch is flushed before the quad is added;
// the quad continues the same configuration in the next batch.
func (p *Painter) PushQuad(pos, size Point, uv [4]Point, opacity float32) {
	if p.quads >= p.cfg.BatchQuads {
		u := p.state.uniforms
		p.Draw()
		p.state.uniforms = u
	}

	x0, y0 := pos.X, pos.Y
	x1, y1 := pos.X+size.X, pos.Y+size.Y
	corners := [4]Point{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
	for i, c := range corners {
		p.vertices = append(p.vertices, c.X, c.Y, uv[i].X, uv[i].Y, opacity)
	}
	p.indices = gpu.QuadIndices(p.indices, p.quads)
	p.quads++

	if p.state.canvas != Screen {
		p.Canvas(p.state.canvas).damaged = true
	}
}

// Draw flushes the current batch with one indexed draw call and resets
// the batch uniforms to DefaultUniforms. It does nothing when the batch
// is empty. Device failures panic. Flushes triggered by a full batch in
// PushQuad keep the uniforms instead.
func (p *Painter) Draw() {
	if p.quads == 0 {
		return
	}
	if err := p.flush(); err != nil {
		panic(fmt.Errorf("painter: draw %s: %w", p.state.canvas, err))
	}
	p.stats.DrawCalls++
	p.stats.Quads += p.quads

	p.quads = 0
	p.vertices = p.vertices[:0]
	p.indices = p.indices[:0]
	p.state.uniforms = DefaultUniforms()
}

func (p *Painter) flush() error {
	id := p.state.canvas
	data := p.CanvasData(id)
	view := p.targetView(id)

	load := gputypes.LoadOpLoad
	if p.targetChanged {
		p.stats.TargetBinds++
		if data.Clear == ClearEveryFrame && !p.clearedThisFrame(id) {
			load = gputypes.LoadOpClear
			p.stats.Clears[id]++
		}
		p.targetChanged = false
	}
	p.markCleared(id)

	s := p.batchShader
	u := p.state.uniforms
	size := data.Size.Point()
	s.Apply("u_view_size_px", Float2{size.X, size.Y})
	s.Apply("u_flags", Int1(u.Flags))
	s.Apply("u_foreground", Float3(u.Foreground.Float3()))
	s.Apply("u_background", Float4(u.Background.Float4()))
	s.Apply("u_blend_mode", Int1(u.BlendMode))
	s.Apply("u_factor", Float1(u.Factor))

	textures := TexturePair{First: p.empty, Second: p.empty}
	if p.state.hasTextures {
		textures = p.state.textures
	}
	s.Apply("u_texture1", UniformTexture{Unit: 0, Texture: textures.First})
	s.Apply("u_texture2", UniformTexture{Unit: 1, Texture: textures.Second})

	pipeline, err := s.pipeline(p.formatOf(id))
	if err != nil {
		return err
	}
	group, err := s.bindGroup()
	if err != nil {
		return err
	}
	if err := p.batchBinding.upload(p.queue, p.vertices, p.indices); err != nil {
		return err
	}
	if err := s.uploadUniforms(); err != nil {
		return err
	}

	encoder, pass, err := p.beginPass("painter_batch", view, data, load)
	if err != nil {
		return err
	}
	pass.SetPipeline(pipeline)
	pass.SetBindGroup(0, group, nil)
	pass.SetVertexBuffer(0, p.batchBinding.vertex, 0)
	pass.SetIndexBuffer(p.batchBinding.index, gputypes.IndexFormatUint16, 0)
	pass.DrawIndexed(uint32(p.quads*6), 1, 0, 0, 0) //nolint:gosec // bounded by MaxQuads
	pass.End()
	return p.submit(encoder)
}

// beginPass starts an encoder and a render pass on view with the viewport
// and scissor covering the whole target.
func (p *Painter) beginPass(label string, view hal.TextureView, data CanvasData, load gputypes.LoadOp) (hal.CommandEncoder, hal.RenderPassEncoder, error) {
	encoder, err := p.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: label})
	if err != nil {
		return nil, nil, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding(label); err != nil {
		encoder.Destroy()
		return nil, nil, fmt.Errorf("begin encoding: %w", err)
	}
	c := data.Color
	pass := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: label,
		ColorAttachments: []hal.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     load,
				StoreOp:    gputypes.StoreOpStore,
				ClearValue: gputypes.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B), A: float64(c.A)},
			},
		},
	})
	w, h := uint32(data.Size.W), uint32(data.Size.H) //nolint:gosec // sizes are positive
	pass.SetViewport(0, 0, float32(w), float32(h), 0, 1)
	pass.SetScissorRect(0, 0, w, h)
	return encoder, pass, nil
}

func (p *Painter) submit(encoder hal.CommandEncoder) error {
	cmd, err := encoder.EndEncoding()
	if err != nil {
		encoder.Destroy()
		return fmt.Errorf("end encoding: %w", err)
	}
	index, err := p.queue.Submit([]hal.CommandBuffer{cmd})
	if err != nil {
		p.device.FreeCommandBuffer(cmd)
		encoder.Destroy()
		return fmt.Errorf("submit: %w", err)
	}
	p.pending = append(p.pending, submission{index: index, encoder: encoder, buffer: cmd})
	return nil
}

// reclaim frees command buffers the GPU has finished with.
func (p *Painter) reclaim() {
	done := p.queue.PollCompleted()
	kept := p.pending[:0]
	for _, s := range p.pending {
		if s.index <= done {
			p.device.FreeCommandBuffer(s.buffer)
			s.encoder.Destroy()
			continue
		}
		kept = append(kept, s)
	}
	clear(p.pending[len(kept):])
	p.pending = kept
}

func (p *Painter) formatOf(id CanvasID) gputypes.TextureFormat {
	if id == Screen {
		return p.cfg.ScreenFormat
	}
	return canvasFormat
}

func (p *Painter) clearedThisFrame(id CanvasID) bool {
	if id == Screen {
		return p.screen.cleared
	}
	return p.Canvas(id).cleared
}

func (p *Painter) markCleared(id CanvasID) {
	if id == Screen {
		p.screen.cleared = true
		return
	}
	p.Canvas(id).cleared = true
}

// Clear flushes the current batch and clears a target to its color in a
// standalone pass, whatever its clear policy.
func (p *Painter) Clear(id CanvasID) {
	p.Draw()
	data := p.CanvasData(id)
	view := p.targetView(id)

	encoder, pass, err := p.beginPass("painter_clear", view, data, gputypes.LoadOpClear)
	if err == nil {
		pass.End()
		err = p.submit(encoder)
	}
	if err != nil {
		panic(fmt.Errorf("painter: clear %s: %w", id, err))
	}
	p.stats.Clears[id]++
	p.markCleared(id)
}

// BeginFrame starts a frame: every canvas becomes undamaged and eligible
// for its first-draw clear again.
func (p *Painter) BeginFrame() {
	p.reclaim()
	p.resetFrame()
	for _, c := range p.canvases {
		c.damaged = false
	}
}

// CommitFrame ends a frame: it flushes the last batch, then clears every
// canvas that nothing was drawn to this frame and whose policy is
// ClearEveryFrame.
func (p *Painter) CommitFrame() {
	p.Draw()
	for i, c := range p.canvases {
		if !c.damaged && c.data.Clear == ClearEveryFrame {
			p.Clear(CanvasID(i))
		}
	}
	p.resetFrame()
}

// resetFrame forgets per-frame clears. The next flush rebinds its target
// because the screen view changes between frames.
func (p *Painter) resetFrame() {
	for _, c := range p.canvases {
		c.cleared = false
	}
	p.screen.cleared = false
	p.targetChanged = true
}

// Stats returns a snapshot of the GPU work counters.
func (p *Painter) Stats() Stats {
	s := p.stats
	s.Clears = maps.Clone(p.stats.Clears)
	return s
}

// ResetStats zeroes the GPU work counters.
func (p *Painter) ResetStats() {
	p.stats = Stats{Clears: make(map[CanvasID]int)}
}

// Destroy waits for the device to go idle and releases every GPU object in
// reverse creation order. The Painter must not be used afterwards.
func (p *Painter) Destroy() {
	if p.device == nil {
		return
	}
	if err := p.device.WaitIdle(); err != nil {
		Logger().Warn("painter: wait idle before destroy", "err", err)
	}
	for _, s := range p.pending {
		p.device.FreeCommandBuffer(s.buffer)
		s.encoder.Destroy()
	}
	p.pending = nil

	for i := len(p.shaders) - 1; i >= 0; i-- {
		p.shaders[i].destroy()
	}
	for i := len(p.bindings) - 1; i >= 0; i-- {
		p.bindings[i].destroy(p.device)
	}
	for i := len(p.textures) - 1; i >= 0; i-- {
		p.textures[i].destroy(p.device)
	}
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
	}
	if p.groupLayout != nil {
		p.device.DestroyBindGroupLayout(p.groupLayout)
	}
	p.shaders, p.bindings, p.textures, p.canvases = nil, nil, nil, nil
	p.pipeLayout, p.groupLayout = nil, nil
	p.device, p.queue = nil, nil
	Logger().Debug("painter: destroyed")
}
