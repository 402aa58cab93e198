package painter

import (
	"encoding/binary"
	"fmt"
	"math"
	"slices"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/painter/internal/shader"
)

// Bind group layout shared by every painter shader:
//
//	binding 0: uniform block (vertex + fragment)
//	binding 1, 2: texture slots 0 and 1 (fragment)
//	binding 3, 4: samplers of texture slots 0 and 1 (fragment)
const (
	uniformBinding  = 0
	textureSlots    = 2
	maxTextureUnits = 8
)

var programLayout = shader.Layout{
	UniformBinding: uniformBinding,
	Textures:       []uint32{1, 2},
	Samplers:       []uint32{3, 4},
}

type slotKind uint8

const (
	slotMember slotKind = iota
	slotTexture
)

type uniformSlot struct {
	kind    slotKind
	member  shader.Member
	texture int
}

// TexturePair is the two textures a batch samples. It is comparable and
// used as part of the batch key.
type TexturePair struct {
	First, Second *Texture
}

// Shader is a linked vertex and fragment program with its uniform table.
// It is immutable once created except for the uniform values and texture
// units set through Apply.
type Shader struct {
	p *Painter

	vs, fs   *shader.Module
	vsModule hal.ShaderModule
	fsModule hal.ShaderModule
	layout   VertexLayout

	uniforms map[string]uniformSlot
	block    []byte
	ubo      hal.Buffer

	units    [maxTextureUnits]*Texture
	slotUnit [textureSlots]int

	pipelines map[gputypes.TextureFormat]hal.RenderPipeline
	groups    map[TexturePair]hal.BindGroup
}

// NewShader compiles WGSL vertex and fragment sources, links them and
// resolves uniformNames. Names the program does not declare are left out
// of the uniform table. Failures are reported as *ShaderError.
func (p *Painter) NewShader(vertexSource, fragmentSource string, uniformNames []string) (*Shader, error) {
	return p.newShader(vertexSource, fragmentSource, uniformNames, quadLayout)
}

func (p *Painter) newShader(vertexSource, fragmentSource string, uniformNames []string, layout VertexLayout) (*Shader, error) {
	vs, err := shader.Compile(shader.StageVertex, vertexSource)
	if err != nil {
		return nil, newShaderError(CompileVertex, err)
	}
	fs, err := shader.Compile(shader.StageFragment, fragmentSource)
	if err != nil {
		return nil, newShaderError(CompileFragment, err)
	}
	if err := shader.Link(vs, fs, programLayout); err != nil {
		return nil, newShaderError(Link, err)
	}
	if err := checkVertexInputs(vs, layout); err != nil {
		return nil, newShaderError(Link, err)
	}

	s := &Shader{
		p:         p,
		vs:        vs,
		fs:        fs,
		layout:    layout,
		uniforms:  make(map[string]uniformSlot),
		slotUnit:  [textureSlots]int{0, 1},
		pipelines: make(map[gputypes.TextureFormat]hal.RenderPipeline),
		groups:    make(map[TexturePair]hal.BindGroup),
	}
	if err := s.create(); err != nil {
		s.destroy()
		return nil, newShaderError(Link, err)
	}
	s.resolve(uniformNames)

	// The canvas pipeline is built eagerly so device rejections surface
	// here instead of at the first flush.
	if _, err := s.pipeline(canvasFormat); err != nil {
		s.destroy()
		return nil, newShaderError(Link, err)
	}

	p.shaders = append(p.shaders, s)
	Logger().Debug("painter: shader linked",
		"vertex_entry", vs.EntryPoint,
		"fragment_entry", fs.EntryPoint,
		"uniforms", len(s.uniforms),
		"block_size", len(s.block))
	return s, nil
}

func (s *Shader) create() error {
	device := s.p.device
	var err error
	s.vsModule, err = device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "painter_vertex_" + s.vs.EntryPoint,
		Source: hal.ShaderSource{WGSL: s.vs.Source, SPIRV: s.vs.SPIRV},
	})
	if err != nil {
		return fmt.Errorf("create vertex module: %w", err)
	}
	s.fsModule, err = device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "painter_fragment_" + s.fs.EntryPoint,
		Source: hal.ShaderSource{WGSL: s.fs.Source, SPIRV: s.fs.SPIRV},
	})
	if err != nil {
		return fmt.Errorf("create fragment module: %w", err)
	}

	size := max(s.vs.UniformSize, s.fs.UniformSize, 16)
	size = (size + 15) &^ 15
	s.block = make([]byte, size)
	s.ubo, err = device.CreateBuffer(&hal.BufferDescriptor{
		Label: "painter_uniforms",
		Size:  uint64(size),
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create uniform buffer: %w", err)
	}
	return nil
}

// resolve builds the uniform table from the names the program declares.
func (s *Shader) resolve(names []string) {
	for _, name := range names {
		if m, ok := s.vs.Member(name); ok {
			s.uniforms[name] = uniformSlot{kind: slotMember, member: m}
			continue
		}
		if m, ok := s.fs.Member(name); ok {
			s.uniforms[name] = uniformSlot{kind: slotMember, member: m}
			continue
		}
		if r, ok := s.fs.Resource(name); ok && r.Kind == shader.ResourceTexture {
			s.uniforms[name] = uniformSlot{kind: slotTexture, texture: textureSlot(r.Binding)}
		}
	}
}

// textureSlot maps a texture binding to its slot index.
func textureSlot(binding uint32) int {
	return slices.Index(programLayout.Textures, binding)
}

// Has reports whether name is in the uniform table.
func (s *Shader) Has(name string) bool {
	_, ok := s.uniforms[name]
	return ok
}

// Uniforms returns the sorted names of the uniform table.
func (s *Shader) Uniforms() []string {
	names := make([]string, 0, len(s.uniforms))
	for name := range s.uniforms {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Apply sets a uniform. Names outside the uniform table are ignored; a
// value whose type does not match the declaration panics.
func (s *Shader) Apply(name string, value Uniform) {
	slot, ok := s.uniforms[name]
	if !ok {
		return
	}
	switch v := value.(type) {
	case UniformTexture:
		if slot.kind != slotTexture {
			panic(fmt.Sprintf("painter: uniform %q is not a texture", name))
		}
		if v.Unit < 0 || v.Unit >= maxTextureUnits {
			panic(fmt.Sprintf("painter: texture unit %d out of range [0, %d)", v.Unit, maxTextureUnits))
		}
		s.units[v.Unit] = v.Texture
		s.slotUnit[slot.texture] = v.Unit
	case Float1:
		s.write(name, slot, shader.KindFloat, math.Float32bits(float32(v)))
	case Float2:
		s.write(name, slot, shader.KindFloat, math.Float32bits(v[0]), math.Float32bits(v[1]))
	case Float3:
		s.write(name, slot, shader.KindFloat, math.Float32bits(v[0]), math.Float32bits(v[1]), math.Float32bits(v[2]))
	case Float4:
		s.write(name, slot, shader.KindFloat,
			math.Float32bits(v[0]), math.Float32bits(v[1]), math.Float32bits(v[2]), math.Float32bits(v[3]))
	case Int1:
		s.write(name, slot, shader.KindSint, uint32(v)) //nolint:gosec // two's complement bits
	case Int2:
		s.write(name, slot, shader.KindSint, uint32(v[0]), uint32(v[1])) //nolint:gosec // two's complement bits
	default:
		panic(fmt.Sprintf("painter: unsupported uniform value %T", value))
	}
}

func (s *Shader) write(name string, slot uniformSlot, kind shader.ScalarKind, words ...uint32) {
	m := slot.member
	if slot.kind != slotMember || m.Kind != kind || m.Components != len(words) {
		panic(fmt.Sprintf("painter: uniform %q is %s x%d, got %s x%d",
			name, m.Kind, m.Components, kind, len(words)))
	}
	for i, w := range words {
		binary.LittleEndian.PutUint32(s.block[int(m.Offset)+i*4:], w)
	}
}

// Unit returns the texture bound to a unit.
func (s *Shader) Unit(unit int) *Texture {
	return s.units[unit]
}

// textures returns the textures sampled by the two slots, substituting
// the empty texture for unbound units.
func (s *Shader) textures() TexturePair {
	pick := func(slot int) *Texture {
		if t := s.units[s.slotUnit[slot]]; t != nil {
			return t
		}
		return s.p.empty
	}
	return TexturePair{First: pick(0), Second: pick(1)}
}

func (s *Shader) uploadUniforms() error {
	if err := s.p.queue.WriteBuffer(s.ubo, 0, s.block); err != nil {
		return fmt.Errorf("write uniforms: %w", err)
	}
	return nil
}

// bindGroup returns the cached bind group for the current texture units.
func (s *Shader) bindGroup() (hal.BindGroup, error) {
	key := s.textures()
	if g, ok := s.groups[key]; ok {
		return g, nil
	}
	g, err := s.p.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "painter_bind_group",
		Layout: s.p.groupLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{Buffer: s.ubo.NativeHandle(), Offset: 0, Size: uint64(len(s.block))}},
			{Binding: 1, Resource: gputypes.TextureViewBinding{TextureView: key.First.view.NativeHandle()}},
			{Binding: 2, Resource: gputypes.TextureViewBinding{TextureView: key.Second.view.NativeHandle()}},
			{Binding: 3, Resource: gputypes.SamplerBinding{Sampler: key.First.sampler.NativeHandle()}},
			{Binding: 4, Resource: gputypes.SamplerBinding{Sampler: key.Second.sampler.NativeHandle()}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create bind group: %w", err)
	}
	s.groups[key] = g
	Logger().Debug("painter: bind group created", "cached", len(s.groups))
	return g, nil
}

// pipeline returns the render pipeline for a target format, creating it on
// first use.
func (s *Shader) pipeline(format gputypes.TextureFormat) (hal.RenderPipeline, error) {
	if pl, ok := s.pipelines[format]; ok {
		return pl, nil
	}
	blend := gputypes.BlendStateAlpha()
	pl, err := s.p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "painter_pipeline",
		Layout: s.p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     s.vsModule,
			EntryPoint: s.vs.EntryPoint,
			Buffers:    s.layout.bufferLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     s.fsModule,
			EntryPoint: s.fs.EntryPoint,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    format,
					Blend:     &blend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create render pipeline for %v: %w", format, err)
	}
	s.pipelines[format] = pl
	return pl, nil
}

func (s *Shader) destroy() {
	device := s.p.device
	for k, g := range s.groups {
		device.DestroyBindGroup(g)
		delete(s.groups, k)
	}
	for k, pl := range s.pipelines {
		device.DestroyRenderPipeline(pl)
		delete(s.pipelines, k)
	}
	if s.ubo != nil {
		device.DestroyBuffer(s.ubo)
		s.ubo = nil
	}
	if s.fsModule != nil {
		device.DestroyShaderModule(s.fsModule)
		s.fsModule = nil
	}
	if s.vsModule != nil {
		device.DestroyShaderModule(s.vsModule)
		s.vsModule = nil
	}
}

// checkVertexInputs verifies the vertex stage reads exactly layout, one
// float attribute per location starting at zero.
func checkVertexInputs(vs *shader.Module, layout VertexLayout) error {
	if len(vs.Inputs) != len(layout) {
		return fmt.Errorf("%w: vertex stage has %d inputs, layout has %d",
			ErrVertexLayout, len(vs.Inputs), len(layout))
	}
	for i, in := range vs.Inputs {
		attr := layout[i]
		if int(in.Location) != i || in.Kind != shader.KindFloat || in.Components != attr.Components() {
			return fmt.Errorf("%w: input %q at location %d is %s x%d, layout expects f32 x%d at location %d",
				ErrVertexLayout, in.Name, in.Location, in.Kind, in.Components, attr.Components(), i)
		}
	}
	return nil
}
