package shader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
	"github.com/gogpu/naga/spirv"
)

// Compilation errors.
var (
	// ErrNoEntryPoint is returned when a source has no entry point for the
	// requested stage.
	ErrNoEntryPoint = errors.New("shader: no entry point for stage")

	// ErrInvalid is returned when naga rejects the lowered module.
	ErrInvalid = errors.New("shader: validation failed")
)

// Stage identifies a programmable pipeline stage.
type Stage uint8

const (
	// StageVertex is the vertex stage.
	StageVertex Stage = iota
	// StageFragment is the fragment stage.
	StageFragment
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return fmt.Sprintf("Stage(%d)", s)
	}
}

func (s Stage) irStage() ir.ShaderStage {
	if s == StageFragment {
		return ir.StageFragment
	}
	return ir.StageVertex
}

// Module is a compiled and reflected shader stage.
type Module struct {
	Stage      Stage
	EntryPoint string

	// Source is the WGSL text the module was compiled from.
	Source string
	// SPIRV holds the generated SPIR-V words (little-endian decoded).
	SPIRV []uint32

	// UniformSize is the byte span of the largest uniform block, zero when
	// the stage declares none.
	UniformSize uint32
	Members     []Member
	Resources   []Resource
	Inputs      []Varying
	Outputs     []Varying
}

// Compile parses, lowers, validates and reflects a WGSL stage, then
// generates SPIR-V for it. The returned error text is naga's diagnostic.
func Compile(stage Stage, source string) (*Module, error) {
	ast, err := naga.Parse(source)
	if err != nil {
		return nil, err
	}
	module, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return nil, err
	}
	verrs, err := naga.Validate(module)
	if err != nil {
		return nil, err
	}
	if len(verrs) > 0 {
		msgs := make([]string, len(verrs))
		for i, v := range verrs {
			msgs[i] = v.Error()
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
	}

	m, err := reflectModule(module, stage)
	if err != nil {
		return nil, err
	}
	m.Source = source

	spirvBytes, err := naga.GenerateSPIRV(module, spirv.Options{Version: spirv.Version1_3})
	if err != nil {
		return nil, err
	}
	m.SPIRV = bytesToWords(spirvBytes)

	logger().Debug("shader: compiled stage",
		"stage", stage.String(),
		"entry", m.EntryPoint,
		"members", len(m.Members),
		"resources", len(m.Resources),
		"spirv_words", len(m.SPIRV))
	return m, nil
}

// bytesToWords converts SPIR-V bytes to little-endian 32-bit words.
func bytesToWords(b []byte) []uint32 {
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = uint32(b[i*4]) |
			uint32(b[i*4+1])<<8 |
			uint32(b[i*4+2])<<16 |
			uint32(b[i*4+3])<<24
	}
	return words
}

// Member looks up a uniform struct member by name.
func (m *Module) Member(name string) (Member, bool) {
	for _, mem := range m.Members {
		if mem.Name == name {
			return mem, true
		}
	}
	return Member{}, false
}

// Resource looks up a bound global by name.
func (m *Module) Resource(name string) (Resource, bool) {
	for _, r := range m.Resources {
		if r.Name == name {
			return r, true
		}
	}
	return Resource{}, false
}
