package shader

import (
	"fmt"
	"sort"

	"github.com/gogpu/naga/ir"
)

// ScalarKind is the scalar type underlying a reflected value.
type ScalarKind uint8

const (
	// KindOther covers matrices, arrays, structs and anything else that
	// cannot be set as a plain scalar or vector.
	KindOther ScalarKind = iota
	KindFloat
	KindSint
	KindUint
)

// String returns the kind name.
func (k ScalarKind) String() string {
	switch k {
	case KindFloat:
		return "f32"
	case KindSint:
		return "i32"
	case KindUint:
		return "u32"
	default:
		return "other"
	}
}

// Member is a field of a uniform block.
type Member struct {
	Name       string
	Offset     uint32
	Kind       ScalarKind
	Components int
}

// ResourceKind classifies bound globals.
type ResourceKind uint8

const (
	ResourceUniform ResourceKind = iota
	ResourceTexture
	ResourceSampler
)

// Resource is a global variable with a @group/@binding.
type Resource struct {
	Name    string
	Group   uint32
	Binding uint32
	Kind    ResourceKind
}

// Varying is a location-bound entry point input or output.
type Varying struct {
	Name       string
	Location   uint32
	Kind       ScalarKind
	Components int
}

func reflectModule(module *ir.Module, stage Stage) (*Module, error) {
	m := &Module{Stage: stage}

	var entry *ir.EntryPoint
	for i := range module.EntryPoints {
		if module.EntryPoints[i].Stage == stage.irStage() {
			entry = &module.EntryPoints[i]
			break
		}
	}
	if entry == nil {
		return nil, fmt.Errorf("%w %s", ErrNoEntryPoint, stage)
	}
	m.EntryPoint = entry.Name

	for _, g := range module.GlobalVariables {
		if g.Binding == nil {
			continue
		}
		res := Resource{Name: g.Name, Group: g.Binding.Group, Binding: g.Binding.Binding}
		inner := typeInner(module, g.Type)
		switch g.Space {
		case ir.SpaceUniform:
			res.Kind = ResourceUniform
			if st, ok := inner.(ir.StructType); ok {
				for _, mem := range st.Members {
					kind, n := describe(module, mem.Type)
					m.Members = append(m.Members, Member{
						Name: mem.Name, Offset: mem.Offset, Kind: kind, Components: n,
					})
				}
				if st.Span > m.UniformSize {
					m.UniformSize = st.Span
				}
			}
		case ir.SpaceHandle:
			switch inner.(type) {
			case ir.ImageType:
				res.Kind = ResourceTexture
			case ir.SamplerType:
				res.Kind = ResourceSampler
			default:
				continue
			}
		default:
			continue
		}
		m.Resources = append(m.Resources, res)
	}

	fn := &entry.Function
	for _, arg := range fn.Arguments {
		m.Inputs = appendVaryings(m.Inputs, module, arg.Name, arg.Type, arg.Binding)
	}
	if fn.Result != nil {
		m.Outputs = appendVaryings(m.Outputs, module, "", fn.Result.Type, fn.Result.Binding)
	}
	sortVaryings(m.Inputs)
	sortVaryings(m.Outputs)
	return m, nil
}

// appendVaryings collects location bindings from an argument or result,
// flattening struct members the way WGSL entry point IO structs work.
func appendVaryings(dst []Varying, module *ir.Module, name string, h ir.TypeHandle, binding *ir.Binding) []Varying {
	if binding != nil {
		if loc, ok := location(*binding); ok {
			kind, n := describe(module, h)
			return append(dst, Varying{Name: name, Location: loc, Kind: kind, Components: n})
		}
		return dst
	}
	st, ok := typeInner(module, h).(ir.StructType)
	if !ok {
		return dst
	}
	for _, mem := range st.Members {
		if mem.Binding == nil {
			continue
		}
		if loc, ok := location(*mem.Binding); ok {
			kind, n := describe(module, mem.Type)
			dst = append(dst, Varying{Name: mem.Name, Location: loc, Kind: kind, Components: n})
		}
	}
	return dst
}

func location(b ir.Binding) (uint32, bool) {
	switch lb := b.(type) {
	case ir.LocationBinding:
		return lb.Location, true
	case *ir.LocationBinding:
		return lb.Location, true
	}
	return 0, false
}

func typeInner(module *ir.Module, h ir.TypeHandle) ir.TypeInner {
	if int(h) >= len(module.Types) {
		return nil
	}
	return module.Types[h].Inner
}

// describe reports the scalar kind and component count of scalar and
// vector types; other types report KindOther with zero components.
func describe(module *ir.Module, h ir.TypeHandle) (ScalarKind, int) {
	switch t := typeInner(module, h).(type) {
	case ir.ScalarType:
		return scalarKind(t.Kind), 1
	case ir.VectorType:
		return scalarKind(t.Scalar.Kind), int(t.Size)
	}
	return KindOther, 0
}

func scalarKind(k ir.ScalarKind) ScalarKind {
	switch k {
	case ir.ScalarFloat:
		return KindFloat
	case ir.ScalarSint:
		return KindSint
	case ir.ScalarUint:
		return KindUint
	}
	return KindOther
}

func sortVaryings(v []Varying) {
	sort.Slice(v, func(i, j int) bool { return v[i].Location < v[j].Location })
}
