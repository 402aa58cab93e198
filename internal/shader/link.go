package shader

import (
	"errors"
	"fmt"
	"slices"
)

// ErrLink is returned when two stages cannot form one program.
var ErrLink = errors.New("shader: stages do not link")

// Layout lists the bind group slots a program may occupy. All resources
// live in group 0.
type Layout struct {
	UniformBinding uint32
	Textures       []uint32
	Samplers       []uint32
}

// Link checks that the fragment stage consumes only what the vertex stage
// produces, that uniform members both stages declare agree on layout, and
// that every bound global fits the layout.
func Link(vs, fs *Module, layout Layout) error {
	if vs.Stage != StageVertex || fs.Stage != StageFragment {
		return fmt.Errorf("%w: got %s and %s stages", ErrLink, vs.Stage, fs.Stage)
	}

	for _, in := range fs.Inputs {
		out, ok := findLocation(vs.Outputs, in.Location)
		if !ok {
			return fmt.Errorf("%w: fragment input %q at location %d has no vertex output",
				ErrLink, in.Name, in.Location)
		}
		if out.Kind != in.Kind || out.Components != in.Components {
			return fmt.Errorf("%w: location %d is %s x%d in vertex stage but %s x%d in fragment stage",
				ErrLink, in.Location, out.Kind, out.Components, in.Kind, in.Components)
		}
	}

	for _, fm := range fs.Members {
		vm, ok := vs.Member(fm.Name)
		if !ok {
			continue
		}
		if vm != fm {
			return fmt.Errorf("%w: uniform %q differs between stages (offset %d vs %d)",
				ErrLink, fm.Name, vm.Offset, fm.Offset)
		}
	}

	for _, m := range []*Module{vs, fs} {
		for _, r := range m.Resources {
			if err := checkResource(r, layout); err != nil {
				return fmt.Errorf("%w: %s stage: %w", ErrLink, m.Stage, err)
			}
		}
	}
	return nil
}

func checkResource(r Resource, layout Layout) error {
	if r.Group != 0 {
		return fmt.Errorf("%q uses group %d, only group 0 is bound", r.Name, r.Group)
	}
	var ok bool
	switch r.Kind {
	case ResourceUniform:
		ok = r.Binding == layout.UniformBinding
	case ResourceTexture:
		ok = slices.Contains(layout.Textures, r.Binding)
	case ResourceSampler:
		ok = slices.Contains(layout.Samplers, r.Binding)
	}
	if !ok {
		return fmt.Errorf("%q at binding %d does not match the bind group layout", r.Name, r.Binding)
	}
	return nil
}

func findLocation(vs []Varying, loc uint32) (Varying, bool) {
	for _, v := range vs {
		if v.Location == loc {
			return v, true
		}
	}
	return Varying{}, false
}
