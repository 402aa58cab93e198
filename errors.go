package painter

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by painter constructors.
var (
	// ErrNilDevice is returned when New receives a nil device or queue.
	ErrNilDevice = errors.New("painter: nil device or queue")

	// ErrBatchCapacity is returned when the configured batch size is not
	// positive or exceeds what 16-bit indices can address.
	ErrBatchCapacity = errors.New("painter: invalid batch capacity")

	// ErrTextureSize is returned when a texture or canvas has an empty size.
	ErrTextureSize = errors.New("painter: invalid texture size")

	// ErrVertexLayout is returned when a shader's vertex inputs do not match
	// the binding layout.
	ErrVertexLayout = errors.New("painter: vertex layout mismatch")

	// ErrNoProviderDevice is returned when a device provider does not expose
	// a hal device and queue.
	ErrNoProviderDevice = errors.New("painter: provider has no hal device")
)

// ShaderErrorKind categorizes shader failures.
type ShaderErrorKind uint8

const (
	// CompileVertex means the vertex source did not compile.
	CompileVertex ShaderErrorKind = iota
	// CompileFragment means the fragment source did not compile.
	CompileFragment
	// Link means both stages compiled but cannot form a program.
	Link
)

// String returns the kind name.
func (k ShaderErrorKind) String() string {
	switch k {
	case CompileVertex:
		return "CompileVertex"
	case CompileFragment:
		return "CompileFragment"
	case Link:
		return "Link"
	default:
		return fmt.Sprintf("ShaderErrorKind(%d)", k)
	}
}

// ShaderError is returned by NewShader. Log carries the compiler's
// diagnostic text.
type ShaderError struct {
	Kind ShaderErrorKind
	Log  string

	err error
}

// Error implements the error interface.
func (e *ShaderError) Error() string {
	switch e.Kind {
	case CompileVertex:
		return "failed to compile vertex shader: " + e.Log
	case CompileFragment:
		return "failed to compile fragment shader: " + e.Log
	default:
		return "failed to link shader: " + e.Log
	}
}

// Unwrap returns the underlying compiler or device error.
func (e *ShaderError) Unwrap() error {
	return e.err
}

func newShaderError(kind ShaderErrorKind, err error) *ShaderError {
	return &ShaderError{Kind: kind, Log: err.Error(), err: err}
}
