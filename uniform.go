package painter

// Uniform is a value for Shader.Apply: one of Float1, Float2, Float3,
// Float4, Int1, Int2 or UniformTexture.
type Uniform interface {
	uniform()
}

// Scalar and vector uniform values.
type (
	Float1 float32
	Float2 [2]float32
	Float3 [3]float32
	Float4 [4]float32
	Int1   int32
	Int2   [2]int32
)

// UniformTexture activates texture unit Unit with Texture and routes the
// named texture global to that unit.
type UniformTexture struct {
	Unit    int
	Texture *Texture
}

func (Float1) uniform()         {}
func (Float2) uniform()         {}
func (Float3) uniform()         {}
func (Float4) uniform()         {}
func (Int1) uniform()           {}
func (Int2) uniform()           {}
func (UniformTexture) uniform() {}
