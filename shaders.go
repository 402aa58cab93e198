package painter

import _ "embed"

// Built-in batch shader sources.
var (
	//go:embed shaders/painter.vert.wgsl
	batchVertexSource string

	//go:embed shaders/painter.frag.wgsl
	batchFragmentSource string
)

// batchUniformNames are the uniforms the batch flush sets.
var batchUniformNames = []string{
	"u_texture1",
	"u_texture2",
	"u_view_size_px",
	"u_flags",
	"u_foreground",
	"u_background",
	"u_blend_mode",
	"u_factor",
}

// BatchShaderSources returns the WGSL sources of the built-in batch
// shader. They document the vertex layout, bindings and uniform block
// every batch is drawn with. Batches always use the built-in shader; a
// Shader created from these sources with NewShader can be inspected and
// given uniforms but does not replace it.
func BatchShaderSources() (vertex, fragment string) {
	return batchVertexSource, batchFragmentSource
}
