// Package shader compiles single WGSL stages with naga and reflects the
// parts of a stage the painter binds by name: uniform struct members,
// texture and sampler globals, and the location-bound stage interface.
//
// Each stage is compiled on its own so compile failures can be attributed
// to the vertex or the fragment source. Link checks the two reflected
// stages against each other.
package shader
