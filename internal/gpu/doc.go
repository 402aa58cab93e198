// Package gpu holds the small hal helpers the painter shares: quad index
// generation, vertex and index serialization, pixel conversion and
// opening headless backends.
package gpu
