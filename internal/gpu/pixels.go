package gpu

// RGBToRGBA converts 3-byte-per-pixel RGB data to 4-byte-per-pixel RGBA,
// setting alpha to 255 for every pixel. GPU textures are always RGBA8.
func RGBToRGBA(rgb []byte, width, height int) []byte {
	pixelCount := width * height
	rgba := make([]byte, pixelCount*4)
	for i := 0; i < pixelCount; i++ {
		srcOff := i * 3
		dstOff := i * 4
		rgba[dstOff+0] = rgb[srcOff+0]
		rgba[dstOff+1] = rgb[srcOff+1]
		rgba[dstOff+2] = rgb[srcOff+2]
		rgba[dstOff+3] = 255
	}
	return rgba
}

// Solid returns width*height RGBA8 pixels of one color.
func Solid(width, height int, r, g, b, a byte) []byte {
	px := make([]byte, width*height*4)
	for i := 0; i < len(px); i += 4 {
		px[i+0] = r
		px[i+1] = g
		px[i+2] = b
		px[i+3] = a
	}
	return px
}
