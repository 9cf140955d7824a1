package qoi

// Pixel is an ordered 4-tuple of 8-bit channels. Two pixels are equal
// when every channel matches.
type Pixel struct {
	R, G, B, A uint8
}

// seedPixel is the predictor value before the first sample of an image:
// fully opaque black, regardless of whether the source is 3- or 4-channel.
var seedPixel = Pixel{R: 0, G: 0, B: 0, A: 255}

// hash reduces a pixel to its 64-entry index slot. Collisions are expected
// and are resolved by unconditional overwrite; this is not a cryptographic
// property.
func (p Pixel) hash() uint8 {
	return (p.R ^ p.G ^ p.B ^ p.A) % 64
}
