package qoi

// index is the 64-slot table of recently-seen colors shared by the
// encoder and decoder. All slots start at the zero pixel (0,0,0,0),
// which is distinct from the seed predictor (0,0,0,255) and therefore
// never collides with it on the first write.
type index [64]Pixel

func (idx *index) get(slot uint8) Pixel {
	return idx[slot]
}

func (idx *index) set(slot uint8, p Pixel) {
	idx[slot] = p
}
