package qoi

// Encode compresses a row-major pixel buffer into a framed qoi byte
// stream. pixels must hold at least width*height*channels bytes, in
// R,G,B[,A] order per pixel (any bytes past that are ignored); channels
// must be 3 or 4; width and height
// must each be in 1..=65535.
func Encode(pixels []byte, width, height, channels int) ([]byte, error) {
	if width <= 0 || width > 65535 {
		return nil, invalidArgumentf("width %d out of range", width)
	}
	if height <= 0 || height > 65535 {
		return nil, invalidArgumentf("height %d out of range", height)
	}
	if channels != 3 && channels != 4 {
		return nil, invalidArgumentf("channels %d must be 3 or 4", channels)
	}
	pxLen := width * height * channels
	if len(pixels) < pxLen {
		return nil, invalidArgumentf("pixel buffer has %d bytes, need %d", len(pixels), pxLen)
	}

	maxSize := width*height*(channels+1) + minStreamSize
	out := make([]byte, 0, maxSize)
	buf := encodeHeader(uint16(width), uint16(height))
	out = append(out, buf[:]...)

	var idx index
	var run int
	prev := seedPixel
	px := prev

	pxEnd := pxLen - channels

	for pos := 0; pos < pxLen; pos += channels {
		px.R = pixels[pos]
		px.G = pixels[pos+1]
		px.B = pixels[pos+2]
		if channels == 4 {
			px.A = pixels[pos+3]
		}

		if px == prev {
			run++
		}

		if run > 0 && (run == run16Max || px != prev || pos == pxEnd) {
			out = appendRun(out, run)
			run = 0
		}

		if px != prev {
			out = encodePixel(out, &idx, prev, px)
		}

		prev = px
	}

	out = append(out, make([]byte, paddingSize)...)
	size := uint32(len(out) - headerSize)
	patchSize(out, size)
	return out, nil
}

// appendRun flushes an accumulated run as RUN_8 (length 1..=32) or
// RUN_16 (length 33..=8224).
func appendRun(out []byte, run int) []byte {
	if run <= run8Max {
		return append(out, byte(chunkRun8|(run-1)))
	}
	n := run - run16Min
	return append(out, byte(chunkRun16|(n>>8)), byte(n))
}

// encodePixel emits exactly one fresh (non-run) chunk for px, trying
// INDEX first, then DIFF_8 -> DIFF_16 -> DIFF_24 -> COLOR in order of
// increasing size. The index is written only here, never on a run
// continuation or an INDEX hit (the slot already equals px in that case).
func encodePixel(out []byte, idx *index, prev, px Pixel) []byte {
	slot := px.hash()
	if idx.get(slot) == px {
		return append(out, byte(chunkIndex|slot))
	}
	idx.set(slot, px)

	dr := int(px.R) - int(prev.R)
	dg := int(px.G) - int(prev.G)
	db := int(px.B) - int(prev.B)
	da := int(px.A) - int(prev.A)

	if da == 0 && inRange(dr, -1, 2) && inRange(dg, -1, 2) && inRange(db, -1, 2) {
		return append(out, byte(chunkDiff8|(dr+1)<<4|(dg+1)<<2|(db+1)))
	}
	if da == 0 && inRange(dr, -15, 16) && inRange(dg, -7, 8) && inRange(db, -7, 8) {
		return append(out,
			byte(chunkDiff16|(dr+15)),
			byte((dg+7)<<4|(db+7)),
		)
	}
	if inRange(dr, -15, 16) && inRange(dg, -15, 16) && inRange(db, -15, 16) && inRange(da, -15, 16) {
		b1 := byte(chunkDiff24 | ((dr + 15) >> 1))
		b2 := byte((dr+15)<<7) | byte((dg+15)<<2) | byte((db+15)>>3)
		b3 := byte((db+15)<<5) | byte(da+15)
		return append(out, b1, b2, b3)
	}

	mask := byte(0)
	if dr != 0 {
		mask |= 0x8
	}
	if dg != 0 {
		mask |= 0x4
	}
	if db != 0 {
		mask |= 0x2
	}
	if da != 0 {
		mask |= 0x1
	}
	out = append(out, chunkColor|mask)
	if dr != 0 {
		out = append(out, px.R)
	}
	if dg != 0 {
		out = append(out, px.G)
	}
	if db != 0 {
		out = append(out, px.B)
	}
	if da != 0 {
		out = append(out, px.A)
	}
	return out
}

func inRange(v, lo, hi int) bool {
	return v >= lo && v <= hi
}
