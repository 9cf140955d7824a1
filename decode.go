package qoi

// Decode parses a framed qoi byte stream into a row-major pixel buffer
// with channels channels per pixel (3 or 4), returning the image's
// width and height. The source image's own channel count is not
// recorded on the wire; callers request whichever of 3 or 4 they want
// and alpha is synthesized (always 255, by construction, when the
// source never set it) or dropped as needed.
func Decode(data []byte, channels int) (pixels []byte, width, height int, err error) {
	if channels != 3 && channels != 4 {
		return nil, 0, 0, invalidArgumentf("channels %d must be 3 or 4", channels)
	}
	h, err := parseHeader(data)
	if err != nil {
		return nil, 0, 0, err
	}

	body := data[headerSize:]
	width, height = int(h.width), int(h.height)
	pxLen := width * height * channels
	pixels = make([]byte, pxLen)

	var idx index
	var run int
	px := seedPixel
	pos := 0 // read cursor into body

	for out := 0; out < pxLen; out += channels {
		if run > 0 {
			run--
		} else {
			px, pos, run, err = decodeChunk(body, pos, &idx, px)
			if err != nil {
				return nil, 0, 0, err
			}
		}

		// The index is rewritten on every pixel, including run
		// replay and INDEX hits: this is the decoder's "always
		// write" rule the design notes call out as simpler than,
		// and equivalent to, the encoder's sparser write discipline.
		idx.set(px.hash(), px)

		pixels[out] = px.R
		pixels[out+1] = px.G
		pixels[out+2] = px.B
		if channels == 4 {
			pixels[out+3] = px.A
		}
	}

	return pixels, width, height, nil
}

// decodeChunk reads one fresh chunk starting at body[pos], returning
// the decoded pixel, the new read cursor, and the number of further
// pixels to replay: for RUN_8/RUN_16 the run length minus one, since the
// current pixel already accounts for one step of the run, and 0 for
// every other chunk kind.
func decodeChunk(body []byte, pos int, idx *index, prev Pixel) (Pixel, int, int, error) {
	b1, ok := readByte(body, pos)
	if !ok {
		return Pixel{}, 0, 0, truncatedf("truncated reading chunk discriminator at offset %d", pos)
	}
	pos++

	switch classify(b1) {
	case chunkIndex:
		return idx.get(b1 & 0x3F), pos, 0, nil

	case chunkRun8:
		runLen := int(b1&0x1F) + run8Min
		return prev, pos, runLen - 1, nil

	case chunkRun16:
		b2, ok := readByte(body, pos)
		if !ok {
			return Pixel{}, 0, 0, truncatedf("truncated RUN_16 at offset %d", pos)
		}
		pos++
		runLen := (int(b1&0x1F)<<8 | int(b2)) + run16Min
		return prev, pos, runLen - 1, nil

	case chunkDiff8:
		px := prev
		px.R += ((b1 >> 4) & 0x3) - 1
		px.G += ((b1 >> 2) & 0x3) - 1
		px.B += (b1 & 0x3) - 1
		return px, pos, 0, nil

	case chunkDiff16:
		b2, ok := readByte(body, pos)
		if !ok {
			return Pixel{}, 0, 0, truncatedf("truncated DIFF_16 at offset %d", pos)
		}
		pos++
		px := prev
		px.R += (b1 & 0x1F) - 15
		px.G += (b2 >> 4) - 7
		px.B += (b2 & 0x0F) - 7
		return px, pos, 0, nil

	case chunkDiff24:
		b2, ok := readByte(body, pos)
		if !ok {
			return Pixel{}, 0, 0, truncatedf("truncated DIFF_24 at offset %d", pos)
		}
		pos++
		b3, ok := readByte(body, pos)
		if !ok {
			return Pixel{}, 0, 0, truncatedf("truncated DIFF_24 at offset %d", pos)
		}
		pos++
		px := prev
		px.R += (((b1 & 0x0F) << 1) | (b2 >> 7)) - 15
		px.G += ((b2 & 0x7C) >> 2) - 15
		px.B += (((b2 & 0x03) << 3) | ((b3 & 0xE0) >> 5)) - 15
		px.A += (b3 & 0x1F) - 15
		return px, pos, 0, nil

	default: // chunkColor
		px := prev
		if b1&0x8 != 0 {
			v, ok := readByte(body, pos)
			if !ok {
				return Pixel{}, 0, 0, truncatedf("truncated COLOR.R at offset %d", pos)
			}
			px.R = v
			pos++
		}
		if b1&0x4 != 0 {
			v, ok := readByte(body, pos)
			if !ok {
				return Pixel{}, 0, 0, truncatedf("truncated COLOR.G at offset %d", pos)
			}
			px.G = v
			pos++
		}
		if b1&0x2 != 0 {
			v, ok := readByte(body, pos)
			if !ok {
				return Pixel{}, 0, 0, truncatedf("truncated COLOR.B at offset %d", pos)
			}
			px.B = v
			pos++
		}
		if b1&0x1 != 0 {
			v, ok := readByte(body, pos)
			if !ok {
				return Pixel{}, 0, 0, truncatedf("truncated COLOR.A at offset %d", pos)
			}
			px.A = v
			pos++
		}
		return px, pos, 0, nil
	}
}

func readByte(body []byte, pos int) (byte, bool) {
	if pos >= len(body) {
		return 0, false
	}
	return body[pos], true
}
