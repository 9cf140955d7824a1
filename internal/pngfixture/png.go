package pngfixture

import (
	"bytes"
	"compress/zlib"
	"io"
	"slices"

	"github.com/pkg/errors"
)

var pngSignature = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// Png is a parsed chunk stream: the IHDR, the ordered IDAT chunks, and
// the IEND sentinel. Adapted from the teacher's Png struct, stripped
// of the ancillary-chunk fields (TEXTs, ZTXTs, TIME) it carried.
type Png struct {
	IHDR   *IHDR
	IDATs  []*IDAT
	IEND   *IEND
	chunks []*chunk
}

func ParsePng(r io.Reader) (*Png, error) {
	var sig [8]byte
	if _, err := io.ReadFull(r, sig[:]); err != nil {
		return nil, errors.WithStack(err)
	}
	if !bytes.Equal(sig[:], pngSignature) {
		return nil, errors.New("invalid png signature")
	}

	p := &Png{}
	for {
		c, err := readChunk(r)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		p.chunks = append(p.chunks, c)
		if ChunkName(c.code[:]) == IENDChunk {
			break
		}
	}
	if err := p.parseBaseChunk(); err != nil {
		return nil, errors.WithStack(err)
	}
	return p, nil
}

var chunkNotFoundErr = errors.New("chunk not found")

func (p *Png) parseChunk(c ChunkParse) error {
	remaining := slices.Clone(p.chunks)
	for i := range p.chunks {
		if p.chunks[i] == nil || ChunkName(p.chunks[i].code[:]) != c.ChunkName() {
			continue
		}
		if err := c.Parse(p.chunks[i]); err != nil {
			return errors.WithStack(err)
		}
		if i != len(remaining)-1 {
			remaining = append(remaining[:i], remaining[i+1:]...)
		} else {
			remaining = remaining[:i]
		}
		p.chunks = remaining
		return nil
	}
	return chunkNotFoundErr
}

func (p *Png) parseBaseChunk() error {
	ihdr := &IHDR{}
	if err := p.parseChunk(ihdr); err != nil {
		return errors.WithStack(err)
	}
	p.IHDR = ihdr

	var idats []*IDAT
	for {
		idat := &IDAT{}
		if err := p.parseChunk(idat); err != nil {
			if errors.Is(err, chunkNotFoundErr) {
				break
			}
			return errors.WithStack(err)
		}
		idats = append(idats, idat)
	}
	if len(idats) == 0 {
		return errors.New("no IDAT found")
	}
	p.IDATs = idats

	iend := &IEND{}
	if err := p.parseChunk(iend); err != nil {
		return errors.WithStack(err)
	}
	p.IEND = iend
	return nil
}

// Decode validates that the image matches exactly the pixel model qoi
// understands — 8-bit depth, no interlacing, truecolor (color type 2)
// or truecolor-with-alpha (color type 6) — inflates the concatenated
// IDAT stream, and reverses the per-row filter to produce a row-major
// pixel buffer with one byte per channel, matching the layout
// qoi.Encode/qoi.Decode expect.
func (p *Png) Decode() (pixels []byte, width, height, channels int, err error) {
	h := p.IHDR
	if h.BitDepth != 8 {
		return nil, 0, 0, 0, errors.Errorf("unsupported bit depth %d, want 8", h.BitDepth)
	}
	switch h.ColorType {
	case 2:
		channels = 3
	case 6:
		channels = 4
	default:
		return nil, 0, 0, 0, errors.Errorf("unsupported color type %d, want 2 or 6", h.ColorType)
	}
	if h.InterlaceMethod != 0 {
		return nil, 0, 0, 0, errors.New("interlaced png not supported")
	}

	var compressed bytes.Buffer
	for _, idat := range p.IDATs {
		compressed.Write(idat.Data)
	}
	zr, err := zlib.NewReader(&compressed)
	if err != nil {
		return nil, 0, 0, 0, errors.WithStack(err)
	}
	defer zr.Close()
	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, 0, 0, 0, errors.WithStack(err)
	}

	width, height = int(h.Width), int(h.Height)
	stride := width * channels
	wantLen := height * (stride + 1)
	if len(raw) != wantLen {
		return nil, 0, 0, 0, errors.Errorf("inflated size %d, want %d", len(raw), wantLen)
	}

	pixels = make([]byte, height*stride)
	prevRow := make([]byte, stride)
	for y := 0; y < height; y++ {
		rowStart := y * (stride + 1)
		filterType := raw[rowStart]
		src := raw[rowStart+1 : rowStart+1+stride]
		dst := pixels[y*stride : (y+1)*stride]
		if err := unfilterRow(filterType, src, dst, prevRow, channels); err != nil {
			return nil, 0, 0, 0, errors.Wrapf(err, "row %d", y)
		}
		prevRow = dst
	}

	return pixels, width, height, channels, nil
}

// unfilterRow reverses one of PNG's five per-row filters in place into
// dst. bpp is the number of channel bytes one pixel back (the "a"
// neighbor in the PNG spec's terms); prevRow is the previous
// reconstructed row, or an all-zero row for the image's first line.
func unfilterRow(filterType byte, src, dst, prevRow []byte, bpp int) error {
	for i, x := range src {
		var a, b, c byte
		if i >= bpp {
			a = dst[i-bpp]
			c = prevRow[i-bpp]
		}
		b = prevRow[i]

		switch filterType {
		case 0: // None
			dst[i] = x
		case 1: // Sub
			dst[i] = x + a
		case 2: // Up
			dst[i] = x + b
		case 3: // Average
			dst[i] = x + byte((int(a)+int(b))/2)
		case 4: // Paeth
			dst[i] = x + paeth(a, b, c)
		default:
			return errors.Errorf("unsupported filter type %d", filterType)
		}
	}
	return nil
}

func paeth(a, b, c byte) byte {
	p := int(a) + int(b) - int(c)
	pa, pb, pc := abs(p-int(a)), abs(p-int(b)), abs(p-int(c))
	switch {
	case pa <= pb && pa <= pc:
		return a
	case pb <= pc:
		return b
	default:
		return c
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
