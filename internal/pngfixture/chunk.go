// Package pngfixture is test-only infrastructure: a minimal PNG reader
// restricted to exactly the pixel model the qoi codec understands
// (8-bit depth, non-interlaced, truecolor or truecolor+alpha), used to
// decode hand-built reference images for round-trip fixture tests. It
// is not a general PNG decoder and is not part of the codec's public
// surface.
//
// Adapted from XC-Zero/simple-png's chunk.go and png.go: same chunk
// struct, ChunkParse interface, and read-chunks-until-IEND loop,
// trimmed to the three chunk types this package actually needs (IHDR,
// IDAT, IEND — PLTE, bKGD, cHRM, gAMA, hIST, pHYs, sBIT, tRNS, tEXt,
// zTXT, and tIME are dropped: a pixel fixture has no palette, no
// ancillary metadata, and no text to round-trip) and extended with
// zlib inflate and per-row unfiltering, which the teacher never needed
// since it stopped at exposing raw chunk bytes.
package pngfixture

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

var byteOrder binary.ByteOrder = binary.BigEndian

type ChunkName string

const (
	IHDRChunk ChunkName = "IHDR"
	IDATChunk ChunkName = "IDAT"
	IENDChunk ChunkName = "IEND"
)

type ChunkParse interface {
	ChunkName() ChunkName
	Parse(chunk *chunk) error
}

type chunk struct {
	len  [4]byte
	code [4]byte
	data []byte
	crc  [4]byte
}

// readChunk reads one length-prefixed PNG chunk. Like the teacher's
// readChunk, it reads the trailing CRC bytes but never verifies them:
// this package trusts its own hand-built fixtures, not untrusted input.
func readChunk(r io.Reader) (*chunk, error) {
	var l, name, crc [4]byte
	if _, err := io.ReadFull(r, l[:]); err != nil {
		return nil, errors.WithStack(err)
	}
	if _, err := io.ReadFull(r, name[:]); err != nil {
		return nil, errors.WithStack(err)
	}
	length := byteOrder.Uint32(l[:])
	data := make([]byte, length)
	if length > 0 {
		if _, err := io.ReadFull(r, data); err != nil {
			return nil, errors.WithStack(err)
		}
	}
	if _, err := io.ReadFull(r, crc[:]); err != nil {
		return nil, errors.WithStack(err)
	}
	return &chunk{len: l, code: name, data: data, crc: crc}, nil
}

// IHDR is the PNG image header, with all seven of its fields parsed.
// Decode checks BitDepth, ColorType and InterlaceMethod; the
// compression and filter method fields are not checked.
type IHDR struct {
	Width             uint32
	Height            uint32
	BitDepth          uint8
	ColorType         uint8
	CompressionMethod uint8
	FilterMethod      uint8
	InterlaceMethod   uint8
}

func (c *IHDR) ChunkName() ChunkName { return IHDRChunk }

func (c *IHDR) Parse(chunk *chunk) error {
	if ChunkName(chunk.code[:]) != IHDRChunk {
		return errors.New("invalid chunk code")
	}
	if len(chunk.data) < 13 {
		return errors.New("invalid IHDR data")
	}
	c.Width = byteOrder.Uint32(chunk.data[0:4])
	c.Height = byteOrder.Uint32(chunk.data[4:8])
	c.BitDepth = chunk.data[8]
	c.ColorType = chunk.data[9]
	c.CompressionMethod = chunk.data[10]
	c.FilterMethod = chunk.data[11]
	c.InterlaceMethod = chunk.data[12]
	return nil
}

// IDAT is one chunk of the concatenated zlib-compressed image stream.
type IDAT struct {
	Data []byte
}

func (c *IDAT) ChunkName() ChunkName { return IDATChunk }

func (c *IDAT) Parse(chunk *chunk) error {
	if ChunkName(chunk.code[:]) != IDATChunk {
		return errors.New("invalid chunk code")
	}
	c.Data = chunk.data
	return nil
}

// IEND marks the end of the chunk stream; it carries no data.
type IEND struct{}

func (c *IEND) ChunkName() ChunkName { return IENDChunk }

func (c *IEND) Parse(chunk *chunk) error {
	if ChunkName(chunk.code[:]) != IENDChunk {
		return errors.New("invalid chunk code")
	}
	return nil
}
