package pngfixture

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/XC-Zero/qoi"
)

// buildChunk frames one PNG chunk. The CRC is left as zero bytes:
// pngfixture reads but never checks it, matching readChunk's behavior
// on real files, and these fixtures are hand-built and trusted.
func buildChunk(code string, data []byte) []byte {
	var buf bytes.Buffer
	var length [4]byte
	binary.BigEndian.PutUint32(length[:], uint32(len(data)))
	buf.Write(length[:])
	buf.WriteString(code)
	buf.Write(data)
	buf.Write([]byte{0, 0, 0, 0})
	return buf.Bytes()
}

// onePixelPNG hand-builds a 1x1 truecolor-with-alpha PNG whose single
// IDAT is an uncompressed (stored) zlib block, so every byte can be
// computed without running any compressor: filter byte 0 (None)
// followed by the literal pixel (10, 20, 30, 255), wrapped in a
// zlib stream with a hand-computed Adler32 checksum.
func onePixelPNG() []byte {
	var buf bytes.Buffer
	buf.Write(pngSignature)

	ihdrData := []byte{
		0, 0, 0, 1, // width
		0, 0, 0, 1, // height
		8,          // bit depth
		6,          // color type: truecolor + alpha
		0, 0, 0, // compression, filter, interlace
	}
	buf.Write(buildChunk("IHDR", ihdrData))

	zlibStream := []byte{
		0x78, 0x01, // CMF, FLG
		0x01,       // BFINAL=1, BTYPE=00 (stored)
		0x05, 0x00, // LEN=5
		0xFA, 0xFF, // NLEN = ^LEN
		0x00,             // row filter: None
		0x0A, 0x14, 0x1E, 0xFF, // R, G, B, A
		0x01, 0xA4, 0x01, 0x3C, // Adler32 of the 5 stored bytes
	}
	buf.Write(buildChunk("IDAT", zlibStream))
	buf.Write(buildChunk("IEND", nil))
	return buf.Bytes()
}

func TestParsePngAndDecode(t *testing.T) {
	p, err := ParsePng(bytes.NewReader(onePixelPNG()))
	if err != nil {
		t.Fatalf("ParsePng: %v", err)
	}
	if p.IHDR.Width != 1 || p.IHDR.Height != 1 {
		t.Fatalf("IHDR dims = %dx%d, want 1x1", p.IHDR.Width, p.IHDR.Height)
	}

	pixels, width, height, channels, err := p.Decode()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if width != 1 || height != 1 || channels != 4 {
		t.Fatalf("Decode dims = %dx%d x%d, want 1x1 x4", width, height, channels)
	}
	want := []byte{10, 20, 30, 255}
	if diff := cmp.Diff(want, pixels); diff != "" {
		t.Fatalf("pixels mismatch (-want +got):\n%s", diff)
	}
}

func TestPngFixtureRoundTripsThroughQoi(t *testing.T) {
	p, err := ParsePng(bytes.NewReader(onePixelPNG()))
	if err != nil {
		t.Fatalf("ParsePng: %v", err)
	}
	pixels, width, height, channels, err := p.Decode()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	encoded, err := qoi.Encode(pixels, width, height, channels)
	if err != nil {
		t.Fatalf("qoi.Encode: %v", err)
	}
	decoded, gotWidth, gotHeight, err := qoi.Decode(encoded, channels)
	if err != nil {
		t.Fatalf("qoi.Decode: %v", err)
	}
	if gotWidth != width || gotHeight != height {
		t.Fatalf("dims = %dx%d, want %dx%d", gotWidth, gotHeight, width, height)
	}
	if diff := cmp.Diff(pixels, decoded); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}
