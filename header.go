package qoi

import "encoding/binary"

const (
	headerSize    = 12
	paddingSize   = 4
	minStreamSize = headerSize + paddingSize
)

var magic = [4]byte{'q', 'o', 'i', 'f'}

// header is the validated 12-byte prefix of an encoded stream. Decode
// parses it once into this struct; every later field access reads from
// here rather than re-touching the raw input bytes.
type header struct {
	width  uint16
	height uint16
	size   uint32
}

func encodeHeader(width, height uint16) [headerSize]byte {
	var buf [headerSize]byte
	copy(buf[0:4], magic[:])
	binary.BigEndian.PutUint16(buf[4:6], width)
	binary.BigEndian.PutUint16(buf[6:8], height)
	// size is patched in after the body is known.
	return buf
}

func patchSize(buf []byte, size uint32) {
	binary.BigEndian.PutUint32(buf[8:12], size)
}

// parseHeader validates the magic and decodes width/height/size from a
// single 12-byte view. channels is validated by the caller since it is
// not carried on the wire.
func parseHeader(data []byte) (header, error) {
	if len(data) < headerSize {
		return header{}, invalidArgumentf("encoded block shorter than header (%d bytes)", len(data))
	}
	var buf [headerSize]byte
	copy(buf[:], data[:headerSize])

	if buf[0] != magic[0] || buf[1] != magic[1] || buf[2] != magic[2] || buf[3] != magic[3] {
		return header{}, invalidArgumentf("bad magic %q", buf[0:4])
	}

	h := header{
		width:  binary.BigEndian.Uint16(buf[4:6]),
		height: binary.BigEndian.Uint16(buf[6:8]),
		size:   binary.BigEndian.Uint32(buf[8:12]),
	}
	if h.width == 0 {
		return header{}, invalidArgumentf("width is zero")
	}
	if h.height == 0 {
		return header{}, invalidArgumentf("height is zero")
	}
	if int(h.size)+headerSize != len(data) {
		return header{}, invalidArgumentf("size field %d does not match block length %d", h.size, len(data))
	}
	return h, nil
}
