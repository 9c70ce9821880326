package bitmap

import (
	"encoding/binary"
	"errors"
)

// MaxFrameFile caps how many bytes of one frame file the decoder will
// accept. Device frames are at most 1 KiB decoded, so anything past
// this is garbage, not a bigger frame.
const MaxFrameFile = 8192

// ErrCorrupt is returned for any frame data the decoder cannot unpack
// to exactly the expected size.
var ErrCorrupt = errors.New("corrupt bitmap data")

// Frame file envelope tags.
const (
	tagRaw        = 0x00
	tagCompressed = 0x01
)

// Decode unpacks one frame file into exactly expected bytes of
// row-packed 1-bit pixels. The first byte selects the envelope: raw
// frames carry the pixel bytes verbatim, compressed frames carry a
// reserved byte, a little-endian payload size and an LZSS bit stream.
// The returned slice never aliases data.
func Decode(data []byte, expected int) ([]byte, error) {
	if expected <= 0 || len(data) == 0 {
		return nil, ErrCorrupt
	}

	switch data[0] {
	case tagRaw:
		raw := data[1:]
		if len(raw) != expected {
			return nil, ErrCorrupt
		}
		out := make([]byte, expected)
		copy(out, raw)
		return out, nil

	case tagCompressed:
		if len(data) < 4 {
			return nil, ErrCorrupt
		}
		size := int(binary.LittleEndian.Uint16(data[2:4]))
		if len(data)-4 < size {
			return nil, ErrCorrupt
		}
		return decompress(data[4:4+size], expected)

	default:
		return nil, ErrCorrupt
	}
}

// decompress expands an LZSS bit stream with an 8-bit window and a
// 4-bit run length. A set flag bit precedes an 8-bit literal; a clear
// one precedes an 8-bit distance and a 4-bit length, each stored one
// less than its value. References may overlap their own output, so the
// copy must go byte by byte. The stream must fill expected exactly:
// running out of bits, reaching back past the start of the output or
// overshooting the end all mean the data is corrupt.
func decompress(payload []byte, expected int) ([]byte, error) {
	br := bitReader{data: payload}
	out := make([]byte, 0, expected)

	for len(out) < expected {
		flag, ok := br.bit()
		if !ok {
			return nil, ErrCorrupt
		}

		if flag == 1 {
			v, ok := br.bits(8)
			if !ok {
				return nil, ErrCorrupt
			}
			out = append(out, byte(v))
			continue
		}

		dist, ok := br.bits(8)
		if !ok {
			return nil, ErrCorrupt
		}
		length, ok := br.bits(4)
		if !ok {
			return nil, ErrCorrupt
		}
		dist++
		length++

		if dist > len(out) || len(out)+length > expected {
			return nil, ErrCorrupt
		}
		for i := 0; i < length; i++ {
			out = append(out, out[len(out)-dist])
		}
	}
	return out, nil
}

// bitReader yields the bits of a byte slice most significant first.
type bitReader struct {
	data []byte
	pos  int
	cur  byte
	n    int // unread bits left in cur
}

// bit returns the next bit, or false once the data is exhausted.
func (r *bitReader) bit() (int, bool) {
	if r.n == 0 {
		if r.pos >= len(r.data) {
			return 0, false
		}
		r.cur = r.data[r.pos]
		r.pos++
		r.n = 8
	}
	r.n--
	return int(r.cur>>uint(r.n)) & 1, true
}

// bits returns the next count bits as one value, most significant first.
func (r *bitReader) bits(count int) (int, bool) {
	v := 0
	for i := 0; i < count; i++ {
		b, ok := r.bit()
		if !ok {
			return 0, false
		}
		v = v<<1 | b
	}
	return v, true
}
