package wld

import (
	"encoding/binary"
	"math"
)

// maxVarintBytes bounds ReadVarint's continuation-byte scan: 10 groups of
// 7 bits covers a full uint64, so a longer run can only mean a corrupt or
// adversarial stream.
const maxVarintBytes = 10

// ByteStream is a seekable little-endian cursor over an
// in-memory buffer. Every World/Map field in this package is read through
// one of these, the same way the original reader threads a single cursor
// through an entire file.
type ByteStream struct {
	buf []byte
	pos int
}

// NewByteStream wraps buf for reading. The returned stream does not copy
// buf; callers must not mutate it while decoding is in progress.
func NewByteStream(buf []byte) *ByteStream {
	return &ByteStream{buf: buf}
}

// Len returns the total number of bytes in the underlying buffer.
func (s *ByteStream) Len() int { return len(s.buf) }

// Tell returns the current read offset.
func (s *ByteStream) Tell() int { return s.pos }

// Remaining returns the number of unread bytes.
func (s *ByteStream) Remaining() int { return len(s.buf) - s.pos }

// SeekSet moves the cursor to an absolute offset.
func (s *ByteStream) SeekSet(offset int) error {
	if offset < 0 || offset > len(s.buf) {
		return decodeErrorf(offset, ErrOutOfRange, "seek target out of bounds")
	}
	s.pos = offset
	return nil
}

// SeekCur moves the cursor by a relative delta.
func (s *ByteStream) SeekCur(delta int) error {
	return s.SeekSet(s.pos + delta)
}

func (s *ByteStream) need(n int) error {
	if n < 0 || s.pos+n > len(s.buf) {
		return decodeErrorf(s.pos, ErrTruncated, "need %d bytes, have %d", n, s.Remaining())
	}
	return nil
}

func (s *ByteStream) take(n int) ([]byte, error) {
	if err := s.need(n); err != nil {
		return nil, err
	}
	b := s.buf[s.pos : s.pos+n]
	s.pos += n
	return b, nil
}

// ReadU8 reads an unsigned 8-bit integer.
func (s *ByteStream) ReadU8() (uint8, error) {
	b, err := s.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadI8 reads a signed 8-bit integer.
func (s *ByteStream) ReadI8() (int8, error) {
	v, err := s.ReadU8()
	return int8(v), err
}

// ReadBool reads a single byte and reports whether it is non-zero.
func (s *ByteStream) ReadBool() (bool, error) {
	v, err := s.ReadU8()
	return v != 0, err
}

// ReadU16 reads a little-endian unsigned 16-bit integer.
func (s *ByteStream) ReadU16() (uint16, error) {
	b, err := s.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// ReadI16 reads a little-endian signed 16-bit integer.
func (s *ByteStream) ReadI16() (int16, error) {
	v, err := s.ReadU16()
	return int16(v), err
}

// ReadU32 reads a little-endian unsigned 32-bit integer.
func (s *ByteStream) ReadU32() (uint32, error) {
	b, err := s.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadI32 reads a little-endian signed 32-bit integer.
func (s *ByteStream) ReadI32() (int32, error) {
	v, err := s.ReadU32()
	return int32(v), err
}

// ReadU64 reads a little-endian unsigned 64-bit integer.
func (s *ByteStream) ReadU64() (uint64, error) {
	b, err := s.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// ReadI64 reads a little-endian signed 64-bit integer.
func (s *ByteStream) ReadI64() (int64, error) {
	v, err := s.ReadU64()
	return int64(v), err
}

// ReadF32 reads a little-endian IEEE-754 single-precision float.
func (s *ByteStream) ReadF32() (float32, error) {
	v, err := s.ReadU32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// ReadF64 reads a little-endian IEEE-754 double-precision float.
func (s *ByteStream) ReadF64() (float64, error) {
	v, err := s.ReadU64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// ReadVarint reads a 7-bit-packed variable-length unsigned integer: each
// byte's low 7 bits contribute to the value, and the high bit signals
// that another byte follows. Mirrors Binary/Reader.py's ReadPacked7Int.
func (s *ByteStream) ReadVarint() (uint64, error) {
	var result uint64
	var shift uint
	for i := 0; i < maxVarintBytes; i++ {
		b, err := s.ReadU8()
		if err != nil {
			return 0, err
		}
		result |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
	}
	return 0, decodeErrorf(s.pos, ErrVarintOverflow, "varint exceeds %d bytes", maxVarintBytes)
}

// ReadString reads a varint-prefixed length followed by that many raw
// bytes, returned as a string (Terraria strings are UTF-8-like, not
// necessarily valid UTF-8; no locale-aware decoding is performed).
func (s *ByteStream) ReadString() (string, error) {
	n, err := s.ReadVarint()
	if err != nil {
		return "", err
	}
	b, err := s.take(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadBitArray reads nbits individual flags packed LSB-first into
// ceil(nbits/8) bytes: the first bit read is bit 0 of the first byte,
// scanning toward bit 7 before moving to the next byte.
func (s *ByteStream) ReadBitArray(nbits int) ([]bool, error) {
	if nbits < 0 {
		return nil, decodeErrorf(s.pos, ErrOutOfRange, "negative bit count %d", nbits)
	}
	nbytes := (nbits + 7) / 8
	raw, err := s.take(nbytes)
	if err != nil {
		return nil, err
	}
	bits := make([]bool, nbits)
	for i := 0; i < nbits; i++ {
		bits[i] = raw[i/8]&(1<<uint(i%8)) != 0
	}
	return bits, nil
}

// ReadBitArrayPrefixed reads a 16-bit length prefix (treated as unsigned,
// matching the original reader's use of the value purely as a count) and
// then that many bits via ReadBitArray.
func (s *ByteStream) ReadBitArrayPrefixed() ([]bool, error) {
	n, err := s.ReadU16()
	if err != nil {
		return nil, err
	}
	return s.ReadBitArray(int(n))
}
