// Package fixture hand-assembles byte buffers matching the wld package's
// wire format, standing in for the real .wld/.map files the upstream
// test suite exercises against (none of which ship with this module).
package fixture

import (
	"bytes"
	"compress/flate"
	"encoding/binary"
	"math"
)

// Writer is a minimal mirror of wld.ByteStream's read operations, in
// the write direction, used only by tests to build input buffers.
type Writer struct {
	buf bytes.Buffer
}

// New returns an empty Writer.
func New() *Writer { return &Writer{} }

// Bytes returns the accumulated buffer.
func (w *Writer) Bytes() []byte { return w.buf.Bytes() }

func (w *Writer) U8(v uint8)   { w.buf.WriteByte(v) }
func (w *Writer) I8(v int8)    { w.U8(uint8(v)) }
func (w *Writer) Bool(v bool) {
	if v {
		w.U8(1)
	} else {
		w.U8(0)
	}
}

func (w *Writer) U16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.buf.Write(b[:])
}
func (w *Writer) I16(v int16) { w.U16(uint16(v)) }

func (w *Writer) U32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf.Write(b[:])
}
func (w *Writer) I32(v int32) { w.U32(uint32(v)) }

func (w *Writer) U64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf.Write(b[:])
}
func (w *Writer) I64(v int64) { w.U64(uint64(v)) }

func (w *Writer) F32(v float32) { w.U32(math.Float32bits(v)) }
func (w *Writer) F64(v float64) { w.U64(math.Float64bits(v)) }

// Varint writes v as a 7-bit packed variable-length integer.
func (w *Writer) Varint(v uint64) {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		w.U8(b)
		if v == 0 {
			return
		}
	}
}

// String writes a varint-length-prefixed raw byte string.
func (w *Writer) String(s string) {
	w.Varint(uint64(len(s)))
	w.buf.WriteString(s)
}

// BitArray writes bits packed LSB-first into ceil(len(bits)/8) bytes,
// with no length prefix (callers writing a prefixed array call U16
// with the bit count first).
func (w *Writer) BitArray(bits []bool) {
	n := (len(bits) + 7) / 8
	raw := make([]byte, n)
	for i, b := range bits {
		if b {
			raw[i/8] |= 1 << uint(i%8)
		}
	}
	w.buf.Write(raw)
}

// BitArrayPrefixed writes a u16 length followed by the packed bits.
func (w *Writer) BitArrayPrefixed(bits []bool) {
	w.U16(uint16(len(bits)))
	w.BitArray(bits)
}

// Raw appends b verbatim.
func (w *Writer) Raw(b []byte) { w.buf.Write(b) }

// RawDeflate compresses data as a headerless deflate stream (stdlib's
// flate.Writer never emits a zlib header), matching the minimap format's
// wbits=-15 compression mode.
func RawDeflate(data []byte) []byte {
	var buf bytes.Buffer
	zw, _ := flate.NewWriter(&buf, flate.DefaultCompression)
	_, _ = zw.Write(data)
	_ = zw.Close()
	return buf.Bytes()
}
