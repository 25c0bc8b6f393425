package store

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// encoder accumulates a single section's bytes. Strings are not written
// inline: they go through a stringPool shared across all sections (so a
// path referenced from both FileRecords and Chunks is stored once).
type encoder struct {
	buf bytes.Buffer
}

func newEncoder() *encoder { return &encoder{} }

func (e *encoder) u8(v byte)     { e.buf.WriteByte(v) }
func (e *encoder) u32(v uint32)  { var b [4]byte; binary.LittleEndian.PutUint32(b[:], v); e.buf.Write(b[:]) }
func (e *encoder) u64(v uint64)  { var b [8]byte; binary.LittleEndian.PutUint64(b[:], v); e.buf.Write(b[:]) }
func (e *encoder) i64(v int64)   { e.u64(uint64(v)) }
func (e *encoder) f64(v float64) { e.u64(mathFloat64bits(v)) }
func (e *encoder) bytes32(v [32]byte) { e.buf.Write(v[:]) }
func (e *encoder) raw(b []byte) { e.buf.Write(b) }

func (e *encoder) Bytes() []byte { return e.buf.Bytes() }

// decoder walks a byte slice with a cursor, used to parse one section.
type decoder struct {
	data []byte
	pos  int
}

func newDecoder(data []byte) *decoder { return &decoder{data: data} }

func (d *decoder) need(n int) error {
	if d.pos+n > len(d.data) {
		return fmt.Errorf("repoindex: section truncated at offset %d", d.pos)
	}
	return nil
}

func (d *decoder) u8() (byte, error) {
	if err := d.need(1); err != nil {
		return 0, err
	}
	v := d.data[d.pos]
	d.pos++
	return v, nil
}

func (d *decoder) u32() (uint32, error) {
	if err := d.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(d.data[d.pos:])
	d.pos += 4
	return v, nil
}

func (d *decoder) u64() (uint64, error) {
	if err := d.need(8); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(d.data[d.pos:])
	d.pos += 8
	return v, nil
}

func (d *decoder) i64() (int64, error) {
	v, err := d.u64()
	return int64(v), err
}

func (d *decoder) f64() (float64, error) {
	v, err := d.u64()
	if err != nil {
		return 0, err
	}
	return mathFloat64frombits(v), nil
}

func (d *decoder) bytes32() ([32]byte, error) {
	var out [32]byte
	if err := d.need(32); err != nil {
		return out, err
	}
	copy(out[:], d.data[d.pos:d.pos+32])
	d.pos += 32
	return out, nil
}

func (d *decoder) skip(n int) error {
	if err := d.need(n); err != nil {
		return err
	}
	d.pos += n
	return nil
}

func (d *decoder) remaining() []byte { return d.data[d.pos:] }
func (d *decoder) done() bool        { return d.pos >= len(d.data) }
