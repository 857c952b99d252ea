/*---------------------------------------------------------------------------------------------
 *  Copyright (c) Peter Bjorklund. All rights reserved.
 *  Licensed under the MIT License. See LICENSE in the project root for license information.
 *--------------------------------------------------------------------------------------------*/

// Package stream provides the byte-stream primitives the binary encoder and
// decoder are built on: §6 of the design notes documents this as an
// externally-owned collaborator in the original system (raw read/write of
// fixed-width integers and octets). This module supplies its own
// implementation because nothing else in this repository does.
package stream

import (
	"encoding/binary"
	"fmt"
)

// Out is an append-only output buffer. The caller owns the returned bytes;
// Out never truncates or rewinds on error, so a failed encode leaves
// whatever was already written in place (see §7, "partial output is not
// rolled back").
type Out struct {
	buf []byte
}

// NewOut returns an Out with capacity pre-reserved.
func NewOut(capacityHint int) *Out {
	return &Out{buf: make([]byte, 0, capacityHint)}
}

// Bytes returns the bytes written so far.
func (o *Out) Bytes() []byte { return o.buf }

// Len returns the number of bytes written so far.
func (o *Out) Len() int { return len(o.buf) }

// WriteU8 appends a single byte.
func (o *Out) WriteU8(v uint8) { o.buf = append(o.buf, v) }

// WriteI32 appends a little-endian 4-byte signed integer.
func (o *Out) WriteI32(v int32) { o.WriteU32(uint32(v)) }

// WriteU32 appends a little-endian 4-byte unsigned integer.
func (o *Out) WriteU32(v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	o.buf = append(o.buf, tmp[:]...)
}

// WriteOctets appends raw bytes verbatim.
func (o *Out) WriteOctets(p []byte) { o.buf = append(o.buf, p...) }

// Formatf appends the formatted text as raw bytes, with no length prefix or
// terminator.
func (o *Out) Formatf(format string, args ...any) {
	o.buf = append(o.buf, fmt.Sprintf(format, args...)...)
}

// In is a cursor over a caller-owned input buffer.
type In struct {
	buf []byte
	pos int
}

// NewIn wraps buf for reading. The returned In does not copy buf.
func NewIn(buf []byte) *In { return &In{buf: buf} }

// Pos returns the current read offset.
func (in *In) Pos() int { return in.pos }

// Remaining returns how many unread bytes are left.
func (in *In) Remaining() int { return len(in.buf) - in.pos }

// ReadU8 reads a single byte.
func (in *In) ReadU8() (uint8, error) {
	if in.Remaining() < 1 {
		return 0, fmt.Errorf("stream: unexpected end of input reading u8 at offset %d", in.pos)
	}
	v := in.buf[in.pos]
	in.pos++
	return v, nil
}

// ReadI32 reads a little-endian 4-byte signed integer.
func (in *In) ReadI32() (int32, error) {
	v, err := in.ReadU32()
	return int32(v), err
}

// ReadU32 reads a little-endian 4-byte unsigned integer.
func (in *In) ReadU32() (uint32, error) {
	if in.Remaining() < 4 {
		return 0, fmt.Errorf("stream: unexpected end of input reading u32 at offset %d", in.pos)
	}
	v := binary.LittleEndian.Uint32(in.buf[in.pos:])
	in.pos += 4
	return v, nil
}

// ReadOctets reads n raw bytes and returns a fresh copy of them.
func (in *In) ReadOctets(n int) ([]byte, error) {
	if in.Remaining() < n {
		return nil, fmt.Errorf("stream: unexpected end of input reading %d octets at offset %d", n, in.pos)
	}
	out := append([]byte(nil), in.buf[in.pos:in.pos+n]...)
	in.pos += n
	return out, nil
}

// PeekRemaining returns the unread tail of the buffer without advancing the
// cursor. Used to hand an unmanaged deserialize callback a view of
// everything that might be its encoding, before the core learns how much of
// it the callback actually consumed.
func (in *In) PeekRemaining() []byte {
	return in.buf[in.pos:]
}

// Advance moves the cursor forward by n bytes, as reported by a callback
// that consumed input the core itself did not parse.
func (in *In) Advance(n int) error {
	if n < 0 || n > in.Remaining() {
		return fmt.Errorf("stream: cannot advance %d bytes, only %d remain at offset %d", n, in.Remaining(), in.pos)
	}
	in.pos += n
	return nil
}
