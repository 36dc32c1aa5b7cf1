// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package f1 decodes the EA/Codemasters F1 2022-2024 telemetry UDP
// datagrams: a fixed header selects one of fifteen packet variants, each a
// pure function of (header, payload, packet_format) so a single parser can
// serve three consecutive game years without forking.
package f1

import (
	"encoding/binary"
	"fmt"
	"math"
)

// MaxNumCars is the largest grid size the format reserves array slots for;
// every car-indexed array is always sized to this regardless of the
// actual number of competitors in the session.
const MaxNumCars = 22

// ParseError reports why a datagram could not be decoded.
type ParseError struct {
	Kind   string
	Detail string
}

func (e *ParseError) Error() string { return fmt.Sprintf("f1: %s: %s", e.Kind, e.Detail) }

func truncated(detail string) error   { return &ParseError{Kind: "Truncated", Detail: detail} }
func outOfRange(detail string) error  { return &ParseError{Kind: "OutOfRange", Detail: detail} }
func unknownEnum(detail string) error { return &ParseError{Kind: "UnknownEnum", Detail: detail} }
func unsupported(detail string) error { return &ParseError{Kind: "UnsupportedFormat", Detail: detail} }

// reader sequentially consumes little-endian scalars and records the first
// out-of-bounds read as an error rather than panicking.
type reader struct {
	buf []byte
	pos int
	err error
}

func newReader(buf []byte) *reader { return &reader{buf: buf} }

func (r *reader) need(n int) []byte {
	if r.err != nil {
		return make([]byte, n)
	}
	if r.pos+n > len(r.buf) {
		r.err = truncated(fmt.Sprintf("need %d bytes at offset %d, have %d", n, r.pos, len(r.buf)))
		return make([]byte, n)
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b
}

func (r *reader) u8() uint8   { return r.need(1)[0] }
func (r *reader) i8() int8   { return int8(r.need(1)[0]) }
func (r *reader) bool8() bool { return r.u8() != 0 }
func (r *reader) u16() uint16 { return binary.LittleEndian.Uint16(r.need(2)) }
func (r *reader) i16() int16  { return int16(binary.LittleEndian.Uint16(r.need(2))) }
func (r *reader) u32() uint32 { return binary.LittleEndian.Uint32(r.need(4)) }
func (r *reader) u64() uint64 { return binary.LittleEndian.Uint64(r.need(8)) }
func (r *reader) f32() float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(r.need(4)))
}
func (r *reader) skip(n int) { r.need(n) }
func (r *reader) remaining() []byte {
	if r.pos >= len(r.buf) {
		return nil
	}
	return r.buf[r.pos:]
}
