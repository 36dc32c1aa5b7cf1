// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package f1

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

type headerBuilder struct {
	buf []byte
}

func newHeader(format uint16, id PacketID) *headerBuilder {
	h := &headerBuilder{}
	h.putU16(format)
	if format >= 2023 {
		h.putU8(0) // game_year
	}
	h.putU8(1) // major
	h.putU8(0) // minor
	h.putU8(1) // packet_version
	h.putU8(uint8(id))
	h.putU64(0xDEADBEEF)
	h.putF32(12.5)
	h.putU32(100)
	if format >= 2023 {
		h.putU32(100)
	}
	h.putU8(0) // player_car_index
	h.putU8(255)
	return h
}

func (h *headerBuilder) putU8(v uint8)   { h.buf = append(h.buf, v) }
func (h *headerBuilder) putU16(v uint16) { b := make([]byte, 2); binary.LittleEndian.PutUint16(b, v); h.buf = append(h.buf, b...) }
func (h *headerBuilder) putU32(v uint32) { b := make([]byte, 4); binary.LittleEndian.PutUint32(b, v); h.buf = append(h.buf, b...) }
func (h *headerBuilder) putU64(v uint64) { b := make([]byte, 8); binary.LittleEndian.PutUint64(b, v); h.buf = append(h.buf, b...) }
func (h *headerBuilder) putF32(v float32) {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, math.Float32bits(v))
	h.buf = append(h.buf, b...)
}
func (h *headerBuilder) body(n int) []byte {
	h.buf = append(h.buf, make([]byte, n)...)
	return h.buf
}

func TestHeaderSizeByYear(t *testing.T) {
	for _, format := range []uint16{2022, 2023, 2024} {
		h := newHeader(format, IDMotion)
		wantLen := HeaderSize2022
		if format >= 2023 {
			wantLen = HeaderSize2023Plus
		}
		require.Len(t, h.buf, wantLen)

		r := newReader(h.buf)
		hdr, err := parseHeader(r)
		require.NoError(t, err)
		require.Equal(t, format, hdr.PacketFormat)
		require.Equal(t, IDMotion, hdr.PacketID)
		require.Equal(t, uint64(0xDEADBEEF), hdr.SessionUID)
		if format >= 2023 {
			require.Equal(t, uint32(100), hdr.OverallFrameIdentifier)
		} else {
			require.Zero(t, hdr.OverallFrameIdentifier)
		}
	}
}

func TestParseRejectsUnsupportedFormat(t *testing.T) {
	h := newHeader(2021, IDMotion)
	// newHeader assumed format>=2023 branching off of the (invalid) value 2021,
	// so rebuild manually with the minimal 2022-shaped header length check.
	buf := make([]byte, HeaderSize2022)
	binary.LittleEndian.PutUint16(buf, 2021)
	_, err := Parse(buf)
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, "UnsupportedFormat", pe.Kind)
	_ = h
}

func TestParseMotion(t *testing.T) {
	h := newHeader(2024, IDMotion)
	buf := h.body(MaxNumCars * (6*4 + 6*2 + 6*4))
	pkt, err := Parse(buf)
	require.NoError(t, err)
	require.NotNil(t, pkt.Motion)
	require.Equal(t, uint16(2024), pkt.Header.PacketFormat)
}

func TestParseCarTelemetryRejectsBadGear(t *testing.T) {
	h := newHeader(2023, IDCarTelemetry)
	buf := h.buf
	for i := 0; i < MaxNumCars; i++ {
		rec := make([]byte, 60)
		rec[15] = 9 // gear byte within the 60-byte record, out of [-1,8]
		buf = append(buf, rec...)
	}
	buf = append(buf, 0, 0, 0)

	_, err := Parse(buf)
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, "OutOfRange", pe.Kind)
}

func TestParseEventUnknownCode(t *testing.T) {
	h := newHeader(2022, IDEvent)
	buf := append(h.buf, []byte("ZZZZ")...)
	_, err := Parse(buf)
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, "UnknownEnum", pe.Kind)
}

func TestParseEventFastestLap(t *testing.T) {
	h := newHeader(2024, IDEvent)
	buf := append(h.buf, []byte(EventFastestLap)...)
	rest := &headerBuilder{}
	rest.putU8(3)
	rest.putF32(88.123)
	buf = append(buf, rest.buf...)

	pkt, err := Parse(buf)
	require.NoError(t, err)
	require.NotNil(t, pkt.Event)
	require.NotNil(t, pkt.Event.FastestLap)
	require.Equal(t, uint8(3), pkt.Event.FastestLap.VehicleIndex)
}

func TestParseSessionRejectsTooManyMarshalZones(t *testing.T) {
	h := newHeader(2022, IDSession)
	buf := h.buf
	buf = append(buf, make([]byte, 18)...) // weather .. sliProNativeSupport fields
	buf = append(buf, 255)                 // num_marshal_zones, way over cap
	_, err := Parse(buf)
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, "OutOfRange", pe.Kind)
}
