// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package agent

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/trackside/simtelemetry/internal/agent/ratelimit"
	"github.com/trackside/simtelemetry/internal/codec/f1"
	"github.com/trackside/simtelemetry/internal/codec/forza"
	"github.com/trackside/simtelemetry/internal/envelope"
)

// f1CarDamageDatagram builds a minimal, well-formed F1 2024 CarDamage
// packet: a 29-byte header followed by f1.MaxNumCars fixed-size car
// damage records (42 bytes each), matching f1.parseCarDamage's field
// order exactly.
func f1CarDamageDatagram(packetID f1.PacketID) []byte {
	buf := make([]byte, 0, 29+f1.MaxNumCars*42)
	putU16 := func(v uint16) { b := make([]byte, 2); binary.LittleEndian.PutUint16(b, v); buf = append(buf, b...) }
	putU32 := func(v uint32) { b := make([]byte, 4); binary.LittleEndian.PutUint32(b, v); buf = append(buf, b...) }
	putU64 := func(v uint64) { b := make([]byte, 8); binary.LittleEndian.PutUint64(b, v); buf = append(buf, b...) }

	putU16(2024)             // packet_format
	buf = append(buf, 0)     // game_year
	buf = append(buf, 1)     // game_major_version
	buf = append(buf, 0)     // game_minor_version
	buf = append(buf, 1)     // packet_version
	buf = append(buf, byte(packetID))
	putU64(0xDEADBEEF) // session_uid
	putU32(0)          // session_time (float32 bit pattern, 0.0 is fine)
	putU32(100)        // frame_identifier
	putU32(100)        // overall_frame_identifier
	buf = append(buf, 0)   // player_car_index
	buf = append(buf, 255) // secondary_player_car_index

	buf = append(buf, make([]byte, f1.MaxNumCars*42)...)
	return buf
}

func TestClassifyRejectsForzaWithRaceOff(t *testing.T) {
	rec := forza.Record{Sled: forza.Sled{IsRaceOn: false, CarClass: forza.CarClassA, DriveType: forza.DriveAWD}}
	buf := forza.Encode(rec, forza.SledSize)

	_, ok := classify(envelope.GameFH5, buf)
	require.False(t, ok)
}

func TestClassifyAcceptsValidForza(t *testing.T) {
	rec := forza.Record{Sled: forza.Sled{IsRaceOn: true, CarClass: forza.CarClassA, DriveType: forza.DriveAWD}}
	buf := forza.Encode(rec, forza.SledSize)

	key, ok := classify(envelope.GameFH5, buf)
	require.True(t, ok)
	require.Equal(t, "forza", key)
}

func TestClassifyKeysMatchF1AllowList(t *testing.T) {
	datagram := f1CarDamageDatagram(f1.IDCarDamage)

	key, ok := classify(envelope.GameF12024, datagram)
	require.True(t, ok)
	require.Equal(t, "f1.CarDamage", key)

	limiter := ratelimit.New(100*time.Millisecond, f1AllowList)
	for i := 0; i < 10; i++ {
		require.True(t, limiter.Allow(key), "allow-listed F1 packet type must never be throttled")
	}
}

func TestOfferDropsNewestWhenFull(t *testing.T) {
	ch := make(chan []byte, 1)
	offer(ch, []byte("first"), "FH5", "ws")
	offer(ch, []byte("second"), "FH5", "ws")

	got := <-ch
	require.Equal(t, "first", string(got))
	select {
	case <-ch:
		t.Fatal("expected channel to be empty after drain")
	default:
	}
}
