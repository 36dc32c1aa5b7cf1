// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package envelope implements the compact binary wire record that wraps a
// single raw game datagram between the client agent and the ingestion
// server: a time-ordered id, a closed game-tag enum, a sender timestamp,
// and the original datagram bytes.
package envelope

import (
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"
)

// GameTag is the closed enum of supported game titles/versions.
type GameTag uint8

const (
	GameUnknown GameTag = iota
	GameF12022
	GameF12023
	GameF12024
	GameFH4
	GameFH5
	GameFM7
	GameFM8
	GameAC
	GameACC
	GameACEvo
)

var gameTagNames = map[GameTag]string{
	GameF12022: "F12022",
	GameF12023: "F12023",
	GameF12024: "F12024",
	GameFH4:    "FH4",
	GameFH5:    "FH5",
	GameFM7:    "FM7",
	GameFM8:    "FM8",
	GameAC:     "AC",
	GameACC:    "ACC",
	GameACEvo:  "ACEVO",
}

func (g GameTag) String() string {
	if s, ok := gameTagNames[g]; ok {
		return s
	}
	return "UNKNOWN"
}

// ParseGameTag resolves a game tag from its string name.
func ParseGameTag(s string) (GameTag, error) {
	for tag, name := range gameTagNames {
		if name == s {
			return tag, nil
		}
	}
	return GameUnknown, fmt.Errorf("envelope: unknown game tag %q", s)
}

// MaxDataLen is the largest raw datagram an envelope may carry.
const MaxDataLen = 2048

// MaxEncodedLen is the largest encoded envelope the transport will accept:
// 16-byte id, 1-byte tag, 16-byte timestamp, a uvarint length prefix (at
// most 2 bytes for MaxDataLen), and MaxDataLen bytes of data.
const MaxEncodedLen = MaxDataLen + 16 + 1 + 16 + 2

// Envelope is the transport-level record wrapping one raw game datagram.
type Envelope struct {
	ID        uuid.UUID
	GameType  GameTag
	Timestamp uint64 // nanoseconds since Unix epoch; high bits always zero (spec reserves 128 bits, only 64 are used on this platform)
	Data      []byte
}

// New builds an envelope with a fresh time-ordered id.
func New(game GameTag, timestampNs uint64, data []byte) (Envelope, error) {
	if len(data) > MaxDataLen {
		return Envelope{}, fmt.Errorf("envelope: data length %d exceeds max %d", len(data), MaxDataLen)
	}
	id, err := uuid.NewV7()
	if err != nil {
		return Envelope{}, fmt.Errorf("envelope: generate id: %w", err)
	}
	return Envelope{ID: id, GameType: game, Timestamp: timestampNs, Data: data}, nil
}

// Encode writes the compact binary form: 16-byte id, 1-byte game tag,
// 16-byte (128-bit) big-endian timestamp with the low 64 bits carrying the
// nanosecond value, then a uvarint length prefix followed by data.
func Encode(e Envelope) ([]byte, error) {
	if len(e.Data) > MaxDataLen {
		return nil, fmt.Errorf("envelope: data length %d exceeds max %d", len(e.Data), MaxDataLen)
	}

	buf := make([]byte, 0, 16+1+16+binary.MaxVarintLen64+len(e.Data))
	buf = append(buf, e.ID[:]...)
	buf = append(buf, byte(e.GameType))

	var ts [16]byte
	binary.BigEndian.PutUint64(ts[8:], e.Timestamp)
	buf = append(buf, ts[:]...)

	lenPrefix := make([]byte, binary.MaxVarintLen64)
	n := binary.PutUvarint(lenPrefix, uint64(len(e.Data)))
	buf = append(buf, lenPrefix[:n]...)
	buf = append(buf, e.Data...)

	if len(buf) > MaxEncodedLen {
		return nil, fmt.Errorf("envelope: encoded length %d exceeds max %d", len(buf), MaxEncodedLen)
	}
	return buf, nil
}

// Decode parses the wire form produced by Encode.
func Decode(buf []byte) (Envelope, error) {
	if len(buf) < 16+1+16 {
		return Envelope{}, fmt.Errorf("envelope: truncated header, got %d bytes", len(buf))
	}

	var e Envelope
	copy(e.ID[:], buf[0:16])
	e.GameType = GameTag(buf[16])
	e.Timestamp = binary.BigEndian.Uint64(buf[17+8 : 33])

	rest := buf[33:]
	dataLen, n := binary.Uvarint(rest)
	if n <= 0 {
		return Envelope{}, fmt.Errorf("envelope: malformed length prefix")
	}
	rest = rest[n:]
	if dataLen > MaxDataLen {
		return Envelope{}, fmt.Errorf("envelope: declared data length %d exceeds max %d", dataLen, MaxDataLen)
	}
	if uint64(len(rest)) < dataLen {
		return Envelope{}, fmt.Errorf("envelope: truncated data, want %d have %d", dataLen, len(rest))
	}

	e.Data = make([]byte, dataLen)
	copy(e.Data, rest[:dataLen])
	return e, nil
}
