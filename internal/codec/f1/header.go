// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package f1

import "fmt"

// PacketID is the header field selecting which variant structure follows.
type PacketID uint8

const (
	IDMotion PacketID = iota
	IDSession
	IDLaps
	IDEvent
	IDParticipants
	IDCarSetups
	IDCarTelemetry
	IDCarStatus
	IDFinalClassification
	IDLobbyInfo
	IDCarDamage
	IDSessionHistory
	IDTyreSets
	IDMotionEx
	IDTimeTrial
)

func (id PacketID) valid() bool { return id <= IDTimeTrial }

var packetIDNames = [...]string{
	"Motion", "Session", "Laps", "Event", "Participants", "CarSetups",
	"CarTelemetry", "CarStatus", "FinalClassification", "LobbyInfo",
	"CarDamage", "SessionHistory", "TyreSets", "MotionEx", "TimeTrial",
}

// String returns the packet type's name, e.g. "CarDamage". Used as the
// rate-limit key so the allow-list can be expressed in human-readable
// names instead of numeric ids.
func (id PacketID) String() string {
	if int(id) < len(packetIDNames) {
		return packetIDNames[id]
	}
	return fmt.Sprintf("PacketID(%d)", uint8(id))
}

// Header is the 24-29-byte packet header common to every F1 datagram.
// GameYear and OverallFrameIdentifier are present only when PacketFormat
// is 2023 or later.
type Header struct {
	PacketFormat              uint16
	GameYear                  uint8
	GameMajorVersion          uint8
	GameMinorVersion          uint8
	PacketVersion             uint8
	PacketID                  PacketID
	SessionUID                uint64
	SessionTime               float32
	FrameIdentifier           uint32
	OverallFrameIdentifier    uint32
	PlayerCarIndex            uint8
	SecondaryPlayerCarIndex   uint8
}

// HeaderSize2022 and HeaderSize2023Plus are the two header lengths
// produced by the format depending on packet_format year.
const (
	HeaderSize2022     = 24
	HeaderSize2023Plus = 29
)

func parseHeader(r *reader) (Header, error) {
	var h Header
	h.PacketFormat = r.u16()
	if h.PacketFormat != 2022 && h.PacketFormat != 2023 && h.PacketFormat != 2024 {
		return Header{}, unsupported(fmt.Sprintf("packet_format %d not in {2022,2023,2024}", h.PacketFormat))
	}

	if h.PacketFormat >= 2023 {
		h.GameYear = r.u8()
	}
	h.GameMajorVersion = r.u8()
	h.GameMinorVersion = r.u8()
	h.PacketVersion = r.u8()

	id := PacketID(r.u8())
	if !id.valid() {
		return Header{}, unknownEnum(fmt.Sprintf("packet_id %d", id))
	}
	h.PacketID = id

	h.SessionUID = r.u64()
	h.SessionTime = r.f32()
	h.FrameIdentifier = r.u32()
	if h.PacketFormat >= 2023 {
		h.OverallFrameIdentifier = r.u32()
	}
	h.PlayerCarIndex = r.u8()
	h.SecondaryPlayerCarIndex = r.u8()

	return h, r.err
}
