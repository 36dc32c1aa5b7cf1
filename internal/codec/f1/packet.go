// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package f1

// Packet is the fully decoded datagram: Header plus exactly one populated
// variant field, selected by Header.PacketID.
type Packet struct {
	Header Header

	Motion              *Motion
	Session             *Session
	Laps                *Laps
	Event               *Event
	Participants        *Participants
	CarSetups           *CarSetups
	CarTelemetry        *CarTelemetry
	CarStatus           *CarStatus
	FinalClassification *FinalClassification
	LobbyInfo           *LobbyInfo
	CarDamage           *CarDamage
	SessionHistory      *SessionHistory
	TyreSets            *TyreSets
	MotionEx            *MotionEx
	TimeTrial           *TimeTrial
}

// Parse decodes one F1 UDP datagram: header first, then the variant
// selected by header.PacketID.
func Parse(buf []byte) (Packet, error) {
	r := newReader(buf)
	header, err := parseHeader(r)
	if err != nil {
		return Packet{}, err
	}

	pkt := Packet{Header: header}
	body := r.remaining()

	switch header.PacketID {
	case IDMotion:
		v, err := parseMotion(body)
		if err != nil {
			return Packet{}, err
		}
		pkt.Motion = &v
	case IDSession:
		v, err := parseSession(body, header.PacketFormat)
		if err != nil {
			return Packet{}, err
		}
		pkt.Session = &v
	case IDLaps:
		v, err := parseLaps(body, header.PacketFormat)
		if err != nil {
			return Packet{}, err
		}
		pkt.Laps = &v
	case IDEvent:
		v, err := parseEvent(body)
		if err != nil {
			return Packet{}, err
		}
		pkt.Event = &v
	case IDParticipants:
		v, err := parseParticipants(body, header.PacketFormat)
		if err != nil {
			return Packet{}, err
		}
		pkt.Participants = &v
	case IDCarSetups:
		v, err := parseCarSetups(body)
		if err != nil {
			return Packet{}, err
		}
		pkt.CarSetups = &v
	case IDCarTelemetry:
		v, err := parseCarTelemetry(body, header.PacketFormat)
		if err != nil {
			return Packet{}, err
		}
		pkt.CarTelemetry = &v
	case IDCarStatus:
		v, err := parseCarStatus(body)
		if err != nil {
			return Packet{}, err
		}
		pkt.CarStatus = &v
	case IDFinalClassification:
		v, err := parseFinalClassification(body)
		if err != nil {
			return Packet{}, err
		}
		pkt.FinalClassification = &v
	case IDLobbyInfo:
		v, err := parseLobbyInfo(body)
		if err != nil {
			return Packet{}, err
		}
		pkt.LobbyInfo = &v
	case IDCarDamage:
		v, err := parseCarDamage(body)
		if err != nil {
			return Packet{}, err
		}
		pkt.CarDamage = &v
	case IDSessionHistory:
		v, err := parseSessionHistory(body)
		if err != nil {
			return Packet{}, err
		}
		pkt.SessionHistory = &v
	case IDTyreSets:
		v, err := parseTyreSets(body)
		if err != nil {
			return Packet{}, err
		}
		pkt.TyreSets = &v
	case IDMotionEx:
		v, err := parseMotionEx(body)
		if err != nil {
			return Packet{}, err
		}
		pkt.MotionEx = &v
	case IDTimeTrial:
		v, err := parseTimeTrial(body)
		if err != nil {
			return Packet{}, err
		}
		pkt.TimeTrial = &v
	default:
		return Packet{}, unknownEnum("unreachable packet id")
	}

	return pkt, nil
}
