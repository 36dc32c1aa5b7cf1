// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package f1

import "fmt"

// MaxNumParticipants caps the participant count field.
const MaxNumParticipants = MaxNumCars

// ParticipantData identifies one competitor: driver, team, and (2023+)
// per-driver race-number/platform metadata.
type ParticipantData struct {
	AIControlled    bool
	DriverID        uint8
	NetworkID       uint8
	TeamID          uint8
	MyTeam          uint8
	RaceNumber      uint8
	Nationality     uint8
	Name            string
	YourTelemetry   uint8
	ShowOnlineNames uint8 // 2023+
	Platform        uint8 // 2023+
}

// Participants lists every competitor in the session.
type Participants struct {
	NumActiveCars uint8
	Cars          [MaxNumParticipants]ParticipantData
}

func parseParticipants(buf []byte, packetFormat uint16) (Participants, error) {
	r := newReader(buf)
	var p Participants

	p.NumActiveCars = r.u8()
	if int(p.NumActiveCars) > MaxNumParticipants {
		return Participants{}, outOfRange(fmt.Sprintf("num_active_cars %d > %d", p.NumActiveCars, MaxNumParticipants))
	}

	for i := 0; i < MaxNumCars; i++ {
		d := ParticipantData{
			AIControlled: r.bool8(),
			DriverID:     r.u8(),
			NetworkID:    r.u8(),
			TeamID:       r.u8(),
			MyTeam:       r.u8(),
			RaceNumber:   r.u8(),
			Nationality:  r.u8(),
		}
		nameBytes := r.need(48)
		d.Name = cStringFromBytes(nameBytes)
		d.YourTelemetry = r.u8()
		if packetFormat >= 2023 {
			d.ShowOnlineNames = r.u8()
			d.Platform = r.u8()
		}
		p.Cars[i] = d
	}

	return p, r.err
}

func cStringFromBytes(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
