// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package f1

import "fmt"

// EventCode is the 4-character ASCII discriminator at the start of every
// Event packet body.
type EventCode string

const (
	EventSessionStarted       EventCode = "SSTA"
	EventSessionEnded         EventCode = "SEND"
	EventFastestLap           EventCode = "FTLP"
	EventRetirement           EventCode = "RTMT"
	EventDRSEnabled           EventCode = "DRSE"
	EventDRSDisabled          EventCode = "DRSD"
	EventTeamMateInPits       EventCode = "TMPT"
	EventChequeredFlag        EventCode = "CHQF"
	EventRaceWinner           EventCode = "RCWN"
	EventPenaltyIssued        EventCode = "PENA"
	EventSpeedTrapTriggered   EventCode = "SPTP"
	EventStartLights          EventCode = "STLG"
	EventLightsOut            EventCode = "LGOT"
	EventDriveThroughServed   EventCode = "DTSV"
	EventStopGoServed         EventCode = "SGSV"
	EventFlashback            EventCode = "FLBK"
	EventButtonStatus         EventCode = "BUTN"
	EventRedFlag              EventCode = "RDFL"
	EventOvertake             EventCode = "OVTK"
	EventSafetyCar            EventCode = "SCAR"
	EventCollision            EventCode = "COLL"
)

var knownEventCodes = map[EventCode]bool{
	EventSessionStarted: true, EventSessionEnded: true, EventFastestLap: true,
	EventRetirement: true, EventDRSEnabled: true, EventDRSDisabled: true,
	EventTeamMateInPits: true, EventChequeredFlag: true, EventRaceWinner: true,
	EventPenaltyIssued: true, EventSpeedTrapTriggered: true, EventStartLights: true,
	EventLightsOut: true, EventDriveThroughServed: true, EventStopGoServed: true,
	EventFlashback: true, EventButtonStatus: true, EventRedFlag: true,
	EventOvertake: true, EventSafetyCar: true, EventCollision: true,
}

// FastestLapDetail is the payload of an EventFastestLap event.
type FastestLapDetail struct {
	VehicleIndex uint8
	LapTime      float32
}

// VehicleDetail covers every single-vehicle-index event (Retirement,
// TeamMateInPits, RaceWinner, DriveThroughServed, StopGoServed).
type VehicleDetail struct {
	VehicleIndex uint8
}

// PenaltyDetail is the payload of an EventPenaltyIssued event.
type PenaltyDetail struct {
	PenaltyType      uint8
	InfringementType uint8
	VehicleIndex     uint8
	OtherVehicleIndex uint8
	Time             uint8
	LapNum           uint8
	PlacesGained     uint8
}

// SpeedTrapDetail is the payload of an EventSpeedTrapTriggered event.
type SpeedTrapDetail struct {
	VehicleIndex                      uint8
	Speed                             float32
	IsOverallFastestInSession         bool
	IsDriverFastestInSession          bool
	FastestVehicleIndexInSession      uint8
	FastestSpeedInSession             float32
}

// StartLightsDetail is the payload of an EventStartLights event.
type StartLightsDetail struct {
	NumLights uint8
}

// FlashbackDetail is the payload of an EventFlashback event.
type FlashbackDetail struct {
	FrameIdentifier       uint32
	FlashbackSessionTime  float32
}

// ButtonsDetail is the payload of an EventButtonStatus event.
type ButtonsDetail struct {
	ButtonStatus uint32
}

// OvertakeDetail is the payload of an EventOvertake event.
type OvertakeDetail struct {
	OvertakingVehicleIndex uint8
	OvertakenVehicleIndex  uint8
}

// SafetyCarDetail is the payload of an EventSafetyCar event.
type SafetyCarDetail struct {
	SafetyCarType uint8
	EventType     uint8
}

// CollisionDetail is the payload of an EventCollision event.
type CollisionDetail struct {
	VehicleIndex      uint8
	OtherVehicleIndex uint8
}

// Event is a tagged union over the 21 known event codes; exactly one
// detail field is populated, or none for events with no payload.
type Event struct {
	Code EventCode

	FastestLap         *FastestLapDetail
	Vehicle            *VehicleDetail
	Penalty            *PenaltyDetail
	SpeedTrap          *SpeedTrapDetail
	StartLights        *StartLightsDetail
	Flashback          *FlashbackDetail
	Buttons            *ButtonsDetail
	Overtake           *OvertakeDetail
	SafetyCar          *SafetyCarDetail
	Collision          *CollisionDetail
}

func checkVehicleIndex(v uint8) error {
	if v >= MaxNumCars {
		return outOfRange(fmt.Sprintf("vehicle_index %d >= %d", v, MaxNumCars))
	}
	return nil
}

func parseEvent(buf []byte) (Event, error) {
	if len(buf) < 4 {
		return Event{}, truncated("event code shorter than 4 bytes")
	}
	code := EventCode(buf[0:4])
	if !knownEventCodes[code] {
		return Event{}, unknownEnum(fmt.Sprintf("event code %q", string(code)))
	}

	r := newReader(buf[4:])
	ev := Event{Code: code}

	switch code {
	case EventFastestLap:
		v := uint8(r.u8())
		lap := r.f32()
		if err := checkVehicleIndex(v); err != nil {
			return Event{}, err
		}
		ev.FastestLap = &FastestLapDetail{VehicleIndex: v, LapTime: lap}

	case EventRetirement, EventTeamMateInPits, EventRaceWinner,
		EventDriveThroughServed, EventStopGoServed:
		v := r.u8()
		if err := checkVehicleIndex(v); err != nil {
			return Event{}, err
		}
		ev.Vehicle = &VehicleDetail{VehicleIndex: v}

	case EventPenaltyIssued:
		p := PenaltyDetail{
			PenaltyType:       r.u8(),
			InfringementType:  r.u8(),
			VehicleIndex:      r.u8(),
			OtherVehicleIndex: r.u8(),
			Time:              r.u8(),
			LapNum:            r.u8(),
			PlacesGained:      r.u8(),
		}
		if err := checkVehicleIndex(p.VehicleIndex); err != nil {
			return Event{}, err
		}
		ev.Penalty = &p

	case EventSpeedTrapTriggered:
		v := r.u8()
		speed := r.f32()
		overallFastest := r.bool8()
		driverFastest := r.bool8()
		fastestIdx := r.u8()
		fastestSpeed := r.f32()
		if err := checkVehicleIndex(v); err != nil {
			return Event{}, err
		}
		ev.SpeedTrap = &SpeedTrapDetail{
			VehicleIndex:                 v,
			Speed:                        speed,
			IsOverallFastestInSession:    overallFastest,
			IsDriverFastestInSession:     driverFastest,
			FastestVehicleIndexInSession: fastestIdx,
			FastestSpeedInSession:        fastestSpeed,
		}

	case EventStartLights:
		ev.StartLights = &StartLightsDetail{NumLights: r.u8()}

	case EventFlashback:
		ev.Flashback = &FlashbackDetail{FrameIdentifier: r.u32(), FlashbackSessionTime: r.f32()}

	case EventButtonStatus:
		ev.Buttons = &ButtonsDetail{ButtonStatus: r.u32()}

	case EventOvertake:
		ev.Overtake = &OvertakeDetail{OvertakingVehicleIndex: r.u8(), OvertakenVehicleIndex: r.u8()}

	case EventSafetyCar:
		ev.SafetyCar = &SafetyCarDetail{SafetyCarType: r.u8(), EventType: r.u8()}

	case EventCollision:
		c := CollisionDetail{VehicleIndex: r.u8(), OtherVehicleIndex: r.u8()}
		if err := checkVehicleIndex(c.VehicleIndex); err != nil {
			return Event{}, err
		}
		ev.Collision = &c

	case EventSessionStarted, EventSessionEnded, EventDRSEnabled, EventDRSDisabled,
		EventChequeredFlag, EventLightsOut, EventRedFlag:
		// no payload

	default:
		return Event{}, unknownEnum(fmt.Sprintf("event code %q not handled", string(code)))
	}

	if r.err != nil {
		return Event{}, r.err
	}
	return ev, nil
}
