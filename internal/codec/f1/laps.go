// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package f1

// LapData is one car's current-lap progress and timing.
type LapData struct {
	LastLapTimeMS              uint32
	CurrentLapTimeMS           uint32
	Sector1TimeMSPart          uint16
	Sector1TimeMinutesPart     uint8
	Sector2TimeMSPart          uint16
	Sector2TimeMinutesPart     uint8
	DeltaToCarInFrontMSPart    uint16
	DeltaToCarInFrontMinutesPart uint8
	DeltaToRaceLeaderMSPart    uint16
	DeltaToRaceLeaderMinutesPart uint8
	LapDistance                float32
	TotalDistance              float32
	SafetyCarDelta             float32
	CarPosition                uint8
	CurrentLapNum              uint8
	PitStatus                  uint8
	NumPitStops                uint8
	Sector                     uint8
	CurrentLapInvalid          bool
	Penalties                  uint8
	TotalWarnings               uint8
	CornerCuttingWarnings       uint8
	NumUnservedDriveThroughPens uint8
	NumUnservedStopGoPens       uint8
	GridPosition                uint8
	DriverStatus                uint8
	ResultStatus                uint8
	PitLaneTimerActive           bool
	PitLaneTimeInLaneMS          uint16
	PitStopTimerMS               uint16
	PitStopShouldServePen        uint8
}

// Laps carries LapData for every car on track.
type Laps struct {
	Cars [MaxNumCars]LapData
}

func parseLaps(buf []byte, packetFormat uint16) (Laps, error) {
	r := newReader(buf)
	var l Laps
	for i := 0; i < MaxNumCars; i++ {
		d := LapData{
			LastLapTimeMS:                r.u32(),
			CurrentLapTimeMS:              r.u32(),
			Sector1TimeMSPart:             r.u16(),
			Sector1TimeMinutesPart:        r.u8(),
			Sector2TimeMSPart:             r.u16(),
			Sector2TimeMinutesPart:        r.u8(),
			DeltaToCarInFrontMSPart:       r.u16(),
			DeltaToCarInFrontMinutesPart:  r.u8(),
			DeltaToRaceLeaderMSPart:       r.u16(),
			DeltaToRaceLeaderMinutesPart:  r.u8(),
			LapDistance:                   r.f32(),
			TotalDistance:                 r.f32(),
			SafetyCarDelta:                r.f32(),
			CarPosition:                   r.u8(),
			CurrentLapNum:                 r.u8(),
			PitStatus:                     r.u8(),
			NumPitStops:                   r.u8(),
			Sector:                        r.u8(),
			CurrentLapInvalid:             r.bool8(),
			Penalties:                     r.u8(),
			TotalWarnings:                 r.u8(),
			CornerCuttingWarnings:         r.u8(),
			NumUnservedDriveThroughPens:   r.u8(),
			NumUnservedStopGoPens:         r.u8(),
			GridPosition:                  r.u8(),
			DriverStatus:                  r.u8(),
			ResultStatus:                  r.u8(),
			PitLaneTimerActive:            r.bool8(),
			PitLaneTimeInLaneMS:           r.u16(),
			PitStopTimerMS:                r.u16(),
			PitStopShouldServePen:         r.u8(),
		}
		l.Cars[i] = d
	}
	_ = packetFormat
	return l, r.err
}
