// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package f1

// TimeTrialDataSet is one recorded attempt: driver/team, lap time, sector
// splits, and assist settings in effect for that attempt.
type TimeTrialDataSet struct {
	CarIdx            uint8
	TeamID            uint8
	LapTimeMS         uint32
	Sector1TimeMS     uint32
	Sector2TimeMS     uint32
	Sector3TimeMS     uint32
	TractionControl   uint8
	GearboxAssist     uint8
	AntiLockBrakes    uint8
	EqualCarPerformance uint8
	CustomSetup       uint8
	Valid             bool
}

// TimeTrial bundles the player's personal best, current session best, and
// the all-time rival lap.
type TimeTrial struct {
	PlayerSessionBest TimeTrialDataSet
	PersonalBest      TimeTrialDataSet
	Rival             TimeTrialDataSet
}

func parseTimeTrialDataSet(r *reader) TimeTrialDataSet {
	return TimeTrialDataSet{
		CarIdx:              r.u8(),
		TeamID:              r.u8(),
		LapTimeMS:           r.u32(),
		Sector1TimeMS:       r.u32(),
		Sector2TimeMS:       r.u32(),
		Sector3TimeMS:       r.u32(),
		TractionControl:     r.u8(),
		GearboxAssist:       r.u8(),
		AntiLockBrakes:      r.u8(),
		EqualCarPerformance: r.u8(),
		CustomSetup:         r.u8(),
		Valid:               r.bool8(),
	}
}

func parseTimeTrial(buf []byte) (TimeTrial, error) {
	r := newReader(buf)
	tt := TimeTrial{
		PlayerSessionBest: parseTimeTrialDataSet(r),
		PersonalBest:      parseTimeTrialDataSet(r),
		Rival:             parseTimeTrialDataSet(r),
	}
	return tt, r.err
}
