// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package f1

// MaxLapsInHistory bounds the per-session lap history array; the tyre
// stint history array holds 8 entries.
const MaxLapsInHistory = 100

// LapHistoryData is one historical lap's sector splits and validity flag.
type LapHistoryData struct {
	LapTimeMS      uint32
	Sector1TimeMSPart uint16
	Sector1TimeMinutesPart uint8
	Sector2TimeMSPart uint16
	Sector2TimeMinutesPart uint8
	Sector3TimeMSPart uint16
	Sector3TimeMinutesPart uint8
	LapValidBitFlags uint8
}

// TyreStintHistoryData is one tyre stint's compound and end lap.
type TyreStintHistoryData struct {
	EndLap             uint8
	TyreActualCompound uint8
	TyreVisualCompound uint8
}

// SessionHistory is the lap-by-lap and stint-by-stint history for one car,
// identified by CarIdx.
type SessionHistory struct {
	CarIdx               uint8
	NumLaps              uint8
	NumTyreStints        uint8
	BestLapTimeLapNum    uint8
	BestSector1LapNum    uint8
	BestSector2LapNum    uint8
	BestSector3LapNum    uint8
	LapHistory           [MaxLapsInHistory]LapHistoryData
	TyreStintsHistory    [8]TyreStintHistoryData
}

func parseSessionHistory(buf []byte) (SessionHistory, error) {
	r := newReader(buf)
	var sh SessionHistory

	sh.CarIdx = r.u8()
	sh.NumLaps = r.u8()
	sh.NumTyreStints = r.u8()
	sh.BestLapTimeLapNum = r.u8()
	sh.BestSector1LapNum = r.u8()
	sh.BestSector2LapNum = r.u8()
	sh.BestSector3LapNum = r.u8()

	for i := 0; i < MaxLapsInHistory; i++ {
		sh.LapHistory[i] = LapHistoryData{
			LapTimeMS:              r.u32(),
			Sector1TimeMSPart:      r.u16(),
			Sector1TimeMinutesPart: r.u8(),
			Sector2TimeMSPart:      r.u16(),
			Sector2TimeMinutesPart: r.u8(),
			Sector3TimeMSPart:      r.u16(),
			Sector3TimeMinutesPart: r.u8(),
			LapValidBitFlags:       r.u8(),
		}
	}

	for i := 0; i < 8; i++ {
		sh.TyreStintsHistory[i] = TyreStintHistoryData{
			EndLap:             r.u8(),
			TyreActualCompound: r.u8(),
			TyreVisualCompound: r.u8(),
		}
	}

	return sh, r.err
}
