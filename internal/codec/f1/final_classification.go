// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package f1

import "fmt"

// ClassificationData is one car's final result at the end of a session.
type ClassificationData struct {
	Position      uint8
	NumLaps       uint8
	GridPosition  uint8
	Points        uint8
	NumPitStops   uint8
	ResultStatus  uint8
	BestLapTimeMS uint32
	TotalRaceTime float64
	PenaltiesTime uint8
	NumPenalties  uint8
	NumTyreStints uint8
	TyreStintsActual [8]uint8
	TyreStintsVisual [8]uint8
	TyreStintsEndLaps [8]uint8
}

// FinalClassification carries the end-of-session result for every car.
type FinalClassification struct {
	NumCars uint8
	Cars    [MaxNumCars]ClassificationData
}

func parseFinalClassification(buf []byte) (FinalClassification, error) {
	r := newReader(buf)
	var fc FinalClassification

	fc.NumCars = r.u8()
	if int(fc.NumCars) > MaxNumCars {
		return FinalClassification{}, outOfRange(fmt.Sprintf("num_cars %d > %d", fc.NumCars, MaxNumCars))
	}

	for i := 0; i < MaxNumCars; i++ {
		d := ClassificationData{
			Position:      r.u8(),
			NumLaps:       r.u8(),
			GridPosition:  r.u8(),
			Points:        r.u8(),
			NumPitStops:   r.u8(),
			ResultStatus:  r.u8(),
			BestLapTimeMS: r.u32(),
			TotalRaceTime: float64(r.f32()),
			PenaltiesTime: r.u8(),
			NumPenalties:  r.u8(),
			NumTyreStints: r.u8(),
		}
		for j := 0; j < 8; j++ {
			d.TyreStintsActual[j] = r.u8()
		}
		for j := 0; j < 8; j++ {
			d.TyreStintsVisual[j] = r.u8()
		}
		for j := 0; j < 8; j++ {
			d.TyreStintsEndLaps[j] = r.u8()
		}
		fc.Cars[i] = d
	}

	return fc, r.err
}
