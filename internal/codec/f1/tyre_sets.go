// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package f1

// MaxTyreSets bounds the number of tyre sets a car can have allocated for
// the event (dry plus wet compounds).
const MaxTyreSets = 20

// TyreSetData describes one allocated tyre set's compound, wear and fitted
// status.
type TyreSetData struct {
	ActualTyreCompound uint8
	VisualTyreCompound uint8
	Wear               uint8
	Available          bool
	RecommendedSession uint8
	LifeSpan           uint8
	UsableLife         uint8
	LapDeltaTime       int16
	Fitted             bool
}

// TyreSets lists every tyre set allocated to one car, identified by CarIdx.
type TyreSets struct {
	CarIdx  uint8
	Sets    [MaxTyreSets]TyreSetData
	FittedIdx uint8
}

func parseTyreSets(buf []byte) (TyreSets, error) {
	r := newReader(buf)
	var ts TyreSets

	ts.CarIdx = r.u8()
	for i := 0; i < MaxTyreSets; i++ {
		ts.Sets[i] = TyreSetData{
			ActualTyreCompound: r.u8(),
			VisualTyreCompound: r.u8(),
			Wear:               r.u8(),
			Available:          r.bool8(),
			RecommendedSession: r.u8(),
			LifeSpan:           r.u8(),
			UsableLife:         r.u8(),
			LapDeltaTime:       r.i16(),
			Fitted:             r.bool8(),
		}
	}
	ts.FittedIdx = r.u8()

	return ts, r.err
}
