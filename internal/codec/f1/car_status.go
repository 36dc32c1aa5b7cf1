// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package f1

// CarStatusData is one car's consumable/assist state: fuel, tyres, ERS,
// damage flags.
type CarStatusData struct {
	TractionControl        uint8
	AntiLockBrakes         uint8
	FuelMix                uint8
	FrontBrakeBias         uint8
	PitLimiterStatus       uint8
	FuelInTank             float32
	FuelCapacity           float32
	FuelRemainingLaps      float32
	MaxRPM                 uint16
	IdleRPM                uint16
	MaxGears               uint8
	DRSAllowed             uint8
	DRSActivationDistance  uint16
	ActualTyreCompound     uint8
	VisualTyreCompound     uint8
	TyresAgeLaps           uint8
	VehicleFIAFlags        int8
	EnginePowerICE         float32
	EnginePowerMGUK        float32
	ERSStoreEnergy         float32
	ERSDeployMode          uint8
	ERSHarvestedThisLapMGUK float32
	ERSHarvestedThisLapMGUH float32
	ERSDeployedThisLap     float32
	NetworkPaused          uint8
}

// CarStatus carries CarStatusData for every car on track.
type CarStatus struct {
	Cars [MaxNumCars]CarStatusData
}

func parseCarStatus(buf []byte) (CarStatus, error) {
	r := newReader(buf)
	var cs CarStatus
	for i := 0; i < MaxNumCars; i++ {
		cs.Cars[i] = CarStatusData{
			TractionControl:         r.u8(),
			AntiLockBrakes:          r.u8(),
			FuelMix:                 r.u8(),
			FrontBrakeBias:          r.u8(),
			PitLimiterStatus:        r.u8(),
			FuelInTank:              r.f32(),
			FuelCapacity:            r.f32(),
			FuelRemainingLaps:       r.f32(),
			MaxRPM:                  r.u16(),
			IdleRPM:                 r.u16(),
			MaxGears:                r.u8(),
			DRSAllowed:              r.u8(),
			DRSActivationDistance:   r.u16(),
			ActualTyreCompound:      r.u8(),
			VisualTyreCompound:      r.u8(),
			TyresAgeLaps:            r.u8(),
			VehicleFIAFlags:         r.i8(),
			EnginePowerICE:          r.f32(),
			EnginePowerMGUK:         r.f32(),
			ERSStoreEnergy:          r.f32(),
			ERSDeployMode:           r.u8(),
			ERSHarvestedThisLapMGUK: r.f32(),
			ERSHarvestedThisLapMGUH: r.f32(),
			ERSDeployedThisLap:      r.f32(),
			NetworkPaused:           r.u8(),
		}
	}
	return cs, r.err
}
