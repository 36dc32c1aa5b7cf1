// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package f1

// CarSetupData is one car's configured setup.
type CarSetupData struct {
	FrontWing              uint8
	RearWing               uint8
	OnThrottle             uint8
	OffThrottle            uint8
	FrontCamber            float32
	RearCamber             float32
	FrontToe               float32
	RearToe                float32
	FrontSuspension        uint8
	RearSuspension         uint8
	FrontAntiRollBar       uint8
	RearAntiRollBar        uint8
	FrontSuspensionHeight  uint8
	RearSuspensionHeight   uint8
	BrakePressure          uint8
	BrakeBias              uint8
	RearLeftTyrePressure   float32
	RearRightTyrePressure  float32
	FrontLeftTyrePressure  float32
	FrontRightTyrePressure float32
	Ballast                uint8
	FuelLoad               float32
}

// CarSetups carries CarSetupData for every car on track.
type CarSetups struct {
	Cars [MaxNumCars]CarSetupData
}

func parseCarSetups(buf []byte) (CarSetups, error) {
	r := newReader(buf)
	var cs CarSetups
	for i := 0; i < MaxNumCars; i++ {
		cs.Cars[i] = CarSetupData{
			FrontWing:              r.u8(),
			RearWing:               r.u8(),
			OnThrottle:             r.u8(),
			OffThrottle:            r.u8(),
			FrontCamber:            r.f32(),
			RearCamber:             r.f32(),
			FrontToe:               r.f32(),
			RearToe:                r.f32(),
			FrontSuspension:        r.u8(),
			RearSuspension:         r.u8(),
			FrontAntiRollBar:       r.u8(),
			RearAntiRollBar:        r.u8(),
			FrontSuspensionHeight:  r.u8(),
			RearSuspensionHeight:   r.u8(),
			BrakePressure:          r.u8(),
			BrakeBias:              r.u8(),
			RearLeftTyrePressure:   r.f32(),
			RearRightTyrePressure:  r.f32(),
			FrontLeftTyrePressure:  r.f32(),
			FrontRightTyrePressure: r.f32(),
			Ballast:                r.u8(),
			FuelLoad:               r.f32(),
		}
	}
	return cs, r.err
}
