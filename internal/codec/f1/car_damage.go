// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package f1

// CarDamageData is one car's accumulated wear and structural damage.
type CarDamageData struct {
	TyresWear           [4]float32
	TyresDamage         [4]uint8
	BrakesDamage        [4]uint8
	FrontLeftWingDamage  uint8
	FrontRightWingDamage uint8
	RearWingDamage       uint8
	FloorDamage          uint8
	DiffuserDamage       uint8
	SidepodDamage        uint8
	DRSFault             uint8
	ERSFault             uint8
	GearBoxDamage        uint8
	EngineDamage         uint8
	EngineMGUHWear       uint8
	EngineESWear         uint8
	EngineCEWear         uint8
	EngineICEWear        uint8
	EngineMGUKWear       uint8
	EngineTCWear         uint8
	EngineBlown          uint8
	EngineSeized         uint8
}

// CarDamage carries CarDamageData for every car on track.
type CarDamage struct {
	Cars [MaxNumCars]CarDamageData
}

func parseCarDamage(buf []byte) (CarDamage, error) {
	r := newReader(buf)
	var cd CarDamage
	for i := 0; i < MaxNumCars; i++ {
		var d CarDamageData
		for j := 0; j < 4; j++ {
			d.TyresWear[j] = r.f32()
		}
		for j := 0; j < 4; j++ {
			d.TyresDamage[j] = r.u8()
		}
		for j := 0; j < 4; j++ {
			d.BrakesDamage[j] = r.u8()
		}
		d.FrontLeftWingDamage = r.u8()
		d.FrontRightWingDamage = r.u8()
		d.RearWingDamage = r.u8()
		d.FloorDamage = r.u8()
		d.DiffuserDamage = r.u8()
		d.SidepodDamage = r.u8()
		d.DRSFault = r.u8()
		d.ERSFault = r.u8()
		d.GearBoxDamage = r.u8()
		d.EngineDamage = r.u8()
		d.EngineMGUHWear = r.u8()
		d.EngineESWear = r.u8()
		d.EngineCEWear = r.u8()
		d.EngineICEWear = r.u8()
		d.EngineMGUKWear = r.u8()
		d.EngineTCWear = r.u8()
		d.EngineBlown = r.u8()
		d.EngineSeized = r.u8()
		cd.Cars[i] = d
	}
	return cd, r.err
}
