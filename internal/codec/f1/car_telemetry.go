// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package f1

import "fmt"

// CarTelemetryData is the per-car instantaneous telemetry sample (60 bytes
// on the wire): speed, pedal/wheel inputs, engine state, and tyre/brake
// temperatures and pressures.
type CarTelemetryData struct {
	Speed                  uint16
	Throttle               float32
	Steer                  float32
	Brake                  float32
	Clutch                 uint8
	Gear                   int8
	EngineRPM              uint16
	DRSEnabled             bool
	RevLightsPercent       uint8
	RevLightsBitValue      uint16
	BrakesTemperature      [4]uint16
	TyresSurfaceTemperature [4]uint8
	TyresInnerTemperature  [4]uint8
	EngineTemperature      uint16
	TyresPressure          [4]float32
	SurfaceType            [4]uint8
}

// CarTelemetry carries CarTelemetryData for every car plus a few
// player-facing HUD fields gated on packet_format.
type CarTelemetry struct {
	Cars                          [MaxNumCars]CarTelemetryData
	MFDPanelIndex                  uint8
	MFDPanelIndexSecondaryPlayer   uint8
	SuggestedGear                  int8
}

func parseCarTelemetryData(r *reader) (CarTelemetryData, error) {
	var d CarTelemetryData
	d.Speed = r.u16()

	d.Throttle = r.f32()
	if d.Throttle < -0.1 || d.Throttle > 1.1 {
		return CarTelemetryData{}, outOfRange(fmt.Sprintf("throttle %f outside [-0.1,1.1]", d.Throttle))
	}
	d.Steer = r.f32()
	if d.Steer < -1.1 || d.Steer > 1.1 {
		return CarTelemetryData{}, outOfRange(fmt.Sprintf("steer %f outside [-1.1,1.1]", d.Steer))
	}
	d.Brake = r.f32()
	if d.Brake < -0.1 || d.Brake > 1.1 {
		return CarTelemetryData{}, outOfRange(fmt.Sprintf("brake %f outside [-0.1,1.1]", d.Brake))
	}

	d.Clutch = r.u8()
	if d.Clutch > 100 {
		return CarTelemetryData{}, outOfRange(fmt.Sprintf("clutch %d > 100", d.Clutch))
	}

	d.Gear = r.i8()
	if d.Gear < -1 || d.Gear > 8 {
		return CarTelemetryData{}, outOfRange(fmt.Sprintf("gear %d outside [-1,8]", d.Gear))
	}

	d.EngineRPM = r.u16()
	d.DRSEnabled = r.bool8()

	d.RevLightsPercent = r.u8()
	if d.RevLightsPercent > 100 {
		return CarTelemetryData{}, outOfRange(fmt.Sprintf("rev_lights_percent %d > 100", d.RevLightsPercent))
	}
	d.RevLightsBitValue = r.u16()

	for i := 0; i < 4; i++ {
		d.BrakesTemperature[i] = r.u16()
	}
	for i := 0; i < 4; i++ {
		d.TyresSurfaceTemperature[i] = r.u8()
	}
	for i := 0; i < 4; i++ {
		d.TyresInnerTemperature[i] = r.u8()
	}
	d.EngineTemperature = r.u16()
	for i := 0; i < 4; i++ {
		d.TyresPressure[i] = r.f32()
	}
	for i := 0; i < 4; i++ {
		d.SurfaceType[i] = r.u8()
	}

	return d, r.err
}

func parseCarTelemetry(buf []byte, _ uint16) (CarTelemetry, error) {
	r := newReader(buf)
	var ct CarTelemetry
	for i := 0; i < MaxNumCars; i++ {
		d, err := parseCarTelemetryData(r)
		if err != nil {
			return CarTelemetry{}, err
		}
		ct.Cars[i] = d
	}
	if r.err != nil {
		return CarTelemetry{}, r.err
	}
	ct.MFDPanelIndex = r.u8()
	ct.MFDPanelIndexSecondaryPlayer = r.u8()
	ct.SuggestedGear = r.i8()
	return ct, r.err
}
