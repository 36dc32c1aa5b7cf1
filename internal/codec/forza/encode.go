// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package forza

import (
	"encoding/binary"
	"math"
)

// Encode serializes rec back to a datagram of the given target length
// (232, 311, 324 or 331). It exists only to exercise the round-trip
// property in tests; the live pipeline never encodes Forza datagrams.
func Encode(rec Record, length int) []byte {
	buf := make([]byte, length)

	offset := 0
	if length == FH4SledShift {
		offset = fh4Offset
	}
	encodeSled(buf[offset:], rec.Sled)

	if length >= DashSize && rec.Dash != nil {
		encodeDash(buf, offset, *rec.Dash)
	}
	if length >= WearSize && rec.Wear != nil {
		encodeWear(buf, *rec.Wear)
	}
	return buf
}

type writer struct {
	buf []byte
	pos int
}

func (w *writer) putI32(v int32) {
	binary.LittleEndian.PutUint32(w.buf[w.pos:], uint32(v))
	w.pos += 4
}
func (w *writer) putU32(v uint32) {
	binary.LittleEndian.PutUint32(w.buf[w.pos:], v)
	w.pos += 4
}
func (w *writer) putF32(v float32) {
	binary.LittleEndian.PutUint32(w.buf[w.pos:], math.Float32bits(v))
	w.pos += 4
}

func encodeSled(buf []byte, s Sled) {
	w := &writer{buf: buf}
	if s.IsRaceOn {
		w.putI32(1)
	} else {
		w.putI32(0)
	}
	w.putU32(s.TimestampMS)
	w.putF32(s.EngineMaxRPM)
	w.putF32(s.EngineIdleRPM)
	w.putF32(s.CurrentEngineRPM)
	w.putF32(s.AccelerationX)
	w.putF32(s.AccelerationY)
	w.putF32(s.AccelerationZ)
	w.putF32(s.VelocityX)
	w.putF32(s.VelocityY)
	w.putF32(s.VelocityZ)
	w.putF32(s.AngularVelocityX)
	w.putF32(s.AngularVelocityY)
	w.putF32(s.AngularVelocityZ)
	w.putF32(s.Yaw)
	w.putF32(s.Pitch)
	w.putF32(s.Roll)
	w.putF32(s.NormSuspensionTravelFL)
	w.putF32(s.NormSuspensionTravelFR)
	w.putF32(s.NormSuspensionTravelRL)
	w.putF32(s.NormSuspensionTravelRR)
	w.putF32(s.TireSlipRatioFL)
	w.putF32(s.TireSlipRatioFR)
	w.putF32(s.TireSlipRatioRL)
	w.putF32(s.TireSlipRatioRR)
	w.putF32(s.WheelRotationSpeedFL)
	w.putF32(s.WheelRotationSpeedFR)
	w.putF32(s.WheelRotationSpeedRL)
	w.putF32(s.WheelRotationSpeedRR)
	w.putI32(s.WheelOnRumbleStripFL)
	w.putI32(s.WheelOnRumbleStripFR)
	w.putI32(s.WheelOnRumbleStripRL)
	w.putI32(s.WheelOnRumbleStripRR)
	w.putF32(s.WheelInPuddleFL)
	w.putF32(s.WheelInPuddleFR)
	w.putF32(s.WheelInPuddleRL)
	w.putF32(s.WheelInPuddleRR)
	w.putF32(s.SurfaceRumbleFL)
	w.putF32(s.SurfaceRumbleFR)
	w.putF32(s.SurfaceRumbleRL)
	w.putF32(s.SurfaceRumbleRR)
	w.putF32(s.TireSlipAngleFL)
	w.putF32(s.TireSlipAngleFR)
	w.putF32(s.TireSlipAngleRL)
	w.putF32(s.TireSlipAngleRR)
	w.putF32(s.TireCombinedSlipFL)
	w.putF32(s.TireCombinedSlipFR)
	w.putF32(s.TireCombinedSlipRL)
	w.putF32(s.TireCombinedSlipRR)
	w.putF32(s.SuspensionTravelMetersFL)
	w.putF32(s.SuspensionTravelMetersFR)
	w.putF32(s.SuspensionTravelMetersRL)
	w.putF32(s.SuspensionTravelMetersRR)
	w.putI32(s.CarID)
	w.putI32(int32(s.CarClass))
	w.putI32(s.CarPerformanceIndex)
	w.putI32(int32(s.DriveType))
	w.putI32(s.NumCylinders)
}

func encodeDash(buf []byte, offset int, d Dash) {
	at := func(abs int) []byte { return buf[offset+abs:] }
	binary.LittleEndian.PutUint32(at(232), math.Float32bits(d.PositionX))
	binary.LittleEndian.PutUint32(at(236), math.Float32bits(d.PositionY))
	binary.LittleEndian.PutUint32(at(240), math.Float32bits(d.PositionZ))
	binary.LittleEndian.PutUint32(at(244), math.Float32bits(d.Speed))
	binary.LittleEndian.PutUint32(at(248), math.Float32bits(d.Power))
	binary.LittleEndian.PutUint32(at(252), math.Float32bits(d.Torque))
	binary.LittleEndian.PutUint32(at(256), math.Float32bits(d.TireTempFL))
	binary.LittleEndian.PutUint32(at(260), math.Float32bits(d.TireTempFR))
	binary.LittleEndian.PutUint32(at(264), math.Float32bits(d.TireTempRL))
	binary.LittleEndian.PutUint32(at(268), math.Float32bits(d.TireTempRR))
	binary.LittleEndian.PutUint32(at(272), math.Float32bits(d.Boost))
	binary.LittleEndian.PutUint32(at(276), math.Float32bits(d.Fuel))
	binary.LittleEndian.PutUint32(at(280), math.Float32bits(d.DistanceTraveled))
	binary.LittleEndian.PutUint32(at(284), math.Float32bits(d.BestLap))
	binary.LittleEndian.PutUint32(at(288), math.Float32bits(d.LastLap))
	binary.LittleEndian.PutUint32(at(292), math.Float32bits(d.CurrentLap))
	binary.LittleEndian.PutUint32(at(296), math.Float32bits(d.CurrentRaceTime))
	binary.LittleEndian.PutUint16(at(300), d.LapNumber)
	at(302)[0] = d.RacePosition
	at(303)[0] = d.Accelerator
	at(304)[0] = d.Brake
	at(305)[0] = d.Clutch
	at(306)[0] = d.Handbrake
	at(307)[0] = d.Gear
	at(308)[0] = byte(d.Steer)
	at(309)[0] = byte(d.NormalizedDrivingLine)
	at(310)[0] = byte(d.NormalizedAIBrakeDifference)
}

func encodeWear(buf []byte, w Wear) {
	binary.LittleEndian.PutUint32(buf[311:], math.Float32bits(w.TireWearFL))
	binary.LittleEndian.PutUint32(buf[315:], math.Float32bits(w.TireWearFR))
	binary.LittleEndian.PutUint32(buf[319:], math.Float32bits(w.TireWearRL))
	binary.LittleEndian.PutUint32(buf[323:], math.Float32bits(w.TireWearRR))
	if len(buf) >= 331 {
		binary.LittleEndian.PutUint32(buf[327:], uint32(w.TrackID))
	}
}
