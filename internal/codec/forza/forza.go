// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package forza decodes the Forza Motorsport/Horizon "data out" UDP
// datagram into a typed record. Layout is selected purely by datagram
// length: 232 bytes is sled-only, 311 adds the dash block, 324 is the FH4
// variant (sled shifted 12 bytes to make room for a leading prefix), and
// 331 adds tire wear and a track id.
package forza

import (
	"encoding/binary"
	"fmt"
	"math"
)

const (
	SledSize     = 232
	DashSize     = 311
	FH4SledShift = 324
	WearSize     = 331

	fh4Offset = 12
)

// CarClass is the closed car-class enum Forza encodes as an int32.
type CarClass int32

const (
	CarClassD CarClass = iota
	CarClassC
	CarClassB
	CarClassA
	CarClassS1
	CarClassS2
	CarClassS3
	CarClassX
)

func (c CarClass) valid() bool { return c >= CarClassD && c <= CarClassX }

// DriveType is the closed drivetrain enum Forza encodes as an int32.
type DriveType int32

const (
	DriveFWD DriveType = iota
	DriveRWD
	DriveAWD
)

func (d DriveType) valid() bool { return d >= DriveFWD && d <= DriveAWD }

// ParseError reports why a datagram could not be decoded into a Record.
type ParseError struct {
	Kind   string
	Detail string
}

func (e *ParseError) Error() string { return fmt.Sprintf("forza: %s: %s", e.Kind, e.Detail) }

func truncated(detail string) error  { return &ParseError{Kind: "Truncated", Detail: detail} }
func invalidBool(detail string) error { return &ParseError{Kind: "InvalidBool", Detail: detail} }
func unknownEnum(detail string) error { return &ParseError{Kind: "UnknownEnum", Detail: detail} }

// Sled holds the fields present in every Forza variant (offset 0, or +12
// for the FH4 324-byte layout).
type Sled struct {
	IsRaceOn                bool
	TimestampMS             uint32
	EngineMaxRPM            float32
	EngineIdleRPM           float32
	CurrentEngineRPM        float32
	AccelerationX           float32
	AccelerationY           float32
	AccelerationZ           float32
	VelocityX               float32
	VelocityY               float32
	VelocityZ               float32
	AngularVelocityX        float32
	AngularVelocityY        float32
	AngularVelocityZ        float32
	Yaw                     float32
	Pitch                   float32
	Roll                    float32
	NormSuspensionTravelFL  float32
	NormSuspensionTravelFR  float32
	NormSuspensionTravelRL  float32
	NormSuspensionTravelRR  float32
	TireSlipRatioFL         float32
	TireSlipRatioFR         float32
	TireSlipRatioRL         float32
	TireSlipRatioRR         float32
	WheelRotationSpeedFL    float32
	WheelRotationSpeedFR    float32
	WheelRotationSpeedRL    float32
	WheelRotationSpeedRR    float32
	WheelOnRumbleStripFL    int32
	WheelOnRumbleStripFR    int32
	WheelOnRumbleStripRL    int32
	WheelOnRumbleStripRR    int32
	WheelInPuddleFL         float32
	WheelInPuddleFR         float32
	WheelInPuddleRL         float32
	WheelInPuddleRR         float32
	SurfaceRumbleFL         float32
	SurfaceRumbleFR         float32
	SurfaceRumbleRL         float32
	SurfaceRumbleRR         float32
	TireSlipAngleFL         float32
	TireSlipAngleFR         float32
	TireSlipAngleRL         float32
	TireSlipAngleRR         float32
	TireCombinedSlipFL      float32
	TireCombinedSlipFR      float32
	TireCombinedSlipRL      float32
	TireCombinedSlipRR      float32
	SuspensionTravelMetersFL float32
	SuspensionTravelMetersFR float32
	SuspensionTravelMetersRL float32
	SuspensionTravelMetersRR float32
	CarID                   int32
	CarClass                CarClass
	CarPerformanceIndex     int32
	DriveType               DriveType
	NumCylinders            int32
}

// Dash holds the fields present from 311 bytes onward.
type Dash struct {
	PositionX                    float32
	PositionY                    float32
	PositionZ                    float32
	Speed                        float32
	Power                        float32
	Torque                       float32
	TireTempFL                   float32
	TireTempFR                   float32
	TireTempRL                   float32
	TireTempRR                   float32
	Boost                        float32
	Fuel                         float32
	DistanceTraveled             float32
	BestLap                      float32
	LastLap                      float32
	CurrentLap                  float32
	CurrentRaceTime              float32
	LapNumber                    uint16
	RacePosition                 uint8
	Accelerator                  uint8
	Brake                        uint8
	Clutch                       uint8
	Handbrake                    uint8
	Gear                         uint8
	Steer                        int8
	NormalizedDrivingLine        int8
	NormalizedAIBrakeDifference  int8
}

// Wear holds the fields present from 331 bytes onward.
type Wear struct {
	TireWearFL float32
	TireWearFR float32
	TireWearRL float32
	TireWearRR float32
	TrackID    int32
}

// Record is the fully decoded datagram; Dash and Wear are nil when the
// observed length did not include them.
type Record struct {
	Length int
	Sled   Sled
	Dash   *Dash
	Wear   *Wear
}

// Parse decodes buf using the length-driven dispatch described in the
// package doc.
func Parse(buf []byte) (Record, error) {
	n := len(buf)
	if n < SledSize {
		return Record{}, truncated(fmt.Sprintf("length %d below minimum %d", n, SledSize))
	}

	offset := 0
	if n == FH4SledShift {
		offset = fh4Offset
	}

	rec := Record{Length: n}
	if err := decodeSled(buf[offset:], &rec.Sled); err != nil {
		return Record{}, err
	}

	if n >= DashSize {
		d := Dash{}
		if err := decodeDash(buf, offset, &d); err != nil {
			return Record{}, err
		}
		rec.Dash = &d
	}

	if n >= WearSize {
		w := Wear{}
		decodeWear(buf, &w)
		rec.Wear = &w
	}

	return rec, nil
}

func decodeSled(buf []byte, s *Sled) error {
	if len(buf) < SledSize {
		return truncated("sled block shorter than 232 bytes after offset")
	}
	r := newReader(buf)

	isRaceOn := r.i32()
	if isRaceOn != 0 && isRaceOn != 1 {
		return invalidBool(fmt.Sprintf("is_race_on = %d", isRaceOn))
	}
	s.IsRaceOn = isRaceOn == 1

	s.TimestampMS = r.u32()
	s.EngineMaxRPM = r.f32()
	s.EngineIdleRPM = r.f32()
	s.CurrentEngineRPM = r.f32()
	s.AccelerationX = r.f32()
	s.AccelerationY = r.f32()
	s.AccelerationZ = r.f32()
	s.VelocityX = r.f32()
	s.VelocityY = r.f32()
	s.VelocityZ = r.f32()
	s.AngularVelocityX = r.f32()
	s.AngularVelocityY = r.f32()
	s.AngularVelocityZ = r.f32()
	s.Yaw = r.f32()
	s.Pitch = r.f32()
	s.Roll = r.f32()
	s.NormSuspensionTravelFL = r.f32()
	s.NormSuspensionTravelFR = r.f32()
	s.NormSuspensionTravelRL = r.f32()
	s.NormSuspensionTravelRR = r.f32()
	s.TireSlipRatioFL = r.f32()
	s.TireSlipRatioFR = r.f32()
	s.TireSlipRatioRL = r.f32()
	s.TireSlipRatioRR = r.f32()
	s.WheelRotationSpeedFL = r.f32()
	s.WheelRotationSpeedFR = r.f32()
	s.WheelRotationSpeedRL = r.f32()
	s.WheelRotationSpeedRR = r.f32()
	s.WheelOnRumbleStripFL = r.i32()
	s.WheelOnRumbleStripFR = r.i32()
	s.WheelOnRumbleStripRL = r.i32()
	s.WheelOnRumbleStripRR = r.i32()
	s.WheelInPuddleFL = r.f32()
	s.WheelInPuddleFR = r.f32()
	s.WheelInPuddleRL = r.f32()
	s.WheelInPuddleRR = r.f32()
	s.SurfaceRumbleFL = r.f32()
	s.SurfaceRumbleFR = r.f32()
	s.SurfaceRumbleRL = r.f32()
	s.SurfaceRumbleRR = r.f32()
	s.TireSlipAngleFL = r.f32()
	s.TireSlipAngleFR = r.f32()
	s.TireSlipAngleRL = r.f32()
	s.TireSlipAngleRR = r.f32()
	s.TireCombinedSlipFL = r.f32()
	s.TireCombinedSlipFR = r.f32()
	s.TireCombinedSlipRL = r.f32()
	s.TireCombinedSlipRR = r.f32()
	s.SuspensionTravelMetersFL = r.f32()
	s.SuspensionTravelMetersFR = r.f32()
	s.SuspensionTravelMetersRL = r.f32()
	s.SuspensionTravelMetersRR = r.f32()
	s.CarID = r.i32()

	carClass := CarClass(r.i32())
	if !carClass.valid() {
		return unknownEnum(fmt.Sprintf("car_class = %d", carClass))
	}
	s.CarClass = carClass

	s.CarPerformanceIndex = r.i32()

	driveType := DriveType(r.i32())
	if !driveType.valid() {
		return unknownEnum(fmt.Sprintf("drive_type = %d", driveType))
	}
	s.DriveType = driveType

	s.NumCylinders = r.i32()
	return r.err
}

// dash field offsets are absolute from the start of the datagram, shifted
// by fh4Offset when the 324-byte FH4 layout is in play.
func decodeDash(buf []byte, offset int, d *Dash) error {
	at := func(abs int) []byte { return buf[offset+abs:] }

	if len(buf) < offset+311 {
		return truncated("dash block shorter than expected")
	}

	d.PositionX = readF32(at(232))
	d.PositionY = readF32(at(236))
	d.PositionZ = readF32(at(240))
	d.Speed = readF32(at(244))
	d.Power = readF32(at(248))
	d.Torque = readF32(at(252))
	d.TireTempFL = readF32(at(256))
	d.TireTempFR = readF32(at(260))
	d.TireTempRL = readF32(at(264))
	d.TireTempRR = readF32(at(268))
	d.Boost = readF32(at(272))
	d.Fuel = readF32(at(276))
	d.DistanceTraveled = readF32(at(280))
	d.BestLap = readF32(at(284))
	d.LastLap = readF32(at(288))
	d.CurrentLap = readF32(at(292))
	d.CurrentRaceTime = readF32(at(296))
	d.LapNumber = binary.LittleEndian.Uint16(at(300))
	d.RacePosition = at(302)[0]
	d.Accelerator = at(303)[0]
	d.Brake = at(304)[0]
	d.Clutch = at(305)[0]
	d.Handbrake = at(306)[0]
	d.Gear = at(307)[0]
	d.Steer = int8(at(308)[0])
	d.NormalizedDrivingLine = int8(at(309)[0])
	d.NormalizedAIBrakeDifference = int8(at(310)[0])
	return nil
}

func decodeWear(buf []byte, w *Wear) {
	w.TireWearFL = readF32(buf[311:])
	w.TireWearFR = readF32(buf[315:])
	w.TireWearRL = readF32(buf[319:])
	w.TireWearRR = readF32(buf[323:])
	if len(buf) >= 331 {
		w.TrackID = int32(binary.LittleEndian.Uint32(buf[327:]))
	}
}

func readF32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

// reader sequentially consumes little-endian scalars from a fixed buffer.
type reader struct {
	buf []byte
	pos int
	err error
}

func newReader(buf []byte) *reader { return &reader{buf: buf} }

func (r *reader) need(n int) []byte {
	if r.err != nil {
		return make([]byte, n)
	}
	if r.pos+n > len(r.buf) {
		r.err = truncated("ran out of bytes mid-record")
		return make([]byte, n)
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b
}

func (r *reader) i32() int32  { return int32(binary.LittleEndian.Uint32(r.need(4))) }
func (r *reader) u32() uint32 { return binary.LittleEndian.Uint32(r.need(4)) }
func (r *reader) f32() float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(r.need(4)))
}
