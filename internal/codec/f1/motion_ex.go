// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package f1

// MotionEx carries extended physics data for the player's own car only:
// per-wheel suspension, tyre slip, and local-frame accelerations that
// don't fit the per-car Motion sample shared across the grid.
type MotionEx struct {
	SuspensionPosition     [4]float32
	SuspensionVelocity     [4]float32
	SuspensionAcceleration [4]float32
	WheelSpeed             [4]float32
	WheelSlipRatio         [4]float32
	WheelSlipAngle         [4]float32
	WheelLatForce          [4]float32
	WheelLongForce         [4]float32
	HeightOfCOGAboveGround float32
	LocalVelocityX         float32
	LocalVelocityY         float32
	LocalVelocityZ         float32
	AngularVelocityX       float32
	AngularVelocityY       float32
	AngularVelocityZ       float32
	AngularAccelerationX   float32
	AngularAccelerationY   float32
	AngularAccelerationZ   float32
	FrontWheelsAngle       float32
	WheelVertForce         [4]float32
}

func parseMotionEx(buf []byte) (MotionEx, error) {
	r := newReader(buf)
	var m MotionEx

	readQuad := func(dst *[4]float32) {
		for i := 0; i < 4; i++ {
			dst[i] = r.f32()
		}
	}

	readQuad(&m.SuspensionPosition)
	readQuad(&m.SuspensionVelocity)
	readQuad(&m.SuspensionAcceleration)
	readQuad(&m.WheelSpeed)
	readQuad(&m.WheelSlipRatio)
	readQuad(&m.WheelSlipAngle)
	readQuad(&m.WheelLatForce)
	readQuad(&m.WheelLongForce)
	m.HeightOfCOGAboveGround = r.f32()
	m.LocalVelocityX = r.f32()
	m.LocalVelocityY = r.f32()
	m.LocalVelocityZ = r.f32()
	m.AngularVelocityX = r.f32()
	m.AngularVelocityY = r.f32()
	m.AngularVelocityZ = r.f32()
	m.AngularAccelerationX = r.f32()
	m.AngularAccelerationY = r.f32()
	m.AngularAccelerationZ = r.f32()
	m.FrontWheelsAngle = r.f32()
	readQuad(&m.WheelVertForce)

	return m, r.err
}
