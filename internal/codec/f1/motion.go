// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package f1

// CarMotion is the per-car kinematic sample carried in Motion.
type CarMotion struct {
	WorldPositionX     float32
	WorldPositionY     float32
	WorldPositionZ     float32
	WorldVelocityX     float32
	WorldVelocityY     float32
	WorldVelocityZ     float32
	WorldForwardDirX   int16
	WorldForwardDirY   int16
	WorldForwardDirZ   int16
	WorldRightDirX     int16
	WorldRightDirY     int16
	WorldRightDirZ     int16
	GForceLateral      float32
	GForceLongitudinal float32
	GForceVertical     float32
	Yaw                float32
	Pitch              float32
	Roll               float32
}

// Motion carries per-car kinematics for every car on track. The player's
// extended physics data is a separate packet, MotionEx.
type Motion struct {
	Cars [MaxNumCars]CarMotion
}

func parseMotion(buf []byte) (Motion, error) {
	r := newReader(buf)
	var m Motion
	for i := 0; i < MaxNumCars; i++ {
		c := &m.Cars[i]
		c.WorldPositionX = r.f32()
		c.WorldPositionY = r.f32()
		c.WorldPositionZ = r.f32()
		c.WorldVelocityX = r.f32()
		c.WorldVelocityY = r.f32()
		c.WorldVelocityZ = r.f32()
		c.WorldForwardDirX = r.i16()
		c.WorldForwardDirY = r.i16()
		c.WorldForwardDirZ = r.i16()
		c.WorldRightDirX = r.i16()
		c.WorldRightDirY = r.i16()
		c.WorldRightDirZ = r.i16()
		c.GForceLateral = r.f32()
		c.GForceLongitudinal = r.f32()
		c.GForceVertical = r.f32()
		c.Yaw = r.f32()
		c.Pitch = r.f32()
		c.Roll = r.f32()
	}
	return m, r.err
}
