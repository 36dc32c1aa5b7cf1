// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package forza

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleSled() Sled {
	return Sled{
		IsRaceOn:            true,
		TimestampMS:         12345,
		CurrentEngineRPM:    6500.5,
		VelocityX:           10.25,
		CarID:               42,
		CarClass:            CarClassS1,
		CarPerformanceIndex: 800,
		DriveType:           DriveAWD,
		NumCylinders:        6,
	}
}

func sampleDash() Dash {
	return Dash{
		PositionX:   1.5,
		Speed:       55.5,
		CurrentLap:  87.5,
		LapNumber:   12,
		Gear:        4,
		Steer:       -20,
	}
}

func sampleWear() Wear {
	return Wear{TireWearFL: 0.1, TireWearFR: 0.2, TireWearRL: 0.3, TireWearRR: 0.4, TrackID: 7}
}

func TestRoundTripAllVariants(t *testing.T) {
	lengths := []int{SledSize, DashSize, FH4SledShift, WearSize}
	for _, length := range lengths {
		rec := Record{Sled: sampleSled()}
		if length >= DashSize {
			d := sampleDash()
			rec.Dash = &d
		}
		if length >= WearSize {
			w := sampleWear()
			rec.Wear = &w
		}

		buf := Encode(rec, length)
		require.Len(t, buf, length)

		got, err := Parse(buf)
		require.NoError(t, err)
		require.Equal(t, rec.Sled, got.Sled)
		if rec.Dash != nil {
			require.Equal(t, *rec.Dash, *got.Dash)
		} else {
			require.Nil(t, got.Dash)
		}
		if rec.Wear != nil {
			require.Equal(t, *rec.Wear, *got.Wear)
		} else {
			require.Nil(t, got.Wear)
		}
	}
}

func TestParseRejectsTruncated(t *testing.T) {
	_, err := Parse(make([]byte, SledSize-1))
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, "Truncated", pe.Kind)
}

func TestParseRejectsInvalidIsRaceOn(t *testing.T) {
	rec := Record{Sled: sampleSled()}
	buf := Encode(rec, SledSize)
	// is_race_on lives at offset 0, force an invalid value
	buf[0] = 7
	_, err := Parse(buf)
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, "InvalidBool", pe.Kind)
}

func TestParseRejectsUnknownCarClass(t *testing.T) {
	rec := Record{Sled: sampleSled()}
	rec.Sled.CarClass = 99
	buf := Encode(rec, SledSize)
	_, err := Parse(buf)
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, "UnknownEnum", pe.Kind)
}

func TestFH4OffsetShift(t *testing.T) {
	rec := Record{Sled: sampleSled()}
	d := sampleDash()
	rec.Dash = &d
	buf := Encode(rec, FH4SledShift)
	require.Len(t, buf, FH4SledShift)

	got, err := Parse(buf)
	require.NoError(t, err)
	require.Equal(t, rec.Sled, got.Sled)
	require.Equal(t, *rec.Dash, *got.Dash)
}
