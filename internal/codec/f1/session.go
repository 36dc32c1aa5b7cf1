// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package f1

import "fmt"

// MaxNumMarshalZones is the largest number of marshal zones a session may
// report; parsing rejects anything larger.
const MaxNumMarshalZones = 21

// MaxAIDifficulty is the upper bound on the configured AI difficulty.
const MaxAIDifficulty = 110

// MarshalZone is one track marshal zone and its current flag state.
type MarshalZone struct {
	ZoneStart float32
	ZoneFlag  int8
}

// WeatherForecastSample is one entry in the session's weather forecast.
type WeatherForecastSample struct {
	SessionType            uint8
	TimeOffset              uint8
	Weather                 uint8
	TrackTemperature        int8
	TrackTemperatureChange  int8
	AirTemperature          int8
	AirTemperatureChange    int8
	RainPercentage          uint8
}

// Session describes the current session: track, weather, marshal zones,
// and the forecast. Speed/temperature unit preferences are 2023+ only.
type Session struct {
	Weather                      uint8
	TrackTemperature             int8
	AirTemperature               int8
	TotalLaps                    uint8
	TrackLength                  uint16
	SessionType                  uint8
	TrackID                      int8
	Formula                      uint8
	SessionTimeLeft              uint16
	SessionDuration              uint16
	PitSpeedLimit                uint8
	GamePaused                   uint8
	IsSpectating                 uint8
	SpectatorCarIndex            uint8
	SliProNativeSupport          uint8
	NumMarshalZones              uint8
	MarshalZones                [MaxNumMarshalZones]MarshalZone
	SafetyCarStatus              uint8
	NetworkGame                  uint8
	NumWeatherForecastSamples    uint8
	WeatherForecastSamples       []WeatherForecastSample
	ForecastAccuracy             uint8
	AIDifficulty                 uint8
	SeasonLinkIdentifier         uint32
	WeekendLinkIdentifier        uint32
	SessionLinkIdentifier        uint32
	PitStopWindowIdealLap        uint8
	PitStopWindowLatestLap       uint8
	PitStopRebootAssistAssigned  uint8
	SteeringAssist               uint8
	BrakingAssist                uint8
	GearboxAssist                uint8
	PitAssist                    uint8
	PitReleaseAssist             uint8
	ERSAssist                    uint8
	DRSAssist                    uint8
	DynamicRacingLine            uint8
	DynamicRacingLineType        uint8
	GameMode                     uint8
	RuleSet                      uint8
	TimeOfDay                    uint32
	SessionLength                uint8
	SpeedUnitsLeadPlayer         uint8 // 2023+
	TemperatureUnitsLeadPlayer   uint8 // 2023+
}

func maxForecastSamples(packetFormat uint16) int {
	if packetFormat >= 2023 {
		return 64
	}
	return 56
}

func parseSession(buf []byte, packetFormat uint16) (Session, error) {
	r := newReader(buf)
	var s Session

	s.Weather = r.u8()
	s.TrackTemperature = r.i8()
	s.AirTemperature = r.i8()
	s.TotalLaps = r.u8()
	s.TrackLength = r.u16()
	s.SessionType = r.u8()
	s.TrackID = r.i8()
	s.Formula = r.u8()
	s.SessionTimeLeft = r.u16()
	s.SessionDuration = r.u16()
	s.PitSpeedLimit = r.u8()
	s.GamePaused = r.u8()
	s.IsSpectating = r.u8()
	s.SpectatorCarIndex = r.u8()
	s.SliProNativeSupport = r.u8()

	s.NumMarshalZones = r.u8()
	if int(s.NumMarshalZones) > MaxNumMarshalZones {
		return Session{}, outOfRange(fmt.Sprintf("num_marshal_zones %d > %d", s.NumMarshalZones, MaxNumMarshalZones))
	}
	for i := 0; i < MaxNumMarshalZones; i++ {
		s.MarshalZones[i] = MarshalZone{ZoneStart: r.f32(), ZoneFlag: r.i8()}
	}

	s.SafetyCarStatus = r.u8()
	s.NetworkGame = r.u8()

	s.NumWeatherForecastSamples = r.u8()
	cap := maxForecastSamples(packetFormat)
	if int(s.NumWeatherForecastSamples) > cap {
		return Session{}, outOfRange(fmt.Sprintf("num_weather_forecast_samples %d > %d for format %d", s.NumWeatherForecastSamples, cap, packetFormat))
	}
	s.WeatherForecastSamples = make([]WeatherForecastSample, cap)
	for i := 0; i < cap; i++ {
		s.WeatherForecastSamples[i] = WeatherForecastSample{
			SessionType:           r.u8(),
			TimeOffset:            r.u8(),
			Weather:               r.u8(),
			TrackTemperature:      r.i8(),
			TrackTemperatureChange: r.i8(),
			AirTemperature:        r.i8(),
			AirTemperatureChange:  r.i8(),
			RainPercentage:        r.u8(),
		}
	}

	s.ForecastAccuracy = r.u8()
	s.AIDifficulty = r.u8()
	if s.AIDifficulty > MaxAIDifficulty {
		return Session{}, outOfRange(fmt.Sprintf("ai_difficulty %d > %d", s.AIDifficulty, MaxAIDifficulty))
	}
	s.SeasonLinkIdentifier = r.u32()
	s.WeekendLinkIdentifier = r.u32()
	s.SessionLinkIdentifier = r.u32()
	s.PitStopWindowIdealLap = r.u8()
	s.PitStopWindowLatestLap = r.u8()
	s.PitStopRebootAssistAssigned = r.u8()
	s.SteeringAssist = r.u8()
	s.BrakingAssist = r.u8()
	s.GearboxAssist = r.u8()
	s.PitAssist = r.u8()
	s.PitReleaseAssist = r.u8()
	s.ERSAssist = r.u8()
	s.DRSAssist = r.u8()
	s.DynamicRacingLine = r.u8()
	s.DynamicRacingLineType = r.u8()
	s.GameMode = r.u8()
	s.RuleSet = r.u8()
	s.TimeOfDay = r.u32()
	s.SessionLength = r.u8()

	if packetFormat >= 2023 {
		s.SpeedUnitsLeadPlayer = r.u8()
		s.TemperatureUnitsLeadPlayer = r.u8()
	}

	return s, r.err
}
