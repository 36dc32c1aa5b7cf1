// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package f1

import "fmt"

// LobbyPlayer is one player's ready-state and car choice in the
// pre-session lobby.
type LobbyPlayer struct {
	AIControlled bool
	TeamID       uint8
	Nationality  uint8
	Platform     uint8
	Name         string
	CarNumber    uint8
	ReadyStatus  uint8
}

// LobbyInfo lists every player currently in the multiplayer lobby.
type LobbyInfo struct {
	NumPlayers uint8
	Players    [MaxNumCars]LobbyPlayer
}

func parseLobbyInfo(buf []byte) (LobbyInfo, error) {
	r := newReader(buf)
	var li LobbyInfo

	li.NumPlayers = r.u8()
	if int(li.NumPlayers) > MaxNumCars {
		return LobbyInfo{}, outOfRange(fmt.Sprintf("num_players %d > %d", li.NumPlayers, MaxNumCars))
	}

	for i := 0; i < MaxNumCars; i++ {
		p := LobbyPlayer{
			AIControlled: r.bool8(),
			TeamID:       r.u8(),
			Nationality:  r.u8(),
			Platform:     r.u8(),
		}
		p.Name = cStringFromBytes(r.need(48))
		p.CarNumber = r.u8()
		p.ReadyStatus = r.u8()
		li.Players[i] = p
	}

	return li, r.err
}
