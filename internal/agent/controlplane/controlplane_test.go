// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package controlplane

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPayloadValidateAcceptsWellFormedHosts(t *testing.T) {
	p := CreateUdpListenerPayload{
		GameType:     "FH5",
		Port:         20011,
		ForwardPorts: []string{"127.0.0.1:30001", "127.0.0.1:30002"},
	}
	require.NoError(t, p.Validate())
}

func TestPayloadValidateRejectsMalformedHost(t *testing.T) {
	p := CreateUdpListenerPayload{
		GameType:     "FH5",
		Port:         20011,
		ForwardPorts: []string{"not-a-host-port"},
	}
	require.Error(t, p.Validate())
}

func TestPayloadValidateRejectsTooManyHosts(t *testing.T) {
	p := CreateUdpListenerPayload{
		GameType: "FH5",
		Port:     20011,
		ForwardPorts: []string{
			"127.0.0.1:1", "127.0.0.1:2", "127.0.0.1:3", "127.0.0.1:4", "127.0.0.1:5", "127.0.0.1:6",
		},
	}
	require.Error(t, p.Validate())
}
