// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package agent

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigRequiresAPIURL(t *testing.T) {
	t.Setenv("API_URL", "")
	t.Setenv("HANDSHAKE_SECRET", "secret")
	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfigRequiresHandshakeSecret(t *testing.T) {
	t.Setenv("API_URL", "ws://localhost:3002")
	t.Setenv("HANDSHAKE_SECRET", "")
	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfigDefaultsControlPort(t *testing.T) {
	t.Setenv("API_URL", "ws://localhost:3002")
	t.Setenv("HANDSHAKE_SECRET", "secret")
	t.Setenv("CONTROL_PORT", "")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, DefaultControlPort, cfg.ControlPort)
}

func TestLoadConfigHonorsExplicitControlPort(t *testing.T) {
	t.Setenv("API_URL", "ws://localhost:3002")
	t.Setenv("HANDSHAKE_SECRET", "secret")
	t.Setenv("CONTROL_PORT", "4100")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "4100", cfg.ControlPort)
}
