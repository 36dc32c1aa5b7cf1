// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadRequiresClusterAddr(t *testing.T) {
	t.Setenv("REDIS_URL", "")
	t.Setenv("DATABASE_URL", "test.db")
	_, err := Load()
	require.Error(t, err)
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("REDIS_URL", "nats://localhost:4222")
	t.Setenv("DATABASE_URL", "")
	_, err := Load()
	require.Error(t, err)
}

func TestLoadDefaultsPort(t *testing.T) {
	t.Setenv("REDIS_URL", "nats://localhost:4222")
	t.Setenv("DATABASE_URL", "test.db")
	t.Setenv("PORT", "")
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, DefaultPort, cfg.Port)
}

func TestLoadHonorsExplicitPort(t *testing.T) {
	t.Setenv("REDIS_URL", "nats://localhost:4222")
	t.Setenv("DATABASE_URL", "test.db")
	t.Setenv("PORT", "9090")
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
}
