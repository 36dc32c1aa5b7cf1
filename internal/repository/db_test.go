// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package repository

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenAndMigrate(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "test.db")

	db, err := Open(dsn)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(db))
	// Safe to apply twice.
	require.NoError(t, Migrate(db))

	var count int
	err = db.Get(&count, "SELECT COUNT(*) FROM forza_telemetry")
	require.NoError(t, err)
	require.Equal(t, 0, count)
}
