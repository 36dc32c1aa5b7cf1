// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/trackside/simtelemetry/internal/codec/forza"
)

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(dsn)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	t.Cleanup(func() { db.Close() })
	return db
}

func TestBatchWriterFlushesOnSize(t *testing.T) {
	db := openTestDB(t)
	w := NewBatchWriter("FH5", db, nil)

	w.Start(context.Background())
	defer w.Stop()

	for i := 0; i < MaxBatchSize; i++ {
		w.in <- Record{
			GameTag:    "FH5",
			UserID:     "driver-1",
			ReceivedAt: time.Now(),
			Forza:      &forza.Record{Sled: forza.Sled{IsRaceOn: true, CarID: int32(i)}},
		}
	}

	require.Eventually(t, func() bool {
		var count int
		_ = db.Get(&count, "SELECT COUNT(*) FROM forza_telemetry")
		return count == MaxBatchSize
	}, 2*time.Second, 10*time.Millisecond)
}

func TestBatchWriterFlushesOnShutdown(t *testing.T) {
	db := openTestDB(t)
	w := NewBatchWriter("FH5", db, nil)

	w.Start(context.Background())

	w.in <- Record{
		GameTag:    "FH5",
		UserID:     "driver-1",
		ReceivedAt: time.Now(),
		Forza:      &forza.Record{Sled: forza.Sled{IsRaceOn: true}},
	}

	w.Stop()

	var count int
	require.NoError(t, db.Get(&count, "SELECT COUNT(*) FROM forza_telemetry"))
	require.Equal(t, 1, count)
}
