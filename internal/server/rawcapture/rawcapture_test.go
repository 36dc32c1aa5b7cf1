// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package rawcapture

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWorkerPadsAndAppendsFrames(t *testing.T) {
	dir := t.TempDir()
	w := NewWorker(dir, "F12024")

	require.NoError(t, w.Start(context.Background()))

	w.in <- []byte("hello")
	w.in <- []byte("world")

	w.Stop()

	data, err := os.ReadFile(filepath.Join(dir, "F12024.bin"))
	require.NoError(t, err)
	require.Len(t, data, 2*FrameSize)
	require.Equal(t, "hello", string(data[:5]))
	require.Equal(t, "world", string(data[FrameSize:FrameSize+5]))
}

func TestWorkerFlushIsIdempotentWhenEmpty(t *testing.T) {
	dir := t.TempDir()
	w := NewWorker(dir, "FH5")
	require.NoError(t, w.Start(context.Background()))
	time.Sleep(10 * time.Millisecond)
	w.Stop()

	_, err := os.Stat(filepath.Join(dir, "FH5.bin"))
	require.True(t, os.IsNotExist(err))
}
