// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package spool

import (
	"bufio"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/linkedin/goavro/v2"
	"github.com/stretchr/testify/require"
)

func TestWriteAppendsOCFRecords(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)

	entries := []Entry{
		{GameTag: "FH5", UserID: "driver-1", ReceivedAt: time.Unix(0, 1000), Payload: map[string]any{"speed": 42.0}},
		{GameTag: "FH5", UserID: "driver-1", ReceivedAt: time.Unix(0, 2000), Payload: map[string]any{"speed": 43.0}},
	}
	require.NoError(t, s.Write("FH5", entries))

	f, err := os.Open(filepath.Join(dir, "FH5.avro"))
	require.NoError(t, err)
	defer f.Close()

	reader, err := goavro.NewOCFReader(bufio.NewReader(f))
	require.NoError(t, err)

	count := 0
	for reader.Scan() {
		rec, err := reader.Read()
		require.NoError(t, err)
		m := rec.(map[string]any)
		require.Equal(t, "FH5", m["game_tag"])
		count++
	}
	require.Equal(t, 2, count)
}

func TestWriteSkipsEmptyBatch(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)

	require.NoError(t, s.Write("FH5", nil))
	_, err = os.Stat(filepath.Join(dir, "FH5.avro"))
	require.True(t, os.IsNotExist(err))
}
