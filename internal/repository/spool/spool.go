// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package spool is a write-ahead log for telemetry batches that failed to
// insert into the primary database. It exists so a transient database
// outage degrades to "replay later" instead of silent data loss; it is
// disabled by default because most deployments would rather drop a few
// seconds of high-rate telemetry than manage a second storage surface.
package spool

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/linkedin/goavro/v2"
)

const recordSchema = `{
	"type": "record",
	"name": "SpooledBatch",
	"fields": [
		{"name": "game_tag", "type": "string"},
		{"name": "user_id", "type": "string"},
		{"name": "received_at", "type": "long"},
		{"name": "payload", "type": "bytes"}
	]
}`

// Entry is one spooled row. Payload holds whichever codec record the
// caller captured; Write stores its JSON encoding, so the spool itself is
// codec-agnostic.
type Entry struct {
	GameTag    string
	UserID     string
	ReceivedAt time.Time
	Payload    any
}

// Spool appends failed batches as Avro object-container files, one per
// game tag, under Dir. A single mutex serializes writers since each file
// is opened/appended/closed per call rather than held open.
type Spool struct {
	dir   string
	codec *goavro.Codec

	mu sync.Mutex
}

// Open creates dir if needed and compiles the fixed record schema.
func Open(dir string) (*Spool, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("spool: mkdir %s: %w", dir, err)
	}
	codec, err := goavro.NewCodec(recordSchema)
	if err != nil {
		return nil, fmt.Errorf("spool: compile schema: %w", err)
	}
	return &Spool{dir: dir, codec: codec}, nil
}

// Write appends entries to <dir>/<gameTag>.avro, batched as a single OCF
// append call so one fsync covers the whole failed batch.
func (s *Spool) Write(gameTag string, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	records := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		payload, err := json.Marshal(e.Payload)
		if err != nil {
			return fmt.Errorf("spool: marshal payload: %w", err)
		}
		records = append(records, map[string]any{
			"game_tag":    e.GameTag,
			"user_id":     e.UserID,
			"received_at": e.ReceivedAt.UnixNano(),
			"payload":     payload,
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, gameTag+".avro")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("spool: open %s: %w", path, err)
	}
	defer f.Close()

	writer, err := goavro.NewOCFWriter(goavro.OCFConfig{
		W:               f,
		Codec:           s.codec,
		CompressionName: goavro.CompressionDeflateLabel,
	})
	if err != nil {
		return fmt.Errorf("spool: build OCF writer: %w", err)
	}

	if err := writer.Append(records); err != nil {
		return fmt.Errorf("spool: append: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("spool: sync %s: %w", path, err)
	}
	return nil
}
