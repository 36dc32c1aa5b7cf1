// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package repository persists parsed telemetry records: a per-game-tag
// batched writer buffers rows and bulk-inserts them by size or time, with
// an optional write-ahead spool for batches that fail to insert.
package repository

import (
	"time"

	"github.com/trackside/simtelemetry/internal/codec/f1"
	"github.com/trackside/simtelemetry/internal/codec/forza"
	"github.com/trackside/simtelemetry/internal/repository/spool"
)

// Record is one parsed telemetry sample queued for persistence. Exactly
// one of Forza/F1 is populated, matching the envelope's game tag.
type Record struct {
	GameTag    string
	UserID     string
	ReceivedAt time.Time
	Forza      *forza.Record
	F1         *f1.Packet
}

// spoolEntry converts a Record into the payload shape the write-ahead
// spool stores, keeping Forza/F1 representation details out of spool.
func (r Record) spoolEntry() spool.Entry {
	var payload any
	if r.Forza != nil {
		payload = r.Forza
	} else {
		payload = r.F1
	}
	return spool.Entry{
		GameTag:    r.GameTag,
		UserID:     r.UserID,
		ReceivedAt: r.ReceivedAt,
		Payload:    payload,
	}
}
