// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package repository

import (
	"context"
	"sync"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/trackside/simtelemetry/internal/metrics"
	"github.com/trackside/simtelemetry/internal/repository/spool"
	"github.com/trackside/simtelemetry/pkg/log"
)

// MaxBatchSize is the size threshold that forces an immediate flush.
const MaxBatchSize = 1000

// FlushInterval is the wall-clock period on which a non-empty buffer is
// flushed even if it hasn't reached MaxBatchSize.
const FlushInterval = time.Second

// BatchWriter is the single worker that owns one game tag's buffer and
// destination channel. It is the only writer of that buffer; mu still
// guards each append and swap, and "swap then flush" releases it before
// the blocking insert so producers never wait on the database.
type BatchWriter struct {
	gameTag string
	db      *sqlx.DB
	spool   *spool.Spool // optional write-ahead log for failed batches; nil disables it

	in chan Record

	mu     sync.Mutex
	buffer []Record

	cancel context.CancelFunc
	done   chan struct{}
}

// NewBatchWriter builds a writer for gameTag. spool may be nil.
func NewBatchWriter(gameTag string, db *sqlx.DB, sp *spool.Spool) *BatchWriter {
	return &BatchWriter{
		gameTag: gameTag,
		db:      db,
		spool:   sp,
		in:      make(chan Record, MaxBatchSize),
	}
}

// In returns the channel producers append records to.
func (w *BatchWriter) In() chan<- Record { return w.in }

// Start runs the worker loop until ctx is cancelled, flushing any
// remaining buffered rows before returning.
func (w *BatchWriter) Start(ctx context.Context) {
	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.done = make(chan struct{})

	go func() {
		defer close(w.done)
		ticker := time.NewTicker(FlushInterval)
		defer ticker.Stop()

		for {
			select {
			case <-runCtx.Done():
				w.flush(context.Background())
				return
			case rec := <-w.in:
				w.append(rec)
			case <-ticker.C:
				w.flush(context.Background())
			}
		}
	}()
}

// Stop cancels the worker and waits for its final flush to complete.
func (w *BatchWriter) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	if w.done != nil {
		<-w.done
	}
}

func (w *BatchWriter) append(rec Record) {
	w.mu.Lock()
	w.buffer = append(w.buffer, rec)
	full := len(w.buffer) >= MaxBatchSize
	w.mu.Unlock()

	if full {
		w.flush(context.Background())
	}
}

func (w *BatchWriter) flush(ctx context.Context) {
	w.mu.Lock()
	if len(w.buffer) == 0 {
		w.mu.Unlock()
		return
	}
	batch := w.buffer
	w.buffer = nil
	w.mu.Unlock()

	metrics.BatchSize.WithLabelValues(w.gameTag).Observe(float64(len(batch)))
	start := time.Now()
	err := w.insert(ctx, batch)
	metrics.FlushLatencySeconds.WithLabelValues(w.gameTag).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.InsertFailures.WithLabelValues(w.gameTag).Inc()
		log.Errorf("repository[%s]: batch insert failed, dropping %d rows: %v", w.gameTag, len(batch), err)
		if w.spool != nil {
			entries := make([]spool.Entry, 0, len(batch))
			for _, r := range batch {
				entries = append(entries, r.spoolEntry())
			}
			if spoolErr := w.spool.Write(w.gameTag, entries); spoolErr != nil {
				log.Errorf("repository[%s]: spool write also failed: %v", w.gameTag, spoolErr)
			}
		}
	}
}

func (w *BatchWriter) insert(ctx context.Context, batch []Record) error {
	forzaRows := make([]Record, 0, len(batch))
	f1Rows := make([]Record, 0, len(batch))
	for _, r := range batch {
		if r.Forza != nil {
			forzaRows = append(forzaRows, r)
		} else if r.F1 != nil {
			f1Rows = append(f1Rows, r)
		}
	}

	if len(forzaRows) > 0 {
		if err := w.insertForza(ctx, forzaRows); err != nil {
			return err
		}
	}
	if len(f1Rows) > 0 {
		if err := w.insertF1(ctx, f1Rows); err != nil {
			return err
		}
	}
	return nil
}

func (w *BatchWriter) insertForza(ctx context.Context, rows []Record) error {
	builder := sq.Insert("forza_telemetry").
		Columns("id", "user_id", "received_at", "is_race_on", "car_id", "car_class", "drive_type", "speed", "current_lap", "lap_number", "race_position")

	for _, r := range rows {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		sled := r.Forza.Sled
		var speed, currentLap float32
		var lapNumber, racePosition int
		if r.Forza.Dash != nil {
			speed = r.Forza.Dash.Speed
			currentLap = r.Forza.Dash.CurrentLap
			lapNumber = int(r.Forza.Dash.LapNumber)
			racePosition = int(r.Forza.Dash.RacePosition)
		}
		builder = builder.Values(id.String(), r.UserID, r.ReceivedAt.UnixNano(),
			boolToInt(sled.IsRaceOn), sled.CarID, int32(sled.CarClass), int32(sled.DriveType),
			speed, currentLap, lapNumber, racePosition)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return err
	}
	_, err = w.db.ExecContext(ctx, query, args...)
	return err
}

func (w *BatchWriter) insertF1(ctx context.Context, rows []Record) error {
	builder := sq.Insert("f1_telemetry").
		Columns("id", "user_id", "received_at", "packet_format", "packet_id", "session_uid", "session_time", "frame_identifier")

	for _, r := range rows {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		h := r.F1.Header
		builder = builder.Values(id.String(), r.UserID, r.ReceivedAt.UnixNano(),
			h.PacketFormat, uint8(h.PacketID), h.SessionUID, h.SessionTime, h.FrameIdentifier)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return err
	}
	_, err = w.db.ExecContext(ctx, query, args...)
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
