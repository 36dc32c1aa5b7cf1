// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package rawcapture writes raw ingested datagram payloads to disk for
// offline replay and debugging. It is disabled by default; the namespace
// handler only feeds a game tag's channel into a worker when raw capture
// has been explicitly enabled for that tag.
package rawcapture

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/trackside/simtelemetry/pkg/log"
)

// FrameSize is the fixed, zero-padded record length written for every
// captured datagram. Only F1 payloads are ever this large in practice;
// Forza datagrams are padded the same way for a uniform file format.
const FrameSize = 2048

// FlushInterval is the periodic tick that flushes buffered frames even if
// the channel has gone quiet.
const FlushInterval = time.Second

// ChannelCapacity bounds the worker's inbound queue; callers should treat
// a full channel as back-pressure and drop, matching the rest of the
// pipeline's drop-newest policy.
const ChannelCapacity = 3600

// Worker appends datagrams for one game tag to <dir>/<game_tag>.bin.
type Worker struct {
	gameTag string
	path    string
	in      chan []byte

	mu  sync.Mutex
	buf []byte

	scheduler gocron.Scheduler
	cancel    context.CancelFunc
	done      chan struct{}
}

// NewWorker prepares a worker that will write into dir/<gameTag>.bin.
func NewWorker(dir, gameTag string) *Worker {
	return &Worker{
		gameTag: gameTag,
		path:    filepath.Join(dir, gameTag+".bin"),
		in:      make(chan []byte, ChannelCapacity),
	}
}

// In returns the channel producers send raw payloads into.
func (w *Worker) In() chan<- []byte { return w.in }

// Start runs the capture loop until ctx is cancelled, flushing any
// buffered frames before returning.
func (w *Worker) Start(ctx context.Context) error {
	sch, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("rawcapture[%s]: scheduler init: %w", w.gameTag, err)
	}
	w.scheduler = sch

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.done = make(chan struct{})

	if _, err := sch.NewJob(
		gocron.DurationJob(FlushInterval),
		gocron.NewTask(func() { w.flush() }),
	); err != nil {
		cancel()
		return fmt.Errorf("rawcapture[%s]: schedule flush: %w", w.gameTag, err)
	}
	sch.Start()

	go func() {
		defer close(w.done)
		for {
			select {
			case <-runCtx.Done():
				w.flush()
				return
			case payload := <-w.in:
				w.append(payload)
			}
		}
	}()

	return nil
}

// Stop cancels the worker, waits for the final flush, and shuts the
// scheduler down.
func (w *Worker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	if w.done != nil {
		<-w.done
	}
	if w.scheduler != nil {
		_ = w.scheduler.Shutdown()
	}
}

func (w *Worker) append(payload []byte) {
	frame := make([]byte, FrameSize)
	n := copy(frame, payload)
	if n < len(payload) {
		log.Warnf("rawcapture[%s]: payload %d bytes truncated to frame size %d", w.gameTag, len(payload), FrameSize)
	}

	w.mu.Lock()
	w.buf = append(w.buf, frame...)
	w.mu.Unlock()
}

func (w *Worker) flush() {
	w.mu.Lock()
	if len(w.buf) == 0 {
		w.mu.Unlock()
		return
	}
	batch := w.buf
	w.buf = nil
	w.mu.Unlock()

	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		log.Errorf("rawcapture[%s]: open %s: %v", w.gameTag, w.path, err)
		return
	}
	defer f.Close()

	if _, err := f.Write(batch); err != nil {
		log.Errorf("rawcapture[%s]: write %s: %v", w.gameTag, w.path, err)
	}
}
