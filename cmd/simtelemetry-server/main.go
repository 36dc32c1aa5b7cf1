// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command simtelemetry-server runs the ingestion server: one WebSocket
// namespace per supported game tag, a batched writer per game persisting
// to sqlite, optional raw-capture to disk, and a Prometheus metrics
// endpoint.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/trackside/simtelemetry/internal/envelope"
	"github.com/trackside/simtelemetry/internal/metrics"
	"github.com/trackside/simtelemetry/internal/repository"
	"github.com/trackside/simtelemetry/internal/repository/spool"
	serverconfig "github.com/trackside/simtelemetry/internal/server/config"
	"github.com/trackside/simtelemetry/internal/server/httpd"
	"github.com/trackside/simtelemetry/internal/server/namespace"
	"github.com/trackside/simtelemetry/internal/server/rawcapture"
	"github.com/trackside/simtelemetry/pkg/log"
)

var supportedGameTags = []envelope.GameTag{
	envelope.GameF12022, envelope.GameF12023, envelope.GameF12024,
	envelope.GameFH4, envelope.GameFH5, envelope.GameFM7, envelope.GameFM8,
}

func main() {
	logLevel := flag.String("loglevel", "info", "debug, info, warn, or err")
	ingestUserID := flag.String("ingest-user-id", "default", "user id stamped on every persisted record")
	rawCaptureDir := flag.String("raw-capture-dir", "", "directory to write raw F1 capture files into; empty disables raw capture")
	spoolDir := flag.String("spool-dir", "", "directory for the failed-batch write-ahead spool; empty disables the spool")
	flag.Parse()

	log.SetLogLevel(*logLevel)

	cfg, err := serverconfig.Load()
	if err != nil {
		log.Fatalf("server: %v", err)
	}

	db, err := repository.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("server: %v", err)
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatalf("server: %v", err)
	}

	var sp *spool.Spool
	if *spoolDir != "" {
		sp, err = spool.Open(*spoolDir)
		if err != nil {
			log.Fatalf("server: %v", err)
		}
	}

	// cfg.ClusterAddr (REDIS_URL) is required by the deployment contract but
	// unused here: cross-node fan-out exists only for agent-side registry
	// membership (see internal/registry/cluster), and this binary has no
	// registry of its own to announce.
	reg := prometheus.NewRegistry()
	metrics.Register(reg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handlers := make(map[string]*namespace.Handler, len(supportedGameTags))
	writers := make([]*repository.BatchWriter, 0, len(supportedGameTags))
	var captures []*rawcapture.Worker

	for _, tag := range supportedGameTags {
		writer := repository.NewBatchWriter(tag.String(), db, sp)
		writer.Start(ctx)
		writers = append(writers, writer)

		var rawChan chan []byte
		if *rawCaptureDir != "" && isF1Tag(tag) {
			worker := rawcapture.NewWorker(*rawCaptureDir, tag.String())
			if err := worker.Start(ctx); err != nil {
				log.Fatalf("server: rawcapture %s: %v", tag, err)
			}
			captures = append(captures, worker)
			rawChan = make(chan []byte, rawcapture.ChannelCapacity)
			go forwardRaw(ctx, rawChan, worker.In())
		}

		handlers[tag.String()] = namespace.NewHandler(tag.String(), *ingestUserID, writer.In(), rawChan)
	}

	srv := httpd.New(":"+cfg.Port, handlers, reg)
	if err := srv.Start(); err != nil {
		log.Fatalf("server: %v", err)
	}
	log.Infof("simtelemetry-server listening on :%s", cfg.Port)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs

	log.Info("server: shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)

	cancel()
	for _, w := range writers {
		w.Stop()
	}
	for _, c := range captures {
		c.Stop()
	}
}

func isF1Tag(tag envelope.GameTag) bool {
	switch tag {
	case envelope.GameF12022, envelope.GameF12023, envelope.GameF12024:
		return true
	default:
		return false
	}
}

// forwardRaw relays the namespace handler's raw-capture channel into the
// worker's inbound channel; a separate hop keeps namespace.Handler's
// field type (chan<- []byte) decoupled from rawcapture.Worker's own
// buffering.
func forwardRaw(ctx context.Context, from chan []byte, to chan<- []byte) {
	for {
		select {
		case <-ctx.Done():
			return
		case payload := <-from:
			select {
			case to <- payload:
			default:
			}
		}
	}
}
