// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package metrics exposes Prometheus collectors for the ingestion
// pipeline: dropped-datagram counts, batch sizes, and flush/insert
// latencies.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	DatagramsReceived = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "simtelemetry",
		Subsystem: "agent",
		Name:      "datagrams_received_total",
		Help:      "UDP datagrams received per game tag and port.",
	}, []string{"game_tag", "port"})

	DatagramsRejected = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "simtelemetry",
		Subsystem: "agent",
		Name:      "datagrams_rejected_total",
		Help:      "Datagrams rejected by parse validation or rate limiting.",
	}, []string{"game_tag", "reason"})

	ChannelDropped = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "simtelemetry",
		Subsystem: "agent",
		Name:      "channel_dropped_total",
		Help:      "Datagrams dropped because a bounded channel was full.",
	}, []string{"game_tag", "channel"})

	BatchSize = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "simtelemetry",
		Subsystem: "server",
		Name:      "batch_size",
		Help:      "Number of rows in a flushed batch.",
		Buckets:   []float64{1, 10, 50, 100, 250, 500, 1000},
	}, []string{"game_tag"})

	FlushLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "simtelemetry",
		Subsystem: "server",
		Name:      "flush_latency_seconds",
		Help:      "Time spent executing a batch insert.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"game_tag"})

	InsertFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "simtelemetry",
		Subsystem: "server",
		Name:      "insert_failures_total",
		Help:      "Batch inserts that failed and were dropped or spooled.",
	}, []string{"game_tag"})
)

// Register adds every collector in this package to reg.
func Register(reg prometheus.Registerer) {
	reg.MustRegister(
		DatagramsReceived,
		DatagramsRejected,
		ChannelDropped,
		BatchSize,
		FlushLatencySeconds,
		InsertFailures,
	)
}
