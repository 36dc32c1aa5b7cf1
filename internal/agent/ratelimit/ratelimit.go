// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package ratelimit throttles accepted datagrams per packet type before
// they reach the emitter and forwarder, using one token-bucket limiter per
// key so a burst of identical-type packets collapses to one admission per
// throttle period.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultPeriod is the minimum inter-emission delay per packet type absent
// explicit configuration.
const DefaultPeriod = 100 * time.Millisecond

// Limiter throttles by an arbitrary comparable key (a packet type tag).
// A key on the allow-list is never throttled.
type Limiter struct {
	period    time.Duration
	allowList map[string]bool

	mu       sync.Mutex
	buckets  map[string]*rate.Limiter
}

// New builds a Limiter with the given throttle period. Keys in allowList
// bypass throttling entirely.
func New(period time.Duration, allowList []string) *Limiter {
	if period <= 0 {
		period = DefaultPeriod
	}
	allow := make(map[string]bool, len(allowList))
	for _, k := range allowList {
		allow[k] = true
	}
	return &Limiter{
		period:    period,
		allowList: allow,
		buckets:   make(map[string]*rate.Limiter),
	}
}

// Allow reports whether a datagram tagged key may be admitted now. Burst is
// fixed at 1: within one throttle period, only the first arrival for a key
// is accepted.
func (l *Limiter) Allow(key string) bool {
	if l.allowList[key] {
		return true
	}

	l.mu.Lock()
	b, ok := l.buckets[key]
	if !ok {
		b = rate.NewLimiter(rate.Every(l.period), 1)
		l.buckets[key] = b
	}
	l.mu.Unlock()

	return b.Allow()
}
