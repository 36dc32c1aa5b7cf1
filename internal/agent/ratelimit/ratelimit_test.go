// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBurstAcceptsExactlyOne(t *testing.T) {
	l := New(100*time.Millisecond, nil)
	accepted := 0
	for i := 0; i < 50; i++ {
		if l.Allow("forza") {
			accepted++
		}
	}
	require.Equal(t, 1, accepted)
}

func TestDurationBound(t *testing.T) {
	l := New(20*time.Millisecond, nil)
	deadline := time.Now().Add(90 * time.Millisecond)
	accepted := 0
	for time.Now().Before(deadline) {
		if l.Allow("f1.Motion") {
			accepted++
		}
		time.Sleep(2 * time.Millisecond)
	}
	// duration/period + 1 upper bound
	require.LessOrEqual(t, accepted, 90/20+1)
	require.GreaterOrEqual(t, accepted, 1)
}

// TestAllowListBypassesThrottle uses the same key shape classify actually
// produces for F1 packets ("f1." + f1.PacketID.String()), not a fabricated
// key, so a mismatch between classify's output and the allow-list's
// entries would fail this test.
func TestAllowListBypassesThrottle(t *testing.T) {
	l := New(time.Second, []string{"f1.CarDamage"})
	for i := 0; i < 10; i++ {
		require.True(t, l.Allow("f1.CarDamage"))
	}
}

func TestKeysAreIndependent(t *testing.T) {
	l := New(time.Second, nil)
	require.True(t, l.Allow("a"))
	require.True(t, l.Allow("b"))
	require.False(t, l.Allow("a"))
}
