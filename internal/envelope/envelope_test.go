// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package envelope

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"small", []byte{1, 2, 3}},
		{"max", make([]byte, MaxDataLen)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env, err := New(GameFH5, 1_700_000_000_000_000_000, tc.data)
			require.NoError(t, err)

			encoded, err := Encode(env)
			require.NoError(t, err)
			require.LessOrEqual(t, len(encoded), MaxEncodedLen)

			decoded, err := Decode(encoded)
			require.NoError(t, err)

			require.Equal(t, env.ID, decoded.ID)
			require.Equal(t, env.GameType, decoded.GameType)
			require.Equal(t, env.Timestamp, decoded.Timestamp)
			require.Equal(t, len(tc.data), len(decoded.Data))
		})
	}
}

func TestNewRejectsOversizedData(t *testing.T) {
	_, err := New(GameFM7, 0, make([]byte, MaxDataLen+1))
	require.Error(t, err)
}

func TestDecodeRejectsTruncated(t *testing.T) {
	_, err := Decode([]byte{1, 2, 3})
	require.Error(t, err)
}

func TestIDsAreTimeOrdered(t *testing.T) {
	a, err := New(GameFH5, 0, nil)
	require.NoError(t, err)
	b, err := New(GameFH5, 0, nil)
	require.NoError(t, err)
	require.LessOrEqual(t, a.ID.String(), b.ID.String())
}

func TestGameTagRoundTripsThroughName(t *testing.T) {
	for tag, name := range gameTagNames {
		got, err := ParseGameTag(name)
		require.NoError(t, err)
		require.Equal(t, tag, got)
	}
	_, err := ParseGameTag("nope")
	require.Error(t, err)
}
