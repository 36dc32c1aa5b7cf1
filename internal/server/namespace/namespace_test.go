// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package namespace

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/trackside/simtelemetry/internal/codec/forza"
	"github.com/trackside/simtelemetry/internal/envelope"
	"github.com/trackside/simtelemetry/internal/repository"
	"github.com/trackside/simtelemetry/internal/transport"
)

func startServer(t *testing.T, h *Handler) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := Upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		h.Serve(transport.NewConn(ws))
	}))
	t.Cleanup(srv.Close)
	return "ws" + srv.URL[len("http"):]
}

func dial(t *testing.T, url string) *transport.Conn {
	t.Helper()
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { ws.Close() })
	return transport.NewConn(ws)
}

func TestServeEchoesAuthAndPong(t *testing.T) {
	batch := make(chan repository.Record, 1)
	h := NewHandler("FH5", "driver-1", batch, nil)
	url := startServer(t, h)
	conn := dial(t, url)

	frame, err := conn.Recv()
	require.NoError(t, err)
	require.Equal(t, transport.EventAuth, frame.Event)

	require.NoError(t, conn.Send(transport.EventPing, nil))
	frame, err = conn.Recv()
	require.NoError(t, err)
	require.Equal(t, transport.EventPong, frame.Event)
}

func TestServeDecodesMessageIntoBatch(t *testing.T) {
	batch := make(chan repository.Record, 1)
	h := NewHandler("FH5", "driver-1", batch, nil)
	url := startServer(t, h)
	conn := dial(t, url)

	_, err := conn.Recv() // auth echo
	require.NoError(t, err)

	buf := forza.Encode(forza.Record{Sled: forza.Sled{IsRaceOn: true, CarID: 7}}, forza.SledSize)
	env, err := envelope.New(envelope.GameFH5, uint64(time.Now().UnixNano()), buf)
	require.NoError(t, err)
	encoded, err := envelope.Encode(env)
	require.NoError(t, err)

	require.NoError(t, conn.Send(transport.EventMessage, encoded))

	select {
	case rec := <-batch:
		require.Equal(t, "driver-1", rec.UserID)
		require.NotNil(t, rec.Forza)
		require.Equal(t, int32(7), rec.Forza.Sled.CarID)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for batch record")
	}
}

func TestServeAcksMessageAck(t *testing.T) {
	batch := make(chan repository.Record, 1)
	h := NewHandler("FH5", "driver-1", batch, nil)
	url := startServer(t, h)
	conn := dial(t, url)

	_, err := conn.Recv() // auth echo
	require.NoError(t, err)

	buf := forza.Encode(forza.Record{Sled: forza.Sled{IsRaceOn: true}}, forza.SledSize)
	env, err := envelope.New(envelope.GameFH5, uint64(time.Now().UnixNano()), buf)
	require.NoError(t, err)
	encoded, err := envelope.Encode(env)
	require.NoError(t, err)

	require.NoError(t, conn.Send(transport.EventMessageAck, encoded))

	frame, err := conn.Recv()
	require.NoError(t, err)
	require.Equal(t, transport.EventMessageAck, frame.Event)
}
