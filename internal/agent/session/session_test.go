// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/trackside/simtelemetry/internal/authpayload"
	"github.com/trackside/simtelemetry/internal/transport"
)

func startEchoServer(t *testing.T) (*httptest.Server, chan transport.Frame) {
	t.Helper()
	upgrader := websocket.Upgrader{}
	received := make(chan transport.Frame, 16)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		conn := transport.NewConn(ws)
		for {
			frame, err := conn.Recv()
			if err != nil {
				return
			}
			received <- frame
			if frame.Event == transport.EventPing {
				_ = conn.Send(transport.EventPong, nil)
			}
		}
	}))
	t.Cleanup(srv.Close)
	return srv, received
}

func toWS(url string) string {
	return "ws" + strings.TrimPrefix(url, "http")
}

func TestDialSendsAuthHandshake(t *testing.T) {
	srv, received := startEchoServer(t)

	signer := authpayload.NewSigner([]byte("secret"), time.Minute)
	sess, err := Dial(context.Background(), toWS(srv.URL), "fh5", signer)
	require.NoError(t, err)
	defer sess.Close()

	frame := <-received
	require.Equal(t, transport.EventAuth, frame.Event)
	require.NotEmpty(t, frame.Payload)
}

func TestCloseStopsReadLoop(t *testing.T) {
	srv, _ := startEchoServer(t)

	sess, err := Dial(context.Background(), toWS(srv.URL), "fh5", nil)
	require.NoError(t, err)

	sess.Close()

	select {
	case <-sess.Done():
	case <-time.After(time.Second):
		t.Fatal("session did not close its read loop")
	}
}
