// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package session manages one WebSocket connection per game tag between
// the client agent and the ingestion server: connect, auth handshake,
// periodic ping, and graceful shutdown once the last listener for the tag
// stops.
package session

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/gorilla/websocket"

	"github.com/trackside/simtelemetry/internal/authpayload"
	"github.com/trackside/simtelemetry/internal/transport"
	"github.com/trackside/simtelemetry/pkg/log"
)

// PingPeriod is the application-level keepalive interval; a missing pong
// is not a disconnect trigger. Neither the session nor the transport
// reconnects after a connection error.
const PingPeriod = 10 * time.Second

// Session is one logical WebSocket connection scoped to a single game tag.
type Session struct {
	GameTag string
	conn    *transport.Conn

	scheduler gocron.Scheduler
	pingJob   gocron.Job

	cancel context.CancelFunc
	done   chan struct{}
}

// Dial connects to baseURL's "/<gameTag>" namespace and emits the auth
// handshake. The returned Session owns a read loop goroutine that only
// logs inbound events (open/error/close/pong); it performs no retries —
// that responsibility belongs to whatever supervises listener restarts.
func Dial(ctx context.Context, baseURL, gameTag string, signer *authpayload.Signer) (*Session, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("session: invalid base url: %w", err)
	}
	u.Path = "/" + gameTag

	ws, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("session: dial %s: %w", u.String(), err)
	}

	sch, err := gocron.NewScheduler()
	if err != nil {
		_ = ws.Close()
		return nil, fmt.Errorf("session: scheduler init: %w", err)
	}

	sessionCtx, cancel := context.WithCancel(ctx)
	s := &Session{
		GameTag:   gameTag,
		conn:      transport.NewConn(ws),
		scheduler: sch,
		cancel:    cancel,
		done:      make(chan struct{}),
	}

	auth := []byte{}
	if signer != nil {
		tok, err := signer.Issue(gameTag)
		if err != nil {
			_ = ws.Close()
			cancel()
			return nil, fmt.Errorf("session: issue auth token: %w", err)
		}
		auth = []byte(tok)
	}
	if err := s.conn.Send(transport.EventAuth, auth); err != nil {
		_ = ws.Close()
		cancel()
		return nil, fmt.Errorf("session: send auth: %w", err)
	}

	job, err := sch.NewJob(
		gocron.DurationJob(PingPeriod),
		gocron.NewTask(func() { s.sendPing() }),
	)
	if err != nil {
		_ = ws.Close()
		cancel()
		return nil, fmt.Errorf("session: schedule ping: %w", err)
	}
	s.pingJob = job
	sch.Start()

	go s.readLoop(sessionCtx)

	return s, nil
}

func (s *Session) sendPing() {
	if err := s.conn.Send(transport.EventPing, nil); err != nil {
		log.Warnf("session[%s]: ping send failed: %v", s.GameTag, err)
	}
}

func (s *Session) readLoop(ctx context.Context) {
	defer close(s.done)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		frame, err := s.conn.Recv()
		if err != nil {
			log.Infof("session[%s]: closed: %v", s.GameTag, err)
			return
		}
		switch frame.Event {
		case transport.EventPong:
			log.Debugf("session[%s]: pong", s.GameTag)
		case transport.EventAuth:
			log.Debugf("session[%s]: auth echo received", s.GameTag)
		default:
			log.Debugf("session[%s]: unhandled event %q", s.GameTag, frame.Event)
		}
	}
}

// Emit sends an application event (e.g. "message") with the given payload.
func (s *Session) Emit(event string, payload []byte) error {
	return s.conn.Send(event, payload)
}

// Done returns the channel that closes once the session's read loop has
// exited. The ping job is stopped only by Close, so after a receive error
// Done is closed while pings are still scheduled. Exposed so the registry
// can track the session without owning its shutdown sequencing itself.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Close cancels the ping task, closes the connection, and waits for the
// read loop to exit.
func (s *Session) Close() {
	s.cancel()
	_ = s.scheduler.Shutdown()
	_ = s.conn.Close()
	<-s.done
}
