// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package cluster fans out registry membership events (listener
// started/stopped) across multiple agent instances over NATS,
// standing in for the Redis-backed multi-node adapter referenced only by
// interface in the ingestion pipeline's transport layer.
package cluster

import (
	"fmt"
	"sync"

	"github.com/nats-io/nats.go"

	"github.com/trackside/simtelemetry/pkg/log"
)

// EventKind distinguishes the two membership events the registry publishes.
type EventKind string

const (
	ListenerStarted EventKind = "listener_started"
	ListenerStopped EventKind = "listener_stopped"
)

// MembershipEvent announces a lifecycle change to peer instances. The
// registry publishes ListenerStarted when a game tag's WebSocket session is
// recorded and ListenerStopped when it is removed, both with Port 0;
// individual UDP listener ports are not announced.
type MembershipEvent struct {
	Kind     EventKind `json:"kind"`
	GameTag  string    `json:"game_tag"`
	Port     int       `json:"port"`
	Instance string    `json:"instance"`
}

// Handler processes a membership event observed from a peer instance.
type Handler func(MembershipEvent)

// Client wraps a NATS connection used only for registry fan-out; it has no
// role in the datagram or envelope data path.
type Client struct {
	conn    *nats.Conn
	subject string

	mu   sync.Mutex
	subs []*nats.Subscription
}

// Config configures the cluster fan-out connection. Address empty disables
// clustering entirely; Connect then returns a nil, non-error Client.
type Config struct {
	Address  string
	Subject  string // defaults to "simtelemetry.registry"
	Username string
	Password string
}

// Connect dials the configured NATS server. If cfg.Address is empty,
// clustering is disabled and Connect returns (nil, nil): callers must treat
// a nil *Client as "fan-out is a no-op".
func Connect(cfg Config) (*Client, error) {
	if cfg.Address == "" {
		log.Info("registry/cluster: no address configured, running single-node")
		return nil, nil
	}

	subject := cfg.Subject
	if subject == "" {
		subject = "simtelemetry.registry"
	}

	var opts []nats.Option
	if cfg.Username != "" && cfg.Password != "" {
		opts = append(opts, nats.UserInfo(cfg.Username, cfg.Password))
	}
	opts = append(opts, nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
		if err != nil {
			log.Warnf("registry/cluster: disconnected: %v", err)
		}
	}))
	opts = append(opts, nats.ReconnectHandler(func(nc *nats.Conn) {
		log.Infof("registry/cluster: reconnected to %s", nc.ConnectedUrl())
	}))

	nc, err := nats.Connect(cfg.Address, opts...)
	if err != nil {
		return nil, fmt.Errorf("registry/cluster: connect failed: %w", err)
	}

	log.Infof("registry/cluster: connected to %s on subject %q", cfg.Address, subject)
	return &Client{conn: nc, subject: subject}, nil
}

// Publish announces a membership event to peer instances. A nil Client is a
// valid no-op receiver so callers never need a conditional at the call site.
func (c *Client) Publish(ev MembershipEvent) error {
	if c == nil {
		return nil
	}
	data, err := marshalEvent(ev)
	if err != nil {
		return err
	}
	if err := c.conn.Publish(c.subject, data); err != nil {
		return fmt.Errorf("registry/cluster: publish failed: %w", err)
	}
	return nil
}

// OnEvent registers handler for membership events published by peers.
func (c *Client) OnEvent(handler Handler) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	sub, err := c.conn.Subscribe(c.subject, func(msg *nats.Msg) {
		ev, err := unmarshalEvent(msg.Data)
		if err != nil {
			log.Warnf("registry/cluster: dropping malformed event: %v", err)
			return
		}
		handler(ev)
	})
	if err != nil {
		return fmt.Errorf("registry/cluster: subscribe failed: %w", err)
	}
	c.subs = append(c.subs, sub)
	return nil
}

// Close unsubscribes and closes the underlying connection.
func (c *Client) Close() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, sub := range c.subs {
		_ = sub.Unsubscribe()
	}
	c.subs = nil
	c.conn.Close()
}
