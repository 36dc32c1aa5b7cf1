// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package transport

import (
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
)

// Conn wraps a gorilla/websocket connection with the frame-based protocol
// and a write mutex, since gorilla/websocket forbids concurrent writers.
type Conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

// NewConn adopts an already-established websocket connection.
func NewConn(ws *websocket.Conn) *Conn {
	return &Conn{ws: ws}
}

// Send writes one event frame. Safe for concurrent use.
func (c *Conn) Send(event string, payload []byte) error {
	b, err := Encode(Frame{Event: event, Payload: payload})
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ws.WriteMessage(websocket.BinaryMessage, b); err != nil {
		return fmt.Errorf("transport: write failed: %w", err)
	}
	return nil
}

// Recv blocks for the next frame. Only one goroutine should call Recv.
func (c *Conn) Recv() (Frame, error) {
	_, data, err := c.ws.ReadMessage()
	if err != nil {
		return Frame{}, fmt.Errorf("transport: read failed: %w", err)
	}
	return Decode(data)
}

// Close closes the underlying connection.
func (c *Conn) Close() error {
	return c.ws.Close()
}
