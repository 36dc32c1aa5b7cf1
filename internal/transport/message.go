// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package transport implements the Socket.IO-shaped event framing this
// system's client and server speak over a raw github.com/gorilla/websocket
// connection: every frame names an event and carries a binary payload.
package transport

import (
	"encoding/json"
	"fmt"
)

// Event names defined by the external interface.
const (
	EventAuth        = "auth"
	EventPing        = "ping"
	EventPong        = "pong"
	EventMessage     = "message"
	EventMessageAck  = "message-ack"
)

// Frame is one event-named message exchanged over the connection. Payload
// is an encoded envelope for message/message-ack from the client, the
// handshake token for the client's auth, a JSON body for the server's ack
// reply, and empty for ping/pong and the server's auth frame.
type Frame struct {
	Event   string `json:"event"`
	Payload []byte `json:"payload,omitempty"`
}

// Encode serializes a frame as one JSON object holding the event name and
// the payload, which encoding/json writes as base64. No length prefix is
// added; each frame is sent as one WebSocket message. Decode restores the
// payload bytes exactly, so the inner envelope's compact binary encoding
// arrives unchanged.
func Encode(f Frame) ([]byte, error) {
	b, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("transport: encode frame: %w", err)
	}
	return b, nil
}

// Decode parses a frame produced by Encode.
func Decode(b []byte) (Frame, error) {
	var f Frame
	if err := json.Unmarshal(b, &f); err != nil {
		return Frame{}, fmt.Errorf("transport: decode frame: %w", err)
	}
	return f, nil
}

// AckResponse is the small JSON body the server replies with to a
// message-ack event.
type AckResponse struct {
	Success bool `json:"success"`
}
