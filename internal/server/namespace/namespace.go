// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package namespace implements the server-side per-game WebSocket
// namespace: it accepts connections, sends an auth frame, decodes inbound
// envelopes, and fans the result out to a per-game batch writer and an
// optional raw-capture worker.
package namespace

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/trackside/simtelemetry/internal/codec/f1"
	"github.com/trackside/simtelemetry/internal/codec/forza"
	"github.com/trackside/simtelemetry/internal/envelope"
	"github.com/trackside/simtelemetry/internal/metrics"
	"github.com/trackside/simtelemetry/internal/repository"
	"github.com/trackside/simtelemetry/internal/transport"
	"github.com/trackside/simtelemetry/pkg/log"
)

// Upgrader is shared across all namespaces; origin checking is left
// permissive since the agent and server are operated by the same party
// and typically run on a private network.
var Upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Handler serves one game tag's namespace. It is stateless with respect
// to connection identity: every record it produces is stamped with the
// configured ingest user id, since binding individual connections to
// authenticated users is out of scope for this version.
type Handler struct {
	GameTag      string
	IngestUserID string

	Batch  chan<- repository.Record
	RawCap chan<- []byte // nil disables raw capture for this game tag
}

// NewHandler builds a Handler wired to a batch channel and an optional
// raw-capture channel.
func NewHandler(gameTag, ingestUserID string, batch chan<- repository.Record, rawCap chan<- []byte) *Handler {
	return &Handler{GameTag: gameTag, IngestUserID: ingestUserID, Batch: batch, RawCap: rawCap}
}

// Serve drives one client connection until it errors or closes. It sends
// an auth frame with an empty payload as soon as the connection opens; it
// does not echo the client's handshake token, and a client auth frame is
// treated as an unhandled event.
func (h *Handler) Serve(conn *transport.Conn) {
	if err := conn.Send(transport.EventAuth, nil); err != nil {
		log.Warnf("namespace[%s]: auth echo failed: %v", h.GameTag, err)
		return
	}

	for {
		frame, err := conn.Recv()
		if err != nil {
			log.Debugf("namespace[%s]: connection closed: %v", h.GameTag, err)
			return
		}

		switch frame.Event {
		case transport.EventMessage:
			h.handleMessage(frame.Payload)
		case transport.EventMessageAck:
			h.handleMessage(frame.Payload)
			if err := conn.Send(transport.EventMessageAck, ackPayload()); err != nil {
				log.Warnf("namespace[%s]: ack send failed: %v", h.GameTag, err)
				return
			}
		case transport.EventPing:
			if err := conn.Send(transport.EventPong, nil); err != nil {
				log.Warnf("namespace[%s]: pong send failed: %v", h.GameTag, err)
				return
			}
		default:
			log.Debugf("namespace[%s]: unhandled event %q", h.GameTag, frame.Event)
		}
	}
}

func (h *Handler) handleMessage(payload []byte) {
	env, err := envelope.Decode(payload)
	if err != nil {
		metrics.DatagramsRejected.WithLabelValues(h.GameTag, "envelope_decode").Inc()
		log.Warnf("namespace[%s]: envelope decode failed: %v", h.GameTag, err)
		return
	}

	if h.RawCap != nil {
		offerBytes(h.RawCap, env.Data, h.GameTag)
	}

	rec, err := h.parseRecord(env)
	if err != nil {
		metrics.DatagramsRejected.WithLabelValues(h.GameTag, "codec_parse").Inc()
		log.Warnf("namespace[%s]: codec parse failed: %v", h.GameTag, err)
		return
	}

	offerRecord(h.Batch, rec, h.GameTag)
}

func (h *Handler) parseRecord(env envelope.Envelope) (repository.Record, error) {
	base := repository.Record{
		GameTag:    h.GameTag,
		UserID:     h.IngestUserID,
		ReceivedAt: time.Unix(0, int64(env.Timestamp)),
	}

	switch env.GameType {
	case envelope.GameFH4, envelope.GameFH5, envelope.GameFM7, envelope.GameFM8:
		rec, err := forza.Parse(env.Data)
		if err != nil {
			return repository.Record{}, fmt.Errorf("forza: %w", err)
		}
		base.Forza = &rec
		return base, nil
	case envelope.GameF12022, envelope.GameF12023, envelope.GameF12024:
		pkt, err := f1.Parse(env.Data)
		if err != nil {
			return repository.Record{}, fmt.Errorf("f1: %w", err)
		}
		base.F1 = &pkt
		return base, nil
	default:
		return repository.Record{}, fmt.Errorf("unsupported game tag %s", env.GameType)
	}
}

func ackPayload() []byte {
	return []byte(`{"success":true}`)
}

func offerRecord(ch chan<- repository.Record, rec repository.Record, gameTag string) {
	select {
	case ch <- rec:
	default:
		metrics.ChannelDropped.WithLabelValues(gameTag, "batch").Inc()
	}
}

func offerBytes(ch chan<- []byte, data []byte, gameTag string) {
	select {
	case ch <- data:
	default:
		metrics.ChannelDropped.WithLabelValues(gameTag, "rawcapture").Inc()
	}
}
