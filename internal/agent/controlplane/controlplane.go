// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package controlplane implements the two RPC-style commands the host UI
// invokes on the client agent: create_udp_listener and stop_udp_listener.
package controlplane

import (
	"context"
	"encoding/json"
	"fmt"
	"net"

	"github.com/trackside/simtelemetry/internal/agent"
	"github.com/trackside/simtelemetry/internal/config"
	"github.com/trackside/simtelemetry/internal/envelope"
)

const createListenerSchema = `{
	"type": "object",
	"properties": {
		"game_type": {"type": "string"},
		"port": {"type": "integer", "minimum": 1, "maximum": 65535},
		"forward_ports": {
			"type": "array",
			"items": {"type": "string"},
			"maxItems": 5
		}
	},
	"required": ["game_type", "port"]
}`

const stopListenerSchema = `{
	"type": "object",
	"properties": {
		"port": {"type": "integer", "minimum": 1, "maximum": 65535},
		"host": {"type": "string"},
		"game_type": {"type": "string"}
	},
	"required": ["port", "game_type"]
}`

// CreateUdpListenerPayload is the request body for create_udp_listener.
type CreateUdpListenerPayload struct {
	GameType     string   `json:"game_type"`
	Port         uint16   `json:"port"`
	ForwardPorts []string `json:"forward_ports,omitempty"`
}

// Validate checks every forward_ports entry is a well-formed "host:port".
func (p CreateUdpListenerPayload) Validate() error {
	if len(p.ForwardPorts) > 5 {
		return fmt.Errorf("controlplane: at most 5 forward_ports entries allowed")
	}
	for _, entry := range p.ForwardPorts {
		host, port, err := net.SplitHostPort(entry)
		if err != nil || host == "" || port == "" {
			return fmt.Errorf("controlplane: forward_ports entry %q is not host:port", entry)
		}
	}
	return nil
}

// StopUdpListenerPayload is the request body for stop_udp_listener.
type StopUdpListenerPayload struct {
	Port     uint16 `json:"port"`
	Host     string `json:"host"`
	GameType string `json:"game_type"`
}

// Response is the shape returned for both RPCs.
type Response struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

func ok(msg string) Response    { return Response{Message: msg, Success: true} }
func fail(msg string) Response  { return Response{Message: msg, Success: false} }

// Handler dispatches the two RPCs against a pipeline Manager.
type Handler struct {
	manager *agent.Manager
}

// NewHandler builds a Handler bound to manager.
func NewHandler(manager *agent.Manager) *Handler {
	return &Handler{manager: manager}
}

// CreateUdpListener validates and applies a create_udp_listener request.
func (h *Handler) CreateUdpListener(ctx context.Context, raw json.RawMessage) Response {
	if err := config.Validate(createListenerSchema, raw); err != nil {
		return fail(err.Error())
	}
	var payload CreateUdpListenerPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fail(err.Error())
	}
	if err := payload.Validate(); err != nil {
		return fail(err.Error())
	}

	gameTag, err := envelope.ParseGameTag(payload.GameType)
	if err != nil {
		return fail(err.Error())
	}

	result, err := h.manager.Start(ctx, int(payload.Port), gameTag, payload.ForwardPorts)
	switch result {
	case agent.Started:
		return ok(fmt.Sprintf("listener started on port %d", payload.Port))
	case agent.AlreadyBound:
		return fail(fmt.Sprintf("port %d already bound", payload.Port))
	case agent.InvalidForwardHost:
		return fail(err.Error())
	default:
		return fail(err.Error())
	}
}

// StopUdpListener validates and applies a stop_udp_listener request.
func (h *Handler) StopUdpListener(raw json.RawMessage) Response {
	if err := config.Validate(stopListenerSchema, raw); err != nil {
		return fail(err.Error())
	}
	var payload StopUdpListenerPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fail(err.Error())
	}

	result, err := h.manager.StopPort(int(payload.Port))
	switch result {
	case agent.Stopped:
		return ok(fmt.Sprintf("listener on port %d stopped", payload.Port))
	case agent.NotFound:
		return fail(fmt.Sprintf("no listener on port %d", payload.Port))
	default:
		return fail(err.Error())
	}
}
