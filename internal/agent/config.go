// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package agent

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/trackside/simtelemetry/internal/config"
)

// preferencesSchema validates the client's single UI preferences file.
const preferencesSchema = `{
	"type": "object",
	"description": "simtelemetry client agent preferences.",
	"properties": {
		"api_url": {"type": "string"},
		"default_forward_hosts": {
			"type": "array",
			"items": {"type": "string"},
			"maxItems": 5
		}
	},
	"required": ["api_url"]
}`

// Preferences is the UI-editable subset of client configuration, loaded
// from a JSON file and validated against preferencesSchema.
type Preferences struct {
	APIURL               string   `json:"api_url"`
	DefaultForwardHosts  []string `json:"default_forward_hosts"`
}

// LoadPreferences reads and validates the preferences file at path.
func LoadPreferences(path string) (Preferences, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Preferences{}, fmt.Errorf("agent: read preferences: %w", err)
	}
	if err := config.Validate(preferencesSchema, json.RawMessage(raw)); err != nil {
		return Preferences{}, fmt.Errorf("agent: invalid preferences: %w", err)
	}

	var p Preferences
	if err := json.Unmarshal(raw, &p); err != nil {
		return Preferences{}, fmt.Errorf("agent: decode preferences: %w", err)
	}
	return p, nil
}

// DefaultControlPort is used when CONTROL_PORT is unset.
const DefaultControlPort = "4000"

// Config is the client agent's environment-derived configuration.
type Config struct {
	APIURL          string // WebSocket server base URL, env API_URL
	ControlPort     string // local control-plane HTTP listen port, env CONTROL_PORT
	HandshakeSecret string // HMAC secret for the auth handshake payload, env HANDSHAKE_SECRET
	ClusterAddr     string // NATS address for cross-instance registry fan-out, env CLUSTER_ADDR; empty disables it
	InstanceID      string // this instance's identity in membership events, env INSTANCE_ID
}

// LoadConfig reads required environment variables, matching the teacher's
// fail-fast pattern: a missing required var is fatal at process start.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		return Config{}, fmt.Errorf("agent: required env var API_URL is empty")
	}

	secret := os.Getenv("HANDSHAKE_SECRET")
	if secret == "" {
		return Config{}, fmt.Errorf("agent: required env var HANDSHAKE_SECRET is empty")
	}

	controlPort := os.Getenv("CONTROL_PORT")
	if controlPort == "" {
		controlPort = DefaultControlPort
	}

	instanceID := os.Getenv("INSTANCE_ID")
	if instanceID == "" {
		instanceID = "agent-" + fmt.Sprintf("%d", os.Getpid())
	}

	return Config{
		APIURL:          apiURL,
		ControlPort:     controlPort,
		HandshakeSecret: secret,
		ClusterAddr:     os.Getenv("CLUSTER_ADDR"),
		InstanceID:      instanceID,
	}, nil
}
