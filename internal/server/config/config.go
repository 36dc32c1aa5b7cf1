// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package config loads the ingestion server's environment-derived
// configuration, optionally pre-populated from a .env file the way the
// client agent's bootstrap does.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// DefaultPort is used when PORT is unset.
const DefaultPort = "3002"

// Config is the server's environment-derived configuration.
type Config struct {
	// ClusterAddr is read from REDIS_URL. The name is historical: this
	// deployment's cross-node registry fan-out runs over NATS rather than
	// Redis, but the external interface keeps the env var name so existing
	// deployment tooling does not need to change.
	ClusterAddr string
	DatabaseURL string
	Port        string
}

// Load reads .env (if present, silently ignored otherwise) then the
// required and optional environment variables. A missing required
// variable is fatal at process start, matching the teacher's
// fail-fast bootstrap.
func Load() (Config, error) {
	_ = godotenv.Load()

	clusterAddr := os.Getenv("REDIS_URL")
	if clusterAddr == "" {
		return Config{}, fmt.Errorf("server: required env var REDIS_URL is empty")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return Config{}, fmt.Errorf("server: required env var DATABASE_URL is empty")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = DefaultPort
	}

	return Config{ClusterAddr: clusterAddr, DatabaseURL: dbURL, Port: port}, nil
}
