// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command simtelemetry-agent runs the client-side control plane: an HTTP
// surface exposing create_udp_listener/stop_udp_listener, backing every
// accepted port with a UDP receiver, an authenticated WebSocket emitter,
// and an optional forwarder, all tracked in a shared registry.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/trackside/simtelemetry/internal/agent"
	"github.com/trackside/simtelemetry/internal/agent/controlplane"
	"github.com/trackside/simtelemetry/internal/authpayload"
	"github.com/trackside/simtelemetry/internal/registry"
	"github.com/trackside/simtelemetry/internal/registry/cluster"
	"github.com/trackside/simtelemetry/pkg/log"
)

func main() {
	logLevel := flag.String("loglevel", "info", "debug, info, warn, or err")
	prefsPath := flag.String("preferences", "./preferences.json", "path to the UI-editable preferences file")
	handshakeTTL := flag.Duration("handshake-ttl", 5*time.Minute, "how long an issued auth handshake token stays valid")
	throttle := flag.Duration("throttle", 0, "per-packet-type rate-limit period; 0 uses the default of 100ms")
	flag.Parse()

	log.SetLogLevel(*logLevel)

	cfg, err := agent.LoadConfig()
	if err != nil {
		log.Fatalf("agent: %v", err)
	}

	prefs, err := agent.LoadPreferences(*prefsPath)
	if err != nil {
		log.Fatalf("agent: %v", err)
	}

	clusterClient, err := cluster.Connect(cluster.Config{Address: cfg.ClusterAddr})
	if err != nil {
		log.Fatalf("agent: cluster connect: %v", err)
	}
	defer clusterClient.Close()

	reg := registry.New(clusterClient, cfg.InstanceID)
	signer := authpayload.NewSigner([]byte(cfg.HandshakeSecret), *handshakeTTL)
	manager := agent.NewManager(reg, cfg.APIURL, signer, *throttle)

	handler := controlplane.NewHandler(manager)
	router := controlplane.Router(handler)

	server := &http.Server{
		Addr:         ":" + cfg.ControlPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Infof("simtelemetry-agent control plane listening on :%s", cfg.ControlPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("agent: %v", err)
		}
	}()

	if len(prefs.DefaultForwardHosts) > 0 {
		log.Infof("agent: %d default forward host(s) configured in preferences; applied per create_udp_listener call, not at startup", len(prefs.DefaultForwardHosts))
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs

	log.Info("agent: shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	_ = server.Shutdown(shutdownCtx)

	for _, port := range reg.Ports() {
		if _, err := manager.StopPort(port); err != nil {
			log.Warnf("agent: stopping port %d: %v", port, err)
		}
	}

	wg.Wait()
	log.Info("agent: shutdown complete")
}
