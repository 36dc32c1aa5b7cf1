// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package httpd assembles the ingestion server's HTTP surface: the
// per-game WebSocket upgrade routes, a health endpoint, and Prometheus
// metrics, wired together the way the teacher wires its REST/GraphQL
// router in cmd/cc-backend.
package httpd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/trackside/simtelemetry/internal/server/namespace"
	"github.com/trackside/simtelemetry/internal/transport"
	"github.com/trackside/simtelemetry/pkg/log"
)

// Server wraps the HTTP listener serving WebSocket namespaces, health,
// and metrics.
type Server struct {
	addr   string
	router *mux.Router
	http   *http.Server
}

// New builds a router with one WebSocket route per handler's game tag,
// a health check, and a Prometheus metrics endpoint.
func New(addr string, handlers_ map[string]*namespace.Handler, reg *prometheus.Registry) *Server {
	router := mux.NewRouter()

	for gameTag, h := range handlers_ {
		h := h
		router.HandleFunc("/"+gameTag, func(w http.ResponseWriter, r *http.Request) {
			ws, err := namespace.Upgrader.Upgrade(w, r, nil)
			if err != nil {
				log.Warnf("httpd: upgrade failed for %s: %v", gameTag, err)
				return
			}
			h.Serve(transport.NewConn(ws))
		})
	}

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	router.Use(handlers.CompressHandler)
	router.Use(handlers.RecoveryHandler(handlers.PrintRecoveryStack(true)))

	return &Server{addr: addr, router: router}
}

// Start begins listening; it returns once the listener has bound, with
// serving continuing on a background goroutine.
func (s *Server) Start() error {
	loggingHandler := handlers.CustomLoggingHandler(io.Discard, s.router, func(_ io.Writer, params handlers.LogFormatterParams) {
		log.Debugf("%s %s (%d, %.02fkb, %dms)",
			params.Request.Method, params.URL.RequestURI(),
			params.StatusCode, float32(params.Size)/1024,
			time.Since(params.TimeStamp).Milliseconds())
	})

	s.http = &http.Server{
		Addr:         s.addr,
		Handler:      loggingHandler,
		ReadTimeout:  20 * time.Second,
		WriteTimeout: 20 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("httpd: listen %s: %w", s.addr, err)
	}

	go func() {
		if err := s.http.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("httpd: serve failed: %v", err)
		}
	}()

	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
