// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package controlplane

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"
)

// Router mounts the two RPC-style endpoints the host UI invokes. Plain
// gorilla/mux route registration, matching the REST handler registration
// style the rest of this codebase uses for its HTTP surfaces.
func Router(h *Handler) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/control/create_udp_listener", h.createUdpListenerHTTP).Methods(http.MethodPost)
	router.HandleFunc("/control/stop_udp_listener", h.stopUdpListenerHTTP).Methods(http.MethodPost)
	return router
}

func (h *Handler) createUdpListenerHTTP(rw http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeResponse(rw, fail(err.Error()))
		return
	}
	writeResponse(rw, h.CreateUdpListener(r.Context(), body))
}

func (h *Handler) stopUdpListenerHTTP(rw http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeResponse(rw, fail(err.Error()))
		return
	}
	writeResponse(rw, h.StopUdpListener(body))
}

func writeResponse(rw http.ResponseWriter, resp Response) {
	rw.Header().Set("Content-Type", "application/json")
	if !resp.Success {
		rw.WriteHeader(http.StatusBadRequest)
	}
	_ = json.NewEncoder(rw).Encode(resp)
}
