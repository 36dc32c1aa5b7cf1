// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package controlplane

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trackside/simtelemetry/internal/agent"
	"github.com/trackside/simtelemetry/internal/authpayload"
	"github.com/trackside/simtelemetry/internal/registry"
)

func TestCreateUdpListenerHTTPRejectsMalformedBody(t *testing.T) {
	reg := registry.New(nil, "test-instance")
	manager := agent.NewManager(reg, "ws://localhost:3002", authpayload.NewSigner([]byte("secret"), 0), 0)
	h := NewHandler(manager)
	router := Router(h)

	req := httptest.NewRequest(http.MethodPost, "/control/create_udp_listener", strings.NewReader(`{"port": "not-a-number"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
