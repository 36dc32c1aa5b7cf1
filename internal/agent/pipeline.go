// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package agent implements the client-side per-port pipeline: a UDP
// receiver that validates and rate-limits datagrams, fanning accepted
// ones out to a WebSocket emitter and an optional UDP forwarder.
package agent

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/trackside/simtelemetry/internal/agent/ratelimit"
	"github.com/trackside/simtelemetry/internal/agent/session"
	"github.com/trackside/simtelemetry/internal/authpayload"
	"github.com/trackside/simtelemetry/internal/codec/f1"
	"github.com/trackside/simtelemetry/internal/codec/forza"
	"github.com/trackside/simtelemetry/internal/envelope"
	"github.com/trackside/simtelemetry/internal/metrics"
	"github.com/trackside/simtelemetry/internal/registry"
	"github.com/trackside/simtelemetry/pkg/log"
)

// ChannelCapacity is the bounded-queue size between the receiver and each
// of the emitter/forwarder tasks. Full-channel policy is drop-newest.
const ChannelCapacity = 3600

// f1AllowList names the low-frequency F1 packet types that bypass
// throttling entirely. Keys are prefixed to match classify's rate-limit
// key space exactly ("f1." + f1.PacketID.String()).
var f1AllowList = []string{
	"f1.CarDamage", "f1.TimeTrial", "f1.TyreSets", "f1.SessionHistory",
	"f1.FinalClassification", "f1.CarSetups", "f1.Participants", "f1.Event",
	"f1.Session", "f1.LobbyInfo",
}

// isForzaTag reports whether tag names a Forza game family member.
func isForzaTag(tag envelope.GameTag) bool {
	switch tag {
	case envelope.GameFH4, envelope.GameFH5, envelope.GameFM7, envelope.GameFM8:
		return true
	default:
		return false
	}
}

// StartResult is the outcome of Manager.Start.
type StartResult int

const (
	Started StartResult = iota
	AlreadyBound
	BindFailure
	InvalidForwardHost
)

// StopResult is the outcome of Manager.Stop.
type StopResult int

const (
	Stopped StopResult = iota
	NotFound
)

// Manager owns every active per-port pipeline plus the one WebSocket
// session per game tag they share.
type Manager struct {
	reg        *registry.Registry
	baseURL    string
	signer     *authpayload.Signer
	throttle   time.Duration
	gameOfPort map[int]envelope.GameTag
}

// NewManager builds a Manager. baseURL is the WebSocket server's address;
// throttle is the per-packet-type rate-limit period (0 uses the default).
func NewManager(reg *registry.Registry, baseURL string, signer *authpayload.Signer, throttle time.Duration) *Manager {
	return &Manager{
		reg:        reg,
		baseURL:    baseURL,
		signer:     signer,
		throttle:   throttle,
		gameOfPort: make(map[int]envelope.GameTag),
	}
}

// Start binds port, ensures a WebSocket session exists for gameTag, and
// spawns the receiver/emitter/forwarder tasks.
func (m *Manager) Start(ctx context.Context, port int, gameTag envelope.GameTag, forwardHosts []string) (StartResult, error) {
	if len(forwardHosts) > 5 {
		return InvalidForwardHost, fmt.Errorf("agent: at most 5 forward hosts allowed, got %d", len(forwardHosts))
	}
	addrs := make([]*net.UDPAddr, 0, len(forwardHosts))
	for _, h := range forwardHosts {
		addr, err := net.ResolveUDPAddr("udp", h)
		if err != nil {
			return InvalidForwardHost, fmt.Errorf("agent: invalid forward host %q: %w", h, err)
		}
		addrs = append(addrs, addr)
	}

	udpAddr, err := net.ResolveUDPAddr("udp", fmt.Sprintf("0.0.0.0:%d", port))
	if err != nil {
		return BindFailure, err
	}
	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return BindFailure, fmt.Errorf("agent: bind port %d: %w", port, err)
	}

	sess, err := m.ensureSession(ctx, gameTag)
	if err != nil {
		_ = conn.Close()
		return BindFailure, err
	}

	pipelineCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	listener := &registry.Listener{
		Port: port,
		Conn: conn,
		Task: registry.Task{Cancel: cancel, Done: done},
	}
	if err := m.reg.AddListener(port, listener); err != nil {
		cancel()
		_ = conn.Close()
		return AlreadyBound, err
	}
	m.gameOfPort[port] = gameTag

	wsChan := make(chan []byte, ChannelCapacity)
	fwdChan := make(chan []byte, ChannelCapacity)

	limiter := ratelimit.New(m.throttle, nil)
	if !isForzaTag(gameTag) {
		limiter = ratelimit.New(m.throttle, f1AllowList)
	}

	emitDone := make(chan struct{})
	go m.emitLoop(pipelineCtx, gameTag, sess, wsChan, emitDone)
	m.reg.SetEmitterTask(gameTag.String(), registry.Task{Cancel: cancel, Done: emitDone})

	if len(addrs) > 0 {
		fwdDone := make(chan struct{})
		go m.forwardLoop(pipelineCtx, conn, addrs, fwdChan, fwdDone)
		m.reg.SetForwarderTask(gameTag.String(), registry.Task{Cancel: cancel, Done: fwdDone})
	}

	go m.receiveLoop(pipelineCtx, conn, gameTag, limiter, wsChan, fwdChan, len(addrs) > 0, done)

	return Started, nil
}

func (m *Manager) ensureSession(ctx context.Context, gameTag envelope.GameTag) (*session.Session, error) {
	if existing, ok := m.reg.Session(gameTag.String()); ok {
		return existing.(*session.Session), nil
	}
	sess, err := session.Dial(ctx, m.baseURL, gameTag.String(), m.signer)
	if err != nil {
		return nil, fmt.Errorf("agent: dial session for %s: %w", gameTag, err)
	}
	m.reg.SetSession(gameTag.String(), sess)
	m.reg.SetPingTask(gameTag.String(), registry.Task{Cancel: func() {}, Done: sess.Done()})
	return sess, nil
}

// Stop fires the cancellation token for the pipeline of one port bound to
// gameTag (the first one found, if several share the tag) and tears the
// session down if it was the last listener for that game tag.
func (m *Manager) Stop(gameTag envelope.GameTag) (StopResult, error) {
	var targetPort int
	found := false
	for port, tag := range m.gameOfPort {
		if tag == gameTag {
			targetPort = port
			found = true
			break
		}
	}
	if !found {
		return NotFound, nil
	}
	return m.stopPort(targetPort, gameTag)
}

// StopPort stops the listener bound to port specifically.
func (m *Manager) StopPort(port int) (StopResult, error) {
	tag, ok := m.gameOfPort[port]
	if !ok {
		return NotFound, nil
	}
	return m.stopPort(port, tag)
}

func (m *Manager) stopPort(port int, gameTag envelope.GameTag) (StopResult, error) {
	l, ok := m.reg.RemoveListener(port)
	if !ok {
		return NotFound, nil
	}
	delete(m.gameOfPort, port)

	l.Task.Cancel()
	l.Task.Wait()

	remaining := m.reg.ListenerCountForGame(gameTag.String(), func(p int) string {
		if t, ok := m.gameOfPort[p]; ok {
			return t.String()
		}
		return ""
	})
	if remaining == 0 {
		if s, ok := m.reg.Session(gameTag.String()); ok {
			s.(*session.Session).Close()
			m.reg.RemoveSession(gameTag.String())
		}
	}

	return Stopped, nil
}

func (m *Manager) receiveLoop(ctx context.Context, conn *net.UDPConn, gameTag envelope.GameTag, limiter *ratelimit.Limiter, wsChan, fwdChan chan []byte, hasForwarder bool, done chan struct{}) {
	defer close(done)
	defer conn.Close()

	buf := make([]byte, 4096)
	portLabel := fmt.Sprintf("%d", localPort(conn))

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		_ = conn.SetReadDeadline(time.Now().Add(500 * time.Millisecond))
		n, _, err := conn.ReadFromUDP(buf)
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				continue
			}
			select {
			case <-ctx.Done():
				return
			default:
				log.Warnf("agent: recv error on %s: %v", gameTag, err)
				continue
			}
		}

		metrics.DatagramsReceived.WithLabelValues(gameTag.String(), portLabel).Inc()

		datagram := make([]byte, n)
		copy(datagram, buf[:n])

		packetTypeKey, ok := classify(gameTag, datagram)
		if !ok {
			metrics.DatagramsRejected.WithLabelValues(gameTag.String(), "parse").Inc()
			continue
		}

		if !limiter.Allow(packetTypeKey) {
			metrics.DatagramsRejected.WithLabelValues(gameTag.String(), "throttled").Inc()
			continue
		}

		offer(wsChan, datagram, gameTag.String(), "ws")
		if hasForwarder {
			offer(fwdChan, datagram, gameTag.String(), "forward")
		}
	}
}

// offer performs the non-blocking drop-newest send mandated for the
// bounded channels between the receiver and its consumers.
func offer(ch chan []byte, datagram []byte, gameTag, channelName string) {
	select {
	case ch <- datagram:
	default:
		metrics.ChannelDropped.WithLabelValues(gameTag, channelName).Inc()
	}
}

func localPort(conn *net.UDPConn) int {
	if addr, ok := conn.LocalAddr().(*net.UDPAddr); ok {
		return addr.Port
	}
	return 0
}

// classify validates a raw datagram and returns the rate-limit key used
// for it: Forza shares one key across all packets, F1 keys by packet id.
// A second return value of false means the datagram failed validation and
// must be dropped before it reaches either consumer.
func classify(gameTag envelope.GameTag, datagram []byte) (string, bool) {
	if isForzaTag(gameTag) {
		rec, err := forza.Parse(datagram)
		if err != nil || !rec.Sled.IsRaceOn {
			return "", false
		}
		return "forza", true
	}

	pkt, err := f1.Parse(datagram)
	if err != nil {
		return "", false
	}
	if pkt.Header.SessionUID == 0 {
		return "", false
	}
	if pkt.Event != nil && pkt.Event.Code == f1.EventButtonStatus {
		return "", false
	}
	return fmt.Sprintf("f1.%s", pkt.Header.PacketID), true
}

func (m *Manager) emitLoop(ctx context.Context, gameTag envelope.GameTag, sess *session.Session, wsChan chan []byte, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-ctx.Done():
			return
		case datagram := <-wsChan:
			env, err := envelope.New(gameTag, uint64(time.Now().UnixNano()), datagram)
			if err != nil {
				log.Warnf("agent: build envelope for %s: %v", gameTag, err)
				continue
			}
			encoded, err := envelope.Encode(env)
			if err != nil {
				log.Warnf("agent: encode envelope for %s: %v", gameTag, err)
				continue
			}
			if err := sess.Emit("message", encoded); err != nil {
				log.Warnf("agent: emit for %s: %v", gameTag, err)
			}
		}
	}
}

func (m *Manager) forwardLoop(ctx context.Context, conn *net.UDPConn, hosts []*net.UDPAddr, fwdChan chan []byte, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-ctx.Done():
			return
		case datagram := <-fwdChan:
			for _, host := range hosts {
				if _, err := conn.WriteToUDP(datagram, host); err != nil {
					log.Warnf("agent: forward to %s failed: %v", host, err)
				}
			}
		}
	}
}
