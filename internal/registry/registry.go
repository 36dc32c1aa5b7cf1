// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package registry holds the process-wide mutable state shared by the
// client agent's per-port pipelines: active UDP listeners, one WebSocket
// session per game tag, and the ping/emitter/forwarder tasks hanging off
// each session. One coarse mutex guards every map; it is never held
// across an await or blocking call.
package registry

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/trackside/simtelemetry/internal/registry/cluster"
	"github.com/trackside/simtelemetry/pkg/log"
)

// Task bundles a cancellation handle with the goroutine it controls so
// callers can fire cancel and then wait for the goroutine to observe it.
type Task struct {
	Cancel context.CancelFunc
	Done   <-chan struct{}
}

// Wait blocks until the task's goroutine has exited.
func (t Task) Wait() {
	if t.Done != nil {
		<-t.Done
	}
}

// Listener is one active UDP listener and its owning tasks.
type Listener struct {
	Port   int
	Conn   *net.UDPConn
	Task   Task
}

// Registry tracks everything in §4.H: listeners, WS sessions, and the
// tasks bound to each. Build one with New; the zero value's maps are nil.
type Registry struct {
	mu sync.Mutex

	udpListeners map[int]*Listener
	wsSessions   map[string]any // game tag -> *session.Session (opaque to avoid an import cycle)
	wsPing       map[string]Task
	emitter      map[string]Task
	forwarder    map[string]Task

	cluster *cluster.Client
	self    string
}

// New builds an empty Registry. clusterClient may be nil to run single-node.
func New(clusterClient *cluster.Client, instanceID string) *Registry {
	return &Registry{
		udpListeners: make(map[int]*Listener),
		wsSessions:   make(map[string]any),
		wsPing:       make(map[string]Task),
		emitter:      make(map[string]Task),
		forwarder:    make(map[string]Task),
		cluster:      clusterClient,
		self:         instanceID,
	}
}

var (
	// ErrAlreadyBound is returned by AddListener when the port is already owned.
	ErrAlreadyBound = fmt.Errorf("registry: port already bound")
	// ErrNotFound is returned when removing state that doesn't exist.
	ErrNotFound = fmt.Errorf("registry: not found")
)

// AddListener registers a new UDP listener for port. Fails with
// ErrAlreadyBound if this process already owns the port.
func (r *Registry) AddListener(port int, l *Listener) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.udpListeners[port]; exists {
		return ErrAlreadyBound
	}
	r.udpListeners[port] = l
	return nil
}

// RemoveListener removes and returns the listener for port, if any.
func (r *Registry) RemoveListener(port int) (*Listener, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.udpListeners[port]
	if ok {
		delete(r.udpListeners, port)
	}
	return l, ok
}

// ListenerCountForGame reports how many active listeners currently feed
// gameTag's WebSocket session; used to decide when to tear the session down.
func (r *Registry) ListenerCountForGame(gameTag string, gameOf func(port int) string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for port := range r.udpListeners {
		if gameOf(port) == gameTag {
			n++
		}
	}
	return n
}

// Ports returns every currently bound UDP listener port, for callers that
// need to enumerate active pipelines on shutdown.
func (r *Registry) Ports() []int {
	r.mu.Lock()
	defer r.mu.Unlock()

	ports := make([]int, 0, len(r.udpListeners))
	for port := range r.udpListeners {
		ports = append(ports, port)
	}
	return ports
}

// SetSession records the WebSocket session object for gameTag. The value
// is stored as `any` to avoid a registry<->agent import cycle; callers
// type-assert on retrieval.
func (r *Registry) SetSession(gameTag string, session any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.wsSessions[gameTag] = session
	r.publishMembership(cluster.ListenerStarted, gameTag, 0)
}

// Session returns the WebSocket session object for gameTag, if any.
func (r *Registry) Session(gameTag string) (any, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.wsSessions[gameTag]
	return s, ok
}

// RemoveSession drops the session and its associated ping/emitter/forwarder
// tasks from the registry. Callers are responsible for having already
// cancelled and waited on those tasks.
func (r *Registry) RemoveSession(gameTag string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.wsSessions, gameTag)
	delete(r.wsPing, gameTag)
	delete(r.emitter, gameTag)
	delete(r.forwarder, gameTag)
	r.publishMembership(cluster.ListenerStopped, gameTag, 0)
}

func (r *Registry) SetPingTask(gameTag string, t Task)     { r.setTask(r.wsPing, gameTag, t) }
func (r *Registry) SetEmitterTask(gameTag string, t Task)  { r.setTask(r.emitter, gameTag, t) }
func (r *Registry) SetForwarderTask(gameTag string, t Task) { r.setTask(r.forwarder, gameTag, t) }

func (r *Registry) setTask(m map[string]Task, key string, t Task) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m[key] = t
}

// publishMembership must be called with r.mu held; it only enqueues a
// network publish after releasing would be preferable, but the NATS client
// library's Publish call does not block on I/O (it buffers and flushes
// asynchronously), so this is safe to call under the lock.
func (r *Registry) publishMembership(kind cluster.EventKind, gameTag string, port int) {
	if r.cluster == nil {
		return
	}
	if err := r.cluster.Publish(cluster.MembershipEvent{
		Kind:     kind,
		GameTag:  gameTag,
		Port:     port,
		Instance: r.self,
	}); err != nil {
		log.Warnf("registry: cluster publish failed: %v", err)
	}
}
