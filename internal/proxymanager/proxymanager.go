// Package proxymanager tracks the health of the managed-proxy endpoints the
// Tier 3 Fetch Router strategy calls, rotating away from unhealthy ones.
// Grounded on the teacher's internal/proxymanager package: the same
// round-robin-over-healthy-entries plus consecutive-failure health scoring,
// narrowed from residential/datacenter proxy pools to managed-proxy API
// endpoints.
package proxymanager

import (
	"log"
	"sync"
	"time"
)

// Endpoint is one managed-proxy API base URL + key pair.
type Endpoint struct {
	ID     string
	BaseURL string
	APIKey string
}

type endpointStatus struct {
	endpoint            Endpoint
	healthy             bool
	consecutiveFailures int
	lastFailure         time.Time
}

const maxConsecutiveFailures = 5

// Manager round-robins over healthy endpoints and demotes ones that fail
// repeatedly, the way the teacher's ProxyManager does for raw HTTP proxies.
type Manager struct {
	mu       sync.RWMutex
	all      []*endpointStatus
	current  int
}

// New builds a Manager; every endpoint starts healthy (optimistic, as the
// first real call will demote it if it's actually down).
func New(endpoints []Endpoint) *Manager {
	m := &Manager{}
	for _, e := range endpoints {
		m.all = append(m.all, &endpointStatus{endpoint: e, healthy: true})
	}
	return m
}

// Get returns the next healthy endpoint in round-robin order, or the
// overall-least-recently-failed one if none are currently marked healthy
// (better to retry a cooled-down endpoint than fail the fetch outright).
func (m *Manager) Get() (Endpoint, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.all) == 0 {
		return Endpoint{}, false
	}

	for i := 0; i < len(m.all); i++ {
		idx := (m.current + i) % len(m.all)
		if m.all[idx].healthy {
			m.current = (idx + 1) % len(m.all)
			return m.all[idx].endpoint, true
		}
	}

	// None healthy: fall back to the one that failed longest ago.
	oldest := m.all[0]
	for _, s := range m.all[1:] {
		if s.lastFailure.Before(oldest.lastFailure) {
			oldest = s
		}
	}
	return oldest.endpoint, true
}

// ReportHealth records the outcome of a call against endpointID.
func (m *Manager) ReportHealth(endpointID string, success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.all {
		if s.endpoint.ID != endpointID {
			continue
		}
		if success {
			s.consecutiveFailures = 0
			if !s.healthy {
				log.Printf("proxymanager: endpoint %s recovered", endpointID)
			}
			s.healthy = true
			return
		}
		s.consecutiveFailures++
		s.lastFailure = time.Now()
		if s.consecutiveFailures >= maxConsecutiveFailures && s.healthy {
			log.Printf("proxymanager: endpoint %s marked unhealthy after %d consecutive failures", endpointID, s.consecutiveFailures)
			s.healthy = false
		}
		return
	}
}

// Status is one endpoint's entry in the snapshot Statuses returns.
type Status struct {
	ID                  string
	Healthy             bool
	ConsecutiveFailures int
}

func (m *Manager) Statuses() []Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Status, 0, len(m.all))
	for _, s := range m.all {
		out = append(out, Status{ID: s.endpoint.ID, Healthy: s.healthy, ConsecutiveFailures: s.consecutiveFailures})
	}
	return out
}
