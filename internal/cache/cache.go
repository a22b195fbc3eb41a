// Package cache holds the catalog's time-boxed copy of the event listing.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/Shivanand-hulikatti/eventease/internal/clock"
	"github.com/Shivanand-hulikatti/eventease/internal/model"
)

// EventCache stores one event listing until it expires or is invalidated.
type EventCache interface {
	// Get returns the cached listing and true while it is still valid.
	Get(ctx context.Context) ([]model.Event, bool, error)
	Set(ctx context.Context, events []model.Event, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

// Memory is a single-slot in-process cache: a value plus its expiry.
type Memory struct {
	mu        sync.Mutex
	clock     clock.Clock
	events    []model.Event
	expiresAt time.Time
}

// NewMemory returns an empty Memory cache judging expiry with clk.
func NewMemory(clk clock.Clock) *Memory {
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &Memory{clock: clk}
}

func (m *Memory) Get(_ context.Context) ([]model.Event, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.events == nil || !m.clock.Now().Before(m.expiresAt) {
		return nil, false, nil
	}
	return model.CloneEvents(m.events), true, nil
}

func (m *Memory) Set(_ context.Context, events []model.Event, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.events = model.CloneEvents(events)
	if m.events == nil {
		m.events = []model.Event{}
	}
	m.expiresAt = m.clock.Now().Add(ttl)
	return nil
}

func (m *Memory) Invalidate(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.events = nil
	m.expiresAt = time.Time{}
	return nil
}
