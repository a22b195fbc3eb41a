package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Shivanand-hulikatti/eventease/internal/model"
	"github.com/google/uuid"
)

// MemoryStore keeps event records and registrations in process memory.
// It exclusively owns its records; every read returns copies.
type MemoryStore struct {
	mu            sync.Mutex
	events        []model.Event
	registrations map[int][]model.Registration
}

// NewMemoryStore constructs a MemoryStore holding a copy of events, ordered by id.
func NewMemoryStore(events []model.Event) *MemoryStore {
	owned := model.CloneEvents(events)
	sort.SliceStable(owned, func(i, j int) bool { return owned[i].ID < owned[j].ID })
	return &MemoryStore{
		events:        owned,
		registrations: make(map[int][]model.Registration),
	}
}

// List returns all records.
func (s *MemoryStore) List(ctx context.Context) ([]model.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.CloneEvents(s.events), nil
}

// Book re-checks the registration rules and, when they hold, increments the
// attendee count and records the registration in one critical section.
func (s *MemoryStore) Book(ctx context.Context, eventID int, contact string, now time.Time) (*model.Registration, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(eventID)
	if idx < 0 {
		return nil, ErrNotFound
	}
	event := &s.events[idx]
	if err := CheckBookable(event, now); err != nil {
		return nil, err
	}

	event.CurrentAttendees++
	reg := model.Registration{
		ID:        uuid.New().String(),
		EventID:   eventID,
		Contact:   strings.TrimSpace(contact),
		CreatedAt: now.UTC(),
	}
	s.registrations[eventID] = append(s.registrations[eventID], reg)
	return &reg, nil
}

// ListRegistrations returns the registrations recorded for an event, oldest first.
func (s *MemoryStore) ListRegistrations(ctx context.Context, eventID int) ([]model.Registration, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(eventID) < 0 {
		return nil, ErrNotFound
	}
	regs := s.registrations[eventID]
	out := make([]model.Registration, len(regs))
	copy(out, regs)
	return out, nil
}

func (s *MemoryStore) indexOf(eventID int) int {
	i := sort.Search(len(s.events), func(i int) bool { return s.events[i].ID >= eventID })
	if i < len(s.events) && s.events[i].ID == eventID {
		return i
	}
	return -1
}
