// Package service implements the event catalog: cached reads over a record
// provider and serialized registration.
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Shivanand-hulikatti/eventease/internal/cache"
	"github.com/Shivanand-hulikatti/eventease/internal/clock"
	"github.com/Shivanand-hulikatti/eventease/internal/logger"
	"github.com/Shivanand-hulikatti/eventease/internal/model"
	"github.com/Shivanand-hulikatti/eventease/internal/notify"
	"github.com/Shivanand-hulikatti/eventease/internal/repository"
)

// ErrInvalidInput is returned when a request fails validation before any
// data is read.
var ErrInvalidInput = errors.New("invalid input")

// Re-exported so callers need not import the repository package.
var (
	ErrNotFound      = repository.ErrNotFound
	ErrEventFull     = repository.ErrEventFull
	ErrEventInactive = repository.ErrEventInactive
	ErrEventPast     = repository.ErrEventPast
)

const (
	defaultCacheTTL      = 5 * time.Minute
	defaultFetchDelay    = 100 * time.Millisecond
	defaultRegisterDelay = 200 * time.Millisecond
)

// EventStore is the record provider behind the catalog.
type EventStore interface {
	List(ctx context.Context) ([]model.Event, error)
	Book(ctx context.Context, eventID int, contact string, now time.Time) (*model.Registration, error)
	ListRegistrations(ctx context.Context, eventID int) ([]model.Registration, error)
}

// EventCatalog serves queries over the store through a time-boxed cache and
// mutates attendee counts on registration.
type EventCatalog struct {
	store     EventStore
	cache     cache.EventCache
	clock     clock.Clock
	logger    *logger.Logger
	publisher notify.Publisher

	cacheTTL      time.Duration
	fetchDelay    time.Duration
	registerDelay time.Duration

	// mu serializes cache refreshes and registrations.
	mu sync.Mutex
}

type Option func(*EventCatalog)

// WithClock overrides the time source.
func WithClock(c clock.Clock) Option {
	return func(s *EventCatalog) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithCacheTTL overrides how long a loaded listing is served from cache.
func WithCacheTTL(d time.Duration) Option {
	return func(s *EventCatalog) {
		if d > 0 {
			s.cacheTTL = d
		}
	}
}

// WithFetchDelay sets the simulated latency of loading from the store.
func WithFetchDelay(d time.Duration) Option {
	return func(s *EventCatalog) {
		if d >= 0 {
			s.fetchDelay = d
		}
	}
}

// WithRegisterDelay sets the simulated latency of a registration.
func WithRegisterDelay(d time.Duration) Option {
	return func(s *EventCatalog) {
		if d >= 0 {
			s.registerDelay = d
		}
	}
}

func WithLogger(l *logger.Logger) Option {
	return func(s *EventCatalog) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithPublisher(p notify.Publisher) Option {
	return func(s *EventCatalog) {
		if p != nil {
			s.publisher = p
		}
	}
}

// NewEventCatalog constructs an EventCatalog. A nil cache gets an in-memory one.
func NewEventCatalog(store EventStore, c cache.EventCache, opts ...Option) *EventCatalog {
	s := &EventCatalog{
		store:         store,
		clock:         clock.NewSystem(),
		logger:        logger.Discard(),
		publisher:     notify.Nop{},
		cacheTTL:      defaultCacheTTL,
		fetchDelay:    defaultFetchDelay,
		registerDelay: defaultRegisterDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	if c == nil {
		c = cache.NewMemory(s.clock)
	}
	s.cache = c
	return s
}

// ListEvents returns every record, active or not.
func (s *EventCatalog) ListEvents(ctx context.Context) ([]model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.events(ctx)
}

// GetEventByID returns the active event with the given id.
func (s *EventCatalog) GetEventByID(ctx context.Context, id int) (*model.Event, error) {
	if id <= 0 {
		return nil, ErrNotFound
	}
	events, err := s.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	for i := range events {
		if events[i].ID == id && events[i].IsActive {
			return &events[i], nil
		}
	}
	return nil, ErrNotFound
}

// GetEventsByCategory returns active events whose category matches
// case-insensitively. A blank category matches every active event.
func (s *EventCatalog) GetEventsByCategory(ctx context.Context, category string) ([]model.Event, error) {
	events, err := s.ListEvents(ctx)
	if err != nil {
		return nil, err
	}

	category = strings.TrimSpace(category)
	out := []model.Event{}
	for _, e := range events {
		if !e.IsActive {
			continue
		}
		if category == "" || strings.EqualFold(e.Category, category) {
			out = append(out, e)
		}
	}
	return out, nil
}

// ListCategories returns the distinct non-blank categories in byte order.
func (s *EventCatalog) ListCategories(ctx context.Context) ([]string, error) {
	events, err := s.ListEvents(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	categories := []string{}
	for _, e := range events {
		if strings.TrimSpace(e.Category) == "" {
			continue
		}
		if _, ok := seen[e.Category]; ok {
			continue
		}
		seen[e.Category] = struct{}{}
		categories = append(categories, e.Category)
	}
	sort.Strings(categories)
	return categories, nil
}

// RegisterForEvent books one place on an event for the given contact.
//
// It succeeds only for an active, non-full event dated strictly after now.
// On success the attendee count grows by one and the cached listing is
// dropped so the next read reflects it. On failure nothing changes.
func (s *EventCatalog) RegisterForEvent(ctx context.Context, eventID int, contact string) (*model.Registration, error) {
	contact = strings.TrimSpace(contact)
	if eventID <= 0 {
		return nil, fmt.Errorf("%w: event id must be positive", ErrInvalidInput)
	}
	if contact == "" {
		return nil, fmt.Errorf("%w: attendee contact is required", ErrInvalidInput)
	}

	if err := sleep(ctx, s.registerDelay); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := s.events(ctx)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()

	event := findByID(events, eventID)
	if event == nil {
		return nil, ErrNotFound
	}
	if err := repository.CheckBookable(event, now); err != nil {
		s.logger.LogCatalog("REGISTER", eventID, "refused: "+err.Error())
		return nil, err
	}

	reg, err := s.store.Book(ctx, eventID, contact, now)
	if err != nil {
		if IsRejection(err) {
			// The store saw newer data than the cache; drop the stale copy.
			s.invalidate(ctx)
			return nil, err
		}
		return nil, fmt.Errorf("register for event: %w", err)
	}

	s.invalidate(ctx)
	s.logger.LogCatalog("REGISTER", eventID, fmt.Sprintf("registration %s accepted", reg.ID))

	if err := s.publisher.PublishRegistration(ctx, *reg); err != nil {
		s.logger.Error("CATALOG", fmt.Sprintf("publish registration %s: %v", reg.ID, err))
	}
	return reg, nil
}

// ListRegistrations returns the registrations recorded for an event.
func (s *EventCatalog) ListRegistrations(ctx context.Context, eventID int) ([]model.Registration, error) {
	if eventID <= 0 {
		return nil, ErrNotFound
	}
	regs, err := s.store.ListRegistrations(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return regs, nil
}

// IsRejection reports whether err is an ordinary "no" from the catalog
// (bad input, unknown event, registration refused) rather than a fault.
func IsRejection(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrEventFull) ||
		errors.Is(err, ErrEventInactive) ||
		errors.Is(err, ErrEventPast)
}

// events returns the cached listing or reloads it. s.mu must be held.
func (s *EventCatalog) events(ctx context.Context) ([]model.Event, error) {
	cached, ok, err := s.cache.Get(ctx)
	if err != nil {
		s.logger.Warn("CACHE", fmt.Sprintf("read failed, reloading from store: %v", err))
	} else if ok {
		s.logger.LogCache("HIT", fmt.Sprintf("%d events", len(cached)))
		return cached, nil
	}

	if err := sleep(ctx, s.fetchDelay); err != nil {
		return nil, err
	}

	events, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}
	for i := range events {
		if verr := events[i].Validate(); verr != nil {
			s.logger.Warn("CATALOG", fmt.Sprintf("event %d is malformed: %v", events[i].ID, strings.ReplaceAll(verr.Error(), "\n", "; ")))
		}
	}

	if err := s.cache.Set(ctx, events, s.cacheTTL); err != nil {
		s.logger.Warn("CACHE", fmt.Sprintf("store failed: %v", err))
	}
	s.logger.LogCache("REFRESH", fmt.Sprintf("%d events, valid for %s", len(events), s.cacheTTL))
	return model.CloneEvents(events), nil
}

func (s *EventCatalog) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Error("CACHE", fmt.Sprintf("invalidate failed: %v", err))
	}
}

func findByID(events []model.Event, id int) *model.Event {
	for i := range events {
		if events[i].ID == id {
			return &events[i]
		}
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
