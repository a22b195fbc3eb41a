// Package repository implements the record providers behind the catalog:
// an in-memory store over seed data and a PostgreSQL store using pgx.
package repository

import (
	"errors"
	"time"

	"github.com/Shivanand-hulikatti/eventease/internal/model"
)

// ErrNotFound is returned when a requested event does not exist.
var ErrNotFound = errors.New("event not found")

// ErrEventFull is returned when an event has no remaining capacity.
var ErrEventFull = errors.New("event is fully booked")

// ErrEventInactive is returned when an event no longer accepts registrations.
var ErrEventInactive = errors.New("event is not active")

// ErrEventPast is returned when an event has already started.
var ErrEventPast = errors.New("event has already taken place")

// CheckBookable applies the registration rules to an event at instant now.
func CheckBookable(e *model.Event, now time.Time) error {
	switch {
	case !e.IsActive:
		return ErrEventInactive
	case e.IsFull():
		return ErrEventFull
	case !e.IsUpcoming(now):
		return ErrEventPast
	}
	return nil
}
