// Package model defines the core domain types for the event catalog.
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultImageURL is used for events that carry no image of their own.
const DefaultImageURL = "/images/default-event.jpg"

// Event represents one schedulable happening listed in the catalog.
type Event struct {
	ID               int             `json:"id"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	Date             time.Time       `json:"date"`
	Location         string          `json:"location"`
	Category         string          `json:"category"`
	MaxAttendees     int             `json:"max_attendees"`
	CurrentAttendees int             `json:"current_attendees"`
	Price            decimal.Decimal `json:"price"`
	ImageURL         string          `json:"image_url"`
	IsActive         bool            `json:"is_active"`
}

// Remaining returns the number of available places.
func (e *Event) Remaining() int {
	return e.MaxAttendees - e.CurrentAttendees
}

// IsFull returns true when no places remain.
func (e *Event) IsFull() bool {
	return e.CurrentAttendees >= e.MaxAttendees
}

// IsUpcoming reports whether the event starts strictly after now.
func (e *Event) IsUpcoming(now time.Time) bool {
	return e.Date.After(now)
}

// AcceptsRegistration reports whether a registration made at now may succeed.
func (e *Event) AcceptsRegistration(now time.Time) bool {
	return e.IsActive && !e.IsFull() && e.IsUpcoming(now)
}

// Validate reports every problem found in the record. Stored records are
// not rejected on read; callers decide what to do with the result.
func (e *Event) Validate() error {
	var problems []error
	if strings.TrimSpace(e.Name) == "" {
		problems = append(problems, errors.New("name is blank"))
	}
	if e.Date.IsZero() {
		problems = append(problems, errors.New("date is not set"))
	}
	if e.MaxAttendees < 0 {
		problems = append(problems, fmt.Errorf("max attendees %d is negative", e.MaxAttendees))
	}
	if e.CurrentAttendees < 0 {
		problems = append(problems, fmt.Errorf("current attendees %d is negative", e.CurrentAttendees))
	}
	if e.CurrentAttendees > e.MaxAttendees {
		problems = append(problems, fmt.Errorf("current attendees %d exceed capacity %d", e.CurrentAttendees, e.MaxAttendees))
	}
	if e.Price.IsNegative() {
		problems = append(problems, fmt.Errorf("price %s is negative", e.Price.StringFixed(2)))
	}
	return errors.Join(problems...)
}

// Registration represents an attendee's registration for an event.
type Registration struct {
	ID        string    `json:"id"`
	EventID   int       `json:"event_id"`
	Contact   string    `json:"attendee_contact"`
	CreatedAt time.Time `json:"created_at"`
}

// RegisterRequest is the payload for registering for an event.
type RegisterRequest struct {
	AttendeeContact string `json:"attendee_contact"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// CloneEvents returns a copy of events that shares no backing array with
// the input.
func CloneEvents(events []Event) []Event {
	if events == nil {
		return nil
	}
	out := make([]Event, len(events))
	copy(out, events)
	return out
}
