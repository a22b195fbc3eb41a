package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEvent_AcceptsRegistration(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	base := Event{
		ID:               1,
		Name:             "Summit",
		Date:             now.Add(24 * time.Hour),
		MaxAttendees:     10,
		CurrentAttendees: 9,
		IsActive:         true,
	}

	tests := []struct {
		name   string
		mutate func(e *Event)
		want   bool
	}{
		{"open event", func(e *Event) {}, true},
		{"inactive", func(e *Event) { e.IsActive = false }, false},
		{"full", func(e *Event) { e.CurrentAttendees = 10 }, false},
		{"starts now", func(e *Event) { e.Date = now }, false},
		{"in the past", func(e *Event) { e.Date = now.Add(-time.Hour) }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := base
			tt.mutate(&e)
			assert.Equal(t, tt.want, e.AcceptsRegistration(now))
		})
	}
}

func TestEvent_Remaining(t *testing.T) {
	e := Event{MaxAttendees: 500, CurrentAttendees: 287}
	assert.Equal(t, 213, e.Remaining())
	assert.False(t, e.IsFull())
}

func TestEvent_Validate(t *testing.T) {
	good := Event{
		Name:             "Workshop",
		Date:             time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		MaxAttendees:     150,
		CurrentAttendees: 89,
		Price:            decimal.RequireFromString("175.00"),
	}
	assert.NoError(t, good.Validate())

	bad := Event{
		MaxAttendees:     0,
		CurrentAttendees: -5,
		Price:            decimal.RequireFromString("-100.00"),
	}
	err := bad.Validate()
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "name is blank")
		assert.Contains(t, err.Error(), "date is not set")
		assert.Contains(t, err.Error(), "current attendees -5 is negative")
		assert.Contains(t, err.Error(), "price -100.00 is negative")
	}
}

func TestCloneEvents(t *testing.T) {
	assert.Nil(t, CloneEvents(nil))

	src := []Event{{ID: 1, CurrentAttendees: 1}}
	dst := CloneEvents(src)
	dst[0].CurrentAttendees = 2
	assert.Equal(t, 1, src[0].CurrentAttendees)
}
