package seed

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Shivanand-hulikatti/eventease/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)

func TestSample(t *testing.T) {
	events := Sample(now)
	require.Len(t, events, 8)

	byID := make(map[int]model.Event, len(events))
	for _, e := range events {
		_, dup := byID[e.ID]
		require.False(t, dup, "duplicate id %d", e.ID)
		byID[e.ID] = e
	}

	summit := byID[1]
	assert.Equal(t, 500, summit.MaxAttendees)
	assert.Equal(t, 287, summit.CurrentAttendees)
	assert.Equal(t, now.Add(15*day), summit.Date)
	assert.True(t, summit.Price.Equal(decimal.RequireFromString("299.99")))
	assert.True(t, summit.AcceptsRegistration(now))

	past := byID[7]
	assert.True(t, past.Date.Before(now))
	assert.False(t, past.AcceptsRegistration(now))

	malformed := byID[8]
	assert.Error(t, malformed.Validate())
	assert.True(t, malformed.Date.IsZero())
	assert.Equal(t, -5, malformed.CurrentAttendees)
}

func TestSample_ReturnsFreshSlice(t *testing.T) {
	a := Sample(now)
	a[0].CurrentAttendees = 0
	b := Sample(now)
	assert.Equal(t, 287, b[0].CurrentAttendees)
}

func TestLoadFile(t *testing.T) {
	events, err := LoadFile(filepath.Join("testdata", "events.yaml"), now)
	require.NoError(t, err)
	require.Len(t, events, 3)

	meetup := events[0]
	assert.Equal(t, 10, meetup.ID)
	assert.Equal(t, now.Add(3*day), meetup.Date)
	assert.Equal(t, model.DefaultImageURL, meetup.ImageURL)
	assert.True(t, meetup.IsActive)
	assert.True(t, meetup.Price.IsZero())

	jazz := events[1]
	assert.Equal(t, time.Date(2030, 6, 1, 19, 30, 0, 0, time.UTC), jazz.Date)
	assert.Equal(t, "/images/jazz.jpg", jazz.ImageURL)
	assert.True(t, jazz.IsFull())
	assert.Equal(t, "25.5", jazz.Price.String())

	cancelled := events[2]
	assert.False(t, cancelled.IsActive)
	assert.Equal(t, "business", cancelled.Category)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join("testdata", "nope.yaml"), now)
	assert.Error(t, err)

	_, err = LoadFile("", now)
	assert.Error(t, err)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"non-positive id", "events:\n  - id: 0\n    name: x\n"},
		{"duplicate id", "events:\n  - id: 1\n  - id: 1\n"},
		{"both dates", "events:\n  - id: 1\n    date: \"2030-01-01T00:00:00Z\"\n    days_from_now: 2\n"},
		{"bad date", "events:\n  - id: 1\n    date: \"tomorrow\"\n"},
		{"bad price", "events:\n  - id: 1\n    price: \"ten\"\n"},
		{"bad yaml", "events: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), now)
			assert.Error(t, err)
		})
	}
}
