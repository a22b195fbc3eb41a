// Package seed supplies the catalog's starting records, either the built-in
// sample set or a YAML seed file.
package seed

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Shivanand-hulikatti/eventease/internal/model"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

const day = 24 * time.Hour

// Sample returns the built-in records with dates relative to now.
//
// Record 7 is already over and record 8 is deliberately malformed so that
// expired-event and bad-data handling can be exercised.
func Sample(now time.Time) []model.Event {
	return []model.Event{
		{
			ID:               1,
			Name:             "Tech Innovation Summit 2024",
			Description:      "Join industry leaders and innovators for a day of cutting-edge technology discussions, networking, and hands-on workshops. Explore the latest trends in AI, cloud computing, and digital transformation.",
			Date:             now.Add(15 * day),
			Location:         "San Francisco Convention Center, CA",
			Category:         "Technology",
			MaxAttendees:     500,
			CurrentAttendees: 287,
			Price:            decimal.RequireFromString("299.99"),
			ImageURL:         "/images/tech-summit.jpg",
			IsActive:         true,
		},
		{
			ID:               2,
			Name:             "Business Leadership Workshop",
			Description:      "Develop your leadership skills with renowned business coaches and successful entrepreneurs. Learn practical strategies for team management, decision-making, and organizational growth.",
			Date:             now.Add(8 * day),
			Location:         "New York Business Center, NY",
			Category:         "Business",
			MaxAttendees:     150,
			CurrentAttendees: 89,
			Price:            decimal.RequireFromString("175.00"),
			ImageURL:         "/images/business-workshop.jpg",
			IsActive:         true,
		},
		{
			ID:               3,
			Name:             "Contemporary Art Exhibition Opening",
			Description:      "Experience an exclusive preview of groundbreaking contemporary art from emerging and established artists. Enjoy wine, networking, and inspiring conversations about modern artistic expression.",
			Date:             now.Add(5 * day),
			Location:         "Modern Art Gallery, Los Angeles, CA",
			Category:         "Arts",
			MaxAttendees:     200,
			CurrentAttendees: 156,
			Price:            decimal.RequireFromString("45.00"),
			ImageURL:         "/images/art-exhibition.jpg",
			IsActive:         true,
		},
		{
			ID:               4,
			Name:             "Annual Charity Gala for Education",
			Description:      "Support local education initiatives at our elegant charity gala. Enjoy fine dining, live entertainment, and silent auctions while making a difference in children's lives.",
			Date:             now.Add(30 * day),
			Location:         "Grand Ballroom, Chicago, IL",
			Category:         "Charity",
			MaxAttendees:     300,
			CurrentAttendees: 198,
			Price:            decimal.RequireFromString("125.00"),
			ImageURL:         "/images/charity-gala.jpg",
			IsActive:         true,
		},
		{
			ID:               5,
			Name:             "Fitness and Wellness Expo",
			Description:      "Discover the latest in fitness equipment, healthy nutrition, and wellness practices. Participate in group fitness classes, health screenings, and meet wellness experts.",
			Date:             now.Add(12 * day),
			Location:         "Sports Complex, Austin, TX",
			Category:         "Health",
			MaxAttendees:     400,
			CurrentAttendees: 145,
			Price:            decimal.RequireFromString("35.00"),
			ImageURL:         "/images/fitness-expo.jpg",
			IsActive:         true,
		},
		{
			ID:               6,
			Name:             "Culinary Masterclass Series",
			Description:      "Learn from world-renowned chefs in this intensive culinary workshop. Master advanced cooking techniques, plating presentations, and create restaurant-quality dishes.",
			Date:             now.Add(20 * day),
			Location:         "Culinary Institute, Seattle, WA",
			Category:         "Food",
			MaxAttendees:     50,
			CurrentAttendees: 47,
			Price:            decimal.RequireFromString("225.00"),
			ImageURL:         "/images/culinary-class.jpg",
			IsActive:         true,
		},
		{
			ID:               7,
			Name:             "Past Conference (Expired)",
			Description:      "This event has already occurred and is used for testing expired event handling.",
			Date:             now.Add(-5 * day),
			Location:         "Test Location",
			Category:         "Technology",
			MaxAttendees:     100,
			CurrentAttendees: 95,
			Price:            decimal.RequireFromString("50.00"),
			ImageURL:         "/images/test.jpg",
			IsActive:         true,
		},
		{
			ID:               8,
			MaxAttendees:     0,
			CurrentAttendees: -5,
			Price:            decimal.RequireFromString("-100.00"),
			IsActive:         true,
		},
	}
}

// fileEvent is one entry of a YAML seed file. Either Date or DaysFromNow
// positions the event in time; an entry with neither gets the zero time.
type fileEvent struct {
	ID               int     `yaml:"id"`
	Name             string  `yaml:"name"`
	Description      string  `yaml:"description"`
	Date             string  `yaml:"date"`
	DaysFromNow      *int    `yaml:"days_from_now"`
	Location         string  `yaml:"location"`
	Category         string  `yaml:"category"`
	MaxAttendees     int     `yaml:"max_attendees"`
	CurrentAttendees int     `yaml:"current_attendees"`
	Price            string  `yaml:"price"`
	ImageURL         *string `yaml:"image_url"`
	IsActive         *bool   `yaml:"is_active"`
}

type file struct {
	Events []fileEvent `yaml:"events"`
}

// LoadFile reads a YAML seed file and resolves relative dates against now.
func LoadFile(path string, now time.Time) ([]model.Event, error) {
	if path == "" {
		return nil, errors.New("seed path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data, now)
}

// Parse decodes YAML seed data.
func Parse(data []byte, now time.Time) ([]model.Event, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}

	seen := make(map[int]struct{}, len(f.Events))
	events := make([]model.Event, 0, len(f.Events))
	for i, fe := range f.Events {
		if fe.ID <= 0 {
			return nil, fmt.Errorf("seed entry %d: id must be positive", i)
		}
		if _, dup := seen[fe.ID]; dup {
			return nil, fmt.Errorf("seed entry %d: duplicate id %d", i, fe.ID)
		}
		seen[fe.ID] = struct{}{}

		ev, err := fe.toEvent(now)
		if err != nil {
			return nil, fmt.Errorf("seed entry %d (id %d): %w", i, fe.ID, err)
		}
		events = append(events, ev)
	}
	return events, nil
}

func (fe fileEvent) toEvent(now time.Time) (model.Event, error) {
	ev := model.Event{
		ID:               fe.ID,
		Name:             fe.Name,
		Description:      fe.Description,
		Location:         fe.Location,
		Category:         fe.Category,
		MaxAttendees:     fe.MaxAttendees,
		CurrentAttendees: fe.CurrentAttendees,
		ImageURL:         model.DefaultImageURL,
		IsActive:         true,
	}

	switch {
	case fe.Date != "" && fe.DaysFromNow != nil:
		return model.Event{}, errors.New("set either date or days_from_now, not both")
	case fe.Date != "":
		date, err := time.Parse(time.RFC3339, fe.Date)
		if err != nil {
			return model.Event{}, fmt.Errorf("date %q: %w", fe.Date, err)
		}
		ev.Date = date.UTC()
	case fe.DaysFromNow != nil:
		ev.Date = now.Add(time.Duration(*fe.DaysFromNow) * day)
	}

	if fe.Price != "" {
		price, err := decimal.NewFromString(fe.Price)
		if err != nil {
			return model.Event{}, fmt.Errorf("price %q: %w", fe.Price, err)
		}
		ev.Price = price
	}
	if fe.ImageURL != nil {
		ev.ImageURL = *fe.ImageURL
	}
	if fe.IsActive != nil {
		ev.IsActive = *fe.IsActive
	}
	return ev, nil
}
