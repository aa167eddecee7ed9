package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wayplan/wayplan/internal/config"
	"github.com/wayplan/wayplan/internal/domain"
)

// dayLabelLayout formats a day bucket key, e.g. "July 1, 2024".
const dayLabelLayout = "January 2, 2006"

// DestinationStore is the record-store collaborator the materializer
// writes through. Save completes before the next operation proceeds;
// no transactional guarantees beyond that.
type DestinationStore interface {
	CreateDestination(ctx context.Context, dest *domain.Destination) error
	AttachDestination(ctx context.Context, tripID, destID uuid.UUID) error
}

// MaterializerService turns a verified plan's day/activity tree into
// persisted destination records attached to a trip.
type MaterializerService struct {
	store DestinationStore
}

func NewMaterializerService(store DestinationStore) *MaterializerService {
	return &MaterializerService{store: store}
}

// Materialize persists one destination per activity, in plan order,
// appending each to the trip before moving on. There is no rollback: a
// failure partway through leaves the trip with a prefix of the intended
// destinations, and the returned count makes that boundary explicit.
func (s *MaterializerService) Materialize(ctx context.Context, plan *domain.GeneratedTripPlan, tripID uuid.UUID) (int, error) {
	created := 0
	for _, day := range plan.Days {
		for _, activity := range day.Activities {
			start := resolveStart(day.Date, activity.Time)
			dest := &domain.Destination{
				ID:                 uuid.New(),
				TripID:             tripID,
				Position:           created,
				Title:              activity.Name,
				Notes:              activity.Description,
				City:               plan.Destination,
				Location:           domain.GeoPoint{Type: "Point"},
				StartTime:          start,
				EndTime:            start.Add(config.DefaultActivityDuration),
				TransportationMode: config.DefaultTransportationMode,
				ActivityType:       activity.Category,
				Address:            activity.Location,
				Cost:               ParseCost(activity.Price),
			}
			if err := s.store.CreateDestination(ctx, dest); err != nil {
				return created, fmt.Errorf("create destination %q: %w", dest.Title, err)
			}
			if err := s.store.AttachDestination(ctx, tripID, dest.ID); err != nil {
				return created, fmt.Errorf("attach destination %q: %w", dest.Title, err)
			}
			created++
		}
	}
	return created, nil
}

// resolveStart combines a plan day date with an activity time.
// "Anytime" or anything unparseable falls back to the default
// start-of-day hour.
func resolveStart(date, activityTime string) time.Time {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		day = time.Now().Truncate(24 * time.Hour)
	}
	if !strings.EqualFold(strings.TrimSpace(activityTime), "Anytime") {
		if t, err := time.Parse("3:04 PM", strings.TrimSpace(activityTime)); err == nil {
			return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
		}
	}
	return time.Date(day.Year(), day.Month(), day.Day(), config.DefaultStartHour, 0, 0, 0, time.UTC)
}

// ParseCost converts a plan price label to a numeric cost. "Free" and
// "Varies" are zero; anything else is parsed after stripping currency
// characters, defaulting to zero when nothing numeric remains.
func ParseCost(price string) float64 {
	p := strings.ToLower(strings.TrimSpace(price))
	if p == "" || p == "free" || p == "varies" {
		return 0
	}
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, p)
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0
	}
	return d.InexactFloat64()
}

// GroupByDay reconstructs a day-grouped view from a trip's persisted
// destinations, bucketed by the calendar date of each start time and
// sorted chronologically.
func GroupByDay(trip *domain.Trip) []domain.DayView {
	buckets := make(map[string][]domain.Destination)
	order := make(map[string]time.Time)
	for _, d := range trip.Destinations {
		day := time.Date(d.StartTime.Year(), d.StartTime.Month(), d.StartTime.Day(), 0, 0, 0, 0, d.StartTime.Location())
		key := day.Format(dayLabelLayout)
		buckets[key] = append(buckets[key], d)
		order[key] = day
	}

	hotel := trip.Address
	if hotel == "" {
		hotel = config.UnknownHotelName
	}

	views := make([]domain.DayView, 0, len(buckets))
	for key, activities := range buckets {
		views = append(views, domain.DayView{
			Date:       key,
			Hotel:      hotel,
			Note:       fmt.Sprintf("Day planned with %d activities.", len(activities)),
			Activities: activities,
		})
	}
	sort.Slice(views, func(i, j int) bool {
		return order[views[i].Date].Before(order[views[j].Date])
	})
	return views
}
