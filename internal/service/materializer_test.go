package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/wayplan/wayplan/internal/domain"
)

// memoryStore collects destinations in order and can be told to fail
// after a number of successful creates.
type memoryStore struct {
	created  []*domain.Destination
	attached []uuid.UUID
	failAt   int // 0 = never fail
}

func (m *memoryStore) CreateDestination(_ context.Context, dest *domain.Destination) error {
	if m.failAt > 0 && len(m.created) == m.failAt {
		return errors.New("store unavailable")
	}
	m.created = append(m.created, dest)
	return nil
}

func (m *memoryStore) AttachDestination(_ context.Context, _, destID uuid.UUID) error {
	m.attached = append(m.attached, destID)
	return nil
}

func twoDayPlan() *domain.GeneratedTripPlan {
	return &domain.GeneratedTripPlan{
		Destination: "Lisbon",
		Title:       "Lisbon Weekend",
		Days: []domain.PlanDay{
			{
				Date:  "2024-07-01",
				Hotel: "Alfama Suites",
				Activities: []domain.PlanActivity{
					{Name: "Castle of São Jorge", Description: "Morning visit", Location: "Alfama", Category: "Sightseeing", Price: "$12.50", Time: "9:30 AM"},
					{Name: "Tram 28", Description: "Scenic ride", Location: "Martim Moniz", Category: "Transport", Price: "$3", Time: "Anytime"},
				},
			},
			{
				Date:  "2024-07-02",
				Hotel: "Alfama Suites",
				Activities: []domain.PlanActivity{
					{Name: "Belém Tower", Description: "Riverside walk", Location: "Belém", Category: "Sightseeing", Price: "Free", Time: "10:00 AM"},
				},
			},
		},
		Budget:    "Medium",
		Travelers: 2,
		Summary:   "A weekend in Lisbon.",
		Tags:      []string{"city"},
	}
}

func TestMaterialize(t *testing.T) {
	store := &memoryStore{}
	mat := NewMaterializerService(store)
	tripID := uuid.New()

	created, err := mat.Materialize(context.Background(), twoDayPlan(), tripID)
	if err != nil {
		t.Fatalf("materialize: %v", err)
	}
	if created != 3 {
		t.Fatalf("created = %d, want 3", created)
	}
	if len(store.attached) != 3 {
		t.Fatalf("attached = %d, want 3", len(store.attached))
	}

	first := store.created[0]
	if first.TripID != tripID {
		t.Errorf("trip ID not propagated")
	}
	if first.Position != 0 || store.created[2].Position != 2 {
		t.Errorf("positions not sequential: %d, %d", first.Position, store.created[2].Position)
	}
	if first.City != "Lisbon" {
		t.Errorf("city = %q, want plan destination", first.City)
	}
	if first.Cost != 12.5 {
		t.Errorf("cost = %v, want 12.5", first.Cost)
	}

	wantStart := time.Date(2024, 7, 1, 9, 30, 0, 0, time.UTC)
	if !first.StartTime.Equal(wantStart) {
		t.Errorf("start = %v, want %v", first.StartTime, wantStart)
	}
	if !first.EndTime.Equal(wantStart.Add(time.Hour)) {
		t.Errorf("end = %v, want start + 1h", first.EndTime)
	}

	// "Anytime" falls back to the default morning start.
	anytime := store.created[1]
	wantAnytime := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)
	if !anytime.StartTime.Equal(wantAnytime) {
		t.Errorf("anytime start = %v, want %v", anytime.StartTime, wantAnytime)
	}
}

func TestMaterializePartialFailure(t *testing.T) {
	store := &memoryStore{failAt: 2}
	mat := NewMaterializerService(store)

	created, err := mat.Materialize(context.Background(), twoDayPlan(), uuid.New())
	if err == nil {
		t.Fatal("expected error from failing store")
	}
	if created != 2 {
		t.Errorf("created = %d, want 2 completed before failure", created)
	}
}

func TestParseCost(t *testing.T) {
	tests := []struct {
		price string
		want  float64
	}{
		{"Free", 0},
		{"free", 0},
		{"Varies", 0},
		{"", 0},
		{"$45", 45},
		{"$12.50", 12.5},
		{"€20", 20},
		{"about 15 dollars", 15},
		{"n/a", 0},
	}
	for _, tt := range tests {
		if got := ParseCost(tt.price); got != tt.want {
			t.Errorf("ParseCost(%q) = %v, want %v", tt.price, got, tt.want)
		}
	}
}

func TestGroupByDay(t *testing.T) {
	store := &memoryStore{}
	mat := NewMaterializerService(store)
	tripID := uuid.New()

	if _, err := mat.Materialize(context.Background(), twoDayPlan(), tripID); err != nil {
		t.Fatalf("materialize: %v", err)
	}

	trip := &domain.Trip{ID: tripID, Name: "Lisbon Weekend", Address: "Alfama Suites"}
	for _, d := range store.created {
		trip.Destinations = append(trip.Destinations, *d)
	}

	days := GroupByDay(trip)
	if len(days) != 2 {
		t.Fatalf("got %d day buckets, want 2", len(days))
	}
	if days[0].Date != "July 1, 2024" || days[1].Date != "July 2, 2024" {
		t.Errorf("day order: %q, %q", days[0].Date, days[1].Date)
	}
	if len(days[0].Activities) != 2 || len(days[1].Activities) != 1 {
		t.Errorf("activity counts: %d, %d", len(days[0].Activities), len(days[1].Activities))
	}
	if days[0].Hotel != "Alfama Suites" {
		t.Errorf("hotel = %q, want trip address", days[0].Hotel)
	}
	if days[0].Note != "Day planned with 2 activities." {
		t.Errorf("note = %q", days[0].Note)
	}
}

func TestGroupByDayUnknownHotel(t *testing.T) {
	start := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)
	trip := &domain.Trip{
		Destinations: []domain.Destination{{Title: "Walk", StartTime: start, EndTime: start.Add(time.Hour)}},
	}
	days := GroupByDay(trip)
	if len(days) != 1 {
		t.Fatalf("got %d day buckets, want 1", len(days))
	}
	if days[0].Hotel != "Unknown Hotel" {
		t.Errorf("hotel = %q, want fallback", days[0].Hotel)
	}
}
